package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/asservice/shiftboard/internal/core/domain"
	"github.com/asservice/shiftboard/internal/core/ports"
	"github.com/asservice/shiftboard/internal/core/store"
)

var _ ports.AuthService = (*AuthService)(nil)

// AuthService implements the placeholder login rules and join-code
// registration.
type AuthService struct {
	store        *store.Store
	jwtSecret    string
	tokenTTL     time.Duration
	adminHash    []byte
	uniqueEmails bool
	logger       zerolog.Logger
}

// AuthOptions configures an AuthService.
type AuthOptions struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminPassword string
	UniqueEmails  bool
}

func NewAuthService(st *store.Store, opts AuthOptions, logger zerolog.Logger) (*AuthService, error) {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AuthService{
		store:        st,
		jwtSecret:    opts.JWTSecret,
		tokenTTL:     opts.TokenTTL,
		adminHash:    hash,
		uniqueEmails: opts.UniqueEmails,
		logger:       logger,
	}, nil
}

// Login finds the first user with the given email and role. Workers log in
// with their email as password; admins with the shared admin secret or their
// email.
func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" || !role.Valid() {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, ok := s.findByEmail(email, role)
	if !ok {
		return "", nil, &domain.AuthError{
			Reason: fmt.Sprintf("No %s account found with email: %s", role, email),
			Err:    domain.ErrUserNotFound,
		}
	}

	switch role {
	case domain.RoleWorker:
		if password != email {
			return "", nil, &domain.AuthError{
				Reason: "Incorrect Password. For workers, your password is your email address.",
				Err:    domain.ErrInvalidCredentials,
			}
		}
	case domain.RoleAdmin:
		if password != email && bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)) != nil {
			return "", nil, &domain.AuthError{Reason: "Invalid password", Err: domain.ErrInvalidCredentials}
		}
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("role", string(user.Role)).Msg("login")
	return token, &user, nil
}

// Register creates a worker account when the join code matches the current
// one, ignoring case.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if !domain.JoinCodeMatches(input.JoinCode, s.store.JoinCode()) {
		return nil, &domain.AuthError{
			Reason: "Invalid Join Code. Please ask your manager for the correct code.",
			Err:    domain.ErrInvalidJoinCode,
		}
	}

	user, err := createWorker(ctx, s.store, s.uniqueEmails, ports.WorkerInput{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("worker registered")
	return user, nil
}

func (s *AuthService) findByEmail(email string, role domain.Role) (domain.User, bool) {
	for _, u := range s.store.Users() {
		if u.Role == role && strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// createWorker adds a worker-role user with a generated avatar. With
// uniqueEmails set a case-insensitive duplicate email is rejected.
func createWorker(ctx context.Context, st *store.Store, uniqueEmails bool, input ports.WorkerInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if uniqueEmails {
		for _, u := range st.Users() {
			if strings.EqualFold(u.Email, email) {
				return nil, domain.ErrUserExists
			}
		}
	}

	created, err := st.AddUser(ctx, domain.User{
		Name:    name,
		Email:   email,
		Role:    domain.RoleWorker,
		Avatar:  domain.AvatarURL(name),
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
