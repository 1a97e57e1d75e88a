package ports

import (
	"context"

	"github.com/asservice/shiftboard/internal/core/domain"
)

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	JoinCode string
	Name     string
	Email    string
	Phone    string
	Address  string
}

type AuthService interface {
	Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
}
