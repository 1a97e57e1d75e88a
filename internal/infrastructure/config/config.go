package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage backends.
const (
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Schedule ScheduleConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Ollama   OllamaConfig
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET,     default=change-me"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,      default=24h"`
	AdminPassword string        `env:"ADMIN_PASSWORD, default=password"`
	UniqueEmails  bool          `env:"UNIQUE_EMAILS,  default=true"`
}

type ScheduleConfig struct {
	DefaultJoinCode string        `env:"DEFAULT_JOIN_CODE, default=WORK2024"`
	UnassignPolicy  string        `env:"UNASSIGN_POLICY,   default=discard"`
	FollowUpWorkers int           `env:"FOLLOWUP_WORKERS,  default=4"`
	ReminderWindow  time.Duration `env:"REMINDER_WINDOW,   default=1h"`
}

type StoreConfig struct {
	Backend   string `env:"STORE_BACKEND,    default=redis"`
	KeyPrefix string `env:"STORE_KEY_PREFIX"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shiftboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type OllamaConfig struct {
	URL           string        `env:"OLLAMA_URL"`
	Model         string        `env:"OLLAMA_MODEL,         default=llama3.2"`
	Timeout       time.Duration `env:"TEXTGEN_TIMEOUT,      default=20s"`
	RatePerMinute int           `env:"TEXTGEN_RATE_PER_MIN, default=30"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendRedis, BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.Store.Backend)
	}
	switch c.Schedule.UnassignPolicy {
	case "discard", "archive":
	default:
		return fmt.Errorf("config: unknown UNASSIGN_POLICY %q", c.Schedule.UnassignPolicy)
	}
	return nil
}
