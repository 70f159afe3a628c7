package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/recon/internal/recon/archive"
	"github.com/aussiebroadwan/recon/internal/recon/notify"
	"github.com/aussiebroadwan/recon/internal/recon/service"
	"github.com/aussiebroadwan/recon/pkg/lockout"
)

type Config struct {
	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	DatabaseFile string `env:"RECON_DATABASE_FILE" envDefault:"recon.db"`
	PepperFile   string `env:"RECON_PEPPER_FILE" envDefault:"pepper"`

	Issuer         string        `env:"RECON_ISSUER" envDefault:"recon"`
	Algorithm      string        `env:"RECON_ALGORITHM" envDefault:"EdDSA"` // HS256 or EdDSA
	JWTSecret      string        `env:"JWT_SECRET"`                         // HS256 only
	SigningKeyFile string        `env:"RECON_SIGNING_KEY_FILE" envDefault:"signing.pem"`
	TokenTTL       time.Duration `env:"RECON_TOKEN_TTL" envDefault:"1h"`

	MaxAttempts   int           `env:"RECON_MAX_ATTEMPTS" envDefault:"3"`
	BlockDuration time.Duration `env:"RECON_BLOCK_DURATION" envDefault:"5m"`
	OTPTTL        time.Duration `env:"RECON_OTP_TTL" envDefault:"10m"`
	RequireOTP    bool          `env:"RECON_REQUIRE_OTP" envDefault:"false"`
	HistoryScope  string        `env:"RECON_HISTORY_SCOPE" envDefault:"shared"`

	Engine  EngineConfig      `envPrefix:"ENGINE_"`
	SMTP    notify.SMTPConfig `envPrefix:"SMTP_"`
	Archive archive.Config    `envPrefix:"ARCHIVE_"`
}

type EngineConfig struct {
	URL     string        `env:"URL" envDefault:"http://localhost:8000"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5m"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Algorithm {
	case "HS256":
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when RECON_ALGORITHM=HS256")
		}
	case "EdDSA":
	default:
		return fmt.Errorf("unsupported RECON_ALGORITHM %q (want HS256 or EdDSA)", c.Algorithm)
	}

	switch service.HistoryScope(c.HistoryScope) {
	case service.ScopeShared, service.ScopeUser:
	default:
		return fmt.Errorf("unsupported RECON_HISTORY_SCOPE %q (want shared or user)", c.HistoryScope)
	}

	if c.MaxAttempts < 1 {
		return fmt.Errorf("RECON_MAX_ATTEMPTS must be at least 1")
	}
	if c.BlockDuration <= 0 || c.OTPTTL <= 0 || c.TokenTTL <= 0 {
		return fmt.Errorf("RECON_BLOCK_DURATION, RECON_OTP_TTL and RECON_TOKEN_TTL must be positive")
	}
	if c.Engine.URL == "" {
		return fmt.Errorf("ENGINE_URL is required")
	}
	return nil
}

// LockoutPolicy returns the configured login lockout thresholds.
func (c Config) LockoutPolicy() lockout.Policy {
	return lockout.Policy{MaxAttempts: c.MaxAttempts, BlockDuration: c.BlockDuration}
}
