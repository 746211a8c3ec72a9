package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application level configuration loaded from .env, environment and flags.
type Config struct {
	RunAddress  string `envconfig:"RUN_ADDRESS"`
	Port        string `envconfig:"PORT"`
	DatabaseURI string `envconfig:"DATABASE_URI"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	PublicBaseURL       string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
	Currency            string `envconfig:"CURRENCY" default:"myr"`
	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET"`
	StripeAPIURL        string `envconfig:"STRIPE_API_URL"`

	RentalAPIKey    string        `envconfig:"SMS_ACTIVATE_API_KEY"`
	RentalBaseURL   string        `envconfig:"SMS_ACTIVATE_BASE_URL" default:"https://sms-activate.ru/stubs/handler_api.php"`
	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`

	OTPPollAttempts  int           `envconfig:"OTP_POLL_ATTEMPTS" default:"10"`
	OTPPollDelay     time.Duration `envconfig:"OTP_POLL_DELAY" default:"10s"`
	OTPWorkers       int           `envconfig:"OTP_WORKERS" default:"4"`
	OTPSweepInterval time.Duration `envconfig:"OTP_SWEEP_INTERVAL" default:"30s"`
	OTPSweepBatch    int           `envconfig:"OTP_SWEEP_BATCH" default:"32"`

	AdminLogin        string `envconfig:"ADMIN_LOGIN" default:"admin"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
	TokenSecret       string `envconfig:"TOKEN_SECRET" default:"change-me-in-production"`
	TokenSecretFile   string `envconfig:"TOKEN_SECRET_FILE"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

const (
	defaultRunAddress       = ":8080"
	defaultUpstreamTimeout  = 10 * time.Second
	defaultOTPPollAttempts  = 10
	defaultOTPPollDelay     = 10 * time.Second
	defaultOTPWorkers       = 4
	defaultOTPSweepInterval = 30 * time.Second
	defaultOTPSweepBatch    = 32
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from .env file, environment variables and flags.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
		if cfg.Port != "" {
			cfg.RunAddress = ":" + strings.TrimPrefix(cfg.Port, ":")
		}
	}

	flags := flag.NewFlagSet("vouchermart", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.PublicBaseURL, "public-url", cfg.PublicBaseURL, "Public base URL used for checkout redirects")
	flags.StringVar(&cfg.RentalBaseURL, "rental-url", cfg.RentalBaseURL, "Number rental API endpoint")
	flags.IntVar(&cfg.OTPWorkers, "otp-workers", cfg.OTPWorkers, "Number of concurrent OTP pollers")
	flags.IntVar(&cfg.OTPPollAttempts, "otp-attempts", cfg.OTPPollAttempts, "OTP status checks per order")
	flags.DurationVar(&cfg.OTPPollDelay, "otp-delay", cfg.OTPPollDelay, "Delay between OTP status checks")
	flags.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.TokenSecretFile != "" {
		content, err := os.ReadFile(cfg.TokenSecretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = defaultUpstreamTimeout
	}

	if cfg.OTPPollAttempts <= 0 {
		cfg.OTPPollAttempts = defaultOTPPollAttempts
	}

	if cfg.OTPPollDelay <= 0 {
		cfg.OTPPollDelay = defaultOTPPollDelay
	}

	if cfg.OTPWorkers <= 0 {
		cfg.OTPWorkers = defaultOTPWorkers
	}

	if cfg.OTPSweepInterval <= 0 {
		cfg.OTPSweepInterval = defaultOTPSweepInterval
	}

	if cfg.OTPSweepBatch <= 0 {
		cfg.OTPSweepBatch = defaultOTPSweepBatch
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe secret key must be provided")
	}

	return &cfg, nil
}

// RentalConfigured reports whether fulfillment may call the rental API.
func (c *Config) RentalConfigured() bool {
	return c.RentalAPIKey != ""
}

// OTPPollBudget is the longest a single order's OTP poll can run.
func (c *Config) OTPPollBudget() time.Duration {
	return time.Duration(c.OTPPollAttempts) * (c.OTPPollDelay + c.UpstreamTimeout)
}
