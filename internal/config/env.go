package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix scopes every environment variable read by Load.
const EnvPrefix = "QRCHECKIN_"

// Endpoints are the webhook URLs the kiosk talks to.
type Endpoints struct {
	CheckIn    string `env:"CHECKIN_URL" envDefault:"https://n8n.frog-jump.com/webhook/716308eb-2cba-480e-8a72-f96de4461e42"`
	Confirm    string `env:"CONFIRM_URL" envDefault:"https://n8n.frog-jump.com/webhook/fee6b282-61b0-4a43-9105-f2b58a18082f"`
	Lookup     string `env:"LOOKUP_URL" envDefault:"https://frogjump-n8n.ddns.net/webhook/716308eb-2cba-480e-8a72-f96de4461e42"`
	NoShowList string `env:"NO_SHOW_URL" envDefault:"https://frogjump-n8n.ddns.net/webhook/b3fa8fa7-send-no-show-list"`
	Summary    string `env:"SUMMARY_URL" envDefault:"https://frogjump-n8n.ddns.net/webhook/b3fa8fa7-send-summary"`
}

// Config is built once at startup and passed to every component.
type Config struct {
	Endpoints Endpoints

	EventID        string        `env:"EVENT_ID" envDefault:"20260314"`
	DefaultToken   string        `env:"DEFAULT_TOKEN" envDefault:"8Kx9mN4pQ7vR2aYu"`
	RedirectDelay  time.Duration `env:"REDIRECT_DELAY" envDefault:"200ms"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	CameraDevice string `env:"CAMERA_DEVICE" envDefault:"/dev/video0"`
	DataDir      string `env:"DATA_DIR" envDefault:"."`
	LogFile      string `env:"LOG_FILE" envDefault:"qr-checkin.log"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	Locale       string `env:"LOCALE" envDefault:"zh-TW"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`

	// Demo runs against the built-in webhook and a synthetic camera.
	Demo bool `env:"DEMO" envDefault:"false"`
	// DemoCredential is the DEAuth value the demo webhook accepts.
	DemoCredential string `env:"DEMO_CREDENTIAL" envDefault:"demo"`
}

// Load reads an optional .env file, then the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.EventID) == "" {
		return errors.New("event id is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.RedirectDelay < 0 {
		return fmt.Errorf("redirect delay must not be negative, got %s", c.RedirectDelay)
	}
	return nil
}
