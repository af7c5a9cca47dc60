package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           string `envconfig:"PORT" default:"8080"`
	JWTSecret      string `envconfig:"JWT_SECRET" required:"true"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS"`

	// Sections are decoded separately so their keys stay unprefixed.
	Database Database    `ignored:"true"`
	Redis    Redis       `ignored:"true"`
	Log      Log         `ignored:"true"`
	Invites  InviteCache `ignored:"true"`
	Push     Push        `ignored:"true"`
	Dispatch Dispatch    `ignored:"true"`
	Socket   Socket      `ignored:"true"`

	OTelCollectorURL string `envconfig:"OTEL_COLLECTOR_URL"`
	MaxMessageLength int    `envconfig:"MAX_MESSAGE_LENGTH" default:"4000"`
}

type Database struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"messaging"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
	File   string `envconfig:"LOG_FILE"`
}

// InviteCache bounds the pending-invite cache. TTL decides freshness on read,
// StaleAfter decides eviction by the sweeper.
type InviteCache struct {
	TTL        time.Duration `envconfig:"INVITE_CACHE_TTL" default:"2m"`
	StaleAfter time.Duration `envconfig:"INVITE_CACHE_STALE_AFTER" default:"10m"`
	SweepEvery time.Duration `envconfig:"INVITE_CACHE_SWEEP_EVERY" default:"15m"`
}

type Push struct {
	Timeout         time.Duration `envconfig:"PUSH_TIMEOUT" default:"5s"`
	RatePerSecond   float64       `envconfig:"PUSH_RATE_PER_SECOND" default:"50"`
	Burst           int           `envconfig:"PUSH_BURST" default:"20"`
	FCMProjectID    string        `envconfig:"FCM_PROJECT_ID"`
	CredentialsFile string        `envconfig:"FCM_CREDENTIALS_FILE"`
}

func (p Push) Enabled() bool {
	return p.FCMProjectID != "" && p.CredentialsFile != ""
}

type Dispatch struct {
	Workers   int `envconfig:"DISPATCH_WORKERS" default:"4"`
	QueueSize int `envconfig:"DISPATCH_QUEUE_SIZE" default:"1024"`
}

type Socket struct {
	AuthTimeout  time.Duration `envconfig:"WS_AUTH_TIMEOUT" default:"10s"`
	SendBuffer   int           `envconfig:"WS_SEND_BUFFER" default:"64"`
	PingInterval time.Duration `envconfig:"WS_PING_INTERVAL" default:"30s"`
	PongTimeout  time.Duration `envconfig:"WS_PONG_TIMEOUT" default:"90s"`
}

// Load reads an optional .env file and decodes the environment into Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	var cfg Config
	sections := []any{&cfg, &cfg.Database, &cfg.Redis, &cfg.Log, &cfg.Invites, &cfg.Push, &cfg.Dispatch, &cfg.Socket}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Invites.TTL <= 0 {
		return errors.New("INVITE_CACHE_TTL must be positive")
	}
	if c.Invites.StaleAfter < c.Invites.TTL {
		return errors.New("INVITE_CACHE_STALE_AFTER must not be shorter than INVITE_CACHE_TTL")
	}
	if c.Push.Timeout <= 0 {
		return errors.New("PUSH_TIMEOUT must be positive")
	}
	if c.Dispatch.Workers < 1 || c.Dispatch.QueueSize < 1 {
		return errors.New("DISPATCH_WORKERS and DISPATCH_QUEUE_SIZE must be at least 1")
	}
	if c.Socket.SendBuffer < 1 {
		return errors.New("WS_SEND_BUFFER must be at least 1")
	}
	if c.MaxMessageLength < 1 {
		return errors.New("MAX_MESSAGE_LENGTH must be at least 1")
	}
	return nil
}
