package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	MailProviderSMTP     = "smtp"
	MailProviderSendGrid = "sendgrid"
	MailProviderFake     = "fake"
)

type Config struct {
	// App
	Env     string // dev / staging / prod
	AppName string

	// HTTP
	HTTPAddr           string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	CORSAllowedOrigins []string

	// Auth / Security
	JWTSecret      string
	JWTIssuer      string
	SessionTTL     time.Duration
	BcryptCost     int
	InternalSecret string

	// Postgres
	DatabaseURL   string
	DBAutoMigrate bool
	DBDebug       bool

	// Redis (optional)
	RedisURL           string
	TicketListCacheTTL time.Duration

	// RabbitMQ (optional)
	RabbitURL      string
	RabbitExchange string

	// Mail
	MailProvider   string
	MailFrom       string
	MailFromName   string
	MailTimeout    time.Duration
	MailFakeFail   string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	SMTPInsecure   bool
	SendGridAPIKey string

	// Rate limiting
	RLEnabled    bool
	RLLimit      int
	RLWindow     time.Duration
	LoginRLLimit int
}

// IsDev reports whether insecure conveniences (fake mail, plain cookies) are allowed.
func (c *Config) IsDev() bool { return c.Env == "dev" }

func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		Env:            getEnv("ENV", "dev"),
		AppName:        getEnv("APP_NAME", "HelpDesk"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		JWTIssuer:      getEnv("JWT_ISSUER", "helpdesk"),
		InternalSecret: getEnv("INTERNAL_SECRET", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		RabbitURL:      getEnv("RABBIT_URL", ""),
		RabbitExchange: getEnv("RABBIT_EXCHANGE", "helpdesk.events"),
		MailProvider:   strings.ToLower(getEnv("MAIL_PROVIDER", MailProviderFake)),
		MailFromName:   getEnv("MAIL_FROM_NAME", "HelpDesk"),
		MailFakeFail:   getEnv("MAIL_FAKE_FAIL_MODE", ""),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
	}
	cfg.MailFrom = getEnv("MAIL_FROM", cfg.SMTPUsername)
	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", ""))

	// required values
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("missing required env var: DATABASE_URL")
	}
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.TicketListCacheTTL, err = getDuration("TICKET_LIST_CACHE_TTL", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.MailTimeout, err = getDuration("MAIL_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPReadTimeout, err = getDuration("HTTP_READ_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPWriteTimeout, err = getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPIdleTimeout, err = getDuration("HTTP_IDLE_TIMEOUT", time.Minute); err != nil {
		return nil, err
	}
	if cfg.RLWindow, err = getDuration("RL_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	if cfg.BcryptCost, err = getInt("BCRYPT_COST", 12); err != nil {
		return nil, err
	}
	if cfg.SMTPPort, err = getInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.RLLimit, err = getInt("RL_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.LoginRLLimit, err = getInt("LOGIN_RL_LIMIT", 10); err != nil {
		return nil, err
	}

	if cfg.DBAutoMigrate, err = getBool("DB_AUTOMIGRATE", true); err != nil {
		return nil, err
	}
	if cfg.DBDebug, err = getBool("DB_DEBUG", false); err != nil {
		return nil, err
	}
	if cfg.SMTPInsecure, err = getBool("SMTP_INSECURE", false); err != nil {
		return nil, err
	}
	if cfg.RLEnabled, err = getBool("RL_ENABLED", true); err != nil {
		return nil, err
	}

	if err := cfg.validateMail(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validateMail() error {
	switch c.MailProvider {
	case MailProviderFake:
		if !c.IsDev() {
			return fmt.Errorf("MAIL_PROVIDER=fake is only allowed when ENV=dev")
		}
		return nil
	case MailProviderSMTP:
		if c.SMTPHost == "" {
			return fmt.Errorf("smtp mail provider selected but missing SMTP_HOST")
		}
	case MailProviderSendGrid:
		if c.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid mail provider selected but missing SENDGRID_API_KEY")
		}
	default:
		return fmt.Errorf("invalid MAIL_PROVIDER %q (want smtp, sendgrid or fake)", c.MailProvider)
	}
	if c.MailFrom == "" {
		return fmt.Errorf("missing required env var: MAIL_FROM")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %q: %w", key, v, err)
	}
	return i, nil
}

func getBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid bool for %s: %q: %w", key, v, err)
	}
	return b, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
