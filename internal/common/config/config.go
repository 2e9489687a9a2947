package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/AlibekovAA/account-hub/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidURL         = errors.New("invalid url")
)

type AppConfig struct {
	HTTPPort          string
	DatabaseURL       string
	PublicBaseURL     string
	VerifyRedirectURL string
	RequestTimeout    time.Duration
	MigrateOnStart    bool
	Mail              MailConfig
}

type MailConfig struct {
	SMTPHost    string
	SMTPPort    int
	Username    string
	Password    string
	From        string
	SendTimeout time.Duration

	CircuitBreakerThreshold int
	CircuitBreakerTimeout   time.Duration
	CircuitBreakerReset     time.Duration
}

// Enabled reports whether real SMTP delivery is configured.
func (c MailConfig) Enabled() bool {
	return c.SMTPHost != ""
}

// LoadDotEnv loads the given .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

func LoadAppConfig() (AppConfig, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return AppConfig{}, err
	}

	publicBaseURL := strings.TrimRight(getEnv("PUBLIC_BASE_URL", constants.DefaultPublicBaseURL), "/")
	if err := validateURL("PUBLIC_BASE_URL", publicBaseURL); err != nil {
		return AppConfig{}, err
	}

	redirectURL := getEnv("VERIFY_REDIRECT_URL", constants.DefaultVerifyRedirectURL)
	if err := validateURL("VERIFY_REDIRECT_URL", redirectURL); err != nil {
		return AppConfig{}, err
	}

	mailCfg := MailConfig{
		SMTPHost:                getEnv("SMTP_HOST", ""),
		SMTPPort:                getIntEnv("SMTP_PORT", constants.DefaultSMTPPort),
		Username:                getEnv("SMTP_USERNAME", ""),
		Password:                getEnv("SMTP_PASSWORD", ""),
		From:                    getEnv("MAIL_FROM", ""),
		SendTimeout:             getDurationEnv("MAIL_SEND_TIMEOUT", constants.DefaultMailSendTimeout),
		CircuitBreakerThreshold: getIntEnv("MAIL_CB_THRESHOLD", constants.DefaultCircuitBreakerThreshold),
		CircuitBreakerTimeout:   getDurationEnv("MAIL_CB_TIMEOUT", constants.DefaultCircuitBreakerTimeout),
		CircuitBreakerReset:     getDurationEnv("MAIL_CB_RESET", constants.DefaultCircuitBreakerReset),
	}
	if mailCfg.Enabled() && mailCfg.From == "" {
		return AppConfig{}, fmt.Errorf("%w: MAIL_FROM", ErrMissingRequiredEnv)
	}

	return AppConfig{
		HTTPPort:          getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:       databaseURL,
		PublicBaseURL:     publicBaseURL,
		VerifyRedirectURL: redirectURL,
		RequestTimeout:    getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		MigrateOnStart:    getBoolEnv("MIGRATE_ON_START", true),
		Mail:              mailCfg,
	}, nil
}

func validateURL(key, value string) error {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %s=%q", ErrInvalidURL, key, value)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
