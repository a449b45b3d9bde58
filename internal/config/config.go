package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BureauModeSimulator = "simulator"
	BureauModeHTTP      = "http"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL       string
	DBDriver          string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	BureauMode         string
	BureauURL          string
	BureauClientID     string
	BureauClientSecret string
	BureauTimeout      time.Duration

	SimulatorDelay              time.Duration
	SimulatorDefaultProbability float64

	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	AuthEnabled bool

	RabbitMQURL string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	CORSAllowedOrigins []string
}

// Load lê o .env (se existir) e depois o ambiente.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("APP_ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBDriver:          getEnv("DB_DRIVER", "pgx"),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		BureauMode:         strings.ToLower(getEnv("BUREAU_MODE", BureauModeSimulator)),
		BureauURL:          getEnv("BUREAU_URL", ""),
		BureauClientID:     getEnv("BUREAU_CLIENT_ID", ""),
		BureauClientSecret: getEnv("BUREAU_CLIENT_SECRET", ""),
		BureauTimeout:      getEnvDuration("BUREAU_TIMEOUT", 10*time.Second),

		SimulatorDelay:              getEnvDuration("SIMULATOR_DELAY", 300*time.Millisecond),
		SimulatorDefaultProbability: getEnvFloat("SIMULATOR_DEFAULT_PROBABILITY", 0.3),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "inadimplencia-api"),
		JWTTTL:      getEnvDuration("JWT_TTL", 24*time.Hour),
		AuthEnabled: getEnvBool("AUTH_ENABLED", false),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		MailHost: getEnv("MAIL_HOST", ""),
		MailPort: getEnvInt("MAIL_PORT", 587),
		MailUser: getEnv("MAIL_USER", ""),
		MailPass: getEnv("MAIL_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", ""),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// Validate checa o mínimo para subir o servidor.
func (c Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	switch c.BureauMode {
	case BureauModeSimulator:
		if c.SimulatorDefaultProbability < 0 || c.SimulatorDefaultProbability > 1 {
			errs = append(errs, errors.New("SIMULATOR_DEFAULT_PROBABILITY must be between 0 and 1"))
		}
	case BureauModeHTTP:
		if c.BureauURL == "" || c.BureauClientID == "" || c.BureauClientSecret == "" {
			errs = append(errs, errors.New("BUREAU_URL, BUREAU_CLIENT_ID and BUREAU_CLIENT_SECRET are required when BUREAU_MODE=http"))
		}
	default:
		errs = append(errs, fmt.Errorf("BUREAU_MODE must be %q or %q", BureauModeSimulator, BureauModeHTTP))
	}
	if c.AuthEnabled && c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required when AUTH_ENABLED=true"))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func (c Config) IsLocal() bool {
	return c.Env == "local"
}

func (c Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

func (c Config) MailEnabled() bool {
	return c.MailHost != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		n := strings.ToLower(strings.TrimSpace(v))
		return n == "1" || n == "true" || n == "yes"
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
