package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	DBDriver        string
	PostgresURL     string
	SQLitePath      string
	DBMaxOpenConns  int
	ShutdownTimeout time.Duration

	AuthProvider            string
	JWTSecret               string
	JWTTTL                  time.Duration
	FirebaseCredentialsPath string

	MetricsPort string

	TimelineDefaultLimit int
	TimelineMaxLimit     int
	CommentsDefaultLimit int
	CommentsMaxLimit     int

	RateLimitRPS         float64
	RateLimitBurst       int
	LoginRateLimitPerMin int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("POSTGRES_CONN_STR", "")
	v.SetDefault("SQLITE_PATH", "friendfeed.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("AUTH_PROVIDER", "jwt")
	v.SetDefault("JWT_SECRET", "supersecretjwtkey")
	v.SetDefault("JWT_TTL", "72h")
	v.SetDefault("FIREBASE_CREDENTIALS_PATH", "")
	v.SetDefault("METRICS_PORT", "9090")
	v.SetDefault("TIMELINE_DEFAULT_LIMIT", 20)
	v.SetDefault("TIMELINE_MAX_LIMIT", 50)
	v.SetDefault("COMMENTS_DEFAULT_LIMIT", 50)
	v.SetDefault("COMMENTS_MAX_LIMIT", 100)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 30)
	v.SetDefault("LOGIN_RATE_LIMIT_PER_MIN", 5)
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return v
}

// FromViper builds a validated Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                    v.GetString("PORT"),
		Env:                     v.GetString("ENV"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		DBDriver:                strings.ToLower(v.GetString("DB_DRIVER")),
		PostgresURL:             v.GetString("POSTGRES_CONN_STR"),
		SQLitePath:              v.GetString("SQLITE_PATH"),
		DBMaxOpenConns:          v.GetInt("DB_MAX_OPEN_CONNS"),
		ShutdownTimeout:         v.GetDuration("SHUTDOWN_TIMEOUT"),
		AuthProvider:            strings.ToLower(v.GetString("AUTH_PROVIDER")),
		JWTSecret:               v.GetString("JWT_SECRET"),
		JWTTTL:                  v.GetDuration("JWT_TTL"),
		FirebaseCredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
		MetricsPort:             v.GetString("METRICS_PORT"),
		TimelineDefaultLimit:    v.GetInt("TIMELINE_DEFAULT_LIMIT"),
		TimelineMaxLimit:        v.GetInt("TIMELINE_MAX_LIMIT"),
		CommentsDefaultLimit:    v.GetInt("COMMENTS_DEFAULT_LIMIT"),
		CommentsMaxLimit:        v.GetInt("COMMENTS_MAX_LIMIT"),
		RateLimitRPS:            v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:          v.GetInt("RATE_LIMIT_BURST"),
		LoginRateLimitPerMin:    v.GetInt("LOGIN_RATE_LIMIT_PER_MIN"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres":
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH environment variable not set")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.AuthProvider {
	case "jwt":
	case "firebase":
		if c.FirebaseCredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH must be set when AUTH_PROVIDER=firebase")
		}
	default:
		return fmt.Errorf("unsupported AUTH_PROVIDER %q", c.AuthProvider)
	}
	if c.TimelineMaxLimit < 1 || c.CommentsMaxLimit < 1 {
		return fmt.Errorf("page size maximums must be at least 1")
	}
	if c.TimelineDefaultLimit < 1 || c.TimelineDefaultLimit > c.TimelineMaxLimit {
		return fmt.Errorf("TIMELINE_DEFAULT_LIMIT must be within [1, TIMELINE_MAX_LIMIT]")
	}
	if c.CommentsDefaultLimit < 1 || c.CommentsDefaultLimit > c.CommentsMaxLimit {
		return fmt.Errorf("COMMENTS_DEFAULT_LIMIT must be within [1, COMMENTS_MAX_LIMIT]")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
