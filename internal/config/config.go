package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Argon2    Argon2Config
	AMQP      AMQPConfig
	SMTP      SMTPConfig
	Reconcile ReconcileConfig
	Log       LogConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver          string // postgres or sqlite
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	Path            string // sqlite file path
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	SecretKey   string
	ExpiryHours int
}

type Argon2Config struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength int
}

type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	NotifyTo []string
}

type ReconcileConfig struct {
	Schedule string
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// envBindings maps viper keys to the environment variables that override them.
var envBindings = map[string]string{
	"server.port":                "PORT",
	"server.env":                 "APP_ENV",
	"database.driver":            "DATABASE_DRIVER",
	"database.host":              "DATABASE_HOST",
	"database.port":              "DATABASE_PORT",
	"database.user":              "DATABASE_USER",
	"database.password":          "DATABASE_PASSWORD",
	"database.name":              "DATABASE_NAME",
	"database.ssl_mode":          "DATABASE_SSL_MODE",
	"database.path":              "DATABASE_PATH",
	"database.max_open_conns":    "DATABASE_MAX_OPEN_CONNS",
	"database.max_idle_conns":    "DATABASE_MAX_IDLE_CONNS",
	"database.conn_max_lifetime": "DATABASE_CONN_MAX_LIFETIME",
	"database.auto_migrate":      "DATABASE_AUTO_MIGRATE",
	"redis.host":                 "REDIS_HOST",
	"redis.port":                 "REDIS_PORT",
	"redis.password":             "REDIS_PASSWORD",
	"redis.db":                   "REDIS_DB",
	"jwt.secret_key":             "JWT_SECRET_KEY",
	"jwt.expiry_hours":           "JWT_EXPIRY_HOURS",
	"argon2.time":                "ARGON2_TIME",
	"argon2.memory":              "ARGON2_MEMORY",
	"argon2.threads":             "ARGON2_THREADS",
	"argon2.key_length":          "ARGON2_KEY_LENGTH",
	"argon2.salt_length":         "ARGON2_SALT_LENGTH",
	"amqp.url":                   "AMQP_URL",
	"amqp.exchange":              "AMQP_EXCHANGE",
	"amqp.queue":                 "AMQP_QUEUE",
	"smtp.host":                  "SMTP_HOST",
	"smtp.port":                  "SMTP_PORT",
	"smtp.username":              "SMTP_USERNAME",
	"smtp.password":              "SMTP_PASSWORD",
	"smtp.from":                  "SMTP_FROM",
	"notify.to":                  "NOTIFY_TO",
	"reconcile.schedule":         "RECONCILE_SCHEDULE",
	"log.level":                  "LOG_LEVEL",
	"log.format":                 "LOG_FORMAT",
	"cors.allowed_origins":       "CORS_ALLOWED_ORIGINS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.name", "expense_tracker")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "expense_tracker.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret_key", "development-secret-change-me")
	v.SetDefault("jwt.expiry_hours", 168)

	v.SetDefault("argon2.time", 1)
	v.SetDefault("argon2.memory", 64*1024)
	v.SetDefault("argon2.threads", 4)
	v.SetDefault("argon2.key_length", 32)
	v.SetDefault("argon2.salt_length", 16)

	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "expense-tracker")
	v.SetDefault("amqp.queue", "transactions.recorded")

	v.SetDefault("smtp.port", "587")
	v.SetDefault("reconcile.schedule", "@every 1h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("cors.allowed_origins", "http://localhost:5173")
}

// Load reads envFile (when present) into the process environment and builds the
// configuration from viper defaults overridden by environment variables.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port: v.GetString("server.port"),
			Env:  v.GetString("server.env"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("database.driver")),
			Host:            v.GetString("database.host"),
			Port:            v.GetString("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			Name:            v.GetString("database.name"),
			SSLMode:         v.GetString("database.ssl_mode"),
			Path:            v.GetString("database.path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			AutoMigrate:     v.GetBool("database.auto_migrate"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey:   v.GetString("jwt.secret_key"),
			ExpiryHours: v.GetInt("jwt.expiry_hours"),
		},
		Argon2: Argon2Config{
			Time:       v.GetUint32("argon2.time"),
			Memory:     v.GetUint32("argon2.memory"),
			Threads:    uint8(v.GetUint("argon2.threads")),
			KeyLength:  v.GetUint32("argon2.key_length"),
			SaltLength: v.GetInt("argon2.salt_length"),
		},
		AMQP: AMQPConfig{
			URL:      v.GetString("amqp.url"),
			Exchange: v.GetString("amqp.exchange"),
			Queue:    v.GetString("amqp.queue"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("smtp.host"),
			Port:     v.GetString("smtp.port"),
			Username: v.GetString("smtp.username"),
			Password: v.GetString("smtp.password"),
			From:     v.GetString("smtp.from"),
			NotifyTo: splitList(v.GetString("notify.to")),
		},
		Reconcile: ReconcileConfig{
			Schedule: reconcileSchedule(v.GetString("reconcile.schedule")),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
		},
	}
}

// IsProduction reports whether the service runs with production safeguards.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		errs = append(errs, fmt.Errorf("server.port must be numeric, got %q", c.Server.Port))
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.Name == "" {
			errs = append(errs, errors.New("database.host and database.name are required for postgres"))
		}
	case "sqlite":
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver))
	}

	if c.JWT.SecretKey == "" {
		errs = append(errs, errors.New("jwt.secret_key is required"))
	} else if c.IsProduction() && len(c.JWT.SecretKey) < 32 {
		errs = append(errs, errors.New("jwt.secret_key must be at least 32 characters in production"))
	}
	if c.JWT.ExpiryHours <= 0 {
		errs = append(errs, errors.New("jwt.expiry_hours must be positive"))
	}
	if c.Argon2.SaltLength < 8 || c.Argon2.KeyLength < 16 {
		errs = append(errs, errors.New("argon2.salt_length must be >= 8 and argon2.key_length >= 16"))
	}

	return errors.Join(errs...)
}

// reconcileSchedule maps "off" to an empty schedule, which disables the job.
func reconcileSchedule(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "off") {
		return ""
	}
	return raw
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
