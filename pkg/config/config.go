package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Mail     MailConfig
	Schedule ScheduleConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig controls the admin login gate. The password may be supplied
// either as a bcrypt hash (preferred) or as plaintext for local setups.
type SessionConfig struct {
	Secret            string
	AdminPassword     string
	AdminPasswordHash string
	TTL               time.Duration
	CookieName        string
}

// MailConfig configures the Resend-backed notification sender.
type MailConfig struct {
	Enabled bool
	APIKey  string
	From    string
	Owner   string
	BaseURL string
	Timeout time.Duration
	Workers int
}

// ScheduleConfig holds slot generation defaults.
type ScheduleConfig struct {
	LessonMinutes int
	BufferMinutes int
	DefaultTZ     string
}

// CacheConfig tunes the public week-slot cache.
type CacheConfig struct {
	WeekTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		Secret:            v.GetString("SESSION_SECRET"),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		TTL:               parseDuration(v.GetString("SESSION_TTL"), 8*time.Hour),
		CookieName:        v.GetString("SESSION_COOKIE_NAME"),
	}

	cfg.Mail = MailConfig{
		Enabled: v.GetBool("MAIL_ENABLED"),
		APIKey:  v.GetString("RESEND_API_KEY"),
		From:    v.GetString("MAIL_FROM"),
		Owner:   v.GetString("MAIL_TO_OWNER"),
		BaseURL: v.GetString("RESEND_BASE_URL"),
		Timeout: parseDuration(v.GetString("MAIL_TIMEOUT"), 10*time.Second),
		Workers: v.GetInt("MAIL_WORKERS"),
	}

	cfg.Schedule = ScheduleConfig{
		LessonMinutes: v.GetInt("LESSON_MINUTES"),
		BufferMinutes: v.GetInt("BUFFER_MINUTES"),
		DefaultTZ:     v.GetString("DEFAULT_TZ"),
	}

	cfg.Cache = CacheConfig{
		WeekTTL: parseDuration(v.GetString("WEEK_CACHE_TTL"), 30*time.Second),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "lesson_booking")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_SECRET", "dev_secret")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("SESSION_TTL", "8h")
	v.SetDefault("SESSION_COOKIE_NAME", "admin_session")

	v.SetDefault("MAIL_ENABLED", false)
	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("MAIL_FROM", "")
	v.SetDefault("MAIL_TO_OWNER", "")
	v.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	v.SetDefault("MAIL_TIMEOUT", "10s")
	v.SetDefault("MAIL_WORKERS", 2)

	v.SetDefault("LESSON_MINUTES", 60)
	v.SetDefault("BUFFER_MINUTES", 0)
	v.SetDefault("DEFAULT_TZ", "Asia/Jerusalem")

	v.SetDefault("WEEK_CACHE_TTL", "30s")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
