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
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Engine   EngineConfig
	Cache    CacheConfig
	Archive  ArchiveConfig
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
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// EngineConfig tunes the timetable assignment engine.
type EngineConfig struct {
	// SolveBudget is the wall-clock cutoff for one exact solve.
	SolveBudget time.Duration
	// WeeksInTerm converts a course's total hours into weekly sessions.
	WeeksInTerm int
	// FallbackEnrollment is assumed when a course has no enrollment records.
	FallbackEnrollment int
	// Heuristic draft parameters.
	DraftMinPeriodsPerDay int
	DraftMaxPeriodsPerDay int
	DraftMiddayDropChance float64
	DraftSeed             int64
}

// CacheConfig governs the published-timetable read cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// ArchiveConfig governs on-disk snapshots of published timetables.
type ArchiveConfig struct {
	Enabled bool
	Dir     string
	// TTL bounds both snapshot retention and download-token validity.
	TTL           time.Duration
	Workers       int
	SigningSecret string
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
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Engine = EngineConfig{
		SolveBudget:           parseDuration(v.GetString("ENGINE_SOLVE_BUDGET"), 60*time.Second),
		WeeksInTerm:           v.GetInt("ENGINE_WEEKS_IN_TERM"),
		FallbackEnrollment:    v.GetInt("ENGINE_FALLBACK_ENROLLMENT"),
		DraftMinPeriodsPerDay: v.GetInt("ENGINE_DRAFT_MIN_PERIODS"),
		DraftMaxPeriodsPerDay: v.GetInt("ENGINE_DRAFT_MAX_PERIODS"),
		DraftMiddayDropChance: v.GetFloat64("ENGINE_DRAFT_MIDDAY_DROP_CHANCE"),
		DraftSeed:             v.GetInt64("ENGINE_DRAFT_SEED"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_TIMETABLE_CACHE"),
		TTL:     parseDuration(v.GetString("TIMETABLE_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Archive = ArchiveConfig{
		Enabled:       v.GetBool("ARCHIVE_ENABLED"),
		Dir:           v.GetString("ARCHIVE_DIR"),
		TTL:           parseDuration(v.GetString("ARCHIVE_TTL"), 30*24*time.Hour),
		Workers:       v.GetInt("ARCHIVE_WORKERS"),
		SigningSecret: v.GetString("ARCHIVE_SIGNING_SECRET"),
	}
	if cfg.Archive.SigningSecret == "" {
		cfg.Archive.SigningSecret = cfg.JWT.Secret
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
	v.SetDefault("DB_NAME", "timetable")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENGINE_SOLVE_BUDGET", "60s")
	v.SetDefault("ENGINE_WEEKS_IN_TERM", 15)
	v.SetDefault("ENGINE_FALLBACK_ENROLLMENT", 30)
	v.SetDefault("ENGINE_DRAFT_MIN_PERIODS", 4)
	v.SetDefault("ENGINE_DRAFT_MAX_PERIODS", 6)
	v.SetDefault("ENGINE_DRAFT_MIDDAY_DROP_CHANCE", 0.7)
	v.SetDefault("ENGINE_DRAFT_SEED", 0)

	v.SetDefault("ENABLE_TIMETABLE_CACHE", false)
	v.SetDefault("TIMETABLE_CACHE_TTL", "10m")

	v.SetDefault("ARCHIVE_ENABLED", true)
	v.SetDefault("ARCHIVE_DIR", "./archives")
	v.SetDefault("ARCHIVE_TTL", "720h")
	v.SetDefault("ARCHIVE_WORKERS", 1)
	v.SetDefault("ARCHIVE_SIGNING_SECRET", "")
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
