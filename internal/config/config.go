package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/suitespot/service-booking/internal/pkg/database"
)

const envPrefix = "BOOKING"

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// KafkaConfig holds broker settings. An empty broker list disables messaging.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// DatabaseConfig selects the store. DSN wins when set; otherwise the
// PostgreSQL fields are used.
type DatabaseConfig struct {
	DSN      string
	Postgres database.PostgresConfig
}

// URL returns the connection string handed to database.Connect.
func (d DatabaseConfig) URL() string {
	if d.DSN != "" {
		return d.DSN
	}
	return d.Postgres.DatabaseURL()
}

// ServiceConfig holds all configuration for the booking service.
type ServiceConfig struct {
	Port             string
	AppEnv           string
	DBConfig         DatabaseConfig
	JWTConfig        JWTConfig
	KafkaConfig      KafkaConfig
	RedisURL         string
	CORSOrigins      []string
	FeaturedCacheTTL time.Duration
	MigrationsDir    string
}

// IsProduction reports whether the service runs with production settings.
func (c *ServiceConfig) IsProduction() bool { return c.AppEnv == "production" }

// Load reads configuration from environment variables prefixed with BOOKING_,
// after loading an optional .env file.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &ServiceConfig{
		Port:   servicePort(v.GetString("SERVICE_PORT")),
		AppEnv: v.GetString("APP_ENV"),
		DBConfig: DatabaseConfig{
			DSN: v.GetString("DB_DSN"),
			Postgres: database.PostgresConfig{
				Host:     v.GetString("DB_HOST"),
				Port:     v.GetString("DB_PORT"),
				User:     v.GetString("DB_USER"),
				Password: v.GetString("DB_PASSWORD"),
				DBName:   v.GetString("DB_NAME"),
				SSLMode:  v.GetString("DB_SSLMODE"),
			},
		},
		JWTConfig: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     splitList(v.GetString("KAFKA_BROKERS")),
			GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
		},
		RedisURL:         v.GetString("REDIS_URL"),
		CORSOrigins:      splitList(v.GetString("CORS_ORIGINS")),
		FeaturedCacheTTL: v.GetDuration("FEATURED_CACHE_TTL"),
		MigrationsDir:    v.GetString("MIGRATIONS_DIR"),
	}

	if cfg.JWTConfig.Secret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("%s_JWT_SECRET must be set in production", envPrefix)
		}
		cfg.JWTConfig.Secret = "dev-secret-change-me"
	}
	if cfg.JWTConfig.TTL <= 0 {
		return nil, fmt.Errorf("%s_JWT_TTL must be positive", envPrefix)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "suitespot_booking")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", 365*24*time.Hour)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_GROUP_PREFIX", "suitespot-")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174")
	v.SetDefault("FEATURED_CACHE_TTL", time.Minute)
	v.SetDefault("MIGRATIONS_DIR", "migrations")
}

// servicePort turns "8080" into ":8080" and leaves full addresses alone.
func servicePort(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
