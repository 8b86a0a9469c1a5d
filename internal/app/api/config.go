package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Storage and authentication choices.
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"

	AuthSession  = "session"
	AuthToken    = "token"
	AuthDisabled = "disabled"
)

// Config carries settings for the API process. Environment variables win
// over the optional quickbite.yaml file, which wins over defaults.
type Config struct {
	Port            string
	Environment     string
	LogLevel        string
	LogFormat       string
	OTLPEndpoint    string
	OTLPInsecure    bool
	SampleRatio     float64
	ShutdownTimeout time.Duration

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	PostgresDSN   string
	PostgresPool  int

	SessionDriver string
	SessionTTL    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthMode     string
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	SecureCookie bool

	SeedData  bool
	StaticDir string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("environment", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("trace_sample_ratio", 1.0)
	v.SetDefault("postgres_max_conns", 10)
	v.SetDefault("otel_exporter_otlp_insecure", true)
	v.SetDefault("shutdown_timeout_seconds", 10)
	v.SetDefault("store_driver", DriverMemory)
	v.SetDefault("mongo_uri", "")
	v.SetDefault("mongo_database", "quickbite")
	v.SetDefault("session_driver", DriverMemory)
	v.SetDefault("session_ttl_hours", 24)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("auth_mode", AuthSession)
	v.SetDefault("jwt_ttl_minutes", 60)
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("secure_cookie", false)
	v.SetDefault("seed_data", false)
	v.SetDefault("static_dir", "")
}

// LoadConfig reads environment variables and quickbite.yaml, applies
// defaults, and validates combinations that cannot work together.
func LoadConfig() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := strings.TrimSpace(v.GetString("quickbite_config")); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("quickbite")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Port:            strings.TrimSpace(v.GetString("port")),
		Environment:     v.GetString("environment"),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
		OTLPEndpoint:    strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint")),
		OTLPInsecure:    v.GetBool("otel_exporter_otlp_insecure"),
		SampleRatio:     v.GetFloat64("trace_sample_ratio"),
		ShutdownTimeout: time.Duration(v.GetInt("shutdown_timeout_seconds")) * time.Second,
		StoreDriver:     strings.ToLower(strings.TrimSpace(v.GetString("store_driver"))),
		MongoURI:        strings.TrimSpace(v.GetString("mongo_uri")),
		MongoDatabase:   strings.TrimSpace(v.GetString("mongo_database")),
		PostgresDSN:     strings.TrimSpace(v.GetString("postgres_dsn")),
		PostgresPool:    v.GetInt("postgres_max_conns"),
		SessionDriver:   strings.ToLower(strings.TrimSpace(v.GetString("session_driver"))),
		SessionTTL:      time.Duration(v.GetInt("session_ttl_hours")) * time.Hour,
		RedisAddr:       strings.TrimSpace(v.GetString("redis_addr")),
		RedisPassword:   v.GetString("redis_password"),
		RedisDB:         v.GetInt("redis_db"),
		AuthMode:        strings.ToLower(strings.TrimSpace(v.GetString("auth_mode"))),
		JWTSecret:       v.GetString("jwt_secret"),
		JWTTTL:          time.Duration(v.GetInt("jwt_ttl_minutes")) * time.Minute,
		BcryptCost:      v.GetInt("bcrypt_cost"),
		SecureCookie:    v.GetBool("secure_cookie"),
		SeedData:        v.GetBool("seed_data"),
		StaticDir:       strings.TrimSpace(v.GetString("static_dir")),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	switch c.StoreDriver {
	case DriverMemory:
	case DriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("STORE_DRIVER=mongo requires MONGO_URI"))
		}
		if c.MongoDatabase == "" {
			errs = append(errs, errors.New("STORE_DRIVER=mongo requires MONGO_DATABASE"))
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, errors.New("STORE_DRIVER=postgres requires POSTGRES_DSN"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be one of memory, mongo, postgres; got %q", c.StoreDriver))
	}
	switch c.SessionDriver {
	case DriverMemory:
	case DriverRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("SESSION_DRIVER=redis requires REDIS_ADDR"))
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, errors.New("SESSION_DRIVER=postgres requires POSTGRES_DSN"))
		}
	default:
		errs = append(errs, fmt.Errorf("SESSION_DRIVER must be one of memory, redis, postgres; got %q", c.SessionDriver))
	}
	switch c.AuthMode {
	case AuthSession, AuthDisabled:
	case AuthToken:
		if strings.TrimSpace(c.JWTSecret) == "" {
			errs = append(errs, errors.New("AUTH_MODE=token requires JWT_SECRET"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_MODE must be one of session, token, disabled; got %q", c.AuthMode))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_HOURS must be a positive integer"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL_MINUTES must be a positive integer"))
	}
	if c.RedisDB < 0 {
		errs = append(errs, errors.New("REDIS_DB must not be negative"))
	}
	switch c.LogFormat {
	case "", "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text; got %q", c.LogFormat))
	}
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		errs = append(errs, errors.New("TRACE_SAMPLE_RATIO must be between 0 and 1"))
	}
	if c.PostgresPool < 0 {
		errs = append(errs, errors.New("POSTGRES_MAX_CONNS must not be negative"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	return errors.Join(errs...)
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
