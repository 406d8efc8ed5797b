package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Auth         AuthConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	LiveView     LiveViewConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SUPPLYLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"SUPPLYLINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SUPPLYLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SUPPLYLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SUPPLYLINE_DB_DSN"`
	Driver string `envconfig:"SUPPLYLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SUPPLYLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"SUPPLYLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SUPPLYLINE_DB_USER"`
	LegacyPassword string `envconfig:"SUPPLYLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SUPPLYLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SUPPLYLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SUPPLYLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SUPPLYLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SUPPLYLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SUPPLYLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SUPPLYLINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SUPPLYLINE_REDIS_ADDR"`
	Password     string        `envconfig:"SUPPLYLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SUPPLYLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SUPPLYLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SUPPLYLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SUPPLYLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SUPPLYLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SUPPLYLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SUPPLYLINE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SUPPLYLINE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SUPPLYLINE_JWT_EXPIRATION_MINUTES" default:"720"`
}

type AuthConfig struct {
	// AllowedEmailDomain is the single domain permitted to sign in, e.g. "crestviewems.org".
	AllowedEmailDomain string        `envconfig:"SUPPLYLINE_AUTH_ALLOWED_EMAIL_DOMAIN" required:"true"`
	IdleTimeout        time.Duration `envconfig:"SUPPLYLINE_AUTH_IDLE_TIMEOUT" default:"30m"`
}

// IdleTTL returns the redis session TTL enforcing the inactivity sign-out.
func (a AuthConfig) IdleTTL() time.Duration {
	if a.IdleTimeout <= 0 {
		return 30 * time.Minute
	}
	return a.IdleTimeout
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SUPPLYLINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SUPPLYLINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SUPPLYLINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SUPPLYLINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SUPPLYLINE_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SUPPLYLINE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SUPPLYLINE_AUTO_MIGRATE" default:"false"`
}

type LiveViewConfig struct {
	// RebuildDebounce caps how often a burst of change notifications triggers a
	// full recompute. Zero disables debouncing.
	RebuildDebounce time.Duration `envconfig:"SUPPLYLINE_LIVEVIEW_REBUILD_DEBOUNCE" default:"0"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	if db.LegacyHost == "" {
		missing = append(missing, "SUPPLYLINE_DB_HOST")
	}
	if db.LegacyUser == "" {
		missing = append(missing, "SUPPLYLINE_DB_USER")
	}
	if db.LegacyName == "" {
		missing = append(missing, "SUPPLYLINE_DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("either SUPPLYLINE_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
