package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "HH"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Env var names reused by tests and tooling.
const (
	EnvAppEnv = "HH_APP_ENV"
	EnvPort   = "HH_APP_PORT"
	EnvDBDSN  = "HH_DB_DSN"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Storage  StorageConfig
	Pricing  PricingConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HH_APP_ENV" required:"true"`
	Port         string `envconfig:"HH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"HH_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"HH_DB_DSN" default:"storefront.db"`

	MaxOpenConns    int           `envconfig:"HH_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"HH_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"HH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HH_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"HH_DB_AUTO_MIGRATE" default:"true"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

func (db *DBConfig) validate() error {
	switch strings.ToLower(db.Driver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported db driver %q (sqlite or postgres)", db.Driver)
	}
	if db.DSN == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}
	return nil
}

// StorageConfig selects the key-value backend for persisted storefront state.
type StorageConfig struct {
	Backend string `envconfig:"HH_STORAGE_BACKEND" default:"gorm"`
}

func (s StorageConfig) UseRedis() bool {
	return strings.EqualFold(s.Backend, "redis")
}

type RedisConfig struct {
	URL          string        `envconfig:"HH_REDIS_URL"`
	Address      string        `envconfig:"HH_REDIS_ADDR"`
	Password     string        `envconfig:"HH_REDIS_PASSWORD"`
	DB           int           `envconfig:"HH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HH_JWT_ISSUER" default:"handloomhouse"`
	ExpirationMinutes int    `envconfig:"HH_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// Expiration returns the configured access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HH_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HH_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HH_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HH_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HH_ARGON_KEY_LEN" default:"32"`
}

// PricingConfig carries the storefront pricing knobs; defaults mirror the
// published store policy (8% tax, free shipping at $100, $8 flat fee).
type PricingConfig struct {
	TaxRatePercent        int `envconfig:"HH_PRICING_TAX_RATE_PERCENT" default:"8"`
	FreeShippingThreshold int `envconfig:"HH_PRICING_FREE_SHIPPING_THRESHOLD" default:"100"`
	FlatShippingFee       int `envconfig:"HH_PRICING_FLAT_SHIPPING_FEE" default:"8"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"HH_CORS_ALLOWED_ORIGINS" default:"*"`
}
