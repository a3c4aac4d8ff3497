package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SUSTAINSPORTS_APP_ENV" default:"dev"`
	Port         string `envconfig:"SUSTAINSPORTS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SUSTAINSPORTS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SUSTAINSPORTS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the key-value persistence backend. The memory driver
// keeps everything in-process; sqlite and postgres persist through a single
// kv_entries table; redis maps each namespace key onto a redis key.
type StorageConfig struct {
	Driver      string `envconfig:"SUSTAINSPORTS_STORAGE_DRIVER" default:"memory"`
	DSN         string `envconfig:"SUSTAINSPORTS_STORAGE_DSN"`
	KeyPrefix   string `envconfig:"SUSTAINSPORTS_STORAGE_KEY_PREFIX" default:"sustainsports:"`
	AutoMigrate bool   `envconfig:"SUSTAINSPORTS_STORAGE_AUTO_MIGRATE" default:"true"`
}

func (s *StorageConfig) validate() error {
	driver := strings.ToLower(strings.TrimSpace(s.Driver))
	switch driver {
	case StorageDriverMemory, StorageDriverRedis:
	case StorageDriverSQLite, StorageDriverPostgres:
		if s.DSN == "" {
			return fmt.Errorf("SUSTAINSPORTS_STORAGE_DSN is required for driver %q", driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", s.Driver)
	}
	s.Driver = driver
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"SUSTAINSPORTS_REDIS_URL"`
	Address      string        `envconfig:"SUSTAINSPORTS_REDIS_ADDR"`
	Password     string        `envconfig:"SUSTAINSPORTS_REDIS_PASSWORD"`
	DB           int           `envconfig:"SUSTAINSPORTS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SUSTAINSPORTS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SUSTAINSPORTS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SUSTAINSPORTS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SUSTAINSPORTS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SUSTAINSPORTS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SUSTAINSPORTS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SUSTAINSPORTS_JWT_ISSUER" default:"sustainsports"`
	ExpirationMinutes int    `envconfig:"SUSTAINSPORTS_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int           `envconfig:"SUSTAINSPORTS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int           `envconfig:"SUSTAINSPORTS_ARGON_TIME" default:"3"`
	ArgonParallelism int           `envconfig:"SUSTAINSPORTS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int           `envconfig:"SUSTAINSPORTS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int           `envconfig:"SUSTAINSPORTS_ARGON_KEY_LEN" default:"32"`
	ResetTokenTTL    time.Duration `envconfig:"SUSTAINSPORTS_RESET_TOKEN_TTL" default:"1h"`
}

type CheckoutConfig struct {
	TaxRate        float64 `envconfig:"SUSTAINSPORTS_CHECKOUT_TAX_RATE" default:"0.08"`
	ShippingMethod string  `envconfig:"SUSTAINSPORTS_CHECKOUT_SHIPPING_METHOD" default:"Standard Eco-Shipping (3-5 days)"`
}

// TaxRateDecimal returns the configured tax rate as an exact decimal.
func (c CheckoutConfig) TaxRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.TaxRate)
}
