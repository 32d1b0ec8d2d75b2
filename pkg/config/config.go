package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Checkout CheckoutConfig
}

// Load reads configuration from the environment. A .env file is applied
// first when present; the library has no main to do it for us.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Backend == StorageBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or FOODHUB_REDIS_ADDR is required for the redis storage backend", EnvRedisURL)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FOODHUB_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"FOODHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FOODHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig points the client at the external FoodHub REST backend.
type APIConfig struct {
	BaseURL string        `envconfig:"FOODHUB_API_BASE_URL" default:"http://localhost:8080"`
	Timeout time.Duration `envconfig:"FOODHUB_API_TIMEOUT" default:"15s"`
}

// StorageConfig selects the blob store backing the cart and its keys.
type StorageConfig struct {
	Backend      string `envconfig:"FOODHUB_STORAGE_BACKEND" default:"memory"`
	CartKey      string `envconfig:"FOODHUB_STORAGE_CART_KEY" default:"foodhub_cart"`
	OrdersKey    string `envconfig:"FOODHUB_STORAGE_ORDERS_KEY" default:"foodhub_orders"`
	AddressesKey string `envconfig:"FOODHUB_STORAGE_ADDRESSES_KEY" default:"foodhub_saved_addresses"`
	SQLitePath   string `envconfig:"FOODHUB_STORAGE_SQLITE_PATH" default:"foodhub.db"`
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case StorageBackendMemory, StorageBackendRedis, StorageBackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", s.Backend)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"FOODHUB_REDIS_URL"`
	Address      string        `envconfig:"FOODHUB_REDIS_ADDR"`
	Password     string        `envconfig:"FOODHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"FOODHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FOODHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FOODHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FOODHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FOODHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FOODHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CheckoutConfig carries pricing defaults snapshotted onto cart lines.
type CheckoutConfig struct {
	DefaultDeliveryFee float64 `envconfig:"FOODHUB_DEFAULT_DELIVERY_FEE" default:"60"`
	Currency           string  `envconfig:"FOODHUB_CURRENCY" default:"USD"`
	Locale             string  `envconfig:"FOODHUB_LOCALE" default:"en-US"`
}
