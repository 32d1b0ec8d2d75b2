package config

// EnvPrefix is passed to envconfig; the full variable names live on the
// struct tags, so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names reused by tests and tooling.
const (
	EnvAppEnv             = "FOODHUB_APP_ENV"
	EnvLogLevel           = "FOODHUB_LOG_LEVEL"
	EnvAPIBaseURL         = "FOODHUB_API_BASE_URL"
	EnvStorageBackend     = "FOODHUB_STORAGE_BACKEND"
	EnvStorageCartKey     = "FOODHUB_STORAGE_CART_KEY"
	EnvRedisURL           = "FOODHUB_REDIS_URL"
	EnvDefaultDeliveryFee = "FOODHUB_DEFAULT_DELIVERY_FEE"
	EnvCurrency           = "FOODHUB_CURRENCY"
	EnvLocale             = "FOODHUB_LOCALE"
)

// Storage backend identifiers.
const (
	StorageBackendMemory = "memory"
	StorageBackendRedis  = "redis"
	StorageBackendSQLite = "sqlite"
)
