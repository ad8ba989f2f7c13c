package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Cart         CartConfig
	Store        StoreConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	Payments     PaymentsConfig
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
	Env          string `envconfig:"VEERMANI_APP_ENV" required:"true"`
	Port         string `envconfig:"VEERMANI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VEERMANI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VEERMANI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"VEERMANI_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"VEERMANI_DB_DSN"`
	Driver string `envconfig:"VEERMANI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VEERMANI_DB_HOST"`
	LegacyPort     int    `envconfig:"VEERMANI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VEERMANI_DB_USER"`
	LegacyPassword string `envconfig:"VEERMANI_DB_PASSWORD"`
	LegacyName     string `envconfig:"VEERMANI_DB_NAME"`
	LegacySSLMode  string `envconfig:"VEERMANI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VEERMANI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VEERMANI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VEERMANI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VEERMANI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VEERMANI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VEERMANI_REDIS_ADDR"`
	Password     string        `envconfig:"VEERMANI_REDIS_PASSWORD"`
	DB           int           `envconfig:"VEERMANI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VEERMANI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VEERMANI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VEERMANI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VEERMANI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VEERMANI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"VEERMANI_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"VEERMANI_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"VEERMANI_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"VEERMANI_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VEERMANI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VEERMANI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VEERMANI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VEERMANI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VEERMANI_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"VEERMANI_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"VEERMANI_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"VEERMANI_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	CheckoutWindow  time.Duration `envconfig:"VEERMANI_RATE_LIMIT_CHECKOUT_WINDOW" default:"1m"`
	CheckoutIPLimit int           `envconfig:"VEERMANI_RATE_LIMIT_CHECKOUT_IP_LIMIT" default:"10"`
	BulkOrderWindow time.Duration `envconfig:"VEERMANI_RATE_LIMIT_BULK_ORDER_WINDOW" default:"5m"`
	BulkOrderLimit  int           `envconfig:"VEERMANI_RATE_LIMIT_BULK_ORDER_IP_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VEERMANI_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VEERMANI_AUTO_MIGRATE" default:"false"`
}

type CartConfig struct {
	StorefrontTTL time.Duration `envconfig:"VEERMANI_CART_STOREFRONT_TTL" default:"168h"`
	CounterTTL    time.Duration `envconfig:"VEERMANI_CART_COUNTER_TTL" default:"2h"`
}

type StoreConfig struct {
	Name           string `envconfig:"VEERMANI_STORE_NAME" default:"Veermani Kitchen"`
	InvoicePhones  string `envconfig:"VEERMANI_STORE_INVOICE_PHONES" default:"9425314543, 9425314545"`
	LedgerPageSize int    `envconfig:"VEERMANI_STORE_LEDGER_PAGE_SIZE" default:"10"`
}

// InvoicePhoneList splits the configured comma separated contact numbers.
func (s StoreConfig) InvoicePhoneList() []string {
	parts := strings.Split(s.InvoicePhones, ",")
	phones := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			phones = append(phones, trimmed)
		}
	}
	return phones
}

type GCPConfig struct {
	ProjectID              string `envconfig:"VEERMANI_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"VEERMANI_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"VEERMANI_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"VEERMANI_PUBSUB_ORDERS_TOPIC" required:"true"`
	OrdersSubscription string `envconfig:"VEERMANI_PUBSUB_ORDERS_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"VEERMANI_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"VEERMANI_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"VEERMANI_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type PaymentsConfig struct {
	OtherPaymentsLimit int `envconfig:"VEERMANI_OTHER_PAYMENTS_LIMIT" default:"10"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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
