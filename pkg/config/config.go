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
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Razorpay     RazorpayConfig
	Stripe       StripeConfig
	Gateway      GatewayConfig
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
	Env          string `envconfig:"RAMYASTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"RAMYASTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RAMYASTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RAMYASTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RAMYASTORE_DB_DSN"`
	Driver string `envconfig:"RAMYASTORE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RAMYASTORE_DB_HOST"`
	LegacyPort     int    `envconfig:"RAMYASTORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RAMYASTORE_DB_USER"`
	LegacyPassword string `envconfig:"RAMYASTORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"RAMYASTORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"RAMYASTORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RAMYASTORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RAMYASTORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RAMYASTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RAMYASTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RAMYASTORE_REDIS_URL" required:"true"`
	Password     string        `envconfig:"RAMYASTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"RAMYASTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RAMYASTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RAMYASTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RAMYASTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RAMYASTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RAMYASTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"RAMYASTORE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RAMYASTORE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"RAMYASTORE_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration returns the access token TTL.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"RAMYASTORE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"RAMYASTORE_AUTO_MIGRATE" default:"false"`
}

type RazorpayConfig struct {
	KeyID     string `envconfig:"RAMYASTORE_RAZORPAY_KEY_ID"`
	KeySecret string `envconfig:"RAMYASTORE_RAZORPAY_KEY_SECRET"`
}

type StripeConfig struct {
	APIKey     string `envconfig:"RAMYASTORE_STRIPE_API_KEY"`
	SuccessURL string `envconfig:"RAMYASTORE_STRIPE_SUCCESS_URL" default:"https://ramyastore.in/payment/success"`
	CancelURL  string `envconfig:"RAMYASTORE_STRIPE_CANCEL_URL" default:"https://ramyastore.in/payment/cancel"`
}

type GatewayConfig struct {
	CallTimeout time.Duration `envconfig:"RAMYASTORE_GATEWAY_CALL_TIMEOUT" default:"10s"`
	CallbackURL string        `envconfig:"RAMYASTORE_GATEWAY_CALLBACK_URL" default:"https://ramyastore.in/payment/callback"`
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
