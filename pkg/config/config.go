package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable read by envconfig.
	EnvPrefix = "QUOTEDESK"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "QUOTEDESK_DB_DSN"
	EnvDBHost = "QUOTEDESK_DB_HOST"
	EnvDBUser = "QUOTEDESK_DB_USER"
	EnvDBName = "QUOTEDESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Images       ImagesConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"QUOTEDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"QUOTEDESK_APP_PORT" required:"true"`
	CompanyName  string `envconfig:"QUOTEDESK_COMPANY_NAME" default:"QuoteDesk"`
	LogLevel     string `envconfig:"QUOTEDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUOTEDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"QUOTEDESK_DB_DSN"`
	Driver string `envconfig:"QUOTEDESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"QUOTEDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"QUOTEDESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"QUOTEDESK_DB_USER"`
	LegacyPassword string `envconfig:"QUOTEDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"QUOTEDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"QUOTEDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUOTEDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUOTEDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUOTEDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUOTEDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QUOTEDESK_REDIS_URL"`
	Address      string        `envconfig:"QUOTEDESK_REDIS_ADDR"`
	Password     string        `envconfig:"QUOTEDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUOTEDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUOTEDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUOTEDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUOTEDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUOTEDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUOTEDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// ImagesConfig bounds the fetch-and-encode path used when embedding product
// images into printable documents.
type ImagesConfig struct {
	FetchTimeout time.Duration `envconfig:"QUOTEDESK_IMAGE_FETCH_TIMEOUT" default:"10s"`
	MaxBytes     int64         `envconfig:"QUOTEDESK_IMAGE_MAX_BYTES" default:"5242880"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"QUOTEDESK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"QUOTEDESK_AUTO_MIGRATE" default:"false"`
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
