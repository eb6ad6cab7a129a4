package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Rotation      RotationConfig
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
	Env          string `envconfig:"CLINICROTA_APP_ENV" required:"true"`
	Port         string `envconfig:"CLINICROTA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CLINICROTA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CLINICROTA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CLINICROTA_DB_DSN"`
	Driver string `envconfig:"CLINICROTA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CLINICROTA_DB_HOST"`
	LegacyPort     int    `envconfig:"CLINICROTA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CLINICROTA_DB_USER"`
	LegacyPassword string `envconfig:"CLINICROTA_DB_PASSWORD"`
	LegacyName     string `envconfig:"CLINICROTA_DB_NAME"`
	LegacySSLMode  string `envconfig:"CLINICROTA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CLINICROTA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CLINICROTA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CLINICROTA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CLINICROTA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CLINICROTA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CLINICROTA_REDIS_ADDR"`
	Password     string        `envconfig:"CLINICROTA_REDIS_PASSWORD"`
	DB           int           `envconfig:"CLINICROTA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CLINICROTA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CLINICROTA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CLINICROTA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CLINICROTA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CLINICROTA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"CLINICROTA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"CLINICROTA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"CLINICROTA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"CLINICROTA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CLINICROTA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CLINICROTA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CLINICROTA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CLINICROTA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CLINICROTA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"CLINICROTA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"CLINICROTA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"CLINICROTA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RefreshWindow      time.Duration `envconfig:"CLINICROTA_AUTH_RATE_LIMIT_REFRESH_WINDOW" default:"1m"`
	RefreshIPLimit     int           `envconfig:"CLINICROTA_AUTH_RATE_LIMIT_REFRESH_IP_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CLINICROTA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CLINICROTA_AUTO_MIGRATE" default:"false"`
}

type RotationConfig struct {
	// SnapshotTTL bounds how long a cached month snapshot may serve
	// exclusivity checks before a reload is forced.
	SnapshotTTL     time.Duration `envconfig:"CLINICROTA_ROTATION_SNAPSHOT_TTL" default:"5m"`
	DefaultTimezone string        `envconfig:"CLINICROTA_ROTATION_TIMEZONE" default:"Local"`
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
