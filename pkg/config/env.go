package config

// EnvPrefix is passed to envconfig when processing the configuration.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "CLINICROTA_APP_ENV"
	EnvDBDSN  = "CLINICROTA_DB_DSN"
	EnvDBHost = "CLINICROTA_DB_HOST"
	EnvDBUser = "CLINICROTA_DB_USER"
	EnvDBName = "CLINICROTA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
