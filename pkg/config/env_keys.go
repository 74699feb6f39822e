package config

// EnvPrefix is passed to envconfig; individual fields carry fully prefixed
// tags so the prefix stays empty here.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "GROCERLY_APP_ENV"
	EnvPort     = "GROCERLY_APP_PORT"
	EnvDBDSN    = "GROCERLY_DB_DSN"
	EnvDBHost   = "GROCERLY_DB_HOST"
	EnvDBUser   = "GROCERLY_DB_USER"
	EnvDBName   = "GROCERLY_DB_NAME"
	EnvRedisURL = "GROCERLY_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
