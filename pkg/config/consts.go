package config

const (
	// EnvPrefix is passed to envconfig; individual tags spell the full
	// variable names so the prefix stays empty.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "RAMYASTORE_DB_DSN"
	EnvDBHost = "RAMYASTORE_DB_HOST"
	EnvDBUser = "RAMYASTORE_DB_USER"
	EnvDBName = "RAMYASTORE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
