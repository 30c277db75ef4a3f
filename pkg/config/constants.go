package config

// EnvPrefix is passed to envconfig; individual tags carry the full names.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "RENEWBAY_DB_DSN"
	EnvDBHost = "RENEWBAY_DB_HOST"
	EnvDBUser = "RENEWBAY_DB_USER"
	EnvDBName = "RENEWBAY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
