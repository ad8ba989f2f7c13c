package config

const (
	EnvPrefix = "veermani"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "VEERMANI_APP_ENV"
	EnvPort   = "VEERMANI_APP_PORT"

	EnvDBDSN  = "VEERMANI_DB_DSN"
	EnvDBHost = "VEERMANI_DB_HOST"
	EnvDBUser = "VEERMANI_DB_USER"
	EnvDBName = "VEERMANI_DB_NAME"

	EnvRedisURL = "VEERMANI_REDIS_URL"

	EnvJWTSecret              = "VEERMANI_JWT_SECRET"
	EnvJWTIssuer              = "VEERMANI_JWT_ISSUER"
	EnvJWTExpMins             = "VEERMANI_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "VEERMANI_REFRESH_TOKEN_TTL_MINUTES"

	EnvGCPProjectID      = "VEERMANI_GCP_PROJECT_ID"
	EnvPubSubOrdersTopic = "VEERMANI_PUBSUB_ORDERS_TOPIC"
	EnvPubSubOrdersSub   = "VEERMANI_PUBSUB_ORDERS_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
