package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"
	EnvMongoTransactions = "MONGO_TRANSACTIONS"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvJWTSecret  = "JWT_SECRET"
	EnvTokenTTL   = "TOKEN_TTL"
	EnvBcryptCost = "BCRYPT_COST"

	EnvAdminName     = "ADMIN_NAME"
	EnvAdminEmail    = "ADMIN_EMAIL"
	EnvAdminPassword = "ADMIN_PASSWORD"

	EnvUPIID           = "UPI_ID"
	EnvUPIReceiverName = "UPI_RECEIVER_NAME"
	EnvQRBaseURL       = "QR_BASE_URL"
	EnvHotelTimezone   = "HOTEL_TIMEZONE"

	EnvCORSOrigins = "CORS_ORIGINS"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"
	EnvCacheTTL      = "CACHE_TTL"
)
