package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hotel_management"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultMongoTransactions = true

	DefaultPort      = "4000"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultTokenTTL   = 7 * 24 * time.Hour
	DefaultBcryptCost = 10
	MinBcryptCost     = 4
	MaxBcryptCost     = 31

	DefaultAdminName = "Administrator"

	DefaultUPIReceiverName = "Hotel"
	DefaultQRBaseURL       = "https://api.qrserver.com/v1/create-qr-code/"
	DefaultHotelTimezone   = "Local"

	DefaultCORSOrigins = "*"

	DefaultRedisDB  = 0
	DefaultCacheTTL = 5 * time.Minute
)
