package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hotelms/pkg/client"
	"hotelms/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration
	MongoTransactions bool

	Port string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	AdminName     string
	AdminEmail    string
	AdminPassword string

	UPIID           string
	UPIReceiverName string
	QRBaseURL       string
	HotelTimezone   string
	Location        *time.Location

	CORSOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	envFileErr := godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),
		MongoTransactions: getEnvBool(EnvMongoTransactions, DefaultMongoTransactions),

		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		JWTSecret:  getEnvStr(EnvJWTSecret, ""),
		TokenTTL:   getEnvDuration(EnvTokenTTL, DefaultTokenTTL),
		BcryptCost: getEnvNum(EnvBcryptCost, DefaultBcryptCost),

		AdminName:     getEnvStr(EnvAdminName, DefaultAdminName),
		AdminEmail:    getEnvStr(EnvAdminEmail, ""),
		AdminPassword: getEnvStr(EnvAdminPassword, ""),

		UPIID:           getEnvStr(EnvUPIID, ""),
		UPIReceiverName: getEnvStr(EnvUPIReceiverName, DefaultUPIReceiverName),
		QRBaseURL:       getEnvStr(EnvQRBaseURL, DefaultQRBaseURL),
		HotelTimezone:   getEnvStr(EnvHotelTimezone, DefaultHotelTimezone),

		CORSOrigins: getEnvList(EnvCORSOrigins, DefaultCORSOrigins),

		RedisAddr:     getEnvStr(EnvRedisAddr, ""),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, DefaultRedisDB),
		CacheTTL:      getEnvDuration(EnvCacheTTL, DefaultCacheTTL),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if envFileErr != nil && !errors.Is(envFileErr, fs.ErrNotExist) {
		cfg.Log.Warn("Failed to read .env file, using process environment only", "error", envFileErr)
	}

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects the cache backend. Caching stays disabled when
// REDIS_ADDR is unset or the server cannot be reached.
func (cfg *Config) SetRedis() {
	if cfg.RedisAddr == "" {
		cfg.Log.Info("Redis not configured, response caching disabled")
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.TokenTTL <= 0 {
		errors = append(errors, fmt.Sprintf("TokenTTL must be positive, got: %s", cfg.TokenTTL))
	}
	if cfg.BcryptCost < MinBcryptCost || cfg.BcryptCost > MaxBcryptCost {
		errors = append(errors, fmt.Sprintf("BcryptCost must be between %d and %d, got: %d", MinBcryptCost, MaxBcryptCost, cfg.BcryptCost))
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		errors = append(errors, "AdminEmail and AdminPassword must be set together")
	}

	if cfg.QRBaseURL == "" {
		errors = append(errors, "QRBaseURL cannot be empty")
	}
	location, err := time.LoadLocation(cfg.HotelTimezone)
	if err != nil {
		errors = append(errors, fmt.Sprintf("HotelTimezone must be a valid IANA time zone, got: %s", cfg.HotelTimezone))
	} else {
		cfg.Location = location
	}

	if cfg.RedisDB < 0 {
		errors = append(errors, fmt.Sprintf("RedisDB cannot be negative, got: %d", cfg.RedisDB))
	}
	if cfg.CacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("CacheTTL must be positive, got: %s", cfg.CacheTTL))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

// ValidateAuth is required by processes that issue or verify tokens.
func (cfg *Config) ValidateAuth() error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("%s must be set", EnvJWTSecret)
	}
	if cfg.UPIID == "" {
		cfg.Log.Warn("UPI_ID is not set, invoice payment links will carry an empty payee")
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"mongo_transactions", cfg.MongoTransactions,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"jwt_secret_set", cfg.JWTSecret != "",
		"token_ttl", cfg.TokenTTL,
		"bcrypt_cost", cfg.BcryptCost,
		"admin_seed", cfg.AdminEmail != "",
		"upi_id_set", cfg.UPIID != "",
		"qr_base_url", cfg.QRBaseURL,
		"hotel_timezone", cfg.HotelTimezone,
		"cors_origins", cfg.CORSOrigins,
		"redis_addr", cfg.RedisAddr,
		"cache_ttl", cfg.CacheTTL,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnvStr(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}
