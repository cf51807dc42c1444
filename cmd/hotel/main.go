package main

import (
	"context"

	authhandler "hotelms/internal/auth/handler"
	authrepo "hotelms/internal/auth/repository"
	authservice "hotelms/internal/auth/service"
	bookinghandler "hotelms/internal/bookings/handler"
	bookingrepo "hotelms/internal/bookings/repository"
	bookingservice "hotelms/internal/bookings/service"
	bookingvalidator "hotelms/internal/bookings/validator"
	dashboardhandler "hotelms/internal/dashboard/handler"
	dashboardservice "hotelms/internal/dashboard/service"
	"hotelms/internal/events"
	"hotelms/internal/health"
	invoicehandler "hotelms/internal/invoices/handler"
	invoiceservice "hotelms/internal/invoices/service"
	mongoMigration "hotelms/internal/migrations/mongo"
	notificationhandler "hotelms/internal/notifications/handler"
	notificationrepo "hotelms/internal/notifications/repository"
	notificationservice "hotelms/internal/notifications/service"
	paymenthandler "hotelms/internal/payments/handler"
	paymentservice "hotelms/internal/payments/service"
	roomhandler "hotelms/internal/rooms/handler"
	roomrepo "hotelms/internal/rooms/repository"
	roomservice "hotelms/internal/rooms/service"
	roomtypehandler "hotelms/internal/roomtypes/handler"
	roomtyperepo "hotelms/internal/roomtypes/repository"
	roomtypeservice "hotelms/internal/roomtypes/service"
	searchhandler "hotelms/internal/search/handler"
	searchservice "hotelms/internal/search/service"
	"hotelms/pkg/app"
	"hotelms/pkg/cache"
	"hotelms/pkg/config"
	"hotelms/pkg/contracts"
	"hotelms/pkg/kafka"
	kafka_config "hotelms/pkg/kafka/config"
	kafka_middleware "hotelms/pkg/kafka/middleware"
	"hotelms/pkg/middleware"
	"hotelms/pkg/token"
	"hotelms/pkg/validation"
)

const (
	ServiceName = "hotel"
	CachePrefix = "hotel"
)

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.ValidateAuth(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.Log.Info("Starting Hotel Management service")
	cfg.SetMongo()
	cfg.SetRedis()

	migrateCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(migrateCtx, db, cfg.Log.Component("migration")); err != nil {
		cfg.Log.Warn("Startup migration failed, continuing with existing schema", "error", err)
	}
	cancel()

	serverApp := app.NewApplication(cfg)
	handlers := initServices(cfg, serverApp)

	serverApp.SetApp(health.NewHandler(cfg.Client.Mongo, cfg.Log), handlers...)
	serverApp.OnShutdown(cfg.GracefulShutdown)
	serverApp.Run()
}

func initServices(cfg *config.Config, serverApp *app.Application) []contracts.Handler {
	validator := validation.New(cfg.Log)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	responseCache := cache.New(cfg.Client.Redis, CachePrefix, cfg.CacheTTL)

	userRepo := authrepo.NewMongoUserRepository(cfg)
	roomTypeRepo := roomtyperepo.NewMongoRoomTypeRepository(cfg)
	roomRepo := roomrepo.NewMongoRoomRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	notificationRepo := notificationrepo.NewMongoNotificationRepository(cfg)

	publisher := initPublisher(cfg, serverApp, notificationRepo)

	authService := authservice.NewAuthService(userRepo, issuer, validator, cfg)
	seedAdmin(cfg, authService)
	guard := middleware.NewGuard(authService, cfg.Log)

	bookingValidator := bookingvalidator.NewBookingValidator(validator, cfg.Log)
	roomTypeService := roomtypeservice.NewRoomTypeService(roomTypeRepo, responseCache, validator, cfg)
	roomService := roomservice.NewRoomService(roomRepo, validator, cfg)
	bookingService := bookingservice.NewBookingService(bookingRepo, roomRepo, bookingValidator, publisher, cfg)
	paymentService := paymentservice.NewPaymentService(bookingRepo, bookingValidator, publisher, cfg)
	invoiceService := invoiceservice.NewInvoiceService(bookingRepo, cfg)
	searchService := searchservice.NewSearchService(bookingRepo, cfg)
	dashboardService := dashboardservice.NewDashboardService(roomRepo, bookingRepo, cfg)
	notificationService := notificationservice.NewNotificationService(notificationRepo, cfg)

	roomTypeHandler := roomtypehandler.NewRoomTypeHandler(roomTypeService, guard, cfg.Log)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName, "cache", cfg.Client.Redis != nil)

	return []contracts.Handler{
		authhandler.NewAuthHandler(authService, cfg.Log),
		roomTypeHandler,
		roomhandler.NewRoomHandler(roomService, guard, roomTypeHandler.GuardedDelete(), cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, guard, cfg.Log),
		paymenthandler.NewPaymentHandler(paymentService, guard, cfg.Log),
		invoicehandler.NewInvoiceHandler(invoiceService, guard, cfg.Log),
		searchhandler.NewSearchHandler(searchService, cfg.Log),
		dashboardhandler.NewDashboardHandler(dashboardService, guard, cfg.Log),
		notificationhandler.NewNotificationHandler(notificationService, guard, cfg.Log),
	}
}

// initPublisher sends booking events through Kafka when brokers are
// configured and the notifier service turns them into notifications.
// Without brokers the notification is written in-process.
func initPublisher(cfg *config.Config, serverApp *app.Application, recorder events.Recorder) events.Publisher {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka not configured, notifications are stored directly")
		return events.NewDirectPublisher(recorder)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producerLog := cfg.Log.Component("kafka-producer")
	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.EventsTopic, kafkaCfg.EventsDLQTopic, producerLog)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(producerLog))

	publisher := events.NewKafkaPublisher(producer, ServiceName)
	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})
	return publisher
}

func seedAdmin(cfg *config.Config, authService authservice.AuthService) {
	if cfg.AdminEmail == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	if err := authService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		cfg.Log.Fatal("Failed to seed admin account", "error", err)
	}
}
