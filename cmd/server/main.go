package main

import (
	"context"

	"github.com/julienschmidt/httprouter"

	adminhandler "towerdesk/internal/admin/handler"
	adminservice "towerdesk/internal/admin/service"
	agreementhandler "towerdesk/internal/agreements/handler"
	agreementrepository "towerdesk/internal/agreements/repository"
	agreementservice "towerdesk/internal/agreements/service"
	agreementvalidator "towerdesk/internal/agreements/validator"
	announcementhandler "towerdesk/internal/announcements/handler"
	announcementrepository "towerdesk/internal/announcements/repository"
	announcementservice "towerdesk/internal/announcements/service"
	apartmentcache "towerdesk/internal/apartments/cache"
	apartmenthandler "towerdesk/internal/apartments/handler"
	apartmentrepository "towerdesk/internal/apartments/repository"
	apartmentservice "towerdesk/internal/apartments/service"
	"towerdesk/internal/auth"
	couponhandler "towerdesk/internal/coupons/handler"
	couponrepository "towerdesk/internal/coupons/repository"
	couponservice "towerdesk/internal/coupons/service"
	couponvalidator "towerdesk/internal/coupons/validator"
	"towerdesk/internal/health"
	migrations "towerdesk/internal/migrations/mongo"
	paymentgateway "towerdesk/internal/payments/gateway"
	paymenthandler "towerdesk/internal/payments/handler"
	paymentrepository "towerdesk/internal/payments/repository"
	paymentservice "towerdesk/internal/payments/service"
	userhandler "towerdesk/internal/users/handler"
	userrepository "towerdesk/internal/users/repository"
	userservice "towerdesk/internal/users/service"
	uservalidator "towerdesk/internal/users/validator"
	"towerdesk/pkg/app"
	"towerdesk/pkg/config"
	"towerdesk/pkg/events"
)

const ServiceName = "building-management"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Building Management service")
	cfg.SetMongo()
	cfg.SetRedis()

	runMigrations(cfg)

	serverApp := app.NewApplication()

	// Repositories and supporting infrastructure.
	userRepo := userrepository.NewMongoUserRepository(cfg)
	apartmentRepo := apartmentrepository.NewMongoApartmentRepository(cfg)
	agreementRepo := agreementrepository.NewMongoAgreementRepository(cfg)
	announcementRepo := announcementrepository.NewMongoAnnouncementRepository(cfg)
	couponRepo := couponrepository.NewMongoCouponRepository(cfg)
	paymentRepo := paymentrepository.NewMongoPaymentRepository(cfg)

	listingCache := apartmentcache.NewListingCache(cfg.Client.Redis, cfg.ListingCacheTTL, cfg.Log)
	announcementPublisher := initPublisher(cfg, serverApp)
	stripeGateway := paymentgateway.NewStripeGateway(cfg.StripeSecretKey)

	// Services.
	userService := userservice.NewUserService(
		userRepo,
		apartmentRepo,
		agreementRepo,
		listingCache,
		uservalidator.NewUserValidator(),
		cfg,
	)
	apartmentService := apartmentservice.NewApartmentService(apartmentRepo, listingCache, cfg)
	agreementService := agreementservice.NewAgreementService(
		agreementRepo,
		userRepo,
		apartmentRepo,
		listingCache,
		agreementvalidator.NewAgreementValidator(),
		cfg,
	)
	announcementService := announcementservice.NewAnnouncementService(announcementRepo, announcementPublisher, cfg)
	couponService := couponservice.NewCouponService(couponRepo, couponvalidator.NewCouponValidator(), cfg)
	paymentService := paymentservice.NewPaymentService(paymentRepo, stripeGateway, cfg)
	summaryService := adminservice.NewSummaryService(apartmentRepo, userRepo, agreementRepo, cfg)

	// Token issuing and role gates.
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	guard := auth.NewGuard(tokenService, userRepo, cfg.Log)

	serverApp.SetApp(cfg, func(router *httprouter.Router) {
		health.NewHandler(cfg.Client.Mongo, cfg.Log).RegisterRoutes(router)
		auth.NewTokenHandler(tokenService, cfg.Log).RegisterRoutes(router)
		userhandler.NewUserHandler(userService, cfg.Log).RegisterRoutes(router, guard)
		apartmenthandler.NewApartmentHandler(apartmentService, cfg.Log).RegisterRoutes(router)
		agreementhandler.NewAgreementHandler(agreementService, cfg.Log).RegisterRoutes(router, guard)
		announcementhandler.NewAnnouncementHandler(announcementService, cfg.Log).RegisterRoutes(router, guard)
		couponhandler.NewCouponHandler(couponService, cfg.Log).RegisterRoutes(router, guard)
		paymenthandler.NewPaymentHandler(paymentService, cfg.Log).RegisterRoutes(router, guard)
		adminhandler.NewSummaryHandler(summaryService, cfg.Log).RegisterRoutes(router, guard)
	})

	serverApp.Run()
}

func runMigrations(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	if err := migrations.Run(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Migrations failed", "error", err)
	}
	cfg.Log.Info("Migrations applied", "database", cfg.MongoDatabaseName)
}

// initPublisher returns nil when no brokers are configured, which
// disables announcement events without touching the service code.
func initPublisher(cfg *config.Config, serverApp *app.Application) announcementservice.EventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, announcement events disabled")
		return nil
	}

	producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.AnnouncementEventTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create event producer", "error", err)
	}
	serverApp.AddCloser(producer)

	cfg.Log.Info("Announcement event producer ready", "topic", cfg.AnnouncementEventTopic)
	return producer
}
