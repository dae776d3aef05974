package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"beachride/internal/config"
	"beachride/internal/database"
	"beachride/internal/middleware"
	"beachride/internal/modules/admin"
	"beachride/internal/modules/auth"
	"beachride/internal/modules/booking"
	"beachride/internal/modules/cart"
	"beachride/internal/modules/fleet"
	"beachride/internal/modules/health"
	"beachride/internal/modules/notification"
	"beachride/internal/modules/review"
	"beachride/internal/modules/sitemap"
	"beachride/internal/modules/upload"
	jwtsvc "beachride/internal/pkg/jwt"
	"beachride/internal/realtime"
	"beachride/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	resetRepo := repository.NewResetCodeRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	photoRepo := repository.NewVehiclePhotoRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	cartKV := repository.NewCartKV(db)
	healthRepo := repository.NewHealthRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.AccessTokenTTL)
	hub := realtime.NewHub()

	var notifier booking.NotificationSender = notification.LogSender{}
	if cfg.AMQPURL != "" {
		publisher, err := notification.NewPublisher(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		defer publisher.Close()
		notifier = notification.NewAMQPSender(publisher)
	}

	uploader := upload.NewService(cfg.UploadsDir, upload.StaticURLBase)

	authService := auth.NewService(userRepo, refreshRepo, resetRepo, j, notification.LogMailer{}, cfg.JWTSecret, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService, j)

	fleetService := fleet.NewService(vehicleRepo, photoRepo)
	fleetHandler := fleet.NewHandler(fleetService)

	bookingService := booking.NewService(bookingRepo, vehicleRepo, notifier, hub, cfg.BusinessWhatsApp)
	bookingHandler := booking.NewHandler(bookingService)

	cartService := cart.NewService(cart.NewStore(cartKV), vehicleRepo, bookingRepo, notifier, hub, cfg.BusinessWhatsApp)
	cartHandler := cart.NewHandler(cartService)

	reviewService := review.NewService(reviewRepo, bookingRepo)
	reviewHandler := review.NewHandler(reviewService)

	adminService := admin.NewService(bookingRepo, reviewRepo, photoRepo, uploader, hub)
	adminHandler := admin.NewHandler(adminService)

	healthService := health.NewService(healthRepo, bookingRepo, userRepo, cfg.UploadsDir)
	healthHandler := health.NewHandler(healthService, cfg.HealthKey)

	sitemapService := sitemap.NewService(vehicleRepo, cfg.SiteBaseURL)
	sitemapHandler := sitemap.NewHandler(sitemapService)

	wsHandler := realtime.NewWSHandler(hub)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.Static(upload.StaticURLBase, uploader.BaseDir())

	wsHandler.RegisterRoutes(r)

	crawl := r.Group("/")
	crawl.Use(middleware.RateLimitPerIP(rate.Limit(1), 5))
	sitemapHandler.RegisterRoutes(crawl)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		fleetHandler.RegisterRoutes(v1)
		reviewHandler.RegisterRoutes(v1)
		cartHandler.RegisterRoutes(v1)

		// guest endpoints still pick up user identity when a token is sent
		public := v1.Group("/")
		public.Use(middleware.OptionalJWTAuth(j))
		{
			bookingHandler.RegisterPublicRoutes(public)
			healthHandler.RegisterRoutes(public)
		}

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	log.Printf("api listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
