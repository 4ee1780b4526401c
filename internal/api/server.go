package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bmxadventure/user_service/config"
	"github.com/bmxadventure/user_service/infra/queue"
	"github.com/bmxadventure/user_service/internal/api/rest/handlers"
	"github.com/bmxadventure/user_service/internal/api/rest/middleware"
	"github.com/bmxadventure/user_service/internal/domain"
	"github.com/bmxadventure/user_service/internal/helper"
	"github.com/bmxadventure/user_service/internal/interfaces"
	"github.com/bmxadventure/user_service/internal/notify"
	"github.com/bmxadventure/user_service/internal/repository"
	"github.com/bmxadventure/user_service/internal/services"
	"github.com/bmxadventure/user_service/pkg/cloudinary"
	"github.com/bmxadventure/user_service/pkg/s3"
)

func StartServer(cfg config.Config, log *zap.SugaredLogger) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Info("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	// every replica takes the same lock id before migrating
	const migrateLockID int64 = 20260415

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.ReferredPoint{},
		&domain.Feedback{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Info("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		log,
	)
	notifier := notify.NewKafkaNotifier(kafkaProducer)

	uploader := buildUploader(cfg, log)
	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// ---------- Services ----------
	otpSvc := services.NewOTPService(userRepo)
	referralSvc := services.NewReferralService(userRepo)
	userSvc := services.NewUserService(userRepo, otpSvc, referralSvc, notifier, authHelper, log)
	pointsSvc := services.NewPointsService(userRepo)
	feedbackSvc := services.NewFeedbackService(feedbackRepo, userRepo)

	// ---------- Handlers ----------
	userHandler := handlers.NewUserHandler(userSvc, log)
	pointsHandler := handlers.NewPointsHandler(pointsSvc, referralSvc, log)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackSvc, log)
	uploadHandler := handlers.NewUploadHandler(uploader, userSvc, log)

	// public routes first, then the session middleware exactly once,
	// then everything it protects
	user := app.Group("/api").Group("/user")
	userHandler.SetupPublicRoutes(user)

	user.Use(middleware.AuthMiddleware(authHelper, userRepo))

	userHandler.SetupProtectedRoutes(user)
	pointsHandler.SetupRoutes(user)
	feedbackHandler.SetupRoutes(user)
	uploadHandler.SetupRoutes(user)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	log.Infow("listening", "addr", cfg.ServerPort)
	log.Fatal(app.Listen(cfg.ServerPort))
}

func buildUploader(cfg config.Config, log *zap.SugaredLogger) interfaces.Uploader {
	switch cfg.UploadProvider {
	case "s3":
		up, err := s3.NewUploader(context.Background(), cfg.AWSRegion, cfg.AWSBucket)
		if err != nil {
			log.Fatalf("s3 init error: %v", err)
		}
		return up
	default:
		cld, err := cloudinary.New()
		if err != nil {
			log.Fatalf("cloudinary init error: %v", err)
		}
		return cloudinary.NewCloudinaryUploader(cld)
	}
}
