package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"study-guild-system/handlers"
	"study-guild-system/middleware"
	"study-guild-system/models"
	"study-guild-system/services"
	"study-guild-system/utils"
	"study-guild-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB, uploads here are avatars and banners
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Service-Token, X-User-ID, X-User-Name, X-User-Email",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Printf("⚠️  R2 not configured (%v), falling back to local uploads", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.UserSkill{},
		&models.Guild{},
		&models.GuildMember{},
		&models.Course{},
		&models.CourseEnrollment{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Reward{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.GuildMessage{},
		&models.StudySession{},
		&models.SessionParticipant{},
		&models.Notification{},
		&models.LeaderboardEntry{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	userService := services.NewUserService(db)
	guildService := services.NewGuildService(db)
	enrollmentService := services.NewEnrollmentService(db)
	progressionService := services.NewProgressionService(db)
	taskService := services.NewTaskService(db, guildService)
	chatService := services.NewChatService(db)
	sessionService := services.NewSessionService(db)
	notificationService := services.NewNotificationService(db)
	leaderboardService := services.NewLeaderboardService(db)
	achievementService := services.NewAchievementService(db)

	if err := achievementService.SeedCatalog(); err != nil {
		log.Fatal("failed to seed achievement catalog:", err)
	}

	// --- CONFIGURE Sync Service Details for Gateway Profiles ---
	syncServiceURL := os.Getenv("SYNC_SERVICE_URL")
	if syncServiceURL == "" {
		log.Fatal("SYNC_SERVICE_URL environment variable not set")
	}
	guildServiceToken := os.Getenv("GUILD_SERVICE_TOKEN")
	if guildServiceToken == "" {
		log.Fatal("GUILD_SERVICE_TOKEN environment variable not set")
	}
	// --- END CONFIG ---

	syncWorker := workers.NewUserSyncWorker(db, syncServiceURL, "/api/v1/public/profiles", guildServiceToken)
	achievementWorker := workers.NewAchievementWorker(db, achievementService, notificationService, 30*time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Println("Starting User Sync Worker...")
		syncWorker.Start(ctx)
	}()
	go func() {
		log.Println("Starting Achievement Worker...")
		achievementWorker.Start(ctx)
	}()

	sessionService.StartStatusScheduler()
	progressionService.StartReconcileScheduler(6 * time.Hour)

	userCtx := middleware.UserContextMiddleware(userService)

	// ✅ Setup routes — now with enforced Gateway auth
	handlers.SetupGuildRoutes(app, guildService, progressionService, userCtx)
	handlers.SetupSkillRoutes(app, enrollmentService, userCtx)
	handlers.SetupTaskRoutes(app, taskService, userCtx)
	handlers.SetupProgressionRoutes(app, progressionService, achievementService, leaderboardService, userCtx)
	handlers.SetupChatRoutes(app, chatService, sessionService, userCtx)
	handlers.SetupUserRoutes(app, userService, notificationService, userCtx)

	app.Static("/uploads", "./uploads")

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ User Sync Worker running")
	log.Println("✅ Achievement Worker running (every 30s)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
