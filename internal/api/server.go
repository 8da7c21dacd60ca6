package api

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yangezz/paste_service/config"
	"github.com/yangezz/paste_service/infra/queue"
	"github.com/yangezz/paste_service/internal/api/rest/handlers"
	"github.com/yangezz/paste_service/internal/api/rest/middleware"
	"github.com/yangezz/paste_service/internal/domain"
	"github.com/yangezz/paste_service/internal/helper"
	"github.com/yangezz/paste_service/internal/repository"
	"github.com/yangezz/paste_service/internal/services"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.BaseURL,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("database pool error: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.DBConnMaxIdle)

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.DBConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		log.Fatalf("database ping error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED ----------
	if err := db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.Menu{},
		&domain.RoleMenu{},
		&domain.Paste{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	if err := Seed(db); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	authHelper := helper.SetupAuth(cfg.JWTSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	pasteRepo := repository.NewPasteRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, roleRepo, authHelper, kafkaProducer)
	menuSvc := services.NewMenuService(menuRepo)
	pasteSvc := services.NewPasteService(pasteRepo)
	toolSvc := services.NewToolService()

	// ---------- Middleware ----------
	authRequired := middleware.AuthRequired(authHelper, userRepo)
	adminOnly := middleware.AdminOnly()
	superAdminOnly := middleware.SuperAdminOnly()

	// ---------- Handlers ----------
	handlers.NewUserHandler(userSvc, authHelper).SetupRoutes(app, authRequired, adminOnly)
	handlers.NewMenuHandler(menuSvc).SetupRoutes(app, authRequired, superAdminOnly)
	handlers.NewPasteHandler(pasteSvc).SetupRoutes(app, authRequired)
	handlers.NewToolHandler(toolSvc).SetupRoutes(app, authRequired)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	log.Println("listening on", cfg.ServerPort)
	log.Fatal(app.Listen(cfg.ServerPort))
}
