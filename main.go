package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"inventory-pos/config"
	"inventory-pos/handlers"
	"inventory-pos/middleware"
	"inventory-pos/models"
	"inventory-pos/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	// Initialize structured logger
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(logHandler))

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := services.InitMongoDB(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer db.Disconnect(ctx)

	// Initialize services
	services.InitServices(db, cfg.DatabaseName)

	// Initialize session store for authentication
	services.InitSessionStore(services.NewMongoSessionBackend(services.GetDatabase()))

	// Start background session cleanup
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	services.StartSessionCleanup(cleanupCtx)

	// Start the scheduled stock check
	scheduler, err := services.StartStockCheckScheduler(cfg.StockCheckSchedule)
	if err != nil {
		slog.Error("Failed to start stock check scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("Request error", "error", err, "status", code)
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173, http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Requested-With, X-Login-Token, X-CSRF-Token",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path}\n",
	}))

	// Authentication routes (one set per portal)
	auth := app.Group("/auth/:portal")
	auth.Post("/login", handlers.Login)
	auth.Post("/logout", handlers.Logout)
	auth.Get("/me", handlers.GetCurrentUser)
	auth.Get("/check", handlers.CheckSession)

	// Portal entry pages: the rendered pages themselves live in the
	// frontend, these routes only enforce the redirect-to-login guard
	app.Get("/admin", middleware.RequirePage(models.PortalAdmin, cfg.AdminLoginPath), handlers.PortalIndex)
	app.Get("/staff", middleware.RequirePage(models.PortalStaff, cfg.StaffLoginPath), handlers.PortalIndex)
	app.Get("/supplier", middleware.RequirePage(models.PortalSupplier, cfg.SupplierLoginPath), handlers.PortalIndex)

	// Admin API
	admin := app.Group("/api/admin", middleware.RequireAPI(models.PortalAdmin, ""))
	admin.Get("/users", handlers.GetUsers)
	admin.Post("/users", middleware.RequireAPI(models.PortalAdmin, models.SubRoleManager), middleware.RequireCSRF(), handlers.CreateUser)
	admin.Put("/users/:userID/role", middleware.RequireAPI(models.PortalAdmin, models.SubRoleManager), middleware.RequireCSRF(), handlers.UpdateUserRole)
	admin.Get("/inventory", handlers.GetInventory)
	admin.Get("/inventory/:itemID", handlers.GetInventoryItem)
	admin.Post("/inventory", middleware.RequireCSRF(), handlers.CreateInventoryItem)
	admin.Put("/inventory/:itemID/threshold", middleware.RequireCSRF(), handlers.UpdateThreshold)
	admin.Get("/alerts", handlers.GetAlerts)
	admin.Get("/orders", handlers.GetOrders)
	admin.Get("/orders/:orderID", handlers.GetOrder)
	admin.Put("/orders/:orderID/status", middleware.RequireCSRF(), handlers.UpdateOrderStatus)
	admin.Post("/stock-check", middleware.RequireAPI(models.PortalAdmin, models.SubRoleManager), middleware.RequireCSRF(), handlers.RunStockCheck)
	admin.Get("/notifications", handlers.GetNotifications)
	admin.Get("/notifications/count", handlers.GetUnreadCount)
	admin.Put("/notifications/:notificationID/read", middleware.RequireCSRF(), handlers.MarkNotificationRead)

	// Staff (POS) API
	staff := app.Group("/api/staff", middleware.RequireAPI(models.PortalStaff, ""))
	staff.Get("/inventory", handlers.GetInventory)
	staff.Get("/inventory/:itemID", handlers.GetInventoryItem)
	staff.Post("/inventory/:itemID/adjust", middleware.RequireCSRF(), handlers.AdjustInventory)
	staff.Get("/notifications", handlers.GetNotifications)
	staff.Get("/notifications/count", handlers.GetUnreadCount)
	staff.Put("/notifications/:notificationID/read", middleware.RequireCSRF(), handlers.MarkNotificationRead)

	// Supplier API
	supplier := app.Group("/api/supplier", middleware.RequireAPI(models.PortalSupplier, ""))
	supplier.Get("/orders", handlers.GetOrders)
	supplier.Get("/orders/:orderID", handlers.GetOrder)
	supplier.Put("/orders/:orderID/status", middleware.RequireCSRF(), handlers.UpdateOrderStatus)
	supplier.Get("/notifications", handlers.GetNotifications)
	supplier.Get("/notifications/count", handlers.GetUnreadCount)
	supplier.Put("/notifications/:notificationID/read", middleware.RequireCSRF(), handlers.MarkNotificationRead)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "inventory-pos",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("Server starting", "port", port)
	if err := app.Listen(":" + port); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
