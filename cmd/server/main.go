// @title           Nono Book Team API
// @version         1.0.0
// @description     Order workflow tracker for a print-on-demand children's book team. Orders move through a fixed pipeline (New, Designing, Printing, Shipping, Delivered) guarded by per-role permissions, with an append-only activity log and payroll accounting derived from the order history.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/accounting"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/config"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/database"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/handlers"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/middleware"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/storage"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/store"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/supabase"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/workflow"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Run migrations
	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()
	log.Println("Migrations completed successfully")

	// Database store
	db, err := store.NewStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}
	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	storageClient, err := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	// Workflow engine and accounting aggregator
	engine := workflow.NewEngine(db, storageClient, realtimeClient)
	aggregator := accounting.NewAggregator(db, cfg.StoryPrice)

	// Handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	ordersHandler := handlers.NewOrdersHandler(engine, db)
	bulkHandler := handlers.NewBulkHandler(engine)
	boardHandler := handlers.NewBoardHandler(db)
	accountsHandler := handlers.NewAccountsHandler(aggregator, db)
	directoryHandler := handlers.NewDirectoryHandler(db)

	// Setup router
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Auth (no token required)
	router.POST("/api/v1/auth/register", authHandler.Register)
	router.POST("/api/v1/auth/login", authHandler.Login)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Board
	api.GET("/board", boardHandler.Board)

	// Orders
	api.POST("/orders", ordersHandler.CreateOrder)
	api.GET("/orders", ordersHandler.ListOrders)
	api.GET("/orders/:order_id", ordersHandler.GetOrder)
	api.PATCH("/orders/:order_id", ordersHandler.EditOrder)
	api.DELETE("/orders/:order_id", ordersHandler.DeleteOrder)

	// Transitions
	api.POST("/orders/:order_id/assign-designer", ordersHandler.AssignDesigner)
	api.POST("/orders/:order_id/complete-design", ordersHandler.CompleteDesign)
	api.POST("/orders/:order_id/complete-printing", ordersHandler.CompletePrinting)
	api.POST("/orders/:order_id/confirm-arrival", ordersHandler.ConfirmArrival)
	api.POST("/orders/:order_id/deliver", ordersHandler.MarkDelivered)
	api.POST("/orders/:order_id/cancel", ordersHandler.CancelOrder)

	// Bulk actions (own prefix: a "bulk" segment under /orders would
	// collide with the :order_id wildcard)
	api.POST("/bulk/assign-designer", bulkHandler.BulkAssignDesigner)
	api.POST("/bulk/deliver", bulkHandler.BulkDeliver)

	// Directory
	api.GET("/users", directoryHandler.ListUsers)
	api.PUT("/users/me", authHandler.UpdateProfile)
	api.GET("/printers", directoryHandler.ListPrinters)
	api.GET("/shipping-companies", directoryHandler.ListShippingCompanies)

	// Accounting
	api.GET("/accounts/payroll/:user_id", accountsHandler.Payroll)
	api.GET("/accounts/earnings/designer/:user_id", accountsHandler.DesignerEarnings)
	api.POST("/accounts/hours", accountsHandler.AddHours)

	// Admin-only management and reporting
	admin := api.Group("", middleware.RequireRole())
	admin.DELETE("/users/:user_id", directoryHandler.DeleteUser)
	admin.POST("/printers", directoryHandler.CreatePrinter)
	admin.DELETE("/printers/:printer_id", directoryHandler.DeletePrinter)
	admin.POST("/shipping-companies", directoryHandler.CreateShippingCompany)
	admin.DELETE("/shipping-companies/:company_id", directoryHandler.DeleteShippingCompany)
	admin.GET("/accounts/earnings/printer/:printer_id", accountsHandler.PrinterEarnings)
	admin.GET("/accounts/reports", accountsHandler.MonthlyReport)
	admin.POST("/accounts/bonuses", accountsHandler.AddBonus)
	admin.POST("/accounts/payments", accountsHandler.AddPayment)
	admin.PUT("/accounts/rates/hourly/:user_id", accountsHandler.SetHourlyRate)
	admin.PUT("/accounts/rates/story/:payee_type/:payee_id", accountsHandler.SetStoryRate)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
