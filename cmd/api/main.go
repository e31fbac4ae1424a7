package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-retail-store/internal/events"
	"go-retail-store/internal/handler"
	"go-retail-store/internal/metrics"
	"go-retail-store/internal/middleware"
	"go-retail-store/internal/model"
	"go-retail-store/internal/repository"
	"go-retail-store/internal/service"
	"go-retail-store/internal/ws"
	"go-retail-store/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Databases
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.Product{}, &model.Store{}, &model.Inventory{},
		&model.Customer{}, &model.OrderDetails{}, &model.OrderItem{},
		&model.User{},
	)

	reviewPath := os.Getenv("REVIEW_DB_PATH")
	if reviewPath == "" {
		reviewPath = "./data/reviews"
	}
	reviewDB, err := database.OpenReviewDB(reviewPath)
	if err != nil {
		log.Fatalf("Failed to open review store: %v", err)
	}

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub, metrics, and event publisher
	wsHub := ws.NewHub()
	go wsHub.Run()

	reg := metrics.NewRegistry()

	var publisher events.Publisher = events.NoopPublisher{}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		topic := os.Getenv("KAFKA_ORDERS_TOPIC")
		if topic == "" {
			topic = "retail.orders.placed"
		}
		publisher = events.NewKafkaPublisher(brokers, topic)
		log.Printf("Kafka order events enabled (topic %s)", topic)
	}

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	storeRepo := repository.NewStoreRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	userRepo := repository.NewUserRepo(db)
	reviewRepo := repository.NewReviewRepo(reviewDB)

	validationService := service.NewValidationService(productRepo, inventoryRepo)
	catalogService := service.NewCatalogService(db, productRepo, inventoryRepo, validationService, wsHub)
	storeService := service.NewStoreService(db, storeRepo, inventoryRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, validationService, storeRepo, wsHub)
	orderService := service.NewOrderService(db, inventoryRepo, orderRepo, wsHub, publisher, reg)
	reviewService := service.NewReviewService(reviewRepo, customerRepo, reg)
	authService := service.NewAuthService(userRepo)

	productHandler := handler.NewProductHandler(catalogService)
	storeHandler := handler.NewStoreHandler(storeService, orderService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, catalogService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Retail Store Backend v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS
	app.Use(reg.Middleware())

	// 7. Routes
	// Mutating routes require auth only when AUTH_ENABLED=true, keeping the
	// historical open contract as the default.
	guard := func(c *fiber.Ctx) error { return c.Next() }
	if os.Getenv("AUTH_ENABLED") == "true" {
		guard = middleware.RequireAuth(userRepo)
	}

	auth := app.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	product := app.Group("/product")
	product.Post("/", guard, productHandler.CreateProduct)
	product.Get("/", productHandler.GetProducts)
	product.Get("/searchProduct/:name", productHandler.SearchProducts)
	product.Get("/filter/:category/:storeid", productHandler.GetProductsByStoreAndCategory)
	product.Get("/price-range", productHandler.GetProductsByPriceRange)
	product.Get("/category/:name/:category", productHandler.FilterProducts)
	product.Get("/category/:category", productHandler.GetProductsByCategory)
	product.Get("/:id", productHandler.GetProduct)
	product.Put("/:id", guard, productHandler.UpdateProduct)
	product.Delete("/:id", guard, productHandler.DeleteProduct)

	inventory := app.Group("/inventory")
	inventory.Put("/update", guard, inventoryHandler.UpdateInventory)
	inventory.Post("/save", guard, inventoryHandler.SaveInventory)
	inventory.Get("/store/:storeId/products", inventoryHandler.GetStoreProducts)
	inventory.Get("/filter", inventoryHandler.FilterInventory)
	inventory.Get("/search", inventoryHandler.SearchInStore)
	inventory.Get("/validate-quantity", inventoryHandler.ValidateQuantity)
	inventory.Delete("/product/:productId", guard, inventoryHandler.DeleteProduct)

	store := app.Group("/store")
	store.Post("/", guard, storeHandler.CreateStore)
	store.Post("/placeOrder", storeHandler.PlaceOrder)
	store.Get("/", storeHandler.GetStores)
	store.Get("/sorted", storeHandler.GetStoresSorted)
	store.Get("/search", storeHandler.SearchStores)
	store.Get("/validate/:storeId", storeHandler.ValidateStore)
	store.Get("/order/:orderId", storeHandler.GetOrder)
	store.Get("/:storeId/orders", storeHandler.GetStoreOrders)
	store.Get("/:id", storeHandler.GetStore)
	store.Put("/:id", guard, storeHandler.UpdateStore)
	store.Delete("/:id", guard, storeHandler.DeleteStore)

	reviews := app.Group("/reviews")
	reviews.Post("/", reviewHandler.CreateReview)
	reviews.Get("/rating-range", reviewHandler.GetReviewsByRatingRange)
	reviews.Get("/customer/:customerId", reviewHandler.GetReviewsByCustomer)
	reviews.Get("/:storeId/:productId/average-rating", reviewHandler.GetAverageRating)
	reviews.Get("/:storeId/:productId/with-comments", reviewHandler.GetReviewsWithComments)
	reviews.Get("/:storeId/:productId", reviewHandler.GetReviews)

	// Prometheus
	app.Get("/metrics", adaptor.HTTPHandler(reg.Handler()))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	if err := publisher.Close(); err != nil {
		log.Printf("Warning: Failed to close event publisher: %v", err)
	}
	if err := reviewRepo.Close(); err != nil {
		log.Printf("Warning: Failed to close review store: %v", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin user from env if it doesn't exist
func seedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	userRepo := repository.NewUserRepo(db)
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	admin := &model.User{
		Email:    email,
		FullName: "Administrator",
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Printf("✅ Admin user created: %s", email)
	}
}
