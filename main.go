package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bizlink/config"
	"bizlink/database"
	"bizlink/events"
	"bizlink/handlers"
	"bizlink/logger"
	"bizlink/middleware"
	"bizlink/store"
	"bizlink/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	logger.Init()
	defer logger.Sync()

	config.Load()

	db, err := database.Connect(config.Cfg.MysqlDSN)
	if err != nil {
		logger.Fatal("failed to connect to database", err)
	}
	defer db.Close()

	if err := database.CreateTables(db); err != nil {
		logger.Fatal("failed to create tables", err)
	}

	publisher := events.NewNoopPublisher()
	if config.Cfg.AmqpURL != "" {
		pub, err := events.NewPublisher(config.Cfg.AmqpURL, config.Cfg.EventsExchange)
		if err != nil {
			logger.Warn("failed to initialize event publisher, events disabled", "error", err)
		} else {
			publisher = pub
		}
	}
	defer publisher.Close()

	userStore := store.NewUserStore(db)
	friendshipStore := store.NewFriendshipStore(db)
	messageStore := store.NewMessageStore(db)
	customerStore := store.NewCustomerStore(db)
	productStore := store.NewProductStore(db)
	orderStore := store.NewOrderStore(db)

	authHandler := handlers.NewAuthHandler(userStore)
	friendHandler := handlers.NewFriendHandler(friendshipStore, userStore, publisher)
	customerHandler := handlers.NewCustomerHandler(customerStore)
	inventoryHandler := handlers.NewInventoryHandler(productStore)
	salesHandler := handlers.NewSalesHandler(orderStore)

	gateway := websocket.NewGateway(friendshipStore, messageStore, publisher)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	users := r.Group("/api/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", authHandler.Me)
	}

	friends := r.Group("/api/friends")
	friends.Use(middleware.AuthMiddleware())
	{
		friends.POST("/request", friendHandler.SendRequest)
		friends.GET("/pending/:userId", friendHandler.ListPending)
		friends.GET("/accepted/:userId", friendHandler.ListAccepted)
		friends.PUT("/accept", friendHandler.Accept)
		friends.GET("/emails/:userId", friendHandler.ListEmails)
	}

	customers := r.Group("/api/customers")
	customers.Use(middleware.AuthMiddleware())
	{
		customers.GET("", customerHandler.List)
		customers.GET("/:id", customerHandler.Get)
		customers.POST("", customerHandler.Create)
		customers.PUT("/:id", customerHandler.Update)
		customers.DELETE("/:id", customerHandler.Delete)
	}

	inventory := r.Group("/api/inventory")
	inventory.Use(middleware.AuthMiddleware())
	{
		inventory.GET("", inventoryHandler.List)
		inventory.GET("/:id", inventoryHandler.Get)
		inventory.POST("", inventoryHandler.Create)
		inventory.PUT("/:id", inventoryHandler.Update)
		inventory.DELETE("/:id", inventoryHandler.Delete)
	}

	sales := r.Group("/api/sales")
	sales.Use(middleware.AuthMiddleware())
	{
		sales.GET("", salesHandler.List)
		sales.GET("/:id", salesHandler.Get)
		sales.POST("", salesHandler.Create)
		sales.PUT("/:id", salesHandler.Update)
		sales.DELETE("/:id", salesHandler.Delete)
	}

	r.GET("/ws", gateway.HandleWebSocket)

	logger.Info("server starting", "addr", config.Cfg.ServerAddr)
	if err := r.Run(config.Cfg.ServerAddr); err != nil {
		logger.Fatal("failed to start server", err)
	}
}
