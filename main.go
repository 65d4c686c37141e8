package main

import (
	"log"
	"os"

	"github.com/business-nexus/backend/controllers"
	"github.com/business-nexus/backend/database"
	"github.com/business-nexus/backend/docs"
	"github.com/business-nexus/backend/middleware"
	"github.com/business-nexus/backend/models"
	"github.com/business-nexus/backend/websocket"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Business Nexus API
// @version         1.0
// @description     API server connecting entrepreneurs with investors
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize database
	database.Connect()
	database.Migrate()

	// Set up Swagger info
	docs.SwaggerInfo.Title = "Business Nexus API"
	docs.SwaggerInfo.Description = "API server connecting entrepreneurs with investors"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + os.Getenv("PORT")
	if docs.SwaggerInfo.Host == "localhost:" {
		docs.SwaggerInfo.Host = "localhost:8080"
	}
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Realtime hub
	hub := websocket.NewHub()
	go hub.Run()

	h := controllers.NewHandler(hub)

	// Set up router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Authentication routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.JWTAuth(), h.Me)
	}

	// Protected routes
	api := router.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		// User discovery and profiles
		api.GET("/users/entrepreneurs", middleware.RequireRole(models.RoleInvestor), h.GetEntrepreneurs)
		api.GET("/users/investors", middleware.RequireRole(models.RoleEntrepreneur), h.GetInvestors)
		api.PUT("/users/profile", h.UpdateProfile)
		api.GET("/users/:id", h.GetUser)

		// Collaboration requests
		api.POST("/requests", middleware.RequireRole(models.RoleInvestor), h.CreateRequest)
		api.GET("/requests", h.GetRequests)
		api.GET("/requests/:id", h.GetRequest)
		api.PATCH("/requests/:id", middleware.RequireRole(models.RoleEntrepreneur), h.RespondToRequest)
		api.DELETE("/requests/:id", middleware.RequireRole(models.RoleInvestor), h.DeleteRequest)

		// Chat
		api.POST("/chat/messages", h.SendMessage)
		api.GET("/chat/messages/:userId", h.GetMessages)
		api.PATCH("/chat/messages/:userId/read", h.MarkMessagesRead)
		api.GET("/chat/conversations", h.GetConversations)
		api.GET("/chat/unread-count", h.GetUnreadCount)
	}

	// WebSocket route
	router.GET("/ws", websocket.ServeWS(hub))

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	log.Printf("Swagger documentation available at http://localhost:%s/swagger/index.html", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
