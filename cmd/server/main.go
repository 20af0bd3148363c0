package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"clienteflow_backend/internal/database"
	"clienteflow_backend/internal/router"
	"clienteflow_backend/internal/services"
	"clienteflow_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	// Initialize Database (local embedded SQLite file)
	dbPath := utils.Getenv("DB_PATH", "data/app.db")
	database.InitDB(dbPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"path": dbPath})

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Shared credential pair and session settings
	sessionTTLHours, err := strconv.Atoi(utils.Getenv("SESSION_TTL_HOURS", "12"))
	if err != nil || sessionTTLHours <= 0 {
		log.Fatalf("Invalid SESSION_TTL_HOURS: %v", err)
	}
	authCfg := services.AuthConfig{
		Username:   utils.Getenv("APP_USERNAME", "admin"),
		Password:   utils.Getenv("APP_PASSWORD", "admin"),
		JWTSecret:  utils.Getenv("JWT_SECRET", "clienteflow-dev-secret-change-me"),
		SessionTTL: time.Duration(sessionTTLHours) * time.Hour,
	}

	// Setup all application routes
	if err := router.Setup(engine, database.GetDB(), authCfg); err != nil {
		utils.LogError(err, "Failed to set up routes")
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
