package router

import (
	"database/sql"

	"clienteflow_backend/internal/handlers"
	"clienteflow_backend/internal/middleware"
	"clienteflow_backend/internal/repositories"
	"clienteflow_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, authCfg services.AuthConfig) error {
	// Initialize Repositories
	clientRepo := repositories.NewClientRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)

	// Initialize Services
	authService, err := services.NewAuthService(sessionRepo, db, authCfg)
	if err != nil {
		return err
	}
	clientService := services.NewClientService(clientRepo, contactRepo, db)
	contactService := services.NewContactService(contactRepo, clientRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(clientService)
	contactHandler := handlers.NewContactHandler(contactService)
	exportHandler := handlers.NewExportHandler(clientService, contactService)

	apiV1 := engine.Group("/api/v1")

	// Login is the only public route.
	apiV1.POST("/auth/login", authHandler.Login)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(authService))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupClientRoutes(authenticated, clientHandler, exportHandler)
		SetupContactRoutes(authenticated, contactHandler, exportHandler)
	}

	return nil
}
