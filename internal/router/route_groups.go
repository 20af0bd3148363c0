package router

import (
	"clienteflow_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthenticatedAuthRoutes sets up the session routes behind the auth middleware.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.Logout)
	group.GET("/session", authHandler.GetSession)
}

// SetupClientRoutes sets up the client registry routes.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler, exportHandler *handlers.ExportHandler) {
	clientRoutes := authenticatedGroup.Group("/clients")
	{
		clientRoutes.POST("", clientHandler.CreateClient)
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.GET("/export", exportHandler.ExportClients)
		clientRoutes.GET("/:id", clientHandler.GetClientByID)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
	}
}

// SetupContactRoutes sets up the contact agenda routes.
func SetupContactRoutes(authenticatedGroup *gin.RouterGroup, contactHandler *handlers.ContactHandler, exportHandler *handlers.ExportHandler) {
	contactRoutes := authenticatedGroup.Group("/contacts")
	{
		contactRoutes.POST("", contactHandler.CreateContact)
		contactRoutes.GET("", contactHandler.GetContacts)
		contactRoutes.GET("/export", exportHandler.ExportContacts)
		contactRoutes.GET("/:id", contactHandler.GetContactByID)
		contactRoutes.PUT("/:id", contactHandler.UpdateContact)
		contactRoutes.DELETE("/:id", contactHandler.DeleteContact)
	}

	authenticatedGroup.GET("/channels", contactHandler.GetChannels)
}
