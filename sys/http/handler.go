package http

import (
	"log"
	"net/http"

	"partner-portal-api/res/auth"
	"partner-portal-api/res/storage"
	"partner-portal-api/res/store"
	"partner-portal-api/sys/export"
	"partner-portal-api/sys/http/middleware"
	"partner-portal-api/sys/registration"

	"github.com/gin-gonic/gin"
)

// Handler holds the collaborators every endpoint needs. One instance serves
// the whole API.
type Handler struct {
	Logger       *log.Logger
	Store        store.Store
	Auth         auth.Auth
	Storage      storage.DocumentStorage
	Registration *registration.Service
	Exporter     *export.Exporter
}

// NewRouter assembles the gin engine with all routes and middleware.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.AuthMiddleware(h.Logger, h.Store, h.Auth))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/register", h.Register)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/provider", h.AuthWithProvider)
			authGroup.POST("/refresh", h.AuthWithRefreshToken)
			authGroup.POST("/signout", h.SignOut)
		}

		admin := api.Group("/admin", middleware.RequireStaff())
		{
			admin.GET("/records", h.ListRecords)
			admin.PATCH("/records/:id", h.UpdateRecord)
			admin.GET("/records/export", h.ExportRecords)
		}
	}

	return router
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Uniform response envelope helpers. Every endpoint answers with
// {success, data} or {success, error}.

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
