package handler

import (
	"net/http"

	"port_registry/internal/app/handler/api"
	"port_registry/internal/app/handler/middleware"
	"port_registry/internal/app/registry"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Registry       *registry.Registry
	ShipAPIHandler *api.ShipHandler
	jwtKey         string
}

func NewHandler(reg *registry.Registry, jwtKey string) *Handler {
	return &Handler{
		Registry:       reg,
		ShipAPIHandler: &api.ShipHandler{Registry: reg},
		jwtKey:         jwtKey,
	}
}

func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.RequestLogger())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/ships", h.ShipAPIHandler.GetShipsAPI)
		apiGroup.GET("/ships/:id", h.ShipAPIHandler.GetShipAPI)
		apiGroup.GET("/ships/:id/taken", h.ShipAPIHandler.IsTakenAPI)
		apiGroup.GET("/capacity", h.ShipAPIHandler.TotalCapacityAPI)
		apiGroup.POST("/ships", middleware.AuthMiddleware(h.jwtKey), h.ShipAPIHandler.RegisterShipAPI)
	}
}
