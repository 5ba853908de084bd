package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/cianorte/storefront/internal/server/http/handlers"
	"github.com/cianorte/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade, logger)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authProfile := auth.Group("")
	authProfile.Use(middleware.AuthRequired(facade))
	authProfile.GET("/profile", authHandler.Profile)
	authProfile.PUT("/profile", authHandler.UpdateProfile)

	// Catalog reads are public; writes are the administrative surface,
	// unauthenticated in the current scope.
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.POST("/products", productHandler.Create)
	api.PUT("/products/:id", productHandler.Update)
	api.DELETE("/products/:id", productHandler.Delete)
	api.GET("/categories", productHandler.Categories)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.POST("/create-payment", paymentHandler.Create)
	authed.GET("/payment-status/:id", paymentHandler.Status)

	// Trusted-caller and gateway-initiated endpoints, public by design.
	api.PUT("/orders/:id/status", orderHandler.SetStatus)
	api.POST("/webhook", paymentHandler.Webhook)
	api.GET("/payment-methods", paymentHandler.Methods)

	return engine
}
