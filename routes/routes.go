package routes

import (
	"net/http"
	"time"

	"stayease/handlers"
	"stayease/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCustomerRoutes registers customer account endpoints.
func RegisterCustomerRoutes(r *gin.Engine, b *handlers.Bundle) {
	api := r.Group("/api/customers")
	{
		api.POST("/register", b.Customer.RegisterHandler)
		api.POST("/login", b.Customer.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthCustomerMiddleware(b.CustomerRepo))
		api.GET("/me", b.Customer.GetMeHandler)
		api.PUT("/me", b.Customer.UpdateHandler)
		api.DELETE("/me", b.Customer.DeleteHandler)
	}
}

// RegisterPropertyRoutes registers the public property catalogue and the
// admin property management endpoints.
func RegisterPropertyRoutes(r *gin.Engine, b *handlers.Bundle) {
	api := r.Group("/api/properties")
	{
		api.GET("", b.Property.ListHandler)
		api.GET("/:id", b.Property.GetHandler)
	}

	admin := r.Group("/api/admin/properties")
	{
		admin.Use(middleware.AdminAuthMiddleware())
		admin.POST("", b.Property.CreateHandler)
		admin.PUT("/:id", b.Property.UpdateHandler)
		admin.DELETE("/:id", b.Property.DeleteHandler)
		admin.POST("/:id/photos", b.Property.UploadPhotoHandler)
	}
}

// RegisterBookingRoutes registers booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, b *handlers.Bundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthCustomerMiddleware(b.CustomerRepo))
		api.POST("", b.Booking.CreateHandler)
		api.GET("", b.Booking.ListMineHandler)
		api.PATCH("/:id/status", b.Booking.UpdateStatusHandler)
	}
}

// RegisterPaymentRoutes registers payment endpoints and the gateway
// webhook. The webhook stays outside the auth group; the gateway
// signature is its credential.
func RegisterPaymentRoutes(r *gin.Engine, b *handlers.Bundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthCustomerMiddleware(b.CustomerRepo))
		api.GET("", b.Payment.ListMineHandler)
		api.POST("/:id/checkout", b.Payment.CheckoutHandler)
	}

	r.POST("/api/webhooks/gateway", b.Payment.WebhookHandler)
}

// RegisterTicketRoutes registers support ticket endpoints.
func RegisterTicketRoutes(r *gin.Engine, b *handlers.Bundle) {
	api := r.Group("/api/tickets")
	{
		api.Use(middleware.JWTAuthCustomerMiddleware(b.CustomerRepo))
		api.POST("", b.Ticket.CreateHandler)
		api.GET("", b.Ticket.ListMineHandler)
	}
}

// RegisterAdminRoutes registers operator endpoints: billing control and
// ticket handling.
func RegisterAdminRoutes(r *gin.Engine, b *handlers.Bundle) {
	admin := r.Group("/api/admin")
	{
		admin.Use(middleware.AdminAuthMiddleware())
		admin.POST("/billing/run", b.Billing.TriggerRunHandler)
		admin.GET("/billing/report", b.Billing.LastReportHandler)
		admin.POST("/tickets/:id/close", b.Ticket.CloseHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm StayEase"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, b *handlers.Bundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCustomerRoutes(r, b)
	RegisterPropertyRoutes(r, b)
	RegisterBookingRoutes(r, b)
	RegisterPaymentRoutes(r, b)
	RegisterTicketRoutes(r, b)
	RegisterAdminRoutes(r, b)
	RegisterHealthRoute(r)
}
