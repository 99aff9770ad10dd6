// File: stayease/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayease/config"
	"stayease/cron"
	"stayease/database"
	bookingRepo "stayease/database/repository/booking"
	customerRepo "stayease/database/repository/customer"
	paymentRepo "stayease/database/repository/payment"
	propertyRepo "stayease/database/repository/property"
	ticketRepo "stayease/database/repository/ticket"
	"stayease/handlers"
	"stayease/middleware"
	"stayease/routes"
	"stayease/services/billing"
	"stayease/services/notification"
	paymentSvc "stayease/services/payment"
	"stayease/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	customers := customerRepo.NewMongoCustomerRepo(bookings)
	payments := paymentRepo.NewMongoPaymentRepo()
	properties := propertyRepo.NewMongoPropertyRepo()
	tickets := ticketRepo.NewMongoTicketRepo()

	// services.
	mailer := notification.NewSMTPMailer(config.AppConfig)
	gateway := paymentSvc.NewStripeGateway(payments, config.AppConfig, logger)

	resolver := &billing.Resolver{
		Customers: customers,
		Payments:  payments,
		Food: &billing.FoodCalculator{
			Properties: properties,
			Cache:      utils.GetCacheClient(),
			CacheTTL:   config.AppConfig.Billing.PropertyCacheTTL,
			Logger:     logger,
		},
		Mailer: mailer,
		Cfg:    config.AppConfig.Billing,
		Logger: logger,
	}

	// Billing worker and scheduler.
	cron.InitBillingWorker(resolver)
	billingQueue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisBillingQueueDB,
	})

	// Assemble the handler bundle.
	bundle := &handlers.Bundle{
		CustomerRepo: customers,
		Customer:     handlers.NewCustomerHandler(customers),
		Property:     handlers.NewPropertyHandler(properties, storageService),
		Booking:      handlers.NewBookingHandler(bookings, properties),
		Payment:      handlers.NewPaymentHandler(payments, gateway),
		Ticket:       handlers.NewTicketHandler(tickets),
		Billing:      handlers.NewBillingHandler(resolver, billingQueue),
	}

	routes.RegisterRoutes(router, bundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
