package handlers

import (
	"io"
	"net/http"

	paymentRepo "stayease/database/repository/payment"
	"stayease/middleware"
	"stayease/services/payment"
	"stayease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves payment listing, gateway checkout and the
// completion webhook.
type PaymentHandler struct {
	Repo    paymentRepo.PaymentRepository
	Gateway payment.GatewayService
}

func NewPaymentHandler(repo paymentRepo.PaymentRepository, gateway payment.GatewayService) *PaymentHandler {
	return &PaymentHandler{Repo: repo, Gateway: gateway}
}

// ListMineHandler handles GET /api/payments.
func (h *PaymentHandler) ListMineHandler(c *gin.Context) {
	customerID := c.GetString(middleware.CustomerIDKey)
	payments, err := h.Repo.GetByCustomerID(c.Request.Context(), customerID)
	if err != nil {
		utils.GetLogger().Error("Payment list failed", zap.String("customer", customerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// CheckoutHandler handles POST /api/payments/:id/checkout and returns the
// gateway redirect URL.
func (h *PaymentHandler) CheckoutHandler(c *gin.Context) {
	logger := utils.GetLogger()
	customerID := c.GetString(middleware.CustomerIDKey)
	id := c.Param("id")

	p, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	if p.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your payment"})
		return
	}

	url, err := h.Gateway.CreateCheckout(c.Request.Context(), id)
	if err != nil {
		logger.Error("Checkout create failed", zap.String("payment", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not start checkout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect_url": url})
}

// WebhookHandler handles POST /api/webhooks/gateway. It is unauthenticated;
// the gateway signature is the credential.
func (h *PaymentHandler) WebhookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read payload"})
		return
	}

	if err := h.Gateway.HandleWebhook(body, c.GetHeader("Stripe-Signature")); err != nil {
		logger.Warn("Gateway webhook rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook rejected"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
