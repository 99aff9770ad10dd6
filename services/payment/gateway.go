package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"stayease/config"
	paymentRepo "stayease/database/repository/payment"
	"stayease/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// GatewayService is the thin glue between rent obligations and the hosted
// payment gateway: it creates checkout redirects and consumes the
// completion webhook. Gateway internals (card handling, settlement) stay
// on the gateway's side entirely.
type GatewayService interface {
	// CreateCheckout opens a gateway checkout session for a notified
	// payment and returns the redirect URL.
	CreateCheckout(ctx context.Context, paymentID string) (string, error)
	// HandleWebhook verifies and applies a gateway event. A completed
	// checkout flips the referenced payment to completed.
	HandleWebhook(payload []byte, signature string) error
}

type stripeGateway struct {
	payments paymentRepo.PaymentRepository
	cfg      config.Config
	logger   *zap.Logger
}

// NewStripeGateway returns the Stripe-backed GatewayService.
func NewStripeGateway(payments paymentRepo.PaymentRepository, cfg config.Config, logger *zap.Logger) GatewayService {
	return &stripeGateway{payments: payments, cfg: cfg, logger: logger}
}

func (g *stripeGateway) CreateCheckout(ctx context.Context, paymentID string) (string, error) {
	p, err := g.payments.GetByID(ctx, paymentID)
	if err != nil {
		return "", fmt.Errorf("checkout: payment %s not found: %w", paymentID, err)
	}
	if p.Status == models.PaymentCompleted {
		return "", fmt.Errorf("checkout: payment %s is already completed", paymentID)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("inr"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Rent for %s", p.BillingMonth)),
					},
					// Rupees to paise.
					UnitAmount: stripe.Int64(p.Amount * 100),
				},
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(p.ID),
		SuccessURL:        stripe.String(g.cfg.CheckoutSuccessURL),
		CancelURL:         stripe.String(g.cfg.CheckoutCancelURL),
	}

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("checkout: session create failed: %w", err)
	}

	if err := g.payments.SetGatewayRef(ctx, p.ID, s.ID); err != nil {
		g.logger.Error("failed to record gateway ref",
			zap.String("payment", p.ID), zap.String("session", s.ID), zap.Error(err))
	}
	return s.URL, nil
}

func (g *stripeGateway) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, g.cfg.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook: signature verification failed: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return fmt.Errorf("webhook: bad checkout session payload: %w", err)
	}
	if s.ClientReferenceID == "" {
		g.logger.Warn("checkout completed without a payment reference", zap.String("session", s.ID))
		return nil
	}

	ctx := context.Background()
	if err := g.payments.UpdateStatus(ctx, s.ClientReferenceID, models.PaymentCompleted); err != nil {
		return fmt.Errorf("webhook: marking payment %s completed: %w", s.ClientReferenceID, err)
	}
	g.logger.Info("payment completed via gateway",
		zap.String("payment", s.ClientReferenceID), zap.String("session", s.ID))
	return nil
}
