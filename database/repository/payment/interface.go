package paymentRepo

import (
	"context"
	"errors"

	"stayease/database"
	"stayease/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateObligation is returned by Create when a payment for the same
// customer, booking and billing month already exists. The unique index on
// those three fields is what makes a billing run safe to repeat.
var ErrDuplicateObligation = errors.New("payment obligation already exists for this billing month")

// PaymentRepository defines methods for payment data access.
type PaymentRepository interface {
	// Create inserts a new payment record and returns its ID. Returns
	// ErrDuplicateObligation if the (customer, booking, billing month)
	// tuple already exists.
	Create(ctx context.Context, payment *models.Payment) (string, error)
	// GetByID retrieves a payment by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	// GetByCustomerID returns all payments for a customer, newest first.
	GetByCustomerID(ctx context.Context, customerID string) ([]models.Payment, error)
	// LatestForBooking returns up to limit most recent payments for a
	// customer's booking, sorted by creation time descending. Returns an
	// empty slice if none exist.
	LatestForBooking(ctx context.Context, customerID, bookingID string, limit int) ([]models.Payment, error)
	// UpdateStatus sets a payment's status.
	UpdateStatus(ctx context.Context, id, status string) error
	// SetGatewayRef attaches a checkout-session reference to a payment.
	SetGatewayRef(ctx context.Context, id, ref string) error
}

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo returns a PaymentRepository backed by MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	r := &mongoPaymentRepo{
		coll: database.DB().Collection("payments"),
	}
	if err := r.ensureIndexes(); err != nil {
		panic(err)
	}
	return r
}
