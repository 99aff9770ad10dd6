package paymentRepo

import (
	"context"
	"errors"
	"time"

	"stayease/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new payment record and returns its ID.
func (r *mongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) (string, error) {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.BillingMonth == "" {
		payment.BillingMonth = models.MonthKey(payment.PaymentForDate)
	}
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateObligation
		}
		return "", err
	}
	return payment.ID, nil
}

// GetByID returns a payment by its ID.
func (r *mongoPaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetByCustomerID returns all payments for a customer, newest first.
func (r *mongoPaymentRepo) GetByCustomerID(ctx context.Context, customerID string) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// LatestForBooking returns up to limit most recent payments for a booking.
func (r *mongoPaymentRepo) LatestForBooking(ctx context.Context, customerID, bookingID string, limit int) ([]models.Payment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{"customer_id": customerID, "booking_id": bookingID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdateStatus sets a payment's status.
func (r *mongoPaymentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("payment not found")
	}
	return nil
}

// SetGatewayRef attaches a checkout-session reference to a payment.
func (r *mongoPaymentRepo) SetGatewayRef(ctx context.Context, id, ref string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"gateway_ref": ref, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("payment not found")
	}
	return nil
}
