package bookingRepo

import (
	"context"

	"stayease/database"
	"stayease/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record and returns its ID.
	Create(ctx context.Context, booking *models.Booking) (string, error)
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByCustomerID returns all bookings for a customer, newest first.
	GetByCustomerID(ctx context.Context, customerID string) ([]models.Booking, error)
	// UpdateStatus transitions a booking's status.
	UpdateStatus(ctx context.Context, id, status string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	r := &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
	if err := r.ensureIndexes(); err != nil {
		panic(err)
	}
	return r
}
