package customerRepo

import (
	"context"

	"stayease/database"
	bookingRepo "stayease/database/repository/booking"
	"stayease/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CustomerRepository defines methods for customer data access.
type CustomerRepository interface {
	// Create inserts a new customer record.
	Create(ctx context.Context, customer *models.Customer) error
	// GetByID retrieves a customer by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	// GetByEmail retrieves a customer by its email address.
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	// Update modifies an existing customer record.
	Update(ctx context.Context, customer *models.Customer) error
	// Delete soft-deletes a customer record by its ID.
	Delete(ctx context.Context, id string) error
	// ListActive returns all active customers with their bookings populated.
	ListActive(ctx context.Context) ([]models.Customer, error)
}

type mongoCustomerRepo struct {
	coll     *mongo.Collection
	bookings bookingRepo.BookingRepository
}

// NewMongoCustomerRepo returns a CustomerRepository backed by MongoDB.
// Bookings are stored in their own collection, so the booking repository
// is needed to populate them on reads.
func NewMongoCustomerRepo(bookings bookingRepo.BookingRepository) CustomerRepository {
	r := &mongoCustomerRepo{
		coll:     database.DB().Collection("customers"),
		bookings: bookings,
	}
	if err := r.ensureIndexes(); err != nil {
		panic(err)
	}
	return r
}
