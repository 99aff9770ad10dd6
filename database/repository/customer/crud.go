package customerRepo

import (
	"context"
	"errors"
	"time"

	"stayease/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new customer record.
func (r *mongoCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if customer.Status == "" {
		customer.Status = models.CustomerActive
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, customer)
	return err
}

// GetByID returns a customer by its ID.
func (r *mongoCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := r.coll.FindOne(ctx, bson.M{"id": id, "deleted_at": nil}).Decode(&customer)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByEmail returns a customer by its email address.
func (r *mongoCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.coll.FindOne(ctx, bson.M{"email": email, "deleted_at": nil}).Decode(&customer)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update modifies an existing customer record.
func (r *mongoCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	customer.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": customer.ID}, bson.M{"$set": customer})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("customer not found")
	}
	return nil
}

// Delete soft-deletes a customer record by setting its deleted_at timestamp.
func (r *mongoCustomerRepo) Delete(ctx context.Context, id string) error {
	now := time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"deleted_at": now, "status": models.CustomerInactive, "updated_at": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("customer not found")
	}
	return nil
}

// ListActive returns all active customers with their bookings populated.
func (r *mongoCustomerRepo) ListActive(ctx context.Context) ([]models.Customer, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"status": models.CustomerActive, "deleted_at": nil})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}

	for i := range customers {
		bookings, err := r.bookings.GetByCustomerID(ctx, customers[i].ID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		customers[i].Bookings = bookings
	}
	return customers, nil
}
