package propertyRepo

import (
	"context"

	"stayease/database"
	"stayease/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PropertyRepository defines methods for property data access.
type PropertyRepository interface {
	// Create inserts a new property record and returns its ID.
	Create(ctx context.Context, property *models.Property) (string, error)
	// GetByID retrieves a property by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Property, error)
	// GetAll retrieves all properties.
	GetAll(ctx context.Context) ([]models.Property, error)
	// Update modifies an existing property record.
	Update(ctx context.Context, property *models.Property) error
	// Delete soft-deletes a property record by its ID.
	Delete(ctx context.Context, id string) error
	// AddPhotoURL appends an uploaded photo URL to a property.
	AddPhotoURL(ctx context.Context, id, url string) error
}

type mongoPropertyRepo struct {
	coll *mongo.Collection
}

// NewMongoPropertyRepo returns a PropertyRepository backed by MongoDB.
func NewMongoPropertyRepo() PropertyRepository {
	r := &mongoPropertyRepo{
		coll: database.DB().Collection("properties"),
	}
	if err := r.ensureIndexes(); err != nil {
		panic(err)
	}
	return r
}
