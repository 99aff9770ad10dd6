package propertyRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayease/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new property record and returns its ID.
func (r *mongoPropertyRepo) Create(ctx context.Context, property *models.Property) (string, error) {
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	for i := range property.Rooms {
		if property.Rooms[i].ID == "" {
			property.Rooms[i].ID = uuid.New().String()
		}
	}
	property.CreatedAt = time.Now()
	property.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, property); err != nil {
		return "", err
	}
	return property.ID, nil
}

// GetByID returns a property by its ID.
func (r *mongoPropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	err := r.coll.FindOne(ctx, bson.M{"id": id, "deleted_at": nil}).Decode(&property)
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetAll returns all properties.
func (r *mongoPropertyRepo) GetAll(ctx context.Context) ([]models.Property, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"deleted_at": nil})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// Update modifies an existing property record.
func (r *mongoPropertyRepo) Update(ctx context.Context, property *models.Property) error {
	property.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": property.ID}, bson.M{"$set": property})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("property not found")
	}
	return nil
}

// Delete soft-deletes a property record by setting its deleted_at timestamp.
func (r *mongoPropertyRepo) Delete(ctx context.Context, id string) error {
	now := time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"deleted_at": now, "updated_at": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("property not found")
	}
	return nil
}

// AddPhotoURL appends an uploaded photo URL to a property.
func (r *mongoPropertyRepo) AddPhotoURL(ctx context.Context, id, url string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$push": bson.M{"photo_urls": url},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to attach photo to property %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return errors.New("property not found")
	}
	return nil
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *mongoPropertyRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "city", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create property indexes: %w", err)
	}
	return nil
}
