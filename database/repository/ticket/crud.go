package ticketRepo

import (
	"context"
	"errors"
	"time"

	"stayease/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new ticket and returns its ID.
func (r *mongoTicketRepo) Create(ctx context.Context, ticket *models.Ticket) (string, error) {
	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}
	ticket.Status = models.TicketOpen
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, ticket); err != nil {
		return "", err
	}
	return ticket.ID, nil
}

// GetByID returns a ticket by its ID.
func (r *mongoTicketRepo) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&ticket)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetByCustomerID returns all tickets raised by a customer, newest first.
func (r *mongoTicketRepo) GetByCustomerID(ctx context.Context, customerID string) ([]models.Ticket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Close marks a ticket closed with an optional admin reply.
func (r *mongoTicketRepo) Close(ctx context.Context, id, reply string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"status": models.TicketClosed, "reply": reply, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("ticket not found")
	}
	return nil
}
