package ticketRepo

import (
	"context"

	"stayease/database"
	"stayease/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TicketRepository defines methods for support ticket data access.
type TicketRepository interface {
	// Create inserts a new ticket and returns its ID.
	Create(ctx context.Context, ticket *models.Ticket) (string, error)
	// GetByID retrieves a ticket by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	// GetByCustomerID returns all tickets raised by a customer, newest first.
	GetByCustomerID(ctx context.Context, customerID string) ([]models.Ticket, error)
	// Close marks a ticket closed with an optional admin reply.
	Close(ctx context.Context, id, reply string) error
}

type mongoTicketRepo struct {
	coll *mongo.Collection
}

// NewMongoTicketRepo returns a TicketRepository backed by MongoDB.
func NewMongoTicketRepo() TicketRepository {
	return &mongoTicketRepo{
		coll: database.DB().Collection("tickets"),
	}
}
