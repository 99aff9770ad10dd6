package models

import "time"

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Booking links a customer to a room in a property at a monthly price.
// A booking is immutable once created except for status transitions
// (pending -> confirmed -> cancelled/completed).
type Booking struct {
	ID           string     `bson:"id" json:"id"`
	CustomerID   string     `bson:"customer_id" json:"customer_id"`
	PropertyID   string     `bson:"property_id" json:"property_id"`
	RoomID       string     `bson:"room_id" json:"room_id"`
	Price        int64      `bson:"price" json:"price"` // monthly rent in rupees
	FoodIncluded bool       `bson:"food_included" json:"food_included"`
	Status       string     `bson:"status" json:"status"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt    *time.Time `bson:"deleted_at,omitempty" json:"-"`
}
