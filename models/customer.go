package models

import "time"

// Customer statuses.
const (
	CustomerActive   = "active"
	CustomerInactive = "inactive"
)

// Customer represents a paying-guest tenant on the platform.
type Customer struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	Email        string     `bson:"email" json:"email"`
	Phone        string     `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string     `bson:"password_hash" json:"-"`
	Status       string     `bson:"status" json:"status"` // "active" or "inactive"
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt    *time.Time `bson:"deleted_at,omitempty" json:"-"`

	// Bookings is populated by the customer repository on list/fetch;
	// it is not stored on the customer document itself.
	Bookings []Booking `bson:"-" json:"bookings,omitempty"`
}
