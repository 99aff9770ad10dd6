package models

import "time"

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentNotified  = "notified"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment represents one monthly rent obligation (or a historical payment)
// for a booking. DueDate is always the configured due day of the
// PaymentForDate month at midnight UTC. BillingMonth is the "YYYY-MM" key
// of PaymentForDate; together with the customer and booking IDs it is
// unique, so a billing run can never create the same obligation twice.
type Payment struct {
	ID             string    `bson:"id" json:"id"`
	CustomerID     string    `bson:"customer_id" json:"customer_id"`
	BookingID      string    `bson:"booking_id" json:"booking_id"`
	Amount         int64     `bson:"amount" json:"amount"` // rupees, rent plus food charge
	PaymentForDate time.Time `bson:"payment_for_date" json:"payment_for_date"`
	DueDate        time.Time `bson:"due_date" json:"due_date"`
	BillingMonth   string    `bson:"billing_month" json:"billing_month"` // "YYYY-MM"
	Status         string    `bson:"status" json:"status"`

	// GatewayRef holds the checkout-session ID once the customer has been
	// redirected to the payment gateway.
	GatewayRef string `bson:"gateway_ref,omitempty" json:"gateway_ref,omitempty"`

	BookingSnapshot *Booking  `bson:"booking_snapshot,omitempty" json:"booking_snapshot,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// MonthKey formats t's year and month as a BillingMonth value.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
