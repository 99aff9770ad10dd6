package handlers

import (
	customerRepo "stayease/database/repository/customer"
)

// Bundle groups the assembled handlers for route registration. The
// customer repository rides along for the auth middleware.
type Bundle struct {
	CustomerRepo customerRepo.CustomerRepository

	Customer *CustomerHandler
	Property *PropertyHandler
	Booking  *BookingHandler
	Payment  *PaymentHandler
	Ticket   *TicketHandler
	Billing  *BillingHandler
}
