package billing

import (
	"time"

	"stayease/config"
	"stayease/models"
)

// State is the billing position of one booking within the current cycle,
// derived from its most recent payment.
type State int

const (
	// StateNoObligation means no payment row binds the booking to the
	// current cycle yet.
	StateNoObligation State = iota
	// StateNotified means an obligation exists and the customer has been
	// told, but it is unpaid.
	StateNotified
	// StateLateWarned means the obligation is unpaid past its due date.
	StateLateWarned
	// StateCompleted means the last obligation was paid.
	StateCompleted
	// StateFailed means the last payment attempt failed.
	StateFailed
)

// Action is one side effect the resolver must perform for a booking.
type Action int

const (
	// ActionCreateObligation creates the payment row for the current
	// cycle and mails the cycle-start notice.
	ActionCreateObligation Action = iota
	// ActionGentleReminder mails a pre-due-date nudge.
	ActionGentleReminder
	// ActionLateWarning mails a past-due warning.
	ActionLateWarning
)

// StateOf maps a booking's most recent payment onto a billing state.
func StateOf(last *models.Payment) State {
	if last == nil {
		return StateNoObligation
	}
	switch last.Status {
	case models.PaymentNotified:
		return StateNotified
	case models.PaymentCompleted:
		return StateCompleted
	case models.PaymentFailed:
		return StateFailed
	default:
		return StateNoObligation
	}
}

// Evaluate is the pure transition function of the rent cycle. Given the
// billing config, the current time and the booking's most recent payment,
// it returns the next state and the actions the resolver must take.
//
// A new obligation is due when today is the first of the month, or when the
// last payment completed the immediately preceding month. Creating an
// obligation is exclusive with the reminder checks: the obligation's own
// notice is the cycle-start mail, so no second reminder goes out in the
// same run.
func Evaluate(cfg config.BillingConfig, now time.Time, last *models.Payment) (State, []Action) {
	state := StateOf(last)

	if obligationDue(now, last) {
		return StateNotified, []Action{ActionCreateObligation}
	}

	if state == StateNotified {
		switch {
		case now.Day() < cfg.DueDay:
			return StateNotified, []Action{ActionGentleReminder}
		case now.Day() > cfg.DueDay:
			return StateLateWarned, []Action{ActionLateWarning}
		}
		// On the due day itself nothing fires; the customer already had a
		// reminder and is not yet late.
	}

	return state, nil
}

// obligationDue reports whether a new monthly obligation must be created.
func obligationDue(now time.Time, last *models.Payment) bool {
	if now.Day() == 1 {
		return true
	}
	if last == nil || last.Status != models.PaymentCompleted {
		return false
	}
	return isPreviousMonth(last.PaymentForDate, now)
}

// isPreviousMonth reports whether t falls in the calendar month immediately
// preceding now's month.
func isPreviousMonth(t, now time.Time) bool {
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	return t.Year() == prev.Year() && t.Month() == prev.Month()
}

// DueDate returns the obligation due date for the cycle containing now:
// the configured day of that month at midnight UTC.
func DueDate(dueDay int, now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), dueDay, 0, 0, 0, 0, time.UTC)
}

// CycleStart returns the first instant of the cycle containing now.
func CycleStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
