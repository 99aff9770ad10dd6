package billing

import (
	"context"
	"errors"
	"sync"
	"time"

	"stayease/config"
	customerRepo "stayease/database/repository/customer"
	paymentRepo "stayease/database/repository/payment"
	"stayease/models"
	"stayease/services/notification"

	"go.uber.org/zap"
)

// RunReport summarises one billing run for the job log and the admin API.
type RunReport struct {
	StartedAt          time.Time `json:"started_at"`
	FinishedAt         time.Time `json:"finished_at"`
	Customers          int       `json:"customers"`
	Bookings           int       `json:"bookings"`
	ObligationsCreated int       `json:"obligations_created"`
	RemindersSent      int       `json:"reminders_sent"`
	LateWarnings       int       `json:"late_warnings"`
	Failed             int       `json:"failed"`
	Errors             []string  `json:"errors,omitempty"`
}

// Resolver walks every active customer once per invocation, decides per
// booking whether to open a new monthly obligation, nudge, or warn, and
// performs the side effects. Branch failures are contained: every booking
// settles on its own and the report carries the tally.
type Resolver struct {
	Customers customerRepo.CustomerRepository
	Payments  paymentRepo.PaymentRepository
	Food      *FoodCalculator
	Mailer    notification.Mailer
	Cfg       config.BillingConfig
	Logger    *zap.Logger

	// Clock is replaceable in tests; nil means time.Now.
	Clock func() time.Time

	mu         sync.Mutex
	lastReport *RunReport
}

// LastReport returns the report of the most recent run, or nil if the
// resolver has not run yet.
func (r *Resolver) LastReport() *RunReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastReport
}

func (r *Resolver) now() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return time.Now()
}

// Run executes one full billing pass. Customers are processed through a
// bounded worker pool; within a customer, bookings settle concurrently.
// Run only returns an error when the active-customer listing itself fails —
// everything downstream is contained per branch and reported.
func (r *Resolver) Run(ctx context.Context) (*RunReport, error) {
	if r.Cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Cfg.RunTimeout)
		defer cancel()
	}

	report := &RunReport{StartedAt: r.now()}

	customers, err := r.Customers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	report.Customers = len(customers)

	workers := r.Cfg.MaxConcurrency
	if workers <= 0 {
		workers = 1
	}

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, workers)
		mu  sync.Mutex
	)

	for i := range customers {
		customer := customers[i]
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			r.processCustomer(ctx, customer, report, &mu)
		}()
	}
	wg.Wait()

	report.FinishedAt = r.now()
	r.Logger.Info("billing run finished",
		zap.Int("customers", report.Customers),
		zap.Int("bookings", report.Bookings),
		zap.Int("obligations_created", report.ObligationsCreated),
		zap.Int("reminders_sent", report.RemindersSent),
		zap.Int("late_warnings", report.LateWarnings),
		zap.Int("failed", report.Failed),
	)

	r.mu.Lock()
	r.lastReport = report
	r.mu.Unlock()
	return report, nil
}

// processCustomer settles all of one customer's bookings concurrently.
func (r *Resolver) processCustomer(ctx context.Context, customer models.Customer, report *RunReport, mu *sync.Mutex) {
	var wg sync.WaitGroup
	for i := range customer.Bookings {
		booking := customer.Bookings[i]
		if booking.Status == models.BookingCancelled || booking.Status == models.BookingCompleted {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := r.processBooking(ctx, customer, booking)

			mu.Lock()
			defer mu.Unlock()
			report.Bookings++
			report.ObligationsCreated += outcome.obligations
			report.RemindersSent += outcome.reminders
			report.LateWarnings += outcome.warnings
			if err != nil {
				report.Failed++
				report.Errors = append(report.Errors, err.Error())
			}
		}()
	}
	wg.Wait()
}

type bookingOutcome struct {
	obligations int
	reminders   int
	warnings    int
}

// processBooking evaluates the cycle state machine for one booking and
// performs the resulting side effects.
func (r *Resolver) processBooking(ctx context.Context, customer models.Customer, booking models.Booking) (bookingOutcome, error) {
	var outcome bookingOutcome
	now := r.now()

	history, err := r.Payments.LatestForBooking(ctx, customer.ID, booking.ID, r.Cfg.HistoryLimit)
	if err != nil {
		r.Logger.Error("payment history fetch failed",
			zap.String("customer", customer.ID), zap.String("booking", booking.ID), zap.Error(err))
		return outcome, &BranchError{CustomerID: customer.ID, BookingID: booking.ID, Step: "history", Err: err}
	}

	var last *models.Payment
	if len(history) > 0 {
		last = &history[0]
	}

	_, actions := Evaluate(r.Cfg, now, last)

	for _, action := range actions {
		switch action {
		case ActionCreateObligation:
			created, amount, err := r.createObligation(ctx, customer, booking, now)
			if err != nil {
				return outcome, err
			}
			if !created {
				// Another run already opened this cycle; nothing to mail.
				continue
			}
			outcome.obligations++
			if err := r.sendMail(ctx, customer, notification.TemplateNewObligation, amount, now); err != nil {
				return outcome, err
			}
			outcome.reminders++

		case ActionGentleReminder:
			if err := r.sendMail(ctx, customer, notification.TemplateGentleReminder, last.Amount, now); err != nil {
				return outcome, err
			}
			outcome.reminders++

		case ActionLateWarning:
			if err := r.sendMail(ctx, customer, notification.TemplateLatePaymentWarning, last.Amount, now); err != nil {
				return outcome, err
			}
			outcome.warnings++
		}
	}
	return outcome, nil
}

// createObligation writes the payment row for the current cycle. A
// duplicate for the same billing month is not an error: it means a prior
// run already opened the cycle, so created=false and nothing else happens.
func (r *Resolver) createObligation(ctx context.Context, customer models.Customer, booking models.Booking, now time.Time) (created bool, amount int64, err error) {
	foodAmount, err := r.Food.Charge(ctx, booking)
	if err != nil {
		r.Logger.Error("food charge lookup failed",
			zap.String("customer", customer.ID), zap.String("booking", booking.ID), zap.Error(err))
		return false, 0, &BranchError{CustomerID: customer.ID, BookingID: booking.ID, Step: "food", Err: err}
	}

	amount = booking.Price + foodAmount
	snapshot := booking
	payment := &models.Payment{
		CustomerID:      customer.ID,
		BookingID:       booking.ID,
		Amount:          amount,
		PaymentForDate:  CycleStart(now),
		DueDate:         DueDate(r.Cfg.DueDay, now),
		BillingMonth:    models.MonthKey(now),
		Status:          models.PaymentNotified,
		BookingSnapshot: &snapshot,
	}

	if _, err := r.Payments.Create(ctx, payment); err != nil {
		if errors.Is(err, paymentRepo.ErrDuplicateObligation) {
			r.Logger.Debug("obligation already exists for cycle",
				zap.String("customer", customer.ID),
				zap.String("booking", booking.ID),
				zap.String("billing_month", payment.BillingMonth))
			return false, amount, nil
		}
		r.Logger.Error("obligation write failed",
			zap.String("customer", customer.ID), zap.String("booking", booking.ID), zap.Error(err))
		return false, 0, &BranchError{CustomerID: customer.ID, BookingID: booking.ID, Step: "create", Err: err}
	}
	return true, amount, nil
}

func (r *Resolver) sendMail(ctx context.Context, customer models.Customer, key notification.TemplateKey, amount int64, now time.Time) error {
	subject, text, html, err := notification.RenderTemplate(key, notification.TemplateData{
		CustomerName: customer.Name,
		Amount:       amount,
		DueDate:      DueDate(r.Cfg.DueDay, now),
	})
	if err != nil {
		return &BranchError{CustomerID: customer.ID, Step: "mail", Err: err}
	}

	email := notification.Email{
		From:     r.Cfg.SenderEmail,
		FromName: r.Cfg.SenderName,
		To:       customer.Email,
		Subject:  subject,
		Text:     text,
		HTML:     html,
	}
	if err := r.Mailer.Send(ctx, email); err != nil {
		r.Logger.Error("billing mail send failed",
			zap.String("customer", customer.ID), zap.String("template", string(key)), zap.Error(err))
		return &BranchError{CustomerID: customer.ID, Step: "mail", Err: err}
	}
	return nil
}
