package billing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	paymentRepo "stayease/database/repository/payment"
	"stayease/models"
	"stayease/services/notification"

	"go.uber.org/zap"
)

// --- fakes ---

type fakeCustomerRepo struct {
	customers []models.Customer
	listErr   error
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *models.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeCustomerRepo) Update(ctx context.Context, c *models.Customer) error { return nil }
func (f *fakeCustomerRepo) Delete(ctx context.Context, id string) error          { return nil }

func (f *fakeCustomerRepo) ListActive(ctx context.Context) ([]models.Customer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var active []models.Customer
	for _, c := range f.customers {
		if c.Status == models.CustomerActive {
			active = append(active, c)
		}
	}
	return active, nil
}

type fakePaymentRepo struct {
	mu      sync.Mutex
	history map[string][]models.Payment // customerID|bookingID -> newest first
	created []models.Payment
	failFor map[string]error // bookingID -> forced Create error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		history: make(map[string][]models.Payment),
		failFor: make(map[string]error),
	}
}

func histKey(customerID, bookingID string) string { return customerID + "|" + bookingID }

func (f *fakePaymentRepo) Create(ctx context.Context, p *models.Payment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[p.BookingID]; err != nil {
		return "", err
	}
	if p.BillingMonth == "" {
		p.BillingMonth = models.MonthKey(p.PaymentForDate)
	}
	key := histKey(p.CustomerID, p.BookingID)
	for _, existing := range f.history[key] {
		if existing.BillingMonth == p.BillingMonth {
			return "", paymentRepo.ErrDuplicateObligation
		}
	}
	p.ID = "pay-" + p.BillingMonth
	f.history[key] = append([]models.Payment{*p}, f.history[key]...)
	f.created = append(f.created, *p)
	return p.ID, nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	return nil, errors.New("not implemented")
}
func (f *fakePaymentRepo) GetByCustomerID(ctx context.Context, customerID string) ([]models.Payment, error) {
	return nil, errors.New("not implemented")
}
func (f *fakePaymentRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }
func (f *fakePaymentRepo) SetGatewayRef(ctx context.Context, id, ref string) error   { return nil }

func (f *fakePaymentRepo) LatestForBooking(ctx context.Context, customerID, bookingID string, limit int) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hist := f.history[histKey(customerID, bookingID)]
	if len(hist) > limit {
		hist = hist[:limit]
	}
	out := make([]models.Payment, len(hist))
	copy(out, hist)
	return out, nil
}

type fakePropertyRepo struct {
	properties map[string]*models.Property
	fetches    int
}

func (f *fakePropertyRepo) Create(ctx context.Context, p *models.Property) (string, error) {
	return "", errors.New("not implemented")
}
func (f *fakePropertyRepo) GetAll(ctx context.Context) ([]models.Property, error) {
	return nil, errors.New("not implemented")
}
func (f *fakePropertyRepo) Update(ctx context.Context, p *models.Property) error { return nil }
func (f *fakePropertyRepo) Delete(ctx context.Context, id string) error          { return nil }
func (f *fakePropertyRepo) AddPhotoURL(ctx context.Context, id, url string) error {
	return nil
}

func (f *fakePropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	f.fetches++
	p, ok := f.properties[id]
	if !ok {
		return nil, errors.New("property not found")
	}
	return p, nil
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []notification.Email
	sendErr error
}

func (f *fakeMailer) Send(ctx context.Context, email notification.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, email)
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// --- helpers ---

func newResolver(customers *fakeCustomerRepo, payments *fakePaymentRepo, properties *fakePropertyRepo, mailer *fakeMailer, now time.Time) *Resolver {
	return &Resolver{
		Customers: customers,
		Payments:  payments,
		Food:      &FoodCalculator{Properties: properties},
		Mailer:    mailer,
		Cfg:       testCfg(),
		Logger:    zap.NewNop(),
		Clock:     func() time.Time { return now },
	}
}

func activeCustomer(id string, bookings ...models.Booking) models.Customer {
	return models.Customer{
		ID:       id,
		Name:     "Tester",
		Email:    id + "@example.com",
		Status:   models.CustomerActive,
		Bookings: bookings,
	}
}

func confirmedBooking(id, customerID string, price int64, food bool) models.Booking {
	return models.Booking{
		ID:           id,
		CustomerID:   customerID,
		PropertyID:   "prop-1",
		RoomID:       "room-1",
		Price:        price,
		FoodIncluded: food,
		Status:       models.BookingConfirmed,
	}
}

// --- tests ---

func TestRunCreatesObligationOnCycleStart(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []models.Customer{
		activeCustomer("cust-1", confirmedBooking("book-1", "cust-1", 5000, false)),
	}}
	payments := newFakePaymentRepo()
	properties := &fakePropertyRepo{properties: map[string]*models.Property{}}
	mailer := &fakeMailer{}

	r := newResolver(customers, payments, properties, mailer, date(2024, 4, 1))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.ObligationsCreated != 1 {
		t.Fatalf("ObligationsCreated = %d, want 1", report.ObligationsCreated)
	}
	created := payments.created[0]
	if created.Amount != 5000 {
		t.Errorf("Amount = %d, want 5000", created.Amount)
	}
	if created.Status != models.PaymentNotified {
		t.Errorf("Status = %q, want %q", created.Status, models.PaymentNotified)
	}
	wantDue := time.Date(2024, 4, 7, 0, 0, 0, 0, time.UTC)
	if !created.DueDate.Equal(wantDue) {
		t.Errorf("DueDate = %v, want %v", created.DueDate, wantDue)
	}
	if created.BillingMonth != "2024-04" {
		t.Errorf("BillingMonth = %q, want 2024-04", created.BillingMonth)
	}
	if created.BookingSnapshot == nil || created.BookingSnapshot.ID != "book-1" {
		t.Errorf("BookingSnapshot not captured: %+v", created.BookingSnapshot)
	}
	if mailer.sentCount() != 1 {
		t.Errorf("emails sent = %d, want exactly 1 on cycle start", mailer.sentCount())
	}
	if report.RemindersSent != 1 {
		t.Errorf("RemindersSent = %d, want 1", report.RemindersSent)
	}
}

func TestRunAddsFoodCharge(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []models.Customer{
		activeCustomer("cust-1", confirmedBooking("book-1", "cust-1", 5000, true)),
	}}
	payments := newFakePaymentRepo()
	properties := &fakePropertyRepo{properties: map[string]*models.Property{
		"prop-1": {ID: "prop-1", FoodMenu: &models.FoodMenu{Price: 1000}},
	}}
	mailer := &fakeMailer{}

	r := newResolver(customers, payments, properties, mailer, date(2024, 4, 1))
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(payments.created) != 1 {
		t.Fatalf("created = %d payments, want 1", len(payments.created))
	}
	if payments.created[0].Amount != 6000 {
		t.Errorf("Amount = %d, want 6000", payments.created[0].Amount)
	}
}

func TestRunFoodExcludedIgnoresMenu(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []models.Customer{
		activeCustomer("cust-1", confirmedBooking("book-1", "cust-1", 5000, false)),
	}}
	payments := newFakePaymentRepo()
	properties := &fakePropertyRepo{properties: map[string]*models.Property{
		"prop-1": {ID: "prop-1", FoodMenu: &models.FoodMenu{Price: 1000}},
	}}
	mailer := &fakeMailer{}

	r := newResolver(customers, payments, properties, mailer, date(2024, 4, 1))
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if payments.created[0].Amount != 5000 {
		t.Errorf("Amount = %d, want 5000 with food excluded", payments.created[0].Amount)
	}
	if properties.fetches != 0 {
		t.Errorf("property fetched %d times, want 0 when food excluded", properties.fetches)
	}
}

func TestRunSendsLateWarningAfterDueDay(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []models.Customer{
		activeCustomer("cust-1", confirmedBooking("book-1", "cust-1", 5000, false)),
	}}
	payments := newFakePaymentRepo()
	payments.history[histKey("cust-1", "book-1")] = []models.Payment{{
		ID:             "pay-0",
		CustomerID:     "cust-1",
		BookingID:      "book-1",
		Amount:         5000,
		Status:         models.PaymentNotified,
		PaymentForDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		BillingMonth:   "2024-04",
	}}
	mailer := &fakeMailer{}

	r := newResolver(customers, payments, &fakePropertyRepo{}, mailer, date(2024, 4, 10))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(payments.created) != 0 {
		t.Errorf("created %d payments, want 0", len(payments.created))
	}
	if report.LateWarnings != 1 {
		t.Errorf("LateWarnings = %d, want 1", report.LateWarnings)
	}
	if mailer.sentCount() != 1 {
		t.Fatalf("emails sent = %d, want 1", mailer.sentCount())
	}
	if mailer.sent[0].Subject != "Late payment warning" {
		t.Errorf("Subject = %q, want late warning", mailer.sent[0].Subject)
	}
}

func TestRunSendsGentleReminderBeforeDueDay(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []models.Customer{
		activeCustomer("cust-1", confirmedBooking("book-1", "cust-1", 5000, false)),
	}}
	payments := newFakePaymentRepo()
	payments.history[histKey("cust-1", "book-1")] = []models.Payment{{
		ID:             "pay-0",
		CustomerID:     "cust-1",
		BookingID:      "book-1",
		Amount:         5000,
		Status:         models.PaymentNotified,
		PaymentForDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		BillingMonth:   "2024-04",
	}}
	mailer := &fakeMailer{}

	r := newResolver(customers, payments, &fakePropertyRepo{}, mailer, date(2024, 4, 5))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(payments.created) != 0 {
		t.Errorf("created %d payments, want 0", len(payments.created))
	}
	if report.RemindersSent != 1 {
		t.Errorf("RemindersSent = %d, want 1", report.RemindersSent)
	}
	if mailer.sentCount() != 1 || mailer.sent[0].Subject != "Gentle reminder: rent due soon" {
		t.Errorf("want exactly one gentle reminder, got %+v", mailer.sent)
	}
}

func TestRunRollsOverAfterCompletedPreviousMonth(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []models.Customer{
		activeCustomer("cust-1", confirmedBooking("book-1", "cust-1", 5000, false)),
	}}
	payments := newFakePaymentRepo()
	payments.history[histKey("cust-1", "book-1")] = []models.Payment{{
		ID:             "pay-0",
		CustomerID:     "cust-1",
		BookingID:      "book-1",
		Amount:         5000,
		Status:         models.PaymentCompleted,
		PaymentForDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		BillingMonth:   "2024-03",
	}}
	mailer := &fakeMailer{}

	r := newResolver(customers, payments, &fakePropertyRepo{}, mailer, date(2024, 4, 15))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.ObligationsCreated != 1 {
		t.Fatalf("ObligationsCreated = %d, want 1", report.ObligationsCreated)
	}
	if payments.created[0].BillingMonth != "2024-04" {
		t.Errorf("BillingMonth = %q, want 2024-04", payments.created[0].BillingMonth)
	}
}

func TestRunSkipsInactiveCustomers(t *testing.T) {
	inactive := activeCustomer("cust-2", confirmedBooking("book-2", "cust-2", 4000, false))
	inactive.Status = models.CustomerInactive

	customers := &fakeCustomerRepo{customers: []models.Customer{
		activeCustomer("cust-1", confirmedBooking("book-1", "cust-1", 5000, false)),
		inactive,
	}}
	payments := newFakePaymentRepo()
	mailer := &fakeMailer{}

	r := newResolver(customers, payments, &fakePropertyRepo{}, mailer, date(2024, 4, 1))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Customers != 1 {
		t.Errorf("Customers = %d, want 1 (inactive skipped)", report.Customers)
	}
	for _, p := range payments.created {
		if p.CustomerID == "cust-2" {
			t.Errorf("inactive customer was billed: %+v", p)
		}
	}
}

func TestRunIsolatesBranchFailures(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []models.Customer{
		activeCustomer("cust-1",
			confirmedBooking("book-1", "cust-1", 5000, false),
			confirmedBooking("book-2", "cust-1", 3000, false),
		),
	}}
	payments := newFakePaymentRepo()
	payments.failFor["book-1"] = errors.New("write refused")
	mailer := &fakeMailer{}

	r := newResolver(customers, payments, &fakePropertyRepo{}, mailer, date(2024, 4, 1))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Failed != 1 {
		t.Errorf("Failed = %d, want 1", report.Failed)
	}
	if report.ObligationsCreated != 1 {
		t.Errorf("ObligationsCreated = %d, want 1 (sibling booking must settle)", report.ObligationsCreated)
	}
	if len(payments.created) != 1 || payments.created[0].BookingID != "book-2" {
		t.Errorf("sibling booking not billed: %+v", payments.created)
	}
	if len(report.Errors) != 1 {
		t.Errorf("Errors = %v, want one entry", report.Errors)
	}
}

func TestRunTreatsDuplicateObligationAsDone(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []models.Customer{
		activeCustomer("cust-1", confirmedBooking("book-1", "cust-1", 5000, false)),
	}}
	payments := newFakePaymentRepo()
	// A pending obligation for the current month already exists, as if a
	// prior run crashed between insert and mail.
	payments.history[histKey("cust-1", "book-1")] = []models.Payment{{
		ID:             "pay-0",
		CustomerID:     "cust-1",
		BookingID:      "book-1",
		Amount:         5000,
		Status:         models.PaymentPending,
		PaymentForDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		BillingMonth:   "2024-04",
	}}
	mailer := &fakeMailer{}

	r := newResolver(customers, payments, &fakePropertyRepo{}, mailer, date(2024, 4, 1))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Failed != 0 {
		t.Errorf("Failed = %d, want 0 (duplicate is a no-op)", report.Failed)
	}
	if report.ObligationsCreated != 0 {
		t.Errorf("ObligationsCreated = %d, want 0", report.ObligationsCreated)
	}
	if mailer.sentCount() != 0 {
		t.Errorf("emails sent = %d, want 0 when the cycle is already open", mailer.sentCount())
	}
}

func TestRunSkipsCancelledAndCompletedBookings(t *testing.T) {
	cancelled := confirmedBooking("book-1", "cust-1", 5000, false)
	cancelled.Status = models.BookingCancelled
	done := confirmedBooking("book-2", "cust-1", 4000, false)
	done.Status = models.BookingCompleted

	customers := &fakeCustomerRepo{customers: []models.Customer{
		activeCustomer("cust-1", cancelled, done),
	}}
	payments := newFakePaymentRepo()
	mailer := &fakeMailer{}

	r := newResolver(customers, payments, &fakePropertyRepo{}, mailer, date(2024, 4, 1))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Bookings != 0 {
		t.Errorf("Bookings = %d, want 0", report.Bookings)
	}
	if len(payments.created) != 0 {
		t.Errorf("created %d payments, want 0", len(payments.created))
	}
}

func TestRunMailFailureDoesNotRollBackObligation(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []models.Customer{
		activeCustomer("cust-1", confirmedBooking("book-1", "cust-1", 5000, false)),
	}}
	payments := newFakePaymentRepo()
	mailer := &fakeMailer{sendErr: errors.New("smtp down")}

	r := newResolver(customers, payments, &fakePropertyRepo{}, mailer, date(2024, 4, 1))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Failed != 1 {
		t.Errorf("Failed = %d, want 1", report.Failed)
	}
	if len(payments.created) != 1 {
		t.Errorf("created %d payments, want 1 (mail failure keeps the row)", len(payments.created))
	}
}

func TestRunListFailureAbortsRun(t *testing.T) {
	customers := &fakeCustomerRepo{listErr: errors.New("mongo down")}
	r := newResolver(customers, newFakePaymentRepo(), &fakePropertyRepo{}, &fakeMailer{}, date(2024, 4, 1))
	if _, err := r.Run(context.Background()); err == nil {
		t.Fatal("Run() error = nil, want listing failure to surface")
	}
}

func TestRunProcessesManyCustomersWithBoundedPool(t *testing.T) {
	var all []models.Customer
	for i := 0; i < 50; i++ {
		id := "cust-" + string(rune('a'+i%26)) + string(rune('0'+i/26))
		all = append(all, activeCustomer(id, confirmedBooking("book-"+id, id, 1000, false)))
	}
	customers := &fakeCustomerRepo{customers: all}
	payments := newFakePaymentRepo()
	mailer := &fakeMailer{}

	r := newResolver(customers, payments, &fakePropertyRepo{}, mailer, date(2024, 4, 1))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.ObligationsCreated != 50 {
		t.Errorf("ObligationsCreated = %d, want 50", report.ObligationsCreated)
	}
	if mailer.sentCount() != 50 {
		t.Errorf("emails sent = %d, want 50", mailer.sentCount())
	}
}
