package billing

import (
	"testing"
	"time"

	"stayease/config"
	"stayease/models"
)

func testCfg() config.BillingConfig {
	return config.BillingConfig{
		DueDay:         7,
		HistoryLimit:   2,
		MaxConcurrency: 4,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func paymentWith(status string, forDate time.Time) *models.Payment {
	return &models.Payment{
		Status:         status,
		PaymentForDate: forDate,
		Amount:         5000,
	}
}

func TestStateOf(t *testing.T) {
	tests := []struct {
		name string
		last *models.Payment
		want State
	}{
		{"no history", nil, StateNoObligation},
		{"notified", paymentWith(models.PaymentNotified, date(2024, 3, 1)), StateNotified},
		{"completed", paymentWith(models.PaymentCompleted, date(2024, 3, 1)), StateCompleted},
		{"failed", paymentWith(models.PaymentFailed, date(2024, 3, 1)), StateFailed},
		{"pending", paymentWith(models.PaymentPending, date(2024, 3, 1)), StateNoObligation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateOf(tt.last); got != tt.want {
				t.Errorf("StateOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	cfg := testCfg()

	tests := []struct {
		name        string
		now         time.Time
		last        *models.Payment
		wantState   State
		wantActions []Action
	}{
		{
			name:        "first of month with no history creates obligation",
			now:         date(2024, 4, 1),
			last:        nil,
			wantState:   StateNotified,
			wantActions: []Action{ActionCreateObligation},
		},
		{
			name:        "first of month is exclusive, no extra reminder",
			now:         date(2024, 4, 1),
			last:        paymentWith(models.PaymentNotified, date(2024, 3, 1)),
			wantState:   StateNotified,
			wantActions: []Action{ActionCreateObligation},
		},
		{
			name:        "completed previous month rolls over mid-month",
			now:         date(2024, 4, 15),
			last:        paymentWith(models.PaymentCompleted, date(2024, 3, 1)),
			wantState:   StateNotified,
			wantActions: []Action{ActionCreateObligation},
		},
		{
			name:      "completed current month does not roll over",
			now:       date(2024, 4, 15),
			last:      paymentWith(models.PaymentCompleted, date(2024, 4, 1)),
			wantState: StateCompleted,
		},
		{
			name:      "completed two months back does not roll over",
			now:       date(2024, 4, 15),
			last:      paymentWith(models.PaymentCompleted, date(2024, 2, 1)),
			wantState: StateCompleted,
		},
		{
			name:        "january rollover from december",
			now:         date(2024, 1, 20),
			last:        paymentWith(models.PaymentCompleted, date(2023, 12, 1)),
			wantState:   StateNotified,
			wantActions: []Action{ActionCreateObligation},
		},
		{
			name:        "notified before due day gets gentle reminder",
			now:         date(2024, 4, 5),
			last:        paymentWith(models.PaymentNotified, date(2024, 4, 1)),
			wantState:   StateNotified,
			wantActions: []Action{ActionGentleReminder},
		},
		{
			name:        "notified after due day gets late warning",
			now:         date(2024, 4, 10),
			last:        paymentWith(models.PaymentNotified, date(2024, 4, 1)),
			wantState:   StateLateWarned,
			wantActions: []Action{ActionLateWarning},
		},
		{
			name:      "notified on due day itself fires nothing",
			now:       date(2024, 4, 7),
			last:      paymentWith(models.PaymentNotified, date(2024, 4, 1)),
			wantState: StateNotified,
		},
		{
			name:      "failed payment mid-month fires nothing",
			now:       date(2024, 4, 10),
			last:      paymentWith(models.PaymentFailed, date(2024, 4, 1)),
			wantState: StateFailed,
		},
		{
			name:      "no history mid-month fires nothing",
			now:       date(2024, 4, 10),
			last:      nil,
			wantState: StateNoObligation,
		},
		{
			name:      "pending payment mid-month fires nothing",
			now:       date(2024, 4, 10),
			last:      paymentWith(models.PaymentPending, date(2024, 4, 1)),
			wantState: StateNoObligation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, actions := Evaluate(cfg, tt.now, tt.last)
			if state != tt.wantState {
				t.Errorf("Evaluate() state = %v, want %v", state, tt.wantState)
			}
			if len(actions) != len(tt.wantActions) {
				t.Fatalf("Evaluate() actions = %v, want %v", actions, tt.wantActions)
			}
			for i := range actions {
				if actions[i] != tt.wantActions[i] {
					t.Errorf("Evaluate() action[%d] = %v, want %v", i, actions[i], tt.wantActions[i])
				}
			}
		})
	}
}

func TestDueDate(t *testing.T) {
	got := DueDate(7, date(2024, 4, 23))
	want := time.Date(2024, 4, 7, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DueDate() = %v, want %v", got, want)
	}
}

func TestCycleStart(t *testing.T) {
	got := CycleStart(date(2024, 4, 23))
	want := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CycleStart() = %v, want %v", got, want)
	}
}

func TestIsPreviousMonth(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		now  time.Time
		want bool
	}{
		{"previous month", date(2024, 3, 15), date(2024, 4, 2), true},
		{"same month", date(2024, 4, 1), date(2024, 4, 2), false},
		{"two months back", date(2024, 2, 28), date(2024, 4, 2), false},
		{"december to january", date(2023, 12, 31), date(2024, 1, 15), true},
		{"previous year same month", date(2023, 4, 15), date(2024, 4, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPreviousMonth(tt.t, tt.now); got != tt.want {
				t.Errorf("isPreviousMonth(%v, %v) = %v, want %v", tt.t, tt.now, got, tt.want)
			}
		})
	}
}
