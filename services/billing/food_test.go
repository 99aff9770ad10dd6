package billing

import (
	"context"
	"testing"

	"stayease/models"
)

func TestFoodChargeWithoutMenuIsZero(t *testing.T) {
	properties := &fakePropertyRepo{properties: map[string]*models.Property{
		"prop-1": {ID: "prop-1"},
	}}
	calc := &FoodCalculator{Properties: properties}

	booking := confirmedBooking("book-1", "cust-1", 5000, true)
	got, err := calc.Charge(context.Background(), booking)
	if err != nil {
		t.Fatalf("Charge() error = %v", err)
	}
	if got != 0 {
		t.Errorf("Charge() = %d, want 0 for property without food menu", got)
	}
}

func TestFoodChargeMissingPropertyErrors(t *testing.T) {
	calc := &FoodCalculator{Properties: &fakePropertyRepo{properties: map[string]*models.Property{}}}

	booking := confirmedBooking("book-1", "cust-1", 5000, true)
	if _, err := calc.Charge(context.Background(), booking); err == nil {
		t.Fatal("Charge() error = nil, want lookup failure to surface")
	}
}

func TestFoodChargeReturnsMenuPrice(t *testing.T) {
	properties := &fakePropertyRepo{properties: map[string]*models.Property{
		"prop-1": {ID: "prop-1", FoodMenu: &models.FoodMenu{Price: 1500}},
	}}
	calc := &FoodCalculator{Properties: properties}

	booking := confirmedBooking("book-1", "cust-1", 5000, true)
	got, err := calc.Charge(context.Background(), booking)
	if err != nil {
		t.Fatalf("Charge() error = %v", err)
	}
	if got != 1500 {
		t.Errorf("Charge() = %d, want 1500", got)
	}
}
