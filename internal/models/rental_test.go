package models

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRentalTotal(t *testing.T) {
	tests := []struct {
		name      string
		pickup    string
		ret       string
		price     float64
		wantDays  int
		wantTotal float64
	}{
		{"five days", "2024-01-15", "2024-01-20", 50.00, 5, 250.00},
		{"single day", "2024-03-01", "2024-03-02", 75.50, 1, 75.50},
		{"across month boundary", "2024-01-30", "2024-02-02", 40.00, 3, 120.00},
		{"two weeks", "2024-06-01", "2024-06-15", 30.00, 14, 420.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, total := RentalTotal(date(tt.pickup), date(tt.ret), tt.price)
			if days != tt.wantDays {
				t.Errorf("RentalTotal() days = %d, want %d", days, tt.wantDays)
			}
			if total != tt.wantTotal {
				t.Errorf("RentalTotal() total = %v, want %v", total, tt.wantTotal)
			}
		})
	}
}

func TestRentalDays_PartialDayRoundsUp(t *testing.T) {
	pickup := date("2024-01-15")
	ret := date("2024-01-17").Add(6 * time.Hour)
	if got := RentalDays(pickup, ret); got != 3 {
		t.Errorf("RentalDays() = %d, want 3", got)
	}
}

func TestValidRentalStatus(t *testing.T) {
	for _, s := range RentalStatuses() {
		if !ValidRentalStatus(s) {
			t.Errorf("ValidRentalStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "returned", "PENDING", "done"} {
		if ValidRentalStatus(s) {
			t.Errorf("ValidRentalStatus(%q) = true, want false", s)
		}
	}
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range PaymentStatuses() {
		if !ValidPaymentStatus(s) {
			t.Errorf("ValidPaymentStatus(%q) = false, want true", s)
		}
	}
	if ValidPaymentStatus("charged") {
		t.Error("ValidPaymentStatus(\"charged\") = true, want false")
	}
}

func TestTerminalStatus(t *testing.T) {
	if !TerminalStatus(StatusCompleted) || !TerminalStatus(StatusCancelled) {
		t.Error("completed and cancelled must be terminal")
	}
	for _, s := range []string{StatusPending, StatusConfirmed, StatusActive} {
		if TerminalStatus(s) {
			t.Errorf("TerminalStatus(%q) = true, want false", s)
		}
	}
}
