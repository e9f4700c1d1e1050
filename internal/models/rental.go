// internal/models/rental.go
package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Rental statuses. Completed and cancelled are terminal and release the car.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment statuses, tracked independently of rental status.
const (
	PaymentUnpaid   = "unpaid"
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// DateLayout is the wire format for pickup and return dates.
const DateLayout = "2006-01-02"

type Rental struct {
	gorm.Model
	UserID         uint      `json:"user_id" gorm:"index;not null"`
	CarID          uint      `json:"car_id" gorm:"index;not null"`
	User           User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Car            Car       `gorm:"foreignKey:CarID;constraint:OnDelete:RESTRICT;" json:"-"`
	PickupDate     time.Time `json:"pickup_date" gorm:"type:date;index:idx_rentals_dates,priority:1;not null"`
	ReturnDate     time.Time `json:"return_date" gorm:"type:date;index:idx_rentals_dates,priority:2;not null"`
	PickupLocation string    `json:"pickup_location" gorm:"not null"`
	ReturnLocation string    `json:"return_location"`
	TotalAmount    float64   `json:"total_amount" gorm:"not null"`
	Status         string    `json:"status" gorm:"default:pending;index"`
	PaymentStatus  string    `json:"payment_status" gorm:"default:unpaid"`
	PaymentMethod  string    `json:"payment_method"`
	Notes          string    `json:"notes"`
}

// RentalStatuses lists every accepted rental status.
func RentalStatuses() []string {
	return []string{StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled}
}

// PaymentStatuses lists every accepted payment status.
func PaymentStatuses() []string {
	return []string{PaymentUnpaid, PaymentPending, PaymentPaid, PaymentRefunded}
}

// ValidRentalStatus reports whether s is an accepted rental status.
func ValidRentalStatus(s string) bool {
	for _, v := range RentalStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// ValidPaymentStatus reports whether s is an accepted payment status.
func ValidPaymentStatus(s string) bool {
	for _, v := range PaymentStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// TerminalStatus reports whether s releases the rented car.
func TerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// RentalDays returns the billable day count for a pickup/return window,
// rounding partial days up.
func RentalDays(pickup, ret time.Time) int {
	return int(math.Ceil(ret.Sub(pickup).Hours() / 24))
}

// RentalTotal computes the charge for the window at the given daily price.
func RentalTotal(pickup, ret time.Time, pricePerDay float64) (days int, total float64) {
	days = RentalDays(pickup, ret)
	return days, float64(days) * pricePerDay
}
