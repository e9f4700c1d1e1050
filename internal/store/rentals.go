package store

import (
	"time"

	"gorm.io/gorm"

	"carrental/internal/models"
)

type Rentals struct {
	db *gorm.DB
}

func NewRentals(db *gorm.DB) *Rentals {
	return &Rentals{db: db}
}

// Stats aggregates counts and completed revenue across all rentals.
type Stats struct {
	TotalRentals     int64   `json:"total_rentals"`
	ActiveRentals    int64   `json:"active_rentals"`
	CompletedRentals int64   `json:"completed_rentals"`
	PendingRentals   int64   `json:"pending_rentals"`
	TotalRevenue     float64 `json:"total_revenue"`
}

func (s *Rentals) Create(rental *models.Rental) error {
	return translate(s.db.Create(rental).Error)
}

func (s *Rentals) All() ([]models.Rental, error) {
	var rentals []models.Rental
	err := s.db.Preload("User").Preload("Car").
		Order("created_at DESC").Find(&rentals).Error
	return rentals, translate(err)
}

func (s *Rentals) ByUser(userID uint) ([]models.Rental, error) {
	var rentals []models.Rental
	err := s.db.Preload("Car").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&rentals).Error
	return rentals, translate(err)
}

func (s *Rentals) ByID(id uint) (models.Rental, error) {
	var rental models.Rental
	err := s.db.Preload("User").Preload("Car").First(&rental, id).Error
	return rental, translate(err)
}

func (s *Rentals) ByStatus(status string) ([]models.Rental, error) {
	var rentals []models.Rental
	err := s.db.Preload("User").Preload("Car").
		Where("status = ?", status).
		Order("created_at DESC").Find(&rentals).Error
	return rentals, translate(err)
}

func (s *Rentals) UpdateStatus(id uint, status string) error {
	return translate(s.db.Model(&models.Rental{}).Where("id = ?", id).
		Update("status", status).Error)
}

func (s *Rentals) UpdatePaymentStatus(id uint, paymentStatus string) error {
	return translate(s.db.Model(&models.Rental{}).Where("id = ?", id).
		Update("payment_status", paymentStatus).Error)
}

func (s *Rentals) Delete(id uint) error {
	res := s.db.Unscoped().Delete(&models.Rental{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CheckAvailability reports whether the car is free of conflicting rentals
// for the window. Bounds compare inclusively, so a rental returning on the
// proposed pickup day still conflicts. Rentals in a terminal status are
// ignored; excludeRentalID (when non-zero) skips the rental being updated.
//
// The check runs without any row lock; two concurrent creations can both see
// a free car. Callers accept that window.
func (s *Rentals) CheckAvailability(carID uint, pickup, ret time.Time, excludeRentalID uint) (bool, error) {
	q := s.db.Model(&models.Rental{}).
		Where("car_id = ?", carID).
		Where("status NOT IN ?", []string{models.StatusCancelled, models.StatusCompleted}).
		Where("pickup_date <= ? AND return_date >= ?", ret, pickup)

	if excludeRentalID != 0 {
		q = q.Where("id <> ?", excludeRentalID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count == 0, nil
}

func (s *Rentals) GetStats() (Stats, error) {
	var stats Stats
	err := s.db.Raw(`
		SELECT
			COUNT(*) AS total_rentals,
			COUNT(CASE WHEN status = 'active' THEN 1 END) AS active_rentals,
			COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed_rentals,
			COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending_rentals,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN total_amount ELSE 0 END), 0) AS total_revenue
		FROM rentals
		WHERE deleted_at IS NULL
	`).Scan(&stats).Error
	return stats, translate(err)
}
