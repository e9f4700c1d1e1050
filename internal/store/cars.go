package store

import (
	"gorm.io/gorm"

	"carrental/internal/models"
)

// Cars runs all car queries against the shared handle.
type Cars struct {
	db *gorm.DB
}

func NewCars(db *gorm.DB) *Cars {
	return &Cars{db: db}
}

func (s *Cars) Create(car *models.Car) error {
	return translate(s.db.Create(car).Error)
}

func (s *Cars) All() ([]models.Car, error) {
	var cars []models.Car
	err := s.db.Order("created_at DESC").Find(&cars).Error
	return cars, translate(err)
}

func (s *Cars) Available() ([]models.Car, error) {
	var cars []models.Car
	err := s.db.Where("availability = ?", true).Order("created_at DESC").Find(&cars).Error
	return cars, translate(err)
}

func (s *Cars) ByID(id uint) (models.Car, error) {
	var car models.Car
	err := s.db.First(&car, id).Error
	return car, translate(err)
}

func (s *Cars) ByCategory(category string) ([]models.Car, error) {
	var cars []models.Car
	err := s.db.Where("category = ? AND availability = ?", category, true).Find(&cars).Error
	return cars, translate(err)
}

// Search matches make, model or category, available cars only.
func (s *Cars) Search(term string) ([]models.Car, error) {
	var cars []models.Car
	like := "%" + term + "%"
	err := s.db.
		Where("(make ILIKE ? OR model ILIKE ? OR category ILIKE ?) AND availability = ?", like, like, like, true).
		Find(&cars).Error
	return cars, translate(err)
}

// Update applies the given column set to an existing car. The caller decides
// which fields are present; empty maps are rejected upstream.
func (s *Cars) Update(id uint, fields map[string]interface{}) error {
	var car models.Car
	if err := s.db.First(&car, id).Error; err != nil {
		return translate(err)
	}
	return translate(s.db.Model(&car).Updates(fields).Error)
}

func (s *Cars) UpdateAvailability(id uint, available bool) error {
	return translate(s.db.Model(&models.Car{}).Where("id = ?", id).
		Update("availability", available).Error)
}

// Delete removes a car row outright. Cars referenced by rentals are protected
// by the restrict constraint and surface ErrForeignKey.
func (s *Cars) Delete(id uint) error {
	res := s.db.Unscoped().Delete(&models.Car{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
