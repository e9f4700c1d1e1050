// internal/models/car.go
package models

import (
	"gorm.io/gorm"
)

// Car is a single fleet vehicle offered for rental.
// Availability mirrors active rental state; it is not derived live from it.
type Car struct {
	gorm.Model
	Make         string  `json:"make" binding:"required"`
	CarModel     string  `json:"model" gorm:"column:model" binding:"required"`
	Year         int     `json:"year" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	PricePerDay  float64 `json:"price_per_day" binding:"required"`
	ImageURL     string  `json:"image_url"`
	Availability bool    `json:"availability" gorm:"default:true"`
	LicensePlate string  `json:"license_plate" gorm:"uniqueIndex" binding:"required"`
	Description  string  `json:"description"`
	Features     string  `json:"features"`
	FuelType     string  `json:"fuel_type" gorm:"default:Petrol"`
	Transmission string  `json:"transmission" gorm:"default:Manual"`
	Seats        int     `json:"seats" gorm:"default:5"`
}
