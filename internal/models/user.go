package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username      string `json:"username" gorm:"uniqueIndex;not null"`
	Email         string `json:"email" gorm:"uniqueIndex;not null"`
	Password      string `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	FullName      string `json:"full_name" gorm:"not null"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	Role          string `json:"role" gorm:"default:customer"` // "customer" or "admin"

	Rentals []Rental `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"rentals,omitempty"`
}
