package store

import (
	"gorm.io/gorm"

	"carrental/internal/models"
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (s *Users) Create(user *models.User) error {
	return translate(s.db.Create(user).Error)
}

func (s *Users) ByEmail(email string) (models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	return user, translate(err)
}

func (s *Users) ByID(id uint) (models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	return user, translate(err)
}

func (s *Users) All() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at DESC").Find(&users).Error
	return users, translate(err)
}

// Update applies the given column set to an existing user.
func (s *Users) Update(id uint, fields map[string]interface{}) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return translate(err)
	}
	return translate(s.db.Model(&user).Updates(fields).Error)
}
