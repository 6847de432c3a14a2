package models

import (
	"errors"

	"gorm.io/gorm"
)

// SeedAdmin creates the distinguished admin account if it does not exist
// yet. The account is the only one with the admin role; it is never
// created through registration.
func SeedAdmin(db *gorm.DB, email, password string) error {
	var existing User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := User{
		Email:     email,
		FirstName: "Clinic",
		LastName:  "Admin",
		Role:      RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	return db.Create(&admin).Error
}
