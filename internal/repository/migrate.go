package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the parents, daycares and bookings tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&parentModel{},
		&daycareModel{},
		&bookingModel{},
	)
}
