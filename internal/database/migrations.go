package database

import (
	"github.com/brianmwangi/estatelink-backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations applies schema patches that AutoMigrate alone does not cover.
func RunMigrations(db *gorm.DB) error {
	// Update users table
	if db.Migrator().HasTable(&models.User{}) {
		columns := []string{
			"ADD COLUMN IF NOT EXISTS avatar_url text DEFAULT ''",
			"ADD COLUMN IF NOT EXISTS fcm_token text DEFAULT ''",
			"ADD COLUMN IF NOT EXISTS user_type text DEFAULT 'client'",
		}

		for _, column := range columns {
			if err := db.Exec("ALTER TABLE users " + column).Error; err != nil {
				return err
			}
		}

		// Update constraint
		constraints := []string{
			`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_user_type_check`,
			`ALTER TABLE users ADD CONSTRAINT users_user_type_check CHECK (user_type IN ('client', 'vendor', 'admin'))`,
		}
		for _, stmt := range constraints {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	}

	if db.Migrator().HasTable(&models.Listing{}) {
		// Moderation status is the visibility gate; guard it at the database
		// level and keep the favorites counter non-negative even if a manual
		// write slips past the application.
		constraints := []string{
			`ALTER TABLE listings DROP CONSTRAINT IF EXISTS listings_moderation_status_check`,
			`ALTER TABLE listings ADD CONSTRAINT listings_moderation_status_check CHECK (moderation_status IN ('pending', 'active', 'rejected'))`,
			`ALTER TABLE listings DROP CONSTRAINT IF EXISTS listings_favorites_count_check`,
			`ALTER TABLE listings ADD CONSTRAINT listings_favorites_count_check CHECK (favorites_count >= 0)`,
		}
		for _, stmt := range constraints {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	}

	// One favorite per (user, listing) pair. AutoMigrate creates the unique
	// index on fresh databases; this covers tables that predate it.
	if db.Migrator().HasTable(&models.Favorite{}) {
		if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_fav_user_listing ON favorites (user_id, listing_id)`).Error; err != nil {
			return err
		}
	}

	if db.Migrator().HasTable(&models.Booking{}) {
		constraints := []string{
			`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`,
			`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled'))`,
		}
		for _, stmt := range constraints {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
