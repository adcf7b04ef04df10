package repository

import (
	"gorm.io/gorm"

	"hotelbooking/models"
)

const reservationExclusionSQL = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap') THEN
		ALTER TABLE reservations ADD CONSTRAINT reservations_no_overlap
			EXCLUDE USING gist (room_id WITH =, daterange(check_in, check_out, '[)') WITH &&)
			WHERE (status <> 'cancelled');
	END IF;
END
$$;`

// Migrate creates the schema and the range exclusion constraint that keeps
// two live reservations of one room from overlapping.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Room{},
		&models.Reservation{},
		&models.RoomBlock{},
		&models.Payment{},
		&models.Discount{},
	); err != nil {
		return err
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}
	return db.Exec(reservationExclusionSQL).Error
}
