package database

import (
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"gorm.io/gorm"
)

// usersPhoneIndex enforces one account per phone while still allowing any
// number of users without a phone. Both SQLite and postgres support
// partial indexes.
const usersPhoneIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_phone_unique ON users (phone) WHERE phone <> ''`

// Migrate creates or updates every table the API uses
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderLine{},
		&models.OTPCode{},
		&models.OAuthClient{},
		&models.OAuthToken{},
	)
	if err != nil {
		return err
	}
	return db.Exec(usersPhoneIndex).Error
}
