package otp

import (
	"context"
	"errors"
	"time"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no code is pending for a phone
var ErrNotFound = errors.New("otp not found")

// Record is a pending one-time code
type Record struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store keeps at most one pending code per phone
type Store interface {
	// Save stores rec, replacing any code pending for the same phone
	Save(ctx context.Context, rec Record) error
	// Get returns the pending code or ErrNotFound
	Get(ctx context.Context, phone string) (*Record, error)
	// Consume removes the pending code of phone only while it is still
	// code, and reports whether it did. A code saved in between survives.
	Consume(ctx context.Context, phone, code string) (bool, error)
}

// GormStore persists codes in the otp_store table
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Save(ctx context.Context, rec Record) error {
	row := models.OTPCode{
		Phone:     rec.Phone,
		Code:      rec.Code,
		ExpiresAt: rec.ExpiresAt,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "created_at"}),
	}).Create(&row).Error
}

func (s *GormStore) Get(ctx context.Context, phone string) (*Record, error) {
	var row models.OTPCode
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Record{Phone: row.Phone, Code: row.Code, ExpiresAt: row.ExpiresAt}, nil
}

func (s *GormStore) Consume(ctx context.Context, phone, code string) (bool, error) {
	result := s.db.WithContext(ctx).Where("phone = ? AND code = ?", phone, code).Delete(&models.OTPCode{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
