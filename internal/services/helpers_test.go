package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/database"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Seeded catalog ids used across tests
const (
	paneerMomosID = 1 // 80
	chicken555ID  = 6 // 110
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.NewInMemory()
	require.NoError(t, err)
	_, err = database.SeedMenu(db)
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, phone string) *models.User {
	user := &models.User{ID: uuid.NewString(), Name: name, Phone: phone, LoyaltyTier: models.DefaultLoyaltyTier}
	require.NoError(t, db.Create(user).Error)
	return user
}

// clock is a settable time source
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *clock { return &clock{t: t} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// captureSender records the last code sent to each phone
type captureSender struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func newCaptureSender() *captureSender {
	return &captureSender{codes: map[string]string{}}
}

func (s *captureSender) Send(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.codes[phone] = code
	return nil
}

func (s *captureSender) CodeFor(phone string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[phone]
}
