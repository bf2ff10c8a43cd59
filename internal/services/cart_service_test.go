package services

import (
	"context"
	"testing"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartUpsertOverwritesQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	user := createUser(t, db, "Asha", testPhone)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, user.ID, paneerMomosID, 3)
	require.NoError(t, err)
	rows, err := svc.Upsert(ctx, user.ID, paneerMomosID, 5)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Quantity)
	assert.Equal(t, "Paneer Momos", rows[0].Name)
	assert.Equal(t, 80.0, rows[0].Price)
	assert.Equal(t, "Quick Bites", rows[0].Category)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCartUpsertRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	user := createUser(t, db, "Asha", testPhone)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, user.ID, paneerMomosID, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Upsert(ctx, user.ID, paneerMomosID, -2)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Upsert(ctx, user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCartIsScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	asha := createUser(t, db, "Asha", testPhone)
	ravi := createUser(t, db, "Ravi", "9000000001")
	ctx := context.Background()

	_, err := svc.Upsert(ctx, asha.ID, paneerMomosID, 1)
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, ravi.ID, chicken555ID, 2)
	require.NoError(t, err)

	rows, err := svc.Get(ctx, asha.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(paneerMomosID), rows[0].MenuItemID)
}

func TestCartRemoveAndClear(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	user := createUser(t, db, "Asha", testPhone)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, user.ID, paneerMomosID, 1)
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, user.ID, chicken555ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, user.ID, paneerMomosID))
	// Removing twice is fine
	require.NoError(t, svc.Remove(ctx, user.ID, paneerMomosID))

	rows, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(chicken555ID), rows[0].MenuItemID)

	require.NoError(t, svc.Clear(ctx, user.ID))
	rows, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
