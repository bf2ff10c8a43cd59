package controllers

import (
	"net/http"
	"testing"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMenu(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/menu?search=momo", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.MenuItem
	decode(t, w, &items)
	assert.Len(t, items, 3)

	w = s.do(t, http.MethodGet, "/api/menu?category=Pasta", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &items)
	assert.Len(t, items, 2)

	w = s.do(t, http.MethodGet, "/api/menu?search=sushi", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListCategories(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/menu/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Masalas","Pasta","Quick Bites","Starters"]`, w.Body.String())
}

func TestGetMenuItem(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/menu/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var item models.MenuItem
	decode(t, w, &item)
	assert.Equal(t, "Paneer Momos", item.Name)

	w = s.do(t, http.MethodGet, "/api/menu/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var apiErr models.APIError
	decode(t, w, &apiErr)
	assert.Equal(t, models.ErrItemNotFound, apiErr.Code)
	assert.Equal(t, "Item not found", apiErr.Message)

	w = s.do(t, http.MethodGet, "/api/menu/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
