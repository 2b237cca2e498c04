package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-api/models"
)

func TestGetMenuResolvesAccompaniments(t *testing.T) {
	r, db, _ := setupRouter(t)

	kelewele := &models.Accompaniment{Name: "Kelewele", Price: 10, Category: "Sides", Available: true}
	shito := &models.Accompaniment{Name: "Shito", Price: 5, Category: "Sauces", Available: false}
	require.NoError(t, db.Create(kelewele).Error)
	require.NoError(t, db.Create(shito).Error)

	item := &models.MenuItem{
		Name:                  "Jollof with Chicken",
		Price:                 55,
		Category:              "JOLLOF ZONE",
		Available:             true,
		AllowedAccompaniments: models.IDList{kelewele.ID, shito.ID},
	}
	require.NoError(t, db.Create(item).Error)
	require.NoError(t, db.Create(&models.MenuItem{
		Name: "Hidden Special", Price: 99, Category: "JOLLOF ZONE", Available: false,
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/menu", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var menu []struct {
		Name           string                 `json:"name"`
		Accompaniments []models.Accompaniment `json:"accompaniments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	require.Len(t, menu, 1)
	assert.Equal(t, "Jollof with Chicken", menu[0].Name)
	// Unavailable accompaniments are dropped from the allow-list.
	require.Len(t, menu[0].Accompaniments, 1)
	assert.Equal(t, "Kelewele", menu[0].Accompaniments[0].Name)
}

func TestCreateAndUpdateMenuItem(t *testing.T) {
	r, db, _ := setupRouter(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)

	body := map[string]interface{}{
		"name":     "Waakye Special",
		"price":    45,
		"category": "WAAKYE CORNER",
	}
	w := doJSON(t, r, http.MethodPost, "/admin/create-menu-item", body, authHeader(t, admin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var item models.MenuItem
	require.NoError(t, db.Where("name = ?", "Waakye Special").First(&item).Error)
	assert.True(t, item.Available)

	body["price"] = 50
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/admin/update-menu-item/%d", item.ID), body, authHeader(t, admin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&item, item.ID).Error)
	assert.EqualValues(t, 50, item.Price)
}

func TestUpdatePrice(t *testing.T) {
	r, db, _ := setupRouter(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	item := createMenuItem(t, db, "Fried Rice", 40)

	body := map[string]interface{}{"id": item.ID, "price": 48.5}
	w := doJSON(t, r, http.MethodPost, "/admin/update-price", body, authHeader(t, admin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.MenuItem
	require.NoError(t, db.First(&updated, item.ID).Error)
	assert.InDelta(t, 48.5, updated.Price, 0.001)
}

func TestDeleteMenuItem(t *testing.T) {
	r, db, _ := setupRouter(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	item := createMenuItem(t, db, "Kenkey", 25)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/delete-menu-item/%d", item.ID), nil, authHeader(t, admin))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/delete-menu-item/%d", item.ID), nil, authHeader(t, admin))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAccompanimentPartial(t *testing.T) {
	r, db, _ := setupRouter(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	acc := &models.Accompaniment{Name: "Shito", Price: 5, Category: "Sauces", Available: true}
	require.NoError(t, db.Create(acc).Error)

	body := map[string]interface{}{"id": acc.ID, "available": false}
	w := doJSON(t, r, http.MethodPost, "/admin/update-accompaniment", body, authHeader(t, admin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Accompaniment
	require.NoError(t, db.First(&updated, acc.ID).Error)
	assert.False(t, updated.Available)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Shito", updated.Name)
	assert.InDelta(t, 5, updated.Price, 0.001)
}

func TestSeedEndpointsAreIdempotent(t *testing.T) {
	r, db, _ := setupRouter(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/admin/seed-accompaniments", nil, authHeader(t, admin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, "/admin/seed-menu", nil, authHeader(t, admin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var menuCount, accCount int64
	db.Model(&models.MenuItem{}).Count(&menuCount)
	db.Model(&models.Accompaniment{}).Count(&accCount)
	require.NotZero(t, menuCount)
	require.NotZero(t, accCount)

	// Re-running must not duplicate rows.
	w = doJSON(t, r, http.MethodPost, "/admin/seed-accompaniments", nil, authHeader(t, admin))
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/admin/seed-menu", nil, authHeader(t, admin))
	require.Equal(t, http.StatusOK, w.Code)

	var menuAgain, accAgain int64
	db.Model(&models.MenuItem{}).Count(&menuAgain)
	db.Model(&models.Accompaniment{}).Count(&accAgain)
	assert.Equal(t, menuCount, menuAgain)
	assert.Equal(t, accCount, accAgain)
}
