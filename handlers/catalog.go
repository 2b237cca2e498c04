package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/models"
	"restaurant-api/seed"

	"github.com/gin-gonic/gin"
)

// menuEntry is a menu item with its allow-listed accompaniments resolved.
type menuEntry struct {
	models.MenuItem
	Accompaniments []models.Accompaniment `json:"accompaniments"`
}

// GetMenu returns every available item, each carrying the accompaniments its
// allow-list references. Unavailable accompaniments are filtered out; an
// empty allow-list means the item is served without any.
func GetMenu(c *gin.Context) {
	var items []models.MenuItem
	if err := config.DB.Where("available = ?", true).Find(&items).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load menu")
		return
	}

	menu := make([]menuEntry, 0, len(items))
	for _, item := range items {
		entry := menuEntry{MenuItem: item, Accompaniments: []models.Accompaniment{}}
		if len(item.AllowedAccompaniments) > 0 {
			config.DB.Where("id IN ? AND available = ?", []uint(item.AllowedAccompaniments), true).
				Find(&entry.Accompaniments)
		}
		menu = append(menu, entry)
	}

	c.JSON(http.StatusOK, menu)
}

// GetAccompaniments returns every available accompaniment.
func GetAccompaniments(c *gin.Context) {
	var accompaniments []models.Accompaniment
	if err := config.DB.Where("available = ?", true).Find(&accompaniments).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load accompaniments")
		return
	}
	c.JSON(http.StatusOK, accompaniments)
}

type MenuItemRequest struct {
	Name                  string        `json:"name" binding:"required"`
	Price                 float64       `json:"price" binding:"required,gte=0"`
	Category              string        `json:"category" binding:"required"`
	ImageURL              string        `json:"imageUrl"`
	Description           string        `json:"description"`
	AllowedAccompaniments models.IDList `json:"allowedAccompaniments"`
}

// CreateMenuItem adds one item to the catalog — admin only.
func CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	item := models.MenuItem{
		Name:                  req.Name,
		Price:                 req.Price,
		Category:              req.Category,
		Image:                 req.ImageURL,
		Description:           req.Description,
		Available:             true,
		AllowedAccompaniments: req.AllowedAccompaniments,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Server error while saving menu item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// UpdateMenuItem edits name/price/category and optionally image and allow-list.
func UpdateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Item not found")
		return
	}

	updates := map[string]interface{}{
		"name":     req.Name,
		"price":    req.Price,
		"category": req.Category,
	}
	if req.ImageURL != "" {
		updates["image"] = req.ImageURL
	}
	if req.AllowedAccompaniments != nil {
		updates["allowed_accompaniments"] = req.AllowedAccompaniments
	}
	if err := config.DB.Model(&item).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// DeleteMenuItem removes one item from the catalog.
func DeleteMenuItem(c *gin.Context) {
	res := config.DB.Delete(&models.MenuItem{}, c.Param("id"))
	if res.Error != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete item")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Item not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdatePrice adjusts a single item's price and returns the full catalog.
func UpdatePrice(c *gin.Context) {
	var req struct {
		ID    uint    `json:"id" binding:"required"`
		Price float64 `json:"price" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := config.DB.Model(&models.MenuItem{}).Where("id = ?", req.ID).
		Update("price", req.Price).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Update failed")
		return
	}

	var items []models.MenuItem
	config.DB.Find(&items)
	c.JSON(http.StatusOK, gin.H{"success": true, "menuItems": items})
}

type AccompanimentRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Category string  `json:"category" binding:"required"`
}

// CreateAccompaniment adds one accompaniment — admin only.
func CreateAccompaniment(c *gin.Context) {
	var req AccompanimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	accompaniment := models.Accompaniment{
		Name:      req.Name,
		Price:     req.Price,
		Category:  req.Category,
		Available: true,
	}
	if err := config.DB.Create(&accompaniment).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Server error while creating accompaniment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "accompaniment": accompaniment})
}

// UpdateAccompaniment applies a partial update by id.
func UpdateAccompaniment(c *gin.Context) {
	var req struct {
		ID        uint     `json:"id" binding:"required"`
		Name      *string  `json:"name"`
		Price     *float64 `json:"price"`
		Category  *string  `json:"category"`
		Available *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var accompaniment models.Accompaniment
	if err := config.DB.First(&accompaniment, req.ID).Error; err != nil {
		fail(c, http.StatusNotFound, "Accompaniment not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&accompaniment).Updates(updates).Error; err != nil {
			fail(c, http.StatusInternalServerError, "Server error while updating accompaniment")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "accompaniment": accompaniment})
}

// DeleteAccompaniment removes one accompaniment.
func DeleteAccompaniment(c *gin.Context) {
	res := config.DB.Delete(&models.Accompaniment{}, c.Param("id"))
	if res.Error != nil {
		fail(c, http.StatusInternalServerError, "Server error while deleting accompaniment")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Accompaniment not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Accompaniment deleted successfully"})
}

// SeedMenu upserts the canonical menu by item name. Safe to re-run.
func SeedMenu(c *gin.Context) {
	count, err := seed.Menu(config.DB)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to seed menu")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu seeded!", "count": count})
}

// SeedAccompaniments upserts the canonical accompaniment list by name.
func SeedAccompaniments(c *gin.Context) {
	count, err := seed.Accompaniments(config.DB)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to seed accompaniments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Accompaniments seeded!", "count": count})
}
