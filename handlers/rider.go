package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

// ListRiders returns all rider accounts.
func ListRiders(c *gin.Context) {
	var riders []models.User
	if err := config.DB.Where("role = ?", models.RoleRider).Find(&riders).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch riders")
		return
	}
	c.JSON(http.StatusOK, riders)
}

// RiderCurrentOrders returns the active orders assigned to a rider.
func RiderCurrentOrders(c *gin.Context) {
	var orders []models.Order
	if err := config.DB.Preload("User").Preload("Items.MenuItem").
		Where("rider_id = ?", c.Param("riderId")).
		Order("updated_at desc").
		Find(&orders).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch current orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// RiderFinishedOrders returns a rider's archived deliveries.
func RiderFinishedOrders(c *gin.Context) {
	var deliveries []models.RiderFinishedDelivery
	if err := config.DB.Preload("User").Preload("Items.MenuItem").
		Where("rider_id = ?", c.Param("riderId")).
		Order("created_at desc").
		Find(&deliveries).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch finished orders")
		return
	}
	c.JSON(http.StatusOK, deliveries)
}
