package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"restaurant-api/config"
	"restaurant-api/logger"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

// Pending markers set at creation time.
const (
	PendingImmediate     = "⌛ Pending Confirmation"
	PendingScheduledTmpl = "⏰ Scheduled for %s"
)

type PlaceOrderRequest struct {
	UserID   uint   `json:"userId" binding:"required"`
	UserName string `json:"userName" binding:"required"`
	Items    []struct {
		MenuItemID     uint `json:"menuItem" binding:"required"`
		Quantity       int  `json:"quantity" binding:"required,min=1"`
		Accompaniments []struct {
			Name  string  `json:"name"`
			Price float64 `json:"price"`
		} `json:"accompaniments"`
		SpecialNote string `json:"specialNote"`
	} `json:"items" binding:"required,min=1"`
	Contact  string `json:"contact"`
	Location *struct {
		Name string      `json:"name"`
		Lat  interface{} `json:"lat"`
		Lon  interface{} `json:"lon"`
	} `json:"location"`
	DeliveryMethod string `json:"deliveryMethod"`
	Schedule       *struct {
		ScheduledTime string `json:"scheduledTime"`
		ScheduledDate string `json:"scheduledDate"`
		ScheduledFor  string `json:"scheduledFor"`
	} `json:"schedule"`
}

// parseCoord accepts a coordinate sent either as a JSON number or a numeric
// string. Malformed values are rejected rather than silently coerced.
func parseCoord(v interface{}) (*float64, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return &val, nil
	case string:
		if val == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", val)
		}
		return &f, nil
	}
	return nil, errors.New("invalid coordinate type")
}

// PlaceOrder creates an order in the pending stage. Scheduling requires both
// a date and a time; anything less stores an explicit "not scheduled" record.
func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, req.UserID).Error; err != nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}

	location := models.Location{}
	if req.Location != nil {
		lat, err := parseCoord(req.Location.Lat)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid location coordinates")
			return
		}
		lon, err := parseCoord(req.Location.Lon)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid location coordinates")
			return
		}
		location = models.Location{Name: req.Location.Name, Lat: lat, Lon: lon}
	}

	deliveryMethod := req.DeliveryMethod
	switch deliveryMethod {
	case "":
		deliveryMethod = models.DeliveryMethodDelivery
	case models.DeliveryMethodDelivery, models.DeliveryMethodPickup:
	default:
		fail(c, http.StatusBadRequest, "Invalid delivery method")
		return
	}

	schedule := models.Schedule{IsScheduled: false}
	if req.Schedule != nil && req.Schedule.ScheduledTime != "" && req.Schedule.ScheduledDate != "" {
		date, err := time.ParseInLocation("2006-01-02", req.Schedule.ScheduledDate, time.Local)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid scheduled date")
			return
		}
		schedule = models.Schedule{
			ScheduledTime: &req.Schedule.ScheduledTime,
			ScheduledDate: &date,
			ScheduledFor:  &req.Schedule.ScheduledFor,
			IsScheduled:   true,
		}
	}

	pending := PendingImmediate
	if schedule.IsScheduled {
		pending = fmt.Sprintf(PendingScheduledTmpl, *schedule.ScheduledFor)
	}

	var orderItems []models.OrderItem
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			fail(c, http.StatusBadRequest, "Menu item not found")
			return
		}
		item := models.OrderItem{
			MenuItemID:  menuItem.ID,
			Quantity:    reqItem.Quantity,
			SpecialNote: reqItem.SpecialNote,
		}
		for _, a := range reqItem.Accompaniments {
			item.Accompaniments = append(item.Accompaniments, models.OrderAccompaniment{
				Name:  a.Name,
				Price: a.Price,
			})
		}
		orderItems = append(orderItems, item)
	}

	order := models.Order{
		UserID:         user.ID,
		UserName:       req.UserName,
		Items:          orderItems,
		Contact:        req.Contact,
		Location:       location,
		DeliveryMethod: deliveryMethod,
		Schedule:       schedule,
		Status:         models.StatusPending,
		Pending:        &pending,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		log.Error("failed to save order", logger.Err(err))
		fail(c, http.StatusInternalServerError, "Order failed")
		return
	}

	history := models.OrderStatusHistory{
		OrderID:  order.ID,
		ToStatus: models.StatusPending,
		Note:     "Order placed",
	}
	if err := config.DB.Create(&history).Error; err != nil {
		log.Error("failed to record status history", logger.Uint("order_id", order.ID), logger.Err(err))
	}

	if err := config.DB.Preload("Items.MenuItem").Preload("Items.Accompaniments").
		First(&order, order.ID).Error; err != nil {
		log.Error("failed to reload order", logger.Uint("order_id", order.ID), logger.Err(err))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// GetUserOrders returns a user's active orders.
func GetUserOrders(c *gin.Context) {
	var orders []models.Order
	if err := config.DB.Preload("Items.MenuItem").Preload("Items.Accompaniments").Preload("Rider").
		Where("user_id = ?", c.Param("userId")).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetUserFinishedOrders returns a user's archived deliveries.
func GetUserFinishedOrders(c *gin.Context) {
	var deliveries []models.FinishedDelivery
	if err := config.DB.Preload("Items.MenuItem").Preload("Rider").
		Where("user_id = ?", c.Param("userId")).
		Order("created_at desc").
		Find(&deliveries).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

// GetOrder returns a single active order; the client polls this for status.
func GetOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items.MenuItem").Preload("Items.Accompaniments").
		Preload("Rider").Preload("StatusHistory").
		First(&order, c.Param("orderId")).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	c.JSON(http.StatusOK, order)
}
