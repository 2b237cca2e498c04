package handlers

import (
	"fmt"
	"net/http"
	"time"

	"restaurant-api/config"
	"restaurant-api/email"
	"restaurant-api/logger"
	"restaurant-api/models"
	"restaurant-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminGetOrders returns every active order with full detail.
func AdminGetOrders(c *gin.Context) {
	var orders []models.Order
	if err := config.DB.Preload("Items.MenuItem").Preload("Items.Accompaniments").
		Preload("User").Preload("Rider").Preload("StatusHistory").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, orders)
}

type UpdateOrderStatusRequest struct {
	OrderID   uint   `json:"orderId" binding:"required"`
	StatusKey string `json:"statusKey" binding:"required"`
	Value     string `json:"value"`
}

// UpdateOrderStatus sets one stage marker and advances the lifecycle. The
// settable keys are confirmed, preparing, packing and outForDelivery;
// pending is only written at creation. Confirmation and out-for-delivery
// trigger a customer email, which never fails the update.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	target, ok := statemachine.MarkerStatus(req.StatusKey)
	if !ok {
		fail(c, http.StatusBadRequest, "Invalid status field")
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").First(&order, req.OrderID).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	if err := statemachine.CanTransition(order.Status, target); err != nil {
		fail(c, http.StatusConflict, err.Error())
		return
	}

	prevStatus := order.Status
	if err := config.DB.Model(&order).Updates(map[string]interface{}{
		statemachine.MarkerColumn(req.StatusKey): req.Value,
		"status":                                 target,
	}).Error; err != nil {
		log.Error("failed to update order status", logger.Uint("order_id", order.ID), logger.Err(err))
		fail(c, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	if err := config.DB.Create(&models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   target,
		Note:       req.Value,
	}).Error; err != nil {
		log.Error("failed to record status history", logger.Uint("order_id", order.ID), logger.Err(err))
	}

	notifyStatusChange(&order, req.StatusKey, req.Value)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Updated %s to %q", req.StatusKey, req.Value),
	})
}

// notifyStatusChange emails the customer on confirmation, and on
// out-for-delivery when the order is actually being delivered.
func notifyStatusChange(order *models.Order, statusKey, value string) {
	if value == "" || order.User.Email == "" {
		return
	}
	switch {
	case statusKey == "confirmed":
		email.SendAsync(order.User.Email, email.SubjectOrderConfirmed,
			email.OrderConfirmedBody(order.User.Name, order.ID, order.DeliveryMethod, order.Location.Name))
	case statusKey == "outForDelivery" && order.DeliveryMethod == models.DeliveryMethodDelivery:
		email.SendAsync(order.User.Email, email.SubjectOutForDelivery,
			email.OutForDeliveryBody(order.User.Name, order.ID, order.Location.Name))
	}
}

type AssignRiderRequest struct {
	OrderID uint `json:"orderId" binding:"required"`
	RiderID uint `json:"riderId" binding:"required"`
}

// AssignRider sets the rider and stamps the out-for-delivery marker in the
// same write; rider assignment is the out-for-delivery transition.
func AssignRider(c *gin.Context) {
	var req AssignRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").First(&order, req.OrderID).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	var rider models.User
	if err := config.DB.First(&rider, req.RiderID).Error; err != nil {
		fail(c, http.StatusNotFound, "Rider not found")
		return
	}
	if rider.Role != models.RoleRider {
		fail(c, http.StatusBadRequest, "User is not a rider")
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusOutForDelivery); err != nil {
		fail(c, http.StatusConflict, err.Error())
		return
	}

	prevStatus := order.Status
	stamp := time.Now().Format(time.RFC3339)
	if err := config.DB.Model(&order).Updates(map[string]interface{}{
		"rider_id":         rider.ID,
		"out_for_delivery": stamp,
		"status":           models.StatusOutForDelivery,
	}).Error; err != nil {
		log.Error("failed to assign rider", logger.Uint("order_id", order.ID), logger.Err(err))
		fail(c, http.StatusInternalServerError, "Failed to assign rider")
		return
	}

	if err := config.DB.Create(&models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusOutForDelivery,
		Note:       fmt.Sprintf("Rider %s assigned", rider.Name),
	}).Error; err != nil {
		log.Error("failed to record status history", logger.Uint("order_id", order.ID), logger.Err(err))
	}

	notifyStatusChange(&order, "outForDelivery", stamp)

	if err := config.DB.Preload("Items.MenuItem").Preload("Rider").First(&order, order.ID).Error; err != nil {
		log.Error("failed to reload order", logger.Uint("order_id", order.ID), logger.Err(err))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// CancelOrder hard-deletes an order that the kitchen has not yet confirmed.
// The rule is identical for admin and customer.
func CancelOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, c.Param("orderId")).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	if order.Confirmed != nil {
		fail(c, http.StatusConflict, "Cannot cancel order that has already been confirmed")
		return
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return deleteOrderCascade(tx, order.ID)
	}); err != nil {
		log.Error("failed to cancel order", logger.Uint("order_id", order.ID), logger.Err(err))
		fail(c, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order cancelled successfully"})
}

// snapshotAccompaniments flattens an item's accompaniment rows into the
// archival form, which outlives the cascade delete of the active order.
func snapshotAccompaniments(item models.OrderItem) models.AccompanimentSnapshots {
	snapshots := make(models.AccompanimentSnapshots, 0, len(item.Accompaniments))
	for _, a := range item.Accompaniments {
		snapshots = append(snapshots, models.AccompanimentSnapshot{Name: a.Name, Price: a.Price})
	}
	return snapshots
}

// deleteOrderCascade removes an order and its dependent rows.
func deleteOrderCascade(tx *gorm.DB, orderID uint) error {
	itemIDs := tx.Model(&models.OrderItem{}).Select("id").Where("order_id = ?", orderID)
	if err := tx.Where("order_item_id IN (?)", itemIDs).Delete(&models.OrderAccompaniment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderStatusHistory{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Order{}, orderID).Error
}

type MarkFinishedRequest struct {
	OrderID uint `json:"orderId" binding:"required"`
}

// MarkFinished archives a received order: a customer-facing snapshot always,
// a rider-facing one when a rider was assigned, then the active order is
// deleted. The three writes share one transaction; a failed snapshot leaves
// the order untouched.
func MarkFinished(c *gin.Context) {
	var req MarkFinishedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").Preload("Rider").
		Preload("Items.MenuItem").Preload("Items.Accompaniments").
		First(&order, req.OrderID).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	finished := models.FinishedDelivery{
		UserID:         order.UserID,
		UserName:       order.User.Name,
		RiderID:        order.RiderID,
		Contact:        order.Contact,
		Address:        order.Location.Name,
		Pending:        order.Pending,
		Confirmed:      order.Confirmed,
		Preparing:      order.Preparing,
		Packing:        order.Packing,
		OutForDelivery: order.OutForDelivery,
		// Carries the original order timestamps so the retention window
		// counts from when the order was placed.
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	for _, item := range order.Items {
		finished.Items = append(finished.Items, models.FinishedDeliveryItem{
			MenuItemID:     item.MenuItemID,
			Quantity:       item.Quantity,
			Accompaniments: snapshotAccompaniments(item),
			SpecialNote:    item.SpecialNote,
		})
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&finished).Error; err != nil {
			return err
		}
		if order.RiderID != nil {
			riderFinished := models.RiderFinishedDelivery{
				UserID:   order.UserID,
				UserName: order.User.Name,
				RiderID:  *order.RiderID,
				Contact:  order.Contact,
				Address:  order.Location.Name,
			}
			for _, item := range order.Items {
				riderFinished.Items = append(riderFinished.Items, models.RiderFinishedDeliveryItem{
					MenuItemID:     item.MenuItemID,
					Quantity:       item.Quantity,
					Accompaniments: snapshotAccompaniments(item),
					SpecialNote:    item.SpecialNote,
				})
			}
			if err := tx.Create(&riderFinished).Error; err != nil {
				return err
			}
		}
		return deleteOrderCascade(tx, order.ID)
	}); err != nil {
		log.Error("failed to archive order", logger.Uint("order_id", order.ID), logger.Err(err))
		fail(c, http.StatusInternalServerError, "Failed to move order to finished")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order moved to finished orders for user and rider.",
	})
}

// AdminGetFinishedOrders returns the customer-facing archive.
func AdminGetFinishedOrders(c *gin.Context) {
	var deliveries []models.FinishedDelivery
	if err := config.DB.Preload("User").Preload("Rider").Preload("Items.MenuItem").
		Order("created_at desc").
		Find(&deliveries).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch finished orders")
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

// AdminGetRiderFinishedDeliveries returns the rider-facing archive.
func AdminGetRiderFinishedDeliveries(c *gin.Context) {
	var deliveries []models.RiderFinishedDelivery
	if err := config.DB.Preload("Items.MenuItem").Order("created_at desc").
		Find(&deliveries).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch finished deliveries")
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

// DeleteFinishedOrder purges one record from the customer-facing archive.
func DeleteFinishedOrder(c *gin.Context) {
	var delivery models.FinishedDelivery
	if err := config.DB.First(&delivery, c.Param("orderId")).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("finished_delivery_id = ?", delivery.ID).
			Delete(&models.FinishedDeliveryItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&delivery).Error
	}); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete finished order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
