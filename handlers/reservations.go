package handlers

import (
	"errors"
	"net/http"
	"time"

	"restaurant-api/config"
	"restaurant-api/logger"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateReservationRequest struct {
	NumberOfTables  int    `json:"numberOfTables"`
	ChairsPerTable  int    `json:"chairsPerTable"`
	ReservationDate string `json:"reservationDate" binding:"required"`
	ReservationTime string `json:"reservationTime" binding:"required"`
	WholeRestaurant bool   `json:"wholeRestaurant"`
	CustomerName    string `json:"customerName" binding:"required"`
	CustomerEmail   string `json:"customerEmail" binding:"required,email"`
	CustomerPhone   string `json:"customerPhone" binding:"required"`
	SpecialRequests string `json:"specialRequests"`
	UserID          *uint  `json:"userId"`
}

func reservationView(r *models.Reservation) gin.H {
	return gin.H{
		"id":              r.ID,
		"numberOfTables":  r.NumberOfTables,
		"chairsPerTable":  r.ChairsPerTable,
		"reservationDate": r.ReservationDate,
		"reservationTime": r.ReservationTime,
		"wholeRestaurant": r.WholeRestaurant,
		"customerName":    r.CustomerName,
		"customerEmail":   r.CustomerEmail,
		"totalGuests":     r.TotalGuests,
		"status":          r.Status,
		"createdAt":       r.CreatedAt,
	}
}

// CreateReservation books tables, or the whole venue. A whole-venue booking
// is refused while another one for the same date+time pair is still pending
// or confirmed; the conflict check and the insert share a transaction.
func CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	slot, err := time.ParseInLocation("2006-01-02T15:04", req.ReservationDate+"T"+req.ReservationTime, time.Local)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid reservation date or time")
		return
	}
	if !slot.After(time.Now()) {
		fail(c, http.StatusBadRequest, "Reservation must be for a future date and time")
		return
	}

	totalGuests := models.WholeRestaurantCapacity
	numberOfTables := 0
	chairsPerTable := 0
	if !req.WholeRestaurant {
		if req.NumberOfTables < 1 || req.NumberOfTables > 4 {
			fail(c, http.StatusBadRequest, "numberOfTables must be between 1 and 4")
			return
		}
		if req.ChairsPerTable < 2 || req.ChairsPerTable > 6 {
			fail(c, http.StatusBadRequest, "chairsPerTable must be between 2 and 6")
			return
		}
		numberOfTables = req.NumberOfTables
		chairsPerTable = req.ChairsPerTable
		totalGuests = req.NumberOfTables * req.ChairsPerTable
	}

	reservation := models.Reservation{
		NumberOfTables:  numberOfTables,
		ChairsPerTable:  chairsPerTable,
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		WholeRestaurant: req.WholeRestaurant,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		SpecialRequests: req.SpecialRequests,
		Status:          models.ReservationPending,
		TotalGuests:     totalGuests,
		UserID:          req.UserID,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if req.WholeRestaurant {
			var existing models.Reservation
			err := tx.Where(
				"reservation_date = ? AND reservation_time = ? AND whole_restaurant = ? AND status IN ?",
				req.ReservationDate, req.ReservationTime, true,
				[]models.ReservationStatus{models.ReservationPending, models.ReservationConfirmed},
			).First(&existing).Error
			if err == nil {
				return errSlotTaken
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}
		}
		return tx.Create(&reservation).Error
	})
	if err == errSlotTaken {
		fail(c, http.StatusConflict, "Whole restaurant is already booked for this time slot")
		return
	}
	if err != nil {
		log.Error("failed to create reservation", logger.Err(err))
		fail(c, http.StatusInternalServerError, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Reservation created successfully",
		"reservationId": reservation.ID,
		"reservation":   reservationView(&reservation),
	})
}

// errSlotTaken distinguishes the whole-venue conflict from storage failures.
var errSlotTaken = errors.New("whole restaurant already booked for slot")

// AdminGetReservations returns every reservation, newest first.
func AdminGetReservations(c *gin.Context) {
	var reservations []models.Reservation
	if err := config.DB.Preload("User").Order("created_at desc").
		Find(&reservations).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reservations": reservations})
}

// GetUserReservations returns the reservations linked to one user account.
func GetUserReservations(c *gin.Context) {
	var reservations []models.Reservation
	if err := config.DB.Where("user_id = ?", c.Param("userId")).
		Order("created_at desc").
		Find(&reservations).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch user reservations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reservations": reservations})
}

// GetReservation returns one reservation by id.
func GetReservation(c *gin.Context) {
	var reservation models.Reservation
	if err := config.DB.Preload("User").First(&reservation, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Reservation not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reservation": reservation})
}

type ReservationStatusRequest struct {
	ReservationID uint                     `json:"reservationId" binding:"required"`
	Status        models.ReservationStatus `json:"status" binding:"required"`
}

// UpdateReservationStatus lets an admin move a reservation to any status.
// This is an override model, not a strict state machine.
func UpdateReservationStatus(c *gin.Context) {
	var req ReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	valid := map[models.ReservationStatus]bool{
		models.ReservationPending:   true,
		models.ReservationConfirmed: true,
		models.ReservationCancelled: true,
		models.ReservationCompleted: true,
	}
	if !valid[req.Status] {
		fail(c, http.StatusBadRequest, "Invalid status")
		return
	}

	var reservation models.Reservation
	if err := config.DB.First(&reservation, req.ReservationID).Error; err != nil {
		fail(c, http.StatusNotFound, "Reservation not found")
		return
	}

	if err := config.DB.Model(&reservation).Update("status", req.Status).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update reservation status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Reservation status updated successfully",
		"reservation": reservation,
	})
}

// CancelReservation is the customer-initiated cancellation. It is refused for
// completed or already-cancelled bookings, and inside the final hour before
// the booked time.
func CancelReservation(c *gin.Context) {
	var reservation models.Reservation
	if err := config.DB.First(&reservation, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Reservation not found")
		return
	}

	if reservation.Status == models.ReservationCompleted || reservation.Status == models.ReservationCancelled {
		fail(c, http.StatusConflict, "Cannot cancel a reservation that is already completed or cancelled")
		return
	}

	slot, err := reservation.SlotTime()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to cancel reservation")
		return
	}
	oneHourBefore := slot.Add(-time.Hour)
	if !time.Now().Before(oneHourBefore) {
		fail(c, http.StatusConflict, "Cannot cancel reservation less than 1 hour before the scheduled time")
		return
	}

	if err := config.DB.Model(&reservation).
		Update("status", models.ReservationCancelled).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to cancel reservation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Reservation cancelled successfully",
		"reservation": reservation,
	})
}
