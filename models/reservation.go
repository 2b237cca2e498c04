package models

import "time"

// ReservationStatus values accepted by the admin status endpoint.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// WholeRestaurantCapacity is the assumed guest count for a whole-venue booking.
const WholeRestaurantCapacity = 100

type Reservation struct {
	ID uint `json:"id" gorm:"primaryKey"`

	// Zeroed when WholeRestaurant is set.
	NumberOfTables int `json:"numberOfTables"`
	ChairsPerTable int `json:"chairsPerTable"`

	// Date "2006-01-02" and time "15:04", kept as separate fields.
	ReservationDate string `json:"reservationDate" gorm:"not null;index:idx_reservation_slot"`
	ReservationTime string `json:"reservationTime" gorm:"not null;index:idx_reservation_slot"`

	WholeRestaurant bool `json:"wholeRestaurant" gorm:"default:false"`

	CustomerName    string `json:"customerName" gorm:"not null"`
	CustomerEmail   string `json:"customerEmail" gorm:"not null;index"`
	CustomerPhone   string `json:"customerPhone" gorm:"not null"`
	SpecialRequests string `json:"specialRequests" gorm:"default:''"`

	Status      ReservationStatus `json:"status" gorm:"not null;default:'pending';index"`
	TotalGuests int               `json:"totalGuests" gorm:"not null"`

	// Nil for walk-in customers without an account.
	UserID *uint `json:"userId"`
	User   *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotTime combines the date and time fields into a single instant.
func (r *Reservation) SlotTime() (time.Time, error) {
	return time.ParseInLocation("2006-01-02T15:04", r.ReservationDate+"T"+r.ReservationTime, time.Local)
}
