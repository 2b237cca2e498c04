package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// AccompanimentSnapshot is the name+price pair captured when the order was
// placed. Archived items keep it so a later catalog change cannot rewrite
// what was actually purchased.
type AccompanimentSnapshot struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AccompanimentSnapshots stores the snapshots as a JSON text column.
type AccompanimentSnapshots []AccompanimentSnapshot

func (s AccompanimentSnapshots) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *AccompanimentSnapshots) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), s)
	case []byte:
		return json.Unmarshal(v, s)
	}
	return errors.New("unsupported type for AccompanimentSnapshots")
}

// FinishedDelivery is the customer-facing snapshot of a completed order.
// Created only by the completion transition, never mutated, purged by the
// retention sweeper. CreatedAt carries the original order's creation instant.
type FinishedDelivery struct {
	ID       uint                   `json:"id" gorm:"primaryKey"`
	UserID   uint                   `json:"userId" gorm:"not null"`
	User     User                   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	UserName string                 `json:"userName" gorm:"not null"`
	RiderID  *uint                  `json:"riderId"`
	Rider    *User                  `json:"rider,omitempty" gorm:"foreignKey:RiderID"`
	Contact  string                 `json:"contact"`
	Address  string                 `json:"address"`
	Items    []FinishedDeliveryItem `json:"items" gorm:"foreignKey:FinishedDeliveryID"`

	Pending        *string `json:"pending"`
	Confirmed      *string `json:"confirmed"`
	Preparing      *string `json:"preparing"`
	Packing        *string `json:"packing"`
	OutForDelivery *string `json:"outForDelivery"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FinishedDeliveryItem struct {
	ID                 uint                   `json:"id" gorm:"primaryKey"`
	FinishedDeliveryID uint                   `json:"finished_delivery_id" gorm:"not null"`
	MenuItemID         uint                   `json:"menuItemId"`
	MenuItem           MenuItem               `json:"menuItem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity           int                    `json:"quantity"`
	Accompaniments     AccompanimentSnapshots `json:"accompaniments" gorm:"type:text"`
	SpecialNote        string                 `json:"specialNote"`
}

// RiderFinishedDelivery is the rider-facing snapshot, created only when the
// completed order had an assigned rider. Status markers are intentionally
// omitted from this variant.
type RiderFinishedDelivery struct {
	ID       uint                        `json:"id" gorm:"primaryKey"`
	UserID   uint                        `json:"userId" gorm:"not null"`
	User     User                        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	UserName string                      `json:"userName"`
	RiderID  uint                        `json:"riderId" gorm:"not null"`
	Rider    User                        `json:"rider,omitempty" gorm:"foreignKey:RiderID"`
	Contact  string                      `json:"contact"`
	Address  string                      `json:"address"`
	Items    []RiderFinishedDeliveryItem `json:"items" gorm:"foreignKey:RiderFinishedDeliveryID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RiderFinishedDeliveryItem struct {
	ID                      uint                   `json:"id" gorm:"primaryKey"`
	RiderFinishedDeliveryID uint                   `json:"rider_finished_delivery_id" gorm:"not null"`
	MenuItemID              uint                   `json:"menuItemId"`
	MenuItem                MenuItem               `json:"menuItem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity                int                    `json:"quantity"`
	Accompaniments          AccompanimentSnapshots `json:"accompaniments" gorm:"type:text"`
	SpecialNote             string                 `json:"specialNote"`
}
