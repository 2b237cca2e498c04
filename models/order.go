package models

import "time"

// OrderStatus is the authoritative lifecycle position of an active order.
// The per-field markers below carry the human-facing text for each stage;
// the enum is what the state machine validates against.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusPacking        OrderStatus = "PACKING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
)

// DeliveryMethod values accepted on order creation.
const (
	DeliveryMethodDelivery = "delivery"
	DeliveryMethodPickup   = "pickup"
)

// Location is the drop-off point chosen by the customer. Coordinates are
// optional; when present they must have parsed as valid numbers.
type Location struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

// Schedule is stored explicitly even for unscheduled orders: all sub-fields
// null and IsScheduled false, never an absent record.
type Schedule struct {
	ScheduledTime *string    `json:"scheduledTime"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	ScheduledFor  *string    `json:"scheduledFor"`
	IsScheduled   bool       `json:"isScheduled"`
}

type Order struct {
	ID       uint        `json:"id" gorm:"primaryKey"`
	UserID   uint        `json:"userId" gorm:"not null"`
	User     User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	UserName string      `json:"userName" gorm:"not null"`
	Items    []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	Contact  string      `json:"contact"`
	Location Location    `json:"location" gorm:"embedded;embeddedPrefix:location_"`

	DeliveryMethod string   `json:"deliveryMethod" gorm:"not null;default:'delivery'"`
	Schedule       Schedule `json:"schedule" gorm:"embedded;embeddedPrefix:schedule_"`

	RiderID *uint `json:"riderId"`
	Rider   *User `json:"rider,omitempty" gorm:"foreignKey:RiderID"`

	Status OrderStatus `json:"status" gorm:"not null;default:'PENDING'"`

	// Stage markers. Pending is set at creation; the rest start null and are
	// filled by explicit admin action. OutForDelivery doubles as the rider
	// assignment timestamp.
	Pending        *string `json:"pending"`
	Confirmed      *string `json:"confirmed"`
	Preparing      *string `json:"preparing"`
	Packing        *string `json:"packing"`
	OutForDelivery *string `json:"outForDelivery"`

	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID             uint                 `json:"id" gorm:"primaryKey"`
	OrderID        uint                 `json:"order_id" gorm:"not null"`
	MenuItemID     uint                 `json:"menuItemId" gorm:"not null"`
	MenuItem       MenuItem             `json:"menuItem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity       int                  `json:"quantity" gorm:"not null"`
	Accompaniments []OrderAccompaniment `json:"accompaniments,omitempty" gorm:"foreignKey:OrderItemID"`
	SpecialNote    string               `json:"specialNote"`
}

// OrderAccompaniment is a name+price snapshot taken at ordering time, so a
// later catalog price change cannot alter a placed order.
type OrderAccompaniment struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	OrderItemID uint    `json:"order_item_id" gorm:"not null"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
}

// OrderStatusHistory records every lifecycle transition, one row per change.
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
