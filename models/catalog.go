package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// IDList stores a list of row IDs as a JSON text column. Used for the
// accompaniment allow-list on menu items, which is an ordered reference set
// rather than a join table.
type IDList []uint

func (l IDList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *IDList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	}
	return errors.New("unsupported type for IDList")
}

type MenuItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category"`
	Available   bool      `json:"available" gorm:"default:true"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description"`
	// Empty list means the item is served without accompaniments.
	AllowedAccompaniments IDList    `json:"allowed_accompaniments" gorm:"type:text"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// AccompanimentCategory is one of: soup, sauce, stew, protein, extra.
type Accompaniment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Price     float64   `json:"price" gorm:"not null"`
	Category  string    `json:"category"`
	Available bool      `json:"available" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
