package models

import (
	"time"
)

// Area represents a governorate a service can be offered in
type Area struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;unique"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Area model
func (Area) TableName() string {
	return "areas"
}
