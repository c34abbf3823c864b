package models

import (
	"time"
)

// InputField is one field of a service's order form. A service has at most
// one active (is_newest) field set at a time; fields referenced by orders
// are never mutated, only archived.
type InputField struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	HomeServiceID uint      `json:"home_service_id" gorm:"not null;index"`
	Label         string    `json:"label" gorm:"type:varchar(200);not null"`
	SortOrder     int       `json:"sort_order" gorm:"default:0"`
	IsNewest      bool      `json:"is_newest" gorm:"default:true;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	FieldData []InputData `json:"field_data,omitempty" gorm:"foreignKey:FieldID"`
}

// TableName specifies the table name for the InputField model
func (InputField) TableName() string {
	return "input_fields"
}

// InputData is an immutable snapshot of a client's answer to one field of
// an order's form.
type InputData struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	FieldID   uint       `json:"field_id" gorm:"not null;index"`
	Field     InputField `json:"field" gorm:"foreignKey:FieldID"`
	OrderID   uint       `json:"order_id" gorm:"not null;index"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name for the InputData model
func (InputData) TableName() string {
	return "input_data"
}

// InputFieldRequest represents one field definition in a form update
type InputFieldRequest struct {
	Label     string `json:"label" binding:"required,max=200"`
	SortOrder int    `json:"sort_order"`
}

// FormAnswer represents one submitted answer when placing an order
type FormAnswer struct {
	FieldID uint   `json:"field" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// FormAnswerResponse represents an answered field on an order
type FormAnswerResponse struct {
	FieldID uint   `json:"field_id"`
	Label   string `json:"label"`
	Content string `json:"content"`
}
