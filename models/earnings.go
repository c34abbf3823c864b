package models

import (
	"time"
)

// Earnings is an append-only ledger entry credited to a beneficiary when an
// order is accepted. There is no update or delete path; corrections require
// compensating entries.
type Earnings struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	OrderID     *uint         `json:"order_id" gorm:"index"`
	Order       *OrderService `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Earnings    float64       `json:"earnings" gorm:"type:decimal(10,2);not null"`
	Beneficiary string        `json:"beneficiary" gorm:"type:varchar(200);not null"`
	CreatedAt   time.Time     `json:"created_at"`
}

// TableName specifies the table name for the Earnings model
func (Earnings) TableName() string {
	return "earnings"
}

// EarningsResponse represents one row of the admin earnings report
type EarningsResponse struct {
	ID          uint      `json:"id"`
	OrderID     *uint     `json:"order_id"`
	Earnings    float64   `json:"earnings"`
	Beneficiary string    `json:"beneficiary"`
	CreatedAt   time.Time `json:"created_at"`

	ServiceTitle   *string `json:"service_title"`
	SellerUsername *string `json:"seller_username"`
}
