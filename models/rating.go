package models

import (
	"time"
)

// Rating is the one-to-one client rating of a finished order. Created once,
// never deleted.
type Rating struct {
	ID      uint         `json:"id" gorm:"primaryKey"`
	OrderID uint         `json:"order_id" gorm:"uniqueIndex;not null"`
	Order   OrderService `json:"order" gorm:"foreignKey:OrderID"`

	QualityOfService     int `json:"quality_of_service" gorm:"type:int;not null;check:quality_of_service >= 1 AND quality_of_service <= 5"`
	CommitmentToDeadline int `json:"commitment_to_deadline" gorm:"type:int;not null;check:commitment_to_deadline >= 1 AND commitment_to_deadline <= 5"`
	WorkEthics           int `json:"work_ethics" gorm:"type:int;not null;check:work_ethics >= 1 AND work_ethics <= 5"`

	Comment       string  `json:"comment" gorm:"type:text"`
	SellerComment *string `json:"seller_comment" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Rating model
func (Rating) TableName() string {
	return "ratings"
}

// Average returns the mean of the three sub-scores.
func (r *Rating) Average() float64 {
	return float64(r.QualityOfService+r.CommitmentToDeadline+r.WorkEthics) / 3
}

// RatingCreate represents the request structure for submitting a rating
type RatingCreate struct {
	QualityOfService     int    `json:"quality_of_service" binding:"required,min=1,max=5"`
	CommitmentToDeadline int    `json:"commitment_to_deadline" binding:"required,min=1,max=5"`
	WorkEthics           int    `json:"work_ethics" binding:"required,min=1,max=5"`
	Comment              string `json:"comment"`
}

// SellerCommentRequest represents the seller's reply to a rating
type SellerCommentRequest struct {
	SellerComment string `json:"seller_comment" binding:"required"`
}

// RatingResponse represents the response structure for rating listings
type RatingResponse struct {
	ID                   uint        `json:"id"`
	OrderID              uint        `json:"order_id"`
	QualityOfService     int         `json:"quality_of_service"`
	CommitmentToDeadline int         `json:"commitment_to_deadline"`
	WorkEthics           int         `json:"work_ethics"`
	Comment              string      `json:"comment"`
	SellerComment        *string     `json:"seller_comment"`
	CreatedAt            time.Time   `json:"created_at"`
	Client               UserSummary `json:"client"`
}
