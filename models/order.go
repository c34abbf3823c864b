package models

import (
	"time"
)

type OrderStatus string

// The original data had two spellings of the review status; the closed enum
// below is authoritative.
const (
	OrderStatusPending     OrderStatus = "Pending"
	OrderStatusUnderReview OrderStatus = "Under Review"
	OrderStatusUnderway    OrderStatus = "Underway"
	OrderStatusExpire      OrderStatus = "Expire"
	OrderStatusRejected    OrderStatus = "Rejected"
)

// Terminal reports whether no further lifecycle transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusExpire || s == OrderStatusRejected
}

// OrderService represents a client's order for a home service
type OrderService struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	ClientID      uint        `json:"client_id" gorm:"not null;index"`
	Client        User        `json:"client" gorm:"foreignKey:ClientID"`
	HomeServiceID uint        `json:"home_service_id" gorm:"not null;index"`
	HomeService   HomeService `json:"home_service" gorm:"foreignKey:HomeServiceID"`

	Status     OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'Pending';check:status IN ('Pending','Under Review','Underway','Expire','Rejected')"`
	CreateDate time.Time   `json:"create_date" gorm:"autoCreateTime"`
	AnswerTime *time.Time  `json:"answer_time"`
	EndService *time.Time  `json:"end_service"`

	ExpectedTimeByDayToFinish int  `json:"expected_time_by_day_to_finish" gorm:"not null;check:expected_time_by_day_to_finish >= 1 AND expected_time_by_day_to_finish <= 90"`
	IsRateable                bool `json:"is_rateable" gorm:"default:false"`

	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	InputData []InputData `json:"input_data,omitempty" gorm:"foreignKey:OrderID"`
	Rating    *Rating     `json:"rating,omitempty" gorm:"foreignKey:OrderID"`
}

// TableName specifies the table name for the OrderService model
func (OrderService) TableName() string {
	return "order_services"
}

// ExpectedFinishTime returns the deadline derived from the answer time, or
// nil while the order is unanswered.
func (o *OrderService) ExpectedFinishTime() *time.Time {
	if o.AnswerTime == nil || o.ExpectedTimeByDayToFinish <= 0 {
		return nil
	}
	t := o.AnswerTime.Add(time.Duration(o.ExpectedTimeByDayToFinish) * 24 * time.Hour)
	return &t
}

// PlaceOrderRequest represents the request structure for placing an order.
// FormData may be empty when the service has no active form.
type PlaceOrderRequest struct {
	ExpectedTimeByDayToFinish int          `json:"expected_time_by_day_to_finish" binding:"required"`
	FormData                  []FormAnswer `json:"form_data"`
}

// OrderResponse represents the response structure for orders
type OrderResponse struct {
	ID                        uint                 `json:"id"`
	Status                    OrderStatus          `json:"status"`
	CreateDate                time.Time            `json:"create_date"`
	AnswerTime                *time.Time           `json:"answer_time"`
	EndService                *time.Time           `json:"end_service"`
	ExpectedTimeByDayToFinish int                  `json:"expected_time_by_day_to_finish"`
	IsRateable                bool                 `json:"is_rateable"`
	Client                    UserSummary          `json:"client"`
	Seller                    UserSummary          `json:"seller"`
	HomeService               HomeServiceResponse  `json:"home_service"`
	Form                      []FormAnswerResponse `json:"form"`
}

// UserSummary is the public projection of a user embedded in order and
// rating responses.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// Summary returns the public projection of a user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, FullName: u.FullName}
}
