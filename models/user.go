package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleClient UserRole = "client"
	RoleSeller UserRole = "seller"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	FullName     string   `json:"full_name" gorm:"size:255;not null"`
	Username     string   `json:"username" gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'client';check:role IN ('client','seller','admin')"`
	AreaID       *uint    `json:"area_id"`
	Area         *Area    `json:"area,omitempty" gorm:"foreignKey:AreaID"`

	// Balance is the wallet the platform fees are debited from when the
	// user accepts an order as a seller.
	Balance float64 `json:"balance" gorm:"type:decimal(12,2);default:0"`

	// AverageAnswerSeconds is the mean of (answer_time - create_date)
	// across the seller's answered orders.
	AverageAnswerSeconds float64 `json:"average_answer_seconds" gorm:"default:0"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	HomeServices []HomeService  `json:"home_services,omitempty" gorm:"foreignKey:SellerID"`
	Orders       []OrderService `json:"orders,omitempty" gorm:"foreignKey:ClientID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleClient
	}
	return nil
}

// IsSeller checks if the user is a seller
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RegisterRequest represents the request structure for user registration
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=client seller"`
	AreaID   *uint  `json:"area_id"`
}

// LoginRequest represents the request structure for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
