package models

import (
	"time"

	"gorm.io/gorm"
)

// HomeService represents a service published by a seller
type HomeService struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	Title      string   `json:"title" gorm:"type:varchar(200);not null"`
	CategoryID uint     `json:"category_id" gorm:"not null"`
	Category   Category `json:"category" gorm:"foreignKey:CategoryID"`
	AreaID     uint     `json:"area_id" gorm:"not null"`
	Area       Area     `json:"service_area" gorm:"foreignKey:AreaID"`
	SellerID   uint     `json:"seller_id" gorm:"not null"`
	Seller     User     `json:"seller" gorm:"foreignKey:SellerID"`

	// AverageRatings is the arithmetic mean of all folded ratings and
	// NumberOfServedClients counts the folds.
	AverageRatings        float64 `json:"average_ratings" gorm:"default:0"`
	NumberOfServedClients int     `json:"number_of_served_clients" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Fields []InputField `json:"fields,omitempty" gorm:"foreignKey:HomeServiceID"`
}

// TableName specifies the table name for the HomeService model
func (HomeService) TableName() string {
	return "home_services"
}

// HomeServiceRequest represents the request structure for creating/updating services
type HomeServiceRequest struct {
	Title      string `json:"title" binding:"required,max=200"`
	CategoryID uint   `json:"category_id" binding:"required"`
	AreaID     uint   `json:"area_id" binding:"required"`
}

// HomeServiceResponse represents the response structure for services
type HomeServiceResponse struct {
	ID                    uint     `json:"id"`
	Title                 string   `json:"title"`
	Category              Category `json:"category"`
	Area                  Area     `json:"service_area"`
	SellerID              uint     `json:"seller_id"`
	SellerUsername        string   `json:"seller_username"`
	SellerFullName        string   `json:"seller_full_name"`
	AverageRatings        float64  `json:"average_ratings"`
	NumberOfServedClients int      `json:"number_of_served_clients"`
}

// ToResponse converts a HomeService to its response structure
func (hs *HomeService) ToResponse() HomeServiceResponse {
	return HomeServiceResponse{
		ID:                    hs.ID,
		Title:                 hs.Title,
		Category:              hs.Category,
		Area:                  hs.Area,
		SellerID:              hs.SellerID,
		SellerUsername:        hs.Seller.Username,
		SellerFullName:        hs.Seller.FullName,
		AverageRatings:        hs.AverageRatings,
		NumberOfServedClients: hs.NumberOfServedClients,
	}
}

// GeneralServicesPrice represents a platform fee debited from the seller
// at acceptance time and credited to a beneficiary.
type GeneralServicesPrice struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Beneficiary string    `json:"beneficiary" gorm:"type:varchar(200);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the GeneralServicesPrice model
func (GeneralServicesPrice) TableName() string {
	return "general_services_prices"
}
