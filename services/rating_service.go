package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"home-services-server/models"
)

// RatingService records one rating per finished order and folds it into
// the service's running average.
type RatingService struct {
	db *gorm.DB
}

// NewRatingService creates a new rating service
func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// IsRateable reports whether an order is eligible for rating: it has no
// rating yet, left Pending, and is either explicitly rateable or past its
// expected completion deadline.
func (s *RatingService) IsRateable(order *models.OrderService) (bool, error) {
	var rated int64
	if err := s.db.Model(&models.Rating{}).Where("order_id = ?", order.ID).
		Count(&rated).Error; err != nil {
		return false, err
	}
	if rated > 0 {
		return false, nil
	}
	if order.Status == models.OrderStatusPending {
		return false, nil
	}
	if order.IsRateable {
		return true, nil
	}
	if deadline := order.ExpectedFinishTime(); deadline != nil && time.Now().After(*deadline) {
		return true, nil
	}
	return false, nil
}

// Rate stores the client's rating and folds its average into the
// service's running mean:
//
//	new_avg = (old_avg*old_count + this_avg) / (old_count + 1)
//
// The order is marked non-rateable and terminal in the same transaction.
func (s *RatingService) Rate(client *models.User, orderID uint, req models.RatingCreate) (*models.Rating, error) {
	var order models.OrderService
	err := s.db.Preload("HomeService").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.ClientID != client.ID {
		return nil, ErrForbidden
	}

	var existing int64
	if err := s.db.Model(&models.Rating{}).Where("order_id = ?", order.ID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, NewValidationError("you have already rated this service")
	}

	rateable, err := s.IsRateable(&order)
	if err != nil {
		return nil, err
	}
	if !rateable {
		return nil, NewValidationError("the order has not finished yet")
	}

	rating := models.Rating{
		OrderID:              order.ID,
		QualityOfService:     req.QualityOfService,
		CommitmentToDeadline: req.CommitmentToDeadline,
		WorkEthics:           req.WorkEthics,
		Comment:              req.Comment,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rating).Error; err != nil {
			return err
		}

		service := order.HomeService
		orderAverage := rating.Average()
		newAverage := (service.AverageRatings*float64(service.NumberOfServedClients) + orderAverage) /
			float64(service.NumberOfServedClients+1)
		if err := tx.Model(&models.HomeService{}).Where("id = ?", service.ID).
			Updates(map[string]interface{}{
				"average_ratings":          newAverage,
				"number_of_served_clients": service.NumberOfServedClients + 1,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&order).Updates(map[string]interface{}{
			"status":      models.OrderStatusExpire,
			"is_rateable": false,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// SellerReply records the seller's one comment on a rating of their
// service.
func (s *RatingService) SellerReply(seller *models.User, ratingID uint, comment string) error {
	var rating models.Rating
	err := s.db.Preload("Order").Preload("Order.HomeService").First(&rating, ratingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if rating.Order.HomeService.SellerID != seller.ID {
		return ErrForbidden
	}
	return s.db.Model(&rating).Update("seller_comment", comment).Error
}

// ListByService returns all ratings attached to one service.
func (s *RatingService) ListByService(serviceID uint) ([]models.RatingResponse, error) {
	var ratings []models.Rating
	if err := s.db.Preload("Order").Preload("Order.Client").
		Select("ratings.*").
		Joins("JOIN order_services ON order_services.id = ratings.order_id").
		Where("order_services.home_service_id = ?", serviceID).
		Order("ratings.created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return toRatingResponses(ratings), nil
}

// ListBySeller returns all ratings across a seller's services, looked up
// by username.
func (s *RatingService) ListBySeller(username string) ([]models.RatingResponse, error) {
	var seller models.User
	err := s.db.Where("username = ?", username).First(&seller).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var ratings []models.Rating
	if err := s.db.Preload("Order").Preload("Order.Client").
		Select("ratings.*").
		Joins("JOIN order_services ON order_services.id = ratings.order_id").
		Joins("JOIN home_services ON home_services.id = order_services.home_service_id").
		Where("home_services.seller_id = ?", seller.ID).
		Order("ratings.created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return toRatingResponses(ratings), nil
}

func toRatingResponses(ratings []models.Rating) []models.RatingResponse {
	responses := make([]models.RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		responses = append(responses, models.RatingResponse{
			ID:                   r.ID,
			OrderID:              r.OrderID,
			QualityOfService:     r.QualityOfService,
			CommitmentToDeadline: r.CommitmentToDeadline,
			WorkEthics:           r.WorkEthics,
			Comment:              r.Comment,
			SellerComment:        r.SellerComment,
			CreatedAt:            r.CreatedAt,
			Client:               r.Order.Client.Summary(),
		})
	}
	return responses
}
