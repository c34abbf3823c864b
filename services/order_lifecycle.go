package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"home-services-server/models"
)

// Scheduler schedules the one-shot promotion of an accepted order from
// Under Review to Underway.
type Scheduler interface {
	Schedule(orderID uint)
}

// OrderLifecycleService drives an order through its status graph:
//
//	Pending -> Rejected | Under Review
//	Under Review -> Underway (manual or scheduled) | Rejected
//	Underway -> Expire
//
// Expire and Rejected are terminal. Every transition runs in one
// transaction so a balance debit can never land without its matching
// status change.
type OrderLifecycleService struct {
	db        *gorm.DB
	scheduler Scheduler
}

// NewOrderLifecycleService creates a new order lifecycle service
func NewOrderLifecycleService(db *gorm.DB) *OrderLifecycleService {
	return &OrderLifecycleService{db: db}
}

// SetScheduler wires the delayed-callback scheduler used after Accept
func (s *OrderLifecycleService) SetScheduler(scheduler Scheduler) {
	s.scheduler = scheduler
}

func (s *OrderLifecycleService) loadOrder(db *gorm.DB, orderID uint) (*models.OrderService, error) {
	var order models.OrderService
	err := db.Preload("HomeService").Preload("HomeService.Seller").Preload("Client").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Accept moves a Pending order to Under Review. The accepting seller pays
// the sum of all platform fees; one Earnings row is written per
// beneficiary. The balance is untouched when any precondition fails.
func (s *OrderLifecycleService) Accept(seller *models.User, orderID uint) (*models.OrderService, error) {
	order, err := s.loadOrder(s.db, orderID)
	if err != nil {
		return nil, err
	}
	if order.HomeService.SellerID != seller.ID {
		return nil, ErrForbidden
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrInvalidState
	}

	var fees []models.GeneralServicesPrice
	if err := s.db.Find(&fees).Error; err != nil {
		return nil, err
	}
	var required float64
	for _, fee := range fees {
		required += fee.Price
	}
	if seller.Balance < required {
		return nil, ErrInsufficientBalance
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		order.Status = models.OrderStatusUnderReview
		order.AnswerTime = &now
		if err := tx.Model(order).Updates(map[string]interface{}{
			"status":      order.Status,
			"answer_time": order.AnswerTime,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", seller.ID).
			Update("balance", gorm.Expr("balance - ?", required)).Error; err != nil {
			return err
		}

		for _, fee := range fees {
			entry := models.Earnings{
				OrderID:     &order.ID,
				Earnings:    fee.Price,
				Beneficiary: fee.Beneficiary,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		return s.recomputeAverageAnswer(tx, seller.ID)
	})
	if err != nil {
		return nil, err
	}
	seller.Balance -= required

	if s.scheduler != nil {
		s.scheduler.Schedule(order.ID)
	}

	return order, nil
}

// Reject declines an order that is Pending or Under Review. The answer
// time is only recorded when the order was still unanswered.
func (s *OrderLifecycleService) Reject(seller *models.User, orderID uint) error {
	order, err := s.loadOrder(s.db, orderID)
	if err != nil {
		return err
	}
	if order.HomeService.SellerID != seller.ID {
		return ErrForbidden
	}
	if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusUnderReview {
		return ErrInvalidState
	}

	wasPending := order.Status == models.OrderStatusPending
	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": models.OrderStatusRejected}
		if wasPending {
			updates["answer_time"] = &now
		}
		if err := tx.Model(order).Updates(updates).Error; err != nil {
			return err
		}
		if wasPending {
			return s.recomputeAverageAnswer(tx, seller.ID)
		}
		return nil
	})
}

// Approve moves an Under Review order to Underway ahead of the scheduled
// promotion.
func (s *OrderLifecycleService) Approve(seller *models.User, orderID uint) error {
	order, err := s.loadOrder(s.db, orderID)
	if err != nil {
		return err
	}
	if order.HomeService.SellerID != seller.ID {
		return ErrForbidden
	}
	if order.Status != models.OrderStatusUnderReview {
		return ErrInvalidState
	}
	return s.db.Model(order).Update("status", models.OrderStatusUnderway).Error
}

// Finish completes an Underway order and makes it rateable.
func (s *OrderLifecycleService) Finish(seller *models.User, orderID uint) error {
	order, err := s.loadOrder(s.db, orderID)
	if err != nil {
		return err
	}
	if order.HomeService.SellerID != seller.ID {
		return ErrForbidden
	}
	if order.Status != models.OrderStatusUnderway {
		return ErrInvalidState
	}
	now := time.Now()
	return s.db.Model(order).Updates(map[string]interface{}{
		"status":      models.OrderStatusExpire,
		"end_service": &now,
		"is_rateable": true,
	}).Error
}

// Cancel deletes a Pending order outright, together with its answers.
func (s *OrderLifecycleService) Cancel(client *models.User, orderID uint) error {
	order, err := s.loadOrder(s.db, orderID)
	if err != nil {
		return err
	}
	if order.ClientID != client.ID {
		return ErrForbidden
	}
	if order.Status != models.OrderStatusPending {
		return ErrInvalidState
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.InputData{}).Error; err != nil {
			return err
		}
		return tx.Delete(order).Error
	})
}

// PromoteIfUnderReview is the scheduled auto-progression: it re-reads the
// order and advances it only when it is still Under Review. A missing
// order or one that a manual transition already moved past review is a
// no-op, never an error, so firing twice is safe.
func (s *OrderLifecycleService) PromoteIfUnderReview(orderID uint) error {
	var order models.OrderService
	err := s.db.First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if order.Status != models.OrderStatusUnderReview {
		return nil
	}
	return s.db.Model(&order).
		Where("status = ?", models.OrderStatusUnderReview).
		Update("status", models.OrderStatusUnderway).Error
}

// recomputeAverageAnswer refreshes the seller's mean time-to-answer over
// their answered orders. Computed in Go to stay portable across drivers.
func (s *OrderLifecycleService) recomputeAverageAnswer(tx *gorm.DB, sellerID uint) error {
	var orders []models.OrderService
	if err := tx.
		Select("order_services.*").
		Joins("JOIN home_services ON home_services.id = order_services.home_service_id").
		Where("home_services.seller_id = ?", sellerID).
		Where("order_services.status <> ?", models.OrderStatusPending).
		Where("order_services.answer_time IS NOT NULL").
		Find(&orders).Error; err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}
	var total float64
	for _, o := range orders {
		total += o.AnswerTime.Sub(o.CreateDate).Seconds()
	}
	average := total / float64(len(orders))
	return tx.Model(&models.User{}).Where("id = ?", sellerID).
		Update("average_answer_seconds", average).Error
}
