package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"home-services-server/models"
)

const (
	minFormFields = 3
	maxFormFields = 10

	minExpectedDays = 1
	maxExpectedDays = 90
)

// FormService manages the per-service order forms and order placement.
// Each service carries at most one active field set; historical orders
// keep answering against the archived set they were placed with.
type FormService struct {
	db *gorm.DB
}

// NewFormService creates a new form service
func NewFormService(db *gorm.DB) *FormService {
	return &FormService{db: db}
}

func (s *FormService) loadService(serviceID uint) (*models.HomeService, error) {
	var service models.HomeService
	err := s.db.Preload("Seller").First(&service, serviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// ActiveFields returns the current field set of a service, in form order.
func (s *FormService) ActiveFields(serviceID uint) ([]models.InputField, error) {
	if _, err := s.loadService(serviceID); err != nil {
		return nil, err
	}
	var fields []models.InputField
	err := s.db.Where("home_service_id = ? AND is_newest = ?", serviceID, true).
		Order("sort_order, id").Find(&fields).Error
	return fields, err
}

// ReplaceForm swaps a service's active field set for a new one of 3-10
// fields. The previous set is hard-deleted when no order ever answered
// it, and archived otherwise so old orders keep their definitions.
func (s *FormService) ReplaceForm(seller *models.User, serviceID uint, fields []models.InputFieldRequest) ([]models.InputField, error) {
	service, err := s.loadService(serviceID)
	if err != nil {
		return nil, err
	}
	if service.SellerID != seller.ID {
		return nil, ErrForbidden
	}
	if len(fields) < minFormFields || len(fields) > maxFormFields {
		return nil, NewValidationError("number of fields must be between 3 and 10")
	}

	var created []models.InputField
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var current []models.InputField
		if err := tx.Where("home_service_id = ? AND is_newest = ?", serviceID, true).
			Find(&current).Error; err != nil {
			return err
		}

		if len(current) > 0 {
			ids := make([]uint, len(current))
			for i, f := range current {
				ids[i] = f.ID
			}
			var answered int64
			if err := tx.Model(&models.InputData{}).Where("field_id IN ?", ids).
				Count(&answered).Error; err != nil {
				return err
			}
			if answered == 0 {
				if err := tx.Where("id IN ?", ids).Delete(&models.InputField{}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&models.InputField{}).Where("id IN ?", ids).
					Update("is_newest", false).Error; err != nil {
					return err
				}
			}
		}

		for i, req := range fields {
			field := models.InputField{
				HomeServiceID: serviceID,
				Label:         req.Label,
				SortOrder:     req.SortOrder,
				IsNewest:      true,
			}
			if field.SortOrder == 0 {
				field.SortOrder = i + 1
			}
			if err := tx.Create(&field).Error; err != nil {
				return err
			}
			created = append(created, field)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// PlaceOrder creates a Pending order with exactly one immutable answer
// per currently-active field of the target service.
func (s *FormService) PlaceOrder(client *models.User, serviceID uint, req models.PlaceOrderRequest) (*models.OrderService, error) {
	service, err := s.loadService(serviceID)
	if err != nil {
		return nil, err
	}
	if service.SellerID == client.ID {
		return nil, NewValidationError("you can't order a service from yourself")
	}

	var unrated int64
	if err := s.db.Model(&models.OrderService{}).
		Where("client_id = ? AND is_rateable = ?", client.ID, true).
		Count(&unrated).Error; err != nil {
		return nil, err
	}
	if unrated > 0 {
		return nil, NewValidationError("you have unrated services, please rate them and order again")
	}

	var pending int64
	if err := s.db.Model(&models.OrderService{}).
		Where("client_id = ? AND home_service_id = ? AND status = ?",
			client.ID, serviceID, models.OrderStatusPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, NewValidationError("you have already ordered this service")
	}

	if req.ExpectedTimeByDayToFinish < minExpectedDays || req.ExpectedTimeByDayToFinish > maxExpectedDays {
		return nil, NewValidationError("expected_time_by_day_to_finish must be between 1 and 90")
	}

	var activeFields []models.InputField
	if err := s.db.Where("home_service_id = ? AND is_newest = ?", serviceID, true).
		Order("sort_order, id").Find(&activeFields).Error; err != nil {
		return nil, err
	}

	// Exactly one answer per active field: no omissions, no extras.
	answers := make(map[uint]string, len(req.FormData))
	for _, answer := range req.FormData {
		answers[answer.FieldID] = answer.Content
	}
	for _, field := range activeFields {
		if _, ok := answers[field.ID]; !ok {
			return nil, NewValidationError(fmt.Sprintf("fields are not compatible (you didn't send field %d)", field.ID))
		}
	}
	if len(req.FormData) != len(activeFields) {
		return nil, NewValidationError("fields are not compatible (unexpected extra fields)")
	}

	var order models.OrderService
	err = s.db.Transaction(func(tx *gorm.DB) error {
		order = models.OrderService{
			ClientID:                  client.ID,
			HomeServiceID:             serviceID,
			Status:                    models.OrderStatusPending,
			ExpectedTimeByDayToFinish: req.ExpectedTimeByDayToFinish,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, field := range activeFields {
			data := models.InputData{
				FieldID: field.ID,
				OrderID: order.ID,
				Content: answers[field.ID],
			}
			if err := tx.Create(&data).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderFormData returns the answered form of an order for display.
func (s *FormService) OrderFormData(orderID uint) ([]models.FormAnswerResponse, error) {
	var data []models.InputData
	if err := s.db.Preload("Field").Where("order_id = ?", orderID).
		Find(&data).Error; err != nil {
		return nil, err
	}
	form := make([]models.FormAnswerResponse, 0, len(data))
	for _, d := range data {
		form = append(form, models.FormAnswerResponse{
			FieldID: d.FieldID,
			Label:   d.Field.Label,
			Content: d.Content,
		})
	}
	return form, nil
}
