package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"home-services-server/database"
	"home-services-server/models"
)

// RegisterFormRoutes registers the per-service form endpoints
func RegisterFormRoutes(router *gin.RouterGroup) {
	// Owner view and edit of the active form
	router.GET("/:id/form", getServiceForm)
	router.PUT("/:id/form", updateServiceForm)

	// Client view of the fields to answer when ordering
	router.GET("/:id/order-form", getOrderForm)
}

// getServiceForm returns the active field set to the owning seller
func getServiceForm(c *gin.Context) {
	user := currentUser(c)
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var service models.HomeService
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Service not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch service"})
		}
		return
	}
	if service.SellerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You can only view your own form"})
		return
	}

	fields, err := formService.ActiveFields(serviceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, fields)
}

// updateServiceForm replaces the active field set (3-10 fields)
func updateServiceForm(c *gin.Context) {
	user := currentUser(c)
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req []models.InputFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	fields, err := formService.ReplaceForm(user, serviceID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, fields)
}

// getOrderForm returns the fields a client must answer to order
func getOrderForm(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fields, err := formService.ActiveFields(serviceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, fields)
}
