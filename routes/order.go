package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"home-services-server/database"
	"home-services-server/models"
)

// RegisterOrderRoutes registers the order placement and lifecycle endpoints
func RegisterOrderRoutes(router *gin.RouterGroup) {
	router.POST("/services/:id/orders", placeOrder)

	orders := router.Group("/orders")
	{
		orders.GET("/mine", listMyOrders)
		orders.GET("/received", listReceivedOrders)
		orders.DELETE("/:id", cancelOrder)
		orders.PUT("/:id/accept", acceptOrder)
		orders.PUT("/:id/reject", rejectOrder)
		orders.PUT("/:id/approve", approveOrder)
		orders.PUT("/:id/finish", finishOrder)
	}
}

func placeOrder(c *gin.Context) {
	user := currentUser(c)
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	order, err := formService.PlaceOrder(user, serviceID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order placed successfully",
		"order_id": order.ID,
	})
}

func toOrderResponse(order models.OrderService, includeForm bool) models.OrderResponse {
	// Rateability is computed, not just the stored flag: an order past its
	// expected finish deadline becomes rateable without a status change.
	rateable, err := ratingService.IsRateable(&order)
	if err != nil {
		log.Printf("❌ Failed to compute rateability for order %d: %v", order.ID, err)
		rateable = order.IsRateable
	}

	response := models.OrderResponse{
		ID:                        order.ID,
		Status:                    order.Status,
		CreateDate:                order.CreateDate,
		AnswerTime:                order.AnswerTime,
		EndService:                order.EndService,
		ExpectedTimeByDayToFinish: order.ExpectedTimeByDayToFinish,
		IsRateable:                rateable,
		Client:                    order.Client.Summary(),
		Seller:                    order.HomeService.Seller.Summary(),
		HomeService:               order.HomeService.ToResponse(),
		Form:                      []models.FormAnswerResponse{},
	}
	if includeForm {
		form, err := formService.OrderFormData(order.ID)
		if err != nil {
			log.Printf("❌ Failed to load form for order %d: %v", order.ID, err)
		} else {
			response.Form = form
		}
	}
	return response
}

// listMyOrders returns the orders the authenticated client placed
func listMyOrders(c *gin.Context) {
	user := currentUser(c)

	var orders []models.OrderService
	if err := database.DB.
		Preload("Client").
		Preload("HomeService").Preload("HomeService.Category").
		Preload("HomeService.Area").Preload("HomeService.Seller").
		Where("client_id = ?", user.ID).
		Order("create_date DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch orders"})
		return
	}

	responses := make([]models.OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toOrderResponse(order, true))
	}
	c.JSON(http.StatusOK, responses)
}

// listReceivedOrders returns the non-rejected orders placed against the
// authenticated seller's services. A pending order's answers are hidden
// until the seller accepts it.
func listReceivedOrders(c *gin.Context) {
	user := currentUser(c)
	if !user.IsSeller() {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You are a buyer, you don't receive orders"})
		return
	}

	var orders []models.OrderService
	if err := database.DB.
		Select("order_services.*").
		Preload("Client").
		Preload("HomeService").Preload("HomeService.Category").
		Preload("HomeService.Area").Preload("HomeService.Seller").
		Joins("JOIN home_services ON home_services.id = order_services.home_service_id").
		Where("home_services.seller_id = ?", user.ID).
		Where("order_services.status <> ?", models.OrderStatusRejected).
		Order("order_services.create_date DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch orders"})
		return
	}

	responses := make([]models.OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toOrderResponse(order, order.Status != models.OrderStatusPending))
	}
	c.JSON(http.StatusOK, responses)
}

func cancelOrder(c *gin.Context) {
	user := currentUser(c)
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := lifecycleService.Cancel(user, orderID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func acceptOrder(c *gin.Context) {
	user := currentUser(c)
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := lifecycleService.Accept(user, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	form, err := formService.OrderFormData(order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load order form"})
		return
	}
	c.JSON(http.StatusOK, form)
}

func rejectOrder(c *gin.Context) {
	user := currentUser(c)
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := lifecycleService.Reject(user, orderID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func approveOrder(c *gin.Context) {
	user := currentUser(c)
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := lifecycleService.Approve(user, orderID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order approved"})
}

func finishOrder(c *gin.Context) {
	user := currentUser(c)
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := lifecycleService.Finish(user, orderID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order finished"})
}
