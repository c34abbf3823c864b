package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"home-services-server/database"
	"home-services-server/models"
)

// RegisterServiceRoutes registers the public service listing endpoints
func RegisterServiceRoutes(router *gin.RouterGroup) {
	router.GET("", listHomeServices)
	router.GET("/:id", getHomeService)
	router.GET("/:id/ratings", listRatingsByService)
}

// RegisterProtectedServiceRoutes registers the owner-only service endpoints
func RegisterProtectedServiceRoutes(router *gin.RouterGroup) {
	router.POST("", createHomeService)
	router.PUT("/:id", updateHomeService)
	router.DELETE("/:id", deleteHomeService)
}

// listHomeServices lists services filtered by username, category and
// title. Authenticated callers with an area only see services offered in
// their area. Best-rated services come first.
func listHomeServices(c *gin.Context) {
	query := database.DB.Model(&models.HomeService{}).
		Select("home_services.*").
		Preload("Category").Preload("Area").Preload("Seller")

	if user := currentUser(c); user != nil && user.AreaID != nil {
		query = query.Where("home_services.area_id = ?", *user.AreaID)
	}

	if username := c.Query("username"); username != "" {
		query = query.Joins("JOIN users ON users.id = home_services.seller_id").
			Where("users.username = ?", username)
	}
	if category := c.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = home_services.category_id").
			Where("categories.name = ?", category)
	}
	if title := c.Query("title"); title != "" {
		query = query.Where("home_services.title LIKE ?", "%"+title+"%")
	}

	var servicesList []models.HomeService
	if err := query.Order("average_ratings DESC").Find(&servicesList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch services"})
		return
	}

	responses := make([]models.HomeServiceResponse, 0, len(servicesList))
	for _, service := range servicesList {
		responses = append(responses, service.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

func getHomeService(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var service models.HomeService
	if err := database.DB.Preload("Category").Preload("Area").Preload("Seller").
		First(&service, serviceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Service not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch service"})
		}
		return
	}

	c.JSON(http.StatusOK, service.ToResponse())
}

func createHomeService(c *gin.Context) {
	user := currentUser(c)

	var req models.HomeServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var category models.Category
	if err := database.DB.First(&category, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unknown category"})
		return
	}
	var area models.Area
	if err := database.DB.First(&area, req.AreaID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unknown area"})
		return
	}

	service := models.HomeService{
		Title:      req.Title,
		CategoryID: req.CategoryID,
		AreaID:     req.AreaID,
		SellerID:   user.ID,
	}
	if err := database.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create service"})
		return
	}

	service.Category = category
	service.Area = area
	service.Seller = *user
	c.JSON(http.StatusCreated, service.ToResponse())
}

func updateHomeService(c *gin.Context) {
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
		c.JSON(http.StatusForbidden, gin.H{"detail": "You can only update your own services"})
		return
	}

	var req models.HomeServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if err := database.DB.Model(&service).Updates(map[string]interface{}{
		"title":       req.Title,
		"category_id": req.CategoryID,
		"area_id":     req.AreaID,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service updated successfully"})
}

func deleteHomeService(c *gin.Context) {
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
		c.JSON(http.StatusForbidden, gin.H{"detail": "You can only delete your own services"})
		return
	}

	if err := database.DB.Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete service"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
