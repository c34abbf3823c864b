package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-services-server/database"
	"home-services-server/models"
)

// RegisterCatalogRoutes registers the public reference-data endpoints
func RegisterCatalogRoutes(router *gin.RouterGroup) {
	router.GET("/categories", listCategories)
	router.GET("/areas", listAreas)
}

func listCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func listAreas(c *gin.Context) {
	var areas []models.Area
	if err := database.DB.Order("id").Find(&areas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch areas"})
		return
	}
	c.JSON(http.StatusOK, areas)
}
