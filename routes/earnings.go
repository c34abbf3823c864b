package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-services-server/database"
	"home-services-server/models"
)

// RegisterEarningsRoutes registers the admin-only earnings report
func RegisterEarningsRoutes(router *gin.RouterGroup) {
	router.GET("/earnings", getEarnings)
}

// getEarnings lists every ledger entry with the service it came from.
// Entries whose order was cancelled keep their row but lose the service
// details.
func getEarnings(c *gin.Context) {
	var entries []models.Earnings
	if err := database.DB.
		Preload("Order").
		Preload("Order.HomeService").
		Preload("Order.HomeService.Seller").
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch earnings"})
		return
	}

	report := make([]models.EarningsResponse, 0, len(entries))
	for _, entry := range entries {
		row := models.EarningsResponse{
			ID:          entry.ID,
			OrderID:     entry.OrderID,
			Earnings:    entry.Earnings,
			Beneficiary: entry.Beneficiary,
			CreatedAt:   entry.CreatedAt,
		}
		if entry.Order != nil && entry.Order.ID != 0 {
			title := entry.Order.HomeService.Title
			username := entry.Order.HomeService.Seller.Username
			row.ServiceTitle = &title
			row.SellerUsername = &username
		}
		report = append(report, row)
	}

	c.JSON(http.StatusOK, report)
}
