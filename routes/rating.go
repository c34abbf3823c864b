package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-services-server/models"
)

// RegisterRatingRoutes registers the protected rating endpoints
func RegisterRatingRoutes(router *gin.RouterGroup) {
	router.POST("/orders/:id/rating", rateOrder)
	router.POST("/ratings/:id/seller-comment", sellerComment)
}

// RegisterPublicRatingRoutes registers the rating listing endpoints
func RegisterPublicRatingRoutes(router *gin.RouterGroup) {
	router.GET("/ratings/user/:username", listRatingsByUsername)
}

// rateOrder records the client's one rating of a finished order and
// folds it into the service average
func rateOrder(c *gin.Context) {
	user := currentUser(c)
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.RatingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	rating, err := ratingService.Rate(user, orderID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

// sellerComment records the seller's reply to a rating
func sellerComment(c *gin.Context) {
	user := currentUser(c)
	ratingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.SellerCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if err := ratingService.SellerReply(user, ratingID, req.SellerComment); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment saved"})
}

// listRatingsByService is mounted under /services/:id/ratings
func listRatingsByService(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ratings, err := ratingService.ListByService(serviceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}

func listRatingsByUsername(c *gin.Context) {
	username := c.Param("username")

	ratings, err := ratingService.ListBySeller(username)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}
