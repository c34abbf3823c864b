package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"home-services-server/models"
	"home-services-server/services"
)

var (
	lifecycleService *services.OrderLifecycleService
	formService      *services.FormService
	ratingService    *services.RatingService
)

// InitServices wires the service layer into the handlers
func InitServices(lifecycle *services.OrderLifecycleService, form *services.FormService, rating *services.RatingService) {
	lifecycleService = lifecycle
	formService = form
	ratingService = rating
}

// currentUser returns the authenticated user set by the auth middleware
func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(models.User)
	if !ok {
		return nil
	}
	return &user
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// respondServiceError translates a service error into a structured JSON
// response with a "detail" field
func respondServiceError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"detail": "Unexpected error"})
		return
	}
	c.JSON(status, gin.H{"detail": err.Error()})
}
