package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"

	"home-services-server/models"
	"home-services-server/services"
)

// ReviewJob promotes accepted orders from Under Review to Underway once
// their review window elapses. Schedule fires a one-shot timer per
// accepted order; the sweep ticker catches orders whose timer was lost to
// a restart. Both paths go through the same idempotent promotion.
type ReviewJob struct {
	db        *gorm.DB
	lifecycle *services.OrderLifecycleService
	delay     time.Duration
	sweep     time.Duration
	stopChan  chan bool
}

// NewReviewJob creates a new review promotion job
func NewReviewJob(db *gorm.DB, lifecycle *services.OrderLifecycleService, delay, sweep time.Duration) *ReviewJob {
	return &ReviewJob{
		db:        db,
		lifecycle: lifecycle,
		delay:     delay,
		sweep:     sweep,
		stopChan:  make(chan bool),
	}
}

// Schedule arms the one-shot promotion for an accepted order
func (j *ReviewJob) Schedule(orderID uint) {
	time.AfterFunc(j.delay, func() {
		if err := j.lifecycle.PromoteIfUnderReview(orderID); err != nil {
			log.Printf("❌ Failed to promote order %d: %v", orderID, err)
		}
	})
}

// Start begins the sweep for overdue reviews
func (j *ReviewJob) Start() {
	go j.run()
	log.Println("🚀 Review promotion job started")
}

// Stop stops the sweep
func (j *ReviewJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Review promotion job stopped")
}

func (j *ReviewJob) run() {
	ticker := time.NewTicker(j.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.SweepOverdue()
		case <-j.stopChan:
			return
		}
	}
}

// SweepOverdue promotes every order whose review window has already
// elapsed. Safe to run concurrently with the one-shot timers.
func (j *ReviewJob) SweepOverdue() {
	cutoff := time.Now().Add(-j.delay)

	var overdue []models.OrderService
	err := j.db.Where("status = ? AND answer_time IS NOT NULL AND answer_time <= ?",
		models.OrderStatusUnderReview, cutoff).Find(&overdue).Error
	if err != nil {
		log.Printf("❌ Error checking overdue reviews: %v", err)
		return
	}

	if len(overdue) == 0 {
		return
	}
	log.Printf("⏰ Found %d orders past their review window", len(overdue))

	for _, order := range overdue {
		if err := j.lifecycle.PromoteIfUnderReview(order.ID); err != nil {
			log.Printf("❌ Failed to promote order %d: %v", order.ID, err)
		}
	}
}
