package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"home-services-server/models"
)

type recordingScheduler struct {
	scheduled []uint
}

func (r *recordingScheduler) Schedule(orderID uint) {
	r.scheduled = append(r.scheduled, orderID)
}

func TestAcceptDebitsSellerAndCreatesEarnings(t *testing.T) {
	f := newFixture(t, 100)
	f.addFee(t, 10, "platform")
	f.addFee(t, 5, "tax office")
	order := f.createOrder(t, models.OrderStatusPending)

	lifecycle := NewOrderLifecycleService(f.db)
	scheduler := &recordingScheduler{}
	lifecycle.SetScheduler(scheduler)

	accepted, err := lifecycle.Accept(&f.seller, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusUnderReview, accepted.Status)
	require.NotNil(t, accepted.AnswerTime)

	seller := f.reloadUser(t, f.seller.ID)
	assert.InDelta(t, 85.0, seller.Balance, 0.001)

	var entries []models.Earnings
	require.NoError(t, f.db.Order("id").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, "platform", entries[0].Beneficiary)
	assert.InDelta(t, 10.0, entries[0].Earnings, 0.001)
	assert.Equal(t, "tax office", entries[1].Beneficiary)
	assert.InDelta(t, 5.0, entries[1].Earnings, 0.001)

	assert.Equal(t, []uint{order.ID}, scheduler.scheduled)
}

func TestAcceptInsufficientBalanceLeavesEverythingUntouched(t *testing.T) {
	f := newFixture(t, 3)
	f.addFee(t, 10, "platform")
	order := f.createOrder(t, models.OrderStatusPending)

	lifecycle := NewOrderLifecycleService(f.db)
	_, err := lifecycle.Accept(&f.seller, order.ID)
	require.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Equal(t, models.OrderStatusPending, f.reloadOrder(t, order.ID).Status)
	assert.InDelta(t, 3.0, f.reloadUser(t, f.seller.ID).Balance, 0.001)

	var count int64
	require.NoError(t, f.db.Model(&models.Earnings{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAcceptWithNoFeesSucceeds(t *testing.T) {
	f := newFixture(t, 0)
	order := f.createOrder(t, models.OrderStatusPending)

	lifecycle := NewOrderLifecycleService(f.db)
	accepted, err := lifecycle.Accept(&f.seller, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusUnderReview, accepted.Status)
}

func TestAcceptRequiresPendingStatus(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusUnderway)

	lifecycle := NewOrderLifecycleService(f.db)
	_, err := lifecycle.Accept(&f.seller, order.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAcceptRequiresOwnership(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusPending)

	intruder := models.User{FullName: "Other", Username: "other", PasswordHash: "x", Role: models.RoleSeller}
	require.NoError(t, f.db.Create(&intruder).Error)

	lifecycle := NewOrderLifecycleService(f.db)
	_, err := lifecycle.Accept(&intruder, order.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAcceptMissingOrder(t *testing.T) {
	f := newFixture(t, 100)
	lifecycle := NewOrderLifecycleService(f.db)
	_, err := lifecycle.Accept(&f.seller, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAcceptUpdatesAverageAnswerTime(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusPending)

	lifecycle := NewOrderLifecycleService(f.db)
	_, err := lifecycle.Accept(&f.seller, order.ID)
	require.NoError(t, err)

	seller := f.reloadUser(t, f.seller.ID)
	assert.GreaterOrEqual(t, seller.AverageAnswerSeconds, 0.0)
}

func TestRejectPendingRecordsAnswerTime(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusPending)

	lifecycle := NewOrderLifecycleService(f.db)
	require.NoError(t, lifecycle.Reject(&f.seller, order.ID))

	rejected := f.reloadOrder(t, order.ID)
	assert.Equal(t, models.OrderStatusRejected, rejected.Status)
	assert.NotNil(t, rejected.AnswerTime)
}

func TestRejectUnderReviewKeepsAnswerTime(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusUnderReview)
	original := *order.AnswerTime

	lifecycle := NewOrderLifecycleService(f.db)
	require.NoError(t, lifecycle.Reject(&f.seller, order.ID))

	rejected := f.reloadOrder(t, order.ID)
	assert.Equal(t, models.OrderStatusRejected, rejected.Status)
	require.NotNil(t, rejected.AnswerTime)
	assert.WithinDuration(t, original, *rejected.AnswerTime, time.Second)
}

func TestRejectTerminalOrderFails(t *testing.T) {
	f := newFixture(t, 100)
	lifecycle := NewOrderLifecycleService(f.db)

	for _, status := range []models.OrderStatus{models.OrderStatusExpire, models.OrderStatusRejected, models.OrderStatusUnderway} {
		order := f.createOrder(t, status)
		assert.ErrorIs(t, lifecycle.Reject(&f.seller, order.ID), ErrInvalidState)
	}
}

func TestApproveMovesReviewToUnderway(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusUnderReview)

	lifecycle := NewOrderLifecycleService(f.db)
	require.NoError(t, lifecycle.Approve(&f.seller, order.ID))
	assert.Equal(t, models.OrderStatusUnderway, f.reloadOrder(t, order.ID).Status)
}

func TestApproveRequiresUnderReview(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusPending)

	lifecycle := NewOrderLifecycleService(f.db)
	assert.ErrorIs(t, lifecycle.Approve(&f.seller, order.ID), ErrInvalidState)
}

func TestFinishMakesOrderRateable(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusUnderway)

	lifecycle := NewOrderLifecycleService(f.db)
	require.NoError(t, lifecycle.Finish(&f.seller, order.ID))

	finished := f.reloadOrder(t, order.ID)
	assert.Equal(t, models.OrderStatusExpire, finished.Status)
	assert.True(t, finished.IsRateable)
	assert.NotNil(t, finished.EndService)
}

func TestFinishRequiresUnderway(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusExpire)

	lifecycle := NewOrderLifecycleService(f.db)
	assert.ErrorIs(t, lifecycle.Finish(&f.seller, order.ID), ErrInvalidState)
}

func TestCancelDeletesPendingOrderAndAnswers(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusPending)

	field := models.InputField{HomeServiceID: f.service.ID, Label: "العنوان", IsNewest: true}
	require.NoError(t, f.db.Create(&field).Error)
	answer := models.InputData{FieldID: field.ID, OrderID: order.ID, Content: "شارع الثورة"}
	require.NoError(t, f.db.Create(&answer).Error)

	lifecycle := NewOrderLifecycleService(f.db)
	require.NoError(t, lifecycle.Cancel(&f.client, order.ID))

	var gone models.OrderService
	err := f.db.First(&gone, order.ID).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var answers int64
	require.NoError(t, f.db.Model(&models.InputData{}).Where("order_id = ?", order.ID).Count(&answers).Error)
	assert.Zero(t, answers)
}

func TestCancelRequiresPending(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusUnderReview)

	lifecycle := NewOrderLifecycleService(f.db)
	assert.ErrorIs(t, lifecycle.Cancel(&f.client, order.ID), ErrInvalidState)
}

func TestCancelRequiresOrderOwner(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusPending)

	lifecycle := NewOrderLifecycleService(f.db)
	assert.ErrorIs(t, lifecycle.Cancel(&f.seller, order.ID), ErrForbidden)
}

func TestPromoteIfUnderReviewIsIdempotent(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusUnderReview)

	lifecycle := NewOrderLifecycleService(f.db)
	require.NoError(t, lifecycle.PromoteIfUnderReview(order.ID))
	assert.Equal(t, models.OrderStatusUnderway, f.reloadOrder(t, order.ID).Status)

	// Firing again is a no-op, not an error
	require.NoError(t, lifecycle.PromoteIfUnderReview(order.ID))
	assert.Equal(t, models.OrderStatusUnderway, f.reloadOrder(t, order.ID).Status)
}

func TestPromoteAfterManualTransitionIsNoop(t *testing.T) {
	f := newFixture(t, 100)
	order := f.createOrder(t, models.OrderStatusUnderReview)

	lifecycle := NewOrderLifecycleService(f.db)
	require.NoError(t, lifecycle.Reject(&f.seller, order.ID))

	require.NoError(t, lifecycle.PromoteIfUnderReview(order.ID))
	assert.Equal(t, models.OrderStatusRejected, f.reloadOrder(t, order.ID).Status)
}

func TestPromoteMissingOrderIsNoop(t *testing.T) {
	f := newFixture(t, 100)
	lifecycle := NewOrderLifecycleService(f.db)
	assert.NoError(t, lifecycle.PromoteIfUnderReview(4242))
}
