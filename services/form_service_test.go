package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-services-server/models"
)

func fieldRequests(labels ...string) []models.InputFieldRequest {
	reqs := make([]models.InputFieldRequest, len(labels))
	for i, label := range labels {
		reqs[i] = models.InputFieldRequest{Label: label}
	}
	return reqs
}

func placeRequest(fields []models.InputField, days int) models.PlaceOrderRequest {
	req := models.PlaceOrderRequest{ExpectedTimeByDayToFinish: days}
	for _, f := range fields {
		req.FormData = append(req.FormData, models.FormAnswer{FieldID: f.ID, Content: "answer"})
	}
	return req
}

func TestReplaceFormEnforcesFieldCountBounds(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	_, err := forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("a", "b"))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = forms.ReplaceForm(&f.seller, f.service.ID,
		fieldRequests("a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"))
	require.ErrorAs(t, err, &ve)

	fields, err := forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("a", "b", "c"))
	require.NoError(t, err)
	assert.Len(t, fields, 3)
}

func TestReplaceFormRequiresOwnership(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	_, err := forms.ReplaceForm(&f.client, f.service.ID, fieldRequests("a", "b", "c"))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReplaceFormDeletesUnansweredPreviousSet(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	first, err := forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("a", "b", "c"))
	require.NoError(t, err)

	_, err = forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("x", "y", "z"))
	require.NoError(t, err)

	// Nothing answered the first set, so it is gone entirely
	var count int64
	ids := []uint{first[0].ID, first[1].ID, first[2].ID}
	require.NoError(t, f.db.Model(&models.InputField{}).Where("id IN ?", ids).Count(&count).Error)
	assert.Zero(t, count)

	active, err := forms.ActiveFields(f.service.ID)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

func TestReplaceFormArchivesAnsweredPreviousSet(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	first, err := forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("a", "b", "c"))
	require.NoError(t, err)

	order, err := forms.PlaceOrder(&f.client, f.service.ID, placeRequest(first, 7))
	require.NoError(t, err)

	_, err = forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("x", "y", "z"))
	require.NoError(t, err)

	// The answered set survives as inactive and keeps its answers
	var archived []models.InputField
	ids := []uint{first[0].ID, first[1].ID, first[2].ID}
	require.NoError(t, f.db.Where("id IN ?", ids).Find(&archived).Error)
	require.Len(t, archived, 3)
	for _, field := range archived {
		assert.False(t, field.IsNewest)
	}

	var answers int64
	require.NoError(t, f.db.Model(&models.InputData{}).Where("order_id = ?", order.ID).Count(&answers).Error)
	assert.EqualValues(t, 3, answers)

	active, err := forms.ActiveFields(f.service.ID)
	require.NoError(t, err)
	require.Len(t, active, 3)
	for _, field := range active {
		assert.True(t, field.IsNewest)
	}
}

func TestPlaceOrderSnapshotsAnswers(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	fields, err := forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("a", "b", "c"))
	require.NoError(t, err)

	order, err := forms.PlaceOrder(&f.client, f.service.ID, placeRequest(fields, 7))
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	form, err := forms.OrderFormData(order.ID)
	require.NoError(t, err)
	assert.Len(t, form, 3)
}

func TestPlaceOrderWithoutFormSucceeds(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	// No active fields: an empty answer list is an exact match
	order, err := forms.PlaceOrder(&f.client, f.service.ID, models.PlaceOrderRequest{
		ExpectedTimeByDayToFinish: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestPlaceOrderRejectsSelfOrdering(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	fields, err := forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("a", "b", "c"))
	require.NoError(t, err)

	_, err = forms.PlaceOrder(&f.seller, f.service.ID, placeRequest(fields, 7))
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestPlaceOrderBlockedByUnratedOrder(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	fields, err := forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("a", "b", "c"))
	require.NoError(t, err)

	unrated := f.createOrder(t, models.OrderStatusExpire)
	require.NoError(t, f.db.Model(unrated).Update("is_rateable", true).Error)

	_, err = forms.PlaceOrder(&f.client, f.service.ID, placeRequest(fields, 7))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Detail, "unrated")
}

func TestPlaceOrderBlockedByExistingPendingOrder(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	fields, err := forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("a", "b", "c"))
	require.NoError(t, err)

	_, err = forms.PlaceOrder(&f.client, f.service.ID, placeRequest(fields, 7))
	require.NoError(t, err)

	_, err = forms.PlaceOrder(&f.client, f.service.ID, placeRequest(fields, 7))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Detail, "already ordered")
}

func TestPlaceOrderValidatesExpectedDays(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	fields, err := forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("a", "b", "c"))
	require.NoError(t, err)

	var ve *ValidationError
	_, err = forms.PlaceOrder(&f.client, f.service.ID, placeRequest(fields, 0))
	require.ErrorAs(t, err, &ve)

	_, err = forms.PlaceOrder(&f.client, f.service.ID, placeRequest(fields, 91))
	require.ErrorAs(t, err, &ve)
}

func TestPlaceOrderNamesMissingField(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	fields, err := forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("a", "b", "c"))
	require.NoError(t, err)

	req := placeRequest(fields[:2], 7) // omit the third answer
	_, err = forms.PlaceOrder(&f.client, f.service.ID, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Detail, "not compatible")
}

func TestPlaceOrderRejectsExtraAnswers(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	fields, err := forms.ReplaceForm(&f.seller, f.service.ID, fieldRequests("a", "b", "c"))
	require.NoError(t, err)

	req := placeRequest(fields, 7)
	req.FormData = append(req.FormData, models.FormAnswer{FieldID: 9999, Content: "extra"})
	_, err = forms.PlaceOrder(&f.client, f.service.ID, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestPlaceOrderUnknownService(t *testing.T) {
	f := newFixture(t, 0)
	forms := NewFormService(f.db)

	_, err := forms.PlaceOrder(&f.client, 9999, models.PlaceOrderRequest{ExpectedTimeByDayToFinish: 7})
	assert.ErrorIs(t, err, ErrNotFound)
}
