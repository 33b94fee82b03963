package views

import (
	"errors"
	"testing"
	"time"

	apperrors "booking-frontend/errors"
	"booking-frontend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditOpenSeedsFromServer(t *testing.T) {
	api := &fakeAPI{bookings: []model.Booking{
		{Id: "1", Status: "Pending", ScheduledAt: "2024-01-01T10:00:00Z", Address: "A"},
	}}
	hint := model.Booking{Id: "1", Status: "Pending", ScheduledAt: "2023-12-31T08:00", Address: "old"}
	view := NewEditView(api, "1", time.UTC)

	require.NoError(t, view.Open(&hint))

	form := view.Form()
	assert.Equal(t, "2024-01-01T10:00", form.ScheduledAt)
	assert.Equal(t, "A", form.Address)
	assert.False(t, form.Stale)
	assert.Equal(t, 1, api.getCalls)
}

func TestEditOpenFallsBackToHint(t *testing.T) {
	api := &fakeAPI{getErr: errNetwork}
	hint := model.Booking{Id: "1", Status: "Pending", ScheduledAt: "2024-01-01T10:00", Address: "A"}
	view := NewEditView(api, "1", time.UTC)

	require.NoError(t, view.Open(&hint))

	form := view.Form()
	assert.Equal(t, "A", form.Address)
	assert.True(t, form.Stale)
}

func TestEditOpenFailsClosed(t *testing.T) {
	tests := []struct {
		description string
		api         *fakeAPI
		hint        *model.Booking
		expected    error
	}{
		{
			description: "fetch fails without a hint",
			api:         &fakeAPI{getErr: errNetwork},
			expected:    apperrors.ErrNetwork,
		},
		{
			description: "booking is gone on the server",
			api:         &fakeAPI{},
			hint:        &model.Booking{Id: "1", Status: "Pending", Address: "A"},
			expected:    apperrors.ErrNotFound,
		},
		{
			description: "hint for another booking is ignored",
			api:         &fakeAPI{getErr: errNetwork},
			hint:        &model.Booking{Id: "2", Status: "Pending", Address: "B"},
			expected:    apperrors.ErrNetwork,
		},
		{
			description: "booking is no longer pending",
			api:         &fakeAPI{bookings: []model.Booking{{Id: "1", Status: "Accepted", Address: "A"}}},
			expected:    ErrNotEditable,
		},
	}

	for _, test := range tests {
		view := NewEditView(test.api, "1", time.UTC)
		err := view.Open(test.hint)
		assert.Truef(t, errors.Is(err, test.expected), "%s: got %v", test.description, err)
	}
}

func TestEditSubmitRejectsEmptyFields(t *testing.T) {
	api := &fakeAPI{}
	view := NewEditView(api, "1", time.UTC)

	err := view.Submit(model.BookingUpdate{ScheduledAt: "2024-02-02T09:00", Address: "   "})

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Empty(t, api.updates(), "no network call on validation failure")
	form := view.Form()
	assert.Equal(t, "2024-02-02T09:00", form.ScheduledAt)
	assert.Equal(t, RequiredMessage, form.Alert)
	assert.False(t, form.Submitting)
}

func TestEditSubmitSuccess(t *testing.T) {
	api := &fakeAPI{}
	view := NewEditView(api, "1", time.UTC)

	require.NoError(t, view.Submit(model.BookingUpdate{ScheduledAt: "2024-02-02T09:00", Address: " B "}))

	assert.Equal(t, []model.BookingUpdate{{ScheduledAt: "2024-02-02T09:00", Address: "B"}}, api.updates())
	assert.Equal(t, EditDone, view.State())
}

func TestEditSubmitFailureKeepsValues(t *testing.T) {
	api := &fakeAPI{updateErr: apperrors.FromStatus("update booking", 400)}
	view := NewEditView(api, "1", time.UTC)

	err := view.Submit(model.BookingUpdate{ScheduledAt: "2024-02-02T09:00", Address: "B"})
	assert.True(t, errors.Is(err, apperrors.ErrServer))

	form := view.Form()
	assert.Equal(t, EditFailed, view.State())
	assert.Equal(t, UpdateFailedMessage, form.Alert)
	assert.Equal(t, "2024-02-02T09:00", form.ScheduledAt)
	assert.Equal(t, "B", form.Address)
	assert.False(t, form.Submitting, "form is enabled again")
}

func TestEditSubmitInFlightGuard(t *testing.T) {
	api := gated(&fakeAPI{})
	view := NewEditView(api, "1", time.UTC)
	fields := model.BookingUpdate{ScheduledAt: "2024-02-02T09:00", Address: "B"}

	done := make(chan error, 1)
	go func() { done <- view.Submit(fields) }()
	<-api.entered

	assert.True(t, view.Form().Submitting)
	assert.ErrorIs(t, view.Submit(fields), ErrActionInFlight)

	close(api.gate)
	require.NoError(t, <-done)
	assert.Len(t, api.updates(), 1)
}
