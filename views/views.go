// Package views holds the per-session view models behind the booking pages.
//
// A ListView is mounted on every visit to the bookings page and loads once.
// Cancellations reconcile its local copy without re-fetching. An EditView
// seeds the edit form and submits a partial update. Both guard their actions
// so a double-submitted form reaches the API once.
package views

import (
	"errors"

	"booking-frontend/model"
)

const (
	LoadFailedMessage   = "Unable to load bookings"
	CancelFailedMessage = "Unable to delete booking"
	UpdateFailedMessage = "Update failed"
	ConfirmCancelPrompt = "Cancel this booking?"
	RequiredMessage     = "Date & time and address are required"
)

var (
	ErrLoadInFlight   = errors.New("bookings are already loading")
	ErrAlreadyLoaded  = errors.New("bookings were already loaded for this view")
	ErrNotConfirmed   = errors.New("cancellation was not confirmed")
	ErrActionInFlight = errors.New("an action on this booking is already in progress")
	ErrNotCancellable = errors.New("booking is not pending and cannot be cancelled")
	ErrNotEditable    = errors.New("booking is not pending and cannot be edited")
)

// BookingAPI is the subset of the API client the views call.
type BookingAPI interface {
	ListMyBookings() ([]model.Booking, error)
	GetBooking(id model.ID) (model.Booking, error)
	DeleteBooking(id model.ID) error
	UpdateBooking(id model.ID, fields model.BookingUpdate) (map[string]interface{}, error)
}
