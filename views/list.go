package views

import (
	"sync"

	"booking-frontend/model"
)

type ListState int

const (
	ListLoading ListState = iota
	ListLoaded
	ListError
)

type RowAction int

const (
	RowIdle RowAction = iota
	RowInFlight
	RowFailed
)

type Row struct {
	Booking model.Booking
	Action  RowAction
}

func (r Row) CanEdit() bool {
	return r.Booking.IsPending()
}

func (r Row) CanCancel() bool {
	return r.Booking.IsPending()
}

func (r Row) Busy() bool {
	return r.Action == RowInFlight
}

// ListSnapshot is a copy of a ListView taken for rendering.
type ListSnapshot struct {
	State ListState
	Rows  []Row
	Alert string
}

func (s ListSnapshot) Loading() bool {
	return s.State == ListLoading
}

func (s ListSnapshot) Failed() bool {
	return s.State == ListError
}

type ListView struct {
	mu       sync.Mutex
	api      BookingAPI
	state    ListState
	fetching bool
	bookings []model.Booking
	actions  map[model.ID]RowAction
	alert    string
}

func NewListView(api BookingAPI) *ListView {
	return &ListView{
		api:     api,
		state:   ListLoading,
		actions: map[model.ID]RowAction{},
	}
}

// SetAPI rebinds the view to the client of the current request.
func (v *ListView) SetAPI(api BookingAPI) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.api = api
}

// Load fetches the bookings. A view loads once; mount a new one to refresh.
func (v *ListView) Load() error {
	v.mu.Lock()
	if v.fetching {
		v.mu.Unlock()
		return ErrLoadInFlight
	}
	if v.state != ListLoading {
		v.mu.Unlock()
		return ErrAlreadyLoaded
	}
	v.fetching = true
	api := v.api
	v.mu.Unlock()

	bookings, err := api.ListMyBookings()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.fetching = false
	if err != nil {
		v.state = ListError
		v.alert = LoadFailedMessage
		return err
	}
	v.bookings = bookings
	v.state = ListLoaded
	return nil
}

// Cancel deletes a booking after the customer confirmed it. The row is
// dropped from the local list only once the API reports success. A list
// still loading refuses, since the load would restore the deleted row.
func (v *ListView) Cancel(id model.ID, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	v.mu.Lock()
	if v.state == ListLoading {
		v.mu.Unlock()
		return ErrLoadInFlight
	}
	if v.actions[id] == RowInFlight {
		v.mu.Unlock()
		return ErrActionInFlight
	}
	if booking, ok := v.find(id); ok && !booking.IsPending() {
		v.mu.Unlock()
		return ErrNotCancellable
	}
	v.actions[id] = RowInFlight
	v.alert = ""
	api := v.api
	v.mu.Unlock()

	err := api.DeleteBooking(id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.actions[id] = RowFailed
		v.alert = CancelFailedMessage
		return err
	}
	delete(v.actions, id)
	v.bookings = removeBooking(v.bookings, id)
	return nil
}

// Find returns the local copy of a booking.
func (v *ListView) Find(id model.ID) (model.Booking, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.find(id)
}

func (v *ListView) Snapshot() ListSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := make([]Row, 0, len(v.bookings))
	for _, booking := range v.bookings {
		rows = append(rows, Row{Booking: booking, Action: v.actions[booking.Id]})
	}
	return ListSnapshot{State: v.state, Rows: rows, Alert: v.alert}
}

func (v *ListView) find(id model.ID) (model.Booking, bool) {
	for _, booking := range v.bookings {
		if booking.Id == id {
			return booking, true
		}
	}
	return model.Booking{}, false
}

func removeBooking(bookings []model.Booking, id model.ID) []model.Booking {
	kept := make([]model.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.Id != id {
			kept = append(kept, booking)
		}
	}
	return kept
}
