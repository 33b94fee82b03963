package views

import (
	"sync"

	"booking-frontend/model"
)

// fakeAPI records calls. When gate is set, DeleteBooking and UpdateBooking
// signal entered and then wait on gate.
type fakeAPI struct {
	mu        sync.Mutex
	bookings  []model.Booking
	listErr   error
	getErr    error
	deleteErr error
	updateErr error

	listCalls   int
	getCalls    int
	deleteCalls []model.ID
	updateCalls []model.BookingUpdate

	entered chan struct{}
	gate    chan struct{}
}

func (f *fakeAPI) ListMyBookings() ([]model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Booking(nil), f.bookings...), nil
}

func (f *fakeAPI) GetBooking(id model.ID) (model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return model.Booking{}, f.getErr
	}
	for _, booking := range f.bookings {
		if booking.Id == id {
			return booking, nil
		}
	}
	return model.Booking{}, errNotFound
}

func (f *fakeAPI) DeleteBooking(id model.ID) error {
	f.mu.Lock()
	f.deleteCalls = append(f.deleteCalls, id)
	err := f.deleteErr
	f.mu.Unlock()
	f.wait()
	return err
}

func (f *fakeAPI) UpdateBooking(id model.ID, fields model.BookingUpdate) (map[string]interface{}, error) {
	f.mu.Lock()
	f.updateCalls = append(f.updateCalls, fields)
	err := f.updateErr
	f.mu.Unlock()
	f.wait()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"message": "Booking updated successfully"}, nil
}

func (f *fakeAPI) wait() {
	if f.gate == nil {
		return
	}
	f.entered <- struct{}{}
	<-f.gate
}

func (f *fakeAPI) deletes() []model.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ID(nil), f.deleteCalls...)
}

func (f *fakeAPI) updates() []model.BookingUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.BookingUpdate(nil), f.updateCalls...)
}

func gated(api *fakeAPI) *fakeAPI {
	api.entered = make(chan struct{})
	api.gate = make(chan struct{})
	return api
}

func sampleBookings() []model.Booking {
	return []model.Booking{
		{Id: "1", Status: "Pending", ScheduledAt: "2024-01-01T10:00", Address: "A"},
		{Id: "2", Status: "Accepted", ScheduledAt: "2024-01-02T11:00", Address: "B"},
		{Id: "3", Status: "Pending", ScheduledAt: "2024-01-03T12:00", Address: "C",
			ServiceDetails: &model.ServiceDetails{Name: "Cleaning"}},
	}
}
