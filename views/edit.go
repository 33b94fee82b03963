package views

import (
	"sync"
	"time"

	apperrors "booking-frontend/errors"
	"booking-frontend/model"
)

type EditState int

const (
	EditIdle EditState = iota
	EditSubmitting
	EditFailed
	EditDone
)

// EditForm is what the edit page renders.
type EditForm struct {
	Id          model.ID
	ScheduledAt string
	Address     string
	Submitting  bool
	Stale       bool
	Alert       string
}

type EditView struct {
	mu     sync.Mutex
	api    BookingAPI
	id     model.ID
	loc    *time.Location
	fields model.BookingUpdate
	state  EditState
	stale  bool
	alert  string
}

func NewEditView(api BookingAPI, id model.ID, loc *time.Location) *EditView {
	return &EditView{api: api, id: id, loc: loc}
}

func (v *EditView) ID() model.ID {
	return v.id
}

func (v *EditView) SetAPI(api BookingAPI) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.api = api
}

// Open seeds the form from a fresh fetch. The list row in hint is used only
// when that fetch fails for a reason other than the booking being gone.
func (v *EditView) Open(hint *model.Booking) error {
	v.mu.Lock()
	api := v.api
	v.mu.Unlock()

	booking, err := api.GetBooking(v.id)
	stale := false
	if err != nil {
		if hint == nil || hint.Id != v.id || apperrors.KindOf(err) == apperrors.KindNotFound {
			return err
		}
		booking, stale = *hint, true
	}
	if !booking.IsPending() {
		return ErrNotEditable
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.fields = model.BookingUpdate{
		ScheduledAt: model.FormValue(booking.ScheduledAt, v.loc),
		Address:     booking.Address,
	}
	v.stale = stale
	v.state = EditIdle
	return nil
}

// Submit validates and sends the update. Entered values are kept on any failure.
func (v *EditView) Submit(fields model.BookingUpdate) error {
	v.mu.Lock()
	if v.state == EditSubmitting {
		v.mu.Unlock()
		return ErrActionInFlight
	}
	v.fields = fields
	if missing := fields.Missing(); len(missing) > 0 {
		v.state = EditFailed
		v.alert = RequiredMessage
		v.mu.Unlock()
		return apperrors.Validation("update booking", missing...)
	}
	v.state = EditSubmitting
	v.alert = ""
	api := v.api
	v.mu.Unlock()

	_, err := api.UpdateBooking(v.id, fields.Trimmed())

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state = EditFailed
		v.alert = UpdateFailedMessage
		return err
	}
	v.state = EditDone
	return nil
}

func (v *EditView) State() EditState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *EditView) Form() EditForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return EditForm{
		Id:          v.id,
		ScheduledAt: v.fields.ScheduledAt,
		Address:     v.fields.Address,
		Submitting:  v.state == EditSubmitting,
		Stale:       v.stale,
		Alert:       v.alert,
	}
}
