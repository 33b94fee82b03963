package handlers

import (
	"errors"
	"log"
	"time"

	"booking-frontend/api"
	"booking-frontend/config"
	apperrors "booking-frontend/errors"
	"booking-frontend/metrics"
	"booking-frontend/middleware"
	"booking-frontend/model"
	"booking-frontend/views"

	"github.com/gofiber/fiber/v2"
)

const listRoute = "/my-bookings"

type BookingHandler struct {
	newClient func(api.Credentials) views.BookingAPI
	store     *views.Store
	loc       *time.Location
}

func NewBookingHandler(cfg *config.Config, store *views.Store) (*BookingHandler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	baseURL := cfg.API.BaseURL
	return &BookingHandler{
		newClient: func(creds api.Credentials) views.BookingAPI {
			return api.NewClient(baseURL, creds)
		},
		store: store,
		loc:   loc,
	}, nil
}

// GetMyBookings mounts a fresh list view for the session and loads it.
func (h *BookingHandler) GetMyBookings(c *fiber.Ctx) error {
	list := views.NewListView(h.client(c))
	h.store.MountList(middleware.SessionID(c), list)

	if err := list.Load(); err != nil {
		log.Printf("load bookings: %v", err)
		c.Status(apperrors.HTTPStatus(err))
	}
	return renderList(c, list)
}

func (h *BookingHandler) ConfirmCancel(c *fiber.Ctx) error {
	id := model.ID(c.Params("id"))
	bind := fiber.Map{
		"Title":  "Cancel Booking",
		"Prompt": views.ConfirmCancelPrompt,
		"Id":     id,
	}

	if list, ok := h.store.List(middleware.SessionID(c)); ok {
		if booking, found := list.Find(id); found {
			if !booking.IsPending() {
				return c.Redirect(listRoute, fiber.StatusSeeOther)
			}
			bind["Booking"] = &booking
		}
	}
	return c.Render("confirm", bind)
}

// CancelBooking deletes a booking and renders the list reconciled from local state.
func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	session := middleware.SessionID(c)
	id := model.ID(c.Params("id"))
	client := h.client(c)

	list, ok := h.store.List(session)
	if !ok {
		list = views.NewListView(client)
		h.store.MountList(session, list)
		if err := list.Load(); err != nil {
			log.Printf("load bookings before cancel of %v: %v", id, err)
			return renderList(c.Status(apperrors.HTTPStatus(err)), list)
		}
	}
	list.SetAPI(client)

	err := list.Cancel(id, c.FormValue("confirm") == "yes")
	switch {
	case err == nil:
		metrics.IncBookingCanceled("ok")
	case errors.Is(err, views.ErrNotConfirmed):
	case errors.Is(err, views.ErrActionInFlight), errors.Is(err, views.ErrNotCancellable), errors.Is(err, views.ErrLoadInFlight):
		metrics.IncBookingCanceled("rejected")
		c.Status(fiber.StatusConflict)
	default:
		log.Printf("cancel booking %v: %v", id, err)
		metrics.IncBookingCanceled("failed")
		c.Status(apperrors.HTTPStatus(err))
	}
	return renderList(c, list)
}

// EditBooking opens the edit form. Any failure to resolve the booking sends the customer back to the list.
func (h *BookingHandler) EditBooking(c *fiber.Ctx) error {
	session := middleware.SessionID(c)
	id := model.ID(c.Params("id"))

	var hint *model.Booking
	if list, ok := h.store.List(session); ok {
		if booking, found := list.Find(id); found {
			hint = &booking
		}
	}

	edit := views.NewEditView(h.client(c), id, h.loc)
	if err := edit.Open(hint); err != nil {
		log.Printf("open booking %v for edit: %v", id, err)
		return c.Redirect(listRoute, fiber.StatusSeeOther)
	}
	h.store.MountEdit(session, edit)
	return renderEdit(c, edit)
}

func (h *BookingHandler) UpdateBooking(c *fiber.Ctx) error {
	session := middleware.SessionID(c)
	id := model.ID(c.Params("id"))
	client := h.client(c)

	edit, ok := h.store.Edit(session, id)
	if !ok {
		edit = views.NewEditView(client, id, h.loc)
		h.store.MountEdit(session, edit)
	}
	edit.SetAPI(client)

	err := edit.Submit(model.BookingUpdate{
		ScheduledAt: c.FormValue("scheduled_at"),
		Address:     c.FormValue("address"),
	})
	if err != nil {
		status := apperrors.HTTPStatus(err)
		switch {
		case errors.Is(err, views.ErrActionInFlight):
			metrics.IncBookingUpdated("rejected")
			status = fiber.StatusConflict
		case errors.Is(err, apperrors.ErrValidation):
			metrics.IncBookingUpdated("invalid")
		default:
			log.Printf("update booking %v: %v", id, err)
			metrics.IncBookingUpdated("failed")
		}
		return renderEdit(c.Status(status), edit)
	}

	h.store.DropEdit(session)
	metrics.IncBookingUpdated("ok")
	return c.Redirect(listRoute, fiber.StatusSeeOther)
}

func (h *BookingHandler) client(c *fiber.Ctx) views.BookingAPI {
	return h.newClient(middleware.Credentials(c))
}

func renderList(c *fiber.Ctx, list *views.ListView) error {
	return c.Render("list", fiber.Map{
		"Title": "My Bookings",
		"List":  list.Snapshot(),
	})
}

func renderEdit(c *fiber.Ctx, edit *views.EditView) error {
	return c.Render("edit", fiber.Map{
		"Title": "Edit Booking",
		"Form":  edit.Form(),
	})
}
