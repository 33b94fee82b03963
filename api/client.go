// Package api is the typed client for the remote booking REST API.
//
// Calls are not retried or cached. Failures come back as errors from the
// booking-frontend/errors taxonomy so the views can classify them.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"booking-frontend/errors"
	"booking-frontend/metrics"
	"booking-frontend/model"

	"github.com/gofiber/fiber/v2"
)

const (
	listPath   = "/bookings/"
	deletePath = "/bookings/provider/%s/delete/"
	updatePath = "/bookings/provider/%s/update/"
)

const (
	opList   = "list bookings"
	opGet    = "get booking"
	opDelete = "delete booking"
	opUpdate = "update booking"
)

// Credentials carries the customer's auth state for outgoing calls.
type Credentials struct {
	Token string
}

type Client struct {
	baseURL string
	creds   Credentials
	http    *fiber.Client
}

func NewClient(baseURL string, creds Credentials) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    &fiber.Client{},
	}
}

// ListMyBookings returns the customer's bookings in server order.
func (c *Client) ListMyBookings() ([]model.Booking, error) {
	body, err := c.do(opList, c.http.Get(c.baseURL+listPath))
	if err != nil {
		return nil, err
	}

	bookings := []model.Booking{}
	if err := json.Unmarshal(body, &bookings); err != nil {
		return nil, errors.New(errors.KindServer, opList, 0, fmt.Errorf("decode bookings: %w", err))
	}
	return bookings, nil
}

// GetBooking looks a booking up by id. The API has no detail endpoint, so this lists and selects.
func (c *Client) GetBooking(id model.ID) (model.Booking, error) {
	bookings, err := c.ListMyBookings()
	if err != nil {
		return model.Booking{}, err
	}
	for _, booking := range bookings {
		if booking.Id == id {
			return booking, nil
		}
	}
	return model.Booking{}, errors.New(errors.KindNotFound, opGet, 0, fmt.Errorf("no booking with id %v", id))
}

func (c *Client) DeleteBooking(id model.ID) error {
	_, err := c.do(opDelete, c.http.Delete(c.bookingURL(deletePath, id)))
	return err
}

// UpdateBooking sends a partial update and returns whatever JSON object the server echoed, nil if none.
func (c *Client) UpdateBooking(id model.ID, fields model.BookingUpdate) (map[string]interface{}, error) {
	agent := c.http.Patch(c.bookingURL(updatePath, id)).JSON(fields)
	body, err := c.do(opUpdate, agent)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var echoed map[string]interface{}
	if json.Unmarshal(body, &echoed) != nil {
		return nil, nil
	}
	return echoed, nil
}

func (c *Client) bookingURL(pattern string, id model.ID) string {
	return c.baseURL + fmt.Sprintf(pattern, url.PathEscape(id.String()))
}

func (c *Client) do(op string, agent *fiber.Agent) ([]byte, error) {
	start := time.Now()

	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if c.creds.Token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.creds.Token)
	}

	code, body, errs := agent.Bytes()
	err := classify(op, code, errs)

	metrics.ObserveAPICall(op, outcome(err), time.Since(start))
	return body, err
}

func classify(op string, code int, errs []error) error {
	if len(errs) > 0 {
		return errors.New(errors.KindNetwork, op, 0, errs[0])
	}
	if code < 200 || code > 299 {
		return errors.FromStatus(op, code)
	}
	return nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return strings.ReplaceAll(errors.KindOf(err).String(), " ", "_")
}
