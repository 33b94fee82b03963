package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// StatusPending is the only status from which a customer may edit or cancel.
const StatusPending = "Pending"

// FormLayout is the datetime-local input format.
const FormLayout = "2006-01-02T15:04"

const displayLayout = "Jan 2, 2006 3:04 PM"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	FormLayout,
}

// ID is an opaque booking identifier. The API emits numbers for it, strings are accepted too.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	value, err := scalarString(data)
	if err != nil {
		return err
	}
	*id = ID(value)
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Amount keeps a decimal exactly as the API sent it.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	value, err := scalarString(data)
	if err != nil {
		return err
	}
	*a = Amount(value)
	return nil
}

type ServiceDetails struct {
	Id                ID     `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	BasePrice         Amount `json:"base_price"`
	DurationInMinutes int    `json:"duration_in_minutes"`
}

type Provider struct {
	Id    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Booking struct {
	Id             ID              `json:"id"`
	ScheduledAt    string          `json:"scheduled_at"`
	Address        string          `json:"address"`
	Status         string          `json:"status"`
	ServiceDetails *ServiceDetails `json:"service_details,omitempty"`
	Provider       *Provider       `json:"provider,omitempty"`
}

func (b Booking) IsPending() bool {
	return b.Status == StatusPending
}

func (b Booking) ServiceName(fallback string) string {
	if b.ServiceDetails == nil || strings.TrimSpace(b.ServiceDetails.Name) == "" {
		return fallback
	}
	return b.ServiceDetails.Name
}

// DurationLabel is "" for an unknown duration.
func DurationLabel(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf("%d mins", minutes)
}

// BookingUpdate is the partial payload accepted by the update endpoint.
type BookingUpdate struct {
	ScheduledAt string `json:"scheduled_at"`
	Address     string `json:"address"`
}

func (u BookingUpdate) Trimmed() BookingUpdate {
	return BookingUpdate{
		ScheduledAt: strings.TrimSpace(u.ScheduledAt),
		Address:     strings.TrimSpace(u.Address),
	}
}

// Missing lists the form names of the empty fields.
func (u BookingUpdate) Missing() []string {
	var missing []string
	if strings.TrimSpace(u.ScheduledAt) == "" {
		missing = append(missing, "scheduled_at")
	}
	if strings.TrimSpace(u.Address) == "" {
		missing = append(missing, "address")
	}
	return missing
}

// ParseTimestamp reads API and datetime-local timestamps. Values without a zone are read in loc.
func ParseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// FormValue converts a timestamp into datetime-local input format. Unparseable values pass through.
func FormValue(value string, loc *time.Location) string {
	t, ok := ParseTimestamp(value, loc)
	if !ok {
		return value
	}
	return t.Format(FormLayout)
}

func DisplayValue(value string, loc *time.Location) string {
	t, ok := ParseTimestamp(value, loc)
	if !ok {
		return value
	}
	return t.Format(displayLayout)
}

func scalarString(data []byte) (string, error) {
	if string(data) == "null" {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
