package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingDecode(t *testing.T) {
	payload := `[
		{"id": 1, "status": "Pending", "scheduled_at": "2024-01-01T10:00", "address": "A"},
		{"id": "b-2", "status": "Accepted", "scheduled_at": "2024-01-02T10:00:00Z", "address": "B",
		 "service_details": {"id": 7, "name": "Plumbing", "base_price": "499.00", "duration_in_minutes": 60},
		 "provider": {"id": 3, "name": "Asha"}}
	]`

	var bookings []Booking
	require.NoError(t, json.Unmarshal([]byte(payload), &bookings))
	require.Len(t, bookings, 2)

	assert.Equal(t, ID("1"), bookings[0].Id)
	assert.True(t, bookings[0].IsPending())
	assert.Nil(t, bookings[0].ServiceDetails)

	assert.Equal(t, ID("b-2"), bookings[1].Id)
	assert.False(t, bookings[1].IsPending())
	assert.Equal(t, Amount("499.00"), bookings[1].ServiceDetails.BasePrice)
	assert.Equal(t, 60, bookings[1].ServiceDetails.DurationInMinutes)
	assert.Equal(t, "Asha", bookings[1].Provider.Name)
}

func TestIDRejectsNonScalar(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &id))
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "Service", Booking{}.ServiceName("Service"))
	assert.Equal(t, "Service", Booking{ServiceDetails: &ServiceDetails{Name: "  "}}.ServiceName("Service"))
	assert.Equal(t, "Cleaning", Booking{ServiceDetails: &ServiceDetails{Name: "Cleaning"}}.ServiceName("Service"))
}

func TestStatusIsCaseSensitive(t *testing.T) {
	assert.False(t, Booking{Status: "pending"}.IsPending())
	assert.False(t, Booking{Status: "Completed"}.IsPending())
}

func TestBookingUpdateMissing(t *testing.T) {
	assert.Empty(t, BookingUpdate{ScheduledAt: "2024-02-02T09:00", Address: "B"}.Missing())
	assert.Equal(t, []string{"address"}, BookingUpdate{ScheduledAt: "2024-02-02T09:00", Address: " \n"}.Missing())
	assert.Equal(t, []string{"scheduled_at", "address"}, BookingUpdate{}.Missing())

	trimmed := BookingUpdate{ScheduledAt: " 2024-02-02T09:00 ", Address: " B "}.Trimmed()
	assert.Equal(t, BookingUpdate{ScheduledAt: "2024-02-02T09:00", Address: "B"}, trimmed)
}

func TestBookingUpdatePayload(t *testing.T) {
	body, err := json.Marshal(BookingUpdate{ScheduledAt: "2024-02-02T09:00", Address: "B"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"scheduled_at":"2024-02-02T09:00","address":"B"}`, string(body))
}

func TestFormValue(t *testing.T) {
	tests := []struct {
		description string
		input       string
		expected    string
	}{
		{"datetime-local passes through", "2024-01-01T10:00", "2024-01-01T10:00"},
		{"seconds are dropped", "2024-01-01T10:00:30", "2024-01-01T10:00"},
		{"zoned value is moved into the location", "2024-01-01T10:00:00+02:00", "2024-01-01T08:00"},
		{"unparseable value is kept", "tomorrow", "tomorrow"},
	}

	for _, test := range tests {
		assert.Equalf(t, test.expected, FormValue(test.input, time.UTC), test.description)
	}
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "Jan 1, 2024 10:00 AM", DisplayValue("2024-01-01T10:00", time.UTC))
	assert.Equal(t, "", DisplayValue("", time.UTC))
}

func TestDurationLabel(t *testing.T) {
	assert.Equal(t, "60 mins", DurationLabel(60))
	assert.Equal(t, "", DurationLabel(0))
}
