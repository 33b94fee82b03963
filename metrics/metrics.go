package metrics

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "booking_frontend"

var (
	once sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Count of booking API calls by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Duration of booking API calls.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	bookingCanceled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_cancel_total",
			Help:      "Count of booking cancellations submitted by customers, by result.",
		},
		[]string{"result"},
	)

	bookingUpdated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_update_total",
			Help:      "Count of booking edits submitted by customers, by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(apiRequests, apiDuration, bookingCanceled, bookingUpdated)
	})
}

func ObserveAPICall(op, outcome string, elapsed time.Duration) {
	apiRequests.WithLabelValues(op, outcome).Inc()
	apiDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func IncBookingCanceled(result string) {
	bookingCanceled.WithLabelValues(result).Inc()
}

func IncBookingUpdated(result string) {
	bookingUpdated.WithLabelValues(result).Inc()
}

// Handler serves the default registry.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
