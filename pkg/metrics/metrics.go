package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	AppointmentsBookedTotal prometheus.Counter
	BookingConflictsTotal   prometheus.Counter
	BillsCreatedTotal       prometheus.Counter
	ReportsUploadedTotal    prometheus.Counter

	AuditEntriesTotal  prometheus.Counter
	AuditBufferDropped prometheus.Counter
}

func NewCollector(serviceName string) *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		AppointmentsBookedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "clinical",
			Name:      "appointments_booked_total",
			Help:      "Total appointments successfully booked.",
		}),

		BookingConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "clinical",
			Name:      "booking_conflicts_total",
			Help:      "Booking requests rejected because the doctor was already booked.",
		}),

		BillsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "billing",
			Name:      "bills_created_total",
			Help:      "Total bills created.",
		}),

		ReportsUploadedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "clinical",
			Name:      "lab_reports_uploaded_total",
			Help:      "Total lab report documents uploaded.",
		}),

		AuditEntriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "entries_total",
			Help:      "Total audit log entries written.",
		}),

		AuditBufferDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "buffer_dropped_total",
			Help:      "Audit entries dropped due to full buffer. Alert if non-zero.",
		}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
