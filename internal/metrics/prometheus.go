package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics owns a private registry so the API, record service and tests never
// collide on the global one.
type Metrics struct {
	Registry *prometheus.Registry

	BookingsCreated   prometheus.Counter
	BookingsCancelled prometheus.Counter
	MirrorWrites      *prometheus.CounterVec
	MirrorLatency     prometheus.Histogram
	RecordsStored     *prometheus.CounterVec
	HTTPRequests      *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings accepted and persisted locally.",
		}),
		BookingsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "Bookings removed by cancellation.",
		}),
		MirrorWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_mirror_writes_total",
			Help:      "Remote mirror writes by outcome.",
		}, []string{"outcome"}),
		MirrorLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "booking_mirror_latency_seconds",
			Help:      "Latency of remote mirror writes.",
			Buckets:   prometheus.DefBuckets,
		}),
		RecordsStored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_records_stored_total",
			Help:      "Booking records received by the record service, by outcome.",
		}, []string{"outcome"}),
		HTTPRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.Registry.MustRegister(
		m.BookingsCreated,
		m.BookingsCancelled,
		m.MirrorWrites,
		m.MirrorLatency,
		m.RecordsStored,
		m.HTTPRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) BookingCreated() { m.BookingsCreated.Inc() }

func (m *Metrics) BookingCancelled() { m.BookingsCancelled.Inc() }

func (m *Metrics) MirrorObserved(ok bool, elapsed time.Duration) {
	m.MirrorWrites.WithLabelValues(outcome(ok)).Inc()
	m.MirrorLatency.Observe(elapsed.Seconds())
}

func (m *Metrics) RecordStored(ok bool) {
	m.RecordsStored.WithLabelValues(outcome(ok)).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
