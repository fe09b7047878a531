package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking wizard.
type BookingMetrics struct {
	sessionsStarted *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	confirmed       *prometheus.CounterVec
	sinkFailures    *prometheus.CounterVec
	confirmLatency  prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medcare",
			Subsystem: "booking",
			Name:      "sessions_started_total",
			Help:      "Booking sessions started, by entry point",
		}, []string{"entry"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medcare",
			Subsystem: "booking",
			Name:      "transitions_total",
			Help:      "Wizard operations, by outcome",
		}, []string{"operation", "result"}),
		confirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medcare",
			Subsystem: "booking",
			Name:      "confirmed_total",
			Help:      "Confirmed appointments, by service",
		}, []string{"service"}),
		sinkFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medcare",
			Subsystem: "booking",
			Name:      "completion_failures_total",
			Help:      "Failures handing a confirmed appointment downstream",
		}, []string{"sink"}),
		confirmLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "medcare",
			Subsystem: "booking",
			Name:      "confirm_latency_seconds",
			Help:      "Time spent confirming a booking, completion sinks included",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsStarted, m.transitions, m.confirmed, m.sinkFailures, m.confirmLatency)
	return m
}

func (m *BookingMetrics) ObserveSessionStarted(preselected bool) {
	if m == nil {
		return
	}
	entry := "blank"
	if preselected {
		entry = "service"
	}
	m.sessionsStarted.WithLabelValues(entry).Inc()
}

// ObserveTransition records an operation as applied, rejected or invalid.
func (m *BookingMetrics) ObserveTransition(operation, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(operation, result).Inc()
}

func (m *BookingMetrics) ObserveConfirmed(serviceID string) {
	if m == nil {
		return
	}
	m.confirmed.WithLabelValues(serviceID).Inc()
}

func (m *BookingMetrics) ObserveSinkFailure(sink string) {
	if m == nil {
		return
	}
	m.sinkFailures.WithLabelValues(sink).Inc()
}

func (m *BookingMetrics) ObserveConfirmLatency(seconds float64) {
	if m == nil {
		return
	}
	m.confirmLatency.Observe(seconds)
}
