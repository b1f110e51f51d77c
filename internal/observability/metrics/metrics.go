package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters/histograms for the availability engine
// and the appointment lifecycle.
type SchedulingMetrics struct {
	availabilityTotal   *prometheus.CounterVec
	appointmentsTotal   *prometheus.CounterVec
	unknownTreatment    prometheus.Counter
	availabilityLatency prometheus.Histogram
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		availabilityTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "armonia",
			Subsystem: "schedule",
			Name:      "availability_requests_total",
			Help:      "Total availability computations",
		}, []string{"outcome"}),
		appointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "armonia",
			Subsystem: "appointments",
			Name:      "mutations_total",
			Help:      "Total appointment mutations",
		}, []string{"operation", "status"}),
		unknownTreatment: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "armonia",
			Subsystem: "schedule",
			Name:      "unknown_treatment_total",
			Help:      "Appointments referencing a treatment id absent from the catalog",
		}),
		availabilityLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "armonia",
			Subsystem: "schedule",
			Name:      "availability_latency_seconds",
			Help:      "Latency of availability computations",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.availabilityTotal, m.appointmentsTotal, m.unknownTreatment, m.availabilityLatency)
	return m
}

func (m *SchedulingMetrics) ObserveAvailability(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.availabilityTotal.WithLabelValues(outcome).Inc()
	m.availabilityLatency.Observe(seconds)
}

func (m *SchedulingMetrics) ObserveMutation(operation, status string) {
	if m == nil {
		return
	}
	m.appointmentsTotal.WithLabelValues(operation, status).Inc()
}

func (m *SchedulingMetrics) ObserveUnknownTreatment() {
	if m == nil {
		return
	}
	m.unknownTreatment.Inc()
}
