package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	SourceRemote         = "remote"
	SourceSeed           = "seed"
	SourceSeedAfterError = "seed_after_error"
)

// Portal exposes counters for the appointment directory and onboarding.
type Portal struct {
	directoryLoads *prometheus.CounterVec
	deletes        *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	registrations  prometheus.Counter
}

func NewPortal(reg prometheus.Registerer) *Portal {
	m := &Portal{
		directoryLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "randevubot",
			Subsystem: "directory",
			Name:      "loads_total",
			Help:      "Appointment list loads by data source",
		}, []string{"source"}),
		deletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "randevubot",
			Subsystem: "directory",
			Name:      "deletes_total",
			Help:      "Appointment deletes by outcome",
		}, []string{"outcome"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "randevubot",
			Subsystem: "onboarding",
			Name:      "submissions_total",
			Help:      "Onboarding submissions by outcome",
		}, []string{"outcome"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "randevubot",
			Subsystem: "portal",
			Name:      "registrations_total",
			Help:      "Completed registrations",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.directoryLoads, m.deletes, m.submissions, m.registrations)
	return m
}

func (m *Portal) ObserveLoad(source string) {
	if m == nil {
		return
	}
	m.directoryLoads.WithLabelValues(source).Inc()
}

func (m *Portal) ObserveDelete(outcome string) {
	if m == nil {
		return
	}
	m.deletes.WithLabelValues(outcome).Inc()
}

func (m *Portal) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Portal) ObserveRegistration() {
	if m == nil {
		return
	}
	m.registrations.Inc()
}
