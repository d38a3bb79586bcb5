// Package metrics exposes the prometheus collectors cmd/addrinfo serve
// registers on /metrics, following the teacher's promMetrics
// Describe/Collect shape for its own STUN counters.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts resolution and destination-filtering activity. The zero
// value is not usable; build one with New.
type Metrics struct {
	lookups *prometheus.CounterVec
	sorted  prometheus.Counter
	denied  prometheus.Counter
	reloads *prometheus.CounterVec
}

// New builds a Metrics with const labels applied to every collector,
// mirroring the teacher's newPromMetrics(labels) constructor.
func New(labels prometheus.Labels) *Metrics {
	return &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "addrinfo_lookups_total",
			Help:        "getaddrinfo-style lookups, partitioned by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		sorted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "addrinfo_destinations_sorted_total",
			Help:        "candidate destination addresses passed through the RFC 6724 sorter",
			ConstLabels: labels,
		}),
		denied: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "addrinfo_destinations_denied_total",
			Help:        "candidate destination addresses dropped by the rpolicy filter",
			ConstLabels: labels,
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "addrinfo_reloads_total",
			Help:        "policy table and filter rule reload attempts, partitioned by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(d chan<- *prometheus.Desc) {
	m.lookups.Describe(d)
	d <- m.sorted.Desc()
	d <- m.denied.Desc()
	m.reloads.Describe(d)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(c chan<- prometheus.Metric) {
	m.lookups.Collect(c)
	m.sorted.Collect(c)
	m.denied.Collect(c)
	m.reloads.Collect(c)
}

// ObserveLookup records one getaddrinfo-style lookup's outcome, e.g. "ok",
// "no-name", "fail".
func (m *Metrics) ObserveLookup(outcome string) {
	m.lookups.WithLabelValues(outcome).Inc()
}

// AddSorted records n destinations having gone through the RFC 6724 sorter.
func (m *Metrics) AddSorted(n int) {
	m.sorted.Add(float64(n))
}

// AddDenied records n destinations dropped by the rpolicy filter.
func (m *Metrics) AddDenied(n int) {
	m.denied.Add(float64(n))
}

// ObserveReload records one policy/filter reload attempt's outcome, "ok"
// or "rejected".
func (m *Metrics) ObserveReload(outcome string) {
	m.reloads.WithLabelValues(outcome).Inc()
}
