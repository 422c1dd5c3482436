package metrics

import "github.com/prometheus/client_golang/prometheus"

var LoanOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "library_loan_outcomes_total",
	Help: "Evaluated loan requests by outcome",
}, []string{"status"})

var LoanReturns = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "library_loan_returns_total",
	Help: "Processed book returns",
})

var RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "library_request_duration_ms",
	Help:    "Duration of API requests in ms",
	Buckets: prometheus.DefBuckets,
}, []string{"transport", "method", "code"})

var DanglingRentals = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "library_dangling_rentals",
	Help: "Rentals referencing a missing book or member at the last ledger audit",
})

func init() {
	prometheus.MustRegister(LoanOutcomes, LoanReturns, RequestDuration, DanglingRentals)
}
