package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	VendAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "airtime_vend_attempts_total",
		Help: "Vend attempts submitted to a vendor backend.",
	}, []string{"vendor"})

	VendFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "airtime_vend_failures_total",
		Help: "Vend attempts that ended in a vendor or lookup failure.",
	}, []string{"vendor"})

	ScheduledRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "airtime_scheduled_runs_total",
		Help: "Completed passes over the weekly schedule list.",
	})
)

func init() {
	prometheus.MustRegister(VendAttempts, VendFailures, ScheduledRuns)
}
