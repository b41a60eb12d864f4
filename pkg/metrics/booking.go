package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	ProbesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sponsorcatcher_probes_total",
		Help: "Availability probes by result.",
	}, []string{"result"})

	AttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sponsorcatcher_attempts_total",
		Help: "Reservation attempts by terminal outcome.",
	}, []string{"outcome"})

	MonitorCyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sponsorcatcher_monitor_cycles_total",
		Help: "Completed monitor loop cycles.",
	})

	BlocklistSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sponsorcatcher_blocklist_size",
		Help: "Keywords blocklisted during the current run.",
	})

	LastAvailableAt = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sponsorcatcher_last_available_timestamp_seconds",
		Help: "Unix time of the most recent availability observation.",
	})
)
