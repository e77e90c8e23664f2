package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameScans               = "scans_total"
	NameDueReminders        = "due_reminders"
	NameScanDurationSeconds = "scan_duration_seconds"
)

var Scans = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameScans,
		Help:      "Due reminder scans by outcome",
		Namespace: Namespace,
	},
	[]string{LabelOutcome},
)

var DueReminders = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name:      NameDueReminders,
		Help:      "Reminders found due by the last successful scan",
		Namespace: Namespace,
	},
)

var ScanDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:      NameScanDurationSeconds,
		Help:      "Due reminder scan duration",
		Namespace: Namespace,
		Buckets:   prometheus.DefBuckets,
	},
)
