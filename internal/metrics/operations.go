package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameOperations   = "operations_total"
	LabelResource    = "resource"
	LabelOperation   = "operation"
	LabelOutcome     = "outcome"
	ResourcePlant    = "plant"
	ResourceReminder = "reminder"
)

var Operations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameOperations,
		Help:      "Resource operations by outcome",
		Namespace: Namespace,
	},
	[]string{LabelResource, LabelOperation, LabelOutcome},
)
