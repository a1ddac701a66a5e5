package announce

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var mOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "catapult",
	Subsystem: "announce",
	Name:      "outcomes_total",
	Help:      "Announced transactions, by outcome",
}, []string{"outcome"})
