package listener

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catapult",
		Subsystem: "listener",
		Name:      "events_total",
		Help:      "Push messages received, by channel",
	}, []string{"channel"})
	mRegistrations = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "catapult",
		Subsystem: "listener",
		Name:      "registrations",
		Help:      "Number of pending registrations",
	})
	mWaits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catapult",
		Subsystem: "listener",
		Name:      "waits_total",
		Help:      "Finished waits, by outcome",
	}, []string{"outcome"})
)
