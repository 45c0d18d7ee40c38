package hub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	onlineUsersGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tunedeck_online_users",
		Help: "Number of users with at least one open realtime connection.",
	})
	openHandlesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tunedeck_open_connections",
		Help: "Number of open websocket connections.",
	})
	pushedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tunedeck_pushed_events_total",
		Help: "Events pushed to clients, by event name.",
	}, []string{"event"})
	droppedEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunedeck_dropped_events_total",
		Help: "Events dropped because a client egress buffer was full.",
	})
)
