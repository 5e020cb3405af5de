package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "social_registrations_total",
		Help: "Total number of successful account registrations.",
	})

	bansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "social_bans_total",
		Help: "Total number of successful account bans.",
	})

	followTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_follow_toggles_total",
			Help: "Total number of follow toggles by resulting state.",
		},
		[]string{"result"},
	)
)
