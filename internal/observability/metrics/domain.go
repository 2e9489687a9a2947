package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UsersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_created_total",
			Help: "Total number of registered users",
		},
	)

	UsersVerifiedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_verified_total",
			Help: "Total number of successful email certifications",
		},
	)

	CertificationMismatchTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "certification_mismatch_total",
			Help: "Total number of rejected certification codes",
		},
	)

	UserLoginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "user_logins_total",
			Help: "Total number of recorded logins",
		},
	)

	MailDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_deliveries_total",
			Help: "Total number of outbound mails by outcome",
		},
		[]string{"outcome"},
	)

	MailSendDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mail_send_duration_seconds",
			Help:    "Duration of outbound mail delivery in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	PostsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total number of created posts",
		},
	)

	PostsUpdatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_updated_total",
			Help: "Total number of post edits",
		},
	)
)
