package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "harborlight", Name: "logins_total", Help: "Number of login attempts by outcome."},
		[]string{"outcome"},
	)
	SignupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "harborlight", Name: "signups_total", Help: "Number of completed signups."},
	)
	AppointmentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "harborlight", Name: "appointments_created_total", Help: "Number of booked appointments by service type."},
		[]string{"service_type"},
	)
	AppointmentStatusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "harborlight", Name: "appointment_status_updates_total", Help: "Number of admin status updates by target status."},
		[]string{"status"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "harborlight", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "harborlight", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(LoginsTotal)
	reg.MustRegister(SignupsTotal)
	reg.MustRegister(AppointmentsCreated)
	reg.MustRegister(AppointmentStatusUpdates)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
