package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AuthRegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of registration attempts.",
		},
		[]string{"result"},
	)

	AuthLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)

	TokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of token issuance attempts.",
		},
		[]string{"result"},
	)

	TokensVerifiedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_tokens_verified_total",
			Help: "Total number of token signature and expiry checks.",
		},
		[]string{"result"},
	)

	BearerAuthTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_bearer_checks_total",
			Help: "Total number of bearer token checks on protected routes.",
		},
		[]string{"result"},
	)

	HouseholdOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "household_operations_total",
			Help: "Total number of household create/join/leave/deactivate attempts.",
		},
		[]string{"operation", "result"},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		AuthRegistrationsTotal,
		AuthLoginsTotal,
		TokensIssuedTotal,
		TokensVerifiedTotal,
		BearerAuthTotal,
		HouseholdOperationsTotal,
	}
}

// MustRegister registers every collector on the default registry with a
// constant service label.
func MustRegister(serviceName string) {
	Register(prometheus.DefaultRegisterer, serviceName)
}

func Register(reg prometheus.Registerer, serviceName string) {
	prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, reg).
		MustRegister(collectors()...)
}

// Result maps an error to the result label used across counters.
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
