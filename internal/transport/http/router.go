package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"homebuddy-auth/internal/authz"
	"homebuddy-auth/internal/netutil"
	obsmw "homebuddy-auth/internal/observability/middleware"
	"homebuddy-auth/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const ServiceName = "auth-service"

type Deps struct {
	Auth       service.AuthService
	Households service.HouseholdService
	Bearer     *authz.BearerValidator
	Logger     *slog.Logger

	// Metrics serves /metrics; defaults to the global prometheus registry.
	Metrics http.Handler

	CORSOrigins        []string
	RateLimitPerMinute int
	TrustProxy         bool
}

func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Metrics == nil {
		d.Metrics = promhttp.Handler()
	}
	h := &handler{auth: d.Auth, households: d.Households, logger: d.Logger, trustProxy: d.TrustProxy}

	r := chi.NewRouter()
	r.Use(obsmw.WithRequestAndTrace(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(obsmw.WithMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   originsIfSet(d.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id", "X-Trace-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Trace-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/status", h.status)
	r.Method(http.MethodGet, "/metrics", d.Metrics)

	limit := rateLimiter(d.RateLimitPerMinute, d.TrustProxy)
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(pub chi.Router) {
			pub.Use(limit)
			pub.Post("/register", h.register)
			pub.Post("/login", h.login)
			pub.Get("/household/validate-invite/{inviteCode}", h.validateInvite)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(d.Bearer.Middleware)
			pr.Post("/household/create", h.createHousehold)
			pr.Post("/household/join", h.joinHousehold)
			pr.Post("/household/leave", h.leaveHousehold)
			pr.Post("/household/deactivate", h.deactivateHousehold)
			pr.Get("/household/info", h.householdInfo)
		})
	})

	return r
}

// rateLimiter keys on the resolved client address so proxied callers are not
// pooled under the proxy's IP.
func rateLimiter(perMinute int, trustProxy bool) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return netutil.ClientIP(r, trustProxy), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusTooManyRequests, "Too many requests")
		}),
	)
}

func originsIfSet(in []string) []string {
	out := []string{}
	for _, o := range in {
		if s := strings.TrimSpace(o); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
