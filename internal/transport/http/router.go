package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"walletcore/internal/platform/metrics"
	"walletcore/internal/platform/middleware"
	"walletcore/internal/ratelimit"
	"walletcore/pkg/platform/httputil"
)

// NewRouter mounts the handler's endpoints behind the request middleware
// chain. Writes require a bearer token and are throttled per caller.
// revocations and limiter may be nil.
func NewRouter(
	h *Handler,
	validator middleware.JWTValidator,
	revocations middleware.TokenRevocationChecker,
	limiter *ratelimit.Middleware,
	logger *slog.Logger,
	m *metrics.Metrics,
) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Observe(logger, m))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(h.RegisterPublic)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, revocations, logger))
		r.Use(limiter.PerCaller)
		h.RegisterAuthenticated(r)
	})
	return r
}
