// Package ratelimit caps how many ledger writes one caller can submit per
// window.
package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"walletcore/internal/platform/metrics"
	"walletcore/pkg/platform/httputil"
	"walletcore/pkg/requestcontext"
)

type Middleware struct {
	store   Store
	limit   int
	window  time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Middleware)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		m.logger = logger
	}
}

func WithMetrics(metrics *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = metrics
	}
}

// New builds a limiter admitting limit requests per window. A limit of zero
// or less disables it.
func New(store Store, limit int, window time.Duration, opts ...Option) *Middleware {
	m := &Middleware{
		store:  store,
		limit:  limit,
		window: window,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PerCaller limits by the authenticated caller, so it must run after the
// auth middleware. Store errors fail open.
func (m *Middleware) PerCaller(next http.Handler) http.Handler {
	if m == nil || m.limit <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller := requestcontext.Caller(ctx)
		res, err := m.store.Allow(ctx, caller.Hex(), m.limit, m.window)
		if err != nil {
			m.logger.ErrorContext(ctx, "rate limit check failed",
				"request_id", requestcontext.RequestID(ctx),
				"caller", caller.Hex(),
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
		if !res.Allowed {
			if m.metrics != nil {
				m.metrics.IncRateLimited()
			}
			m.logger.WarnContext(ctx, "caller rate limited",
				"request_id", requestcontext.RequestID(ctx),
				"caller", caller.Hex(),
			)
			retry := res.RetryAfter(m.now())
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			httputil.WriteJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":             "rate_limit_exceeded",
				"error_description": "too many ledger writes, retry later",
				"retry_after":       retry,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
