package scoreboardhandlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// RouterConfig carries the transport-level knobs for the HTTP surface.
type RouterConfig struct {
	// AllowedOrigins enables CORS for the listed origins; empty disables CORS.
	AllowedOrigins []string
	// SubmitRatePerSecond and SubmitBurst bound POST traffic per client IP.
	// Zero disables rate limiting.
	SubmitRatePerSecond float64
	SubmitBurst         int
}

// SetupRoutes builds the router with the handler injected.
func SetupRoutes(h *ScoreboardHandler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(CORSMiddleware(cfg.AllowedOrigins))
	}

	r.Get("/healthz", h.Healthz)
	r.Get("/scores", h.GetScores)

	r.Group(func(r chi.Router) {
		if cfg.SubmitRatePerSecond > 0 {
			limiter := NewIPRateLimiter(rate.Limit(cfg.SubmitRatePerSecond), cfg.SubmitBurst)
			r.Use(RateLimitMiddleware(limiter))
		}
		r.Post("/scores", h.SubmitScore)
		r.Post("/scores/clear", h.ClearScores)
	})

	return r
}
