package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/assetd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/assetd/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/assetd/internal/httpserver/mw"
)

func init() { Register(registerStatic) }

// registerStatic mounts one static handler per configured mount, for every
// method: the handler itself answers 405 to anything but GET and HEAD.
func registerStatic(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RateRefillPerMin,
		TrustProxy:        d.TrustProxy,
	})

	for _, m := range d.Mounts {
		sub := r.With(
			mw.EnforceHost(d.AllowedHosts, d.Logger),
			limit,
			mw.CountHits(d.Hits, m.Prefix, d.Logger),
		)
		h := handlers.Static(d, m)

		if m.Prefix == "" {
			sub.Handle("/", h)
			sub.Handle("/*", h)
			continue
		}
		sub.Handle(m.Prefix, h)
		sub.Handle(m.Prefix+"/*", h)
	}
}
