package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/assetd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/assetd/internal/logger"
	"github.com/MrSnakeDoc/assetd/internal/resource"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Hits  string `json:"hits"` // "disabled" | "ok" | "unreachable"
	Error string `json:"error,omitempty"`
}

// Readyz reports whether the resource namespace can serve lookups.
// Hit counting is optional and does not affect readiness.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := readyzResponse{Ready: true, Hits: "disabled"}
		if c, ok := d.Namespace.(resource.Checker); ok {
			if err := c.Check(ctx); err != nil {
				d.Logger.Warn("namespace not ready", logger.Error(err))
				resp.Ready = false
				resp.Error = err.Error()
			}
		}
		if d.Hits != nil {
			resp.Hits = "ok"
			if err := d.Hits.Ping(ctx); err != nil {
				d.Logger.Debug("hit store unreachable", logger.Error(err))
				resp.Hits = "unreachable"
			}
		}

		if resp.Ready {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
