package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/assetd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/assetd/internal/logger"
	redisstore "github.com/MrSnakeDoc/assetd/internal/store/redis"
)

const (
	defaultTopHits = 10
	maxTopHits     = 100
)

type mountStats struct {
	Mount string           `json:"mount"`
	Top   []redisstore.Hit `json:"top"`
}

type statsResponse struct {
	Mounts []mountStats `json:"mounts"`
}

// Stats lists the most served paths of every mount (?n= limits the list).
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		if d.Hits == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "hit counting disabled"})
			return
		}

		n := int64(defaultTopHits)
		if v := r.URL.Query().Get("n"); v != "" {
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil || parsed < 1 {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "n must be a positive integer"})
				return
			}
			n = min(parsed, maxTopHits)
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := statsResponse{Mounts: make([]mountStats, 0, len(d.Mounts))}
		for _, m := range d.Mounts {
			top, err := d.Hits.TopHits(ctx, m.Prefix, n)
			if err != nil {
				d.Logger.Error("failed to read hit counters",
					logger.String("mount", m.String()),
					logger.Error(err))
				w.WriteHeader(http.StatusBadGateway)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "hit store unavailable"})
				return
			}
			resp.Mounts = append(resp.Mounts, mountStats{Mount: m.String(), Top: top})
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
