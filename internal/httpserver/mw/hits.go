package mw

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/assetd/internal/logger"
)

// HitRecorder stores one served request.
type HitRecorder interface {
	RecordHit(ctx context.Context, mount, path string) error
}

const recordTimeout = 500 * time.Millisecond

type servedKey struct{}

type served struct {
	path string
}

// MarkServed names the canonical path a handler served for r.
// CountHits records that path instead of the raw request path, so
// spellings like "/a//b" and "/a/./b" share one counter.
func MarkServed(r *http.Request, canonical string) {
	if s, ok := r.Context().Value(servedKey{}).(*served); ok {
		s.path = canonical
	}
}

// CountHits records every 200 response of next under mount, keyed by the
// path the handler passed to MarkServed. Unmarked responses are not counted.
// Recording failures are logged and never change the response.
// A nil recorder makes the middleware a passthrough.
func CountHits(rec HitRecorder, mount string, log logger.Logger) func(http.Handler) http.Handler {
	if rec == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := &served{}
			sr := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(sr, r.WithContext(context.WithValue(r.Context(), servedKey{}, s)))

			if sr.Status() != http.StatusOK || s.path == "" {
				return
			}

			ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), recordTimeout)
			defer cancel()
			if err := rec.RecordHit(ctx, mount, s.path); err != nil {
				log.Debug("failed to record hit",
					logger.String("mount", mount),
					logger.String("path", s.path),
					logger.Error(err))
			}
		})
	}
}
