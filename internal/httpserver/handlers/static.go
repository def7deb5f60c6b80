package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/assetd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/assetd/internal/httpserver/mw"
	"github.com/MrSnakeDoc/assetd/internal/logger"
	"github.com/MrSnakeDoc/assetd/internal/resource"
)

const allowedMethods = "GET, HEAD"

// Static serves the resources of one mount from d.Namespace.
// It holds no mutable state and is safe for concurrent requests.
func Static(d deps.Deps, m resource.Mount) http.HandlerFunc {
	log := d.Logger.With(logger.String("mount", m.String()))

	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path

		if !resource.MatchPrefix(urlPath, m.Prefix) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var res resource.Resolution
		if methodAllowed(r.Method) {
			var err error
			res, err = m.Resolve(r.Context(), d.Namespace, urlPath)
			if status, ok := abandoned(err); ok {
				log.Debug("resource lookup abandoned",
					logger.String("path", urlPath),
					logger.Error(err))
				w.WriteHeader(status)
				return
			}
			if err != nil {
				log.Error("resource lookup failed",
					logger.String("path", urlPath),
					logger.String("name", res.Name),
					logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			log.Debug("resource resolved",
				logger.String("path", urlPath),
				logger.String("name", res.Name),
				logger.String("outcome", res.Outcome.String()))
		}

		status := decide(r.Method, r.Header.Get("If-Modified-Since"), res)
		h := w.Header()

		switch status {
		case http.StatusMethodNotAllowed:
			h.Set("Allow", allowedMethods)
			w.WriteHeader(status)

		case http.StatusNotFound:
			w.WriteHeader(status)

		case http.StatusNotModified:
			h.Set("Last-Modified", lastModified(res.Resource))
			w.WriteHeader(status)

		case http.StatusOK:
			h.Set("Last-Modified", lastModified(res.Resource))
			h.Set("Content-Type", contentType(res.Resource))
			h.Set("Content-Length", strconv.FormatInt(res.Resource.Size(), 10))
			mw.MarkServed(r, m.URLPath(res.Name))
			w.WriteHeader(status)
			if r.Method == http.MethodHead {
				return
			}
			if _, err := w.Write(res.Resource.Content); err != nil {
				log.Debug("failed to write response", logger.Error(err))
			}
		}
	}
}

// decide picks the response status from the request method, the raw
// If-Modified-Since header and the resolution outcome.
func decide(method, ifModifiedSince string, res resource.Resolution) int {
	if !methodAllowed(method) {
		return http.StatusMethodNotAllowed
	}
	if res.Outcome == resource.Absent || res.Resource == nil {
		return http.StatusNotFound
	}
	if notModified(ifModifiedSince, res.Resource.ModTime) {
		return http.StatusNotModified
	}
	return http.StatusOK
}

// abandoned maps a lookup cut short by the request context to a status.
// The client is usually gone by then, so it is not a server failure.
func abandoned(err error) (int, bool) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, true
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, true
	default:
		return 0, false
	}
}

func methodAllowed(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// notModified reports whether header is a valid HTTP date at or after modTime.
// HTTP dates carry whole seconds, so modTime is compared at that precision.
func notModified(header string, modTime time.Time) bool {
	if header == "" || modTime.IsZero() {
		return false
	}
	since, err := http.ParseTime(header)
	if err != nil {
		return false
	}
	return !modTime.Truncate(time.Second).After(since)
}

func lastModified(res *resource.Resource) string {
	return res.ModTime.UTC().Format(http.TimeFormat)
}

func contentType(res *resource.Resource) string {
	if ct := mime.TypeByExtension(path.Ext(res.Name)); ct != "" {
		return ct
	}
	return http.DetectContentType(res.Content)
}
