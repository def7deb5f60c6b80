package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/MrSnakeDoc/assetd/internal/connector"
	"github.com/MrSnakeDoc/assetd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/assetd/internal/logger"
	"github.com/MrSnakeDoc/assetd/internal/resource"
	redisstore "github.com/MrSnakeDoc/assetd/internal/store/redis"
)

type fakeHits struct {
	top     map[string][]redisstore.Hit
	err     error
	pingErr error
	lastN   int64
}

func (f *fakeHits) RecordHit(context.Context, string, string) error { return f.err }

func (f *fakeHits) TopHits(_ context.Context, mount string, n int64) ([]redisstore.Hit, error) {
	f.lastN = n
	if f.err != nil {
		return nil, f.err
	}
	return f.top[mount], nil
}

func (f *fakeHits) Ping(context.Context) error { return f.pingErr }

type failingNamespace struct{}

func (failingNamespace) Open(context.Context, string) (*resource.Resource, error) {
	return nil, resource.ErrNotFound
}

func (failingNamespace) Check(context.Context) error { return errors.New("bundle missing") }

func TestHealthz(t *testing.T) {
	conn, err := connector.New(false, "http", "127.0.0.1", 8080)
	if err != nil {
		t.Fatalf("connector.New() error = %v", err)
	}
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m, _ := resource.NewMount("/foobar", "/test-resources", "")

	d := deps.Deps{
		Logger:    logger.NewNop(),
		StartTime: start,
		TimeNow:   func() time.Time { return start.Add(90 * time.Second) },
		Version:   "v1.2.3",
		Connector: conn,
		Mounts:    []resource.Mount{m},
	}

	rr := httptest.NewRecorder()
	Healthz(d)(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var got healthzResponse
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := healthzResponse{
		Status:        "ok",
		UptimeSeconds: 90,
		Connector:     "http://127.0.0.1:8080 (not secure)",
		Mounts:        []string{"/foobar -> test-resources"},
		Version:       "v1.2.3",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("healthz mismatch (-want +got):\n%s", diff)
	}
}

func TestReadyz(t *testing.T) {
	ok := resource.NewFSNamespace(fstest.MapFS{"a": {Data: []byte("a")}}, time.Now())

	tests := []struct {
		name       string
		ns         resource.Namespace
		hits       deps.HitStore
		wantStatus int
		wantHits   string
	}{
		{name: "ready without redis", ns: ok, wantStatus: http.StatusOK, wantHits: "disabled"},
		{name: "ready with redis", ns: ok, hits: &fakeHits{}, wantStatus: http.StatusOK, wantHits: "ok"},
		{name: "redis down stays ready", ns: ok, hits: &fakeHits{pingErr: errors.New("down")}, wantStatus: http.StatusOK, wantHits: "unreachable"},
		{name: "namespace broken", ns: failingNamespace{}, wantStatus: http.StatusServiceUnavailable, wantHits: "disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := deps.Deps{Logger: logger.NewNop(), Namespace: tt.ns, Hits: tt.hits}
			rr := httptest.NewRecorder()
			Readyz(d)(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			var got readyzResponse
			if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Hits != tt.wantHits {
				t.Errorf("hits = %q, want %q", got.Hits, tt.wantHits)
			}
		})
	}
}

func TestStats(t *testing.T) {
	m, _ := resource.NewMount("/foobar", "/test-resources", "")
	hits := &fakeHits{top: map[string][]redisstore.Hit{
		"/foobar": {{Path: "/foobar/", Count: 7}, {Path: "/foobar/simple-content.txt", Count: 3}},
	}}
	d := deps.Deps{Logger: logger.NewNop(), Mounts: []resource.Mount{m}, Hits: hits}

	rr := httptest.NewRecorder()
	Stats(d)(rr, httptest.NewRequest(http.MethodGet, "/stats?n=500", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if hits.lastN != maxTopHits {
		t.Errorf("n = %d, want clamp to %d", hits.lastN, maxTopHits)
	}

	var got statsResponse
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := statsResponse{Mounts: []mountStats{{Mount: "/foobar -> test-resources", Top: hits.top["/foobar"]}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestStatsErrors(t *testing.T) {
	m, _ := resource.NewMount("/foobar", "/", "")

	tests := []struct {
		name   string
		hits   deps.HitStore
		target string
		want   int
	}{
		{name: "disabled", hits: nil, target: "/stats", want: http.StatusServiceUnavailable},
		{name: "bad n", hits: &fakeHits{}, target: "/stats?n=zero", want: http.StatusBadRequest},
		{name: "negative n", hits: &fakeHits{}, target: "/stats?n=-1", want: http.StatusBadRequest},
		{name: "store failure", hits: &fakeHits{err: errors.New("down")}, target: "/stats", want: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := deps.Deps{Logger: logger.NewNop(), Mounts: []resource.Mount{m}, Hits: tt.hits}
			rr := httptest.NewRecorder()
			Stats(d)(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}
