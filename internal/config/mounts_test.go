package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MrSnakeDoc/assetd/internal/resource"
)

func writeMounts(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "mounts.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create mounts file: %v", err)
	}
	return p
}

func TestMountsLoaderLoad(t *testing.T) {
	p := writeMounts(t, `---
mounts:
  - prefix: /foobar
    root: /test-resources
  - prefix: docs/
    root: manual
    welcome: start.html
`)

	got, err := NewMountsLoader(p).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []resource.Mount{
		{Prefix: "/foobar", Root: "test-resources", Welcome: "index.html"},
		{Prefix: "/docs", Root: "manual", Welcome: "start.html"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestMountsLoaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid yaml", content: "mounts: [\n"},
		{name: "no mounts", content: "mounts: []\n"},
		{name: "escaping root", content: "mounts:\n  - prefix: /a\n    root: ../etc\n"},
		{name: "duplicate prefix", content: "mounts:\n  - prefix: /a\n    root: x\n  - prefix: /a/\n    root: y\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMountsLoader(writeMounts(t, tt.content)).Load(); err == nil {
				t.Error("Load() should have failed")
			}
		})
	}
}

func TestMountsLoaderFileNotFound(t *testing.T) {
	if _, err := NewMountsLoader("/nonexistent/mounts.yaml").Load(); err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoadUsesMountsFile(t *testing.T) {
	t.Setenv("ASSETD_TLS_CERT_FILE", "")
	t.Setenv("ASSETD_TLS_KEY_FILE", "")
	t.Setenv("ASSETD_MOUNTS_FILE", writeMounts(t, "mounts:\n  - prefix: /foobar\n    root: /test-resources\n"))

	cfg := Load()
	if len(cfg.Mounts) != 1 || cfg.Mounts[0].Prefix != "/foobar" {
		t.Errorf("Load() mounts = %+v", cfg.Mounts)
	}
}
