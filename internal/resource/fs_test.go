package resource

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"
)

func TestFSNamespaceOpen(t *testing.T) {
	mod := time.Date(2024, 3, 1, 10, 30, 15, 500_000_000, time.UTC)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	fsys := fstest.MapFS{
		"a/file.txt":   {Data: []byte("hello"), ModTime: mod},
		"a/nomod.txt":  {Data: []byte("embedded")},
		"a/sub/x.html": {Data: []byte("<p>x</p>"), ModTime: mod},
	}
	ns := NewFSNamespace(fsys, start)
	ctx := context.Background()

	t.Run("regular file", func(t *testing.T) {
		res, err := ns.Open(ctx, "a/file.txt")
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if string(res.Content) != "hello" || res.Size() != 5 {
			t.Errorf("Open() content = %q size %d", res.Content, res.Size())
		}
		if want := mod.Truncate(time.Second); !res.ModTime.Equal(want) {
			t.Errorf("Open() ModTime = %v, want %v", res.ModTime, want)
		}
	})

	t.Run("zero mod time uses fallback", func(t *testing.T) {
		res, err := ns.Open(ctx, "a/nomod.txt")
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if !res.ModTime.Equal(start) {
			t.Errorf("Open() ModTime = %v, want %v", res.ModTime, start)
		}
	})

	for _, name := range []string{"a/missing.txt", "a/sub", "a", "/a/file.txt", "../a/file.txt", ""} {
		t.Run("not found "+name, func(t *testing.T) {
			_, err := ns.Open(ctx, name)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Open(%q) error = %v, want ErrNotFound", name, err)
			}
		})
	}

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := ns.Open(cctx, "a/file.txt"); !errors.Is(err, context.Canceled) {
			t.Errorf("Open() error = %v, want context.Canceled", err)
		}
	})
}

func TestFSNamespaceCheck(t *testing.T) {
	ns := NewFSNamespace(fstest.MapFS{"x": {Data: []byte("x")}}, time.Now())
	if err := ns.Check(context.Background()); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}
