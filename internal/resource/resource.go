package resource

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// DefaultWelcome is the welcome file used when a mount does not name one.
const DefaultWelcome = "index.html"

// ErrNotFound is returned by a Namespace when a name does not exist.
var ErrNotFound = errors.New("resource not found")

// Resource is a single read-only resource with its content loaded.
type Resource struct {
	Name    string    // slash-separated name inside the namespace
	Content []byte    // full content
	ModTime time.Time // last modification, UTC, second precision
}

// Size returns the content length in bytes.
func (r *Resource) Size() int64 { return int64(len(r.Content)) }

// Namespace is a read-only store of resources addressed by slash-separated
// names without a leading slash (see fs.ValidPath).
// Implementations must be safe for concurrent use.
type Namespace interface {
	Open(ctx context.Context, name string) (*Resource, error)
}

// Checker is implemented by namespaces that can report readiness.
type Checker interface {
	Check(ctx context.Context) error
}

// Mount pairs a URL prefix with a root inside a Namespace.
type Mount struct {
	Prefix  string // "/foobar"; "" mounts at the server root
	Root    string // "test-resources"; "." is the namespace root
	Welcome string // file served for directory-equivalent paths
}

// NewMount normalizes and validates a mount definition.
//
//	NewMount("/foobar/", "/test-resources", "") -> {"/foobar", "test-resources", "index.html"}
func NewMount(prefix, root, welcome string) (Mount, error) {
	p := strings.TrimSpace(prefix)
	p = strings.TrimRight(p, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if p != "" && path.Clean(p) != p {
		return Mount{}, fmt.Errorf("invalid mount prefix %q", prefix)
	}
	// Router pattern syntax would turn the prefix into a parameter or wildcard.
	if strings.ContainsAny(p, "{}*") {
		return Mount{}, fmt.Errorf("mount prefix %q contains a route pattern character", prefix)
	}

	r := strings.Trim(strings.TrimSpace(root), "/")
	if r == "" {
		r = "."
	}
	r = path.Clean(r)
	if r == ".." || strings.HasPrefix(r, "../") {
		return Mount{}, fmt.Errorf("mount root %q escapes the namespace", root)
	}

	w := strings.TrimSpace(welcome)
	if w == "" {
		w = DefaultWelcome
	}
	if strings.Contains(w, "/") || w == "." || w == ".." {
		return Mount{}, fmt.Errorf("invalid welcome file %q", welcome)
	}

	return Mount{Prefix: p, Root: r, Welcome: w}, nil
}

// URLPath returns the canonical request path under m for the namespace
// name, so every spelling of a request maps to one path.
//
//	{"/foobar", "test-resources"}.URLPath("test-resources/a.txt") -> "/foobar/a.txt"
func (m Mount) URLPath(name string) string {
	rel := name
	if m.Root != "." {
		rel = strings.TrimPrefix(name, m.Root+"/")
	}
	return m.Prefix + "/" + rel
}

// String returns a short description used in logs.
func (m Mount) String() string {
	prefix := m.Prefix
	if prefix == "" {
		prefix = "/"
	}
	return prefix + " -> " + m.Root
}
