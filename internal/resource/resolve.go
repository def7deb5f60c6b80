package resource

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"
)

// Outcome is the kind of result a resolution produced.
type Outcome int

const (
	Absent  Outcome = iota // nothing to serve
	Found                  // the requested name exists
	Welcome                // a directory-equivalent path resolved to its welcome file
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Welcome:
		return "welcome"
	default:
		return "absent"
	}
}

// Resolution is the result of resolving a request path against a Mount.
type Resolution struct {
	Outcome  Outcome
	Name     string    // namespace name that was looked up, empty when the path never matched
	Resource *Resource // nil unless Outcome is Found or Welcome
}

// MatchPrefix reports whether urlPath lies under prefix on a segment boundary.
// "/foobar" matches "/foobar" and "/foobar/x" but not "/foobarbar".
// An empty prefix matches every absolute path.
func MatchPrefix(urlPath, prefix string) bool {
	if prefix == "" {
		return strings.HasPrefix(urlPath, "/")
	}
	if !strings.HasPrefix(urlPath, prefix) {
		return false
	}
	rest := urlPath[len(prefix):]
	return rest == "" || rest[0] == '/'
}

// Relative maps urlPath to a namespace name under the mount root.
// welcome is true when the welcome file was substituted.
// ok is false when the path is outside the mount or tries to leave its root.
func (m Mount) Relative(urlPath string) (name string, welcome bool, ok bool) {
	if !MatchPrefix(urlPath, m.Prefix) {
		return "", false, false
	}
	rest := strings.TrimPrefix(urlPath[len(m.Prefix):], "/")

	if strings.ContainsRune(rest, 0) || strings.Contains(rest, "\\") {
		return "", false, false
	}
	for _, seg := range strings.Split(rest, "/") {
		if seg == ".." {
			return "", false, false
		}
	}

	if rest == "" || strings.HasSuffix(rest, "/") {
		rest += m.Welcome
		welcome = true
	}

	name = path.Join(m.Root, path.Clean(rest))
	if !fs.ValidPath(name) || name == "." {
		return "", false, false
	}
	return name, welcome, true
}

// Resolve looks urlPath up in ns. A missing resource is reported as Absent
// with a nil error; only failures of the namespace itself are returned.
func (m Mount) Resolve(ctx context.Context, ns Namespace, urlPath string) (Resolution, error) {
	name, welcome, ok := m.Relative(urlPath)
	if !ok {
		return Resolution{Outcome: Absent}, nil
	}

	res, err := ns.Open(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Resolution{Outcome: Absent, Name: name}, nil
		}
		return Resolution{Outcome: Absent, Name: name}, err
	}

	outcome := Found
	if welcome {
		outcome = Welcome
	}
	return Resolution{Outcome: outcome, Name: name, Resource: res}, nil
}
