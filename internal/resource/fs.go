package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/MrSnakeDoc/assetd/internal/utils"
)

// FSNamespace serves resources from an fs.FS (an embed.FS bundle or os.DirFS).
type FSNamespace struct {
	fsys     fs.FS
	fallback time.Time // mod time reported for files that carry none (embed.FS)
}

// NewFSNamespace wraps fsys. fallback is used as the last-modified time of
// files whose ModTime is zero; it is usually the process start time.
func NewFSNamespace(fsys fs.FS, fallback time.Time) *FSNamespace {
	return &FSNamespace{
		fsys:     fsys,
		fallback: fallback.UTC().Truncate(time.Second),
	}
}

// Open reads the named file. Directories and missing names yield ErrNotFound.
func (n *FSNamespace) Open(ctx context.Context, name string) (*Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	f, err := n.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open resource %s: %w", name, err)
	}
	defer utils.Close(f)

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat resource %s: %w", name, err)
	}
	if info.IsDir() || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource %s: %w", name, err)
	}

	mod := info.ModTime()
	if mod.IsZero() {
		mod = n.fallback
	}

	return &Resource{
		Name:    name,
		Content: content,
		ModTime: mod.UTC().Truncate(time.Second),
	}, nil
}

// Check verifies that the namespace root can be listed.
func (n *FSNamespace) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fs.Stat(n.fsys, "."); err != nil {
		return fmt.Errorf("resource namespace unavailable: %w", err)
	}
	return nil
}
