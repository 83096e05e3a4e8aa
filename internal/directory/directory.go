// Package directory enumerates installed applications from bundle directories.
package directory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pandeptwidyaop/launchpad/internal/config"
)

// ErrUnavailable is returned when a required directory cannot be listed.
var ErrUnavailable = errors.New("directory unavailable")

// Directory lists application names found in a fixed set of directories.
type Directory struct {
	paths  []entryPath
	suffix string
}

type entryPath struct {
	path     string
	optional bool
}

// New creates a Directory from the directory section of the config.
// Required paths come first, optional paths after, each in configured order.
func New(cfg config.DirectoryConfig) *Directory {
	d := &Directory{suffix: cfg.Suffix}
	for _, p := range cfg.Paths {
		d.paths = append(d.paths, entryPath{path: expandHome(p)})
	}
	for _, p := range cfg.OptionalPaths {
		d.paths = append(d.paths, entryPath{path: expandHome(p), optional: true})
	}
	return d
}

// List returns application names in directory order.
// Names are the bundle entries with the suffix stripped; other entries are skipped.
func (d *Directory) List(ctx context.Context) ([]string, error) {
	results := make([][]string, len(d.paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range d.paths {
		i, p := i, p
		g.Go(func() error {
			names, err := d.scan(ctx, p)
			if err != nil {
				return err
			}
			results[i] = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	apps := make([]string, 0)
	for _, names := range results {
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			apps = append(apps, name)
		}
	}
	return apps, nil
}

func (d *Directory) scan(ctx context.Context, p entryPath) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(p.path)
	if err != nil {
		if p.optional && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, p.path, err)
	}

	var names []string
	for _, e := range entries {
		if name, ok := AppName(e.Name(), d.suffix); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// AppName derives an application name from a directory entry.
// Hidden entries, entries without the suffix and the bare suffix are rejected.
func AppName(entry, suffix string) (string, bool) {
	if strings.HasPrefix(entry, ".") {
		return "", false
	}
	if !strings.HasSuffix(entry, suffix) {
		return "", false
	}
	name := strings.TrimSuffix(entry, suffix)
	if strings.TrimSpace(name) == "" {
		return "", false
	}
	return name, true
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
