// Package locate finds UCSF Chimera installation roots.
package locate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/insilichem/pychimera/internal/envset"
	"github.com/insilichem/pychimera/internal/logging"
	"github.com/insilichem/pychimera/internal/messages"
	"github.com/insilichem/pychimera/internal/platform"
)

// EnvOverride names the installation-directory override.
const EnvOverride = "CHIMERADIR"

// ErrNotFound reports that no installation candidate exists.
var ErrNotFound = errors.New(messages.LocateNotFound)

// Resolver discovers installation roots for one platform.
type Resolver struct {
	Sys      System
	Platform platform.Platform
	// Override, when set, is returned as the only candidate.
	Override string
	// Locations are searched after the platform's conventional locations.
	Locations []string
	Logger    *zap.Logger
}

// Override returns the explicit installation override: the CHIMERADIR
// environment variable first, then the configured directory.
func Override(env *envset.Env, configured string) string {
	if dir := strings.TrimSpace(env.Get(EnvOverride)); dir != "" {
		return dir
	}
	return strings.TrimSpace(configured)
}

// Candidates returns installation roots in preference order. The location
// reported by a Chimera executable on PATH comes first, followed by glob
// matches in each location sorted newest-first. With searchAll false the
// locations are only searched when the executable cannot answer.
func (r *Resolver) Candidates(ctx context.Context, searchAll bool) ([]string, error) {
	if r.Sys == nil {
		return nil, fmt.Errorf(messages.LocateSystemRequired)
	}
	log := logging.OrNop(r.Logger)

	if r.Override != "" {
		log.Debug(messages.LogOverride, zap.String("path", r.Override))
		return []string{r.Override}, nil
	}

	var paths []string
	if root, err := r.queryRoot(ctx); err != nil {
		log.Debug(messages.LogRootQueryFailed, zap.Error(err))
		searchAll = true
	} else {
		paths = append(paths, root)
	}

	if searchAll {
		for _, base := range r.locations() {
			found, err := r.globDirs(filepath.Join(base, r.Platform.Prefix))
			if err != nil {
				return nil, err
			}
			paths = append(paths, found...)
		}
	}

	paths = dedupe(paths)
	log.Debug(messages.LogCandidates, zap.Strings("paths", paths))
	if len(paths) == 0 {
		return nil, fmt.Errorf(messages.LocateNotFoundFmt, ErrNotFound, messages.LocateInstructions)
	}
	return paths, nil
}

// SelectRoot picks the installation to use. Headless runs prefer a
// headless build when one is among the candidates.
func SelectRoot(candidates []string, nogui bool) string {
	if len(candidates) == 0 {
		return ""
	}
	if nogui {
		for _, c := range candidates {
			if strings.Contains(c, "headless") {
				return c
			}
		}
	}
	return candidates[0]
}

// queryRoot asks the Chimera executable on PATH for its installation root.
func (r *Resolver) queryRoot(ctx context.Context) (string, error) {
	binary, err := r.Sys.LookPath(r.Platform.Binary)
	if err != nil {
		return "", err
	}
	out, err := r.Sys.Output(ctx, binary, "--root")
	if err != nil {
		return "", fmt.Errorf(messages.LocateRootQueryFailedFmt, binary, err)
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", fmt.Errorf(messages.LocateRootQueryFailedFmt, binary, ErrNotFound)
	}
	return root, nil
}

func (r *Resolver) locations() []string {
	out := make([]string, 0, len(r.Platform.Locations)+len(r.Locations))
	out = append(out, r.Platform.Locations...)
	out = append(out, r.Locations...)
	return out
}

// globDirs returns the directories matching pattern in descending order.
func (r *Resolver) globDirs(pattern string) ([]string, error) {
	matches, err := r.Sys.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf(messages.LocateGlobFailedFmt, pattern, err)
	}
	dirs := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := r.Sys.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	return dirs, nil
}

// dedupe drops candidates that resolve to an earlier candidate's location.
func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := ResolvePath(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
