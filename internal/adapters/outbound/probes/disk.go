package probes

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/archtidy/archtidy/internal/domain"
)

// DiskUsage ranks the top-level directories of home by size.
type DiskUsage struct {
	domain.NoFix
	runner domain.CommandRunner
}

func (p *DiskUsage) Name() string { return "disk-usage" }

type dirUsage struct {
	path  string
	bytes uint64
}

func (p *DiskUsage) Check(ctx context.Context, cfg domain.Config) (domain.Result, error) {
	res := domain.Result{Title: "Disk usage distribution in home directory"}

	entries, err := readDirIfExists(cfg.Home)
	if err != nil {
		return res, fmt.Errorf("reading home directory: %w", err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(cfg.Home, e.Name()))
		}
	}
	if len(dirs) == 0 {
		return res, nil
	}

	out, err := p.runner.Output(ctx, "du", append([]string{"-s", "-B1"}, dirs...)...)
	if err != nil {
		// du exits 1 on unreadable subtrees but still prints every total.
		if domain.ExitCodeOf(err) < 0 || len(out) == 0 {
			return res, fmt.Errorf("measuring home directories: %w", err)
		}
		zerolog.Ctx(ctx).Debug().Err(err).Msg("du reported partial results")
	}

	usage := parseDu(string(out))
	slices.SortStableFunc(usage, func(a, b dirUsage) int { return cmp.Compare(b.bytes, a.bytes) })
	lines := make([]string, 0, len(usage))
	for _, u := range usage {
		lines = append(lines, fmt.Sprintf("%-8s %s", humanize.IBytes(u.bytes), u.path))
	}
	res.Content = strings.Join(domain.Cap(lines, cfg.Limit(domain.CategoryDisk)), "\n")
	return res, nil
}

// parseDu reads "<bytes>\t<path>" lines and ignores anything else.
func parseDu(out string) []dirUsage {
	var usage []dirUsage
	for _, line := range domain.NonEmptyLines(out) {
		size, path, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(strings.TrimSpace(size), 10, 64)
		if err != nil {
			continue
		}
		usage = append(usage, dirUsage{path: path, bytes: n})
	}
	return usage
}
