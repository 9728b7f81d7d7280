package probes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/archtidy/archtidy/internal/domain"
)

// Trash measures the freedesktop trash under the home directory.
type Trash struct {
	found []string
	size  uint64
}

func (p *Trash) Name() string { return "trash" }

func trashDir(cfg domain.Config) string {
	return filepath.Join(cfg.Home, ".local", "share", "Trash")
}

func (p *Trash) Check(_ context.Context, cfg domain.Config) (domain.Result, error) {
	res := domain.Result{Title: "Trash size [trash-empty]"}
	p.found, p.size = nil, 0

	items := 0
	for _, sub := range []string{"files", "info"} {
		dir := filepath.Join(trashDir(cfg), sub)
		entries, err := readDirIfExists(dir)
		if err != nil {
			return res, fmt.Errorf("reading trash: %w", err)
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			n, err := diskSize(path)
			if err != nil {
				return res, fmt.Errorf("measuring %s: %w", path, err)
			}
			p.size += n
			p.found = append(p.found, path)
			if sub == "files" {
				items++
			}
		}
	}

	res.Content = fmt.Sprintf("%s in %d items", humanize.IBytes(p.size), items)
	res.FixAvailable = len(p.found) > 0
	return res, nil
}

func (p *Trash) DescribeFix(cfg domain.Config) string {
	return fmt.Sprintf("permanently delete %s from %s", humanize.IBytes(p.size), trashDir(cfg))
}

func (p *Trash) ApplyFix(ctx context.Context, _ domain.Config) error {
	return removeAll(ctx, p.found)
}

// NvimSwap counts Neovim swap files left behind by crashed sessions.
type NvimSwap struct {
	found []string
}

func (p *NvimSwap) Name() string { return "nvim-swap" }

func swapDir(cfg domain.Config) string {
	return filepath.Join(cfg.Home, ".local", "share", "nvim", "swap")
}

func (p *NvimSwap) Check(_ context.Context, cfg domain.Config) (domain.Result, error) {
	dir := swapDir(cfg)
	res := domain.Result{Title: fmt.Sprintf("NeoVim swap files [rm %s/*]", dir)}
	p.found = nil

	entries, err := readDirIfExists(dir)
	if err != nil {
		return res, fmt.Errorf("reading swap directory: %w", err)
	}
	for _, e := range entries {
		p.found = append(p.found, filepath.Join(dir, e.Name()))
	}

	res.Content = fmt.Sprintf("%d files", len(p.found))
	res.FixAvailable = len(p.found) > 0
	return res, nil
}

func (p *NvimSwap) DescribeFix(domain.Config) string {
	names := make([]string, 0, len(p.found))
	for _, f := range p.found {
		names = append(names, filepath.Base(f))
	}
	return fmt.Sprintf("delete %d swap files: %s", len(p.found), strings.Join(names, " "))
}

func (p *NvimSwap) ApplyFix(ctx context.Context, _ domain.Config) error {
	return removeAll(ctx, p.found)
}

// readDirIfExists treats a missing directory as empty.
func readDirIfExists(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return entries, err
}

// diskSize sums the sizes of regular files under path without following links.
func diskSize(path string) (uint64, error) {
	var total uint64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += uint64(info.Size())
		return nil
	})
	return total, err
}

// removeAll deletes every path and reports all failures together.
func removeAll(ctx context.Context, paths []string) error {
	logger := zerolog.Ctx(ctx)
	var errs []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, err)
			continue
		}
		logger.Debug().Str("path", path).Msg("removed")
	}
	return errors.Join(errs...)
}
