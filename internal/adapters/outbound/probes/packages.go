package probes

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/archtidy/archtidy/internal/domain"
)

// LastInstalled lists the most recently installed packages that are still
// explicitly installed, newest first. Requires pacman 5.2+ log format.
type LastInstalled struct {
	domain.NoFix
	runner domain.CommandRunner
}

func (p *LastInstalled) Name() string { return "last-installed" }

func (p *LastInstalled) Check(ctx context.Context, cfg domain.Config) (domain.Result, error) {
	limit := cfg.Limit(domain.CategoryPackages)
	res := domain.Result{Title: fmt.Sprintf("Last %d explicitly installed packages [yay -Rns <pkg>]", limit)}

	out, err := p.runner.Output(ctx, "pacman", "-Qqe")
	if err != nil {
		return res, fmt.Errorf("listing explicit packages: %w", err)
	}
	installed := make(map[string]bool)
	for _, name := range domain.NonEmptyLines(string(out)) {
		installed[strings.TrimSpace(name)] = true
	}

	lines, err := readLines(cfg.PacmanLog)
	if err != nil {
		return res, fmt.Errorf("reading pacman log: %w", err)
	}

	seen := make(map[string]bool)
	var found []string
	for i := len(lines) - 1; i >= 0 && len(found) < limit; i-- {
		fields := strings.Fields(lines[i])
		if len(fields) < 5 || fields[2] != "installed" {
			continue
		}
		pkg := fields[3]
		if !installed[pkg] || seen[pkg] {
			continue
		}
		seen[pkg] = true
		found = append(found, fmt.Sprintf("%s %s %s", fields[0], pkg, fields[4]))
	}

	res.Content = strings.Join(found, "\n")
	return res, nil
}

// Orphans lists packages installed as dependencies that nothing requires.
type Orphans struct {
	runner domain.CommandRunner
	found  []string
}

func (p *Orphans) Name() string { return "orphans" }

func (p *Orphans) Check(ctx context.Context, cfg domain.Config) (domain.Result, error) {
	res := domain.Result{Title: "Orphan packages [pacman -Rns <pkg>]"}
	p.found = nil

	out, err := p.runner.Output(ctx, "pacman", "-Qqtd")
	if err != nil {
		// pacman exits 1 with no output when there is nothing to list.
		if domain.ExitCodeOf(err) != 1 || strings.TrimSpace(string(out)) != "" {
			return res, fmt.Errorf("listing orphans: %w", err)
		}
	}

	for _, line := range domain.NonEmptyLines(string(out)) {
		p.found = append(p.found, strings.TrimSpace(line))
	}
	res.Content = strings.Join(p.found, "\n")
	res.FixAvailable = len(p.found) > 0
	return res, nil
}

func (p *Orphans) DescribeFix(domain.Config) string {
	return fmt.Sprintf("remove %d orphan packages: %s", len(p.found), strings.Join(p.found, " "))
}

func (p *Orphans) ApplyFix(ctx context.Context, cfg domain.Config) error {
	if len(p.found) == 0 {
		return domain.ErrNoFix
	}
	args := append([]string{"-Rns", "--noconfirm"}, p.found...)
	name, args := cfg.Command("pacman", args...)
	return p.runner.Run(ctx, name, args...)
}

// PacmanCache reports what paccache would remove from the package cache.
type PacmanCache struct {
	runner domain.CommandRunner
}

func (p *PacmanCache) Name() string { return "pacman-cache" }

func (p *PacmanCache) Check(ctx context.Context, _ domain.Config) (domain.Result, error) {
	res := domain.Result{Title: "Cache cleaning [paccache -r]"}

	out, err := p.runner.Output(ctx, "paccache", "-d", "-v", "--nocolor")
	if err != nil {
		return res, fmt.Errorf("dry-running paccache: %w", err)
	}
	res.Content = string(out)
	res.FixAvailable = strings.TrimSpace(res.Content) != "" &&
		!strings.Contains(strings.ToLower(res.Content), "no candidate")
	return res, nil
}

func (p *PacmanCache) DescribeFix(domain.Config) string {
	return "remove all but the 3 most recent versions of each cached package"
}

func (p *PacmanCache) ApplyFix(ctx context.Context, cfg domain.Config) error {
	name, args := cfg.Command("paccache", "-r")
	return p.runner.Run(ctx, name, args...)
}

// DevelUpdates lists VCS (-git, -svn, ...) AUR packages with newer upstream
// commits. yay is given a closed stdin so it stops at its confirmation prompt.
type DevelUpdates struct {
	runner domain.CommandRunner
	found  []string
}

func (p *DevelUpdates) Name() string { return "devel-updates" }

func (p *DevelUpdates) Check(ctx context.Context, _ domain.Config) (domain.Result, error) {
	res := domain.Result{Title: "Developer updates [yay -Syu --devel]"}
	p.found = nil

	out, err := p.runner.Output(ctx, "yay", "-Sua", "--confirm", "--devel")
	if err != nil {
		// yay fails once it hits EOF at the prompt; the listing is already out.
		if domain.ExitCodeOf(err) < 0 {
			return res, fmt.Errorf("querying devel updates: %w", err)
		}
		zerolog.Ctx(ctx).Debug().Err(err).Msg("yay exited after listing updates")
	}

	for _, line := range domain.NonEmptyLines(string(out)) {
		if strings.Contains(line, "devel/") {
			p.found = append(p.found, strings.TrimSpace(line))
		}
	}
	res.Content = strings.Join(p.found, "\n")
	res.FixAvailable = len(p.found) > 0
	return res, nil
}

func (p *DevelUpdates) DescribeFix(domain.Config) string {
	return fmt.Sprintf("rebuild %d devel packages", len(p.found))
}

// ApplyFix runs yay unprivileged; it elevates on its own.
func (p *DevelUpdates) ApplyFix(ctx context.Context, _ domain.Config) error {
	return p.runner.Run(ctx, "yay", "-Sua", "--devel", "--noconfirm")
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
