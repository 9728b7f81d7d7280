// Package probes holds the maintenance probes for an Arch Linux workstation.
//
// Every probe records what it found during Check in its own fields, and
// ApplyFix acts on exactly that snapshot. A later Check replaces the snapshot.
// The CLI and the MCP server still build a fresh set with Default per run.
package probes

import "github.com/archtidy/archtidy/internal/domain"

// Deps are the host capabilities the probes use.
type Deps struct {
	Runner domain.CommandRunner
	Repos  domain.RepoInspector
}

// Default returns a fresh instance of every probe in display order.
func Default(deps Deps) []domain.Probe {
	return []domain.Probe{
		NewLastInstalled(deps.Runner),
		NewOrphans(deps.Runner),
		NewPacmanCache(deps.Runner),
		&Trash{},
		NewDevelUpdates(deps.Runner),
		&NvimSwap{},
		NewDiskUsage(deps.Runner),
		NewDirtyRepos(deps.Repos),
	}
}

func NewLastInstalled(runner domain.CommandRunner) *LastInstalled {
	return &LastInstalled{runner: runner}
}

func NewOrphans(runner domain.CommandRunner) *Orphans { return &Orphans{runner: runner} }

func NewPacmanCache(runner domain.CommandRunner) *PacmanCache {
	return &PacmanCache{runner: runner}
}

func NewDevelUpdates(runner domain.CommandRunner) *DevelUpdates {
	return &DevelUpdates{runner: runner}
}

func NewDiskUsage(runner domain.CommandRunner) *DiskUsage { return &DiskUsage{runner: runner} }

func NewDirtyRepos(repos domain.RepoInspector) *DirtyRepos { return &DirtyRepos{repos: repos} }

// Names lists every registered probe name.
func Names() []string {
	return domain.ProbeNames(Default(Deps{}))
}

// Enabled drops the probes cfg skips.
func Enabled(probes []domain.Probe, cfg domain.Config) []domain.Probe {
	out := make([]domain.Probe, 0, len(probes))
	for _, p := range probes {
		if !cfg.IsSkipped(p.Name()) {
			out = append(out, p)
		}
	}
	return out
}

// Only keeps the probe called name, if any.
func Only(probes []domain.Probe, name string) []domain.Probe {
	for _, p := range probes {
		if p.Name() == name {
			return []domain.Probe{p}
		}
	}
	return nil
}
