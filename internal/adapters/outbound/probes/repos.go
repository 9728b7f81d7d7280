package probes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/archtidy/archtidy/internal/domain"
)

// maxRepoDepth bounds how far below a root repositories are searched for.
const maxRepoDepth = 3

// DirtyRepos lists git repositories under the configured roots that have
// uncommitted changes.
type DirtyRepos struct {
	domain.NoFix
	repos domain.RepoInspector
}

func (p *DirtyRepos) Name() string { return "dirty-repos" }

func (p *DirtyRepos) Check(ctx context.Context, cfg domain.Config) (domain.Result, error) {
	res := domain.Result{Title: "Repositories with uncommitted changes [git status]"}
	logger := zerolog.Ctx(ctx)

	var lines []string
	for _, root := range cfg.RepoRoots {
		paths, err := findRepos(ctx, root)
		if err != nil {
			return res, fmt.Errorf("searching %s: %w", root, err)
		}
		for _, path := range paths {
			if !p.repos.IsGitRepo(path) {
				continue
			}
			st, err := p.repos.Status(path)
			if err != nil {
				logger.Warn().Err(err).Str("repo", path).Msg("skipping repository")
				continue
			}
			if st.Dirty() {
				lines = append(lines, formatRepo(st))
			}
		}
	}

	res.Content = strings.Join(domain.Cap(lines, cfg.Limit(domain.CategoryRepos)), "\n")
	return res, nil
}

func formatRepo(st domain.RepoStatus) string {
	branch := ""
	if st.Branch != "" {
		branch = " (" + st.Branch + ")"
	}
	return fmt.Sprintf("%s%s: %d modified, %d untracked", st.Path, branch, st.Modified, st.Untracked)
}

// findRepos returns directories under root that contain a .git entry,
// in lexical order, without descending into them. A missing root is empty.
func findRepos(ctx context.Context, root string) ([]string, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var found []string
	base := strings.Count(filepath.Clean(root), string(filepath.Separator))
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != root && errors.Is(err, fs.ErrPermission) {
				return fs.SkipDir
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
			found = append(found, path)
			return fs.SkipDir
		}
		if strings.Count(filepath.Clean(path), string(filepath.Separator))-base >= maxRepoDepth {
			return fs.SkipDir
		}
		return nil
	})
	return found, err
}
