package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/archtidy/archtidy/internal/domain"
)

// GitInfoAdapter implements domain.RepoInspector using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func (g *GitInfoAdapter) IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// Status counts modified and untracked paths in the worktree at path.
// Repositories without commits report an empty branch.
func (g *GitInfoAdapter) Status(path string) (domain.RepoStatus, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return domain.RepoStatus{}, fmt.Errorf("opening git repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return domain.RepoStatus{}, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return domain.RepoStatus{}, fmt.Errorf("getting status: %w", err)
	}

	rs := domain.RepoStatus{Path: path}
	if head, err := repo.Head(); err == nil {
		rs.Branch = head.Name().Short()
	}
	for _, fs := range status {
		switch {
		case fs.Worktree == git.Untracked:
			rs.Untracked++
		case fs.Worktree != git.Unmodified || fs.Staging != git.Unmodified:
			rs.Modified++
		}
	}
	return rs, nil
}
