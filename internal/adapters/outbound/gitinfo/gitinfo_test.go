package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archtidy/archtidy/internal/adapters/outbound/gitinfo"
)

func TestGitInfo_IsGitRepo_True(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	assert.True(t, gitinfo.New().IsGitRepo(dir))
}

func TestGitInfo_IsGitRepo_False(t *testing.T) {
	assert.False(t, gitinfo.New().IsGitRepo(t.TempDir()))
}

func TestGitInfo_Status_CleanAfterCommit(t *testing.T) {
	dir := commitFile(t, "file.txt", "hello")

	rs, err := gitinfo.New().Status(dir)
	require.NoError(t, err)
	assert.False(t, rs.Dirty())
	assert.Equal(t, dir, rs.Path)
	assert.NotEmpty(t, rs.Branch)
}

func TestGitInfo_Status_CountsChanges(t *testing.T) {
	dir := commitFile(t, "file.txt", "hello")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("changed"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("y"), 0644))

	rs, err := gitinfo.New().Status(dir)
	require.NoError(t, err)
	assert.True(t, rs.Dirty())
	assert.Equal(t, 1, rs.Modified)
	assert.Equal(t, 2, rs.Untracked)
}

func TestGitInfo_Status_NoCommits(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))

	rs, err := gitinfo.New().Status(dir)
	require.NoError(t, err)
	assert.Empty(t, rs.Branch)
	assert.Equal(t, 1, rs.Untracked)
}

func TestGitInfo_Status_NotGitRepo(t *testing.T) {
	_, err := gitinfo.New().Status(t.TempDir())
	assert.Error(t, err)
}

func commitFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	_, err = wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}
