package match

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/romtools/romtrace/pkg/gitrepo"
	"github.com/romtools/romtrace/pkg/models"
)

// testRepo wraps an on-disk fixture repository built in-process with
// go-git; no git binary is needed.
type testRepo struct {
	t     *testing.T
	dir   string
	repo  *git.Repository
	wt    *git.Worktree
	clock time.Time
}

func setupTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err, "failed to init test repository")

	wt, err := repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	return &testRepo{
		t:     t,
		dir:   dir,
		repo:  repo,
		wt:    wt,
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// commitFile writes content to rel, stages it and commits, returning the
// revision. Commit timestamps advance monotonically.
func (tr *testRepo) commitFile(rel, content, msg string) gitrepo.Revision {
	tr.t.Helper()

	full := filepath.Join(tr.dir, filepath.FromSlash(rel))
	require.NoError(tr.t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(tr.t, os.WriteFile(full, []byte(content), 0644))

	_, err := tr.wt.Add(rel)
	require.NoError(tr.t, err, "failed to stage %s", rel)

	return tr.commit(msg)
}

// removeFile deletes rel from the worktree and commits the deletion
func (tr *testRepo) removeFile(rel, msg string) gitrepo.Revision {
	tr.t.Helper()

	_, err := tr.wt.Remove(rel)
	require.NoError(tr.t, err, "failed to remove %s", rel)

	return tr.commit(msg)
}

func (tr *testRepo) commit(msg string) gitrepo.Revision {
	tr.t.Helper()

	tr.clock = tr.clock.Add(time.Minute)
	hash, err := tr.wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "tester",
			Email: "tester@example.com",
			When:  tr.clock,
		},
	})
	require.NoError(tr.t, err, "failed to commit")

	return gitrepo.Revision{Hash: hash}
}

func (tr *testRepo) open() *gitrepo.Repo {
	tr.t.Helper()
	r, err := gitrepo.Open(tr.dir)
	require.NoError(tr.t, err)
	return r
}

// buildArchive materializes an archive directory from rel-path to content.
// A nil content value creates a directory.
func buildArchive(t *testing.T, files map[string][]byte) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if content == nil {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, content, 0644))
	}
	return root
}

// archiveEntry builds an entry for one file inside an archive root
func archiveEntry(t *testing.T, root, rel string) models.ArchiveEntry {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Lstat(full)
	require.NoError(t, err)

	return models.ArchiveEntry{
		RelativePath: rel,
		AbsolutePath: full,
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		IsDir:        info.IsDir(),
		IsSymlink:    info.Mode()&os.ModeSymlink != 0,
	}
}
