// Package gitrepo adapts go-git to the narrow read-only surface the
// matching engine needs: root discovery, per-path history enumeration,
// historical blob retrieval and ancestry queries.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Revision identifies one point in the repository's history
type Revision struct {
	Hash plumbing.Hash
}

// Hex returns the full hex form of the revision hash
func (r Revision) Hex() string {
	return r.Hash.String()
}

// IsZero reports whether the revision is unset
func (r Revision) IsZero() bool {
	return r.Hash.IsZero()
}

// ParseRevision builds a Revision from a full hex hash
func ParseRevision(hex string) Revision {
	return Revision{Hash: plumbing.NewHash(hex)}
}

// Repo provides read-only access to one git repository
type Repo struct {
	repo *git.Repository
	root string
}

// Open ascends parent directories from path until a .git directory is
// found and opens the repository. Returns ErrNotARepository when no
// repository exists at or above path.
func Open(path string) (*Repo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: no repository at or above %s", ErrNotARepository, absPath)
		}
		return nil, WrapError(err, "failed to open repository")
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, WrapError(err, "failed to resolve worktree")
	}

	return &Repo{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Root returns the absolute path of the repository working tree root
func (r *Repo) Root() string {
	return r.root
}

// Subfolder returns the slash-separated path of the given directory
// relative to the repository root ("" when they are the same). It fails
// when path lies outside the repository.
func (r *Repo) Subfolder(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	rel, err := filepath.Rel(r.root, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside repository root %s", absPath, r.root)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// WorktreePath returns the absolute on-disk path of a repository-relative
// (slash-separated) path in the checked-out working tree
func (r *Repo) WorktreePath(repoRel string) string {
	return filepath.Join(r.root, filepath.FromSlash(repoRel))
}

// Head returns the revision the working tree is checked out at
func (r *Repo) Head() (Revision, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return Revision{}, WrapError(err, "failed to resolve HEAD")
	}
	return Revision{Hash: ref.Hash()}, nil
}

// RevisionsTouching lists the revisions that modified the given
// repository-relative path, newest first. History is enumerated per path:
// whole-repository log walks would be prohibitively expensive at archive
// scale.
func (r *Repo) RevisionsTouching(ctx context.Context, repoRel string) ([]Revision, error) {
	iter, err := r.repo.Log(&git.LogOptions{FileName: &repoRel})
	if err != nil {
		return nil, WrapError(err, "failed to enumerate history")
	}
	defer iter.Close()

	var revisions []Revision
	err = iter.ForEach(func(c *object.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		revisions = append(revisions, Revision{Hash: c.Hash})
		return nil
	})
	if err != nil {
		return nil, WrapError(err, "failed to iterate history")
	}

	return revisions, nil
}

// ReadBlob returns the content of the repository-relative path as it was
// at the given revision. Returns ErrPathNotInRevision when the path is
// absent from that revision's tree.
func (r *Repo) ReadBlob(rev Revision, repoRel string) ([]byte, error) {
	commit, err := r.repo.CommitObject(rev.Hash)
	if err != nil {
		return nil, WrapError(err, "failed to load commit")
	}

	file, err := commit.File(repoRel)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s at %s", ErrPathNotInRevision, repoRel, rev.Hex())
		}
		return nil, WrapError(err, "failed to look up blob")
	}

	reader, err := file.Reader()
	if err != nil {
		return nil, WrapError(err, "failed to open blob")
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, WrapError(err, "failed to read blob")
	}
	return content, nil
}

// IsAncestor reports whether a is a proper or equal ancestor of b
func (r *Repo) IsAncestor(a, b Revision) (bool, error) {
	if a.Hash == b.Hash {
		return true, nil
	}

	commitA, err := r.repo.CommitObject(a.Hash)
	if err != nil {
		return false, WrapError(err, "failed to load commit")
	}
	commitB, err := r.repo.CommitObject(b.Hash)
	if err != nil {
		return false, WrapError(err, "failed to load commit")
	}

	ok, err := commitA.IsAncestor(commitB)
	if err != nil {
		return false, WrapError(err, "ancestry query failed")
	}
	return ok, nil
}
