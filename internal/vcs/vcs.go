// Package vcs provides a small git abstraction used by collectors that
// read commit history. Collectors prefer the native git binary for speed
// and fall back to go-git through this package when it is missing.
package vcs

import (
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit is one commit observation, reduced to what collectors consume.
type Commit struct {
	Hash        string
	AuthorName  string
	AuthorEmail string
	When        time.Time
}

// LogOptions configures the commit log query.
type LogOptions struct {
	Since *time.Time
}

// Repository provides access to git repository history.
type Repository interface {
	// Log calls fn for every commit reachable from HEAD, newest first.
	Log(opts *LogOptions, fn func(Commit) error) error
}

// Opener opens git repositories.
type Opener interface {
	PlainOpen(path string) (Repository, error)
}

// GitOpener opens repositories with go-git.
type GitOpener struct{}

// DefaultOpener returns the go-git backed opener.
func DefaultOpener() Opener {
	return &GitOpener{}
}

// PlainOpen opens an existing git repository.
func (o *GitOpener) PlainOpen(path string) (Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, err
	}
	return &gitRepository{repo: repo}, nil
}

type gitRepository struct {
	repo *git.Repository
}

func (r *gitRepository) Log(opts *LogOptions, fn func(Commit) error) error {
	gitOpts := &git.LogOptions{}
	if opts != nil && opts.Since != nil {
		gitOpts.Since = opts.Since
	}
	iter, err := r.repo.Log(gitOpts)
	if err != nil {
		return err
	}
	defer iter.Close()

	return iter.ForEach(func(c *object.Commit) error {
		return fn(Commit{
			Hash:        c.Hash.String(),
			AuthorName:  c.Author.Name,
			AuthorEmail: c.Author.Email,
			When:        c.Author.When,
		})
	})
}
