package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

func runCorpus(args []string) int {
	if len(args) != 2 {
		printUsage()
		return 1
	}
	if err := fetchCorpus(args[0], args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// fetchCorpus clones a corpus repository, or pulls when the target
// directory already holds a clone.
func fetchCorpus(url, dir string) error {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		repo, err := git.PlainOpen(dir)
		if err != nil {
			return fmt.Errorf("corpus: open %s: %w", dir, err)
		}
		worktree, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("corpus: %w", err)
		}
		err = worktree.Pull(&git.PullOptions{RemoteName: "origin"})
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("corpus: pull %s: %w", dir, err)
		}
		return nil
	}

	_, err := git.PlainClone(dir, false, &git.CloneOptions{
		URL:   url,
		Depth: 1,
	})
	if err != nil {
		return fmt.Errorf("corpus: clone %s: %w", url, err)
	}
	return nil
}
