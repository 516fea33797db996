package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Source is one program text plus the name used in diagnostics.
type Source struct {
	Name string
	Text string
}

// LoadFile reads a script from disk.
func LoadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("source: read %s: %w", path, err)
	}
	return Source{Name: path, Text: string(data)}, nil
}

// LoadGitSource reads path as it was at rev in the repository at repoDir.
// rev is anything go-git can resolve: a full or short hash, a branch, a tag
// or an expression such as HEAD~1.
func LoadGitSource(repoDir, rev, path string) (Source, error) {
	rev = strings.TrimSpace(rev)
	if rev == "" {
		rev = "HEAD"
	}
	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		return Source{}, fmt.Errorf("source: open repository %s: %w", repoDir, err)
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return Source{}, fmt.Errorf("source: resolve %s in %s: %w", rev, repoDir, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return Source{}, fmt.Errorf("source: load commit %s: %w", hash, err)
	}
	treePath := filepath.ToSlash(filepath.Clean(path))
	file, err := commit.File(treePath)
	if err != nil {
		return Source{}, fmt.Errorf("source: %s at %s: %w", treePath, rev, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return Source{}, fmt.Errorf("source: read %s at %s: %w", treePath, rev, err)
	}
	return Source{Name: treePath + "@" + rev, Text: contents}, nil
}
