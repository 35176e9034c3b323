package history

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/schema"
)

// ErrDirtyWorkTree is returned when a historical checkout is required but
// the working tree has uncommitted changes. Checking out anyway would risk
// losing unsaved work, so the run must stop before any checkout happens.
var ErrDirtyWorkTree = errors.New("uncommitted changes detected; commit or stash them before requesting a historical snapshot")

// Snapshot computes currently-attributable lines of code per author for a
// repository as of a target date, using git blame over the era's source
// directories. When the target date is not today, the working tree is
// temporarily switched to the resolved revision and restored afterwards.
type Snapshot struct {
	client contract.GitClient
	cfg    *contract.Config
}

// NewSnapshot creates a snapshot analyzer.
func NewSnapshot(client contract.GitClient, cfg *contract.Config) *Snapshot {
	return &Snapshot{client: client, cfg: cfg}
}

// CountLines tallies blame authorship for every blame-eligible file under
// the era directories as of the given date. It returns the per-author line
// counts and a version tag of the form "<era>@<date>".
//
// Invariants:
//   - the revision is resolved before any checkout happens;
//   - a dirty working tree fails the run before any checkout happens;
//   - once checked out, the original reference is restored unconditionally,
//     even when individual blame operations fail.
func (s *Snapshot) CountLines(ctx context.Context, date time.Time, now time.Time) (schema.AuthorCounts, string, error) {
	repo := s.cfg.RepoPath
	era := s.cfg.EraFor(date)
	version := fmt.Sprintf("%s@%s", era.Name, date.Format(contract.DateFormat))

	if !sameDay(date, now) {
		restore, err := s.checkoutAt(ctx, date)
		if err != nil {
			return nil, "", err
		}
		if restore != nil {
			defer restore()
		}
	}

	counts := make(schema.AuthorCounts)
	for _, dir := range era.Dirs {
		files, err := collectSourceFiles(repo, dir, s.cfg.Extensions)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("cannot walk %s", dir), err)
			continue
		}
		for _, file := range files {
			out, err := s.client.BlameFile(ctx, repo, file)
			if err != nil {
				// A single unblameable file must not abort the run.
				contract.LogWarn(fmt.Sprintf("blame failed for %s, skipping", file), err)
				continue
			}
			tallyBlameAuthors(out, counts)
		}
	}

	return counts, version, nil
}

// checkoutAt resolves and checks out the most recent revision at or before
// the date. The returned restore func switches back to the original
// reference; it is nil when no checkout happened.
func (s *Snapshot) checkoutAt(ctx context.Context, date time.Time) (func(), error) {
	repo := s.cfg.RepoPath

	// Resolve the target revision first: a failure here must never leave
	// the working tree somewhere unexpected.
	rev, err := s.client.RevBefore(ctx, repo, date)
	if err != nil {
		contract.LogWarn("revision resolution failed, analyzing current tree", err)
		return nil, nil
	}
	if rev == "" {
		contract.LogWarn(fmt.Sprintf("no revision found before %s, analyzing current tree", date.Format(contract.DateFormat)), nil)
		return nil, nil
	}

	clean, err := s.client.IsWorkTreeClean(ctx, repo)
	if err != nil {
		contract.LogWarn("cannot determine working tree status, analyzing current tree", err)
		return nil, nil
	}
	if !clean {
		return nil, ErrDirtyWorkTree
	}

	origRef, err := s.client.CurrentRef(ctx, repo)
	if err != nil {
		contract.LogWarn("cannot determine current reference, analyzing current tree", err)
		return nil, nil
	}

	if err := s.client.Checkout(ctx, repo, rev); err != nil {
		contract.LogWarn(fmt.Sprintf("checkout of %s failed, analyzing current tree", rev), err)
		return nil, nil
	}

	return func() {
		if err := s.client.Checkout(ctx, repo, origRef); err != nil {
			contract.LogWarn(fmt.Sprintf("failed to restore reference %s", origRef), err)
		}
	}, nil
}

// collectSourceFiles walks one era directory and returns repo-relative paths
// of files matching the blame-eligible extensions. A directory that does not
// exist at the analyzed revision yields no files and no error.
func collectSourceFiles(repo, dir string, extensions []string) ([]string, error) {
	root := filepath.Join(repo, dir)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasExtension(path, extensions) {
			return nil
		}
		rel, err := filepath.Rel(repo, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// hasExtension reports whether the path ends in one of the extensions.
func hasExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// tallyBlameAuthors counts `author ` lines of line-porcelain blame output.
// Porcelain emits one author header per source line, so the tally equals
// the number of lines currently attributed to each author.
func tallyBlameAuthors(out []byte, counts schema.AuthorCounts) {
	const prefix = "author "
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, prefix) {
			author := strings.TrimSpace(line[len(prefix):])
			if author != "" {
				counts[author]++
			}
		}
	}
}

// sameDay reports whether two times fall on the same calendar day in UTC.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
