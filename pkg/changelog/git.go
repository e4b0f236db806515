package changelog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Git source defaults.
const (
	DefaultRevision    = "HEAD"
	DefaultIndentWidth = 4
)

// ErrNoRepository is returned when neither a path nor an open repository is set.
var ErrNoRepository = errors.New("git source needs a repository path")

// GitSource builds a change log by blaming every file of a revision: each
// surviving line becomes one record attributed to the commit that last
// touched it.
type GitSource struct {
	// Path of the repository on disk. Ignored when Repository is set.
	Path string
	// Repository is an already opened repository.
	Repository *git.Repository
	// Revision to blame. Defaults to HEAD.
	Revision string
	// Include restricts files to those matching any doublestar pattern.
	Include []string
	// IndentWidth is the number of spaces counted as one nesting level.
	IndentWidth int
	Location    *time.Location
	// Logger receives a warning for every file that cannot be blamed.
	Logger *slog.Logger

	blame func(c *object.Commit, path string) (*git.BlameResult, error)
}

// Name returns the repository path and revision.
func (s GitSource) Name() string {
	return "git:" + s.Path + "@" + s.revision()
}

// Records blames the revision and returns one record per line. A file that
// cannot be inspected or blamed is skipped with a warning.
func (s GitSource) Records(ctx context.Context) ([]ChangeRecord, error) {
	repo, err := s.open()
	if err != nil {
		return nil, err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(s.revision()))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", s.revision(), err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", hash, err)
	}

	paths, err := s.blamePaths(ctx, commit)
	if err != nil {
		return nil, err
	}

	blame := s.blame
	if blame == nil {
		blame = git.Blame
	}

	var records []ChangeRecord

	for _, path := range paths {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("blame: %w", ctxErr)
		}

		result, blameErr := blame(commit, path)
		if blameErr != nil {
			s.logger().WarnContext(ctx, "skipping file that cannot be blamed", "path", path, "error", blameErr)

			continue
		}

		for i, line := range result.Lines {
			records = append(records, s.record(path, i+1, line))
		}
	}

	return records, nil
}

func (s GitSource) open() (*git.Repository, error) {
	if s.Repository != nil {
		return s.Repository, nil
	}

	if s.Path == "" {
		return nil, ErrNoRepository
	}

	repo, err := git.PlainOpenWithOptions(s.Path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", s.Path, err)
	}

	return repo, nil
}

func (s GitSource) blamePaths(ctx context.Context, commit *object.Commit) ([]string, error) {
	files, err := commit.Files()
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	var paths []string

	err = files.ForEach(func(f *object.File) error {
		if !s.included(f.Name) {
			return nil
		}

		binary, binErr := f.IsBinary()
		if binErr != nil {
			s.logger().WarnContext(ctx, "skipping file that cannot be read", "path", f.Name, "error", binErr)

			return nil
		}

		if !binary {
			paths = append(paths, f.Name)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

func (s GitSource) included(path string) bool {
	if len(s.Include) == 0 {
		return true
	}

	for _, pattern := range s.Include {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}

	return false
}

func (s GitSource) record(path string, number int, line *git.Line) ChangeRecord {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}

	when := line.Date.In(loc)

	return ChangeRecord{
		CommitID:     line.Hash.String(),
		FilePath:     path,
		LineNumber:   number,
		LineLength:   utf8.RuneCountInString(line.Text),
		NestingDepth: IndentDepth(line.Text, s.indentWidth()),
		Author:       line.AuthorName,
		Raw: RawTime{
			Datetime: when.Format(time.RFC3339),
			Date:     when.Format(time.DateOnly),
			Time:     when.Format(time.TimeOnly),
			Timezone: when.Format("-07:00"),
		},
		Timestamp: when,
	}
}

func (s GitSource) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}

	return s.Logger
}

func (s GitSource) revision() string {
	if s.Revision == "" {
		return DefaultRevision
	}

	return s.Revision
}

func (s GitSource) indentWidth() int {
	if s.IndentWidth <= 0 {
		return DefaultIndentWidth
	}

	return s.IndentWidth
}

// IndentDepth estimates the nesting depth of a source line from its leading
// whitespace: every tab is one level and every width spaces are one level.
// Blank lines have depth 0.
func IndentDepth(text string, width int) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	if width <= 0 {
		width = DefaultIndentWidth
	}

	tabs, spaces := 0, 0

	for _, r := range text {
		switch r {
		case '\t':
			tabs++
		case ' ':
			spaces++
		default:
			return tabs + spaces/width
		}
	}

	return tabs + spaces/width
}
