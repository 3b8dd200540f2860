package diff

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/critic/internal/model"
)

// Filter drops files whose destination path matches an exclusion pattern.
//
// Patterns are matched against the full destination path, case sensitive,
// with * and ** crossing directory separators. A file is excluded when any
// pattern matches.
type Filter struct {
	globs    []glob.Glob
	patterns []string
	log      logze.Logger
}

// NewFilter compiles the exclusion patterns. An invalid pattern is a
// configuration error and fails the whole filter instead of silently
// matching nothing.
func NewFilter(patterns []string) (*Filter, error) {
	f := &Filter{
		log: logze.With("component", "filter"),
	}
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errm.Wrap(err, "failed to compile exclusion pattern", "pattern", pattern)
		}
		f.globs = append(f.globs, g)
		f.patterns = append(f.patterns, pattern)
	}
	return f, nil
}

// Apply returns the files that survive exclusion, preserving order.
// Deleted files carry no destination path and always pass.
func (f *Filter) Apply(files []*model.FileDiff) []*model.FileDiff {
	if len(f.globs) == 0 {
		return files
	}
	out := make([]*model.FileDiff, 0, len(files))
	for _, file := range files {
		if file.NewPath != "" && f.IsExcluded(file.NewPath) {
			f.log.Debug("file excluded from review", "file", file.NewPath)
			continue
		}
		out = append(out, file)
	}
	return out
}

// IsExcluded reports whether path matches any exclusion pattern.
func (f *Filter) IsExcluded(path string) bool {
	for _, g := range f.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Patterns returns the compiled pattern list.
func (f *Filter) Patterns() []string {
	return f.patterns
}
