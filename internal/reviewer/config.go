package reviewer

import (
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

const (
	defaultConcurrency  = 4
	defaultMaxFiles     = 100
	defaultMaxFileBytes = 100_000
)

// Config controls which files are reviewed and how hunks are analyzed.
type Config struct {
	// ExcludePatterns are glob patterns matched against file paths.
	// A matching file is skipped entirely.
	ExcludePatterns []string `yaml:"exclude_patterns" env:"REVIEW_EXCLUDE"`

	// MaxFiles caps the number of files analyzed in one run.
	MaxFiles int `yaml:"max_files" env:"REVIEW_MAX_FILES"`

	// MaxFileBytes caps the diff size of a single file, larger files are skipped.
	MaxFileBytes int `yaml:"max_file_bytes" env:"REVIEW_MAX_FILE_BYTES"`

	// Concurrency is the number of hunks analyzed in parallel.
	Concurrency int `yaml:"concurrency" env:"REVIEW_CONCURRENCY"`

	Verbose bool `yaml:"verbose" env:"REVIEW_VERBOSE"`
}

func (cfg *Config) PrepareAndValidate() error {
	cfg.MaxFiles = lang.Check(cfg.MaxFiles, defaultMaxFiles)
	cfg.MaxFileBytes = lang.Check(cfg.MaxFileBytes, defaultMaxFileBytes)
	cfg.Concurrency = lang.Check(cfg.Concurrency, defaultConcurrency)

	if cfg.MaxFiles < 0 {
		return errm.New("max_files cannot be negative")
	}
	if cfg.MaxFileBytes < 0 {
		return errm.New("max_file_bytes cannot be negative")
	}
	if cfg.Concurrency < 0 {
		return errm.New("concurrency cannot be negative")
	}

	return nil
}
