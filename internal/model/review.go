package model

// ReviewComment is a single inline comment anchored to a line of the
// destination file.
type ReviewComment struct {
	Body string `json:"body"`
	Path string `json:"path"`
	Line int    `json:"line"`
}

// ReviewResult is the accounting of one review run.
type ReviewResult struct {
	ProcessedFiles  int  `json:"processed_files"`
	SkippedFiles    int  `json:"skipped_files"`
	AnalyzedHunks   int  `json:"analyzed_hunks"`
	FailedHunks     int  `json:"failed_hunks"`
	CommentsCreated int  `json:"comments_created"`
	Submitted       bool `json:"submitted"`
	IsSuccess       bool `json:"is_success"`

	// Errors collects non-fatal per-hunk failures. They are logged and
	// counted in FailedHunks without failing the run.
	Errors []error `json:"-"`
}
