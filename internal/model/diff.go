package model

// LineKind classifies a single line inside a hunk.
type LineKind string

const (
	LineAdded   LineKind = "added"
	LineRemoved LineKind = "removed"
	LineContext LineKind = "context"
)

// LineChange is one classified line of a hunk. OldLine and NewLine are
// 1-based line numbers in the source and destination files; a line number is
// zero on the side the line does not exist on.
type LineChange struct {
	Kind    LineKind `json:"kind"`
	Content string   `json:"content"`
	OldLine int      `json:"old_line"`
	NewLine int      `json:"new_line"`
}

// Hunk is one contiguous change region of a file diff.
type Hunk struct {
	// Header is the raw "@@ -a,b +c,d @@ ..." line.
	Header string `json:"header"`

	OldStart int `json:"old_start"`
	OldLines int `json:"old_lines"`
	NewStart int `json:"new_start"`
	NewLines int `json:"new_lines"`

	Changes []LineChange `json:"changes"`
}

// FileDiff is the parsed diff of a single file.
type FileDiff struct {
	// OldPath is the source path, empty for new files.
	OldPath string `json:"old_path"`

	// NewPath is the destination path, empty for deleted files.
	NewPath string `json:"new_path"`

	// Diff is the raw diff section this file was parsed from.
	Diff string `json:"diff"`

	IsNew     bool `json:"is_new"`
	IsDeleted bool `json:"is_deleted"`
	IsRenamed bool `json:"is_renamed"`
	IsBinary  bool `json:"is_binary"`

	Hunks []*Hunk `json:"hunks"`
}

// Path returns the path the file is reviewed under: the destination path,
// falling back to the source path for deleted files.
func (f *FileDiff) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}
