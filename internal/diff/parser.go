package diff

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/maxbolgarin/lang"

	"github.com/maxbolgarin/critic/internal/model"
)

const (
	gitFileHeaderPrefix = "diff --git "
	oldFileMarker       = "--- "
	newFileMarker       = "+++ "
	devNullPath         = "/dev/null"
)

var hunkHeaderRegexp = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parser converts unified diff text into per-file change records.
//
// It understands full git diffs with "diff --git" section headers and bare
// unified diffs where a file section starts directly with a "---"/"+++"
// pair, the format some hosts produce by concatenating per-file patches.
// Malformed pieces are skipped so one broken section never hides the rest
// of the diff.
type Parser struct{}

// NewParser returns a ready to use diff parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse splits raw unified diff text into files with classified hunks.
// Line numbers are tracked per side: added lines advance the new file
// counter, removed lines advance the old one, context lines advance both.
// Files without any hunk (binary, rename-only, mode-only changes) are
// dropped. Unparseable input yields an empty result, not an error.
func (p *Parser) Parse(diffText string) []*model.FileDiff {
	lines := strings.Split(diffText, "\n")

	var (
		files    []*model.FileDiff
		file     *model.FileDiff
		hunk     *model.Hunk
		rawLines []string
		oldLine  int
		newLine  int
	)

	flushHunk := func() {
		if hunk != nil && file != nil {
			file.Hunks = append(file.Hunks, hunk)
		}
		hunk = nil
	}
	flushFile := func() {
		flushHunk()
		if file == nil {
			return
		}
		if file.NewPath == "" && !file.IsDeleted {
			file.NewPath = file.OldPath
		}
		if file.OldPath == "" && !file.IsNew {
			file.OldPath = file.NewPath
		}
		if file.OldPath != "" && file.NewPath != "" && file.OldPath != file.NewPath {
			file.IsRenamed = true
		}
		if len(file.Hunks) > 0 {
			file.Diff = strings.Join(rawLines, "\n")
			files = append(files, file)
		}
		file = nil
		rawLines = nil
	}

	for i, line := range lines {
		if strings.HasPrefix(line, gitFileHeaderPrefix) {
			flushFile()
			file = &model.FileDiff{}
			rawLines = []string{line}
			continue
		}

		// A "---"/"+++" pair opens a new file section even without a git
		// header line. Inside a hunk such a pair means the next section
		// started, a lone "--- " line there is ordinary removed content.
		if strings.HasPrefix(line, oldFileMarker) &&
			nextLineHasPrefix(lines, i, newFileMarker) &&
			(file == nil || hunk != nil) {
			flushFile()
			file = &model.FileDiff{}
			rawLines = []string{line}
			if path, ok := cutDiffPath(line, oldFileMarker, "a/"); ok {
				file.OldPath = path
			} else {
				file.IsNew = true
			}
			continue
		}

		if file == nil {
			continue
		}
		rawLines = append(rawLines, line)

		if strings.HasPrefix(line, "@@") {
			m := hunkHeaderRegexp.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			flushHunk()
			hunk = &model.Hunk{
				Header:   line,
				OldStart: atoiOr(m[1], 1),
				OldLines: atoiOr(m[2], 1),
				NewStart: atoiOr(m[3], 1),
				NewLines: atoiOr(m[4], 1),
			}
			oldLine = hunk.OldStart
			newLine = hunk.NewStart
			continue
		}

		if hunk == nil {
			parseFileMetadata(file, line)
			continue
		}

		switch {
		case line == "" || strings.HasPrefix(line, `\`):
			// Blank separators and "\ No newline at end of file".
		case strings.HasPrefix(line, "+"):
			hunk.Changes = append(hunk.Changes, model.LineChange{
				Kind:    model.LineAdded,
				Content: line[1:],
				NewLine: newLine,
			})
			newLine++
		case strings.HasPrefix(line, "-"):
			hunk.Changes = append(hunk.Changes, model.LineChange{
				Kind:    model.LineRemoved,
				Content: line[1:],
				OldLine: oldLine,
			})
			oldLine++
		case strings.HasPrefix(line, " "):
			hunk.Changes = append(hunk.Changes, model.LineChange{
				Kind:    model.LineContext,
				Content: line[1:],
				OldLine: oldLine,
				NewLine: newLine,
			})
			oldLine++
			newLine++
		default:
			hunk.Changes = append(hunk.Changes, model.LineChange{
				Kind:    model.LineContext,
				Content: line,
				OldLine: oldLine,
				NewLine: newLine,
			})
			oldLine++
			newLine++
		}
	}
	flushFile()

	return files
}

// parseFileMetadata interprets the header lines between a file boundary and
// its first hunk.
func parseFileMetadata(file *model.FileDiff, line string) {
	switch {
	case strings.HasPrefix(line, oldFileMarker):
		if path, ok := cutDiffPath(line, oldFileMarker, "a/"); ok {
			file.OldPath = path
		} else {
			file.IsNew = true
		}
	case strings.HasPrefix(line, newFileMarker):
		if path, ok := cutDiffPath(line, newFileMarker, "b/"); ok {
			file.NewPath = path
		} else {
			file.IsDeleted = true
		}
	case strings.HasPrefix(line, "new file mode"):
		file.IsNew = true
	case strings.HasPrefix(line, "deleted file mode"):
		file.IsDeleted = true
	case strings.HasPrefix(line, "rename from "):
		file.IsRenamed = true
		file.OldPath = lang.Check(file.OldPath, strings.TrimPrefix(line, "rename from "))
	case strings.HasPrefix(line, "rename to "):
		file.IsRenamed = true
		file.NewPath = lang.Check(file.NewPath, strings.TrimPrefix(line, "rename to "))
	case strings.HasPrefix(line, "Binary files"):
		file.IsBinary = true
	}
}

// cutDiffPath extracts the path from a "--- a/path" or "+++ b/path" line.
// The second return is false for /dev/null.
func cutDiffPath(line, marker, prefix string) (string, bool) {
	path := strings.TrimPrefix(line, marker)
	path = strings.TrimSuffix(path, "\t")
	if path == devNullPath {
		return "", false
	}
	return strings.TrimPrefix(path, prefix), true
}

func nextLineHasPrefix(lines []string, i int, prefix string) bool {
	return i+1 < len(lines) && strings.HasPrefix(lines[i+1], prefix)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
