package reviewer

import (
	"github.com/maxbolgarin/critic/internal/model"
)

// anchorComment binds a critique to the last added line of the hunk, which
// is the closest destination line to the change being discussed. Code hosts
// accept inline comments only on lines that exist in the destination file,
// so a hunk with no added lines yields no comment.
func anchorComment(file *model.FileDiff, hunk *model.Hunk, critique string) (*model.ReviewComment, bool) {
	for i := len(hunk.Changes) - 1; i >= 0; i-- {
		if hunk.Changes[i].Kind != model.LineAdded {
			continue
		}
		return &model.ReviewComment{
			Body: critique,
			Path: file.Path(),
			Line: hunk.Changes[i].NewLine,
		}, true
	}
	return nil, false
}
