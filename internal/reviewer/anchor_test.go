package reviewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxbolgarin/critic/internal/diff"
	"github.com/maxbolgarin/critic/internal/model"
)

func TestAnchorComment(t *testing.T) {
	file := &model.FileDiff{NewPath: "internal/api/server.go"}
	hunk := &model.Hunk{
		Changes: []model.LineChange{
			{Kind: model.LineContext, OldLine: 4, NewLine: 4},
			{Kind: model.LineAdded, NewLine: 5},
			{Kind: model.LineRemoved, OldLine: 5},
			{Kind: model.LineAdded, NewLine: 6},
			{Kind: model.LineContext, OldLine: 6, NewLine: 7},
		},
	}

	comment, ok := anchorComment(file, hunk, "use a timeout here")
	require.True(t, ok)
	assert.Equal(t, "internal/api/server.go", comment.Path)
	assert.Equal(t, 6, comment.Line)
	assert.Equal(t, "use a timeout here", comment.Body)
}

func TestAnchorCommentDeletedFile(t *testing.T) {
	file := &model.FileDiff{OldPath: "legacy/cleanup.go", IsDeleted: true}
	hunk := &model.Hunk{
		Changes: []model.LineChange{
			{Kind: model.LineRemoved, OldLine: 1},
			{Kind: model.LineRemoved, OldLine: 2},
		},
	}

	comment, ok := anchorComment(file, hunk, "anything")
	assert.False(t, ok)
	assert.Nil(t, comment)
}

func TestAnchorCommentEmptyHunk(t *testing.T) {
	_, ok := anchorComment(&model.FileDiff{NewPath: "a.go"}, &model.Hunk{}, "text")
	assert.False(t, ok)
}

// TestAnchorCommentRoundTrip parses a real diff and checks that every
// critique lands on the last added destination line of its hunk.
func TestAnchorCommentRoundTrip(t *testing.T) {
	diffText := `diff --git a/internal/api/server.go b/internal/api/server.go
index 83c41bd..9f2c1aa 100644
--- a/internal/api/server.go
+++ b/internal/api/server.go
@@ -5,5 +5,6 @@
 import (
 	"fmt"
+	"net/http"
 	"os"
 )
 
@@ -20,4 +21,7 @@ func run() error {
 func run() error {
 	srv := newServer()
-	return srv.listen()
+	if err := srv.listen(); err != nil {
+		return fmt.Errorf("listen: %w", err)
+	}
+	return nil
 }
`

	files := diff.NewParser().Parse(diffText)
	require.Len(t, files, 1)
	require.Len(t, files[0].Hunks, 2)

	first, ok := anchorComment(files[0], files[0].Hunks[0], "import critique")
	require.True(t, ok)
	assert.Equal(t, "internal/api/server.go", first.Path)
	assert.Equal(t, 7, first.Line)

	second, ok := anchorComment(files[0], files[0].Hunks[1], "error handling critique")
	require.True(t, ok)
	assert.Equal(t, "internal/api/server.go", second.Path)
	assert.Equal(t, 26, second.Line)
}
