package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxbolgarin/critic/internal/model"
)

func TestFilterApply(t *testing.T) {
	filter, err := NewFilter([]string{"*_test.go", "vendor/**", "*.md"})
	require.NoError(t, err)

	files := []*model.FileDiff{
		{NewPath: "main.go"},
		{NewPath: "internal/diff/parser_test.go"},
		{NewPath: "vendor/github.com/pkg/errors/errors.go"},
		{NewPath: "docs/guide.md"},
		{NewPath: "src/readme.md.ts"},
		{NewPath: "internal/app/app.go"},
	}

	kept := filter.Apply(files)
	require.Len(t, kept, 3)
	assert.Equal(t, "main.go", kept[0].NewPath)
	assert.Equal(t, "src/readme.md.ts", kept[1].NewPath, "patterns anchor to the full path, not a substring")
	assert.Equal(t, "internal/app/app.go", kept[2].NewPath)

	assert.Equal(t, kept, filter.Apply(kept), "a second pass must change nothing")
}

func TestFilterPreservesOrder(t *testing.T) {
	filter, err := NewFilter([]string{"*.json"})
	require.NoError(t, err)

	files := []*model.FileDiff{
		{NewPath: "c.go"},
		{NewPath: "cfg.json"},
		{NewPath: "a.go"},
		{NewPath: "b.go"},
	}

	kept := filter.Apply(files)
	require.Len(t, kept, 3)
	assert.Equal(t, "c.go", kept[0].NewPath)
	assert.Equal(t, "a.go", kept[1].NewPath)
	assert.Equal(t, "b.go", kept[2].NewPath)
}

func TestFilterNoPatterns(t *testing.T) {
	filter, err := NewFilter(nil)
	require.NoError(t, err)

	files := []*model.FileDiff{{NewPath: "a.go"}, {NewPath: "b.md"}}
	assert.Len(t, filter.Apply(files), 2)
}

func TestFilterDeletedFilesPass(t *testing.T) {
	filter, err := NewFilter([]string{"**"})
	require.NoError(t, err)

	files := []*model.FileDiff{
		{NewPath: "", OldPath: "gone.go", IsDeleted: true},
		{NewPath: "present.go"},
	}

	kept := filter.Apply(files)
	require.Len(t, kept, 1)
	assert.True(t, kept[0].IsDeleted)
}

func TestFilterAnchoredToFullPath(t *testing.T) {
	filter, err := NewFilter([]string{"src/*.js"})
	require.NoError(t, err)

	assert.True(t, filter.IsExcluded("src/app.js"))
	assert.True(t, filter.IsExcluded("src/nested/app.js"))
	assert.False(t, filter.IsExcluded("src/app.jsx"))
	assert.False(t, filter.IsExcluded("other/app.js"))
}

func TestFilterCaseSensitive(t *testing.T) {
	filter, err := NewFilter([]string{"*.MD"})
	require.NoError(t, err)

	assert.False(t, filter.IsExcluded("readme.md"))
	assert.True(t, filter.IsExcluded("README.MD"))
}

func TestFilterInvalidPattern(t *testing.T) {
	_, err := NewFilter([]string{"[unclosed"})
	require.Error(t, err)
}

func TestFilterSkipsEmptyPatterns(t *testing.T) {
	filter, err := NewFilter([]string{"", "  ", "*.log"})
	require.NoError(t, err)

	assert.Len(t, filter.Patterns(), 1)
	assert.True(t, filter.IsExcluded("debug.log"))
	assert.False(t, filter.IsExcluded("main.go"))
}
