package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxbolgarin/critic/internal/model"
)

func testPullRequest() *model.PullRequest {
	return &model.PullRequest{
		Title:       "Add retry logic to fetcher",
		Description: "Retries transient errors with backoff.\nSecond line.",
	}
}

func testHunk() *model.Hunk {
	return &model.Hunk{
		Header: "@@ -1,2 +1,2 @@",
		Changes: []model.LineChange{
			{Kind: model.LineContext, Content: "func fetch() {", OldLine: 1, NewLine: 1},
			{Kind: model.LineRemoved, Content: "once()", OldLine: 2},
			{Kind: model.LineAdded, Content: "retry()", NewLine: 2},
		},
	}
}

func TestBuildHunkReviewPrompt(t *testing.T) {
	b := NewBuilder(model.LanguageEnglish)
	file := &model.FileDiff{NewPath: "internal/fetch/fetcher.go"}

	prompt := b.BuildHunkReviewPrompt(testPullRequest(), file, testHunk())

	assert.Contains(t, prompt.UserPrompt, "File: internal/fetch/fetcher.go")
	assert.Contains(t, prompt.UserPrompt, "Language: go")
	assert.Contains(t, prompt.UserPrompt, "Add retry logic to fetcher")
	assert.Contains(t, prompt.UserPrompt, "Retries transient errors with backoff.\nSecond line.")
	assert.Contains(t, prompt.UserPrompt, "@@ -1,2 +1,2 @@")
	assert.Contains(t, prompt.UserPrompt, "+retry()")
	assert.Contains(t, prompt.UserPrompt, "-once()")
	assert.Contains(t, prompt.UserPrompt, " func fetch() {")

	assert.Contains(t, prompt.SystemPrompt, "EMPTY message")
	assert.Contains(t, prompt.SystemPrompt, "Respond in clear, professional English.")
}

func TestBuildHunkReviewPromptOrder(t *testing.T) {
	b := NewBuilder(model.LanguageEnglish)
	file := &model.FileDiff{NewPath: "a.go"}

	prompt := b.BuildHunkReviewPrompt(testPullRequest(), file, testHunk())

	pathIdx := strings.Index(prompt.UserPrompt, "File: a.go")
	titleIdx := strings.Index(prompt.UserPrompt, "Add retry logic to fetcher")
	descIdx := strings.Index(prompt.UserPrompt, "Retries transient errors")
	hunkIdx := strings.Index(prompt.UserPrompt, "@@ -1,2 +1,2 @@")

	require.GreaterOrEqual(t, pathIdx, 0)
	assert.Less(t, pathIdx, titleIdx)
	assert.Less(t, titleIdx, descIdx)
	assert.Less(t, descIdx, hunkIdx)
}

func TestBuildHunkReviewPromptDeletedFile(t *testing.T) {
	b := NewBuilder(model.LanguageEnglish)
	file := &model.FileDiff{OldPath: "legacy/gone.py", IsDeleted: true}

	prompt := b.BuildHunkReviewPrompt(testPullRequest(), file, testHunk())

	assert.Contains(t, prompt.UserPrompt, "File: legacy/gone.py")
	assert.Contains(t, prompt.UserPrompt, "Language: python")
}

func TestBuilderUnknownLanguageFallsBackToEnglish(t *testing.T) {
	b := NewBuilder(model.Language("xx"))

	prompt := b.BuildHunkReviewPrompt(testPullRequest(), &model.FileDiff{NewPath: "a.go"}, testHunk())
	assert.Contains(t, prompt.SystemPrompt, "English")
}

func TestRenderHunk(t *testing.T) {
	rendered := RenderHunk(testHunk())

	expected := "@@ -1,2 +1,2 @@\n func fetch() {\n-once()\n+retry()"
	assert.Equal(t, expected, rendered)
}

func TestCodeLanguageForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"src/app.tsx", "tsx"},
		{"scripts/build.sh", "bash"},
		{"Dockerfile", "dockerfile"},
		{"sub/dir/Makefile", "makefile"},
		{"config.yml", "yaml"},
		{"noextension", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CodeLanguageForPath(tt.path), tt.path)
	}
}
