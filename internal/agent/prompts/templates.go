package prompts

import (
	"fmt"
	"strings"

	"github.com/maxbolgarin/critic/internal/model"
)

// Builder provides methods to build prompts with language support
type Builder struct {
	language LanguageConfig
}

// NewBuilder creates a new template builder with language configuration
func NewBuilder(language model.Language) *Builder {
	lang, exists := DefaultLanguages[language]
	if !exists {
		lang = DefaultLanguages[model.LanguageEnglish] // Default to English
	}
	return &Builder{
		language: lang,
	}
}

// BuildHunkReviewPrompt creates a prompt for reviewing a single hunk. The
// user prompt carries the file path, the pull request title and description
// verbatim and the rendered hunk, so the model sees the same change a human
// reviewer would.
func (tb *Builder) BuildHunkReviewPrompt(pr *model.PullRequest, file *model.FileDiff, hunk *model.Hunk) model.Prompt {
	systemPrompt := fmt.Sprintf(reviewSystemPromptTemplate, tb.language.Instructions)

	var languageHint string
	if name := CodeLanguageForPath(file.Path()); name != "" {
		languageHint = "Language: " + name + "\n"
	}

	userPrompt := fmt.Sprintf(reviewUserPromptTemplate,
		file.Path(),
		languageHint,
		pr.Title,
		pr.Description,
		RenderHunk(hunk),
	)

	return model.Prompt{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
	}
}

// RenderHunk renders a hunk back to unified diff text, header line included.
func RenderHunk(hunk *model.Hunk) string {
	var b strings.Builder
	b.WriteString(hunk.Header)
	for _, change := range hunk.Changes {
		b.WriteByte('\n')
		switch change.Kind {
		case model.LineAdded:
			b.WriteByte('+')
		case model.LineRemoved:
			b.WriteByte('-')
		default:
			b.WriteByte(' ')
		}
		b.WriteString(change.Content)
	}
	return b.String()
}
