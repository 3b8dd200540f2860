package prompts

import (
	"path/filepath"
	"strings"

	"github.com/maxbolgarin/critic/internal/model"
)

// LanguageConfig defines the target language for AI responses
type LanguageConfig struct {
	Language     model.Language `yaml:"language"`     // Language code (en, es, fr, de, ru, etc.)
	Instructions string         `yaml:"instructions"` // Language-specific instructions for the AI
}

// DefaultLanguages provides common language configurations
var DefaultLanguages = map[model.Language]LanguageConfig{
	model.LanguageEnglish: {
		Language:     model.LanguageEnglish,
		Instructions: "Respond in clear, professional English. Use technical terminology appropriately.",
	},
	model.LanguageSpanish: {
		Language:     model.LanguageSpanish,
		Instructions: "Responde en español claro y profesional. Usa terminología técnica apropiada.",
	},
	model.LanguageFrench: {
		Language:     model.LanguageFrench,
		Instructions: "Répondez en français clair et professionnel. Utilisez une terminologie technique appropriée.",
	},
	model.LanguageGerman: {
		Language:     model.LanguageGerman,
		Instructions: "Antworten Sie in klarem, professionellem Deutsch. Verwenden Sie angemessene technische Terminologie.",
	},
	model.LanguageRussian: {
		Language:     model.LanguageRussian,
		Instructions: "Отвечайте на русском языке четко и профессионально. Используйте соответствующую техническую терминологию.",
	},
	model.LanguagePortuguese: {
		Language:     model.LanguagePortuguese,
		Instructions: "Responda em português claro e profissional. Use terminologia técnica apropriada.",
	},
	model.LanguageItalian: {
		Language:     model.LanguageItalian,
		Instructions: "Rispondi in italiano chiaro e professionale. Usa una terminologia tecnica appropriata.",
	},
	model.LanguageJapanese: {
		Language:     model.LanguageJapanese,
		Instructions: "明確で専門的な日本語で回答してください。適切な技術用語を使用してください。",
	},
	model.LanguageKorean: {
		Language:     model.LanguageKorean,
		Instructions: "명확하고 전문적인 한국어로 답변해 주세요. 적절한 기술 용어를 사용해 주세요.",
	},
	model.LanguageChinese: {
		Language:     model.LanguageChinese,
		Instructions: "请用清晰、专业的中文回答。适当使用技术术语。",
	},
}

// Map file extensions to language identifiers
var codeLanguageByExt = map[string]string{
	// Go
	".go": "go",

	// JavaScript/TypeScript
	".js":  "javascript",
	".jsx": "jsx",
	".ts":  "typescript",
	".tsx": "tsx",
	".vue": "vue",

	// Python
	".py":  "python",
	".pyw": "python",
	".pyi": "python",

	// Java
	".java": "java",
	".kt":   "kotlin",
	".kts":  "kotlin",

	// C/C++
	".c":   "c",
	".h":   "c",
	".cpp": "cpp",
	".cxx": "cpp",
	".cc":  "cpp",
	".hpp": "cpp",
	".hxx": "cpp",

	// C#
	".cs":  "csharp",
	".csx": "csharp",

	// Ruby
	".rb":  "ruby",
	".rbw": "ruby",

	// PHP
	".php":   "php",
	".phtml": "php",

	// Rust
	".rs": "rust",

	// Swift
	".swift": "swift",

	// Shell scripts
	".sh":   "bash",
	".bash": "bash",
	".zsh":  "zsh",
	".fish": "fish",

	// Web technologies
	".html": "html",
	".htm":  "html",
	".css":  "css",
	".scss": "scss",
	".sass": "sass",
	".less": "less",

	// Data formats
	".json": "json",
	".xml":  "xml",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",

	// Database
	".sql": "sql",

	// Configuration
	".ini":  "ini",
	".cfg":  "ini",
	".conf": "ini",

	// Documentation
	".md":       "markdown",
	".markdown": "markdown",

	// Docker
	".dockerfile": "dockerfile",

	// Other languages
	".lua":   "lua",
	".perl":  "perl",
	".pl":    "perl",
	".r":     "r",
	".scala": "scala",
	".clj":   "clojure",
	".hs":    "haskell",
	".elm":   "elm",
	".ex":    "elixir",
	".exs":   "elixir",
	".erl":   "erlang",
	".hrl":   "erlang",
	".dart":  "dart",
	".vim":   "vim",
}

// CodeLanguageForPath detects the programming language from a file path,
// empty when unknown.
func CodeLanguageForPath(filePath string) string {
	if filePath == "" {
		return ""
	}

	// Special case for common filenames without extensions
	fileName := strings.ToLower(filepath.Base(filePath))
	switch fileName {
	case "dockerfile":
		return "dockerfile"
	case "makefile":
		return "makefile"
	case "gemfile", "rakefile":
		return "ruby"
	case "package.json", "composer.json":
		return "json"
	case ".gitignore", ".dockerignore", ".eslintignore":
		return "gitignore"
	case ".env", ".env.example":
		return "bash"
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	return codeLanguageByExt[ext]
}
