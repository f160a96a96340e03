package render

import "strings"

const plaintext = "plaintext"

var languageAliases = map[string]string{
	"golang":     "go",
	"js":         "javascript",
	"mjs":        "javascript",
	"node":       "javascript",
	"ts":         "typescript",
	"sh":         "bash",
	"shell":      "bash",
	"zsh":        "bash",
	"console":    "bash",
	"yml":        "yaml",
	"py":         "python",
	"rs":         "rust",
	"md":         "markdown",
	"mdx":        "markdown",
	"docker":     "dockerfile",
	"c++":        "cpp",
	"psql":       "sql",
	"postgresql": "sql",
	"htm":        "html",
	"text":       plaintext,
	"txt":        plaintext,
}

var languages = map[string]struct{}{
	"go": {}, "javascript": {}, "typescript": {}, "jsx": {}, "tsx": {},
	"bash": {}, "yaml": {}, "json": {}, "python": {}, "rust": {}, "sql": {},
	"html": {}, "css": {}, "markdown": {}, "dockerfile": {}, "java": {},
	"c": {}, "cpp": {}, "diff": {}, "toml": {}, "graphql": {}, plaintext: {},
}

// ClassifyLanguage maps a fenced code info string to the language class used
// by the highlighter. Unrecognised languages are plaintext.
func ClassifyLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return plaintext
	}
	lang := strings.ToLower(fields[0])
	if alias, ok := languageAliases[lang]; ok {
		lang = alias
	}
	if _, ok := languages[lang]; !ok {
		return plaintext
	}
	return lang
}
