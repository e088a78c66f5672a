package scanner

import (
	"path"
	"strings"
)

const (
	LangGo         = "go"
	LangPython     = "python"
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangJava       = "java"
	LangC          = "c"
	LangCPP        = "cpp"
	LangCSharp     = "csharp"
	LangRust       = "rust"
	LangPHP        = "php"
	LangRuby       = "ruby"
	LangKotlin     = "kotlin"
	LangSwift      = "swift"
	LangScala      = "scala"

	// LangManifest is a dependency manifest such as go.mod or package.json.
	LangManifest = "manifest"
)

var extLanguages = map[string]string{
	".go":    LangGo,
	".py":    LangPython,
	".js":    LangJavaScript,
	".jsx":   LangJavaScript,
	".ts":    LangTypeScript,
	".tsx":   LangTypeScript,
	".java":  LangJava,
	".c":     LangC,
	".h":     LangC,
	".cpp":   LangCPP,
	".cc":    LangCPP,
	".hpp":   LangCPP,
	".cs":    LangCSharp,
	".rs":    LangRust,
	".php":   LangPHP,
	".rb":    LangRuby,
	".kt":    LangKotlin,
	".swift": LangSwift,
	".scala": LangScala,
}

var manifestNames = map[string]struct{}{
	"go.mod":           {},
	"package.json":     {},
	"requirements.txt": {},
	"Cargo.toml":       {},
	"pom.xml":          {},
	"Gemfile":          {},
}

// braceLanguages are analyzed by brace depth tracking.
var braceLanguages = map[string]struct{}{
	LangJavaScript: {},
	LangTypeScript: {},
	LangJava:       {},
	LangC:          {},
	LangCPP:        {},
	LangCSharp:     {},
	LangRust:       {},
	LangPHP:        {},
	LangKotlin:     {},
	LangSwift:      {},
	LangScala:      {},
}

// DetectLanguage returns language name of the file path, or empty string if the file type is not supported.
func DetectLanguage(p string) string {
	base := path.Base(p)
	if _, ok := manifestNames[base]; ok {
		return LangManifest
	}
	return extLanguages[strings.ToLower(path.Ext(base))]
}

// IsSupported reports whether the scanner has any rule for the path.
func IsSupported(p string) bool {
	return DetectLanguage(p) != ""
}

// Extensions returns supported source file extensions.
func Extensions() []string {
	exts := make([]string, 0, len(extLanguages))
	for ext := range extLanguages {
		exts = append(exts, ext)
	}
	return exts
}

func commentPrefixes(lang string) []string {
	switch lang {
	case LangPython, LangRuby:
		return []string{"#"}
	case LangPHP:
		return []string{"//", "#", "* ", "/*"}
	default:
		return []string{"//", "* ", "/*"}
	}
}

func isCommentLine(lang, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "*" {
		return lang != LangPython && lang != LangRuby
	}
	for _, p := range commentPrefixes(lang) {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}
