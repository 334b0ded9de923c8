package model

import (
	"path/filepath"
	"strings"
)

// Language represents one recognized language family.
//
// Design decision: We use iota-based constants rather than free-form strings
// for the bucket keys. A closed enum keeps the classification table, the
// extractor dispatch table, and the report section ordering in one fixed set
// that the compiler can check.
type Language int

const (
	// LanguageUnclassified marks files whose extension matches no table entry.
	// Such files are excluded from every bucket; this is not an error.
	LanguageUnclassified Language = iota

	// LanguagePython covers CPython-style source files.
	LanguagePython

	// LanguageJavaScript covers the JavaScript/TypeScript family, including
	// ESM and CommonJS module variants.
	LanguageJavaScript

	// LanguageJava covers Java source files.
	LanguageJava

	// LanguageGo covers Go source files.
	LanguageGo

	// LanguageRust covers Rust source files.
	LanguageRust

	// LanguageC covers the grouped C/C++ family, headers included.
	LanguageC
)

// String returns the human-readable family name used in report sections.
func (l Language) String() string {
	switch l {
	case LanguagePython:
		return "Python"
	case LanguageJavaScript:
		return "JavaScript/TypeScript"
	case LanguageJava:
		return "Java"
	case LanguageGo:
		return "Go"
	case LanguageRust:
		return "Rust"
	case LanguageC:
		return "C/C++"
	default:
		return "Unclassified"
	}
}

// languageExtensions maps each family to its file extensions.
// Extensions are lower-case; lookup is case-insensitive.
var languageExtensions = map[Language][]string{
	LanguagePython:     {".py"},
	LanguageJavaScript: {".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx"},
	LanguageJava:       {".java"},
	LanguageGo:         {".go"},
	LanguageRust:       {".rs"},
	LanguageC:          {".c", ".h", ".cc", ".cpp", ".hpp", ".cxx", ".hxx"},
}

// Languages returns all classified families in report section order.
// The order is fixed: it determines the order of summary bullets, diagram
// sections, and file listings in the rendered artifact.
func Languages() []Language {
	return []Language{
		LanguagePython,
		LanguageJavaScript,
		LanguageJava,
		LanguageGo,
		LanguageRust,
		LanguageC,
	}
}

// Extensions returns the file extensions belonging to the family.
func (l Language) Extensions() []string {
	return languageExtensions[l]
}

// languageNames maps accepted configuration spellings to families.
// Keys are lower-case; lookup is case-insensitive. Grouped families accept
// each member name as well as the canonical section title.
var languageNames = map[string]Language{
	"python":                LanguagePython,
	"javascript":            LanguageJavaScript,
	"typescript":            LanguageJavaScript,
	"javascript/typescript": LanguageJavaScript,
	"java":                  LanguageJava,
	"go":                    LanguageGo,
	"rust":                  LanguageRust,
	"c":                     LanguageC,
	"c++":                   LanguageC,
	"c/c++":                 LanguageC,
}

// ParseLanguage resolves a configured family name to its Language.
// The second return value is false for unrecognized names.
func ParseLanguage(name string) (Language, bool) {
	lang, ok := languageNames[strings.ToLower(strings.TrimSpace(name))]
	return lang, ok
}

// ClassifyPath returns the language family for a file path by
// case-insensitive suffix lookup. First match in family order wins, so a
// file lands in at most one bucket. Files matching no entry return
// LanguageUnclassified.
func ClassifyPath(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return LanguageUnclassified
	}
	for _, lang := range Languages() {
		for _, candidate := range languageExtensions[lang] {
			if ext == candidate {
				return lang
			}
		}
	}
	return LanguageUnclassified
}
