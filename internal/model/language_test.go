package model

import "testing"

// TestLanguageString tests the String method of Language.
func TestLanguageString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		lang     Language
		expected string
	}{
		{LanguagePython, "Python"},
		{LanguageJavaScript, "JavaScript/TypeScript"},
		{LanguageJava, "Java"},
		{LanguageGo, "Go"},
		{LanguageRust, "Rust"},
		{LanguageC, "C/C++"},
		{LanguageUnclassified, "Unclassified"},
		{Language(999), "Unclassified"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.lang.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.lang.String(), tc.expected)
			}
		})
	}
}

// TestClassifyPath tests extension-based classification.
func TestClassifyPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		path     string
		expected Language
	}{
		{"python file", "src/app.py", LanguagePython},
		{"javascript file", "web/index.js", LanguageJavaScript},
		{"typescript file", "web/app.tsx", LanguageJavaScript},
		{"commonjs file", "lib/util.cjs", LanguageJavaScript},
		{"esm file", "lib/util.mjs", LanguageJavaScript},
		{"java file", "Main.java", LanguageJava},
		{"go file", "main.go", LanguageGo},
		{"rust file", "lib.rs", LanguageRust},
		{"c file", "core.c", LanguageC},
		{"c header", "core.h", LanguageC},
		{"cpp file", "engine.cpp", LanguageC},
		{"cpp header", "engine.hxx", LanguageC},
		{"uppercase extension", "APP.PY", LanguagePython},
		{"mixed case extension", "Main.Java", LanguageJava},
		{"unknown extension", "notes.txt", LanguageUnclassified},
		{"no extension", "Makefile", LanguageUnclassified},
		{"dotfile", ".gitignore", LanguageUnclassified},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyPath(tc.path); got != tc.expected {
				t.Errorf("ClassifyPath(%q) = %v, expected %v", tc.path, got, tc.expected)
			}
		})
	}
}

// TestLanguagesOrder tests that the family order is stable.
// Report section ordering depends on it.
func TestLanguagesOrder(t *testing.T) {
	t.Parallel()

	expected := []Language{
		LanguagePython,
		LanguageJavaScript,
		LanguageJava,
		LanguageGo,
		LanguageRust,
		LanguageC,
	}

	got := Languages()
	if len(got) != len(expected) {
		t.Fatalf("expected %d languages, got %d", len(expected), len(got))
	}
	for i, lang := range expected {
		if got[i] != lang {
			t.Errorf("position %d: got %v, expected %v", i, got[i], lang)
		}
	}
}

// TestExtensions tests that every family has at least one extension and
// that no extension is claimed by two families.
func TestExtensions(t *testing.T) {
	t.Parallel()

	seen := make(map[string]Language)
	for _, lang := range Languages() {
		exts := lang.Extensions()
		if len(exts) == 0 {
			t.Errorf("%v has no extensions", lang)
		}
		for _, ext := range exts {
			if owner, ok := seen[ext]; ok {
				t.Errorf("extension %q claimed by both %v and %v", ext, owner, lang)
			}
			seen[ext] = lang
		}
	}

	if LanguageUnclassified.Extensions() != nil {
		t.Error("unclassified must not own extensions")
	}
}

// TestParseLanguage tests resolution of configured family names.
func TestParseLanguage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected Language
		ok       bool
	}{
		{"python lowercase", "python", LanguagePython, true},
		{"python capitalized", "Python", LanguagePython, true},
		{"javascript", "javascript", LanguageJavaScript, true},
		{"typescript alias", "typescript", LanguageJavaScript, true},
		{"grouped js name", "JavaScript/TypeScript", LanguageJavaScript, true},
		{"java", "java", LanguageJava, true},
		{"go", "Go", LanguageGo, true},
		{"rust", "rust", LanguageRust, true},
		{"c", "c", LanguageC, true},
		{"cpp alias", "C++", LanguageC, true},
		{"grouped c name", "c/c++", LanguageC, true},
		{"surrounding whitespace", "  python  ", LanguagePython, true},
		{"unknown name", "cobol", LanguageUnclassified, false},
		{"empty string", "", LanguageUnclassified, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lang, ok := ParseLanguage(tc.input)
			if ok != tc.ok {
				t.Fatalf("ParseLanguage(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			}
			if ok && lang != tc.expected {
				t.Errorf("ParseLanguage(%q) = %v, want %v", tc.input, lang, tc.expected)
			}
		})
	}
}
