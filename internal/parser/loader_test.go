package parser

import (
	"reflect"
	"testing"
)

func TestNewGrammarLoaderDefaults(t *testing.T) {
	gl, err := NewGrammarLoader(nil)
	if err != nil {
		t.Fatalf("NewGrammarLoader: %v", err)
	}

	for _, lang := range []string{"go", "python", "java"} {
		if gl.Language(lang) == nil {
			t.Errorf("expected grammar for %s", lang)
		}
	}
	// Registered but disabled without a classifier.
	if gl.Language("rust") != nil {
		t.Error("rust grammar should not load by default")
	}

	exts := gl.SupportedExtensions()
	want := []string{".go", ".java", ".py"}
	if !reflect.DeepEqual(exts, want) {
		t.Errorf("SupportedExtensions = %v, want %v", exts, want)
	}
}

func TestDetectLanguage(t *testing.T) {
	gl, err := NewGrammarLoader(nil)
	if err != nil {
		t.Fatalf("NewGrammarLoader: %v", err)
	}

	cases := []struct {
		path string
		want string
	}{
		{"cmd/main.go", "go"},
		{"scripts/Build.PY", "python"},
		{"src/Main.java", "java"},
		{"web/app.ts", ""}, // grammar present, classifier missing
		{"README", ""},
		{"style.css", ""},
	}
	for _, tc := range cases {
		if got := gl.DetectLanguage(tc.path); got != tc.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestLanguageOverrides(t *testing.T) {
	gl, err := NewGrammarLoader(map[string]bool{"python": false})
	if err != nil {
		t.Fatalf("NewGrammarLoader: %v", err)
	}
	if gl.Language("python") != nil {
		t.Error("python grammar should be disabled by override")
	}
	if gl.DetectLanguage("x.py") != "" {
		t.Error("disabled language should not be detected")
	}

	if _, err := NewGrammarLoader(map[string]bool{"cobol": true}); err == nil {
		t.Error("expected error for unknown language override")
	}
	if _, err := NewGrammarLoader(map[string]bool{"rust": true}); err == nil {
		t.Error("expected error when enabling a language without a classifier")
	}
}

func TestLanguageRegistryIsolation(t *testing.T) {
	gl, err := NewGrammarLoader(nil)
	if err != nil {
		t.Fatalf("NewGrammarLoader: %v", err)
	}

	registry := gl.LanguageRegistry()
	spec := registry["go"]
	spec.Enabled = false
	spec.Extensions[0] = ".mutated"
	registry["go"] = spec

	if gl.DetectLanguage("main.go") != "go" {
		t.Error("mutating the returned registry must not affect the loader")
	}
}
