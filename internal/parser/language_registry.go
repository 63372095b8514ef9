package parser

import (
	"fmt"
	"sort"
	"strings"
)

type LanguageSpec struct {
	Name           string
	Extensions     []string
	Enabled        bool
	ExtractorReady bool
}

// DefaultLanguageRegistry lists every language with a compiled-in grammar.
// Only languages with a usage classifier ship enabled; the rest stay
// registered so a config override can flip them on once an extractor lands.
func DefaultLanguageRegistry() map[string]LanguageSpec {
	return map[string]LanguageSpec{
		"css": {
			Name:       "css",
			Extensions: []string{".css"},
		},
		"go": {
			Name:           "go",
			Extensions:     []string{".go"},
			Enabled:        true,
			ExtractorReady: true,
		},
		"html": {
			Name:       "html",
			Extensions: []string{".html", ".htm"},
		},
		"java": {
			Name:           "java",
			Extensions:     []string{".java"},
			Enabled:        true,
			ExtractorReady: true,
		},
		"javascript": {
			Name:       "javascript",
			Extensions: []string{".js", ".cjs", ".mjs"},
		},
		"python": {
			Name:           "python",
			Extensions:     []string{".py"},
			Enabled:        true,
			ExtractorReady: true,
		},
		"rust": {
			Name:       "rust",
			Extensions: []string{".rs"},
		},
		"tsx": {
			Name:       "tsx",
			Extensions: []string{".tsx"},
		},
		"typescript": {
			Name:       "typescript",
			Extensions: []string{".ts"},
		},
	}
}

// BuildLanguageRegistry applies per-language enable overrides on top of the
// defaults. Enabling a language without a classifier is a config error.
func BuildLanguageRegistry(overrides map[string]bool) (map[string]LanguageSpec, error) {
	registry := cloneLanguageRegistry(DefaultLanguageRegistry())

	for language, enabled := range overrides {
		spec, ok := registry[strings.ToLower(strings.TrimSpace(language))]
		if !ok {
			return nil, fmt.Errorf("unknown language override %q", language)
		}
		if enabled && !spec.ExtractorReady {
			return nil, fmt.Errorf("language %q has no usage classifier", language)
		}
		spec.Enabled = enabled
		registry[spec.Name] = spec
	}

	if err := validateLanguageRegistry(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

func cloneLanguageRegistry(in map[string]LanguageSpec) map[string]LanguageSpec {
	out := make(map[string]LanguageSpec, len(in))
	for id, spec := range in {
		copySpec := spec
		copySpec.Extensions = append([]string(nil), spec.Extensions...)
		out[id] = copySpec
	}
	return out
}

func validateLanguageRegistry(registry map[string]LanguageSpec) error {
	extOwner := make(map[string]string)

	for _, id := range sortedRegistryIDs(registry) {
		spec := registry[id]
		if !spec.Enabled {
			continue
		}
		for _, ext := range spec.Extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if existing, ok := extOwner[ext]; ok && existing != id {
				return fmt.Errorf("duplicate extension %q owned by %q and %q", ext, existing, id)
			}
			extOwner[ext] = id
		}
	}
	return nil
}

func sortedRegistryIDs(registry map[string]LanguageSpec) []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
