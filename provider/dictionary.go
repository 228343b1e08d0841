package provider

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Glossary is a YAML glossary file: a flat source-to-translation map,
// optionally nested under per-language sections.
//
//	terms:
//	  "Advanced armor": "高级护甲"
//	  "mote": "尘埃"
type Glossary struct {
	Terms map[string]string `yaml:"terms"`
}

// LoadGlossary reads a YAML glossary file. Both the sectioned form (a
// top-level "terms" map) and a bare flat map are accepted.
func LoadGlossary(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading glossary: %w", err)
	}

	var g Glossary
	if err := yaml.Unmarshal(data, &g); err == nil && len(g.Terms) > 0 {
		return g.Terms, nil
	}

	var flat map[string]string
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("parsing glossary: %w", err)
	}
	return flat, nil
}

// DictionaryProvider is an offline provider that substitutes glossary
// terms and leaves everything else untouched. Useful for consistent
// terminology passes without any API access.
type DictionaryProvider struct {
	terms   map[string]string
	ordered []string // term keys, longest first, so overlapping terms nest correctly
}

// NewDictionaryProvider creates a provider over a fixed term dictionary.
func NewDictionaryProvider(terms map[string]string) *DictionaryProvider {
	ordered := make([]string, 0, len(terms))
	for term := range terms {
		ordered = append(ordered, term)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	return &DictionaryProvider{terms: terms, ordered: ordered}
}

// Translate replaces known terms in each text. Whole-text matches replace
// the entire string; otherwise terms are substituted in place.
func (d *DictionaryProvider) Translate(_ context.Context, req TranslateRequest) ([]string, error) {
	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if exact, ok := d.terms[text]; ok {
			results[i] = exact
			continue
		}
		out := text
		for _, term := range d.ordered {
			out = strings.ReplaceAll(out, term, d.terms[term])
		}
		results[i] = out
	}
	return results, nil
}

var _ Provider = (*DictionaryProvider)(nil)
