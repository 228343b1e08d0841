package provider

import (
	"context"
	"fmt"
)

// MockProvider is a canned provider for tests.
type MockProvider struct {
	Translations map[string]string // source text to translation
	CallCount    int               // number of Translate calls
	LastRequest  *TranslateRequest // last request received
	Err          error             // returned from Translate when set
}

// NewMockProvider creates a mock with a few default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Advanced armor":  "高级护甲",
			"Simple helmet":   "简易头盔",
			"A sturdy plate.": "一块坚固的板甲。",
		},
	}
}

// Translate returns canned translations, bracketing unknown texts.
func (m *MockProvider) Translate(_ context.Context, req TranslateRequest) ([]string, error) {
	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return nil, m.Err
	}

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if translation, ok := m.Translations[text]; ok {
			results[i] = translation
		} else {
			results[i] = fmt.Sprintf("[%s]", text)
		}
	}
	return results, nil
}

// Reset clears the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

var _ Provider = (*MockProvider)(nil)
