package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/RimLocale/rimloc"
)

func TestParseResponse_TranslationsObject(t *testing.T) {
	p := &OpenAIProvider{}

	content := `{"translations": ["高级护甲", "简易头盔"]}`
	result, err := p.parseResponse(content, 2)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if result[0] != "高级护甲" || result[1] != "简易头盔" {
		t.Errorf("Unexpected translations: %v", result)
	}
}

func TestParseResponse_FallbackArrayValue(t *testing.T) {
	p := &OpenAIProvider{}

	content := `{"results": ["uno", "dos"]}`
	result, err := p.parseResponse(content, 2)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if result[0] != "uno" {
		t.Errorf("Unexpected translations: %v", result)
	}
}

func TestParseResponse_DirectArray(t *testing.T) {
	p := &OpenAIProvider{}

	result, err := p.parseResponse(`["a", "b", "c"]`, 3)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if len(result) != 3 {
		t.Errorf("Expected 3 translations, got %d", len(result))
	}
}

func TestParseResponse_CountMismatch(t *testing.T) {
	p := &OpenAIProvider{}

	_, err := p.parseResponse(`{"translations": ["only one"]}`, 2)
	var mismatch *rimloc.CountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Expected CountMismatchError, got %v", err)
	}
	if mismatch.Expected != 2 || mismatch.Got != 1 {
		t.Errorf("Mismatch fields: expected=%d got=%d", mismatch.Expected, mismatch.Got)
	}
}

func TestParseResponse_Invalid(t *testing.T) {
	p := &OpenAIProvider{}

	_, err := p.parseResponse("not json at all", 1)
	var perr *rimloc.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if perr.Retryable {
		t.Error("Malformed response should not be retryable")
	}
}

func TestBuildSystemPrompt_Glossary(t *testing.T) {
	p := &OpenAIProvider{}

	prompt := p.buildSystemPrompt(TranslateRequest{
		TargetLang: "zh-CN",
		Glossary:   map[string]string{"mote": "尘埃"},
	})

	if !strings.Contains(prompt, "尘埃") {
		t.Error("Glossary terms should appear in the system prompt")
	}
	if !strings.Contains(prompt, "Simplified Chinese") {
		t.Errorf("Target language name should appear in the prompt:\n%s", prompt)
	}
}

func TestBuildSystemPrompt_RTLNote(t *testing.T) {
	p := &OpenAIProvider{}

	rtl := p.buildSystemPrompt(TranslateRequest{TargetLang: "ar"})
	if !strings.Contains(rtl, "right-to-left") {
		t.Errorf("RTL target should get a directionality note:\n%s", rtl)
	}

	ltr := p.buildSystemPrompt(TranslateRequest{TargetLang: "de"})
	if strings.Contains(ltr, "right-to-left") {
		t.Error("LTR target should not get a directionality note")
	}
}

func TestBuildUserMessage_KeysIncluded(t *testing.T) {
	p := &OpenAIProvider{}

	msg := p.buildUserMessage(TranslateRequest{
		Texts: []string{"Advanced armor"},
		Keys:  []string{"Armor_Advanced.label"},
	})

	if !strings.Contains(msg, "Armor_Advanced.label") {
		t.Errorf("Entry keys should be sent as hints, got %s", msg)
	}
}

func TestBuildUserMessage_NoKeys(t *testing.T) {
	p := &OpenAIProvider{}

	msg := p.buildUserMessage(TranslateRequest{
		Texts: []string{"Advanced armor", "Simple helmet"},
	})

	if msg != `["Advanced armor","Simple helmet"]` {
		t.Errorf("Expected plain array form, got %s", msg)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err       string
		retryable bool
	}{
		{"429 too many requests", true},
		{"rate limit exceeded", true},
		{"connection refused", true},
		{"503 service unavailable", true},
		{"invalid api key", false},
		{"400 bad request", false},
	}

	for _, tt := range tests {
		got := isRetryableError(errors.New(tt.err))
		if got != tt.retryable {
			t.Errorf("isRetryableError(%q) = %v, want %v", tt.err, got, tt.retryable)
		}
	}
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider()

	results, err := m.Translate(context.Background(), TranslateRequest{
		Texts:      []string{"Advanced armor", "something unknown"},
		TargetLang: "zh-CN",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if results[0] != "高级护甲" {
		t.Errorf("Known text: got %q", results[0])
	}
	if results[1] != "[something unknown]" {
		t.Errorf("Unknown text should be bracketed, got %q", results[1])
	}
	if m.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1", m.CallCount)
	}
	if m.LastRequest.TargetLang != "zh-CN" {
		t.Errorf("LastRequest.TargetLang = %q", m.LastRequest.TargetLang)
	}
}
