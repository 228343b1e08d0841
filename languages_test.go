package rimloc

import "testing"

func TestFolderName(t *testing.T) {
	tests := []struct {
		code, want string
	}{
		{"zh-CN", "ChineseSimplified"},
		{"zh-TW", "ChineseTraditional"},
		{"de", "German"},
		{"pt-BR", "PortugueseBrazilian"},
		{"zh_CN", "ChineseSimplified"}, // underscore form normalizes
		{"ChineseSimplified", "ChineseSimplified"},
	}
	for _, tt := range tests {
		if got := FolderName(tt.code); got != tt.want {
			t.Errorf("FolderName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCodeForFolder(t *testing.T) {
	if got := CodeForFolder("ChineseSimplified"); got != "zh-CN" {
		t.Errorf("CodeForFolder(ChineseSimplified) = %q, want zh-CN", got)
	}
	if got := CodeForFolder("Klingon"); got != "" {
		t.Errorf("Unknown folder should map to empty, got %q", got)
	}
}

func TestIsRTL(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"ar", true},
		{"Arabic", true},
		{"Hebrew", true},
		{"zh-CN", false},
		{"German", false},
	}
	for _, tt := range tests {
		if got := IsRTL(tt.lang); got != tt.want {
			t.Errorf("IsRTL(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}

func TestGetLanguageName(t *testing.T) {
	if got := GetLanguageName("zh-CN"); got != "Simplified Chinese" {
		t.Errorf("GetLanguageName(zh-CN) = %q", got)
	}
	if got := GetLanguageName("de-AT"); got != "German" {
		t.Errorf("Regional variant should fall back to base language, got %q", got)
	}
	if got := GetLanguageName("xx"); got != "xx" {
		t.Errorf("Unknown code should pass through, got %q", got)
	}
}
