package rimloc

import "strings"

// LanguageFolders maps language codes to the folder names a game expects
// under Languages/. Folder names, not codes, appear on disk.
var LanguageFolders = map[string]string{
	"ar":     "Arabic",
	"cs":     "Czech",
	"da":     "Danish",
	"de":     "German",
	"el":     "Greek",
	"en":     "English",
	"es":     "Spanish",
	"es-419": "SpanishLatin",
	"et":     "Estonian",
	"fi":     "Finnish",
	"fr":     "French",
	"hu":     "Hungarian",
	"it":     "Italian",
	"ja":     "Japanese",
	"ko":     "Korean",
	"nl":     "Dutch",
	"no":     "Norwegian",
	"pl":     "Polish",
	"pt":     "Portuguese",
	"pt-BR":  "PortugueseBrazilian",
	"ro":     "Romanian",
	"ru":     "Russian",
	"sk":     "Slovak",
	"sl":     "Slovenian",
	"sv":     "Swedish",
	"th":     "Thai",
	"tr":     "Turkish",
	"uk":     "Ukrainian",
	"vi":     "Vietnamese",
	"zh-CN":  "ChineseSimplified",
	"zh-TW":  "ChineseTraditional",
}

// RTLFolders is the set of Languages/ folders whose scripts run right to
// left. Placeholders and markup stay in logical order inside RTL text, so
// translation prompts and exchange tooling need to know.
var RTLFolders = map[string]bool{
	"Arabic": true,
	"Hebrew": true,
	"Farsi":  true,
}

// IsRTL reports whether a language code or folder name denotes a
// right-to-left language.
func IsRTL(lang string) bool {
	return RTLFolders[FolderName(lang)]
}

// LanguageNames maps language codes to human-readable names for
// machine-translation prompts.
var LanguageNames = map[string]string{
	"ar":    "Arabic",
	"cs":    "Czech",
	"de":    "German",
	"es":    "Spanish",
	"fr":    "French",
	"it":    "Italian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"pl":    "Polish",
	"pt-BR": "Brazilian Portuguese",
	"ru":    "Russian",
	"tr":    "Turkish",
	"uk":    "Ukrainian",
	"zh-CN": "Simplified Chinese",
	"zh-TW": "Traditional Chinese",
}

// GetLanguageName returns a human-readable name for a language code,
// falling back to the code itself.
func GetLanguageName(code string) string {
	if name, ok := LanguageNames[code]; ok {
		return name
	}
	if name, ok := LanguageNames[baseLang(code)]; ok {
		return name
	}
	return code
}

// FolderName returns the on-disk Languages/ folder name for a code. Codes
// that already look like folder names ("ChineseSimplified") pass through.
func FolderName(code string) string {
	if folder, ok := LanguageFolders[code]; ok {
		return folder
	}
	if folder, ok := LanguageFolders[baseLang(code)]; ok {
		return folder
	}
	return code
}

// CodeForFolder is the inverse of FolderName; it returns "" for unknown
// folder names.
func CodeForFolder(folder string) string {
	for code, f := range LanguageFolders {
		if f == folder {
			return code
		}
	}
	return ""
}

// baseLang extracts the base language code (e.g. "zh" from "zh-CN").
func baseLang(code string) string {
	code = strings.ReplaceAll(code, "_", "-")
	if i := strings.IndexByte(code, '-'); i > 0 {
		return strings.ToLower(code[:i])
	}
	return strings.ToLower(code)
}
