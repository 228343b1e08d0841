// Package resource reads and writes LanguageData XML resource files.
//
// A resource file holds an ordered list of key/value elements under a
// single LanguageData root. Each element may be preceded by up to two
// annotation comments: an optional history note and the source-language
// snapshot the translation was last validated against, in that order:
//
//	<!--HISTORY: added "Chatty Nymph" on 2024-03-01-->
//	<!--EN: Chatty Nymph-->
//	<ChattyNymph.label>健谈的仙女</ChattyNymph.label>
//
// The parser tolerates missing or reordered annotations and unrelated
// comments in between; the serializer rewrites only the entries a merge
// plan touched and leaves untouched files byte-for-byte unmodified.
package resource

import (
	"regexp"
	"strings"
)

const (
	// RootTag is the document root element of every resource file.
	RootTag = "LanguageData"

	// SnapshotPrefix marks the source-snapshot annotation comment.
	SnapshotPrefix = "EN:"

	// HistoryPrefix marks the history-note annotation comment.
	HistoryPrefix = "HISTORY:"
)

var (
	invalidKeyChars = regexp.MustCompile(`[^A-Za-z0-9_.]`)
	startsWithAlpha = regexp.MustCompile(`^[A-Za-z_]`)
)

// SanitizeKey converts a key into a valid XML element name: characters
// outside [A-Za-z0-9_.] become dots, and a leading non-letter gains an
// underscore prefix.
func SanitizeKey(key string) string {
	clean := invalidKeyChars.ReplaceAllString(key, ".")
	if !startsWithAlpha.MatchString(clean) {
		clean = "_" + clean
	}
	return clean
}

// sanitizeComment keeps comment bodies well-formed; "--" terminates an XML
// comment early.
func sanitizeComment(s string) string {
	return strings.ReplaceAll(s, "--", "- -")
}

// annotation splits a comment body into its annotation kind, if any.
// History is checked first so a snapshot embedded inside a history note is
// never mistaken for the live snapshot annotation.
func annotation(comment string) (prefix, body string) {
	trimmed := strings.TrimSpace(comment)
	switch {
	case strings.HasPrefix(trimmed, HistoryPrefix):
		return HistoryPrefix, strings.TrimSpace(trimmed[len(HistoryPrefix):])
	case strings.HasPrefix(trimmed, SnapshotPrefix):
		return SnapshotPrefix, strings.TrimSpace(trimmed[len(SnapshotPrefix):])
	}
	return "", ""
}
