package rimloc

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PlanOptions configures one planner run.
type PlanOptions struct {
	// IncludeUnchanged keeps unchanged entries in the returned plan. When
	// false they are suppressed from the plan entirely; the serializer then
	// leaves the underlying files untouched for those keys.
	IncludeUnchanged bool

	// Now is the timestamp recorded in history notes. The zero value falls
	// back to the wall clock; tests pass a fixed time for reproducible runs.
	Now time.Time
}

// PlanResult is the outcome of one reconciliation pass over a single
// namespace.
type PlanResult struct {
	Entries     []MergedEntry
	Stats       PlanStats
	Diagnostics []Diagnostic // rejected entries, one per malformed key
}

// NormalizeKey strips a leading "DefType/" prefix. Extraction tools
// sometimes qualify keys with the definition type; placement never depends
// on it, so keys are compared without it.
func NormalizeKey(key string) string {
	if i := strings.IndexByte(key, '/'); i >= 0 {
		return key[i+1:]
	}
	return key
}

// Plan computes a MergedEntry for every distinct key across both input
// sets. Source text is compared against the target's recorded snapshot, not
// against the translation itself: the snapshot is what the translator last
// saw, so this is change detection, not a correctness check.
//
// Keys present only in the target pass through unchanged and are never
// deleted; stale entries persist until a rebuild.
func Plan(source []SourceEntry, target []TargetEntry, opts PlanOptions) (*PlanResult, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	date := now.Format("2006-01-02")

	result := &PlanResult{}

	sourceMap := make(map[string]SourceEntry, len(source))
	var sourceKeys []string
	for _, in := range source {
		key := NormalizeKey(in.Key)
		if reason, ok := keyInvalid(key); ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Path: in.OriginFile, Reason: reason})
			result.Stats.Rejected++
			continue
		}
		if _, dup := sourceMap[key]; dup {
			return nil, &ConfigError{Message: fmt.Sprintf("duplicate key %q in source set", key)}
		}
		in.Key = key
		sourceMap[key] = in
		sourceKeys = append(sourceKeys, key)
	}

	targetMap := make(map[string]TargetEntry, len(target))
	var targetKeys []string
	for _, out := range target {
		key := NormalizeKey(out.Key)
		if reason, ok := keyInvalid(key); ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Path: out.OriginFile, Reason: reason})
			result.Stats.Rejected++
			continue
		}
		if _, dup := targetMap[key]; dup {
			return nil, &ConfigError{Message: fmt.Sprintf("duplicate key %q in target set", key)}
		}
		out.Key = key
		targetMap[key] = out
		targetKeys = append(targetKeys, key)
	}

	sort.Strings(sourceKeys)
	sort.Strings(targetKeys)

	for _, key := range sourceKeys {
		in := sourceMap[key]
		out, exists := targetMap[key]
		switch {
		case exists && in.Text == out.Snapshot:
			result.Stats.Unchanged++
			if opts.IncludeUnchanged {
				result.Entries = append(result.Entries, passthrough(out))
			}
		case exists:
			result.Stats.Updated++
			result.Entries = append(result.Entries, MergedEntry{
				Key: key,
				// The existing human translation is kept; re-translating an
				// updated entry is the translation collaborator's job.
				Translated: out.Translated,
				Tag:        in.Tag,
				OriginFile: out.OriginFile,
				Snapshot:   in.Text,
				History:    updateNote(out.Translated, out.Snapshot, in.Text, date),
				Action:     ActionUpdated,
			})
		default:
			result.Stats.Added++
			result.Entries = append(result.Entries, MergedEntry{
				Key:        key,
				Translated: in.Text, // placeholder, visibly untranslated
				Tag:        in.Tag,
				OriginFile: in.OriginFile,
				Snapshot:   in.Text,
				History:    addNote(in.Text, date),
				Action:     ActionAdded,
			})
		}
	}

	// Keys absent from the source are never synthesized or deleted.
	for _, key := range targetKeys {
		if _, exists := sourceMap[key]; exists {
			continue
		}
		result.Stats.Unchanged++
		if opts.IncludeUnchanged {
			result.Entries = append(result.Entries, passthrough(targetMap[key]))
		}
	}

	return result, nil
}

// FilterActions returns the subset of entries matching any of the given
// actions. The incremental policy keeps only ActionAdded.
func FilterActions(entries []MergedEntry, actions ...Action) []MergedEntry {
	keep := make(map[Action]bool, len(actions))
	for _, a := range actions {
		keep[a] = true
	}
	var out []MergedEntry
	for _, e := range entries {
		if keep[e.Action] {
			out = append(out, e)
		}
	}
	return out
}

// CheckNamespaceConflicts fails fast when the same key appears in both
// namespaces with different source text. That only happens when the
// extraction collaborator is misconfigured to scan overlapping sources, and
// ambiguous precedence is never resolved implicitly.
func CheckNamespaceConflicts(definjected, keyed []SourceEntry) error {
	byKey := make(map[string]string, len(definjected))
	for _, in := range definjected {
		byKey[NormalizeKey(in.Key)] = in.Text
	}
	var conflicts []string
	for _, in := range keyed {
		key := NormalizeKey(in.Key)
		if text, ok := byKey[key]; ok && text != in.Text {
			conflicts = append(conflicts, key)
		}
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return &ConfigError{
			Message: fmt.Sprintf("key(s) present in both namespaces with conflicting text: %s", strings.Join(conflicts, ", ")),
		}
	}
	return nil
}

func passthrough(out TargetEntry) MergedEntry {
	return MergedEntry{
		Key:        out.Key,
		Translated: out.Translated,
		Tag:        out.Tag,
		OriginFile: out.OriginFile,
		Snapshot:   out.Snapshot,
		History:    out.History,
		Action:     ActionUnchanged,
	}
}

func keyInvalid(key string) (string, bool) {
	if key == "" {
		return "empty key", true
	}
	if strings.ContainsRune(key, '/') {
		return fmt.Sprintf("key %q contains a namespace separator", key), true
	}
	return "", false
}

func updateNote(prevTranslated, prevSnapshot, newSource, date string) string {
	return fmt.Sprintf("prev translation %q; prev source %q; new source %q; updated %s",
		prevTranslated, prevSnapshot, newSource, date)
}

func addNote(text, date string) string {
	return fmt.Sprintf("added %q on %s", text, date)
}
