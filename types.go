package rimloc

// Action classifies what the merge planner decided for one key.
type Action int

const (
	// ActionUnchanged means the source text matches the recorded snapshot;
	// the existing translation passes through untouched.
	ActionUnchanged Action = iota
	// ActionUpdated means the source text changed since the entry was last
	// translated; the translation is kept but flagged for review.
	ActionUpdated
	// ActionAdded means the key is new; the translation is initialized as a
	// placeholder equal to the source text.
	ActionAdded
)

// String returns the action name used in CSV output and logs.
func (a Action) String() string {
	switch a {
	case ActionUnchanged:
		return "unchanged"
	case ActionUpdated:
		return "updated"
	case ActionAdded:
		return "added"
	default:
		return "unknown"
	}
}

// Namespace identifies one of the two independent key-spaces of a language
// tree. Both are reconciled by the same planner.
type Namespace string

const (
	// NamespaceDefInjected is the structured namespace: dotted keys combining
	// a definition name and a field path (e.g. "ChattyNymph.label").
	NamespaceDefInjected Namespace = "DefInjected"
	// NamespaceKeyed is the flat namespace: plain identifier keys used for
	// UI string tables.
	NamespaceKeyed Namespace = "Keyed"
)

// Policy selects how an existing target tree is treated during a pass.
type Policy string

const (
	// PolicyNew builds a fresh tree; valid only when no target tree exists.
	PolicyNew Policy = "new"
	// PolicyMerge reconciles source against target, writing updates and
	// additions while leaving unchanged entries untouched.
	PolicyMerge Policy = "merge"
	// PolicyIncremental adds missing keys only; existing entries are never
	// modified, even when their source text changed.
	PolicyIncremental Policy = "incremental"
	// PolicyRebuild discards the target entirely; every source key becomes
	// a fresh placeholder.
	PolicyRebuild Policy = "rebuild"
)

// ParsePolicy converts a user-supplied policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyNew, PolicyMerge, PolicyIncremental, PolicyRebuild:
		return Policy(s), nil
	}
	return "", &ConfigError{Message: "unknown conflict policy: " + s}
}

// Strategy selects the output file layout for entries that have no existing
// placement in the target tree.
type Strategy string

const (
	// StrategyMirrorReference mirrors the file path recorded by the
	// source-language reference tree (DefInjected/Keyed), key for key.
	StrategyMirrorReference Strategy = "mirror-reference"
	// StrategyGroupByType groups entries into one file per type
	// discriminant (e.g. ThingDef entries land in ThingDef/ThingDef.xml).
	StrategyGroupByType Strategy = "group-by-type"
	// StrategyMirrorSource mirrors the file path of the raw game-data tree
	// (Defs) rather than the reference tree.
	StrategyMirrorSource Strategy = "mirror-source"
)

// ParseStrategy converts a user-supplied strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyMirrorReference, StrategyGroupByType, StrategyMirrorSource:
		return Strategy(s), nil
	}
	return "", &ConfigError{Message: "unknown structural strategy: " + s}
}

// SourceEntry is one freshly extracted source-language entry.
type SourceEntry struct {
	Key        string // unique within its namespace
	Text       string // current source-language content
	Tag        string // semantic field classifier; formatting hint only
	OriginFile string // provenance path in the source tree, informational
}

// TargetEntry is one entry of the existing translated tree.
type TargetEntry struct {
	Key        string
	Translated string // human-authored target-language content
	Tag        string
	OriginFile string // file the entry currently lives in; authoritative for placement
	Snapshot   string // source text the translation was last validated against
	History    string // most recent change note; overwritten on each update
}

// MergedEntry is the planner's sole output type: one per distinct key across
// both input sets.
type MergedEntry struct {
	Key        string
	Translated string
	Tag        string
	OriginFile string
	Snapshot   string
	History    string
	Action     Action
}

// PlanStats summarizes one planner run.
type PlanStats struct {
	Unchanged int
	Updated   int
	Added     int
	Rejected  int // entries dropped with a diagnostic (malformed keys)
}

// DefFieldTags is the closed set of definition fields treated as
// translatable by the Defs scanner. Tag values outside this set are ignored
// during extraction.
var DefFieldTags = map[string]bool{
	"label":        true,
	"labelShort":   true,
	"description":  true,
	"baseDesc":     true,
	"jobString":    true,
	"gerund":       true,
	"verb":         true,
	"reportString": true,
	"customLabel":  true,
	"title":        true,
	"titleShort":   true,
}
