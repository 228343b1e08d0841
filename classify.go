package rimloc

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Presence is the binary outcome of classifying a directory tree.
type Presence int

const (
	// PresenceAbsent means the directory does not exist or holds no
	// structured-data files anywhere in its subtree.
	PresenceAbsent Presence = iota
	// PresencePresent means at least one XML file exists in the subtree.
	PresencePresent
)

func (p Presence) String() string {
	if p == PresencePresent {
		return "present"
	}
	return "absent"
}

// Mode is the operation selected for a pass by the decision table over
// (source presence, target presence, policy).
type Mode int

const (
	// ModeBuild writes a fresh tree; the planner is not consulted because
	// there is nothing to reconcile against.
	ModeBuild Mode = iota
	// ModeMerge runs the full reconciliation pass.
	ModeMerge
	// ModeIncremental runs the planner but keeps only added entries.
	ModeIncremental
	// ModeRebuild discards the target; every source key becomes added.
	ModeRebuild
)

func (m Mode) String() string {
	switch m {
	case ModeBuild:
		return "build"
	case ModeMerge:
		return "merge"
	case ModeIncremental:
		return "incremental"
	case ModeRebuild:
		return "rebuild"
	default:
		return "unknown"
	}
}

// Classify reports whether a directory tree counts as present: it exists
// and contains at least one XML file anywhere below it.
func Classify(path string) Presence {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return PresenceAbsent
	}
	found := false
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtrees don't make a tree present
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".xml") {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	if found {
		return PresencePresent
	}
	return PresenceAbsent
}

// SelectMode applies the decision table. A missing source tree is always a
// configuration error; PolicyNew on an existing target refuses to run
// rather than silently clobbering translations.
func SelectMode(source, target Presence, policy Policy) (Mode, error) {
	if source == PresenceAbsent {
		return 0, &ConfigError{Message: "source tree is absent; nothing to extract"}
	}
	switch policy {
	case PolicyNew:
		if target == PresencePresent {
			return 0, &ConfigError{Message: "policy \"new\" requires an absent target; use merge or rebuild"}
		}
		return ModeBuild, nil
	case PolicyMerge:
		if target == PresenceAbsent {
			return ModeBuild, nil
		}
		return ModeMerge, nil
	case PolicyIncremental:
		if target == PresenceAbsent {
			return ModeBuild, nil
		}
		return ModeIncremental, nil
	case PolicyRebuild:
		return ModeRebuild, nil
	default:
		return 0, &ConfigError{Message: "unknown conflict policy: " + string(policy)}
	}
}
