package rimloc

import (
	"path"
	"path/filepath"
	"strings"
)

// Route maps an entry to an output file path relative to the namespace
// root. It is consulted only for added entries that have no existing file
// placement, and for every entry during a rebuild; entries already present
// in the target keep their recorded OriginFile.
func Route(e MergedEntry, strategy Strategy) (string, error) {
	switch strategy {
	case StrategyMirrorReference, StrategyMirrorSource:
		// Both mirror the provenance path recorded at extraction time; which
		// tree that path came from (reference DefInjected vs raw Defs) is
		// decided by the extractor feeding the pass.
		return mirrorPath(e)
	case StrategyGroupByType:
		disc := typeDiscriminant(e)
		return path.Join(disc, disc+".xml"), nil
	default:
		return "", &ConfigError{Message: "unknown structural strategy: " + string(strategy)}
	}
}

// GroupByFile partitions entries into per-file sets. Entries already placed
// in the target keep their recorded file; added entries (which carry a
// source-tree provenance path, not a target placement) and every entry of a
// rebuild go through the router. Routing failures surface as diagnostics;
// the entry is dropped rather than written to a guessed location.
func GroupByFile(entries []MergedEntry, strategy Strategy, rebuild bool) (map[string][]MergedEntry, []Diagnostic) {
	files := make(map[string][]MergedEntry)
	var diags []Diagnostic
	for _, e := range entries {
		rel := cleanRelPath(e.OriginFile)
		if rebuild || rel == "" || e.Action == ActionAdded {
			routed, err := Route(e, strategy)
			if err != nil {
				diags = append(diags, Diagnostic{Path: e.OriginFile, Reason: err.Error()})
				continue
			}
			rel = routed
		}
		files[rel] = append(files[rel], e)
	}
	return files, diags
}

func mirrorPath(e MergedEntry) (string, error) {
	rel := cleanRelPath(e.OriginFile)
	if rel == "" {
		return "", &ConfigError{Message: "entry " + e.Key + " has no origin file to mirror"}
	}
	return rel, nil
}

// cleanRelPath normalizes a provenance path and rejects anything that would
// escape the namespace root.
func cleanRelPath(p string) string {
	if p == "" {
		return ""
	}
	rel := filepath.ToSlash(filepath.Clean(p))
	if rel == "." || path.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, "../") {
		return ""
	}
	return rel
}

// typeDiscriminant picks the grouping value for StrategyGroupByType: the
// first segment of the provenance path when there is one (the def-type
// directory of a reference tree), otherwise the entry's tag.
func typeDiscriminant(e MergedEntry) string {
	if rel := cleanRelPath(e.OriginFile); rel != "" {
		if i := strings.IndexByte(rel, '/'); i > 0 {
			return rel[:i]
		}
	}
	if e.Tag != "" {
		return e.Tag
	}
	return "Misc"
}
