// Package rimloc reconciles RimWorld-style localization trees.
//
// Rimloc takes a freshly extracted set of source-language entries and an
// existing translated language tree, and computes the minimal structurally
// valid update to the translated tree: human translations are never silently
// discarded, entries whose source text changed since last translation are
// flagged for review, new entries are added as visible placeholders, and
// everything else is left byte-for-byte untouched.
//
// Basic usage:
//
//	import (
//	    "time"
//	    "github.com/RimLocale/rimloc"
//	    "github.com/RimLocale/rimloc/extract"
//	    "github.com/RimLocale/rimloc/resource"
//	)
//
//	func main() {
//	    source, _ := extract.ScanDefInjected("Mod/Languages/English/DefInjected", nil)
//	    target, _ := resource.LoadTree("Mod/Languages/ChineseSimplified/DefInjected", nil)
//
//	    plan, err := rimloc.Plan(source, target, rimloc.PlanOptions{
//	        IncludeUnchanged: false,
//	        Now:              time.Now(),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, e := range plan.Entries {
//	        fmt.Println(e.Action, e.Key)
//	    }
//	}
//
// The pipeline package drives a complete pass (classify, extract, parse,
// plan, route, serialize); the provider and cache packages cover the
// machine-translation collaborators that consume a plan.
package rimloc
