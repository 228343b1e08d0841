package rimloc

import (
	"fmt"
	"sync"
)

// Diagnostic records one non-fatal failure as a (path, reason) pair.
type Diagnostic struct {
	Path   string
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Path, d.Reason)
}

// Report collects everything a pass recorded without aborting: skipped
// files, failed writes, rejected entries, and the plan statistics. Parsing
// and serialization run concurrently, so recording is safe from multiple
// goroutines.
type Report struct {
	mu sync.Mutex

	ParseErrors []Diagnostic
	WriteErrors []Diagnostic
	Rejected    []Diagnostic

	Stats        PlanStats
	FilesWritten int
}

// RecordParse records a skipped resource file.
func (r *Report) RecordParse(path, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ParseErrors = append(r.ParseErrors, Diagnostic{Path: path, Reason: reason})
}

// RecordWrite records a failed file write.
func (r *Report) RecordWrite(path, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.WriteErrors = append(r.WriteErrors, Diagnostic{Path: path, Reason: reason})
}

// RecordRejected records an entry dropped by the planner.
func (r *Report) RecordRejected(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rejected = append(r.Rejected, d)
}

// RecordFileWritten bumps the committed-file counter.
func (r *Report) RecordFileWritten() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FilesWritten++
}

// AddStats accumulates planner statistics across namespaces.
func (r *Report) AddStats(s PlanStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Stats.Unchanged += s.Unchanged
	r.Stats.Updated += s.Updated
	r.Stats.Added += s.Added
	r.Stats.Rejected += s.Rejected
}

// Failures returns the number of recorded errors. Zero means the pass was
// fully committed.
func (r *Report) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ParseErrors) + len(r.WriteErrors)
}

// Summary renders a one-line result for logs and CLI output.
func (r *Report) Summary() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("unchanged=%d updated=%d added=%d rejected=%d files=%d parse_errors=%d write_errors=%d",
		r.Stats.Unchanged, r.Stats.Updated, r.Stats.Added, r.Stats.Rejected,
		r.FilesWritten, len(r.ParseErrors), len(r.WriteErrors))
}
