package driver

import (
	"cstyle/internal/diag"
	"cstyle/internal/source"
)

// Status summarizes one run for exit-code mapping.
type Status int

const (
	// StatusClean means every file was checked and nothing was reported.
	StatusClean Status = iota
	// StatusViolations means the run completed with findings.
	StatusViolations
	// StatusFatal means at least one file could not be processed at all.
	StatusFatal
)

// FileResult carries the per-file outcome. Bags stay separate until the
// driver merges them so that per-file ordering is independent of scheduling.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	Fatal    bool
	CacheHit bool
}

// RunResult is the aggregate outcome of one checker run. Bag holds the
// merged, sorted and deduplicated diagnostics of all files.
type RunResult struct {
	FileSet *source.FileSet
	Files   []FileResult
	Bag     *diag.Bag
}

// Status derives the run status: fatal beats violations beats clean.
func (r *RunResult) Status() Status {
	for i := range r.Files {
		if r.Files[i].Fatal {
			return StatusFatal
		}
	}
	if r.Bag.Len() > 0 {
		return StatusViolations
	}
	return StatusClean
}

// Counts reports the merged totals per severity.
func (r *RunResult) Counts() (errors, warnings, infos int) {
	return r.Bag.CountBySeverity()
}
