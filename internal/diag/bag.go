package diag

import (
	"sort"
)

// Bag collects diagnostics for one file (or one merged run) up to a limit.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag that holds at most max diagnostics.
func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Add appends a diagnostic, honoring the limit.
// Returns false if the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether at least one SevError diagnostic is present.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the collected diagnostics.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// CountBySeverity returns the number of diagnostics per severity.
func (b *Bag) CountBySeverity() (errors, warnings, infos int) {
	for i := range b.items {
		switch b.items[i].Severity {
		case SevError:
			errors++
		case SevWarning:
			warnings++
		case SevInfo:
			infos++
		}
	}
	return errors, warnings, infos
}

// Merge appends diagnostics from another bag. The limit grows so the
// receiver keeps room for the source's full budget on top of the merged
// items; a merge must never cause a later Add to be silently dropped.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	if len(b.items)+other.max > b.max {
		b.max = len(b.items) + other.max
	}
}

// Sort orders diagnostics by file, start offset, end offset, then rule ID.
// FileIDs are assigned in sorted-path order by the driver, so this yields the
// path/line/column/rule total order the reporter promises.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return di.Code.ID() < dj.Code.ID()
	})
}

// Dedup removes diagnostics sharing the same code and primary span.
// The first occurrence wins; call after Sort for deterministic survivors.
func (b *Bag) Dedup() {
	type key struct {
		code  Code
		file  uint32
		start uint32
		end   uint32
	}
	seen := make(map[key]struct{}, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		k := key{code: d.Code, file: uint32(d.Primary.File), start: d.Primary.Start, end: d.Primary.End}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, d)
	}
	b.items = kept
}
