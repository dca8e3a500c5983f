package synccontroller

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/boardbridge/sync/diff"
)

// Diagnostics accumulates every diff.SkipRecord a Controller has produced
// over its lifetime, independent of the per-cycle SkippedEntities carried
// on the wire, so an out-of-scope UI layer has a running, reportable
// history of AdapterFailure events to show the user (SPEC_FULL.md §4).
type Diagnostics struct {
	mu      sync.Mutex
	records []diff.SkipRecord
}

// NewDiagnostics returns an empty Diagnostics.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Record appends one skip.
func (d *Diagnostics) Record(r diff.SkipRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, r)
}

// RecordAll appends a batch of skips, e.g. everything one Updater.Apply
// call produced.
func (d *Diagnostics) RecordAll(rs []diff.SkipRecord) {
	if len(rs) == 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, rs...)
}

// Records returns a snapshot copy of every skip recorded so far.
func (d *Diagnostics) Records() []diff.SkipRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]diff.SkipRecord, len(d.records))
	copy(out, d.records)
	return out
}

// WriteReport writes a formatted, per-collection-bucketed summary of
// every recorded skip, the same bucket-then-print shape as the teacher's
// VerificationReport.WriteReport.
func (d *Diagnostics) WriteReport(w io.Writer) {
	d.mu.Lock()
	records := make([]diff.SkipRecord, len(d.records))
	copy(records, d.records)
	d.mu.Unlock()

	separator := strings.Repeat("-", 60)
	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "SYNC DIAGNOSTICS")
	fmt.Fprintln(w, separator)

	if len(records) == 0 {
		fmt.Fprintln(w, "no skipped entities")
		return
	}

	byCollection := make(map[string][]diff.SkipRecord)
	for _, r := range records {
		byCollection[r.Collection] = append(byCollection[r.Collection], r)
	}
	collections := make([]string, 0, len(byCollection))
	for c := range byCollection {
		collections = append(collections, c)
	}
	sort.Strings(collections)

	for _, c := range collections {
		fmt.Fprintf(w, "\n%s (%d skipped):\n", c, len(byCollection[c]))
		for _, r := range byCollection[c] {
			fmt.Fprintf(w, "  %s: %s\n", r.KIID, r.Reason)
		}
	}
}
