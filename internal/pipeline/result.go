package pipeline

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Stage names the step of the per-entry state machine a failure happened in.
type Stage string

// Per-entry pipeline stages.
const (
	StageValidating   Stage = "validating"
	StageGenerating   Stage = "generating"
	StageSynthesizing Stage = "synthesizing"
	StageStoring      Stage = "storing"
	StageFinalizing   Stage = "finalizing"
)

// EntryFailure records one entry that did not make it through the pipeline.
type EntryFailure struct {
	EntryID uuid.UUID
	Stage   Stage
	Err     error
}

// BatchResult aggregates the outcome of one run. It exists for reporting
// only and is never persisted.
type BatchResult struct {
	Discovered int
	Succeeded  int
	Failed     int
	Failures   []EntryFailure
}

// Summary returns a one-line operator-facing report of the run.
func (r *BatchResult) Summary() string {
	return fmt.Sprintf("discovered=%d succeeded=%d failed=%d", r.Discovered, r.Succeeded, r.Failed)
}

// Describe returns the summary plus one line per failure with the entry id
// and a human-readable reason.
func (r *BatchResult) Describe() string {
	var b strings.Builder
	b.WriteString(r.Summary())
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "\n  entry %s failed while %s: %v", f.EntryID, f.Stage, f.Err)
	}
	return b.String()
}
