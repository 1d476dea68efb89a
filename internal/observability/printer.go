package observability

import (
	"fmt"
	"io"

	"github.com/jonathan/content-pipeline/internal/db"
	"github.com/jonathan/content-pipeline/internal/pipeline"
)

// Printer handles operator-facing output for the CLI commands.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintBatchResult outputs a human-readable summary of a completed run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintBatchResult(res *pipeline.BatchResult) {
	if res == nil {
		return
	}
	fmt.Fprintf(p.out, "Run complete: %s\n", res.Summary())
	for _, f := range res.Failures {
		fmt.Fprintf(p.out, "  entry %s failed while %s: %v\n", f.EntryID, f.Stage, f.Err)
	}
}

// PrintEntries outputs one line per calendar entry, for the pending command.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintEntries(entries []db.CalendarEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.out, "No entries awaiting content generation.")
		return
	}
	fmt.Fprintf(p.out, "%d entries awaiting content generation:\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(p.out, "  %s  %-12s %-12s %-9s topic=%q\n",
			e.ID, e.ContentType, e.Platform, e.State(), e.Topic)
	}
}
