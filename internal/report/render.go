// Package report renders structured comparison results for the console.
// This is the display boundary: absent values become the "MISSING" text here
// and nowhere else.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/routerlab/conformance-go/internal/domain"
	"github.com/routerlab/conformance-go/internal/policy"
	"github.com/routerlab/conformance-go/internal/runner"
)

const missingDisplay = "MISSING"

const rule = "================================================================================"

// WriteRun renders every report of a finished run plus the final verdict.
func WriteRun(w io.Writer, result *runner.RunResult, decision policy.Decision) {
	for _, s := range result.Structural {
		WriteStructural(w, s.Name, s.Report)
	}
	for _, s := range result.Streams {
		WriteStream(w, s.Name, s.Report, s.Stats)
	}
	if len(result.Missing) > 0 {
		fmt.Fprintf(w, "missing samples: %s\n\n", strings.Join(result.Missing, ", "))
	}
	WriteVerdict(w, result.Verdict, decision)
}

// WriteStructural renders the path-by-path comparison table and the
// important-field value sub-table.
func WriteStructural(w io.Writer, name string, r domain.StructuralReport) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "STRUCTURE COMPARISON: %s\n", name)
	fmt.Fprintln(w, rule)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD PATH\tREFERENCE\tCANDIDATE\tMATCH")
	for _, row := range r.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			row.Path, kindDisplay(row.ReferenceKind), kindDisplay(row.CandidateKind), mark(row.Matched))
	}
	tw.Flush()

	fmt.Fprintf(w, "\nstructure match: %d/%d (%.1f%%)\n", r.MatchedCount, r.TotalCount, r.MatchRatio()*100)

	if len(r.ValueChecks) > 0 {
		fmt.Fprintln(w, "\nimportant field values:")
		tw = tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
		for _, vc := range r.ValueChecks {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				vc.Path,
				literalDisplay(vc.Reference, vc.ReferencePresent),
				literalDisplay(vc.Candidate, vc.CandidatePresent),
				mark(vc.Equal))
		}
		tw.Flush()
	}
	fmt.Fprintln(w)
}

// WriteStream renders the line statistics and identity-consistency table of
// one analyzed stream.
func WriteStream(w io.Writer, name string, r domain.ConsistencyReport, stats domain.LineStats) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "STREAM ANALYSIS: %s\n", name)
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "total lines: %d\n", stats.TotalLines)
	fmt.Fprintf(w, "data lines: %d (decoded %d, malformed %d, done %d)\n",
		stats.DataLines, stats.DecodedFrames, stats.MalformedFrames, stats.DoneMarkers)
	fmt.Fprintf(w, "empty lines: %d\n", stats.EmptyLines)
	fmt.Fprintf(w, "other lines: %d\n\n", stats.OtherLines)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tDISTINCT\tFIRST VALUE\tCONSISTENT")
	for _, f := range r.Fields {
		first := missingDisplay
		if len(f.Values) > 0 {
			first = literalDisplay(f.FirstValue, true)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", f.Field, f.DistinctCount, first, mark(f.Consistent))
	}
	tw.Flush()
	fmt.Fprintf(w, "\ntotal frames: %d\n\n", r.TotalFrames)
}

// WriteVerdict renders the per-check table and the overall outcome.
func WriteVerdict(w io.Writer, v domain.Verdict, decision policy.Decision) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "VERDICT")
	fmt.Fprintln(w, rule)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, c := range v.Checks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, strings.ToUpper(string(c.Status)), c.Detail)
	}
	tw.Flush()

	if v.HasData() {
		fmt.Fprintf(w, "\nscore: %.1f%% (%d passed, %d failed, %d skipped)\n",
			v.Score()*100, v.Passed, v.Failed, v.Skipped)
	} else {
		fmt.Fprintf(w, "\nscore: no checks ran (%d skipped)\n", v.Skipped)
	}
	fmt.Fprintf(w, "outcome: %s (%s)\n", decision.Outcome, decision.Details)
}

func kindDisplay(t domain.TypeTag) string {
	if t == domain.KindMissing {
		return missingDisplay
	}
	return string(t)
}

func literalDisplay(v any, present bool) string {
	if !present {
		return missingDisplay
	}
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%v", v)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
