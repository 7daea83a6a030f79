// Package report renders per-row progress lines and the run summary to the
// terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/jdgilhuly/goldeneval/pkg/result"
)

// excerptLen bounds the model-output excerpt shown inline for failures.
const excerptLen = 300

// ColorEnabled reports whether w is a terminal that supports color output.
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes eval output to a single destination, optionally colored.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a Printer for w. Color is applied only when enabled.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	return &Printer{w: w, color: useColor}
}

// Row writes one live progress line for a completed row.
func (p *Printer) Row(rr result.RowResult) {
	switch rr.Outcome {
	case result.OutcomePass:
		label := "PASS"
		if rr.Term != "" {
			label = fmt.Sprintf("PASS (matched %q)", rr.Term)
		}
		fmt.Fprintf(p.w, "%s row %d: %s\n", p.green("✓"), rr.Index, label)
	case result.OutcomeError:
		fmt.Fprintf(p.w, "%s row %d: %s - %s\n", p.red("✗"), rr.Index, p.yellow("API ERROR"), rr.Err)
	default:
		fmt.Fprintf(p.w, "%s row %d: %s\n", p.red("✗"), rr.Index, p.red("FAIL"))
		fmt.Fprintf(p.w, "  expected to contain: %s\n", rr.Expected)
		fmt.Fprintf(p.w, "  got: %s\n", result.Truncate(rr.Actual, excerptLen))
	}
}

// Summary writes the aggregate report: pass counts, rate, threshold verdict,
// and a detail block for every failure.
func (p *Printer) Summary(r *result.RunReport, threshold int) {
	sep := strings.Repeat("-", 40)
	fmt.Fprintln(p.w, sep)
	fmt.Fprintf(p.w, "Results: %d/%d passed (%d%%)\n", r.Passed, r.Total, r.PassRate())

	if len(r.Failures) > 0 {
		fmt.Fprintf(p.w, "\n%d row(s) failed:\n", len(r.Failures))
		for _, f := range r.Failures {
			p.failureDetail(f)
		}
	}

	fmt.Fprintln(p.w)
	if r.Success(threshold) {
		fmt.Fprintf(p.w, "%s (pass rate %d%% >= threshold %d%%)\n",
			p.green("SUCCESS"), r.PassRate(), threshold)
	} else {
		fmt.Fprintf(p.w, "%s (pass rate %d%% < threshold %d%%)\n",
			p.red("FAILURE"), r.PassRate(), threshold)
	}
}

func (p *Printer) failureDetail(f result.RowResult) {
	if f.Outcome == result.OutcomeError {
		fmt.Fprintf(p.w, "  row %d: API error: %s\n", f.Index, f.Err)
	} else {
		fmt.Fprintf(p.w, "  row %d: expected %q, got %q\n", f.Index, f.Expected, f.Actual)
	}

	names := make([]string, 0, len(f.Vars))
	for name := range f.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(p.w, "    %s = %s\n", name, f.Vars[name])
	}
}

func (p *Printer) green(s string) string {
	if p.color {
		return color.GreenString(s)
	}
	return s
}

func (p *Printer) red(s string) string {
	if p.color {
		return color.RedString(s)
	}
	return s
}

func (p *Printer) yellow(s string) string {
	if p.color {
		return color.YellowString(s)
	}
	return s
}
