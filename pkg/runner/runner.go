// Package runner drives an eval run: fill the template for each dataset row,
// call the completion provider, check the output, and aggregate results.
package runner

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/jdgilhuly/goldeneval/pkg/checker"
	"github.com/jdgilhuly/goldeneval/pkg/dataset"
	"github.com/jdgilhuly/goldeneval/pkg/provider"
	"github.com/jdgilhuly/goldeneval/pkg/result"
	"github.com/jdgilhuly/goldeneval/pkg/template"
)

// previewLen bounds the rendered prompt excerpt shown in dry runs.
const previewLen = 200

// Config controls runner behavior.
type Config struct {
	Model     string
	MaxTokens int
}

// Runner executes dataset rows sequentially against a provider. One row is
// fully processed, network round-trip included, before the next begins.
type Runner struct {
	cfg Config
}

// New creates a Runner with the given configuration.
func New(cfg Config) *Runner {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	return &Runner{cfg: cfg}
}

// ProgressFunc is called after each row completes. Index is 0-based, total
// is the number of rows.
type ProgressFunc func(index, total int, rr result.RowResult)

// Run executes all rows against the provider and returns the aggregated
// report. A provider failure on one row is recorded as an error outcome and
// does not abort the remaining rows. Run itself only fails when the context
// is cancelled.
func (r *Runner) Run(ctx context.Context, rows []dataset.Row, tmpl string, p provider.Provider, progress ProgressFunc) (*result.RunReport, error) {
	report := &result.RunReport{Model: r.cfg.Model}

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		rr := r.runRow(ctx, row, tmpl, p)
		report.Add(rr)

		if progress != nil {
			progress(i, len(rows), rr)
		}
	}

	return report, nil
}

// runRow processes a single dataset row: fill, complete, check.
func (r *Runner) runRow(ctx context.Context, row dataset.Row, tmpl string, p provider.Provider) result.RowResult {
	rr := result.RowResult{
		Index:    row.Index,
		Vars:     row.Vars,
		Expected: row.Expected,
	}

	filled := template.Fill(tmpl, row.Vars)

	resp, err := p.Complete(ctx, &provider.Request{
		Model:       r.cfg.Model,
		Messages:    []provider.Message{{Role: "user", Content: filled}},
		Temperature: 0,
		MaxTokens:   r.cfg.MaxTokens,
	})
	if err != nil {
		rr.Outcome = result.OutcomeError
		rr.Err = err.Error()
		return rr
	}

	rr.Actual = resp.Content
	m := checker.Check(resp.Content, row.Expected)
	if m.Pass {
		rr.Outcome = result.OutcomePass
		rr.Term = m.Term
	} else {
		rr.Outcome = result.OutcomeFail
	}
	return rr
}

// Preview renders each row's filled prompt without contacting the provider
// and writes a bounded-length excerpt alongside the row's variables and
// expected spec. It returns the total row count and never needs a
// credential.
func (r *Runner) Preview(w io.Writer, rows []dataset.Row, tmpl string) int {
	for _, row := range rows {
		filled := template.Fill(tmpl, row.Vars)

		names := make([]string, 0, len(row.Vars))
		for name := range row.Vars {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintf(w, "row %d:\n", row.Index)
		for _, name := range names {
			fmt.Fprintf(w, "  %s = %s\n", name, row.Vars[name])
		}
		if row.Expected != "" {
			fmt.Fprintf(w, "  expect: %s\n", row.Expected)
		} else {
			fmt.Fprintf(w, "  expect: (none)\n")
		}
		fmt.Fprintf(w, "  prompt: %s\n", result.Truncate(filled, previewLen))
	}
	return len(rows)
}
