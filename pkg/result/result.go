// Package result accumulates per-row eval outcomes into a run-level report
// and applies the pass-rate threshold decision.
package result

// Outcome classifies how a single row finished.
type Outcome string

const (
	// OutcomePass means the output satisfied the expected spec (or no
	// assertion was configured).
	OutcomePass Outcome = "pass"
	// OutcomeFail means the output contained none of the accepted
	// alternatives.
	OutcomeFail Outcome = "fail"
	// OutcomeError means the provider call failed; distinct from a content
	// mismatch.
	OutcomeError Outcome = "error"
)

// maxActualLen bounds how much of the model output is kept in a failure
// record.
const maxActualLen = 500

// RowResult records the outcome of one dataset row.
type RowResult struct {
	Index    int
	Vars     map[string]string
	Expected string
	Actual   string
	Term     string
	Outcome  Outcome
	Err      string
}

// RunReport aggregates row results for an entire run.
type RunReport struct {
	Model    string
	Passed   int
	Total    int
	Results  []RowResult
	Failures []RowResult
}

// Add records one row result, truncating the stored output for failures and
// updating the running counters. Failed and errored rows are also appended
// to the ordered failure list.
func (r *RunReport) Add(rr RowResult) {
	r.Total++
	if rr.Outcome == OutcomePass {
		r.Passed++
	} else {
		rr.Actual = Truncate(rr.Actual, maxActualLen)
		r.Failures = append(r.Failures, rr)
	}
	r.Results = append(r.Results, rr)
}

// PassRate returns passed/total as an integer percentage using floor
// division. An empty run has a rate of 0.
func (r *RunReport) PassRate() int {
	if r.Total == 0 {
		return 0
	}
	return 100 * r.Passed / r.Total
}

// Success reports whether the run clears the pass-rate threshold. Individual
// row failures are tolerated as long as the overall rate stays at or above
// threshold.
func (r *RunReport) Success(threshold int) bool {
	return r.PassRate() >= threshold
}

// Truncate shortens s to at most max bytes, appending "..." when trimmed.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
