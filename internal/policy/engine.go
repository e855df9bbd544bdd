// Package policy implements the deterministic exit-status policy applied to
// a finished verdict. Thresholds live here, outside the comparison core, so
// changing CI gating never touches comparison semantics.
package policy

import (
	"fmt"

	"github.com/routerlab/conformance-go/internal/domain"
)

// Outcome classifies a verdict for process-level reporting.
type Outcome string

const (
	OutcomePerfect    Outcome = "perfect"
	OutcomeAcceptable Outcome = "acceptable"
	OutcomeFailing    Outcome = "failing"
	OutcomeNoData     Outcome = "no_data"
)

func (o Outcome) Valid() bool {
	switch o {
	case OutcomePerfect, OutcomeAcceptable, OutcomeFailing, OutcomeNoData:
		return true
	}
	return false
}

// Decision captures the classified outcome, its exit code, and a
// human-readable explanation.
type Decision struct {
	Outcome  Outcome
	ExitCode int
	Details  string
}

// Engine classifies verdict scores against an acceptability threshold.
type Engine struct {
	AcceptableScore float64
}

// NewEngine returns an engine with the default threshold: 80% of ran checks
// must pass to be acceptable.
func NewEngine() *Engine {
	return &Engine{AcceptableScore: 0.8}
}

// Decide maps a verdict to its outcome.
//
// Rules:
//  1. No checks ran → no_data (exit 3); vacuous results never pass.
//  2. Every ran check passed → perfect (exit 0).
//  3. Score >= threshold → acceptable (exit 1).
//  4. Otherwise → failing (exit 2).
func (e *Engine) Decide(v domain.Verdict) Decision {
	if !v.HasData() {
		return Decision{
			Outcome:  OutcomeNoData,
			ExitCode: 3,
			Details:  "no checks ran; score undefined",
		}
	}

	score := v.Score()
	switch {
	case v.Failed == 0:
		return Decision{
			Outcome:  OutcomePerfect,
			ExitCode: 0,
			Details:  fmt.Sprintf("all %d checks passed", v.Passed),
		}
	case score >= e.AcceptableScore:
		return Decision{
			Outcome:  OutcomeAcceptable,
			ExitCode: 1,
			Details:  fmt.Sprintf("%.1f%% of checks passed (%d failed)", score*100, v.Failed),
		}
	default:
		return Decision{
			Outcome:  OutcomeFailing,
			ExitCode: 2,
			Details:  fmt.Sprintf("%.1f%% of checks passed (%d failed)", score*100, v.Failed),
		}
	}
}
