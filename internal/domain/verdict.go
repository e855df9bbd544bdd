package domain

// CheckStatus is the outcome of one conformance check.
type CheckStatus string

const (
	CheckPass CheckStatus = "pass"
	CheckFail CheckStatus = "fail"
	CheckSkip CheckStatus = "skip"
)

func (s CheckStatus) Valid() bool {
	switch s {
	case CheckPass, CheckFail, CheckSkip:
		return true
	}
	return false
}

// Check is one named conformance check and its outcome.
type Check struct {
	Name   string      `json:"name"`
	Status CheckStatus `json:"status"`
	Detail string      `json:"detail,omitempty"`
}

// Verdict is the terminal output of one analysis run. Checks keep insertion
// order so rendered output is deterministic. Never mutated after construction.
type Verdict struct {
	Checks  []Check `json:"checks"`
	Passed  int     `json:"passed"`
	Failed  int     `json:"failed"`
	Skipped int     `json:"skipped"`
}

// HasData reports whether any check actually ran. A verdict with only
// skipped checks has no score.
func (v Verdict) HasData() bool {
	return v.Passed+v.Failed > 0
}

// Score returns passed/(passed+failed). Undefined when no checks ran;
// callers must gate on HasData.
func (v Verdict) Score() float64 {
	if !v.HasData() {
		return 0
	}
	return float64(v.Passed) / float64(v.Passed+v.Failed)
}
