// Package verdict folds structural and consistency reports into one
// pass/fail/skip verdict with an overall score.
package verdict

import (
	"fmt"
	"strings"

	"github.com/routerlab/conformance-go/internal/domain"
	"github.com/routerlab/conformance-go/internal/stream"
)

// ModelPolicy is the heuristic sanity check on observed model names: a name
// is legitimate when it carries one of the allowed prefixes. An empty prefix
// list accepts any non-empty name.
type ModelPolicy struct {
	AllowedPrefixes []string
}

// Legitimate reports whether a model name matches the allow-list.
func (p ModelPolicy) Legitimate(model string) bool {
	if model == "" {
		return false
	}
	if len(p.AllowedPrefixes) == 0 {
		return true
	}
	for _, prefix := range p.AllowedPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

// NamedStructural pairs a structural report with the sample it came from.
type NamedStructural struct {
	Name   string
	Report domain.StructuralReport
}

// NamedConsistency pairs a consistency report with the stream it came from.
type NamedConsistency struct {
	Name   string
	Report domain.ConsistencyReport
}

// Aggregate builds the verdict for one analysis run. Each structural report
// contributes one check, passing only on a full structural match. Each
// consistency report contributes one check per identity field plus a
// model-name legitimacy check; a report over zero frames is inconclusive and
// contributes skips. When a whole category has no reports, a single skipped
// placeholder check records that nothing ran.
func Aggregate(structural []NamedStructural, consistency []NamedConsistency, models ModelPolicy) domain.Verdict {
	var v domain.Verdict

	if len(structural) == 0 {
		add(&v, domain.Check{Name: "structure", Status: domain.CheckSkip, Detail: "no structural reports"})
	}
	for _, s := range structural {
		add(&v, structuralCheck(s))
	}

	if len(consistency) == 0 {
		add(&v, domain.Check{Name: "stream", Status: domain.CheckSkip, Detail: "no stream reports"})
	}
	for _, c := range consistency {
		for _, check := range consistencyChecks(c, models) {
			add(&v, check)
		}
	}

	return v
}

func structuralCheck(s NamedStructural) domain.Check {
	name := "structure:" + s.Name
	if s.Report.TotalCount == 0 {
		return domain.Check{Name: name, Status: domain.CheckSkip, Detail: "empty document"}
	}
	status := domain.CheckFail
	if s.Report.FullMatch() {
		status = domain.CheckPass
	}
	return domain.Check{
		Name:   name,
		Status: status,
		Detail: fmt.Sprintf("%d/%d paths matched", s.Report.MatchedCount, s.Report.TotalCount),
	}
}

func consistencyChecks(c NamedConsistency, models ModelPolicy) []domain.Check {
	prefix := "stream:" + c.Name + ":"
	checks := make([]domain.Check, 0, len(c.Report.Fields)+1)

	if c.Report.TotalFrames == 0 {
		for _, field := range c.Report.Fields {
			checks = append(checks, domain.Check{
				Name:   prefix + field.Field,
				Status: domain.CheckSkip,
				Detail: "no frames decoded",
			})
		}
		checks = append(checks, domain.Check{
			Name:   prefix + "model_name",
			Status: domain.CheckSkip,
			Detail: "no frames decoded",
		})
		return checks
	}

	for _, field := range c.Report.Fields {
		check := domain.Check{Name: prefix + field.Field}
		switch {
		case len(field.Values) == 0:
			// Field never present: vacuously consistent.
			check.Status = domain.CheckPass
			check.Detail = "field not supplied by any frame"
		case field.Consistent:
			check.Status = domain.CheckPass
			check.Detail = fmt.Sprintf("1 distinct value across %d frames", len(field.Values))
		default:
			check.Status = domain.CheckFail
			check.Detail = fmt.Sprintf("%d distinct values across %d frames", field.DistinctCount, len(field.Values))
		}
		checks = append(checks, check)
	}

	checks = append(checks, modelNameCheck(prefix, c.Report, models))
	return checks
}

func modelNameCheck(prefix string, r domain.ConsistencyReport, models ModelPolicy) domain.Check {
	check := domain.Check{Name: prefix + "model_name"}

	field, ok := r.Field(stream.FieldModel)
	if !ok || len(field.Values) == 0 {
		check.Status = domain.CheckSkip
		check.Detail = "no model name observed"
		return check
	}

	name, ok := field.FirstValue.(string)
	if !ok {
		check.Status = domain.CheckFail
		check.Detail = "model name is not a string"
		return check
	}
	if models.Legitimate(name) {
		check.Status = domain.CheckPass
		check.Detail = name
	} else {
		check.Status = domain.CheckFail
		check.Detail = fmt.Sprintf("%q matches no allowed prefix", name)
	}
	return check
}

func add(v *domain.Verdict, c domain.Check) {
	v.Checks = append(v.Checks, c)
	switch c.Status {
	case domain.CheckPass:
		v.Passed++
	case domain.CheckFail:
		v.Failed++
	case domain.CheckSkip:
		v.Skipped++
	}
}
