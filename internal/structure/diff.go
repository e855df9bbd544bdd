package structure

import (
	"sort"

	"github.com/routerlab/conformance-go/internal/domain"
)

// Diff compares two fingerprints over the union of their path sets. Rows are
// emitted in lexicographic path order. A path absent on one side contributes
// KindMissing there and counts as a mismatch. Literal values are compared
// only for the caller-supplied important paths; the general sweep checks
// kinds alone, since response content legitimately differs.
func Diff(reference, candidate domain.Fingerprint, importantPaths []string) domain.StructuralReport {
	paths := make([]string, 0, len(reference)+len(candidate))
	seen := make(map[string]struct{}, len(reference)+len(candidate))
	for p := range reference {
		paths = append(paths, p)
		seen[p] = struct{}{}
	}
	for p := range candidate {
		if _, ok := seen[p]; !ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	report := domain.StructuralReport{
		Rows:       make([]domain.ComparisonRow, 0, len(paths)),
		TotalCount: len(paths),
	}

	for _, p := range paths {
		refKind := kindAt(reference, p)
		candKind := kindAt(candidate, p)
		matched := refKind == candKind
		if matched {
			report.MatchedCount++
		}
		report.Rows = append(report.Rows, domain.ComparisonRow{
			Path:          p,
			ReferenceKind: refKind,
			CandidateKind: candKind,
			Matched:       matched,
		})
	}

	for _, p := range importantPaths {
		report.ValueChecks = append(report.ValueChecks, valueCheck(reference, candidate, p))
	}

	return report
}

func kindAt(fp domain.Fingerprint, path string) domain.TypeTag {
	if d, ok := fp[path]; ok {
		return d.Kind
	}
	return domain.KindMissing
}

func valueCheck(reference, candidate domain.Fingerprint, path string) domain.ValueCheck {
	refVal, refOK := literalAt(reference, path)
	candVal, candOK := literalAt(candidate, path)

	check := domain.ValueCheck{
		Path:             path,
		Reference:        refVal,
		ReferencePresent: refOK,
		Candidate:        candVal,
		CandidatePresent: candOK,
	}
	switch {
	case !refOK && !candOK:
		// Absent on both sides compares equal, mirroring the
		// shared-sentinel behavior the report layer renders.
		check.Equal = true
	case refOK != candOK:
		check.Equal = false
	default:
		check.Equal = literalEqual(refVal, candVal)
	}
	return check
}

func literalAt(fp domain.Fingerprint, path string) (any, bool) {
	d, ok := fp[path]
	if !ok || !d.HasLiteral {
		return nil, false
	}
	return d.Literal, true
}

// literalEqual compares two scalar literals, normalizing numeric types so a
// decoded float64 and a hand-built int compare by value.
func literalEqual(a, b any) bool {
	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)
	if aNum && bNum {
		return af == bf
	}
	if aNum != bNum {
		return false
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
