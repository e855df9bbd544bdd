// Package runner orchestrates one full conformance run: resolve captured
// samples, feed them through the comparison core, and fold the results into
// a verdict. Missing samples degrade their checks to skip; the run only
// fails outright on unreadable or malformed inputs.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/routerlab/conformance-go/internal/domain"
	"github.com/routerlab/conformance-go/internal/observability"
	"github.com/routerlab/conformance-go/internal/samples"
	"github.com/routerlab/conformance-go/internal/stream"
	"github.com/routerlab/conformance-go/internal/structure"
	"github.com/routerlab/conformance-go/internal/verdict"
)

// Options configures one run.
type Options struct {
	Resolver       samples.Resolver
	ImportantPaths []string
	ModelPolicy    verdict.ModelPolicy

	// Metrics is optional; nil disables recording.
	Metrics *observability.Metrics
}

// StructuralResult pairs one structural comparison with its inputs.
type StructuralResult struct {
	Name          string                  `json:"name"`
	ReferencePath string                  `json:"reference_path,omitempty"`
	CandidatePath string                  `json:"candidate_path,omitempty"`
	Report        domain.StructuralReport `json:"report"`
}

// StreamResult pairs one stream analysis with its input.
type StreamResult struct {
	Name   string                   `json:"name"`
	Path   string                   `json:"path"`
	Report domain.ConsistencyReport `json:"report"`
	Stats  domain.LineStats         `json:"stats"`

	firstFrame stream.Frame
}

// RunResult is everything one run produced.
type RunResult struct {
	Structural []StructuralResult `json:"structural"`
	Streams    []StreamResult     `json:"streams"`
	Missing    []string           `json:"missing,omitempty"`
	Verdict    domain.Verdict     `json:"verdict"`
}

// Run executes a full conformance run.
func Run(ctx context.Context, opts Options) (*RunResult, error) {
	if opts.Resolver == nil {
		return nil, fmt.Errorf("runner: resolver is required")
	}

	result := &RunResult{}

	if err := runStructural(opts, result); err != nil {
		return nil, err
	}
	if err := runStreams(ctx, opts, result); err != nil {
		return nil, err
	}
	crossStreamComparison(opts, result)

	var structuralReports []verdict.NamedStructural
	for _, s := range result.Structural {
		structuralReports = append(structuralReports, verdict.NamedStructural{Name: s.Name, Report: s.Report})
		if opts.Metrics != nil {
			opts.Metrics.RecordComparison(ctx, s.Name, s.Report.TotalCount-s.Report.MatchedCount)
		}
	}
	var consistencyReports []verdict.NamedConsistency
	for _, s := range result.Streams {
		consistencyReports = append(consistencyReports, verdict.NamedConsistency{Name: s.Name, Report: s.Report})
		if opts.Metrics != nil {
			opts.Metrics.RecordStream(ctx, s.Name, s.Report.TotalFrames)
		}
	}

	result.Verdict = verdict.Aggregate(structuralReports, consistencyReports, opts.ModelPolicy)
	if opts.Metrics != nil {
		opts.Metrics.RecordVerdict(ctx, result.Verdict.Failed)
	}
	return result, nil
}

func runStructural(opts Options, result *RunResult) error {
	refPath, refErr := opts.Resolver(samples.RoleReferenceResponse)
	candPath, candErr := opts.Resolver(samples.RoleCandidateResponse)
	for _, lookup := range []struct {
		role samples.Role
		err  error
	}{
		{samples.RoleReferenceResponse, refErr},
		{samples.RoleCandidateResponse, candErr},
	} {
		if lookup.err != nil {
			if !errors.Is(lookup.err, samples.ErrSampleNotFound) {
				return lookup.err
			}
			result.Missing = append(result.Missing, string(lookup.role))
			slog.Warn("sample missing, structural comparison skipped", "role", lookup.role)
		}
	}
	if refErr != nil || candErr != nil {
		return nil
	}

	refDoc, err := samples.LoadJSON(refPath)
	if err != nil {
		return err
	}
	candDoc, err := samples.LoadJSON(candPath)
	if err != nil {
		return err
	}

	result.Structural = append(result.Structural, StructuralResult{
		Name:          "non_streaming",
		ReferencePath: refPath,
		CandidatePath: candPath,
		Report:        structure.Diff(structure.Fingerprint(refDoc), structure.Fingerprint(candDoc), opts.ImportantPaths),
	})
	return nil
}

func runStreams(ctx context.Context, opts Options, result *RunResult) error {
	roles := []struct {
		name string
		role samples.Role
	}{
		{"reference_stream", samples.RoleReferenceStream},
		{"candidate_stream", samples.RoleCandidateStream},
	}

	results := make([]*StreamResult, len(roles))
	missing := make([]bool, len(roles))

	g, _ := errgroup.WithContext(ctx)
	for i, r := range roles {
		g.Go(func() error {
			path, err := opts.Resolver(r.role)
			if err != nil {
				if errors.Is(err, samples.ErrSampleNotFound) {
					missing[i] = true
					return nil
				}
				return err
			}
			text, err := samples.LoadText(path)
			if err != nil {
				return err
			}
			frames := stream.ExtractFrames(text)
			sr := &StreamResult{
				Name:   r.name,
				Path:   path,
				Report: stream.Analyze(frames),
				Stats:  stream.Stats(text),
			}
			if len(frames) > 0 {
				sr.firstFrame = frames[0]
			}
			results[i] = sr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Deterministic order regardless of which goroutine finished first.
	for i, r := range results {
		if missing[i] {
			result.Missing = append(result.Missing, string(roles[i].role))
			slog.Warn("sample missing, stream analysis skipped", "role", roles[i].role)
			continue
		}
		if r != nil {
			result.Streams = append(result.Streams, *r)
		}
	}
	return nil
}

// crossStreamComparison diffs the first decoded chunk of each stream, the
// structural analogue of the non-streaming comparison.
func crossStreamComparison(opts Options, result *RunResult) {
	var ref, cand *StreamResult
	for i := range result.Streams {
		switch result.Streams[i].Name {
		case "reference_stream":
			ref = &result.Streams[i]
		case "candidate_stream":
			cand = &result.Streams[i]
		}
	}
	if ref == nil || cand == nil || ref.firstFrame == nil || cand.firstFrame == nil {
		return
	}

	result.Structural = append(result.Structural, StructuralResult{
		Name:          "streaming_first_chunk",
		ReferencePath: ref.Path,
		CandidatePath: cand.Path,
		Report: structure.Diff(
			structure.Fingerprint(map[string]any(ref.firstFrame)),
			structure.Fingerprint(map[string]any(cand.firstFrame)),
			opts.ImportantPaths,
		),
	})
}
