package capture

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/routerlab/conformance-go/internal/samples"
)

// Pair captures matching samples from the reference and candidate endpoints
// and writes all four files under one directory.
type Pair struct {
	Reference *Client
	Candidate *Client
	Dir       string
}

// Run captures a non-streaming response and a stream from each endpoint.
// The two endpoints are queried concurrently; each endpoint's own requests
// stay sequential so its samples come from back-to-back calls.
func (p *Pair) Run(ctx context.Context, model, prompt string) error {
	if p.Reference == nil || p.Candidate == nil {
		return fmt.Errorf("capture: both endpoints must be configured")
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("capture: create %s: %w", p.Dir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.captureOne(ctx, p.Reference, samples.RoleReferenceResponse, samples.RoleReferenceStream, model, prompt)
	})
	g.Go(func() error {
		return p.captureOne(ctx, p.Candidate, samples.RoleCandidateResponse, samples.RoleCandidateStream, model, prompt)
	})
	return g.Wait()
}

func (p *Pair) captureOne(ctx context.Context, c *Client, respRole, streamRole samples.Role, model, prompt string) error {
	body, err := c.Completion(ctx, model, prompt)
	if err != nil {
		return err
	}
	if err := p.write(respRole, body); err != nil {
		return err
	}

	text, err := c.StreamCompletion(ctx, model, prompt)
	if err != nil {
		return err
	}
	return p.write(streamRole, text)
}

func (p *Pair) write(role samples.Role, content string) error {
	path := filepath.Join(p.Dir, samples.Filename(role))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("capture: write %s: %w", path, err)
	}
	slog.Info("captured sample", "role", string(role), "path", path, "bytes", len(content))
	return nil
}
