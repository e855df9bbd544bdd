// Package mcpserver exposes the conformance toolkit via MCP tools, so AI
// assistants can compare responses and inspect verdicts directly.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/routerlab/conformance-go/internal/config"
	"github.com/routerlab/conformance-go/internal/gen"
	"github.com/routerlab/conformance-go/internal/policy"
	"github.com/routerlab/conformance-go/internal/runner"
	"github.com/routerlab/conformance-go/internal/samples"
	"github.com/routerlab/conformance-go/internal/stream"
	"github.com/routerlab/conformance-go/internal/structure"
	"github.com/routerlab/conformance-go/internal/verdict"
)

// RegisterTools registers all conformance MCP tools on the given server.
// cfg supplies defaults (important paths, model prefixes, samples directory)
// that individual calls may override.
func RegisterTools(server *mcp.Server, cfg config.Config) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "compare_responses",
			Description: "Structurally compare two JSON response documents path by path",
		},
		compareResponsesHandler(cfg),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "analyze_stream",
			Description: "Decode an SSE event stream and check identity-field consistency across chunks",
		},
		analyzeStreamHandler(),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "run_verdict",
			Description: "Run all comparisons over captured samples in a directory and return the verdict",
		},
		runVerdictHandler(cfg),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "generate_stream",
			Description: "Generate a synthetic SSE completion stream for testing",
		},
		generateStreamHandler(),
	)
}

type compareInput struct {
	Reference      json.RawMessage `json:"reference"`
	Candidate      json.RawMessage `json:"candidate"`
	ImportantPaths []string        `json:"important_paths,omitempty"`
}

func compareResponsesHandler(cfg config.Config) mcp.ToolHandlerFor[compareInput, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input compareInput) (*mcp.CallToolResult, any, error) {
		if len(input.Reference) == 0 || len(input.Candidate) == 0 {
			return errorResult("reference and candidate documents are required"), nil, nil
		}

		var ref, cand any
		if err := json.Unmarshal(input.Reference, &ref); err != nil {
			return errorResult(fmt.Sprintf("reference is not valid JSON: %v", err)), nil, nil
		}
		if err := json.Unmarshal(input.Candidate, &cand); err != nil {
			return errorResult(fmt.Sprintf("candidate is not valid JSON: %v", err)), nil, nil
		}

		paths := input.ImportantPaths
		if len(paths) == 0 {
			paths = cfg.ImportantPaths
		}
		report := structure.Diff(structure.Fingerprint(ref), structure.Fingerprint(cand), paths)
		return textResult(report)
	}
}

type analyzeInput struct {
	Text string `json:"text"`
}

func analyzeStreamHandler() mcp.ToolHandlerFor[analyzeInput, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, any, error) {
		if input.Text == "" {
			return errorResult("text is required"), nil, nil
		}

		frames := stream.ExtractFrames(input.Text)
		return textResult(map[string]any{
			"report": stream.Analyze(frames),
			"stats":  stream.Stats(input.Text),
		})
	}
}

type verdictInput struct {
	Dir string `json:"dir,omitempty"`
}

func runVerdictHandler(cfg config.Config) mcp.ToolHandlerFor[verdictInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input verdictInput) (*mcp.CallToolResult, any, error) {
		dir := input.Dir
		if dir == "" {
			dir = cfg.SamplesDir
		}

		result, err := runner.Run(ctx, runner.Options{
			Resolver:       samples.NewResolver(dir),
			ImportantPaths: cfg.ImportantPaths,
			ModelPolicy:    verdict.ModelPolicy{AllowedPrefixes: cfg.ModelPrefixes},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("run_verdict: %w", err)
		}

		decision := policy.NewEngine().Decide(result.Verdict)
		return textResult(map[string]any{
			"outcome": decision.Outcome,
			"details": decision.Details,
			"score":   result.Verdict.Score(),
			"run":     result,
		})
	}
}

type generateInput struct {
	Model        string `json:"model,omitempty"`
	Chunks       int    `json:"chunks,omitempty"`
	Inconsistent bool   `json:"inconsistent,omitempty"`
	ToolCalling  bool   `json:"tool_calling,omitempty"`
}

func generateStreamHandler() mcp.ToolHandlerFor[generateInput, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, any, error) {
		opts := gen.Defaults()
		if input.Model != "" {
			opts.Model = input.Model
		}
		if input.Chunks > 0 {
			opts.Chunks = input.Chunks
		}
		opts.Consistent = !input.Inconsistent
		opts.ToolCalling = input.ToolCalling

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: gen.Stream(opts)},
			},
		}, nil, nil
	}
}

func textResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
