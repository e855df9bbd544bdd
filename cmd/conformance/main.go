// Command conformance verifies that a candidate chat-completions API is
// structurally compatible with a reference implementation.
//
// Usage:
//
//	conformance compare  --reference FILE --candidate FILE [--json]
//	conformance stream   --file FILE [--json]
//	conformance verdict  [--dir DIR] [--json]
//	conformance generate [--model M] [--chunks N] [--inconsistent] [--tool-calling] [--out FILE]
//	conformance capture  --reference-url URL --candidate-url URL [--dir DIR] [--model M] [--prompt P]
//	conformance serve
//
// verdict exits 0 when every check passed, 1 when the score is acceptable,
// 2 when it is not, and 3 when no check produced data.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/routerlab/conformance-go/internal/capture"
	"github.com/routerlab/conformance-go/internal/config"
	"github.com/routerlab/conformance-go/internal/gen"
	"github.com/routerlab/conformance-go/internal/httpapi"
	"github.com/routerlab/conformance-go/internal/observability"
	"github.com/routerlab/conformance-go/internal/policy"
	"github.com/routerlab/conformance-go/internal/report"
	"github.com/routerlab/conformance-go/internal/runner"
	"github.com/routerlab/conformance-go/internal/samples"
	"github.com/routerlab/conformance-go/internal/stream"
	"github.com/routerlab/conformance-go/internal/structure"
	"github.com/routerlab/conformance-go/internal/verdict"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(2)
	}
	observability.InitLogger(cfg.LogLevel)

	switch os.Args[1] {
	case "compare":
		cmdCompare(cfg, os.Args[2:])
	case "stream":
		cmdStream(os.Args[2:])
	case "verdict":
		cmdVerdict(cfg, os.Args[2:])
	case "generate":
		cmdGenerate(os.Args[2:])
	case "capture":
		cmdCapture(cfg, os.Args[2:])
	case "serve":
		cmdServe(cfg)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: conformance <compare|stream|verdict|generate|capture|serve> [flags]")
	os.Exit(2)
}

func cmdCompare(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	refPath := fs.String("reference", "", "reference response JSON file (required)")
	candPath := fs.String("candidate", "", "candidate response JSON file (required)")
	important := fs.String("important", "", "comma-separated important paths (defaults from env)")
	asJSON := fs.Bool("json", false, "emit the report as JSON")
	_ = fs.Parse(args)

	if *refPath == "" || *candPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	ref, err := samples.LoadJSON(*refPath)
	if err != nil {
		fatal(err)
	}
	cand, err := samples.LoadJSON(*candPath)
	if err != nil {
		fatal(err)
	}

	paths := cfg.ImportantPaths
	if *important != "" {
		paths = splitList(*important)
	}
	rep := structure.Diff(structure.Fingerprint(ref), structure.Fingerprint(cand), paths)

	if *asJSON {
		printJSON(rep)
	} else {
		report.WriteStructural(os.Stdout, "comparison", rep)
	}
	if !rep.FullMatch() {
		os.Exit(1)
	}
}

func cmdStream(args []string) {
	fs := flag.NewFlagSet("stream", flag.ExitOnError)
	file := fs.String("file", "", "captured event-stream file (required)")
	asJSON := fs.Bool("json", false, "emit the report as JSON")
	_ = fs.Parse(args)

	if *file == "" {
		fs.Usage()
		os.Exit(2)
	}

	text, err := samples.LoadText(*file)
	if err != nil {
		fatal(err)
	}
	frames := stream.ExtractFrames(text)
	rep := stream.Analyze(frames)
	stats := stream.Stats(text)

	if *asJSON {
		printJSON(map[string]any{"report": rep, "stats": stats})
	} else {
		report.WriteStream(os.Stdout, *file, rep, stats)
	}
	if rep.TotalFrames > 0 && !rep.AllConsistent() {
		os.Exit(1)
	}
}

func cmdVerdict(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("verdict", flag.ExitOnError)
	dir := fs.String("dir", cfg.SamplesDir, "directory holding captured samples")
	asJSON := fs.Bool("json", false, "emit the full run as JSON")
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var metrics *observability.Metrics
	if cfg.OTelEnabled {
		m, err := observability.NewMetrics()
		if err != nil {
			slog.Warn("metrics init failed", "error", err)
		} else {
			metrics = m
		}
	}

	result, err := runner.Run(ctx, runner.Options{
		Resolver:       samples.NewResolver(*dir),
		ImportantPaths: cfg.ImportantPaths,
		ModelPolicy:    verdict.ModelPolicy{AllowedPrefixes: cfg.ModelPrefixes},
		Metrics:        metrics,
	})
	if err != nil {
		fatal(err)
	}

	decision := policy.NewEngine().Decide(result.Verdict)
	if *asJSON {
		printJSON(map[string]any{
			"outcome": decision.Outcome,
			"details": decision.Details,
			"score":   result.Verdict.Score(),
			"run":     result,
		})
	} else {
		report.WriteRun(os.Stdout, result, decision)
	}
	os.Exit(decision.ExitCode)
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	model := fs.String("model", "", "model name in each chunk")
	chunks := fs.Int("chunks", 0, "number of content chunks")
	inconsistent := fs.Bool("inconsistent", false, "drift identity fields between chunks")
	toolCalling := fs.Bool("tool-calling", false, "emit a tool-calling stream")
	out := fs.String("out", "", "write to a file instead of stdout")
	_ = fs.Parse(args)

	opts := gen.Defaults()
	if *model != "" {
		opts.Model = *model
	}
	if *chunks > 0 {
		opts.Chunks = *chunks
	}
	opts.Consistent = !*inconsistent
	opts.ToolCalling = *toolCalling

	text := gen.Stream(opts)
	if *out == "" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(*out, []byte(text), 0o644); err != nil {
		fatal(err)
	}
	slog.Info("stream written", "path", *out, "bytes", len(text))
}

func cmdCapture(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	refURL := fs.String("reference-url", cfg.ReferenceBaseURL, "reference endpoint base URL")
	candURL := fs.String("candidate-url", cfg.CandidateBaseURL, "candidate endpoint base URL")
	dir := fs.String("dir", cfg.SamplesDir, "directory to write samples into")
	model := fs.String("model", "any-model", "model to request")
	prompt := fs.String("prompt", "Hello, how are you?", "prompt to send")
	_ = fs.Parse(args)

	if *refURL == "" || *candURL == "" {
		fmt.Fprintln(os.Stderr, "error: --reference-url and --candidate-url are required")
		fs.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pair := &capture.Pair{
		Reference: capture.New(*refURL, cfg.CaptureRPS),
		Candidate: capture.New(*candURL, cfg.CaptureRPS),
		Dir:       *dir,
	}
	if err := pair.Run(ctx, *model, *prompt); err != nil {
		fatal(err)
	}
	slog.Info("capture complete", "dir", *dir)
}

func cmdServe(cfg config.Config) {
	if cfg.OTelEnabled {
		shutdown, err := observability.InitTracer(context.Background(), "conformance-api")
		if err != nil {
			slog.Error("otel init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	var metrics *observability.Metrics
	if cfg.OTelEnabled {
		m, err := observability.NewMetrics()
		if err != nil {
			slog.Warn("metrics init failed", "error", err)
		} else {
			metrics = m
		}
	}

	var handler http.Handler = httpapi.New(cfg, metrics)
	if cfg.OTelEnabled {
		handler = otelhttp.NewHandler(handler, "conformance-api")
	}

	addr := ":" + cfg.APIPort
	slog.Info("starting API server", "addr", addr, "samples_dir", cfg.SamplesDir)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(2)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(data))
}

func fatal(err error) {
	slog.Error("command failed", "error", err)
	os.Exit(2)
}
