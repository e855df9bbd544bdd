// Command mcp-conformance runs the MCP tool server for conformance checks.
// Uses stdio transport for integration with AI assistants.
package main

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/routerlab/conformance-go/internal/config"
	"github.com/routerlab/conformance-go/internal/mcpserver"
	"github.com/routerlab/conformance-go/internal/observability"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	observability.InitLogger(cfg.LogLevel)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "conformance-go",
		Version: "v1.0.0",
	}, nil)
	mcpserver.RegisterTools(server, cfg)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}
