package mcpserver_test

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"

	"github.com/routerlab/conformance-go/internal/config"
	"github.com/routerlab/conformance-go/internal/mcpserver"
)

func TestRegisterTools(t *testing.T) {
	cfg := config.Config{
		SamplesDir:     t.TempDir(),
		ImportantPaths: []string{"object", "model"},
		ModelPrefixes:  []string{"test-"},
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "v1"}, nil)
	mcpserver.RegisterTools(server, cfg)

	// Verify it compiles and registers without panic.
	assert.NotNil(t, server)
}
