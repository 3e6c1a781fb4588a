package mcp

import (
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/mcp/tools"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

const (
	implName    = "jobboard"
	implVersion = "0.1.0"
)

// NewServer builds the MCP server exposing the read-only job tools.
// sheets may be nil, in which case sheets_export reports that it is not configured.
func NewServer(jobs job.Service, sheets tools.SheetWriter, logger *logging.Logger) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    implName,
		Version: implVersion,
	}, nil)

	names := tools.Register(server, logger.Named("mcp"),
		tools.WithJobSearch(jobs),
		tools.WithJobGet(jobs),
		tools.WithSheetsExport(jobs, sheets),
	)
	logger.Info("MCP tools registered", "tools", names)

	return server
}

// NewHandler wraps server in the streamable HTTP transport
func NewHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, nil)
}
