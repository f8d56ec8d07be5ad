package mcp

import (
	"github.com/askitty/askitty/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions over the indexed corpus.
	Query driving.QueryService

	// Ingest processes documents into the corpus. Optional; without it the
	// ingest tool is not registered.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
