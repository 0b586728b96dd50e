// Package mcp exposes the campaign store to an AI assistant as Model
// Context Protocol tools.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"loreweaver/internal/store"
)

type Server struct {
	db     store.Store
	logger zerolog.Logger
	mcp    *sdk.Server
}

func NewServer(db store.Store, logger zerolog.Logger, version string) *Server {
	s := &Server{
		db:     db,
		logger: logger,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "loreweaver",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}

// addTool registers h and logs its failures. The error text reaches the
// client unchanged.
func addTool[In, Out any](s *Server, name, description string, h sdk.ToolHandlerFor[In, Out]) {
	sdk.AddTool(s.mcp, &sdk.Tool{Name: name, Description: description},
		func(ctx context.Context, req *sdk.CallToolRequest, input In) (*sdk.CallToolResult, Out, error) {
			result, output, err := h(ctx, req, input)
			if err != nil {
				s.logger.Warn().Err(err).Str("tool", name).Str("kind", string(store.KindOf(err))).Msg("tool call failed")
			}
			return result, output, err
		})
}
