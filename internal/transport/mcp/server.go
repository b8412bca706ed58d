// Package mcp exposes the retrieval engine as an MCP stdio server.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/snipdex/internal/domain"
	"github.com/kailas-cloud/snipdex/internal/usecase/retriever"
	"github.com/kailas-cloud/snipdex/internal/version"
)

// Server wraps an MCP server around the shared retriever handle. The engine
// is built lazily on the first tool call; concurrent first calls share one
// build.
type Server struct {
	mcp            *mcp.Server
	index          *retriever.Handle
	defaultResults int
	maxResults     int
	logger         *zap.Logger
}

// NewServer creates the MCP server and registers its tools.
func NewServer(index *retriever.Handle, defaultResults, maxResults int, logger *zap.Logger) *Server {
	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "snipdex",
			Version: version.Version,
		}, nil),
		index:          index,
		defaultResults: defaultResults,
		maxResults:     maxResults,
		logger:         logger,
	}
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

type ragQueryInput struct {
	Question string `json:"question" jsonschema:"required,Natural language question to search the snippet corpus with"`
	NResults int    `json:"n_results,omitempty" jsonschema:"Number of results to return (default: 3, max: 10)"`
}

type ragQueryOutput struct {
	Question     string               `json:"question"`
	Results      []domain.QueryResult `json:"results"`
	TotalResults int                  `json:"total_results"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "rag_query",
		Description: "Query the snippet corpus for semantically relevant snippets, ranked by similarity score",
	}, s.handleRagQuery)
}

func (s *Server) handleRagQuery(
	ctx context.Context, _ *mcp.CallToolRequest, args ragQueryInput,
) (*mcp.CallToolResult, ragQueryOutput, error) {
	nResults := args.NResults
	if nResults == 0 {
		nResults = s.defaultResults
	}
	if nResults < 1 || nResults > s.maxResults {
		return nil, ragQueryOutput{}, fmt.Errorf("n_results must be between 1 and %d", s.maxResults)
	}

	svc, err := s.index.Get(ctx)
	if err != nil {
		s.logger.Error("index build failed", zap.Error(err))
		return nil, ragQueryOutput{}, fmt.Errorf("initialize retrieval engine: %w", err)
	}

	results, err := svc.Query(ctx, args.Question, nResults)
	if err != nil {
		return nil, ragQueryOutput{}, fmt.Errorf("query: %w", err)
	}

	output := ragQueryOutput{
		Question:     args.Question,
		Results:      results,
		TotalResults: len(results),
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Found %d snippet(s) for %q", len(results), args.Question)},
		},
	}, output, nil
}
