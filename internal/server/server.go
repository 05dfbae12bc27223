// Package server exposes the forest queries as MCP tools.
package server

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/agentic-research/canopy/api"
	"github.com/agentic-research/canopy/internal/forest"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/ohler55/ojg/oj"
	"go.uber.org/zap"
)

// Source loads a record set by name. *ingest.Loader satisfies it.
type Source interface {
	Load(ctx context.Context, source string) ([]api.FileRecord, error)
}

// Options configure a Server.
type Options struct {
	Name      string
	Version   string
	CacheSize int  // loaded record sets to keep; <= 0 means 16
	Validate  bool // reject sources that are not a forest
	Log       *zap.Logger
}

// cacheKey changes whenever the source file is rewritten.
type cacheKey struct {
	source  string
	modTime time.Time
	size    int64
}

// Server answers tool calls by loading the named source and running one
// query over it. Loaded record sets are cached; derived indexes are not.
type Server struct {
	mcp      *mcpserver.MCPServer
	source   Source
	cache    *lru.Cache[cacheKey, []api.FileRecord]
	validate bool
	log      *zap.Logger
}

// New builds a Server with its three tools registered.
func New(source Source, opts Options) (*Server, error) {
	if opts.Name == "" {
		opts.Name = "canopy"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 16
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	cache, err := lru.New[cacheKey, []api.FileRecord](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create record cache: %w", err)
	}

	s := &Server{
		mcp:      mcpserver.NewMCPServer(opts.Name, opts.Version, mcpserver.WithToolCapabilities(false)),
		source:   source,
		cache:    cache,
		validate: opts.Validate,
		log:      opts.Log,
	}
	s.registerTools()
	return s, nil
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcp)
}

func sourceArg() mcp.ToolOption {
	return mcp.WithString("source",
		mcp.Required(),
		mcp.Description("Path to a JSON document or SQLite database of file records"),
	)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("leaf_files",
		mcp.WithDescription("List the names of files that contain no other file"),
		sourceArg(),
	), s.handleLeafFiles)

	s.mcp.AddTool(mcp.NewTool("k_largest_categories",
		mcp.WithDescription("Rank categories by the number of files carrying them and return the top k"),
		sourceArg(),
		mcp.WithNumber("k",
			mcp.Required(),
			mcp.Description("How many categories to return (>= 0)"),
		),
	), s.handleKLargestCategories)

	s.mcp.AddTool(mcp.NewTool("largest_file_size",
		mcp.WithDescription("Return the largest size of any file including everything nested under it"),
		sourceArg(),
	), s.handleLargestFileSize)
}

func (s *Server) handleLeafFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, errResult := s.recordsFor(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(oj.JSON(forest.LeafFiles(records))), nil
}

func (s *Server) handleKLargestCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kf := req.GetFloat("k", -1)
	if kf < 0 || kf != math.Trunc(kf) || kf > math.MaxInt32 {
		return mcp.NewToolResultError(fmt.Sprintf("k must be a non-negative integer, got %v", kf)), nil
	}
	k := int(kf)
	records, errResult := s.recordsFor(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(oj.JSON(forest.KLargestCategories(records, k))), nil
}

func (s *Server) handleLargestFileSize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, errResult := s.recordsFor(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(fmt.Sprint(forest.LargestFileSize(records))), nil
}

// recordsFor resolves the source argument. Failures become tool errors
// rather than protocol errors so the client sees the message.
func (s *Server) recordsFor(ctx context.Context, req mcp.CallToolRequest) ([]api.FileRecord, *mcp.CallToolResult) {
	source, err := req.RequireString("source")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	records, err := s.load(ctx, source)
	if err != nil {
		s.log.Warn("tool call failed",
			zap.String("tool", req.Params.Name),
			zap.String("source", source),
			zap.Error(err),
		)
		return nil, mcp.NewToolResultError(err.Error())
	}
	return records, nil
}

func (s *Server) load(ctx context.Context, source string) ([]api.FileRecord, error) {
	info, statErr := os.Stat(source)
	var key cacheKey
	if statErr == nil {
		key = cacheKey{source: source, modTime: info.ModTime(), size: info.Size()}
		if records, ok := s.cache.Get(key); ok {
			s.log.Debug("record cache hit", zap.String("source", source))
			return records, nil
		}
	}

	records, err := s.source.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	if s.validate {
		if err := forest.Validate(records); err != nil {
			return nil, fmt.Errorf("%s is not a valid forest: %w", source, err)
		}
	}

	if statErr == nil {
		s.cache.Add(key, records)
	}
	return records, nil
}
