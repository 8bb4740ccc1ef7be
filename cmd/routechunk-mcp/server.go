package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/routechunk/routechunk/pkg/api"
)

// Server wraps the public Service in an MCP tool surface: one process-wide
// memoized Service backs every tool call, same as the CLI's svc.
type Server struct {
	log       *zap.Logger
	svc       *api.Service
	mcpServer *server.MCPServer
}

func NewServer(log *zap.Logger) *Server {
	s := &Server{
		log: log,
		svc: api.NewService(),
	}

	mcpServer := server.NewMCPServer("routechunk", "0.1.0")
	for _, tool := range s.getTools() {
		mcpServer.AddTool(tool, s.createToolHandler(tool.Name))
	}
	s.mcpServer = mcpServer
	return s
}

func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting MCP server")
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) getTools() []mcp.Tool {
	sourceAndPath := func(extra map[string]interface{}, required ...string) mcp.ToolInputSchema {
		props := map[string]interface{}{
			"source": map[string]interface{}{
				"type":        "string",
				"description": "The full text of the route module source file",
			},
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path to the route module, used as the cache key and for on-disk cache invalidation",
			},
		}
		for k, v := range extra {
			props[k] = v
		}
		return mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   append([]string{"source", "path"}, required...),
		}
	}

	return []mcp.Tool{
		{
			Name:        "detect_chunks",
			Description: "Report which chunkable exports (clientAction, clientLoader, and any configured equivalents) a route module actually has, and whether it has any at all. Use this before get_chunk to know which chunk names are worth requesting.",
			InputSchema: sourceAndPath(nil),
		},
		{
			Name:        "get_chunk",
			Description: "Emit the rewritten source for one chunkable export of a route module, containing only the statements, imports, and export that export actually needs. Returns ok=false if that export is not chunkable in this source.",
			InputSchema: sourceAndPath(map[string]interface{}{
				"chunk_name": map[string]interface{}{
					"type":        "string",
					"description": "The export name to chunk, e.g. clientAction or clientLoader",
				},
			}, "chunk_name"),
		},
		{
			Name:        "get_main",
			Description: "Emit the rewritten source for the residual main module: the route module with every actually-chunkable export and its exclusive dependencies removed. Returns ok=false if nothing is left.",
			InputSchema: sourceAndPath(nil),
		},
	}
}

func (s *Server) createToolHandler(toolName string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.log.Debug("handling tool call", zap.String("tool", toolName))

		var args map[string]interface{}
		if request.Params.Arguments != nil {
			var ok bool
			args, ok = request.Params.Arguments.(map[string]interface{})
			if !ok {
				return errorResult("invalid arguments format"), nil
			}
		}

		switch toolName {
		case "detect_chunks":
			return s.handleDetectChunks(args)
		case "get_chunk":
			return s.handleGetChunk(args)
		case "get_main":
			return s.handleGetMain(args)
		default:
			return errorResult(fmt.Sprintf("unknown tool: %s", toolName)), nil
		}
	}
}

func stringArg(args map[string]interface{}, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok && v != ""
}

func (s *Server) handleDetectChunks(args map[string]interface{}) (*mcp.CallToolResult, error) {
	source, ok := stringArg(args, "source")
	if !ok {
		return errorResult("source is required and must be a string"), nil
	}
	path, ok := stringArg(args, "path")
	if !ok {
		return errorResult("path is required and must be a string"), nil
	}

	result, err := s.svc.Detect(source, path)
	if err != nil {
		return errorResult(fmt.Sprintf("detect failed: %v", err)), nil
	}
	return successResult(result), nil
}

func (s *Server) handleGetChunk(args map[string]interface{}) (*mcp.CallToolResult, error) {
	source, ok := stringArg(args, "source")
	if !ok {
		return errorResult("source is required and must be a string"), nil
	}
	path, ok := stringArg(args, "path")
	if !ok {
		return errorResult("path is required and must be a string"), nil
	}
	chunkName, ok := stringArg(args, "chunk_name")
	if !ok {
		return errorResult("chunk_name is required and must be a string"), nil
	}
	if !api.IsKnownChunkName(chunkName) || chunkName == api.MainChunkName {
		return errorResult(fmt.Sprintf("unknown chunk name %q", chunkName)), nil
	}

	code, emitted, err := s.svc.GetChunk(source, chunkName, api.PrinterOptions{Indent: "  "}, path)
	if err != nil {
		return errorResult(fmt.Sprintf("get_chunk failed: %v", err)), nil
	}
	return successResult(map[string]interface{}{"ok": emitted, "code": code}), nil
}

func (s *Server) handleGetMain(args map[string]interface{}) (*mcp.CallToolResult, error) {
	source, ok := stringArg(args, "source")
	if !ok {
		return errorResult("source is required and must be a string"), nil
	}
	path, ok := stringArg(args, "path")
	if !ok {
		return errorResult("path is required and must be a string"), nil
	}

	code, emitted, err := s.svc.GetChunk(source, api.MainChunkName, api.PrinterOptions{Indent: "  "}, path)
	if err != nil {
		return errorResult(fmt.Sprintf("get_main failed: %v", err)), nil
	}
	return successResult(map[string]interface{}{"ok": emitted, "code": code}), nil
}

func successResult(data interface{}) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: string(jsonData),
			},
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	fmt.Fprintln(os.Stderr, message)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: message,
			},
		},
	}
}
