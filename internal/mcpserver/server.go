package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer creates a configured MCP server with all scoring tools registered.
func NewMCPServer(cfg Config) *server.MCPServer {
	s := server.NewMCPServer("musicfi", "1.0.0")
	client := NewMusicFiClient(cfg)
	h := NewHandlers(client)

	s.AddTool(ToolScoreCredit, h.HandleScoreCredit)
	s.AddTool(ToolAssessRisk, h.HandleAssessRisk)
	s.AddTool(ToolRunStressTest, h.HandleRunStressTest)
	s.AddTool(ToolPredictRevenue, h.HandlePredictRevenue)
	s.AddTool(ToolGetModelInfo, h.HandleGetModelInfo)

	return s
}
