package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const todayURI = "nutritrack://days/today"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Food Log",
		Description: "Meals and totals logged today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	day, err := s.app.Days.GetAssembledDay(ctx, s.today(), s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble today: %w", err)
	}

	var result any = day
	if day == nil {
		result = map[string]string{"date": s.today(), "message": "Nothing logged yet."}
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      todayURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
