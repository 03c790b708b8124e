// Package mcp exposes one user's food log to AI assistants over the
// Model Context Protocol, using a stdio transport.
package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mmynk/nutritrack/internal/app"
	"github.com/mmynk/nutritrack/internal/models"
)

// Server wraps the MCP server with the application services of a single user.
type Server struct {
	mcpServer *mcp.Server
	app       *app.Application
	userID    string
	now       func() time.Time
}

// NewServer creates a server acting as the user registered under email.
func NewServer(ctx context.Context, a *app.Application, email string) (*Server, error) {
	user, err := a.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NotFoundf("user with email %s", email)
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nutritrack",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		app:       a,
		userID:    user.ID,
		now:       time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve runs the server over stdin/stdout until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.app.Logger.Info("MCP server starting", "user_id", s.userID)
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// today is the default date for tools called without one.
func (s *Server) today() string {
	return s.now().Format(models.DateLayout)
}

func (s *Server) dateOrToday(date string) string {
	if date == "" {
		return s.today()
	}
	return date
}
