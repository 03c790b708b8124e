package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/nutritrack/internal/mcp"
)

var mcpEmail string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for one user.
The server communicates via stdin/stdout; logs go to stderr.

AVAILABLE TOOLS:

  get_day               Meals and totals for a date
  get_days              Assembled days for several dates
  add_meal_to_day       Log existing meals on a date
  log_fake_meal         Quick-log calories and protein
  add_recipe_to_day     Log a recipe as a new meal
  remove_meal_from_day  Remove a logged meal
  list_meals            List meals
  list_recipes          List recipes
  list_workouts         List workouts

EXAMPLE CONFIGURATION:

  {
    "mcpServers": {
      "nutritrack": { "command": "nutritrack", "args": ["mcp", "--email", "me@example.com"] }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server, err := mcp.NewServer(ctx, application, mcpEmail)
		if err != nil {
			return err
		}
		return server.Serve(ctx)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpEmail, "email", "", "email of the user the server acts as")
	_ = mcpCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(mcpCmd)
}
