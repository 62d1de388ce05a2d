package cmd

import (
	"github.com/inovacc/stargazer/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the folder and cache tools over MCP stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout so LLM agents can
list, organize and categorize starred repos through tool calls. Intended to
be launched by an MCP client, not by hand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if _, err := a.loader.EnsureDefaultFolders(cmd.Context()); err != nil {
			return err
		}

		srv := mcp.NewServer(a.loader, a.folders, a.store)

		return srv.ServeStdio(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
