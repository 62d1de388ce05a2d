package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/stargazer/internal/cli"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively browse folders and starred repos",
	Long: `Open the two-pane browser. The left pane lists virtual folders, the
right pane lists the selected folder's repositories. Repos can be copied,
cut and pasted between folders with c, x and p.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if _, err := a.loader.EnsureDefaultFolders(cmd.Context()); err != nil {
			return err
		}

		m := cli.NewBrowse(a.loader, a.folders, cli.DefaultKeyMap())
		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err = p.Run()

		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
