package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var readmeRefresh bool

var readmeCmd = &cobra.Command{
	Use:   "readme <repo>",
	Short: "Show a starred repo's README",
	Long: `Print the README of a cached repo by id or full name. The content is
fetched from GitHub on first access and cached alongside the repo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		repo, err := findRepo(cmd.Context(), a, args[0])
		if err != nil {
			return err
		}

		meta, err := a.loader.RepoMetadata(cmd.Context(), repo.ID, readmeRefresh)
		if err != nil {
			return err
		}

		if meta.ReadmeContent == "" {
			fmt.Printf("%s has no README\n", repo.FullName)
			return nil
		}

		fmt.Println(meta.ReadmeContent)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(readmeCmd)
	readmeCmd.Flags().BoolVar(&readmeRefresh, "refresh", false, "Refetch even when cached")
}
