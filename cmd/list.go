package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listRefresh bool
	listFolder  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List starred repositories from the cache",
	Long: `Print starred repositories, most-starred first. Reads the local cache
and only hits GitHub when the cache is stale or --refresh is given. Use
--folder to list a single folder's contents instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		repos, err := a.loader.LoadStarredRepos(cmd.Context(), listRefresh)
		if err != nil {
			return err
		}

		if listFolder != "" {
			folder, err := findFolderByName(cmd.Context(), a, listFolder)
			if err != nil {
				return err
			}
			repos, err = a.folders.FolderRepos(cmd.Context(), folder.ID)
			if err != nil {
				return err
			}
		}

		for _, repo := range repos {
			lang := repo.Language
			if lang == "" {
				lang = "-"
			}
			fmt.Printf("%8s  %-12s  %-50s  %s\n", repo.FormatStars(), lang, repo.FullName, repo.Description)
		}
		fmt.Printf("\n%d repositories\n", len(repos))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listRefresh, "refresh", false, "Force a refresh from GitHub")
	listCmd.Flags().StringVar(&listFolder, "folder", "", "List only this folder's repos")
}
