package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var folderStatsCmd = &cobra.Command{
	Use:   "stats <name>",
	Short: "Show aggregate statistics for a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		folder, err := findFolderByName(cmd.Context(), a, args[0])
		if err != nil {
			return err
		}

		stats, err := a.folders.FolderStats(cmd.Context(), folder.ID)
		if err != nil {
			return err
		}

		fmt.Printf("folder:       %s\n", folder.Name)
		fmt.Printf("repos:        %d\n", stats.RepoCount)
		fmt.Printf("total stars:  %d\n", stats.TotalStars)
		fmt.Printf("avg stars:    %d\n", stats.AvgStars)
		if stats.TopLanguage != "" {
			fmt.Printf("top language: %s\n", stats.TopLanguage)
		}

		if len(stats.Languages) > 0 {
			langs := make([]string, 0, len(stats.Languages))
			for lang := range stats.Languages {
				langs = append(langs, lang)
			}
			sort.Strings(langs)

			fmt.Println("languages:")
			for _, lang := range langs {
				fmt.Printf("  %-15s %d\n", lang, stats.Languages[lang])
			}
		}

		return nil
	},
}

func init() {
	folderCmd.AddCommand(folderStatsCmd)
}
