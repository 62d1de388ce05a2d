package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Run auto-categorization over the cached repos",
	Long: `Match every cached repo against the auto-tags of every folder and add
the matches. Only net-new memberships are counted; repos already in a
folder are left alone, as are manual memberships.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		counts, err := a.folders.AutoCategorizeAll(cmd.Context(), nil)
		if err != nil {
			return err
		}

		if len(counts) == 0 {
			fmt.Println("nothing to categorize")
			return nil
		}

		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)

		total := 0
		for _, name := range names {
			fmt.Printf("%-20s +%d\n", name, counts[name])
			total += counts[name]
		}
		fmt.Printf("\n%d repos categorized\n", total)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(categorizeCmd)
}
