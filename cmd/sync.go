package cmd

import (
	"fmt"

	"github.com/inovacc/stargazer/internal/core"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the cache and run the maintenance steps",
	Long: `Fetch the current star list from GitHub, snapshot it into the local
cache, ensure the default folders exist, pull every repo into the all-stars
folder and run auto-categorization if enabled. Each maintenance step is
best-effort: a failing step is reported and the rest still run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		repos, err := a.loader.LoadStarredRepos(cmd.Context(), true)
		if err != nil {
			return err
		}
		fmt.Printf("fetched %d starred repos\n", len(repos))

		if _, err := a.loader.EnsureDefaultFolders(cmd.Context()); err != nil {
			return fmt.Errorf("ensuring default folders: %w", err)
		}

		printOutcome("all-stars sync", a.loader.SyncAllStarsFolder(cmd.Context(), repos))
		printOutcome("auto-categorize", a.loader.AutoCategorizeAll(cmd.Context(), repos))

		return nil
	},
}

func printOutcome(step string, outcome core.SyncOutcome) {
	switch outcome.Status {
	case core.SyncApplied:
		fmt.Printf("%s: %d added\n", step, outcome.Added)
	case core.SyncSkipped:
		fmt.Printf("%s: skipped\n", step)
	case core.SyncFailed:
		fmt.Printf("%s: failed: %v\n", step, outcome.Err)
	}
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
