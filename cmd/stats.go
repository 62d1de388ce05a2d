package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCleanup bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show local cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if statsCleanup {
			removed, err := a.store.CleanupExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("removed %d expired cache entries\n", removed)
		}

		stats, err := a.store.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("cache:    %s\n", stats.Path)
		fmt.Printf("repos:    %d\n", stats.RepoCount)
		fmt.Printf("folders:  %d\n", stats.FolderCount)
		fmt.Printf("metadata: %d\n", stats.MetadataCount)
		fmt.Printf("ttl:      %s\n", stats.TTL)
		if !stats.OldestCache.IsZero() {
			fmt.Printf("oldest:   %s\n", stats.OldestCache.Format("2006-01-02 15:04:05"))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsCleanup, "cleanup", false, "Remove expired entries first")
}
