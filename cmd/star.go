package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var starCmd = &cobra.Command{
	Use:   "star <owner/name>",
	Short: "Star a repository on GitHub",
	Long: `Star a repository and refresh the local cache so it shows up in
all-stars right away. Requires a token with the appropriate scope.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		owner, name, err := splitFullName(args[0])
		if err != nil {
			return err
		}

		if err := a.client.Star(cmd.Context(), owner, name); err != nil {
			return err
		}
		fmt.Printf("starred %s/%s\n", owner, name)

		_, err = a.loader.Refresh(cmd.Context(), true)

		return err
	},
}

var unstarCmd = &cobra.Command{
	Use:   "unstar <owner/name>",
	Short: "Unstar a repository on GitHub",
	Long: `Remove a star and refresh the local cache. The next snapshot drops the
repo, and its folder memberships go with it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		owner, name, err := splitFullName(args[0])
		if err != nil {
			return err
		}

		if err := a.client.Unstar(cmd.Context(), owner, name); err != nil {
			return err
		}
		fmt.Printf("unstarred %s/%s\n", owner, name)

		_, err = a.loader.Refresh(cmd.Context(), true)

		return err
	},
}

func splitFullName(fullName string) (owner, name string, err error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected owner/name, got %q", fullName)
	}
	return parts[0], parts[1], nil
}

func init() {
	rootCmd.AddCommand(starCmd)
	rootCmd.AddCommand(unstarCmd)
}
