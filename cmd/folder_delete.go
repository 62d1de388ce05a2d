package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var folderDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a virtual folder",
	Long: `Delete a folder and its membership links. The cached repos are kept.
The all-stars folder is reserved and cannot be deleted.`,
	Args: cobra.ExactArgs(1),
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

		if err := a.folders.DeleteFolder(cmd.Context(), folder.ID); err != nil {
			return err
		}

		fmt.Printf("deleted folder %q\n", folder.Name)

		return nil
	},
}

func init() {
	folderCmd.AddCommand(folderDeleteCmd)
}
