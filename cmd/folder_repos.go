package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var folderAddCmd = &cobra.Command{
	Use:   "add <folder> <repo>",
	Short: "Add a repo to a folder",
	Long: `Add a cached repo to a folder by id or full name (owner/name). The
membership is recorded as manual, so auto-categorization never removes it.
Re-adding a repo already in the folder is a no-op.`,
	Args: cobra.ExactArgs(2),
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
		repo, err := findRepo(cmd.Context(), a, args[1])
		if err != nil {
			return err
		}

		if err := a.folders.AddRepoToFolder(cmd.Context(), repo.ID, folder.ID); err != nil {
			return err
		}

		fmt.Printf("added %s to %q\n", repo.FullName, folder.Name)

		return nil
	},
}

var folderRemoveCmd = &cobra.Command{
	Use:   "remove <folder> <repo>",
	Short: "Remove a repo from a folder",
	Args:  cobra.ExactArgs(2),
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
		repo, err := findRepo(cmd.Context(), a, args[1])
		if err != nil {
			return err
		}

		if err := a.folders.RemoveRepoFromFolder(cmd.Context(), repo.ID, folder.ID); err != nil {
			return err
		}

		fmt.Printf("removed %s from %q\n", repo.FullName, folder.Name)

		return nil
	},
}

var folderMoveCmd = &cobra.Command{
	Use:   "move <repo> <from> <to>",
	Short: "Move a repo between folders",
	Args:  cobra.ExactArgs(3),
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
		from, err := findFolderByName(cmd.Context(), a, args[1])
		if err != nil {
			return err
		}
		to, err := findFolderByName(cmd.Context(), a, args[2])
		if err != nil {
			return err
		}

		if err := a.folders.MoveRepo(cmd.Context(), repo.ID, from.ID, to.ID); err != nil {
			return err
		}

		fmt.Printf("moved %s from %q to %q\n", repo.FullName, from.Name, to.Name)

		return nil
	},
}

func init() {
	folderCmd.AddCommand(folderAddCmd)
	folderCmd.AddCommand(folderRemoveCmd)
	folderCmd.AddCommand(folderMoveCmd)
}
