package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List virtual folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		folders, err := a.folders.Folders(cmd.Context())
		if err != nil {
			return err
		}

		for _, folder := range folders {
			tags := "manual"
			if len(folder.AutoTags) > 0 {
				tags = strings.Join(folder.AutoTags, ", ")
			}
			fmt.Printf("%-20s  %4d repos  [%s]\n", folder.Name, folder.RepoCount, tags)
		}

		return nil
	},
}

func init() {
	folderCmd.AddCommand(folderListCmd)
}
