package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	folderCreateTags string
	folderCreateDesc string
)

var folderCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a virtual folder",
	Long: `Create a folder. With --tags the folder becomes an auto-tag folder:
the categorization sweep adds any repo whose topics or primary language
match one of the tags. Without --tags the folder is manual-only.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		var tags []string
		if folderCreateTags != "" {
			for _, tag := range strings.Split(folderCreateTags, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					tags = append(tags, tag)
				}
			}
		}

		folder, err := a.folders.CreateFolder(cmd.Context(), args[0], tags, folderCreateDesc)
		if err != nil {
			return err
		}

		fmt.Printf("created folder %q (%s)\n", folder.Name, folder.ID)
		if len(folder.AutoTags) > 0 {
			fmt.Printf("auto-tags: %s\n", strings.Join(folder.AutoTags, ", "))
		}

		return nil
	},
}

func init() {
	folderCmd.AddCommand(folderCreateCmd)
	folderCreateCmd.Flags().StringVar(&folderCreateTags, "tags", "", "Comma-separated auto-tags")
	folderCreateCmd.Flags().StringVar(&folderCreateDesc, "description", "", "Folder description")
}
