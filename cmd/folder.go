package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/inovacc/stargazer/internal/model"
	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage virtual folders",
	Long: `Create, inspect and delete virtual folders. A folder is a named view
over the starred repo cache; deleting one never touches the repos.`,
}

// findFolderByName resolves a folder by name or id, case-insensitive on
// the name.
func findFolderByName(ctx context.Context, a *app, nameOrID string) (*model.VirtualFolder, error) {
	folders, err := a.folders.Folders(ctx)
	if err != nil {
		return nil, err
	}

	for _, folder := range folders {
		if folder.ID == nameOrID || strings.EqualFold(folder.Name, nameOrID) {
			return folder, nil
		}
	}

	return nil, fmt.Errorf("no folder named %q", nameOrID)
}

// findRepo resolves a repo by id or full name from the cache.
func findRepo(ctx context.Context, a *app, idOrName string) (*model.StarredRepo, error) {
	repo, err := a.store.GetRepo(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	if repo != nil {
		return repo, nil
	}

	repos, err := a.store.GetStarredRepos(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, r := range repos {
		if strings.EqualFold(r.FullName, idOrName) {
			return r, nil
		}
	}

	return nil, fmt.Errorf("no cached repo matching %q, try running sync first", idOrName)
}

func init() {
	rootCmd.AddCommand(folderCmd)
}
