package cli

import (
	"fmt"
	"strings"

	"github.com/inovacc/stargazer/internal/model"
)

type folderItem struct {
	folder *model.VirtualFolder
}

func (i folderItem) Title() string {
	return fmt.Sprintf("%s (%d)", i.folder.Name, i.folder.RepoCount)
}

func (i folderItem) Description() string {
	if len(i.folder.AutoTags) == 0 {
		return "manual"
	}
	return "tags: " + strings.Join(i.folder.AutoTags, ", ")
}

func (i folderItem) FilterValue() string {
	return i.folder.Name
}

type repoItem struct {
	repo *model.StarredRepo
}

func (i repoItem) Title() string {
	return fmt.Sprintf("★ %s  %s", i.repo.FormatStars(), i.repo.FullName)
}

func (i repoItem) Description() string {
	desc := i.repo.Description
	if desc == "" {
		desc = "(no description)"
	}

	parts := []string{desc}
	if i.repo.Language != "" {
		parts = append(parts, i.repo.Language)
	}
	parts = append(parts, i.repo.FormatUpdated())

	return strings.Join(parts, " | ")
}

func (i repoItem) FilterValue() string {
	return i.repo.FullName
}
