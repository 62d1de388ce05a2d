package github

import (
	"strconv"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/inovacc/stargazer/internal/model"
)

// convertStarred maps one starred-list entry, carrying the starred_at
// timestamp the plain repository payload does not have.
func convertStarred(starred *gh.StarredRepository) *model.StarredRepo {
	return convertRepo(starred.GetRepository(), starred.GetStarredAt().Time)
}

// convertRepo maps a go-github repository onto the cache snapshot model.
func convertRepo(repo *gh.Repository, starredAt time.Time) *model.StarredRepo {
	branch := repo.GetDefaultBranch()
	if branch == "" {
		branch = "main"
	}

	return &model.StarredRepo{
		ID:            strconv.FormatInt(repo.GetID(), 10),
		FullName:      repo.GetFullName(),
		Name:          repo.GetName(),
		Owner:         repo.GetOwner().GetLogin(),
		Description:   repo.GetDescription(),
		Language:      repo.GetLanguage(),
		Topics:        repo.Topics,
		StarsCount:    repo.GetStargazersCount(),
		ForksCount:    repo.GetForksCount(),
		WatchersCount: repo.GetWatchersCount(),
		IsArchived:    repo.GetArchived(),
		IsPrivate:     repo.GetPrivate(),
		IsFork:        repo.GetFork(),
		CreatedAt:     repo.GetCreatedAt().Time,
		UpdatedAt:     repo.GetUpdatedAt().Time,
		PushedAt:      repo.GetPushedAt().Time,
		StarredAt:     starredAt,
		URL:           repo.GetHTMLURL(),
		CloneURL:      repo.GetCloneURL(),
		Homepage:      repo.GetHomepage(),
		DefaultBranch: branch,
		License:       repo.GetLicense().GetName(),
	}
}
