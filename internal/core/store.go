package core

import (
	"context"

	"github.com/inovacc/stargazer/internal/model"
)

// Store is the persistence surface the services run on. The SQLite
// implementation lives in internal/store/sqlite.
type Store interface {
	// GetStarredRepos returns the cached snapshot ordered by stars
	// descending, or nil when the cache is empty or older than the TTL.
	// forceRefresh bypasses the TTL check but not emptiness.
	GetStarredRepos(ctx context.Context, forceRefresh bool) ([]*model.StarredRepo, error)

	// SetStarredRepos replaces the whole snapshot in one transaction.
	SetStarredRepos(ctx context.Context, repos []*model.StarredRepo) error

	// GetRepo returns one repo or nil, bumping its accessed_at.
	GetRepo(ctx context.Context, id string) (*model.StarredRepo, error)

	ListFolders(ctx context.Context) ([]*model.VirtualFolder, error)
	CreateFolder(ctx context.Context, folder *model.VirtualFolder) (*model.VirtualFolder, error)
	DeleteFolder(ctx context.Context, id string) error
	GetFolderRepos(ctx context.Context, folderID string) ([]*model.StarredRepo, error)

	// AddRepoToFolder upserts a membership link and reports whether a new
	// link was created (false when an existing link was refreshed).
	AddRepoToFolder(ctx context.Context, repoID, folderID string, isManual bool) (bool, error)
	RemoveRepoFromFolder(ctx context.Context, repoID, folderID string) error

	GetRepoMetadata(ctx context.Context, repoID string) (*model.RepoMetadata, error)
	SetRepoMetadata(ctx context.Context, meta *model.RepoMetadata) error

	CleanupExpired(ctx context.Context) (int, error)
	Stats(ctx context.Context) (*model.CacheStats, error)
}

// GitHubClient is the remote collaborator the loader pulls from. The real
// implementation lives in internal/github; tests substitute fakes.
type GitHubClient interface {
	ListStarred(ctx context.Context) ([]*model.StarredRepo, error)
	FetchMetadata(ctx context.Context, owner, name string) (*model.RepoMetadata, error)
}
