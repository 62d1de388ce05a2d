package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inovacc/stargazer/internal/model"
)

// DataLoader decides when to trust the cache and when to refetch from
// GitHub, and reconciles folder membership after each refresh. It is the
// only component that talks to the remote collaborator.
type DataLoader struct {
	client         GitHubClient
	store          Store
	folders        *FolderService
	defaultFolders []FolderConfig
	autoCategorize bool
}

// NewDataLoader wires a loader. defaultFolders declares the folders
// guaranteed to exist on startup; autoCategorize gates the sweep run after
// each refresh.
func NewDataLoader(client GitHubClient, store Store, folders *FolderService, defaultFolders []FolderConfig, autoCategorize bool) *DataLoader {
	return &DataLoader{
		client:         client,
		store:          store,
		folders:        folders,
		defaultFolders: defaultFolders,
		autoCategorize: autoCategorize,
	}
}

// LoadStarredRepos returns the starred snapshot, cache first. On a cache
// miss (empty or expired) it pulls from GitHub and writes the result back.
// When GitHub is unavailable it falls back to whatever the store holds,
// stale or not, and only fails when the store is empty too. Nothing is
// written unless the remote fetch fully succeeded, so an abandoned call
// never leaves a partial snapshot behind.
func (l *DataLoader) LoadStarredRepos(ctx context.Context, forceRefresh bool) ([]*model.StarredRepo, error) {
	if !forceRefresh {
		cached, err := l.store.GetStarredRepos(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("reading cache: %w", err)
		}
		if cached != nil {
			slog.Info("loaded starred repos from cache", "count", len(cached))
			return cached, nil
		}
	}

	slog.Info("fetching starred repos from github")
	repos, fetchErr := l.client.ListStarred(ctx)
	if fetchErr != nil {
		slog.Error("github fetch failed", "error", fetchErr)

		// Serve stale data rather than nothing
		cached, err := l.store.GetStarredRepos(ctx, true)
		if err == nil && len(cached) > 0 {
			slog.Warn("serving stale cache after github failure", "count", len(cached))
			return cached, nil
		}

		return nil, fetchErr
	}

	if err := l.store.SetStarredRepos(ctx, repos); err != nil {
		return nil, fmt.Errorf("caching starred repos: %w", err)
	}

	slog.Info("cached starred repos", "count", len(repos))

	return repos, nil
}

// RepoMetadata returns the extended metadata (README, capability flags)
// for a cached repo, fetching and caching it on first access. Metadata is
// cached indefinitely; force refetches unconditionally.
func (l *DataLoader) RepoMetadata(ctx context.Context, repoID string, force bool) (*model.RepoMetadata, error) {
	if !force {
		cached, err := l.store.GetRepoMetadata(ctx, repoID)
		if err != nil {
			return nil, fmt.Errorf("reading cached metadata: %w", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	repo, err := l.store.GetRepo(ctx, repoID)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, fmt.Errorf("repo %s not in cache", repoID)
	}

	meta, err := l.client.FetchMetadata(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, err
	}
	meta.RepoID = repoID

	if err := l.store.SetRepoMetadata(ctx, meta); err != nil {
		return nil, fmt.Errorf("caching metadata: %w", err)
	}

	return meta, nil
}

// EnsureDefaultFolders guarantees the reserved All Stars folder and every
// configured default folder exist. Duplicate-name races are logged and
// skipped; the call is idempotent and safe on every startup. Returns the
// full folder list.
func (l *DataLoader) EnsureDefaultFolders(ctx context.Context) ([]*model.VirtualFolder, error) {
	configs := make([]FolderConfig, 0, len(l.defaultFolders)+1)
	configs = append(configs, FolderConfig{
		ID:   model.AllStarsFolderID,
		Name: model.AllStarsFolderName,
	})
	configs = append(configs, l.defaultFolders...)

	if _, err := l.folders.CreateDefaultFolders(ctx, configs); err != nil {
		return nil, fmt.Errorf("creating default folders: %w", err)
	}

	return l.store.ListFolders(ctx)
}

// SyncAllStarsFolder adds any repos missing from the All Stars folder as
// non-manual links, skipping repos already present to avoid redundant
// writes. Best-effort: failures are reported in the outcome, never raised.
func (l *DataLoader) SyncAllStarsFolder(ctx context.Context, repos []*model.StarredRepo) SyncOutcome {
	current, err := l.store.GetFolderRepos(ctx, model.AllStarsFolderID)
	if err != nil {
		slog.Error("reading all-stars folder failed", "error", err)
		return SyncOutcome{Status: SyncFailed, Err: err}
	}

	linked := make(map[string]struct{}, len(current))
	for _, repo := range current {
		linked[repo.ID] = struct{}{}
	}

	added := 0
	for _, repo := range repos {
		if _, ok := linked[repo.ID]; ok {
			continue
		}

		if _, err := l.store.AddRepoToFolder(ctx, repo.ID, model.AllStarsFolderID, false); err != nil {
			slog.Error("linking repo to all-stars failed", "repo", repo.ID, "error", err)
			return SyncOutcome{Status: SyncFailed, Added: added, Err: err}
		}
		added++
	}

	if added > 0 {
		slog.Info("synced all-stars folder", "added", added)
	}

	return SyncOutcome{Status: SyncApplied, Added: added}
}

// AutoCategorizeAll runs the categorization sweep when enabled in config.
// Best-effort: failures are reported in the outcome, never raised.
func (l *DataLoader) AutoCategorizeAll(ctx context.Context, repos []*model.StarredRepo) SyncOutcome {
	if !l.autoCategorize {
		slog.Debug("auto-categorization disabled")
		return SyncOutcome{Status: SyncSkipped}
	}

	counts, err := l.folders.AutoCategorizeAll(ctx, repos)
	if err != nil {
		slog.Error("auto-categorization failed", "error", err)
		return SyncOutcome{Status: SyncFailed, Err: err}
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	slog.Info("auto-categorized repos", "added", total, "folders", len(counts))

	return SyncOutcome{Status: SyncApplied, Added: total}
}

// Refresh is the full startup/refresh flow: load the snapshot, make sure
// the default folders exist, then reconcile membership. The two
// reconciliation steps are best-effort and never block the refresh.
func (l *DataLoader) Refresh(ctx context.Context, forceRefresh bool) ([]*model.StarredRepo, error) {
	repos, err := l.LoadStarredRepos(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}

	if _, err := l.EnsureDefaultFolders(ctx); err != nil {
		return nil, err
	}

	l.SyncAllStarsFolder(ctx, repos)
	l.AutoCategorizeAll(ctx, repos)

	return repos, nil
}
