package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inovacc/stargazer/internal/core"
	"github.com/inovacc/stargazer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGitHub satisfies core.GitHubClient without network access.
type fakeGitHub struct {
	repos     []*model.StarredRepo
	meta      *model.RepoMetadata
	err       error
	calls     int
	metaCalls int
}

func (f *fakeGitHub) ListStarred(ctx context.Context) ([]*model.StarredRepo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.repos, nil
}

func (f *fakeGitHub) FetchMetadata(ctx context.Context, owner, name string) (*model.RepoMetadata, error) {
	f.metaCalls++
	if f.meta == nil {
		return nil, errors.New("no metadata")
	}
	meta := *f.meta
	return &meta, nil
}

func newTestLoader(t *testing.T, client core.GitHubClient, ttl time.Duration, defaults []core.FolderConfig, autoCategorize bool) (*core.DataLoader, *core.FolderService) {
	t.Helper()

	st := newTestStore(t, ttl)
	folders := core.NewFolderService(st)

	return core.NewDataLoader(client, st, folders, defaults, autoCategorize), folders
}

func TestLoadStarredReposFetchesOnEmptyCache(t *testing.T) {
	ctx := context.Background()
	client := &fakeGitHub{repos: []*model.StarredRepo{
		makeRepo("1", "a/one", "Go", nil, 100),
		makeRepo("2", "b/two", "Rust", nil, 200),
	}}

	loader, _ := newTestLoader(t, client, time.Hour, nil, false)

	repos, err := loader.LoadStarredRepos(ctx, false)
	require.NoError(t, err)
	assert.Len(t, repos, 2)
	assert.Equal(t, 1, client.calls)
}

func TestLoadStarredReposServesFromCache(t *testing.T) {
	ctx := context.Background()
	client := &fakeGitHub{repos: []*model.StarredRepo{
		makeRepo("1", "a/one", "Go", nil, 100),
	}}

	loader, _ := newTestLoader(t, client, time.Hour, nil, false)

	_, err := loader.LoadStarredRepos(ctx, false)
	require.NoError(t, err)

	repos, err := loader.LoadStarredRepos(ctx, false)
	require.NoError(t, err)
	assert.Len(t, repos, 1)
	assert.Equal(t, 1, client.calls, "second load must come from the cache")
}

func TestLoadStarredReposForceRefresh(t *testing.T) {
	ctx := context.Background()
	client := &fakeGitHub{repos: []*model.StarredRepo{
		makeRepo("1", "a/one", "Go", nil, 100),
	}}

	loader, _ := newTestLoader(t, client, time.Hour, nil, false)

	_, err := loader.LoadStarredRepos(ctx, false)
	require.NoError(t, err)

	_, err = loader.LoadStarredRepos(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestLoadStarredReposStaleFallback(t *testing.T) {
	ctx := context.Background()
	client := &fakeGitHub{repos: []*model.StarredRepo{
		makeRepo("1", "a/one", "Go", nil, 100),
	}}

	// TTL short enough that the snapshot expires between the two loads
	loader, _ := newTestLoader(t, client, 50*time.Millisecond, nil, false)

	_, err := loader.LoadStarredRepos(ctx, false)
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)
	client.err = &core.RateLimitError{Err: errors.New("403")}

	repos, err := loader.LoadStarredRepos(ctx, false)
	require.NoError(t, err, "stale data beats no data when github is down")
	assert.Len(t, repos, 1)
}

func TestLoadStarredReposFailsWhenEmptyAndUnavailable(t *testing.T) {
	ctx := context.Background()
	client := &fakeGitHub{err: &core.AuthError{Err: errors.New("401")}}

	loader, _ := newTestLoader(t, client, time.Hour, nil, false)

	_, err := loader.LoadStarredRepos(ctx, false)
	require.Error(t, err)
	assert.True(t, core.IsUpstreamUnavailable(err))
}

func TestRepoMetadataFetchesOnceAndCaches(t *testing.T) {
	ctx := context.Background()
	client := &fakeGitHub{
		repos: []*model.StarredRepo{makeRepo("1", "a/one", "Go", nil, 100)},
		meta:  &model.RepoMetadata{ReadmeContent: "# hello", ReadmeFormat: "markdown", HasIssues: true},
	}

	loader, _ := newTestLoader(t, client, time.Hour, nil, false)

	_, err := loader.LoadStarredRepos(ctx, false)
	require.NoError(t, err)

	meta, err := loader.RepoMetadata(ctx, "1", false)
	require.NoError(t, err)
	assert.Equal(t, "# hello", meta.ReadmeContent)
	assert.Equal(t, "1", meta.RepoID)
	assert.Equal(t, 1, client.metaCalls)

	// Second read comes from the cache
	meta, err = loader.RepoMetadata(ctx, "1", false)
	require.NoError(t, err)
	assert.Equal(t, "# hello", meta.ReadmeContent)
	assert.Equal(t, 1, client.metaCalls)

	// force refetches
	_, err = loader.RepoMetadata(ctx, "1", true)
	require.NoError(t, err)
	assert.Equal(t, 2, client.metaCalls)
}

func TestRepoMetadataUnknownRepo(t *testing.T) {
	ctx := context.Background()
	loader, _ := newTestLoader(t, &fakeGitHub{}, time.Hour, nil, false)

	_, err := loader.RepoMetadata(ctx, "missing", false)
	require.Error(t, err)
}

func TestEnsureDefaultFolders(t *testing.T) {
	ctx := context.Background()
	defaults := []core.FolderConfig{
		{Name: "Go", AutoTags: []string{"go"}},
	}

	loader, _ := newTestLoader(t, &fakeGitHub{}, time.Hour, defaults, false)

	folders, err := loader.EnsureDefaultFolders(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 2)

	var ids []string
	for _, folder := range folders {
		ids = append(ids, folder.ID)
	}
	assert.Contains(t, ids, model.AllStarsFolderID)

	// Idempotent on repeat startup
	folders, err = loader.EnsureDefaultFolders(ctx)
	require.NoError(t, err)
	assert.Len(t, folders, 2)
}

func TestSyncAllStarsFolder(t *testing.T) {
	ctx := context.Background()
	repos := []*model.StarredRepo{
		makeRepo("1", "a/one", "Go", nil, 100),
		makeRepo("2", "b/two", "Rust", nil, 200),
	}
	client := &fakeGitHub{repos: repos}

	loader, folders := newTestLoader(t, client, time.Hour, nil, false)

	_, err := loader.LoadStarredRepos(ctx, false)
	require.NoError(t, err)
	_, err = loader.EnsureDefaultFolders(ctx)
	require.NoError(t, err)

	outcome := loader.SyncAllStarsFolder(ctx, repos)
	assert.Equal(t, core.SyncApplied, outcome.Status)
	assert.Equal(t, 2, outcome.Added)

	// Repeat sync adds nothing
	outcome = loader.SyncAllStarsFolder(ctx, repos)
	assert.Equal(t, core.SyncApplied, outcome.Status)
	assert.Equal(t, 0, outcome.Added)

	linked, err := folders.FolderRepos(ctx, model.AllStarsFolderID)
	require.NoError(t, err)
	assert.Len(t, linked, 2)
}

func TestAutoCategorizeAllRespectsToggle(t *testing.T) {
	ctx := context.Background()
	loader, _ := newTestLoader(t, &fakeGitHub{}, time.Hour, nil, false)

	outcome := loader.AutoCategorizeAll(ctx, nil)
	assert.Equal(t, core.SyncSkipped, outcome.Status)
	assert.Equal(t, "skipped", outcome.Status.String())
}

func TestRefreshFullFlow(t *testing.T) {
	ctx := context.Background()
	client := &fakeGitHub{repos: []*model.StarredRepo{
		makeRepo("1", "a/gin", "Go", []string{"web"}, 70000),
		makeRepo("2", "b/pytorch", "Python", []string{"machine-learning"}, 80000),
	}}
	defaults := []core.FolderConfig{
		{Name: "Go", AutoTags: []string{"go"}},
		{Name: "ML", AutoTags: []string{"machine-learning"}},
	}

	loader, folders := newTestLoader(t, client, time.Hour, defaults, true)

	repos, err := loader.Refresh(ctx, false)
	require.NoError(t, err)
	assert.Len(t, repos, 2)

	all, err := folders.FolderRepos(ctx, model.AllStarsFolderID)
	require.NoError(t, err)
	assert.Len(t, all, 2, "every starred repo lands in all-stars")

	list, err := folders.Folders(ctx)
	require.NoError(t, err)

	byName := make(map[string][]*model.StarredRepo)
	for _, folder := range list {
		contents, err := folders.FolderRepos(ctx, folder.ID)
		require.NoError(t, err)
		byName[folder.Name] = contents
	}

	require.Len(t, byName["Go"], 1)
	assert.Equal(t, "a/gin", byName["Go"][0].FullName)
	require.Len(t, byName["ML"], 1)
	assert.Equal(t, "b/pytorch", byName["ML"][0].FullName)
}
