package core_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/inovacc/stargazer/internal/core"
	"github.com/inovacc/stargazer/internal/model"
	"github.com/inovacc/stargazer/internal/store/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *sqlite.Store {
	t.Helper()

	st, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func makeRepo(id, fullName, language string, topics []string, stars int) *model.StarredRepo {
	return &model.StarredRepo{
		ID:            id,
		FullName:      fullName,
		Name:          filepath.Base(fullName),
		Owner:         filepath.Dir(fullName),
		Language:      language,
		Topics:        topics,
		StarsCount:    stars,
		DefaultBranch: "main",
		CreatedAt:     time.Now().Add(-24 * time.Hour),
		UpdatedAt:     time.Now(),
		StarredAt:     time.Now(),
	}
}

func seedRepos(t *testing.T, st *sqlite.Store, repos ...*model.StarredRepo) {
	t.Helper()
	require.NoError(t, st.SetStarredRepos(context.Background(), repos))
}

func TestCreateFolderDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := core.NewFolderService(newTestStore(t, time.Hour))

	folder, err := svc.CreateFolder(ctx, "ML", []string{"machine-learning"}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, folder.ID)
	assert.Equal(t, "ML", folder.Name)

	_, err = svc.CreateFolder(ctx, "ML", nil, "")
	require.Error(t, err)
	assert.True(t, core.IsDuplicateName(err))
}

func TestDeleteFolderProtectsAllStars(t *testing.T) {
	ctx := context.Background()
	svc := core.NewFolderService(newTestStore(t, time.Hour))

	_, err := svc.CreateDefaultFolders(ctx, []core.FolderConfig{
		{ID: model.AllStarsFolderID, Name: model.AllStarsFolderName},
	})
	require.NoError(t, err)

	err = svc.DeleteFolder(ctx, model.AllStarsFolderID)
	require.Error(t, err)

	var reserved *core.ReservedFolderError
	assert.ErrorAs(t, err, &reserved)

	folders, err := svc.Folders(ctx)
	require.NoError(t, err)
	assert.Len(t, folders, 1)
}

func TestAddRemoveRepoInFolder(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, time.Hour)
	svc := core.NewFolderService(st)

	seedRepos(t, st,
		makeRepo("1", "a/low", "Go", nil, 100),
		makeRepo("2", "b/high", "Go", nil, 9000),
	)

	folder, err := svc.CreateFolder(ctx, "Go", nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.AddRepoToFolder(ctx, "1", folder.ID))
	require.NoError(t, svc.AddRepoToFolder(ctx, "2", folder.ID))

	// Re-adding is idempotent
	require.NoError(t, svc.AddRepoToFolder(ctx, "1", folder.ID))

	repos, err := svc.FolderRepos(ctx, folder.ID)
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "b/high", repos[0].FullName, "folder listing is ordered by stars")

	require.NoError(t, svc.RemoveRepoFromFolder(ctx, "1", folder.ID))

	// Removing a repo that is not in the folder is a no-op
	require.NoError(t, svc.RemoveRepoFromFolder(ctx, "1", folder.ID))

	repos, err = svc.FolderRepos(ctx, folder.ID)
	require.NoError(t, err)
	assert.Len(t, repos, 1)
}

func TestMoveRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, time.Hour)
	svc := core.NewFolderService(st)

	seedRepos(t, st, makeRepo("1", "a/repo", "Go", nil, 10))

	from, err := svc.CreateFolder(ctx, "From", nil, "")
	require.NoError(t, err)
	to, err := svc.CreateFolder(ctx, "To", nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.AddRepoToFolder(ctx, "1", from.ID))
	require.NoError(t, svc.MoveRepo(ctx, "1", from.ID, to.ID))

	fromRepos, err := svc.FolderRepos(ctx, from.ID)
	require.NoError(t, err)
	assert.Empty(t, fromRepos)

	toRepos, err := svc.FolderRepos(ctx, to.ID)
	require.NoError(t, err)
	require.Len(t, toRepos, 1)
	assert.Equal(t, "a/repo", toRepos[0].FullName)
}

func TestAutoCategorizeAll(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, time.Hour)
	svc := core.NewFolderService(st)

	seedRepos(t, st,
		makeRepo("1", "a/gin", "Go", []string{"web", "framework"}, 70000),
		makeRepo("2", "b/pytorch", "Python", []string{"machine-learning"}, 80000),
		makeRepo("3", "c/dotfiles", "", nil, 50),
	)

	goFolder, err := svc.CreateFolder(ctx, "Go", []string{"go"}, "")
	require.NoError(t, err)
	mlFolder, err := svc.CreateFolder(ctx, "ML", []string{"machine-learning"}, "")
	require.NoError(t, err)
	manual, err := svc.CreateFolder(ctx, "Reading List", nil, "")
	require.NoError(t, err)

	counts, err := svc.AutoCategorizeAll(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, counts[goFolder.ID])
	assert.Equal(t, 1, counts[mlFolder.ID])
	assert.NotContains(t, counts, manual.ID, "manual folders are never swept")

	// Second sweep finds nothing new
	counts, err = svc.AutoCategorizeAll(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, counts[goFolder.ID])
	assert.Equal(t, 0, counts[mlFolder.ID])
}

func TestAutoCategorizeAllEmptyCache(t *testing.T) {
	ctx := context.Background()
	svc := core.NewFolderService(newTestStore(t, time.Hour))

	folder, err := svc.CreateFolder(ctx, "Go", []string{"go"}, "")
	require.NoError(t, err)

	counts, err := svc.AutoCategorizeAll(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, counts[folder.ID])
}

func TestSuggestFolders(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, time.Hour)
	svc := core.NewFolderService(st)

	_, err := svc.CreateFolder(ctx, "Go", []string{"go"}, "")
	require.NoError(t, err)
	_, err = svc.CreateFolder(ctx, "Web", []string{"web"}, "")
	require.NoError(t, err)
	_, err = svc.CreateFolder(ctx, "Manual", nil, "")
	require.NoError(t, err)

	repo := makeRepo("1", "a/gin", "Go", []string{"web"}, 70000)

	suggestions, err := svc.SuggestFolders(ctx, repo)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
}

func TestCreateDefaultFoldersSkipsExisting(t *testing.T) {
	ctx := context.Background()
	svc := core.NewFolderService(newTestStore(t, time.Hour))

	configs := []core.FolderConfig{
		{Name: "Go", AutoTags: []string{"go"}},
		{Name: "Rust", AutoTags: []string{"rust"}},
	}

	created, err := svc.CreateDefaultFolders(ctx, configs)
	require.NoError(t, err)
	assert.Len(t, created, 2)

	created, err = svc.CreateDefaultFolders(ctx, configs)
	require.NoError(t, err)
	assert.Empty(t, created)

	folders, err := svc.Folders(ctx)
	require.NoError(t, err)
	assert.Len(t, folders, 2)
}

func TestFolderStats(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, time.Hour)
	svc := core.NewFolderService(st)

	seedRepos(t, st,
		makeRepo("1", "a/one", "Python", nil, 50000),
		makeRepo("2", "b/two", "Python", nil, 45000),
	)

	folder, err := svc.CreateFolder(ctx, "ML", nil, "")
	require.NoError(t, err)
	for _, id := range []string{"1", "2"} {
		require.NoError(t, svc.AddRepoToFolder(ctx, id, folder.ID))
	}

	stats, err := svc.FolderStats(ctx, folder.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.RepoCount)
	assert.Equal(t, 95000, stats.TotalStars)
	assert.Equal(t, 47500, stats.AvgStars)
	assert.Equal(t, map[string]int{"Python": 2}, stats.Languages)
	assert.Equal(t, "Python", stats.TopLanguage)
}

func TestFolderStatsMixedLanguages(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, time.Hour)
	svc := core.NewFolderService(st)

	seedRepos(t, st,
		makeRepo("1", "a/one", "Go", nil, 300),
		makeRepo("2", "b/two", "Go", nil, 200),
		makeRepo("3", "c/three", "Rust", nil, 100),
	)

	folder, err := svc.CreateFolder(ctx, "Infra", nil, "")
	require.NoError(t, err)
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, svc.AddRepoToFolder(ctx, id, folder.ID))
	}

	stats, err := svc.FolderStats(ctx, folder.ID)
	require.NoError(t, err)

	assert.Equal(t, 200, stats.AvgStars, "average rounds down")
	assert.Equal(t, map[string]int{"Go": 2, "Rust": 1}, stats.Languages)
	assert.Equal(t, "Go", stats.TopLanguage)
}

func TestFolderStatsEmptyFolder(t *testing.T) {
	ctx := context.Background()
	svc := core.NewFolderService(newTestStore(t, time.Hour))

	folder, err := svc.CreateFolder(ctx, "Empty", nil, "")
	require.NoError(t, err)

	stats, err := svc.FolderStats(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.RepoCount)
	assert.Equal(t, 0, stats.AvgStars)
	assert.Empty(t, stats.TopLanguage)
}

func TestClipboardPasteCopy(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, time.Hour)
	svc := core.NewFolderService(st)

	repo := makeRepo("1", "a/repo", "Go", nil, 10)
	seedRepos(t, st, repo)

	src, err := svc.CreateFolder(ctx, "Src", nil, "")
	require.NoError(t, err)
	dstA, err := svc.CreateFolder(ctx, "A", nil, "")
	require.NoError(t, err)
	dstB, err := svc.CreateFolder(ctx, "B", nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.AddRepoToFolder(ctx, "1", src.ID))

	svc.ClipboardCopy([]*model.StarredRepo{repo}, src.ID)

	count, err := svc.ClipboardPaste(ctx, dstA.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// A copy batch stays staged and can be pasted again
	assert.False(t, svc.ClipboardStatus().IsEmpty)

	_, err = svc.ClipboardPaste(ctx, dstB.ID)
	require.NoError(t, err)

	for _, folderID := range []string{src.ID, dstA.ID, dstB.ID} {
		repos, err := svc.FolderRepos(ctx, folderID)
		require.NoError(t, err)
		assert.Len(t, repos, 1)
	}
}

func TestClipboardPasteCut(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, time.Hour)
	svc := core.NewFolderService(st)

	repo := makeRepo("1", "a/repo", "Go", nil, 10)
	seedRepos(t, st, repo)

	src, err := svc.CreateFolder(ctx, "Src", nil, "")
	require.NoError(t, err)
	dst, err := svc.CreateFolder(ctx, "Dst", nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.AddRepoToFolder(ctx, "1", src.ID))

	svc.ClipboardCut([]*model.StarredRepo{repo}, src.ID)

	count, err := svc.ClipboardPaste(ctx, dst.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// A cut batch is consumed by the paste
	assert.True(t, svc.ClipboardStatus().IsEmpty)

	// Pasting again is a no-op
	count, err = svc.ClipboardPaste(ctx, dst.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	srcRepos, err := svc.FolderRepos(ctx, src.ID)
	require.NoError(t, err)
	assert.Empty(t, srcRepos)

	dstRepos, err := svc.FolderRepos(ctx, dst.ID)
	require.NoError(t, err)
	assert.Len(t, dstRepos, 1)
}
