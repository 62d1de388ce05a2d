package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/stargazer/internal/model"
)

// FolderService manages virtual folders on top of the store and owns the
// process clipboard. Repos can belong to many folders; folders with
// auto-tags also pick repos up during categorization sweeps.
type FolderService struct {
	store     Store
	clipboard *Clipboard
}

// NewFolderService creates a folder service backed by store.
func NewFolderService(store Store) *FolderService {
	return &FolderService{
		store:     store,
		clipboard: NewClipboard(),
	}
}

// Folders returns all virtual folders.
func (s *FolderService) Folders(ctx context.Context) ([]*model.VirtualFolder, error) {
	return s.store.ListFolders(ctx)
}

// CreateFolder creates a folder with a fresh id and current timestamps.
// A duplicate name surfaces as *DuplicateNameError.
func (s *FolderService) CreateFolder(ctx context.Context, name string, autoTags []string, description string) (*model.VirtualFolder, error) {
	now := time.Now().UTC()
	folder := &model.VirtualFolder{
		ID:          uuid.New().String(),
		Name:        name,
		AutoTags:    autoTags,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.store.CreateFolder(ctx, folder)
}

// DeleteFolder removes a folder and its membership links. The repos
// themselves stay in the store. The All Stars folder is protected.
func (s *FolderService) DeleteFolder(ctx context.Context, folderID string) error {
	if folderID == model.AllStarsFolderID {
		return &ReservedFolderError{ID: folderID}
	}
	return s.store.DeleteFolder(ctx, folderID)
}

// FolderRepos returns the repos linked to a folder, ordered by stars.
func (s *FolderService) FolderRepos(ctx context.Context, folderID string) ([]*model.StarredRepo, error) {
	return s.store.GetFolderRepos(ctx, folderID)
}

// AddRepoToFolder links a repo to a folder as a manual membership.
func (s *FolderService) AddRepoToFolder(ctx context.Context, repoID, folderID string) error {
	_, err := s.store.AddRepoToFolder(ctx, repoID, folderID, true)
	return err
}

// RemoveRepoFromFolder unlinks a repo from a folder. Removing a repo that
// is not in the folder is a no-op.
func (s *FolderService) RemoveRepoFromFolder(ctx context.Context, repoID, folderID string) error {
	return s.store.RemoveRepoFromFolder(ctx, repoID, folderID)
}

// MoveRepo removes a repo from one folder and adds it to another. The two
// steps run as separate transactions: if the add fails after the remove
// succeeded the repo ends up in neither folder. Accepted limitation for a
// single-user tool; the repo itself is never lost and can be re-linked.
func (s *FolderService) MoveRepo(ctx context.Context, repoID, fromFolderID, toFolderID string) error {
	if err := s.store.RemoveRepoFromFolder(ctx, repoID, fromFolderID); err != nil {
		return fmt.Errorf("removing repo from %s: %w", fromFolderID, err)
	}

	if _, err := s.store.AddRepoToFolder(ctx, repoID, toFolderID, true); err != nil {
		return fmt.Errorf("adding repo to %s: %w", toFolderID, err)
	}

	return nil
}

// CopyRepo links a repo to another folder, leaving the source untouched.
func (s *FolderService) CopyRepo(ctx context.Context, repoID, toFolderID string) error {
	_, err := s.store.AddRepoToFolder(ctx, repoID, toFolderID, true)
	return err
}

// AutoCategorizeAll links every matching repo to every folder that carries
// auto-tags. When repos is nil the cached snapshot is used, with an empty
// cache treated as an empty list. The returned map counts confirmed
// net-new links per folder id; repos that were already linked do not
// count.
func (s *FolderService) AutoCategorizeAll(ctx context.Context, repos []*model.StarredRepo) (map[string]int, error) {
	if repos == nil {
		cached, err := s.store.GetStarredRepos(ctx, true)
		if err != nil {
			return nil, fmt.Errorf("loading repos for categorization: %w", err)
		}
		repos = cached
	}

	folders, err := s.store.ListFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}

	counts := make(map[string]int)

	for _, folder := range folders {
		if len(folder.AutoTags) == 0 {
			continue
		}

		added := 0
		for _, repo := range repos {
			if !folder.MatchesRepo(repo) {
				continue
			}

			inserted, err := s.store.AddRepoToFolder(ctx, repo.ID, folder.ID, false)
			if err != nil {
				// The sweep is idempotent and best-effort per link
				slog.Debug("auto-categorize link failed",
					"folder", folder.ID, "repo", repo.ID, "error", err)
				continue
			}
			if inserted {
				added++
			}
		}

		counts[folder.ID] = added
	}

	return counts, nil
}

// AutoCategorizeRepo links a single repo into every matching auto-tag
// folder and returns the folder ids it now belongs to.
func (s *FolderService) AutoCategorizeRepo(ctx context.Context, repo *model.StarredRepo) ([]string, error) {
	folders, err := s.store.ListFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}

	var matched []string

	for _, folder := range folders {
		if len(folder.AutoTags) == 0 || !folder.MatchesRepo(repo) {
			continue
		}

		if _, err := s.store.AddRepoToFolder(ctx, repo.ID, folder.ID, false); err != nil {
			slog.Debug("auto-categorize link failed",
				"folder", folder.ID, "repo", repo.ID, "error", err)
			continue
		}
		matched = append(matched, folder.ID)
	}

	return matched, nil
}

// SuggestFolders returns the auto-tag folders a repo would land in,
// without creating any links.
func (s *FolderService) SuggestFolders(ctx context.Context, repo *model.StarredRepo) ([]*model.VirtualFolder, error) {
	folders, err := s.store.ListFolders(ctx)
	if err != nil {
		return nil, err
	}

	var suggestions []*model.VirtualFolder
	for _, folder := range folders {
		if len(folder.AutoTags) > 0 && folder.MatchesRepo(repo) {
			suggestions = append(suggestions, folder)
		}
	}

	return suggestions, nil
}

// FolderConfig declares a folder to create at startup.
type FolderConfig struct {
	ID          string
	Name        string
	AutoTags    []string
	Description string
}

// CreateDefaultFolders creates each configured folder, skipping names that
// already exist. Unlike CreateFolder, duplicates are not an error here;
// the call is safe to repeat on every startup.
func (s *FolderService) CreateDefaultFolders(ctx context.Context, configs []FolderConfig) ([]*model.VirtualFolder, error) {
	var created []*model.VirtualFolder

	for _, cfg := range configs {
		id := cfg.ID
		if id == "" {
			id = uuid.New().String()
		}

		now := time.Now().UTC()
		folder, err := s.store.CreateFolder(ctx, &model.VirtualFolder{
			ID:          id,
			Name:        cfg.Name,
			AutoTags:    cfg.AutoTags,
			Description: cfg.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			if IsDuplicateName(err) {
				slog.Debug("default folder already exists", "name", cfg.Name)
				continue
			}
			return created, err
		}

		created = append(created, folder)
	}

	return created, nil
}

// FolderStats aggregates star counts and languages across a folder.
func (s *FolderService) FolderStats(ctx context.Context, folderID string) (*model.FolderStats, error) {
	repos, err := s.store.GetFolderRepos(ctx, folderID)
	if err != nil {
		return nil, err
	}

	stats := &model.FolderStats{
		FolderID:  folderID,
		RepoCount: len(repos),
		Languages: make(map[string]int),
	}

	for _, repo := range repos {
		stats.TotalStars += repo.StarsCount
		if repo.Language != "" {
			stats.Languages[repo.Language]++
		}
	}

	if len(repos) > 0 {
		stats.AvgStars = stats.TotalStars / len(repos)
	}

	top, topCount := "", 0
	for lang, count := range stats.Languages {
		if count > topCount || (count == topCount && lang < top) {
			top, topCount = lang, count
		}
	}
	stats.TopLanguage = top

	return stats, nil
}

// ClipboardCopy stages repos for copying between folders.
func (s *FolderService) ClipboardCopy(repos []*model.StarredRepo, sourceFolderID string) {
	s.clipboard.Copy(repos, sourceFolderID)
}

// ClipboardCut stages repos for moving out of sourceFolderID.
func (s *FolderService) ClipboardCut(repos []*model.StarredRepo, sourceFolderID string) {
	s.clipboard.Cut(repos, sourceFolderID)
}

// ClipboardPaste applies the held batch to targetFolderID: cut items with
// a recorded source are moved, everything else is copied. A cut batch
// empties the clipboard after one paste; a copy batch stays staged so it
// can be pasted into several folders. Returns the number of repos pasted.
func (s *FolderService) ClipboardPaste(ctx context.Context, targetFolderID string) (int, error) {
	items := s.clipboard.Items()

	for _, item := range items {
		if item.Op == ClipboardCut && item.SourceFolderID != "" {
			if err := s.MoveRepo(ctx, item.Repo.ID, item.SourceFolderID, targetFolderID); err != nil {
				return 0, err
			}
			continue
		}
		if err := s.CopyRepo(ctx, item.Repo.ID, targetFolderID); err != nil {
			return 0, err
		}
	}

	if len(items) > 0 && items[0].Op == ClipboardCut {
		s.clipboard.Clear()
	}

	return len(items), nil
}

// ClipboardClear drops the held batch.
func (s *FolderService) ClipboardClear() {
	s.clipboard.Clear()
}

// ClipboardStatus returns a read-only view of the clipboard.
func (s *FolderService) ClipboardStatus() ClipboardStatus {
	return ClipboardStatus{
		Count:     s.clipboard.Count(),
		Operation: s.clipboard.Operation(),
		IsEmpty:   s.clipboard.IsEmpty(),
	}
}
