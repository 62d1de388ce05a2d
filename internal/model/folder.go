package model

import (
	"strings"
	"time"
)

const (
	// AllStarsFolderID is the reserved folder that mirrors the full star list.
	// It is created on startup and cannot be deleted.
	AllStarsFolderID = "all-stars"

	// AllStarsFolderName is the display name of the reserved folder.
	AllStarsFolderName = "All Stars"
)

// VirtualFolder is a user-defined, tag-based grouping of starred repos.
// It exists only in the local store, never on GitHub.
type VirtualFolder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AutoTags    []string  `json:"auto_tags"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// RepoCount is computed on read, not stored
	RepoCount int `json:"repo_count"`
}

// IsReserved reports whether the folder is the protected All Stars folder.
func (f *VirtualFolder) IsReserved() bool {
	return f.ID == AllStarsFolderID
}

// MatchesRepo reports whether a repo belongs in this folder according to
// its auto-tags. Folders without auto-tags are manual-only and never match.
// Matching is exact case-insensitive token equality against the repo's
// topics, with the primary language treated as an implicit topic.
func (f *VirtualFolder) MatchesRepo(repo *StarredRepo) bool {
	if len(f.AutoTags) == 0 || repo == nil {
		return false
	}

	topics := make(map[string]struct{}, len(repo.Topics)+1)
	for _, topic := range repo.Topics {
		topics[strings.ToLower(topic)] = struct{}{}
	}
	if repo.Language != "" {
		topics[strings.ToLower(repo.Language)] = struct{}{}
	}

	for _, tag := range f.AutoTags {
		if _, ok := topics[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return false
}

// FolderRepoLink is a single folder membership row. IsManual distinguishes
// user-made links from ones created by the auto-categorization sweep.
type FolderRepoLink struct {
	FolderID string    `json:"folder_id"`
	RepoID   string    `json:"repo_id"`
	IsManual bool      `json:"is_manual"`
	AddedAt  time.Time `json:"added_at"`
}

// RepoMetadata holds extended per-repo data (README and capability flags)
// that is too heavy to load during ordinary listing.
type RepoMetadata struct {
	RepoID          string    `json:"repo_id"`
	ReadmeContent   string    `json:"readme_content,omitempty"`
	ReadmeFormat    string    `json:"readme_format"`
	HasIssues       bool      `json:"has_issues"`
	OpenIssuesCount int       `json:"open_issues_count"`
	HasWiki         bool      `json:"has_wiki"`
	HasProjects     bool      `json:"has_projects"`
	HasPages        bool      `json:"has_pages"`
	CachedAt        time.Time `json:"cached_at"`
}
