package model

import (
	"fmt"
	"time"
)

// StarredRepo is a cached snapshot of a starred GitHub repository.
// Rows are replaced wholesale on every full sync, never merged.
type StarredRepo struct {
	// ID is GitHub's stable repository identifier, stored as a string
	ID string `json:"id"`

	// FullName is the unique "owner/name" secondary key
	FullName string `json:"full_name"`

	Name        string   `json:"name"`
	Owner       string   `json:"owner"`
	Description string   `json:"description"`
	Language    string   `json:"language,omitempty"`
	Topics      []string `json:"topics"`

	StarsCount    int `json:"stars_count"`
	ForksCount    int `json:"forks_count"`
	WatchersCount int `json:"watchers_count"`

	IsArchived bool `json:"is_archived"`
	IsPrivate  bool `json:"is_private"`
	IsFork     bool `json:"is_fork"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	PushedAt  time.Time `json:"pushed_at"`
	StarredAt time.Time `json:"starred_at"`

	URL           string `json:"url"`
	CloneURL      string `json:"clone_url"`
	Homepage      string `json:"homepage,omitempty"`
	DefaultBranch string `json:"default_branch"`
	License       string `json:"license,omitempty"`

	// Cache bookkeeping, owned by the store
	CachedAt   time.Time `json:"cached_at"`
	AccessedAt time.Time `json:"accessed_at"`
}

// FormatStars renders the star count for display (e.g. 1.2k, 45.3k).
func (r *StarredRepo) FormatStars() string {
	if r.StarsCount >= 1000 {
		return fmt.Sprintf("%.1fk", float64(r.StarsCount)/1000)
	}
	return fmt.Sprintf("%d", r.StarsCount)
}

// FormatUpdated renders the last-pushed age for display (e.g. 2d ago).
func (r *StarredRepo) FormatUpdated() string {
	if r.UpdatedAt.IsZero() {
		return "unknown"
	}

	delta := time.Since(r.UpdatedAt)
	days := int(delta.Hours() / 24)

	switch {
	case days < 1:
		hours := int(delta.Hours())
		if hours == 0 {
			return "just now"
		}
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case days < 30:
		return fmt.Sprintf("%dw ago", days/7)
	case days < 365:
		return fmt.Sprintf("%dmo ago", days/30)
	default:
		return fmt.Sprintf("%dy ago", days/365)
	}
}
