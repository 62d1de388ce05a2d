package model

import "time"

// CacheStats summarizes the state of the local store.
type CacheStats struct {
	RepoCount     int           `json:"repo_count"`
	FolderCount   int           `json:"folder_count"`
	MetadataCount int           `json:"metadata_count"`
	OldestCache   time.Time     `json:"oldest_cache,omitzero"`
	TTL           time.Duration `json:"ttl_seconds"`
	Path          string        `json:"path"`
}

// FolderStats aggregates the repos linked to one folder.
type FolderStats struct {
	FolderID    string         `json:"folder_id"`
	RepoCount   int            `json:"repo_count"`
	TotalStars  int            `json:"total_stars"`
	AvgStars    int            `json:"avg_stars"`
	Languages   map[string]int `json:"languages"`
	TopLanguage string         `json:"top_language,omitempty"`
}
