// Package sqlite provides the SQLite-backed record store for stargazer.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/inovacc/stargazer/internal/core"
	"github.com/inovacc/stargazer/internal/model"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store implements core.Store on a single SQLite database. One open
// connection with a mutex: SQLite doesn't handle multiple writers well and
// the workload is a single user on a single machine.
type Store struct {
	db   *sql.DB
	path string
	ttl  time.Duration
	mu   sync.RWMutex
}

// New opens (creating when needed) the database at dbPath and applies
// pending migrations. ttl is the snapshot time-to-live used by the read
// path and by CleanupExpired.
func New(dbPath string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// Pragmas go in the DSN so every connection the pool opens, including
	// replacements for recycled ones, comes up with them applied.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db, path: dbPath, ttl: ttl}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks if the database is accessible.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// GetStarredRepos returns the cached snapshot ordered by stars descending.
// Cache validity is all-or-nothing: when the oldest row is past the TTL
// the whole snapshot counts as expired and nil is returned. forceRefresh
// skips the TTL check only; an empty store always yields nil.
func (s *Store) GetStarredRepos(ctx context.Context, forceRefresh bool) ([]*model.StarredRepo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !forceRefresh {
		var oldest sql.NullInt64
		err := s.db.QueryRowContext(ctx, `SELECT MIN(cached_at) FROM starred_repos`).Scan(&oldest)
		if err != nil {
			return nil, fmt.Errorf("checking cache age: %w", err)
		}
		if oldest.Valid && time.Since(time.Unix(0, oldest.Int64)) > s.ttl {
			return nil, nil
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+repoColumns+`
		FROM starred_repos
		ORDER BY stars_count DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying starred repos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	repos, err := scanRepos(rows)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, nil
	}

	return repos, nil
}

// SetStarredRepos replaces the entire snapshot in one transaction,
// stamping every row with the current time. Repos absent from the new
// list are dropped and their folder links and metadata cascade away with
// them; retained repos are updated in place so their links and metadata
// survive the refresh.
func (s *Store) SetStarredRepos(ctx context.Context, repos []*model.StarredRepo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteStaleRepos(ctx, tx, repos); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, repo := range repos {
		if err := upsertRepo(ctx, tx, repo, now); err != nil {
			return fmt.Errorf("upserting repo %s: %w", repo.FullName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}

	return nil
}

// deleteStaleRepos removes rows absent from the new snapshot. Only these
// deletions may cascade into folder_repos and repo_metadata.
func deleteStaleRepos(ctx context.Context, tx *sql.Tx, repos []*model.StarredRepo) error {
	if len(repos) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM starred_repos`); err != nil {
			return fmt.Errorf("clearing starred repos: %w", err)
		}
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(repos)), ",")
	args := make([]any, len(repos))
	for i, repo := range repos {
		args[i] = repo.ID
	}

	query := `DELETE FROM starred_repos WHERE id NOT IN (` + placeholders + `)`
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("dropping stale repos: %w", err)
	}

	return nil
}

// GetRepo returns a single repo by id, or nil when absent. Reading a repo
// bumps its accessed_at; the read and the bump commit together.
func (s *Store) GetRepo(ctx context.Context, id string) (*model.StarredRepo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT `+repoColumns+`
		FROM starred_repos
		WHERE id = ?
	`, id)

	repo, err := scanRepo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying repo %s: %w", id, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE starred_repos SET accessed_at = ? WHERE id = ?`,
		time.Now().UTC().UnixNano(), id)
	if err != nil {
		return nil, fmt.Errorf("updating accessed_at: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing read: %w", err)
	}

	return repo, nil
}

// ListFolders returns all folders with their computed repo counts, oldest
// first.
func (s *Store) ListFolders(ctx context.Context) ([]*model.VirtualFolder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.name, f.auto_tags, f.description, f.created_at, f.updated_at,
		       COUNT(fr.repo_id) AS repo_count
		FROM virtual_folders f
		LEFT JOIN folder_repos fr ON fr.folder_id = f.id
		GROUP BY f.id
		ORDER BY f.created_at ASC, f.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var folders []*model.VirtualFolder
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}

	return folders, rows.Err()
}

// CreateFolder inserts a folder, stamping zero timestamps with the current
// time. A name that already exists yields *core.DuplicateNameError.
func (s *Store) CreateFolder(ctx context.Context, folder *model.VirtualFolder) (*model.VirtualFolder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = now
	}
	if folder.UpdatedAt.IsZero() {
		folder.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO virtual_folders (id, name, auto_tags, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		folder.ID,
		folder.Name,
		marshalStrings(folder.AutoTags),
		folder.Description,
		folder.CreatedAt.Format(time.RFC3339Nano),
		folder.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &core.DuplicateNameError{Name: folder.Name}
		}
		return nil, fmt.Errorf("inserting folder %q: %w", folder.Name, err)
	}

	return folder, nil
}

// DeleteFolder removes a folder; its membership links cascade away.
// Deleting a folder that does not exist is a silent no-op.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM virtual_folders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting folder %s: %w", id, err)
	}

	return nil
}

// GetFolderRepos returns the repos linked to a folder, ordered by stars
// descending.
func (s *Store) GetFolderRepos(ctx context.Context, folderID string) ([]*model.StarredRepo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+prefixedRepoColumns("r")+`
		FROM starred_repos r
		JOIN folder_repos fr ON fr.repo_id = r.id
		WHERE fr.folder_id = ?
		ORDER BY r.stars_count DESC
	`, folderID)
	if err != nil {
		return nil, fmt.Errorf("querying folder repos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRepos(rows)
}

// AddRepoToFolder upserts a membership link. Re-adding refreshes
// is_manual and added_at. The returned bool is true when a new link was
// created, false when an existing one was replaced.
func (s *Store) AddRepoToFolder(ctx context.Context, repoID, folderID string, isManual bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM folder_repos WHERE folder_id = ? AND repo_id = ?
	`, folderID, repoID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking folder link: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO folder_repos (folder_id, repo_id, is_manual, added_at)
		VALUES (?, ?, ?, ?)
	`, folderID, repoID, boolToInt(isManual), time.Now().UTC().UnixNano())
	if err != nil {
		return false, fmt.Errorf("linking repo %s to folder %s: %w", repoID, folderID, err)
	}

	return exists == 0, nil
}

// RemoveRepoFromFolder drops a membership link; a missing link is a no-op.
func (s *Store) RemoveRepoFromFolder(ctx context.Context, repoID, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM folder_repos WHERE folder_id = ? AND repo_id = ?
	`, folderID, repoID)
	if err != nil {
		return fmt.Errorf("unlinking repo %s from folder %s: %w", repoID, folderID, err)
	}

	return nil
}

// GetRepoMetadata returns the extended metadata for a repo, or nil when
// none is cached.
func (s *Store) GetRepoMetadata(ctx context.Context, repoID string) (*model.RepoMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT repo_id, readme_content, readme_format, has_issues, open_issues_count,
		       has_wiki, has_projects, has_pages, cached_at
		FROM repo_metadata
		WHERE repo_id = ?
	`, repoID)

	meta, err := scanMetadata(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying metadata for %s: %w", repoID, err)
	}

	return meta, nil
}

// SetRepoMetadata upserts the extended metadata for a repo.
func (s *Store) SetRepoMetadata(ctx context.Context, meta *model.RepoMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cachedAt := meta.CachedAt
	if cachedAt.IsZero() {
		cachedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO repo_metadata (
			repo_id, readme_content, readme_format, has_issues, open_issues_count,
			has_wiki, has_projects, has_pages, cached_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		meta.RepoID,
		meta.ReadmeContent,
		meta.ReadmeFormat,
		boolToInt(meta.HasIssues),
		meta.OpenIssuesCount,
		boolToInt(meta.HasWiki),
		boolToInt(meta.HasProjects),
		boolToInt(meta.HasPages),
		cachedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("saving metadata for %s: %w", meta.RepoID, err)
	}

	return nil
}

// CleanupExpired deletes repos whose cached_at predates now-TTL and
// returns how many were removed. Folder links cascade with them.
func (s *Store) CleanupExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-s.ttl).UnixNano()

	res, err := s.db.ExecContext(ctx, `DELETE FROM starred_repos WHERE cached_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleaning up expired repos: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting removed rows: %w", err)
	}

	return int(n), nil
}

// Stats returns counts and cache-age information for the whole store.
func (s *Store) Stats(ctx context.Context) (*model.CacheStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.CacheStats{TTL: s.ttl, Path: s.path}

	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM starred_repos),
			(SELECT COUNT(*) FROM virtual_folders),
			(SELECT COUNT(*) FROM repo_metadata),
			(SELECT MIN(cached_at) FROM starred_repos)
	`)

	var oldest sql.NullInt64
	if err := row.Scan(&stats.RepoCount, &stats.FolderCount, &stats.MetadataCount, &oldest); err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}

	if oldest.Valid {
		stats.OldestCache = time.Unix(0, oldest.Int64).UTC()
	}

	return stats, nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. modernc.org/sqlite surfaces these as extended result code 2067
// (SQLITE_CONSTRAINT_UNIQUE) in the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
