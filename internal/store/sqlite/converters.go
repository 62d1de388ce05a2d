package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/inovacc/stargazer/internal/model"
)

// repoColumns is the canonical starred_repos column list, kept in one
// place so every query scans in the same order.
const repoColumns = `id, full_name, name, owner, description, language, topics,
	stars_count, forks_count, watchers_count,
	is_archived, is_private, is_fork,
	created_at, updated_at, pushed_at, starred_at,
	url, clone_url, homepage, default_branch, license,
	cached_at, accessed_at`

// prefixedRepoColumns qualifies repoColumns with a table alias for joins.
func prefixedRepoColumns(alias string) string {
	cols := strings.Split(repoColumns, ",")
	for i, col := range cols {
		cols[i] = alias + "." + strings.TrimSpace(col)
	}
	return strings.Join(cols, ", ")
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRepo(row scanner) (*model.StarredRepo, error) {
	var (
		repo       model.StarredRepo
		topics     string
		archived   int
		private    int
		fork       int
		createdAt  string
		updatedAt  string
		pushedAt   string
		starredAt  string
		cachedAt   int64
		accessedAt int64
	)

	err := row.Scan(
		&repo.ID, &repo.FullName, &repo.Name, &repo.Owner, &repo.Description,
		&repo.Language, &topics,
		&repo.StarsCount, &repo.ForksCount, &repo.WatchersCount,
		&archived, &private, &fork,
		&createdAt, &updatedAt, &pushedAt, &starredAt,
		&repo.URL, &repo.CloneURL, &repo.Homepage, &repo.DefaultBranch, &repo.License,
		&cachedAt, &accessedAt,
	)
	if err != nil {
		return nil, err
	}

	repo.Topics = unmarshalStrings(topics)
	repo.IsArchived = archived == 1
	repo.IsPrivate = private == 1
	repo.IsFork = fork == 1
	repo.CreatedAt = parseTime(createdAt)
	repo.UpdatedAt = parseTime(updatedAt)
	repo.PushedAt = parseTime(pushedAt)
	repo.StarredAt = parseTime(starredAt)
	repo.CachedAt = fromUnixNano(cachedAt)
	repo.AccessedAt = fromUnixNano(accessedAt)

	return &repo, nil
}

func scanRepos(rows *sql.Rows) ([]*model.StarredRepo, error) {
	var repos []*model.StarredRepo

	for rows.Next() {
		repo, err := scanRepo(rows)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}

	return repos, rows.Err()
}

func scanFolder(row scanner) (*model.VirtualFolder, error) {
	var (
		folder    model.VirtualFolder
		autoTags  string
		createdAt string
		updatedAt string
	)

	err := row.Scan(&folder.ID, &folder.Name, &autoTags, &folder.Description,
		&createdAt, &updatedAt, &folder.RepoCount)
	if err != nil {
		return nil, err
	}

	folder.AutoTags = unmarshalStrings(autoTags)
	folder.CreatedAt = parseTime(createdAt)
	folder.UpdatedAt = parseTime(updatedAt)

	return &folder, nil
}

func scanMetadata(row scanner) (*model.RepoMetadata, error) {
	var (
		meta        model.RepoMetadata
		hasIssues   int
		hasWiki     int
		hasProjects int
		hasPages    int
		cachedAt    int64
	)

	err := row.Scan(&meta.RepoID, &meta.ReadmeContent, &meta.ReadmeFormat,
		&hasIssues, &meta.OpenIssuesCount, &hasWiki, &hasProjects, &hasPages, &cachedAt)
	if err != nil {
		return nil, err
	}

	meta.HasIssues = hasIssues == 1
	meta.HasWiki = hasWiki == 1
	meta.HasProjects = hasProjects == 1
	meta.HasPages = hasPages == 1
	meta.CachedAt = fromUnixNano(cachedAt)

	return &meta, nil
}

// upsertRepo writes one snapshot row inside the SetStarredRepos
// transaction. A true upsert, not INSERT OR REPLACE: REPLACE resolves the
// conflict by deleting the old row first, which would fire the
// folder_repos/repo_metadata cascades and wipe memberships for repos that
// are still starred. Existing rows keep their accessed_at.
func upsertRepo(ctx context.Context, tx *sql.Tx, repo *model.StarredRepo, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO starred_repos (
			id, full_name, name, owner, description, language, topics,
			stars_count, forks_count, watchers_count,
			is_archived, is_private, is_fork,
			created_at, updated_at, pushed_at, starred_at,
			url, clone_url, homepage, default_branch, license,
			cached_at, accessed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			name = excluded.name,
			owner = excluded.owner,
			description = excluded.description,
			language = excluded.language,
			topics = excluded.topics,
			stars_count = excluded.stars_count,
			forks_count = excluded.forks_count,
			watchers_count = excluded.watchers_count,
			is_archived = excluded.is_archived,
			is_private = excluded.is_private,
			is_fork = excluded.is_fork,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			pushed_at = excluded.pushed_at,
			starred_at = excluded.starred_at,
			url = excluded.url,
			clone_url = excluded.clone_url,
			homepage = excluded.homepage,
			default_branch = excluded.default_branch,
			license = excluded.license,
			cached_at = excluded.cached_at
	`,
		repo.ID, repo.FullName, repo.Name, repo.Owner, repo.Description,
		repo.Language, marshalStrings(repo.Topics),
		repo.StarsCount, repo.ForksCount, repo.WatchersCount,
		boolToInt(repo.IsArchived), boolToInt(repo.IsPrivate), boolToInt(repo.IsFork),
		formatTime(repo.CreatedAt), formatTime(repo.UpdatedAt),
		formatTime(repo.PushedAt), formatTime(repo.StarredAt),
		repo.URL, repo.CloneURL, repo.Homepage, repo.DefaultBranch, repo.License,
		now.UnixNano(), now.UnixNano(),
	)
	return err
}

// marshalStrings serializes a string list as a JSON column value.
func marshalStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalStrings(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
