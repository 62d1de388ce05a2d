package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var migrationFileRe = regexp.MustCompile(`^(\d+)_(.+)\.(up|down)\.sql$`)

// migration pairs the up and down scripts for one schema version.
type migration struct {
	version     int
	description string
	upSQL       string
	downSQL     string
}

// loadMigrations reads the embedded migration scripts sorted by version.
func loadMigrations() ([]migration, error) {
	byVersion := make(map[int]*migration)

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	for _, entry := range entries {
		matches := migrationFileRe.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}

		version, _ := strconv.Atoi(matches[1])
		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		mig, ok := byVersion[version]
		if !ok {
			mig = &migration{
				version:     version,
				description: strings.ReplaceAll(matches[2], "_", " "),
			}
			byVersion[version] = mig
		}

		if matches[3] == "up" {
			mig.upSQL = string(content)
		} else {
			mig.downSQL = string(content)
		}
	}

	result := make([]migration, 0, len(byVersion))
	for _, mig := range byVersion {
		result = append(result, *mig)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].version < result[j].version })

	return result, nil
}

// currentVersion returns the applied schema version, 0 on a fresh database.
func currentVersion(db *sql.DB) (int, error) {
	var name string
	err := db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name = 'schema_migrations'
	`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("checking schema_migrations table: %w", err)
	}

	var version int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}

	return version, nil
}

// migrateUp applies all pending migrations, each inside its own
// transaction. Safe to call on every process start.
func migrateUp(db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	version, err := currentVersion(db)
	if err != nil {
		return err
	}

	for _, mig := range migrations {
		if mig.version <= version {
			continue
		}
		if mig.upSQL == "" {
			return fmt.Errorf("migration %d has no up SQL", mig.version)
		}
		if err := runScript(db, mig.upSQL); err != nil {
			return fmt.Errorf("applying migration %d (%s): %w", mig.version, mig.description, err)
		}
	}

	return nil
}

func runScript(db *sql.DB, script string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("executing migration: %w", err)
	}

	return tx.Commit()
}
