package sqldb

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed migrations/sqlite/*.sql migrations/mysql/*.sql
var migrationsFS embed.FS

// Migrate applies every pending *.sql file for the active dialect in sorted
// order, tracking applied files in schema_migrations.
func (r *implRepository) Migrate(ctx context.Context) error {
	createTable := `CREATE TABLE IF NOT EXISTS schema_migrations (
		filename   TEXT    NOT NULL PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`
	if r.dialect == DriverMySQL {
		createTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
			filename   VARCHAR(191) NOT NULL PRIMARY KEY,
			applied_at BIGINT       NOT NULL
		) ENGINE=InnoDB`
	}
	if _, err := r.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	dir := "migrations/" + r.dialect
	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading migrations dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var count int
		row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE filename = ?`, name)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("checking migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}

		data, err := migrationsFS.ReadFile(dir + "/" + name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		// The mysql driver rejects multi-statement Exec unless the DSN opts in.
		for _, stmt := range splitStatements(string(data)) {
			if _, err := r.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("applying migration %s: %w", name, err)
			}
		}

		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO schema_migrations (filename, applied_at) VALUES (?, ?)`,
			name, r.now().Unix()); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		r.l.Infof(ctx, "%s: applied %s", r.dsn("Migrate"), name)
	}
	return nil
}

func splitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
