package sqldb

import (
	"context"
	"database/sql"
	"errors"

	repo "repo-relay/internal/subscription/repository"
)

// SetChannelRepo records repoName as the channel's default repository.
func (r *implRepository) SetChannelRepo(ctx context.Context, channel, repoName string) error {
	unlock := r.locks.lock(pairKey(channel, ""))
	defer unlock()

	query := `INSERT INTO channel_repos (channel, repo_name, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(channel) DO UPDATE SET repo_name = excluded.repo_name, updated_at = excluded.updated_at`
	if r.dialect == DriverMySQL {
		query = `INSERT INTO channel_repos (channel, repo_name, updated_at) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE repo_name = VALUES(repo_name), updated_at = VALUES(updated_at)`
	}

	if _, err := r.db.ExecContext(ctx, query, channel, repoName, r.now().Unix()); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SetChannelRepo"), err)
		return repo.ErrFailedToInsert
	}
	return nil
}

// GetChannelRepo returns the channel's default repository, "" when unset.
func (r *implRepository) GetChannelRepo(ctx context.Context, channel string) (string, error) {
	var repoName string
	err := r.db.QueryRowContext(ctx, `SELECT repo_name FROM channel_repos WHERE channel = ?`, channel).Scan(&repoName)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetChannelRepo"), err)
		return "", repo.ErrFailedToGet
	}
	return repoName, nil
}
