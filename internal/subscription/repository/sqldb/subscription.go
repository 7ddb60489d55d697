package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"repo-relay/internal/model"
	repo "repo-relay/internal/subscription/repository"
)

const subscriptionColumns = `channel, repo_name, enabled,
	repo_color, name_color, branch_color, tag_color, hash_color, url_color,
	created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSubscription(s scanner) (model.Subscription, error) {
	var (
		sub                  model.Subscription
		colors               [model.ColorSlots]sql.NullInt64
		createdAt, updatedAt int64
	)
	err := s.Scan(&sub.Channel, &sub.Repo, &sub.Enabled,
		&colors[0], &colors[1], &colors[2], &colors[3], &colors[4], &colors[5],
		&createdAt, &updatedAt)
	if err != nil {
		return model.Subscription{}, err
	}

	values := make([]int, 0, model.ColorSlots)
	for _, c := range colors {
		if !c.Valid {
			break
		}
		values = append(values, int(c.Int64))
	}
	if scheme, err := model.ColorSchemeFromSlice(values); err == nil {
		sub.Colors = &scheme
	}
	sub.CreatedAt = time.Unix(createdAt, 0).UTC()
	sub.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return sub, nil
}

func (r *implRepository) getSubscription(ctx context.Context, q querier, channel, repoName string) (model.Subscription, bool, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM gh_hooks WHERE channel = ? AND repo_name = ? LIMIT 1`
	sub, err := scanSubscription(q.QueryRowContext(ctx, query, channel, repoName))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscription{}, false, nil
	}
	if err != nil {
		return model.Subscription{}, false, err
	}
	return sub, true, nil
}

// GetSubscription retrieves a single subscription by its (channel, repo) key.
// Returns zero-value Subscription (Channel == "") when not found.
func (r *implRepository) GetSubscription(ctx context.Context, opt repo.GetSubscriptionOptions) (model.Subscription, error) {
	sub, _, err := r.getSubscription(ctx, r.db, opt.Channel, opt.Repo)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetSubscription"), err)
		return model.Subscription{}, repo.ErrFailedToGet
	}
	return sub, nil
}

// UpsertSubscription creates the pair or updates only its enabled flag.
// The bool result reports whether a new row was inserted.
func (r *implRepository) UpsertSubscription(ctx context.Context, opt repo.UpsertSubscriptionOptions) (model.Subscription, bool, error) {
	unlock := r.locks.lock(pairKey(opt.Channel, opt.Repo))
	defer unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("UpsertSubscription"), err)
		return model.Subscription{}, false, repo.ErrFailedToInsert
	}
	defer tx.Rollback()

	existing, found, err := r.getSubscription(ctx, tx, opt.Channel, opt.Repo)
	if err != nil {
		r.l.Errorf(ctx, "%s get: %v", r.dsn("UpsertSubscription"), err)
		return model.Subscription{}, false, repo.ErrFailedToInsert
	}

	now := r.now().UTC().Truncate(time.Second)
	if found {
		const query = `UPDATE gh_hooks SET enabled = ?, updated_at = ? WHERE channel = ? AND repo_name = ?`
		if _, err := tx.ExecContext(ctx, query, opt.Enabled, now.Unix(), opt.Channel, opt.Repo); err != nil {
			r.l.Errorf(ctx, "%s update: %v", r.dsn("UpsertSubscription"), err)
			return model.Subscription{}, false, repo.ErrFailedToUpdate
		}
		existing.Enabled = opt.Enabled
		existing.UpdatedAt = now
	} else {
		const query = `INSERT INTO gh_hooks (channel, repo_name, enabled, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, query, opt.Channel, opt.Repo, opt.Enabled, now.Unix(), now.Unix()); err != nil {
			r.l.Errorf(ctx, "%s insert: %v", r.dsn("UpsertSubscription"), err)
			return model.Subscription{}, false, repo.ErrFailedToInsert
		}
		existing = model.Subscription{
			Channel:   opt.Channel,
			Repo:      opt.Repo,
			Enabled:   opt.Enabled,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("UpsertSubscription"), err)
		return model.Subscription{}, false, repo.ErrFailedToInsert
	}
	return existing, !found, nil
}

// UpdateColors replaces the scheme of an existing subscription.
func (r *implRepository) UpdateColors(ctx context.Context, opt repo.UpdateColorsOptions) (model.Subscription, error) {
	unlock := r.locks.lock(pairKey(opt.Channel, opt.Repo))
	defer unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("UpdateColors"), err)
		return model.Subscription{}, repo.ErrFailedToUpdate
	}
	defer tx.Rollback()

	existing, found, err := r.getSubscription(ctx, tx, opt.Channel, opt.Repo)
	if err != nil {
		r.l.Errorf(ctx, "%s get: %v", r.dsn("UpdateColors"), err)
		return model.Subscription{}, repo.ErrFailedToUpdate
	}
	if !found {
		return model.Subscription{}, repo.ErrNotFound
	}

	now := r.now().UTC().Truncate(time.Second)
	const query = `UPDATE gh_hooks
		SET repo_color = ?, name_color = ?, branch_color = ?, tag_color = ?, hash_color = ?, url_color = ?, updated_at = ?
		WHERE channel = ? AND repo_name = ?`
	c := opt.Colors
	if _, err := tx.ExecContext(ctx, query, c.Repo, c.Name, c.Branch, c.Tag, c.Hash, c.URL, now.Unix(), opt.Channel, opt.Repo); err != nil {
		r.l.Errorf(ctx, "%s update: %v", r.dsn("UpdateColors"), err)
		return model.Subscription{}, repo.ErrFailedToUpdate
	}
	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("UpdateColors"), err)
		return model.Subscription{}, repo.ErrFailedToUpdate
	}

	existing.Colors = &c
	existing.UpdatedAt = now
	return existing, nil
}

// ListSubscriptions returns subscriptions matching the filters, ordered by
// channel then repository.
func (r *implRepository) ListSubscriptions(ctx context.Context, opt repo.ListSubscriptionsOptions) ([]model.Subscription, error) {
	var (
		conds []string
		args  []any
	)
	if opt.Channel != "" {
		conds = append(conds, "channel = ?")
		args = append(args, opt.Channel)
	}
	if opt.Repo != "" {
		conds = append(conds, "repo_name = ?")
		args = append(args, opt.Repo)
	}
	if opt.EnabledOnly {
		conds = append(conds, "enabled = ?")
		args = append(args, true)
	}

	query := `SELECT ` + subscriptionColumns + ` FROM gh_hooks`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY channel, repo_name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListSubscriptions"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var subs []model.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListSubscriptions"), err)
			return nil, repo.ErrFailedToList
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListSubscriptions"), err)
		return nil, repo.ErrFailedToList
	}
	return subs, nil
}
