package postgres

import (
	"context"

	"vivaleve/internal/domain"
)

// AddWeightEntry inserts a new weight entry.
func (d *DB) AddWeightEntry(ctx context.Context, e domain.WeightEntry) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO weight_entries(id, user_id, weight, recorded_at, notes) VALUES($1, $2, $3, $4, $5);",
		e.ID, e.UserID, e.Weight, e.Date.UTC(), e.Notes,
	)
	return err
}

// UpdateWeightEntry changes weight and notes of the user's entry.
func (d *DB) UpdateWeightEntry(ctx context.Context, userID int64, id string, weight float64, notes string) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE weight_entries SET weight=$1, notes=$2 WHERE id=$3 AND user_id=$4;",
		weight, notes, id, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteWeightEntry removes the user's entry with the given id.
func (d *DB) DeleteWeightEntry(ctx context.Context, userID int64, id string) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM weight_entries WHERE id=$1 AND user_id=$2;", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListWeightEntries returns the user's entries in insertion order.
func (d *DB) ListWeightEntries(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, weight, recorded_at, notes FROM weight_entries WHERE user_id=$1 ORDER BY seq;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.WeightEntry{}
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Weight, &e.Date, &e.Notes); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListAchievements returns the user's achievements in unlock order.
func (d *DB) ListAchievements(ctx context.Context, userID int64) ([]domain.Achievement, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, type, title, description, points, unlocked_at FROM achievements WHERE user_id=$1 ORDER BY seq;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Achievement{}
	for rows.Next() {
		var a domain.Achievement
		var typ string
		if err := rows.Scan(&a.ID, &a.UserID, &typ, &a.Title, &a.Description, &a.Points, &a.UnlockedAt); err != nil {
			return nil, err
		}
		a.Type = domain.AchievementType(typ)
		out = append(out, a)
	}
	return out, rows.Err()
}

// AddAchievements stores items in one transaction. The (user_id, type)
// constraint turns duplicates into no-ops.
func (d *DB) AddAchievements(ctx context.Context, userID int64, items []domain.Achievement) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, a := range items {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO achievements(id, user_id, type, title, description, points, unlocked_at) VALUES($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (user_id, type) DO NOTHING;",
			a.ID, userID, string(a.Type), a.Title, a.Description, a.Points, a.UnlockedAt.UTC(),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
