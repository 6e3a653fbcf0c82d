package sqlite

import (
	"context"
	"database/sql"
)

type followsRepo struct {
	db dbtx
}

func (r *followsRepo) CreateFollow(ctx context.Context, followerID, followeeID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followee_id) VALUES (?, ?)`,
		followerID, followeeID)
	return mapConstraint(err)
}

func (r *followsRepo) DeleteFollow(ctx context.Context, followerID, followeeID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *followsRepo) ListFollowing(ctx context.Context, followerID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT followee_id FROM follows WHERE follower_id = ?`, followerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
