package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/pastel/internal/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, username, name, bio, avatar_url, password_hash, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.Name, &u.Bio, &u.AvatarURL,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, username, name, bio, avatar_url, password_hash)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.Email, u.Username, u.Name, u.Bio, u.AvatarURL, u.PasswordHash)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	return r.GetUserByID(ctx, id)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, u domain.User) (domain.User, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET username = ?, name = ?, bio = ?, avatar_url = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		u.Username, u.Name, u.Bio, u.AvatarURL, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.User{}, err
	} else if n == 0 {
		return domain.User{}, mapNotFound(sql.ErrNoRows)
	}
	return r.GetUserByID(ctx, u.ID)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
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
