package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type sqliteRepo struct{ db *sql.DB }

// NewSQLiteRepository returns the persistent user backend.
func NewSQLiteRepository(db *sql.DB) Repository { return &sqliteRepo{db: db} }

const userColumns = `id, username, password_hash, full_name, role, is_active, created_at, updated_at`

func (r *sqliteRepo) CreateUser(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?,?,?,?,?,?,?,?)`,
		u.ID.String(), u.Username, u.PasswordHash, u.FullName,
		u.Role, u.IsActive, u.CreatedAt, u.UpdatedAt)
	return err
}

func scanUser(scan func(...interface{}) error) (*User, error) {
	u := &User{}
	var id string
	err := scan(&id, &u.Username, &u.PasswordHash, &u.FullName,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.ID, err = uuid.Parse(id)
	return u, err
}

func (r *sqliteRepo) GetUserByID(ctx context.Context, id string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=?`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (r *sqliteRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=?`, username).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (r *sqliteRepo) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *sqliteRepo) UpdateUser(ctx context.Context, u *User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET username=?, password_hash=?, full_name=?, role=?, is_active=?, updated_at=?
		WHERE id=?`,
		u.Username, u.PasswordHash, u.FullName, u.Role, u.IsActive, u.UpdatedAt, u.ID.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
