package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// GetByEmail looks up a dashboard account. A missing account surfaces
// as ErrInvalidCredentials so the login path cannot leak which emails
// exist.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
select id, email, name, role, password_hash, created_at
from users
where email = $1;
`
	var u User
	err := r.db.QueryRowContext(ctx, q, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
