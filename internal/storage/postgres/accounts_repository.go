package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusconnect/server/internal/domain/accounts"
	"github.com/jackc/pgx/v5"
)

var _ accounts.Repository = (*AccountRepository)(nil)

const accountColumns = `id, username, password_hash, name, email, is_admin`

func (r *AccountRepository) GetByID(ctx context.Context, id int) (*accounts.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*accounts.Account, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+accountColumns+`
  FROM accounts
 WHERE lower(username) = lower($1)
 ORDER BY id
 LIMIT 1`, username)
	return scanAccount(row)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+accountColumns+`
  FROM accounts
 WHERE lower(email) = lower($1)
 ORDER BY id
 LIMIT 1`, email)
	return scanAccount(row)
}

func (r *AccountRepository) Create(ctx context.Context, params accounts.CreateParams) (*accounts.Account, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO accounts (username, password_hash, name, email, is_admin)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+accountColumns,
		params.Username,
		params.PasswordHash,
		params.Name,
		params.Email,
		params.IsAdmin,
	)

	account, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

func scanAccount(row pgx.Row) (*accounts.Account, error) {
	var account accounts.Account
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.Name,
		&account.Email,
		&account.IsAdmin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, accounts.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &account, nil
}
