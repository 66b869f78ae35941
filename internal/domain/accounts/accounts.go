package accounts

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Account is a registered user. PasswordHash is never serialized; every
// handler response carries the account with the hash stripped by the json tag.
type Account struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"isAdmin"`
}

type CreateParams struct {
	Username     string
	PasswordHash string
	Name         string
	Email        string
	IsAdmin      bool
}

// Repository is the accounts data-access contract. Lookups on absent records
// return ErrNotFound. Username and email matching is case-insensitive; when
// duplicates ever exist the lowest id wins. The repository itself does not
// enforce uniqueness; the service checks before creating.
type Repository interface {
	GetByID(ctx context.Context, id int) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, params CreateParams) (*Account, error)
	Count(ctx context.Context) (int, error)
}
