package memory

import (
	"context"
	"strings"

	"github.com/campusconnect/server/internal/domain/accounts"
)

type accountRepository struct {
	store *Store
}

var _ accounts.Repository = (*accountRepository)(nil)

func (r *accountRepository) GetByID(_ context.Context, id int) (*accounts.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	return &account, nil
}

func (r *accountRepository) GetByUsername(_ context.Context, username string) (*accounts.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range sortedKeys(r.store.accounts) {
		account := r.store.accounts[id]
		if strings.EqualFold(account.Username, username) {
			return &account, nil
		}
	}
	return nil, accounts.ErrNotFound
}

func (r *accountRepository) GetByEmail(_ context.Context, email string) (*accounts.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range sortedKeys(r.store.accounts) {
		account := r.store.accounts[id]
		if strings.EqualFold(account.Email, email) {
			return &account, nil
		}
	}
	return nil, accounts.ErrNotFound
}

func (r *accountRepository) Create(_ context.Context, params accounts.CreateParams) (*accounts.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account := accounts.Account{
		ID:           r.store.nextAccountID,
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
		Name:         params.Name,
		Email:        params.Email,
		IsAdmin:      params.IsAdmin,
	}
	r.store.nextAccountID++
	r.store.accounts[account.ID] = account
	return &account, nil
}

func (r *accountRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.accounts), nil
}
