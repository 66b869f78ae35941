package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt password hashing.
const BcryptCost = 12

// Service handles account registration and credential verification.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "accounts").Logger(),
	}
}

type RegisterParams struct {
	Username string
	Password string
	Name     string
	Email    string
	IsAdmin  bool
}

// Register creates a new account after checking the two uniqueness
// invariants. Passwords are stored as bcrypt hashes, never in the clear.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Account, error) {
	if _, err := s.repo.GetByUsername(ctx, params.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.repo.GetByEmail(ctx, params.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.repo.Create(ctx, CreateParams{
		Username:     params.Username,
		PasswordHash: string(hash),
		Name:         params.Name,
		Email:        params.Email,
		IsAdmin:      params.IsAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info().Int("account_id", account.ID).Str("username", account.Username).Msg("account registered")
	return account, nil
}

// Authenticate verifies a username/password pair. The username lookup is
// case-insensitive; failures are collapsed into ErrInvalidCredentials so the
// caller cannot distinguish an unknown user from a wrong password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}
