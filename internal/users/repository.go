package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/live-gallery/internal/auth"
	"github.com/JaimeStill/live-gallery/internal/middleware"
	"github.com/JaimeStill/live-gallery/pkg/query"
	"github.com/JaimeStill/live-gallery/pkg/repository"
)

type repo struct {
	db     *sql.DB
	tokens *auth.Tokens
	logger *slog.Logger
}

// New creates an account repository backed by the database and token
// signer.
func New(db *sql.DB, tokens *auth.Tokens, logger *slog.Logger) System {
	return &repo{
		db:     db,
		tokens: tokens,
		logger: logger.With("system", "users"),
	}
}

func (r *repo) Handler(guard *middleware.Guard) *Handler {
	return NewHandler(r, guard, r.logger)
}

// Register creates the account with a single insert. A username race
// surfaces as a unique constraint violation rather than a pre-check.
func (r *repo) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	q := `INSERT INTO users(id, username, password_hash)
		VALUES($1, $2, $3)
		RETURNING id, username, created_at, updated_at`

	user, err := repository.QueryOne(ctx, r.db, q, []any{uuid.New(), req.Username, hash}, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateUsername)
	}

	r.logger.Info("user registered", "id", user.ID, "username", user.Username)
	return r.authenticate(user)
}

func (r *repo) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	q := `SELECT id, username, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1`

	cred, err := repository.QueryOne(ctx, r.db, q, []any{req.Username}, scanCredential)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("query credentials: %w", err)
	}

	if !auth.VerifyPassword(cred.Hash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	r.logger.Info("user logged in", "id", cred.User.ID, "username", cred.User.Username)
	return r.authenticate(cred.User)
}

func (r *repo) Profile(ctx context.Context, id uuid.UUID) (*User, error) {
	q, args := query.
		NewBuilder(projection, query.SortField{}).
		BuildSingle("Id", id)

	user, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateUsername)
	}

	return &user, nil
}

func (r *repo) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error) {
	q := `UPDATE users SET username = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, username, created_at, updated_at`

	user, err := repository.QueryOne(ctx, r.db, q, []any{req.Username, id}, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateUsername)
	}

	r.logger.Info("profile updated", "id", user.ID, "username", user.Username)
	return &user, nil
}

func (r *repo) authenticate(user User) (*AuthResult, error) {
	token, err := r.tokens.Generate(user.ID.String(), user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{
		User:        user,
		AccessToken: token,
	}, nil
}
