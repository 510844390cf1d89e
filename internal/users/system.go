package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/live-gallery/internal/middleware"
)

// System defines the account operations. Implementations handle
// persistence, credential hashing, and token issuance.
type System interface {
	Handler(guard *middleware.Guard) *Handler
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	Profile(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error)
}
