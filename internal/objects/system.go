package objects

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/live-gallery/internal/middleware"
	"github.com/JaimeStill/live-gallery/pkg/pagination"
)

// System defines the gallery object operations. Implementations handle
// blob storage, database persistence, and event notification.
type System interface {
	Handler(guard *middleware.Guard, maxUploadSize int64) *Handler
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Object], error)
	Find(ctx context.Context, id uuid.UUID) (*Object, error)
	Create(ctx context.Context, owner uuid.UUID, cmd CreateCommand) (*Object, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
}
