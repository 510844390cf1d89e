package objects

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/live-gallery/internal/middleware"
	"github.com/JaimeStill/live-gallery/internal/storage"
	"github.com/JaimeStill/live-gallery/pkg/pagination"
	"github.com/JaimeStill/live-gallery/pkg/query"
	"github.com/JaimeStill/live-gallery/pkg/repository"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	notifier   Notifier
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an object repository with database, blob storage, and
// event notification integration.
func New(db *sql.DB, store storage.System, notifier Notifier, logger *slog.Logger, pagination pagination.Config) System {
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &repo{
		db:         db,
		storage:    store,
		notifier:   notifier,
		logger:     logger.With("system", "objects"),
		pagination: pagination,
	}
}

func (r *repo) Handler(guard *middleware.Guard, maxUploadSize int64) *Handler {
	return NewHandler(r, guard, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Object], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		Join(ownerJoin).
		WhereSearch(page.Search, "Title", "Description")

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count objects: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.Limit)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanObject)
	if err != nil {
		return nil, fmt.Errorf("query objects: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.Limit)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Object, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		Join(ownerJoin).
		BuildSingle("Id", id)

	obj, err := repository.QueryOne(ctx, r.db, q, args, scanObject)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &obj, nil
}

// Create uploads the image first, then persists the record. If the
// insert fails the uploaded blob is removed so storage never holds
// orphans from failed creates.
func (r *repo) Create(ctx context.Context, owner uuid.UUID, cmd CreateCommand) (*Object, error) {
	key := r.storage.Key(cmd.Filename)

	url, err := r.storage.Store(ctx, key, cmd.Data, cmd.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	q := `INSERT INTO objects(id, title, description, image_url, created_by)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id`

	var id uuid.UUID
	if err := r.db.QueryRowContext(ctx, q, uuid.New(), cmd.Title, cmd.Description, url, owner).Scan(&id); err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Error("image cleanup failed after insert error", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	obj, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("object created", "id", obj.ID, "title", obj.Title, "owner", owner)
	r.notifier.ObjectCreated(*obj)

	return obj, nil
}

// Delete removes an object its owner created. The stored image is
// removed best effort: a storage failure is logged and the record is
// deleted regardless.
func (r *repo) Delete(ctx context.Context, owner, id uuid.UUID) error {
	obj, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	if obj.CreatedBy.ID != owner {
		return ErrForbidden
	}

	if key, err := r.storage.KeyFromURL(obj.ImageURL); err != nil {
		r.logger.Warn("unrecognized image url, skipping blob delete", "id", id, "url", obj.ImageURL)
	} else if err := r.storage.Delete(ctx, key); err != nil {
		r.logger.Error("image delete failed", "id", id, "key", key, "error", err)
	}

	err = repository.ExecExpectOne(ctx, r.db, `DELETE FROM objects WHERE id = $1`, id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("object deleted", "id", id, "owner", owner)
	r.notifier.ObjectDeleted(id)

	return nil
}
