// Package objects implements the image-backed gallery entries: listing
// with search, authenticated creation with image upload, and owner-only
// deletion.
package objects

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/live-gallery/pkg/handlers"
)

const (
	titleMaxLength       = 100
	descriptionMaxLength = 500
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Owner identifies the account that created an object.
type Owner struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Object is a gallery entry backed by a stored image.
type Object struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedBy   Owner     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DeleteResult confirms a deletion to the caller.
type DeleteResult struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

// CreateCommand carries the fields and image payload for creating an
// object.
type CreateCommand struct {
	Title       string
	Description *string
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// Validate checks the command against field and upload constraints.
// Nothing is uploaded or persisted when validation fails.
func (c *CreateCommand) Validate(maxUploadSize int64) *handlers.ValidationError {
	c.Title = strings.TrimSpace(c.Title)

	errs := handlers.NewValidationError()

	switch {
	case c.Title == "":
		errs.Add("title", "Title is required")
	case len(c.Title) > titleMaxLength:
		errs.Add("title", "Title must not exceed 100 characters")
	}

	if c.Description != nil && len(*c.Description) > descriptionMaxLength {
		errs.Add("description", "Description must not exceed 500 characters")
	}

	switch {
	case len(c.Data) == 0:
		errs.Add("image", "Image file is required")
	case !allowedImageTypes[c.ContentType]:
		errs.Add("image", "Invalid file type. Only JPG, PNG, and GIF are allowed")
	case c.Size > maxUploadSize:
		errs.Add("image", "File size must not exceed 5MB")
	}

	if errs.Empty() {
		return nil
	}
	return errs
}
