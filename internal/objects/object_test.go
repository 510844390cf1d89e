package objects_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/JaimeStill/live-gallery/internal/objects"
)

const testMaxUpload = 5 * 1024 * 1024

func validCommand() objects.CreateCommand {
	return objects.CreateCommand{
		Title:       "Sunset",
		Filename:    "sunset.jpg",
		ContentType: "image/jpeg",
		Size:        1024,
		Data:        []byte("fake image bytes"),
	}
}

func TestCreateCommand_Validate(t *testing.T) {
	longDescription := strings.Repeat("d", 501)

	tests := []struct {
		name      string
		mutate    func(*objects.CreateCommand)
		wantField string
	}{
		{"valid command", func(c *objects.CreateCommand) {}, ""},
		{"missing title", func(c *objects.CreateCommand) { c.Title = "" }, "title"},
		{"whitespace title", func(c *objects.CreateCommand) { c.Title = "   " }, "title"},
		{"title too long", func(c *objects.CreateCommand) { c.Title = strings.Repeat("t", 101) }, "title"},
		{"description too long", func(c *objects.CreateCommand) { c.Description = &longDescription }, "description"},
		{"missing file", func(c *objects.CreateCommand) { c.Data = nil }, "image"},
		{"disallowed content type", func(c *objects.CreateCommand) { c.ContentType = "image/webp" }, "image"},
		{"text content type", func(c *objects.CreateCommand) { c.ContentType = "text/plain" }, "image"},
		{"file too large", func(c *objects.CreateCommand) { c.Size = testMaxUpload + 1 }, "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCommand()
			tt.mutate(&cmd)

			errs := cmd.Validate(testMaxUpload)

			if tt.wantField == "" {
				if errs != nil {
					t.Errorf("Expected no errors, got %v", errs.Fields)
				}
				return
			}

			if errs == nil {
				t.Fatal("Expected validation errors, got none")
			}
			if len(errs.Fields[tt.wantField]) == 0 {
				t.Errorf("Expected error on field %q, got %v", tt.wantField, errs.Fields)
			}
		})
	}
}

func TestCreateCommand_Validate_AllowedTypes(t *testing.T) {
	for _, contentType := range []string{"image/jpeg", "image/png", "image/gif"} {
		t.Run(contentType, func(t *testing.T) {
			cmd := validCommand()
			cmd.ContentType = contentType

			if errs := cmd.Validate(testMaxUpload); errs != nil {
				t.Errorf("Expected %s to be allowed, got %v", contentType, errs.Fields)
			}
		})
	}
}

func TestCreateCommand_Validate_SizeMessage(t *testing.T) {
	cmd := validCommand()
	cmd.Size = testMaxUpload + 1

	errs := cmd.Validate(testMaxUpload)
	if errs == nil {
		t.Fatal("Expected validation errors, got none")
	}

	expected := "File size must not exceed 5MB"
	if errs.Fields["image"][0] != expected {
		t.Errorf("Expected message %q, got %q", expected, errs.Fields["image"][0])
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", objects.ErrNotFound, http.StatusNotFound},
		{"forbidden", objects.ErrForbidden, http.StatusForbidden},
		{"duplicate", objects.ErrDuplicate, http.StatusConflict},
		{"unknown error", http.ErrBodyNotAllowed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := objects.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, got)
			}
		})
	}
}
