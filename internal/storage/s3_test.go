package storage_test

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/JaimeStill/live-gallery/internal/config"
	"github.com/JaimeStill/live-gallery/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func testSystem(t *testing.T) *storage.S3System {
	t.Helper()

	cfg := &config.StorageConfig{
		Bucket:    "gallery",
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "test",
		SecretKey: "test",
		KeyPrefix: "objects",
	}

	sys, err := storage.NewS3(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewS3() failed: %v", err)
	}

	return sys
}

func TestKey(t *testing.T) {
	sys := testSystem(t)

	key := sys.Key("My Photo.JPG")

	if !strings.HasPrefix(key, "objects/") {
		t.Errorf("Expected configured prefix, got %q", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("Expected lowercased extension, got %q", key)
	}
}

func TestKey_Unique(t *testing.T) {
	sys := testSystem(t)

	first := sys.Key("photo.jpg")
	second := sys.Key("photo.jpg")

	if first == second {
		t.Errorf("Expected distinct keys, both were %q", first)
	}
}

func TestKeyFromURL(t *testing.T) {
	sys := testSystem(t)

	key, err := sys.KeyFromURL("http://localhost:9000/gallery/objects/123-abcd.jpg")
	if err != nil {
		t.Fatalf("KeyFromURL() failed: %v", err)
	}

	if key != "objects/123-abcd.jpg" {
		t.Errorf("Expected %q, got %q", "objects/123-abcd.jpg", key)
	}
}

func TestKeyFromURL_Foreign(t *testing.T) {
	sys := testSystem(t)

	tests := []struct {
		name string
		url  string
	}{
		{"different host", "http://elsewhere.com/gallery/objects/123.jpg"},
		{"different bucket", "http://localhost:9000/other/objects/123.jpg"},
		{"empty key", "http://localhost:9000/gallery/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sys.KeyFromURL(tt.url)
			if !errors.Is(err, storage.ErrInvalidURL) {
				t.Errorf("Expected ErrInvalidURL, got %v", err)
			}
		})
	}
}
