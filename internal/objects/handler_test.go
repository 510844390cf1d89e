package objects_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/live-gallery/internal/auth"
	"github.com/JaimeStill/live-gallery/internal/config"
	"github.com/JaimeStill/live-gallery/internal/middleware"
	"github.com/JaimeStill/live-gallery/internal/objects"
	"github.com/JaimeStill/live-gallery/internal/routes"
	"github.com/JaimeStill/live-gallery/pkg/pagination"
)

type stubSystem struct {
	object    *objects.Object
	listErr   error
	createErr error
	deleteErr error
	creates   int
	deleted   []uuid.UUID
}

func (s *stubSystem) Handler(guard *middleware.Guard, maxUploadSize int64) *objects.Handler {
	return objects.NewHandler(s, guard, testLogger(), pagination.Config{DefaultLimit: 10, MaxLimit: 100}, maxUploadSize)
}

func (s *stubSystem) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[objects.Object], error) {
	if s.listErr != nil {
		return nil, s.listErr
	}

	var data []objects.Object
	if s.object != nil {
		data = []objects.Object{*s.object}
	}

	result := pagination.NewPageResult(data, len(data), page.Page, page.Limit)
	return &result, nil
}

func (s *stubSystem) Find(ctx context.Context, id uuid.UUID) (*objects.Object, error) {
	if s.object == nil || s.object.ID != id {
		return nil, objects.ErrNotFound
	}
	return s.object, nil
}

func (s *stubSystem) Create(ctx context.Context, owner uuid.UUID, cmd objects.CreateCommand) (*objects.Object, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}

	s.creates++

	obj := &objects.Object{
		ID:        uuid.New(),
		Title:     cmd.Title,
		ImageURL:  "http://storage.local/gallery/objects/test.jpg",
		CreatedBy: objects.Owner{ID: owner, Username: "alice"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return obj, nil
}

func (s *stubSystem) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}

	s.deleted = append(s.deleted, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func testHandler(t *testing.T, sys *stubSystem) (http.Handler, string) {
	t.Helper()

	cfg := &config.AuthConfig{Secret: "test-secret", TokenTTL: "1h"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Failed to finalize auth config: %v", err)
	}

	tokens := auth.NewTokens(cfg)
	guard := middleware.NewGuard(tokens, testLogger())

	token, err := tokens.Generate(uuid.NewString(), "alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	router := routes.New(testLogger())
	router.RegisterGroup(sys.Handler(guard, testMaxUpload).Routes())

	return router.Build(), token
}

func multipartBody(t *testing.T, title string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	form.WriteField("title", title)

	if withImage {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="test.jpg"`)
		header.Set("Content-Type", "image/jpeg")

		part, err := form.CreatePart(header)
		if err != nil {
			t.Fatalf("Failed to create form part: %v", err)
		}
		part.Write([]byte("fake image bytes"))
	}

	form.Close()
	return &buf, form.FormDataContentType()
}

func TestList(t *testing.T) {
	handler, _ := testHandler(t, &stubSystem{})

	req := httptest.NewRequest("GET", "/objects?page=1&limit=10", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var body struct {
		Data struct {
			Data       []objects.Object `json:"data"`
			Pagination pagination.Meta  `json:"pagination"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}

	if body.Data.Data == nil {
		t.Error("Expected empty data array, got null")
	}
	if body.Data.Pagination.TotalPages != 0 {
		t.Errorf("Expected 0 total pages, got %d", body.Data.Pagination.TotalPages)
	}
}

func TestFind_NotFound(t *testing.T) {
	handler, _ := testHandler(t, &stubSystem{})

	req := httptest.NewRequest("GET", "/objects/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestFind_InvalidId(t *testing.T) {
	handler, _ := testHandler(t, &stubSystem{})

	req := httptest.NewRequest("GET", "/objects/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestCreate_RequiresAuth(t *testing.T) {
	handler, _ := testHandler(t, &stubSystem{})

	body, contentType := multipartBody(t, "Sunset", true)
	req := httptest.NewRequest("POST", "/objects", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestCreate(t *testing.T) {
	handler, token := testHandler(t, &stubSystem{})

	body, contentType := multipartBody(t, "Sunset", true)
	req := httptest.NewRequest("POST", "/objects", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var envelope struct {
		Message string         `json:"message"`
		Data    objects.Object `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}

	if envelope.Data.Title != "Sunset" {
		t.Errorf("Expected title %q, got %q", "Sunset", envelope.Data.Title)
	}
}

func TestCreate_MissingImage(t *testing.T) {
	handler, token := testHandler(t, &stubSystem{})

	body, contentType := multipartBody(t, "Sunset", false)
	req := httptest.NewRequest("POST", "/objects", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var envelope struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}

	if len(envelope.Errors["image"]) == 0 {
		t.Errorf("Expected image field error, got %v", envelope.Errors)
	}
}

func TestDelete_Forbidden(t *testing.T) {
	sys := &stubSystem{deleteErr: objects.ErrForbidden}
	handler, token := testHandler(t, sys)

	req := httptest.NewRequest("DELETE", "/objects/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected status %d, got %d", http.StatusForbidden, rec.Code)
	}

	var envelope struct {
		Message string `json:"message"`
		Errors  string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}

	if envelope.Errors != "ForbiddenError" {
		t.Errorf("Expected ForbiddenError tag, got %q", envelope.Errors)
	}
	if envelope.Message != "You can only delete your own objects" {
		t.Errorf("Unexpected message %q", envelope.Message)
	}
}

func TestDelete(t *testing.T) {
	sys := &stubSystem{}
	handler, token := testHandler(t, sys)

	id := uuid.New()
	req := httptest.NewRequest("DELETE", "/objects/"+id.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if len(sys.deleted) != 1 || sys.deleted[0] != id {
		t.Errorf("Expected delete for %s, got %v", id, sys.deleted)
	}

	var envelope struct {
		Data objects.DeleteResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}

	if envelope.Data.ID != id {
		t.Errorf("Expected confirmation id %s, got %s", id, envelope.Data.ID)
	}
	if envelope.Data.Message != "Object deleted successfully" {
		t.Errorf("Unexpected confirmation message %q", envelope.Data.Message)
	}
}

func TestCreate_BodyTooLarge(t *testing.T) {
	cfg := &config.AuthConfig{Secret: "test-secret", TokenTTL: "1h"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Failed to finalize auth config: %v", err)
	}

	tokens := auth.NewTokens(cfg)
	guard := middleware.NewGuard(tokens, testLogger())

	token, err := tokens.Generate(uuid.NewString(), "alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	sys := &stubSystem{}
	router := routes.New(testLogger())
	router.RegisterGroup(sys.Handler(guard, 1024).Routes())
	handler := router.Build()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="big.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := form.CreatePart(header)
	if err != nil {
		t.Fatalf("Failed to create form part: %v", err)
	}
	part.Write(bytes.Repeat([]byte("x"), 256*1024))
	form.Close()

	req := httptest.NewRequest("POST", "/objects", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if sys.creates != 0 {
		t.Errorf("Expected no create for an oversized body, got %d", sys.creates)
	}
}
