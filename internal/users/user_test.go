package users_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/JaimeStill/live-gallery/internal/users"
)

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		wantField string
	}{
		{"valid request", "alice", "hunter22", ""},
		{"missing username", "", "hunter22", "username"},
		{"username too short", "ab", "hunter22", "username"},
		{"username too long", strings.Repeat("a", 31), "hunter22", "username"},
		{"whitespace username", "   ", "hunter22", "username"},
		{"missing password", "alice", "", "password"},
		{"password too short", "alice", "short", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := users.RegisterRequest{Username: tt.username, Password: tt.password}
			errs := req.Validate()

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

func TestRegisterRequest_Validate_BothFieldsFail(t *testing.T) {
	req := users.RegisterRequest{}
	errs := req.Validate()

	if errs == nil {
		t.Fatal("Expected validation errors, got none")
	}
	if len(errs.Fields) != 2 {
		t.Errorf("Expected errors on 2 fields, got %d", len(errs.Fields))
	}
}

func TestRegisterRequest_Validate_TrimsUsername(t *testing.T) {
	req := users.RegisterRequest{Username: "  alice  ", Password: "hunter22"}

	if errs := req.Validate(); errs != nil {
		t.Fatalf("Expected no errors, got %v", errs.Fields)
	}
	if req.Username != "alice" {
		t.Errorf("Expected trimmed username, got %q", req.Username)
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	req := users.LoginRequest{}
	errs := req.Validate()

	if errs == nil {
		t.Fatal("Expected validation errors, got none")
	}
	if len(errs.Fields["username"]) == 0 || len(errs.Fields["password"]) == 0 {
		t.Errorf("Expected errors on both fields, got %v", errs.Fields)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", users.ErrNotFound, http.StatusNotFound},
		{"duplicate username", users.ErrDuplicateUsername, http.StatusConflict},
		{"invalid credentials", users.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown error", http.ErrBodyNotAllowed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := users.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, got)
			}
		})
	}
}
