package pagination_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/live-gallery/pkg/pagination"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultLimit: 10, MaxLimit: 100}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name         string
		total        int
		page         int
		limit        int
		wantPages    int
		wantNext     bool
		wantPrevious bool
	}{
		{"empty result set", 0, 1, 10, 0, false, false},
		{"single partial page", 5, 1, 10, 1, false, false},
		{"exact page boundary", 20, 1, 10, 2, true, false},
		{"remainder adds a page", 21, 1, 10, 3, true, false},
		{"middle page", 30, 2, 10, 3, true, true},
		{"last page", 30, 3, 10, 3, false, true},
		{"page beyond range", 10, 5, 10, 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(tt.total, tt.page, tt.limit)

			if meta.TotalPages != tt.wantPages {
				t.Errorf("Expected %d total pages, got %d", tt.wantPages, meta.TotalPages)
			}
			if meta.HasNextPage != tt.wantNext {
				t.Errorf("Expected hasNextPage %v, got %v", tt.wantNext, meta.HasNextPage)
			}
			if meta.HasPreviousPage != tt.wantPrevious {
				t.Errorf("Expected hasPreviousPage %v, got %v", tt.wantPrevious, meta.HasPreviousPage)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"zero values use defaults", 0, 0, 1, 10},
		{"negative page clamps to first", -3, 25, 1, 25},
		{"limit above max clamps", 1, 500, 1, 100},
		{"valid values unchanged", 4, 50, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tt.page, Limit: tt.limit}
			req.Normalize(testConfig())

			if req.Page != tt.wantPage {
				t.Errorf("Expected page %d, got %d", tt.wantPage, req.Page)
			}
			if req.Limit != tt.wantLimit {
				t.Errorf("Expected limit %d, got %d", tt.wantLimit, req.Limit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, Limit: 10}

	if req.Offset() != 20 {
		t.Errorf("Expected offset 20, got %d", req.Offset())
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("limit", "25")
	values.Set("search", "sunset")

	req := pagination.PageRequestFromQuery(values, testConfig())

	if req.Page != 2 {
		t.Errorf("Expected page 2, got %d", req.Page)
	}
	if req.Limit != 25 {
		t.Errorf("Expected limit 25, got %d", req.Limit)
	}
	if req.Search == nil || *req.Search != "sunset" {
		t.Errorf("Expected search %q, got %v", "sunset", req.Search)
	}
}

func TestPageRequestFromQuery_Empty(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{}, testConfig())

	if req.Page != 1 {
		t.Errorf("Expected page 1, got %d", req.Page)
	}
	if req.Limit != 10 {
		t.Errorf("Expected limit 10, got %d", req.Limit)
	}
	if req.Search != nil {
		t.Errorf("Expected nil search, got %q", *req.Search)
	}
}

func TestNewPageResult_NilData(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, 1, 10)

	if result.Data == nil {
		t.Error("Expected empty slice, got nil")
	}
	if len(result.Data) != 0 {
		t.Errorf("Expected no items, got %d", len(result.Data))
	}
	if result.Pagination.TotalPages != 0 {
		t.Errorf("Expected 0 total pages, got %d", result.Pagination.TotalPages)
	}
}
