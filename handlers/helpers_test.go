package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestPagination(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/vendors", 1, 20, 0},
		{"explicit page and limit", "/vendors?page=3&limit=10", 3, 10, 20},
		{"limit capped at 100", "/vendors?limit=500", 1, 20, 0},
		{"limit at cap", "/vendors?limit=100", 1, 100, 0},
		{"negative page ignored", "/vendors?page=-2", 1, 20, 0},
		{"garbage values ignored", "/vendors?page=abc&limit=xyz", 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			page, limit, offset := pagination(r)
			if page != tt.wantPage || limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("pagination() = (%d, %d, %d), want (%d, %d, %d)",
					page, limit, offset, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	t.Run("prefers first forwarded address", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		if got := clientIP(r); got != "203.0.113.7" {
			t.Errorf("clientIP() = %q, want %q", got, "203.0.113.7")
		}
	})

	t.Run("falls back to remote address host", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.4:51234"
		if got := clientIP(r); got != "192.0.2.4" {
			t.Errorf("clientIP() = %q, want %q", got, "192.0.2.4")
		}
	})

	t.Run("remote address without port returned as is", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.4"
		if got := clientIP(r); got != "192.0.2.4" {
			t.Errorf("clientIP() = %q, want %q", got, "192.0.2.4")
		}
	})
}

func TestParseIDParam(t *testing.T) {
	t.Run("valid uuid", func(t *testing.T) {
		w := httptest.NewRecorder()
		id, ok := parseIDParam(w, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		if !ok {
			t.Fatal("expected ok for valid uuid")
		}
		if id.String() != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
			t.Errorf("unexpected id %s", id)
		}
	})

	t.Run("invalid uuid writes 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, ok := parseIDParam(w, "not-a-uuid")
		if ok {
			t.Fatal("expected failure for invalid uuid")
		}
		if w.Code != 400 {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
