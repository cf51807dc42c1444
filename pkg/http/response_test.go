package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "hotelms/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found",
			err:        apperrors.NotFound("Booking"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"Booking not found"}`,
		},
		{
			name:       "forbidden",
			err:        apperrors.Forbidden("Access denied: Admin only"),
			wantStatus: http.StatusForbidden,
			wantBody:   `{"message":"Access denied: Admin only"}`,
		},
		{
			name:       "plain error never leaks",
			err:        errors.New("mongo: socket closed"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := WriteError(w, tt.err); err != nil {
				t.Fatalf("unexpected write error: %v", err)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.wantBody {
				t.Errorf("expected body %s, got %s", tt.wantBody, got)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %q", ct)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Status string `json:"status"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    string
	}{
		{name: "valid", body: `{"status":"cleaning"}`, want: "cleaning"},
		{name: "empty body", body: ``, want: ""},
		{name: "malformed", body: `{"status":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/rooms/status/1", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(req, &p)
			if tt.wantErr {
				appErr := apperrors.AsAppError(err)
				if err == nil || appErr.StatusCode() != http.StatusBadRequest {
					t.Fatalf("expected 400 error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Status != tt.want {
				t.Errorf("expected %q, got %q", tt.want, p.Status)
			}
		})
	}
}
