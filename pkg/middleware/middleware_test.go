package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/logger"
	"hotelms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockAuthenticator struct {
	authenticateFunc func(ctx context.Context, token string) (*model.User, error)
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*model.User, error) {
	return m.authenticateFunc(ctx, token)
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
	return body.Message
}

func TestGuard_Auth(t *testing.T) {
	staff := &model.User{Name: "Ravi", Role: model.RoleStaff}
	auth := &mockAuthenticator{
		authenticateFunc: func(ctx context.Context, token string) (*model.User, error) {
			switch token {
			case "good":
				return staff, nil
			case "orphan":
				return nil, apperrors.Unauthorized("User not found")
			default:
				return nil, apperrors.Unauthorized("Token invalid")
			}
		},
	}
	guard := NewGuard(auth, logger.Discard())

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
		wantCalled  bool
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantMessage: MsgNoToken},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantMessage: MsgNoToken},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantMessage: MsgNoToken},
		{name: "bad token", header: "Bearer junk", wantStatus: http.StatusUnauthorized, wantMessage: "Token invalid"},
		{name: "deleted user", header: "Bearer orphan", wantStatus: http.StatusUnauthorized, wantMessage: "User not found"},
		{name: "valid", header: "Bearer good", wantStatus: http.StatusOK, wantCalled: true},
		{name: "lowercase scheme", header: "bearer good", wantStatus: http.StatusOK, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := guard.Auth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				called = true
				user, ok := UserFromContext(r.Context())
				if !ok || user != staff {
					t.Errorf("expected principal in context, got %v", user)
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req, nil)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if tt.wantMessage != "" {
				if got := decodeMessage(t, rec); got != tt.wantMessage {
					t.Errorf("message = %q, want %q", got, tt.wantMessage)
				}
			}
		})
	}
}

func TestGuard_Admin(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
		wantCalled bool
	}{
		{name: "staff rejected", role: model.RoleStaff, wantStatus: http.StatusForbidden},
		{name: "admin allowed", role: model.RoleAdmin, wantStatus: http.StatusOK, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := NewGuard(&mockAuthenticator{
				authenticateFunc: func(ctx context.Context, token string) (*model.User, error) {
					return &model.User{Role: tt.role}, nil
				},
			}, logger.Discard())

			called := false
			h := guard.Admin(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				called = true
			})

			req := httptest.NewRequest(http.MethodPost, "/api/rooms/type", nil)
			req.Header.Set("Authorization", "Bearer t")
			rec := httptest.NewRecorder()
			h(rec, req, nil)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if !tt.wantCalled {
				if got := decodeMessage(t, rec); got != MsgAdminOnly {
					t.Errorf("message = %q, want %q", got, MsgAdminOnly)
				}
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeMessage(t, rec); got != apperrors.ServerErrorMessage {
		t.Errorf("message = %q", got)
	}
}

func TestRequestTimeout(t *testing.T) {
	h := RequestTimeout(20*time.Millisecond, logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeMessage(t, rec); got != timeoutMessage {
		t.Errorf("message = %q", got)
	}
}

func TestRequestTimeout_LateHandlerWritesAreDropped(t *testing.T) {
	finished := make(chan struct{})
	h := RequestTimeout(5*time.Millisecond, logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(finished)
		<-r.Context().Done()
		// A store call failing just after the deadline still reaches the
		// error writer while the middleware answers on its own.
		time.Sleep(20 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Late", "1")
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := w.Write([]byte(`{"message":"late"}`)); err != http.ErrHandlerTimeout {
			t.Errorf("late write error = %v, want ErrHandlerTimeout", err)
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))
	<-finished

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeMessage(t, rec); got != timeoutMessage {
		t.Errorf("message = %q", got)
	}
	if rec.Header().Get("X-Late") != "" {
		t.Error("header set after the timeout leaked into the response")
	}
}

func TestRequestTimeout_HandlerHeadersAreForwarded(t *testing.T) {
	h := RequestTimeout(time.Second, logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Kind", "rooms")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rooms", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if got := rec.Header().Get("X-Request-Kind"); got != "rooms" {
		t.Errorf("X-Request-Kind = %q", got)
	}
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	header http.Header
	code   int
}

func (b *brokenWriter) Header() http.Header { return b.header }

func (b *brokenWriter) WriteHeader(code int) { b.code = code }

func (b *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestWriteRejection_LogsWriteFailure(t *testing.T) {
	var out bytes.Buffer
	log := logger.New(logger.Config{Output: &out, Level: logger.ERROR})
	w := &brokenWriter{header: make(http.Header)}

	writeRejection(w, log, "MaxRequestSize", http.StatusBadRequest, "Request body too large")

	if w.code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.code)
	}
	var entry map[string]any
	if err := json.Unmarshal(out.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", out.String(), err)
	}
	if entry["handler"] != "MaxRequestSize" || entry["operation"] != "writeRejection" {
		t.Errorf("unexpected log entry %v", entry)
	}
	if entry["error"] != "connection reset" {
		t.Errorf("error = %v", entry["error"])
	}
}

func TestContentTypeValidation(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := ContentTypeValidation(logger.Discard())(next)

	tests := []struct {
		name        string
		method      string
		body        string
		contentType string
		wantStatus  int
	}{
		{name: "json post", method: http.MethodPost, body: `{}`, contentType: "application/json; charset=utf-8", wantStatus: http.StatusNoContent},
		{name: "form post", method: http.MethodPost, body: `a=b`, contentType: "application/x-www-form-urlencoded", wantStatus: http.StatusBadRequest},
		{name: "body-less put", method: http.MethodPut, wantStatus: http.StatusNoContent},
		{name: "get ignores header", method: http.MethodGet, contentType: "text/plain", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *bytes.Reader
			if tt.body != "" {
				body = bytes.NewReader([]byte(tt.body))
			} else {
				body = bytes.NewReader(nil)
			}
			req := httptest.NewRequest(tt.method, "/api/rooms", body)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestMaxRequestSize(t *testing.T) {
	h := MaxRequestSize(8, logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(`{"roomNumber":101}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRequestLogging_PropagatesRequestID(t *testing.T) {
	var seen string
	h := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "abc-123" {
		t.Errorf("request id in context = %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("response header = %q", rec.Header().Get(RequestIDHeader))
	}
}
