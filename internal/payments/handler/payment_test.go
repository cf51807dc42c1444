package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotelms/internal/payments/service"
	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/logger"
	"hotelms/pkg/middleware"
	"hotelms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockPaymentService struct {
	ids     []string
	updates []*model.PaymentUpdateRequest
	pays    []*model.PayRequest
}

func (m *mockPaymentService) UpdatePayment(ctx context.Context, id string, req *model.PaymentUpdateRequest) (*model.BookingView, error) {
	m.ids = append(m.ids, id)
	m.updates = append(m.updates, req)
	return &model.BookingView{BookingCore: model.BookingCore{Payment: model.Payment{PaymentStatus: req.PaymentStatus}}}, nil
}

func (m *mockPaymentService) Pay(ctx context.Context, id string, req *model.PayRequest) (*model.BookingView, error) {
	m.ids = append(m.ids, id)
	m.pays = append(m.pays, req)
	if id == "missing" {
		return nil, apperrors.NotFoundWithID("Booking", id)
	}
	return &model.BookingView{BookingCore: model.BookingCore{Payment: model.Payment{PaymentStatus: model.PaymentStatusPaid}}}, nil
}

type staffAuthenticator struct{}

func (staffAuthenticator) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == model.RoleStaff {
		return &model.User{Name: token, Role: model.RoleStaff}, nil
	}
	return nil, apperrors.Unauthorized("Token invalid")
}

func newTestRouter(svc service.PaymentService) *httprouter.Router {
	log := logger.Discard()
	router := httprouter.New()
	NewPaymentHandler(svc, middleware.NewGuard(staffAuthenticator{}, log), log).RegisterRoutes(router)
	return router
}

func put(router http.Handler, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type paymentEnvelope struct {
	Message string             `json:"message"`
	Booking *model.BookingView `json:"booking"`
}

func TestPaymentRoutes(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		body        string
		wantStatus  int
		wantMessage string
		wantPayment string
	}{
		{
			name:        "pay",
			path:        "/api/payment/b1/pay",
			body:        `{"method":"UPI","amount":"2240"}`,
			wantStatus:  http.StatusOK,
			wantMessage: service.MsgPaymentCompleted,
			wantPayment: model.PaymentStatusPaid,
		},
		{
			name:        "payment update",
			path:        "/api/bookings/payment/b1",
			body:        `{"paymentStatus":"pending","paymentMethod":""}`,
			wantStatus:  http.StatusOK,
			wantMessage: service.MsgPaymentUpdated,
			wantPayment: model.PaymentStatusPending,
		},
		{
			name:        "pay unknown booking",
			path:        "/api/payment/missing/pay",
			body:        `{"method":"cash"}`,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Booking not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockPaymentService{}
			w := put(newTestRouter(svc), tt.path, tt.body, "staff")

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			var resp paymentEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
			}
			if tt.wantPayment != "" && (resp.Booking == nil || resp.Booking.PaymentStatus != tt.wantPayment) {
				t.Errorf("unexpected booking %+v", resp.Booking)
			}
		})
	}
}

func TestPay_DecodesAmount(t *testing.T) {
	svc := &mockPaymentService{}
	put(newTestRouter(svc), "/api/payment/b1/pay", `{"method":"card","amount":"1499.50"}`, "staff")

	if len(svc.pays) != 1 || len(svc.ids) != 1 || svc.ids[0] != "b1" {
		t.Fatalf("unexpected calls: ids=%v pays=%d", svc.ids, len(svc.pays))
	}
	if !svc.pays[0].Amount.Present() || svc.pays[0].Amount.Float != 1499.5 {
		t.Errorf("amount = %+v", svc.pays[0].Amount)
	}
}

func TestPaymentRoutes_RequireToken(t *testing.T) {
	for _, path := range []string{"/api/payment/b1/pay", "/api/bookings/payment/b1"} {
		svc := &mockPaymentService{}
		w := put(newTestRouter(svc), path, `{}`, "")

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected status 401, got %d", path, w.Code)
		}
		if len(svc.ids) != 0 {
			t.Errorf("%s: service reached without a token", path)
		}
	}
}
