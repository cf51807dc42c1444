package handler

import (
	"net/http"

	"hotelms/internal/payments/service"
	httputil "hotelms/pkg/http"
	"hotelms/pkg/logger"
	"hotelms/pkg/middleware"
	"hotelms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PaymentHandler struct {
	service service.PaymentService
	guard   *middleware.Guard
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, guard *middleware.Guard, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *PaymentHandler) UpdatePayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.PaymentUpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "UpdatePayment", err)
		return
	}

	booking, err := h.service.UpdatePayment(r.Context(), ps.ByName("id"), &req)
	if err != nil {
		h.writeError(w, "UpdatePayment", err)
		return
	}

	resp := model.BookingResponse{Message: service.MsgPaymentUpdated, Booking: booking}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdatePayment", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.PayRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Pay", err)
		return
	}

	booking, err := h.service.Pay(r.Context(), ps.ByName("id"), &req)
	if err != nil {
		h.writeError(w, "Pay", err)
		return
	}

	resp := model.BookingResponse{Message: service.MsgPaymentCompleted, Booking: booking}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Pay", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PaymentHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.PUT("/api/bookings/payment/:id", h.guard.Auth(h.UpdatePayment))
	router.PUT("/api/payment/:id/pay", h.guard.Auth(h.Pay))
}
