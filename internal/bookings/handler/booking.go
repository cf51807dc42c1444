package handler

import (
	"net/http"

	"hotelms/internal/bookings/service"
	httputil "hotelms/pkg/http"
	"hotelms/pkg/logger"
	"hotelms/pkg/middleware"
	"hotelms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	guard   *middleware.Guard
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, guard *middleware.Guard, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	resp := model.BookingResponse{Message: service.MsgCreated, Booking: booking}
	if err := httputil.WriteCreated(w, resp); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.CheckIn(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "CheckIn", err)
		return
	}

	resp := model.BookingResponse{Message: service.MsgCheckedIn, Booking: booking}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckIn", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) CheckOut(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.CheckOut(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "CheckOut", err)
		return
	}

	resp := model.BookingResponse{Message: service.MsgCheckedOut, Booking: booking}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckOut", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/bookings", h.guard.Auth(h.List))
	router.POST("/api/bookings", h.guard.Auth(h.Create))
	router.PUT("/api/bookings/checkin/:id", h.guard.Auth(h.CheckIn))
	router.PUT("/api/bookings/checkout/:id", h.guard.Auth(h.CheckOut))
}
