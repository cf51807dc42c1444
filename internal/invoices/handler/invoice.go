package handler

import (
	"net/http"

	"hotelms/internal/invoices/service"
	httputil "hotelms/pkg/http"
	"hotelms/pkg/logger"
	"hotelms/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type InvoiceHandler struct {
	service service.InvoiceService
	guard   *middleware.Guard
	log     *logger.Logger
}

func NewInvoiceHandler(service service.InvoiceService, guard *middleware.Guard, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	invoice, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, invoice); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *InvoiceHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/invoice/:id", h.guard.Auth(h.Get))
}
