package handler

import (
	"net/http"

	"hotelms/internal/dashboard/service"
	httputil "hotelms/pkg/http"
	"hotelms/pkg/logger"
	"hotelms/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type DashboardHandler struct {
	service service.DashboardService
	guard   *middleware.Guard
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, guard *middleware.Guard, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dashboard, err := h.service.Summary(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, dashboard); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DashboardHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/dashboard", h.guard.Auth(h.Get))
}
