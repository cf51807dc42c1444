package handler

import (
	"net/http"

	"hotelms/internal/notifications/service"
	httputil "hotelms/pkg/http"
	"hotelms/pkg/logger"
	"hotelms/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type NotificationHandler struct {
	service service.NotificationService
	guard   *middleware.Guard
	log     *logger.Logger
}

func NewNotificationHandler(service service.NotificationService, guard *middleware.Guard, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	notifications, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, notifications); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *NotificationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/notifications", h.guard.Auth(h.List))
}
