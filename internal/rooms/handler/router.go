package handler

import (
	"net/http"
	"strings"

	apperrors "hotelms/pkg/errors"
	httputil "hotelms/pkg/http"

	"github.com/julienschmidt/httprouter"
)

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/rooms", h.List)
	router.POST("/api/rooms", h.guard.Auth(h.Create))
	router.PUT("/api/rooms/status/:id", h.guard.Auth(h.UpdateStatus))
	// httprouter cannot hold /type/:id next to /:id, so one catch-all
	// owns every DELETE below /api/rooms.
	router.DELETE("/api/rooms/*target", h.handleDelete)
}

func (h *RoomHandler) handleDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	target := strings.Trim(ps.ByName("target"), "/")
	parts := strings.Split(target, "/")

	switch {
	case len(parts) == 2 && parts[0] == "type" && parts[1] != "":
		h.deleteType(w, r, httprouter.Params{{Key: "id", Value: parts[1]}})
	case len(parts) == 1 && parts[0] != "":
		h.guard.Auth(h.Delete)(w, r, httprouter.Params{{Key: "id", Value: parts[0]}})
	default:
		if err := httputil.WriteError(w, apperrors.NotFound("Route")); err != nil {
			h.log.Error("failed to write error response", "handler", "handleDelete", "operation", "WriteError", "error", err)
		}
	}
}
