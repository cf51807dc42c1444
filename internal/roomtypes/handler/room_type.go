package handler

import (
	"net/http"

	"hotelms/internal/roomtypes/service"
	httputil "hotelms/pkg/http"
	"hotelms/pkg/logger"
	"hotelms/pkg/middleware"
	"hotelms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RoomTypeHandler struct {
	service service.RoomTypeService
	guard   *middleware.Guard
	log     *logger.Logger
}

func NewRoomTypeHandler(service service.RoomTypeService, guard *middleware.Guard, log *logger.Logger) *RoomTypeHandler {
	return &RoomTypeHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *RoomTypeHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	roomTypes, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, roomTypes); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomTypeHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RoomTypeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	roomType, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	resp := model.RoomTypeCreatedResponse{Message: service.MsgCreated, Type: roomType}
	if err := httputil.WriteCreated(w, resp); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

// Delete is mounted by the rooms router, which owns every DELETE under
// /api/rooms.
func (h *RoomTypeHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteMessage(w, service.MsgDeleted); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

// GuardedDelete is Delete behind the admin gate.
func (h *RoomTypeHandler) GuardedDelete() httprouter.Handle {
	return h.guard.Admin(h.Delete)
}

func (h *RoomTypeHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *RoomTypeHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/rooms/type", h.List)
	router.POST("/api/rooms/type", h.guard.Admin(h.Create))
}
