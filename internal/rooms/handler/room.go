package handler

import (
	"net/http"

	"hotelms/internal/rooms/service"
	httputil "hotelms/pkg/http"
	"hotelms/pkg/logger"
	"hotelms/pkg/middleware"
	"hotelms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RoomHandler struct {
	service    service.RoomService
	guard      *middleware.Guard
	deleteType httprouter.Handle
	log        *logger.Logger
}

// NewRoomHandler builds the rooms handler. deleteType serves
// DELETE /api/rooms/type/:id and must carry its own guard; see router.go.
func NewRoomHandler(
	service service.RoomService,
	guard *middleware.Guard,
	deleteType httprouter.Handle,
	log *logger.Logger,
) *RoomHandler {
	return &RoomHandler{
		service:    service,
		guard:      guard,
		deleteType: deleteType,
		log:        log,
	}
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RoomRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	room, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	resp := model.RoomCreatedResponse{Message: service.MsgCreated, Room: room}
	if err := httputil.WriteCreated(w, resp); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *RoomHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.RoomStatusRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	room, err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), &req)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	resp := model.RoomStatusResponse{Message: service.MsgStatusUpdated, Updated: room}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteMessage(w, service.MsgDeleted); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

func (h *RoomHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
