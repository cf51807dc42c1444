package handler

import (
	"net/http"

	"hotelms/internal/search/service"
	httputil "hotelms/pkg/http"
	"hotelms/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type SearchHandler struct {
	service service.SearchService
	log     *logger.Logger
}

func NewSearchHandler(service service.SearchService, log *logger.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		log:     log,
	}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.Bookings(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SearchHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/search", h.Search)
}
