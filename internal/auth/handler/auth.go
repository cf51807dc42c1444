package handler

import (
	"net/http"

	"hotelms/internal/auth/service"
	httputil "hotelms/pkg/http"
	"hotelms/pkg/logger"
	"hotelms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AuthHandler struct {
	service service.AuthService
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Register", err)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteCreated(w, resp); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Login", err)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
}
