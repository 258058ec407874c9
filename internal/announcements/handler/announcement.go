package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"towerdesk/internal/announcements/service"
	"towerdesk/internal/auth"
	apperrors "towerdesk/pkg/errors"
	httputil "towerdesk/pkg/http"
	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type AnnouncementHandler struct {
	service service.AnnouncementService
	log     *logger.Logger
}

func NewAnnouncementHandler(service service.AnnouncementService, log *logger.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
		log:     log,
	}
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var announcement model.Announcement
	if err := json.NewDecoder(r.Body).Decode(&announcement); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Create(r.Context(), &announcement); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteSuccess(w, announcement); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "error", err)
	}
}

func (h *AnnouncementHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	announcements, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if announcements == nil {
		announcements = []*model.Announcement{}
	}
	if err := httputil.WriteSuccess(w, announcements); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *AnnouncementHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.POST("/announcement", guard.Identity(guard.Role(model.RoleAdmin, h.Create)))
	router.GET("/announcement", guard.Identity(h.GetAll))
}

func (h *AnnouncementHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}
