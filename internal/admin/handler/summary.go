package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"towerdesk/internal/admin/service"
	"towerdesk/internal/auth"
	httputil "towerdesk/pkg/http"
	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type SummaryHandler struct {
	service service.SummaryService
	log     *logger.Logger
}

func NewSummaryHandler(service service.SummaryService, log *logger.Logger) *SummaryHandler {
	return &SummaryHandler{
		service: service,
		log:     log,
	}
}

func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	summary, err := h.service.Summarize(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Summary", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, summary); err != nil {
		h.log.Error("failed to write success response", "handler", "Summary", "error", err)
	}
}

func (h *SummaryHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.GET("/admin/summary", guard.Identity(guard.Role(model.RoleAdmin, h.Summary)))
}
