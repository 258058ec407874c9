package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"towerdesk/internal/agreements/service"
	"towerdesk/internal/auth"
	apperrors "towerdesk/pkg/errors"
	httputil "towerdesk/pkg/http"
	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type AgreementHandler struct {
	service service.AgreementService
	log     *logger.Logger
}

func NewAgreementHandler(service service.AgreementService, log *logger.Logger) *AgreementHandler {
	return &AgreementHandler{
		service: service,
		log:     log,
	}
}

func (h *AgreementHandler) Apply(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	callerEmail, ok := auth.EmailFromContext(r.Context())
	if !ok {
		h.writeError(w, "Apply", apperrors.Unauthorized("Missing verified identity"))
		return
	}

	var agreement model.Agreement
	if err := json.NewDecoder(r.Body).Decode(&agreement); err != nil {
		h.writeError(w, "Apply", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Apply(r.Context(), callerEmail, &agreement); err != nil {
		h.writeError(w, "Apply", err)
		return
	}

	if err := httputil.WriteSuccess(w, agreement); err != nil {
		h.log.Error("failed to write success response", "handler", "Apply", "error", err)
	}
}

func (h *AgreementHandler) GetByStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status := model.AgreementStatus(r.URL.Query().Get("status"))

	agreements, err := h.service.GetByStatus(r.Context(), status)
	if err != nil {
		h.writeError(w, "GetByStatus", err)
		return
	}

	if agreements == nil {
		agreements = []*model.Agreement{}
	}
	if err := httputil.WriteSuccess(w, agreements); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByStatus", "error", err)
	}
}

func (h *AgreementHandler) Accept(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Accept(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Accept", err)
		return
	}

	if err := httputil.WriteMessage(w, http.StatusOK, "Agreement accepted"); err != nil {
		h.log.Error("failed to write response", "handler", "Accept", "error", err)
	}
}

func (h *AgreementHandler) Reject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Reject(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Reject", err)
		return
	}

	if err := httputil.WriteMessage(w, http.StatusOK, "Agreement rejected"); err != nil {
		h.log.Error("failed to write response", "handler", "Reject", "error", err)
	}
}

func (h *AgreementHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.POST("/agreements", guard.Identity(h.Apply))
	router.GET("/agreements", guard.Identity(guard.Role(model.RoleAdmin, h.GetByStatus)))
	router.PATCH("/agreements/accept/:id", guard.Identity(guard.Role(model.RoleAdmin, h.Accept)))
	router.PATCH("/agreements/reject/:id", guard.Identity(guard.Role(model.RoleAdmin, h.Reject)))
}

func (h *AgreementHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}
