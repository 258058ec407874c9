package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"towerdesk/internal/apartments/service"
	apperrors "towerdesk/pkg/errors"
	httputil "towerdesk/pkg/http"
	"towerdesk/pkg/logger"
)

type ApartmentHandler struct {
	service service.ApartmentService
	log     *logger.Logger
}

func NewApartmentHandler(service service.ApartmentService, log *logger.Logger) *ApartmentHandler {
	return &ApartmentHandler{
		service: service,
		log:     log,
	}
}

// List is the public apartment feed: ?page (default 1), ?minRent
// (default 0), ?maxRent (default unbounded).
func (h *ApartmentHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	page, err := intQuery(query.Get("page"), 1)
	if err != nil {
		h.writeError(w, apperrors.InvalidInput("invalid page parameter: "+query.Get("page")))
		return
	}
	minRent, err := intQuery(query.Get("minRent"), 0)
	if err != nil {
		h.writeError(w, apperrors.InvalidInput("invalid minRent parameter: "+query.Get("minRent")))
		return
	}
	maxRent, err := intQuery(query.Get("maxRent"), 0)
	if err != nil {
		h.writeError(w, apperrors.InvalidInput("invalid maxRent parameter: "+query.Get("maxRent")))
		return
	}

	result, err := h.service.List(r.Context(), page, minRent, maxRent)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *ApartmentHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/apartments", h.List)
}

func intQuery(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func (h *ApartmentHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
	}
}
