package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"towerdesk/internal/auth"
	"towerdesk/internal/payments/service"
	apperrors "towerdesk/pkg/errors"
	httputil "towerdesk/pkg/http"
	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

type intentRequest struct {
	Rent int `json:"rent"`
}

type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "CreateIntent", apperrors.InvalidInput("Invalid request body"))
		return
	}

	clientSecret, err := h.service.CreateIntent(r.Context(), req.Rent)
	if err != nil {
		h.writeError(w, "CreateIntent", err)
		return
	}

	if err := httputil.WriteSuccess(w, intentResponse{ClientSecret: clientSecret}); err != nil {
		h.log.Error("failed to write success response", "handler", "CreateIntent", "error", err)
	}
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	callerEmail, ok := auth.EmailFromContext(r.Context())
	if !ok {
		h.writeError(w, "Record", apperrors.Unauthorized("Missing verified identity"))
		return
	}

	var payment model.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		h.writeError(w, "Record", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Record(r.Context(), callerEmail, &payment); err != nil {
		h.writeError(w, "Record", err)
		return
	}

	if err := httputil.WriteSuccess(w, payment); err != nil {
		h.log.Error("failed to write success response", "handler", "Record", "error", err)
	}
}

func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	callerEmail, ok := auth.EmailFromContext(r.Context())
	if !ok {
		h.writeError(w, "History", apperrors.Unauthorized("Missing verified identity"))
		return
	}

	payments, err := h.service.History(r.Context(), callerEmail, r.URL.Query().Get("email"))
	if err != nil {
		h.writeError(w, "History", err)
		return
	}

	if payments == nil {
		payments = []*model.Payment{}
	}
	if err := httputil.WriteSuccess(w, payments); err != nil {
		h.log.Error("failed to write success response", "handler", "History", "error", err)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.POST("/create-payment-intent", guard.Identity(guard.Role(model.RoleMember, h.CreateIntent)))
	router.POST("/payments", guard.Identity(guard.Role(model.RoleMember, h.Record)))
	router.GET("/payments", guard.Identity(guard.Role(model.RoleMember, h.History)))
}

func (h *PaymentHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}
