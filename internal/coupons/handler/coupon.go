package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"towerdesk/internal/auth"
	"towerdesk/internal/coupons/service"
	apperrors "towerdesk/pkg/errors"
	httputil "towerdesk/pkg/http"
	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type CouponHandler struct {
	service service.CouponService
	log     *logger.Logger
}

func NewCouponHandler(service service.CouponService, log *logger.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		log:     log,
	}
}

func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var coupon model.Coupon
	if err := json.NewDecoder(r.Body).Decode(&coupon); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Create(r.Context(), &coupon); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, coupon); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *CouponHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	coupons, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if coupons == nil {
		coupons = []*model.Coupon{}
	}
	if err := httputil.WriteSuccess(w, coupons); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

type availabilityUpdate struct {
	IsAvailable *bool `json:"isAvailable"`
}

func (h *CouponHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update availabilityUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil || update.IsAvailable == nil {
		h.writeError(w, "UpdateAvailability", apperrors.InvalidInput("isAvailable field is required"))
		return
	}

	if err := h.service.SetAvailability(r.Context(), ps.ByName("id"), *update.IsAvailable); err != nil {
		h.writeError(w, "UpdateAvailability", err)
		return
	}

	if err := httputil.WriteMessage(w, http.StatusOK, "Coupon updated"); err != nil {
		h.log.Error("failed to write response", "handler", "UpdateAvailability", "error", err)
	}
}

func (h *CouponHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.POST("/coupons", guard.Identity(guard.Role(model.RoleAdmin, h.Create)))
	router.GET("/coupons", h.GetAll)
	router.PATCH("/coupons/:id", guard.Identity(guard.Role(model.RoleAdmin, h.UpdateAvailability)))
}

func (h *CouponHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}
