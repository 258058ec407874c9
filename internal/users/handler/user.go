package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"towerdesk/internal/auth"
	"towerdesk/internal/users/service"
	apperrors "towerdesk/pkg/errors"
	httputil "towerdesk/pkg/http"
	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.writeError(w, "Register", apperrors.InvalidInput("Invalid request body"))
		return
	}

	created, err := h.service.Register(r.Context(), &user)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if !created {
		if err := httputil.WriteMessage(w, http.StatusOK, "User already exists"); err != nil {
			h.log.Error("failed to write response", "handler", "Register", "error", err)
		}
		return
	}

	if err := httputil.WriteCreated(w, user); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "error", err)
	}
}

func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	role, err := h.service.GetRole(r.Context(), ps.ByName("email"))
	if err != nil {
		h.writeError(w, "GetRole", err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]model.Role{"role": role}); err != nil {
		h.log.Error("failed to write success response", "handler", "GetRole", "error", err)
	}
}

func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := h.service.GetByEmail(r.Context(), ps.ByName("email"))
	if err != nil {
		h.writeError(w, "GetByEmail", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByEmail", "error", err)
	}
}

func (h *UserHandler) GetMembers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	members, err := h.service.GetMembers(r.Context())
	if err != nil {
		h.writeError(w, "GetMembers", err)
		return
	}

	if members == nil {
		members = []*model.User{}
	}
	if err := httputil.WriteSuccess(w, members); err != nil {
		h.log.Error("failed to write success response", "handler", "GetMembers", "error", err)
	}
}

func (h *UserHandler) RemoveMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.RemoveMember(r.Context(), ps.ByName("email")); err != nil {
		h.writeError(w, "RemoveMember", err)
		return
	}

	if err := httputil.WriteMessage(w, http.StatusOK, "Member removed successfully"); err != nil {
		h.log.Error("failed to write response", "handler", "RemoveMember", "error", err)
	}
}

// RegisterRoutes wires the user routes behind their gates. The role
// lookup sits under /users/role/:email because httprouter cannot host
// the static /users/members next to a :email wildcard in the same tree.
func (h *UserHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.POST("/users", h.Register)
	router.GET("/users/role/:email", guard.Identity(h.GetRole))
	router.GET("/user/:email", guard.Identity(h.GetByEmail))
	router.GET("/users/members", guard.Identity(guard.Role(model.RoleAdmin, h.GetMembers)))
	router.PATCH("/users/remove-member/:email", guard.Identity(guard.Role(model.RoleAdmin, h.RemoveMember)))
}

func (h *UserHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}
