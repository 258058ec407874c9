package auth

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apperrors "towerdesk/pkg/errors"
	httputil "towerdesk/pkg/http"
	"towerdesk/pkg/logger"
)

type TokenHandler struct {
	tokens *TokenService
	log    *logger.Logger
}

func NewTokenHandler(tokens *TokenService, log *logger.Logger) *TokenHandler {
	return &TokenHandler{
		tokens: tokens,
		log:    log,
	}
}

type tokenRequest struct {
	Email string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken exchanges a registered email for a bearer token. The
// front end calls this right after its own identity step; the token is
// what every protected route checks.
func (h *TokenHandler) IssueToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}
	if req.Email == "" {
		h.writeError(w, apperrors.InvalidInput("Email is required"))
		return
	}

	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		h.writeError(w, apperrors.Internal("Failed to issue token", err))
		return
	}

	if err := httputil.WriteSuccess(w, tokenResponse{Token: token}); err != nil {
		h.log.Error("failed to write success response", "handler", "IssueToken", "error", err)
	}
}

func (h *TokenHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/auth/token", h.IssueToken)
}

func (h *TokenHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", "IssueToken", "error", writeErr)
	}
}
