package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	apperrors "towerdesk/pkg/errors"
	httputil "towerdesk/pkg/http"
	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type contextKey string

const emailKey contextKey = "verified_email"

// RoleReader looks up the stored role for a verified email. The role
// gate depends only on this read, it performs no writes.
type RoleReader interface {
	FindRoleByEmail(ctx context.Context, email string) (model.Role, bool, error)
}

// Guard provides the two route gates: Identity verifies the bearer
// credential and attaches the caller's email to the context, Role
// checks the stored role against a required one. Role must always be
// composed inside Identity since it reads the attached email.
type Guard struct {
	tokens *TokenService
	roles  RoleReader
	log    *logger.Logger
}

func NewGuard(tokens *TokenService, roles RoleReader, log *logger.Logger) *Guard {
	return &Guard{
		tokens: tokens,
		roles:  roles,
		log:    log,
	}
}

func (g *Guard) Identity(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			g.writeError(w, apperrors.Unauthorized("Missing or malformed authorization header"))
			return
		}

		email, err := g.tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			g.writeError(w, apperrors.Forbidden("Invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), emailKey, email)
		next(w, r.WithContext(ctx), ps)
	}
}

func (g *Guard) Role(required model.Role, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		email, ok := EmailFromContext(r.Context())
		if !ok {
			// Role composed without Identity is a wiring bug, fail closed
			g.writeError(w, apperrors.Unauthorized("Missing verified identity"))
			return
		}

		role, found, err := g.roles.FindRoleByEmail(r.Context(), email)
		if err != nil {
			g.writeError(w, apperrors.Internal("Failed to resolve caller role", err))
			return
		}
		if !found || role != required {
			g.writeError(w, apperrors.Forbidden("Insufficient permissions"))
			return
		}

		next(w, r, ps)
	}
}

func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// ContextWithEmail is exported for handler tests that bypass the gates.
func ContextWithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

func (g *Guard) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		g.log.Error("failed to write error response", "middleware", "auth", "error", writeErr)
	}
}
