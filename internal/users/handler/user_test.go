package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "towerdesk/pkg/errors"
	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type stubUserService struct {
	registerFn     func(ctx context.Context, user *model.User) (bool, error)
	getRoleFn      func(ctx context.Context, email string) (model.Role, error)
	getByEmailFn   func(ctx context.Context, email string) (*model.User, error)
	getMembersFn   func(ctx context.Context) ([]*model.User, error)
	removeMemberFn func(ctx context.Context, email string) error
}

func (s *stubUserService) Register(ctx context.Context, user *model.User) (bool, error) {
	return s.registerFn(ctx, user)
}

func (s *stubUserService) GetRole(ctx context.Context, email string) (model.Role, error) {
	return s.getRoleFn(ctx, email)
}

func (s *stubUserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserService) GetMembers(ctx context.Context) ([]*model.User, error) {
	return s.getMembersFn(ctx)
}

func (s *stubUserService) RemoveMember(ctx context.Context, email string) error {
	return s.removeMemberFn(ctx, email)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Output: io.Discard})
}

func TestRegisterNewUserReturns201(t *testing.T) {
	svc := &stubUserService{
		registerFn: func(ctx context.Context, user *model.User) (bool, error) {
			return true, nil
		},
	}
	h := NewUserHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Dana Cohen","email":"dana@example.com"}`))

	h.Register(rec, req, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterExistingUserReturns200(t *testing.T) {
	svc := &stubUserService{
		registerFn: func(ctx context.Context, user *model.User) (bool, error) {
			return false, nil
		},
	}
	h := NewUserHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Dana Cohen","email":"dana@example.com"}`))

	h.Register(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User already exists", resp.Message)
}

func TestRegisterMalformedBody(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":`))

	h.Register(rec, req, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoleByPathParam(t *testing.T) {
	svc := &stubUserService{
		getRoleFn: func(ctx context.Context, email string) (model.Role, error) {
			assert.Equal(t, "dana@example.com", email)
			return model.RoleMember, nil
		},
	}
	h := NewUserHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/role/dana@example.com", nil)
	ps := httprouter.Params{{Key: "email", Value: "dana@example.com"}}

	h.GetRole(rec, req, ps)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]model.Role
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.RoleMember, resp["role"])
}

func TestGetRoleUnknownUser(t *testing.T) {
	svc := &stubUserService{
		getRoleFn: func(ctx context.Context, email string) (model.Role, error) {
			return "", apperrors.NotFound("User")
		},
	}
	h := NewUserHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/role/ghost@example.com", nil)
	ps := httprouter.Params{{Key: "email", Value: "ghost@example.com"}}

	h.GetRole(rec, req, ps)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMembersNeverReturnsNull(t *testing.T) {
	svc := &stubUserService{
		getMembersFn: func(ctx context.Context) ([]*model.User, error) {
			return nil, nil
		},
	}
	h := NewUserHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/members", nil)

	h.GetMembers(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestRemoveMember(t *testing.T) {
	var removed string
	svc := &stubUserService{
		removeMemberFn: func(ctx context.Context, email string) error {
			removed = email
			return nil
		},
	}
	h := NewUserHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/users/remove-member/dana@example.com", nil)
	ps := httprouter.Params{{Key: "email", Value: "dana@example.com"}}

	h.RemoveMember(rec, req, ps)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dana@example.com", removed)
}
