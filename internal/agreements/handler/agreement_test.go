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

	"towerdesk/internal/auth"
	apperrors "towerdesk/pkg/errors"
	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type stubAgreementService struct {
	applyFn       func(ctx context.Context, callerEmail string, agreement *model.Agreement) error
	getByStatusFn func(ctx context.Context, status model.AgreementStatus) ([]*model.Agreement, error)
	acceptFn      func(ctx context.Context, id string) error
	rejectFn      func(ctx context.Context, id string) error
}

func (s *stubAgreementService) Apply(ctx context.Context, callerEmail string, agreement *model.Agreement) error {
	return s.applyFn(ctx, callerEmail, agreement)
}

func (s *stubAgreementService) GetByStatus(ctx context.Context, status model.AgreementStatus) ([]*model.Agreement, error) {
	return s.getByStatusFn(ctx, status)
}

func (s *stubAgreementService) Accept(ctx context.Context, id string) error {
	return s.acceptFn(ctx, id)
}

func (s *stubAgreementService) Reject(ctx context.Context, id string) error {
	return s.rejectFn(ctx, id)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Output: io.Discard})
}

func authedRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(auth.ContextWithEmail(req.Context(), "dana@example.com"))
}

func TestApplyPassesCallerEmail(t *testing.T) {
	var gotCaller string
	svc := &stubAgreementService{
		applyFn: func(ctx context.Context, callerEmail string, agreement *model.Agreement) error {
			gotCaller = callerEmail
			return nil
		},
	}
	h := NewAgreementHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/agreements", `{"userName":"Dana Cohen","apartmentNo":"A-204","block":"A","floor":2,"rent":1450}`)

	h.Apply(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dana@example.com", gotCaller)
}

func TestApplyRejectsMalformedBody(t *testing.T) {
	h := NewAgreementHandler(&stubAgreementService{}, testLogger())

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/agreements", `{"userName":`)

	h.Apply(rec, req, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyWithoutIdentity(t *testing.T) {
	h := NewAgreementHandler(&stubAgreementService{}, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/agreements", strings.NewReader(`{}`))

	h.Apply(rec, req, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApplySurfacesServiceErrors(t *testing.T) {
	svc := &stubAgreementService{
		applyFn: func(ctx context.Context, callerEmail string, agreement *model.Agreement) error {
			return apperrors.InvalidInput("User already applied for an apartment")
		},
	}
	h := NewAgreementHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/agreements", `{"apartmentNo":"A-204"}`)

	h.Apply(rec, req, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User already applied for an apartment", resp.Message)
}

func TestGetByStatusNeverReturnsNull(t *testing.T) {
	svc := &stubAgreementService{
		getByStatusFn: func(ctx context.Context, status model.AgreementStatus) ([]*model.Agreement, error) {
			return nil, nil
		},
	}
	h := NewAgreementHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodGet, "/agreements?status=pending", "")

	h.GetByStatus(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestAcceptConflictStatus(t *testing.T) {
	svc := &stubAgreementService{
		acceptFn: func(ctx context.Context, id string) error {
			return apperrors.Conflict("Agreement has already been processed")
		},
	}
	h := NewAgreementHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPatch, "/agreements/accept/abc", "")
	ps := httprouter.Params{{Key: "id", Value: "abc"}}

	h.Accept(rec, req, ps)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRejectPassesID(t *testing.T) {
	var gotID string
	svc := &stubAgreementService{
		rejectFn: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	}
	h := NewAgreementHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPatch, "/agreements/reject/68b12f00aa01bb02cc03dd04", "")
	ps := httprouter.Params{{Key: "id", Value: "68b12f00aa01bb02cc03dd04"}}

	h.Reject(rec, req, ps)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "68b12f00aa01bb02cc03dd04", gotID)
}
