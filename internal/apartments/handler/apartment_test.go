package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type stubApartmentService struct {
	listFn func(ctx context.Context, page, minRent, maxRent int) (*model.ApartmentPage, error)
}

func (s *stubApartmentService) List(ctx context.Context, page, minRent, maxRent int) (*model.ApartmentPage, error) {
	return s.listFn(ctx, page, minRent, maxRent)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Output: io.Discard})
}

func TestListParsesQueryParams(t *testing.T) {
	var gotPage, gotMin, gotMax int
	svc := &stubApartmentService{
		listFn: func(ctx context.Context, page, minRent, maxRent int) (*model.ApartmentPage, error) {
			gotPage, gotMin, gotMax = page, minRent, maxRent
			return &model.ApartmentPage{Page: page, Apartments: []model.Apartment{}}, nil
		},
	}
	h := NewApartmentHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/apartments?page=2&minRent=500&maxRent=2000", nil)

	h.List(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, gotPage)
	assert.Equal(t, 500, gotMin)
	assert.Equal(t, 2000, gotMax)
}

func TestListDefaults(t *testing.T) {
	var gotPage, gotMin, gotMax int
	svc := &stubApartmentService{
		listFn: func(ctx context.Context, page, minRent, maxRent int) (*model.ApartmentPage, error) {
			gotPage, gotMin, gotMax = page, minRent, maxRent
			return &model.ApartmentPage{Page: page, Apartments: []model.Apartment{}}, nil
		},
	}
	h := NewApartmentHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/apartments", nil)

	h.List(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gotPage)
	assert.Equal(t, 0, gotMin)
	assert.Equal(t, 0, gotMax)
}

func TestListRejectsBadNumbers(t *testing.T) {
	h := NewApartmentHandler(&stubApartmentService{}, testLogger())

	for _, target := range []string{
		"/apartments?page=two",
		"/apartments?minRent=low",
		"/apartments?maxRent=9z",
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)

		h.List(rec, req, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestListPayloadShape(t *testing.T) {
	svc := &stubApartmentService{
		listFn: func(ctx context.Context, page, minRent, maxRent int) (*model.ApartmentPage, error) {
			return &model.ApartmentPage{
				Total:      7,
				Page:       2,
				TotalPages: 2,
				Apartments: []model.Apartment{{ApartmentNo: "A-204", Block: "A", Rent: 1450, IsAvailable: true}},
			}, nil
		},
	}
	h := NewApartmentHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/apartments?page=2", nil)

	h.List(rec, req, nil)

	var page model.ApartmentPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(7), page.Total)
	assert.Equal(t, int64(2), page.TotalPages)
	require.Len(t, page.Apartments, 1)
	assert.Equal(t, "A-204", page.Apartments[0].ApartmentNo)
}
