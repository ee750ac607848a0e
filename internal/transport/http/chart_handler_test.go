package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"assetgauge/internal/analytics"
	"assetgauge/internal/dataset"
	apierrors "assetgauge/internal/errors"
	"assetgauge/internal/services"
	"assetgauge/internal/validation"
)

func newTestChartHandler(service *MockDatasetService) *ChartHandler {
	logger := testLogger()
	return NewChartHandler(service, validation.New(), logger, apierrors.NewErrorHandler(logger, false))
}

func TestChartHandler_Buildings(t *testing.T) {
	service := new(MockDatasetService)
	service.On("Summary", dataset.Filter{}).Return(analytics.Summary{
		TopBuildings: []analytics.ValueCount{{Value: "HQ", Count: 5}, {Value: "Annex", Count: 2}},
	}, nil)
	handler := newTestChartHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/buildings", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "HQ")
	service.AssertExpectations(t)
}

func TestChartHandler_CostHistogram(t *testing.T) {
	service := new(MockDatasetService)
	service.On("CostValues", dataset.Filter{}).Return([]float64{100, 250, 250, 900}, nil)
	handler := newTestChartHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/cost", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestChartHandler_LocationTreemap(t *testing.T) {
	service := new(MockDatasetService)
	service.On("Locations", dataset.Filter{}).Return(analytics.LocationBreakdown{
		ByBuilding: []analytics.ValueCount{{Value: "HQ", Count: 4}},
	}, nil)
	handler := newTestChartHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/location-treemap", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "HQ")
	service.AssertExpectations(t)
}

func TestChartHandler_LocationSunburst(t *testing.T) {
	service := new(MockDatasetService)
	service.On("Locations", dataset.Filter{Building: "HQ"}).Return(analytics.LocationBreakdown{
		ByBuilding: []analytics.ValueCount{{Value: "HQ", Count: 4}},
		ByRoom:     []analytics.LocationCount{{Building: "HQ", Room: "101", Count: 4}},
	}, nil)
	handler := newTestChartHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/location-sunburst?building=HQ", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "101")
	service.AssertExpectations(t)
}

func TestChartHandler_UpdatedTimelineTitle(t *testing.T) {
	service := new(MockDatasetService)
	service.On("Timeline", dataset.Filter{}, "Last Updated").Return(analytics.Timeline{
		Column: "Last Updated",
		Daily:  []analytics.DateCount{{Bucket: "2026-01-05", Count: 1}},
	}, nil)
	handler := newTestChartHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/additions-daily?column=Last+Updated", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Assets Updated per Day")
	service.AssertExpectations(t)
}

func TestChartHandler_TimelinePassesColumn(t *testing.T) {
	service := new(MockDatasetService)
	service.On("Timeline", dataset.Filter{}, "Warranty From").Return(analytics.Timeline{Column: "Warranty From"}, nil)
	handler := newTestChartHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/additions-monthly?column=Warranty+From", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestChartHandler_UnknownKind(t *testing.T) {
	service := new(MockDatasetService)
	handler := newTestChartHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/sparkline", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	service.AssertNotCalled(t, "Summary", mock.Anything)
}

func TestChartHandler_NoDataset(t *testing.T) {
	service := new(MockDatasetService)
	service.On("Summary", dataset.Filter{}).Return(analytics.Summary{}, services.ErrNoDataset)
	handler := newTestChartHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_DATASET")
}
