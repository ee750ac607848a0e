package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"assetgauge/internal/charts"
	apierrors "assetgauge/internal/errors"
	"assetgauge/internal/infrastructure"
	"assetgauge/internal/validation"
)

// Chart kinds served by the chart handler.
const (
	ChartBuildings        = "buildings"
	ChartRooms            = "rooms"
	ChartActive           = "active"
	ChartLocationTreemap  = "location-treemap"
	ChartLocationSunburst = "location-sunburst"
	ChartAdditionsDaily   = "additions-daily"
	ChartAdditionsMonthly = "additions-monthly"
	ChartCost             = "cost"
)

// ChartHandler renders dashboard charts as standalone HTML documents,
// suitable for embedding in an iframe.
type ChartHandler struct {
	service      DatasetServiceInterface
	validate     *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(service DatasetServiceInterface, validate *validator.Validate, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartHandler {
	return &ChartHandler{
		service:      service,
		validate:     validate,
		logger:       infrastructure.WithComponent(logger, "chart_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the chart routes.
func (h *ChartHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{kind}", h.GetChart)
	return r
}

// GetChart handles GET /api/charts/{kind}. Filters apply through the same
// query parameters as the dataset views.
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	f := queryFilter(r)
	if err := h.validate.Struct(f); err != nil {
		h.errorHandler.HandleError(w, r, validation.ToAPIError(err))
		return
	}

	kind := chi.URLParam(r, "kind")

	var chart charts.Chart
	switch kind {
	case ChartBuildings:
		summary, err := h.service.Summary(r.Context(), f)
		if err != nil {
			h.errorHandler.HandleError(w, r, mapServiceError(err))
			return
		}
		chart = charts.BuildingBar(summary.TopBuildings, "Assets by Building")
	case ChartRooms:
		summary, err := h.service.Summary(r.Context(), f)
		if err != nil {
			h.errorHandler.HandleError(w, r, mapServiceError(err))
			return
		}
		chart = charts.RoomPie(summary.TopRooms, "Assets by Room")
	case ChartActive:
		summary, err := h.service.Summary(r.Context(), f)
		if err != nil {
			h.errorHandler.HandleError(w, r, mapServiceError(err))
			return
		}
		chart = charts.ActiveBar(summary.ActiveSplit)
	case ChartLocationTreemap:
		breakdown, err := h.service.Locations(r.Context(), f)
		if err != nil {
			h.errorHandler.HandleError(w, r, mapServiceError(err))
			return
		}
		chart = charts.LocationTreemap(breakdown, "Asset Footprint by Building")
	case ChartLocationSunburst:
		breakdown, err := h.service.Locations(r.Context(), f)
		if err != nil {
			h.errorHandler.HandleError(w, r, mapServiceError(err))
			return
		}
		chart = charts.LocationSunburst(breakdown, "Assets by Building and Room")
	case ChartAdditionsDaily:
		column := timelineColumn(r)
		tl, err := h.service.Timeline(r.Context(), f, column)
		if err != nil {
			h.errorHandler.HandleError(w, r, mapServiceError(err))
			return
		}
		chart = charts.DailyLine(tl, timelineTitle(column, "Day"))
	case ChartAdditionsMonthly:
		column := timelineColumn(r)
		tl, err := h.service.Timeline(r.Context(), f, column)
		if err != nil {
			h.errorHandler.HandleError(w, r, mapServiceError(err))
			return
		}
		chart = charts.MonthlyBar(tl, timelineTitle(column, "Month"))
	case ChartCost:
		values, err := h.service.CostValues(r.Context(), f)
		if err != nil {
			h.errorHandler.HandleError(w, r, mapServiceError(err))
			return
		}
		chart = charts.CostHistogram(values)
	default:
		h.errorHandler.HandleError(w, r, apierrors.NotFoundError("chart "+kind))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.Render(w); err != nil {
		infrastructure.WithError(h.logger, err).ErrorContext(r.Context(), "chart render failed",
			slog.String("kind", kind),
		)
	}
}

// timelineColumn reads the timeline column param, defaulting to Date Added.
func timelineColumn(r *http.Request) string {
	if column := r.URL.Query().Get("column"); column != "" {
		return column
	}
	return "Date Added"
}

// timelineTitle names a timeline chart after the bucketed column.
func timelineTitle(column, bucket string) string {
	switch column {
	case "Date Added":
		return "Assets Added per " + bucket
	case "Last Updated":
		return "Assets Updated per " + bucket
	}
	return column + " per " + bucket
}
