package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"assetgauge/internal/dataset"
	apierrors "assetgauge/internal/errors"
	"assetgauge/internal/exporter"
	"assetgauge/internal/infrastructure"
	"assetgauge/internal/services"
	"assetgauge/internal/validation"
)

// uploadFieldName is the multipart form field carrying the dataset file.
const uploadFieldName = "file"

// DatasetHandler handles dataset upload, view and export requests.
type DatasetHandler struct {
	service      DatasetServiceInterface
	validate     *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	maxUpload    int64
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(service DatasetServiceInterface, validate *validator.Validate, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUpload int64) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		validate:     validate,
		logger:       infrastructure.WithComponent(logger, "dataset_handler"),
		errorHandler: errorHandler,
		maxUpload:    maxUpload,
	}
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Upload)
	r.Get("/", h.GetInfo)
	r.Get("/filters", h.GetFilters)
	r.Get("/summary", h.GetSummary)
	r.Get("/locations", h.GetLocations)
	r.Get("/timeline", h.GetTimeline)
	r.Get("/financial", h.GetFinancial)
	r.Get("/table", h.GetTable)
	r.Get("/export", h.Export)

	return r
}

// Upload handles POST /api/dataset. The uploaded file replaces the
// session dataset.
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(uploadFieldName, "multipart file field is required"))
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "dataset upload received",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
	)

	info, err := h.service.Load(r.Context(), file, header.Filename)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, info)
}

// GetInfo handles GET /api/dataset.
func (h *DatasetHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Info(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, info)
}

// GetFilters handles GET /api/dataset/filters.
func (h *DatasetHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Filters(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, opts)
}

// GetSummary handles GET /api/dataset/summary.
func (h *DatasetHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	f, err := h.filterFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, summary)
}

// GetLocations handles GET /api/dataset/locations.
func (h *DatasetHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	f, err := h.filterFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	breakdown, err := h.service.Locations(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, breakdown)
}

// timelineParams are the query parameters of the timeline view.
type timelineParams struct {
	Column string `json:"column" validate:"required,datecolumn"`
}

// GetTimeline handles GET /api/dataset/timeline?column=Date+Added.
func (h *DatasetHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	f, err := h.filterFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	params := timelineParams{Column: r.URL.Query().Get("column")}
	if params.Column == "" {
		params.Column = "Date Added"
	}
	if err := h.validate.Struct(params); err != nil {
		h.errorHandler.HandleError(w, r, validation.ToAPIError(err))
		return
	}

	timeline, err := h.service.Timeline(r.Context(), f, params.Column)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, timeline)
}

// GetFinancial handles GET /api/dataset/financial.
func (h *DatasetHandler) GetFinancial(w http.ResponseWriter, r *http.Request) {
	f, err := h.filterFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Financial(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, summary)
}

// GetTable handles GET /api/dataset/table with optional column projection.
func (h *DatasetHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	f, err := h.filterFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.Table(r.Context(), f, columnsFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, view)
}

// exportParams are the query parameters of the export endpoint.
type exportParams struct {
	Format string `json:"format" validate:"required,exportformat"`
}

// Export handles GET /api/dataset/export?format=csv|xlsx, streaming the
// filtered table as an attachment.
func (h *DatasetHandler) Export(w http.ResponseWriter, r *http.Request) {
	f, err := h.filterFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	params := exportParams{Format: r.URL.Query().Get("format")}
	if params.Format == "" {
		params.Format = services.FormatCSV
	}
	if err := h.validate.Struct(params); err != nil {
		h.errorHandler.HandleError(w, r, validation.ToAPIError(err))
		return
	}

	contentType := "text/csv; charset=utf-8"
	if params.Format == services.FormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	// Check for a dataset first so a missing upload yields a clean 404
	// instead of a truncated download.
	if _, err := h.service.Info(r.Context()); err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	name := exporter.Filename(params.Format, time.Now())
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if err := h.service.Export(r.Context(), w, f, columnsFromQuery(r), params.Format); err != nil {
		infrastructure.WithError(h.logger, err).ErrorContext(r.Context(), "export failed",
			slog.String("format", params.Format),
		)
		return
	}
	h.logger.InfoContext(r.Context(), "export streamed", slog.String("filename", name))
}

// queryFilter decodes the shared filter query params without validating.
func queryFilter(r *http.Request) dataset.Filter {
	q := r.URL.Query()
	return dataset.Filter{
		Company:  q.Get("company"),
		Building: q.Get("building"),
		Room:     q.Get("room"),
		Status:   q.Get("status"),
		Active:   q.Get("active"),
		Search:   q.Get("search"),
	}
}

// filterFromQuery decodes and validates the shared filter query params.
func (h *DatasetHandler) filterFromQuery(r *http.Request) (dataset.Filter, error) {
	f := queryFilter(r)
	if err := h.validate.Struct(f); err != nil {
		return dataset.Filter{}, validation.ToAPIError(err)
	}
	return f, nil
}

// columnsFromQuery reads the repeatable columns parameter, also accepting
// a single comma-separated value.
func columnsFromQuery(r *http.Request) []string {
	raw := r.URL.Query()["columns"]
	var columns []string
	for _, entry := range raw {
		for _, name := range strings.Split(entry, ",") {
			if name = strings.TrimSpace(name); name != "" {
				columns = append(columns, name)
			}
		}
	}
	return columns
}

// mapServiceError maps dataset service errors to API errors.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrNoDataset):
		return apierrors.ErrNoDataset
	case errors.Is(err, services.ErrEmptyDataset):
		return apierrors.ErrEmptyDataset
	case errors.Is(err, services.ErrColumnNotFound):
		return apierrors.NewWithDetails(http.StatusNotFound, "COLUMN_NOT_FOUND", "Column not present in dataset", err.Error())
	case errors.Is(err, services.ErrUnsupportedFormat):
		return apierrors.ErrUnsupportedFormat
	case errors.Is(err, services.ErrMalformedDataset):
		return apierrors.MalformedUploadError(err)
	default:
		return err
	}
}
