package http

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"assetgauge/internal/infrastructure"
)

//go:embed web/index.html
var webFiles embed.FS

// DashboardHandler serves the single-page dashboard shell. All data on the
// page is fetched from the JSON API; the shell itself is static.
type DashboardHandler struct {
	tmpl    *template.Template
	version string
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(version string, logger *slog.Logger) (*DashboardHandler, error) {
	tmpl, err := template.ParseFS(webFiles, "web/index.html")
	if err != nil {
		return nil, err
	}
	return &DashboardHandler{
		tmpl:    tmpl,
		version: version,
		logger:  infrastructure.WithComponent(logger, "dashboard_handler"),
	}, nil
}

// ServeHTTP handles GET /.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Version string
	}{Version: h.version}

	if err := h.tmpl.Execute(w, data); err != nil {
		infrastructure.WithError(h.logger, err).ErrorContext(r.Context(), "dashboard render failed")
	}
}
