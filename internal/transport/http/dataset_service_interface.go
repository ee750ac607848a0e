package http

import (
	"context"
	"io"

	"assetgauge/internal/analytics"
	"assetgauge/internal/dataset"
	"assetgauge/internal/services"
)

// DatasetServiceInterface is the contract the dataset handlers depend on.
// Narrowing to an interface keeps the handlers testable with mocks.
type DatasetServiceInterface interface {
	Load(ctx context.Context, r io.Reader, filename string) (services.DatasetInfo, error)
	Info(ctx context.Context) (services.DatasetInfo, error)
	Filters(ctx context.Context) (services.FilterOptions, error)
	Summary(ctx context.Context, f dataset.Filter) (analytics.Summary, error)
	Locations(ctx context.Context, f dataset.Filter) (analytics.LocationBreakdown, error)
	Timeline(ctx context.Context, f dataset.Filter, column string) (analytics.Timeline, error)
	Financial(ctx context.Context, f dataset.Filter) (analytics.FinancialSummary, error)
	CostValues(ctx context.Context, f dataset.Filter) ([]float64, error)
	Table(ctx context.Context, f dataset.Filter, columns []string) (services.TableView, error)
	Export(ctx context.Context, w io.Writer, f dataset.Filter, columns []string, format string) error
}
