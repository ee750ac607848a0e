package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetgauge/internal/config"
	"assetgauge/internal/dataset"
)

const serviceCSV = `Asset ID,Company,Building,Room Name,Status,Active,Date Added,Cost
A-001,Acme,HQ,Server Room,Deployed,Yes,2024-01-15,1000
A-002,Acme,HQ,Lobby,Deployed,No,2024-01-20,200
A-003,Globex,Annex,Lab 1,Stored,Yes,2024-02-05,500
`

type captureNotifier struct {
	mu    sync.Mutex
	infos []DatasetInfo
}

func (n *captureNotifier) NotifyDatasetReplaced(info DatasetInfo) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, info)
}

func testConfig() *config.Config {
	return &config.Config{Upload: config.UploadConfig{MaxBytes: 1 << 20, TopN: 10}}
}

func newTestService(t *testing.T) (*DatasetService, *captureNotifier) {
	t.Helper()
	notifier := &captureNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewDatasetService(testConfig(), logger, nil, notifier)
	return svc, notifier
}

func loadService(t *testing.T) *DatasetService {
	t.Helper()
	svc, _ := newTestService(t)
	_, err := svc.Load(context.Background(), strings.NewReader(serviceCSV), "assets.csv")
	require.NoError(t, err)
	return svc
}

func TestDatasetService_Load(t *testing.T) {
	svc, notifier := newTestService(t)

	info, err := svc.Load(context.Background(), strings.NewReader(serviceCSV), "assets.csv")
	require.NoError(t, err)

	assert.Equal(t, "assets.csv", info.Filename)
	assert.Equal(t, 3, info.Rows)
	assert.Len(t, info.Columns, 8)
	assert.Equal(t, "date", info.Columns[6].Kind)
	assert.Equal(t, "number", info.Columns[7].Kind)

	require.Len(t, notifier.infos, 1)
	assert.Equal(t, 3, notifier.infos[0].Rows)
}

func TestDatasetService_Load_ReplacesPrevious(t *testing.T) {
	svc := loadService(t)

	_, err := svc.Load(context.Background(), strings.NewReader("Asset ID\nB-1\n"), "other.csv")
	require.NoError(t, err)

	info, err := svc.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "other.csv", info.Filename)
	assert.Equal(t, 1, info.Rows)
}

func TestDatasetService_Load_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		filename string
		wantErr  error
	}{
		{"unsupported extension", "a,b\n1,2\n", "assets.pdf", ErrUnsupportedFormat},
		{"empty file", "", "assets.csv", ErrEmptyDataset},
		{"header only", "Asset ID,Company\n", "assets.csv", ErrEmptyDataset},
		{"ragged row", "A,B\n1,2,3\n", "assets.csv", ErrMalformedDataset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, notifier := newTestService(t)
			_, err := svc.Load(context.Background(), strings.NewReader(tt.content), tt.filename)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, notifier.infos)
		})
	}
}

func TestDatasetService_NoDataset(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Info(ctx)
	assert.ErrorIs(t, err, ErrNoDataset)
	_, err = svc.Summary(ctx, dataset.Filter{})
	assert.ErrorIs(t, err, ErrNoDataset)
	_, err = svc.Table(ctx, dataset.Filter{}, nil)
	assert.ErrorIs(t, err, ErrNoDataset)
	err = svc.Export(ctx, io.Discard, dataset.Filter{}, nil, FormatCSV)
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestDatasetService_Filters(t *testing.T) {
	svc := loadService(t)

	opts, err := svc.Filters(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Acme", "Globex"}, opts.Columns["Company"])
	assert.Equal(t, []string{"Annex", "HQ"}, opts.Columns["Building"])
	assert.Equal(t, []string{"No", "Yes"}, opts.Columns["Active"])
}

func TestDatasetService_Summary(t *testing.T) {
	svc := loadService(t)

	s, err := svc.Summary(context.Background(), dataset.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalAssets)
	assert.Equal(t, 2, s.ActiveAssets)

	s, err = svc.Summary(context.Background(), dataset.Filter{Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalAssets)
}

func TestDatasetService_Timeline(t *testing.T) {
	svc := loadService(t)

	tl, err := svc.Timeline(context.Background(), dataset.Filter{}, "Date Added")
	require.NoError(t, err)
	assert.Len(t, tl.Daily, 3)

	_, err = svc.Timeline(context.Background(), dataset.Filter{}, "Asset ID")
	assert.ErrorIs(t, err, ErrColumnNotFound)
	_, err = svc.Timeline(context.Background(), dataset.Filter{}, "Warranty End Date")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestDatasetService_Table(t *testing.T) {
	svc := loadService(t)

	view, err := svc.Table(context.Background(), dataset.Filter{Active: "Yes"}, []string{"Asset ID", "Building"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Asset ID", "Building"}, view.Columns)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, [][]string{{"A-001", "HQ"}, {"A-003", "Annex"}}, view.Rows)
}

func TestDatasetService_Table_UnknownColumn(t *testing.T) {
	svc := loadService(t)
	_, err := svc.Table(context.Background(), dataset.Filter{}, []string{"Serial #"})
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestDatasetService_Export_RoundTrip(t *testing.T) {
	svc := loadService(t)

	var buf bytes.Buffer
	err := svc.Export(context.Background(), &buf, dataset.Filter{Company: "Acme"}, nil, FormatCSV)
	require.NoError(t, err)

	reparsed, err := dataset.ParseCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, reparsed.NumRows())

	expected, err := svc.Table(context.Background(), dataset.Filter{Company: "Acme"}, nil)
	require.NoError(t, err)
	assert.Equal(t, expected.Rows, reparsed.Records())
}

func TestDatasetService_Export_UnsupportedFormat(t *testing.T) {
	svc := loadService(t)
	err := svc.Export(context.Background(), io.Discard, dataset.Filter{}, nil, "parquet")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDatasetService_ConcurrentReadsDuringLoad(t *testing.T) {
	svc := loadService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := svc.Summary(ctx, dataset.Filter{}); err != nil {
					assert.ErrorIs(t, err, ErrNoDataset)
				}
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := svc.Load(ctx, strings.NewReader(serviceCSV), "assets.csv")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
