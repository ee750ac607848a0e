package services

import (
	"context"
	"runtime"
	"time"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	startTime time.Time
	dataset   *DatasetService
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Dataset   map[string]interface{} `json:"dataset,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version, buildTime string, dataset *DatasetService) *HealthService {
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		startTime: time.Now(),
		dataset:   dataset,
	}
}

// HealthCheck returns the overall service health. The service is healthy
// whether or not a dataset has been uploaded; dataset state is reported
// as information only.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(s.startTime).Seconds(),
		},
	}

	if s.dataset != nil {
		if info, err := s.dataset.Info(ctx); err == nil {
			status.Dataset = map[string]interface{}{
				"loaded":   true,
				"filename": info.Filename,
				"rows":     info.Rows,
			}
		} else {
			status.Dataset = map[string]interface{}{"loaded": false}
		}
	}
	return status
}

// ReadinessCheck reports whether the service can accept requests.
func (s *HealthService) ReadinessCheck(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"ready":     true,
		"timestamp": time.Now(),
	}
}

// Version returns build metadata.
func (s *HealthService) Version() map[string]string {
	return map[string]string{
		"version":    s.version,
		"build_time": s.buildTime,
	}
}
