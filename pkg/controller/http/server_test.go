package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	controller "github.com/kelexine/winwatch/pkg/controller/http"
	"github.com/kelexine/winwatch/pkg/domain/model"
)

// mockDetectionUC is a mock implementation of DetectionUseCase
type mockDetectionUC struct {
	detectFunc func(ctx context.Context) (*model.DetectionResult, error)
	statusFunc func(ctx context.Context) (*model.LedgerStatus, error)
}

func (m *mockDetectionUC) Detect(ctx context.Context) (*model.DetectionResult, error) {
	if m.detectFunc != nil {
		return m.detectFunc(ctx)
	}
	return &model.DetectionResult{}, nil
}

func (m *mockDetectionUC) Status(ctx context.Context) (*model.LedgerStatus, error) {
	if m.statusFunc != nil {
		return m.statusFunc(ctx)
	}
	return &model.LedgerStatus{}, nil
}

func newTestServer(t *testing.T, uc *mockDetectionUC) *controller.Server {
	server, err := controller.NewServer(context.Background(), uc,
		controller.WithAddr("localhost:0"),
	)
	gt.NoError(t, err)
	return server
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, &mockDetectionUC{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)

	var status model.HealthStatus
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	gt.Equal(t, status.Status, "healthy")
	gt.Equal(t, status.Service, "winwatch")
	gt.True(t, status.Version != "")
}

func TestStatusEndpoint(t *testing.T) {
	lastCheck := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	uc := &mockDetectionUC{
		statusFunc: func(ctx context.Context) (*model.LedgerStatus, error) {
			return &model.LedgerStatus{
				TrackedBuilds: 12,
				CheckCount:    34,
				LastCheck:     lastCheck,
				ByVersion: map[model.VersionLabel]int{
					model.Version24H2: 12,
				},
			}, nil
		},
	}
	server := newTestServer(t, uc)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)

	var status model.LedgerStatus
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	gt.Equal(t, status.TrackedBuilds, 12)
	gt.Equal(t, status.CheckCount, 34)
	gt.True(t, status.LastCheck.Equal(lastCheck))
	gt.Equal(t, status.ByVersion[model.Version24H2], 12)
}

func TestTriggerEndpoint(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	uc := &mockDetectionUC{
		detectFunc: func(ctx context.Context) (*model.DetectionResult, error) {
			close(started)
			<-release
			return &model.DetectionResult{}, nil
		},
	}
	server := newTestServer(t, uc)

	req := httptest.NewRequest(http.MethodPost, "/api/detect", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusAccepted)

	var resp map[string]string
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	gt.Equal(t, resp["status"], "accepted")
	gt.True(t, resp["run_id"] != "")

	// Runs are serialized: a second trigger while one is active conflicts
	<-started
	w2 := httptest.NewRecorder()
	server.Handler.ServeHTTP(w2, httptest.NewRequest(http.MethodPost, "/api/detect", nil))
	gt.Equal(t, w2.Code, http.StatusConflict)

	close(release)
}
