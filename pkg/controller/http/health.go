package http

import (
	"net/http"

	"github.com/kelexine/winwatch/pkg/domain/model"
	"github.com/kelexine/winwatch/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "healthy",
		Service: "winwatch",
		Version: types.Version,
	}

	writeJSON(w, http.StatusOK, status)
}
