package v1

import (
	"net/http"

	"github.com/clevercanary/atlas-sync/internal/api/common"
	"github.com/clevercanary/atlas-sync/internal/versions"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// healthHandler handles GET /health
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, HealthResponse{Status: "healthy"}, http.StatusOK)
}

// readinessHandler handles GET /readiness. The service is ready once every
// mirror has produced a snapshot.
func readinessHandler(mirrorSet MirrorSet) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if !mirrorSet.AllReady() {
			common.WriteErrorResponse(w, "Mirrors not ready", http.StatusServiceUnavailable)
			return
		}
		common.WriteJSONResponse(w, HealthResponse{Status: "ready"}, http.StatusOK)
	}
}

// versionHandler handles GET /version
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, versions.GetVersionInfo(), http.StatusOK)
}
