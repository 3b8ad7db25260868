// Package v1 provides the operator REST API handlers.
package v1

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clevercanary/atlas-sync/internal/api/common"
	"github.com/clevercanary/atlas-sync/internal/entrysheets"
	"github.com/clevercanary/atlas-sync/internal/mirrors"
	"github.com/clevercanary/atlas-sync/internal/status"
)

// MirrorSet is the view of the mirrors used by the API
type MirrorSet interface {
	Get(name string) (mirrors.Mirror, bool)
	Statuses() map[string]status.RefreshStatus
	AllReady() bool
}

// ProjectLookup finds HCA projects by DOI
type ProjectLookup interface {
	ProjectInfoByDOI(ctx context.Context, dois []string) (*mirrors.ProjectInfo, error)
}

// CollectionLookup finds CELLxGENE collections by DOI
type CollectionLookup interface {
	CollectionInfoByDOI(ctx context.Context, dois []string) (*mirrors.CollectionInfo, error)
}

// EntrySheetSyncer starts background entry sheet syncs
type EntrySheetSyncer interface {
	StartAtlasSync(ctx context.Context, atlasID uuid.UUID) (*entrysheets.Handle, error)
	StartSingleSync(ctx context.Context, atlasID, validationID uuid.UUID) (*entrysheets.Handle, error)
}

// JobStatuses lists the status of background jobs
type JobStatuses interface {
	ListSyncStatuses(ctx context.Context) (map[string]*status.SyncStatus, error)
}

// JobTrigger requests a run of the validations job
type JobTrigger interface {
	Fire()
}

// MirrorResponse is the status of one mirror
type MirrorResponse struct {
	Name string `json:"name"`
	status.RefreshStatus
}

// MirrorListResponse lists the mirrors
type MirrorListResponse struct {
	Mirrors []MirrorResponse `json:"mirrors"`
}

// PublicationResponse is the result of a DOI lookup
type PublicationResponse struct {
	DOI                 string                  `json:"doi"`
	HCAProject          *mirrors.ProjectInfo    `json:"hcaProject"`
	CellxGeneCollection *mirrors.CollectionInfo `json:"cellxgeneCollection"`
}

// AcceptedResponse is returned when background work was started
type AcceptedResponse struct {
	Message string `json:"message"`
}

// JobListResponse lists the background jobs
type JobListResponse struct {
	Jobs map[string]*status.SyncStatus `json:"jobs"`
}

// Routes holds the dependencies of the operator API
type Routes struct {
	mirrors     MirrorSet
	projects    ProjectLookup
	collections CollectionLookup
	entrySheets EntrySheetSyncer
	jobs        JobStatuses
	trigger     JobTrigger
}

// RoutesOption configures Routes
type RoutesOption func(*Routes)

// WithLookups enables the DOI lookup endpoint
func WithLookups(projects ProjectLookup, collections CollectionLookup) RoutesOption {
	return func(r *Routes) {
		r.projects = projects
		r.collections = collections
	}
}

// WithEntrySheets enables the entry sheet sync endpoints
func WithEntrySheets(syncer EntrySheetSyncer) RoutesOption {
	return func(r *Routes) {
		r.entrySheets = syncer
	}
}

// WithJobs enables the job endpoints
func WithJobs(jobs JobStatuses, trigger JobTrigger) RoutesOption {
	return func(r *Routes) {
		r.jobs = jobs
		r.trigger = trigger
	}
}

// NewRoutes creates a new Routes instance
func NewRoutes(mirrorSet MirrorSet, opts ...RoutesOption) *Routes {
	r := &Routes{mirrors: mirrorSet}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Router creates the router for the operator API
func Router(routes *Routes) http.Handler {
	r := chi.NewRouter()

	r.Get("/mirrors", routes.listMirrors)
	r.Post("/mirrors/{mirrorName}/refresh", routes.refreshMirror)

	if routes.projects != nil && routes.collections != nil {
		r.Get("/publications", routes.lookupPublication)
	}

	if routes.entrySheets != nil {
		r.Post("/atlases/{atlasId}/entry-sheet-validations/sync", routes.syncAtlasEntrySheets)
		r.Post("/atlases/{atlasId}/entry-sheet-validations/{validationId}/sync", routes.syncEntrySheet)
	}

	if routes.jobs != nil {
		r.Get("/jobs", routes.listJobs)
		if routes.trigger != nil {
			r.Post("/jobs/validations/run", routes.runValidations)
		}
	}

	return r
}

// HealthRouter creates a router for health check endpoints
func HealthRouter(mirrorSet MirrorSet) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/readiness", readinessHandler(mirrorSet))
	r.Get("/version", versionHandler)

	return r
}

// listMirrors handles GET /v1/mirrors
func (rr *Routes) listMirrors(w http.ResponseWriter, _ *http.Request) {
	statuses := rr.mirrors.Statuses()
	names := make([]string, 0, len(statuses))
	for name := range statuses {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := MirrorListResponse{Mirrors: make([]MirrorResponse, 0, len(names))}
	for _, name := range names {
		resp.Mirrors = append(resp.Mirrors, MirrorResponse{Name: name, RefreshStatus: statuses[name]})
	}
	common.WriteJSONResponse(w, resp, http.StatusOK)
}

// refreshMirror handles POST /v1/mirrors/{mirrorName}/refresh
func (rr *Routes) refreshMirror(w http.ResponseWriter, r *http.Request) {
	name, err := common.GetAndValidateURLParam(r, "mirrorName")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	mirror, ok := rr.mirrors.Get(name)
	if !ok {
		common.WriteErrorResponse(w, "Mirror not found: "+name, http.StatusNotFound)
		return
	}

	mirror.ForceRefresh(r.Context())
	slog.InfoContext(r.Context(), "Forced mirror refresh", "mirror", name)
	common.WriteJSONResponse(w, AcceptedResponse{Message: "Refresh started"}, http.StatusAccepted)
}

// lookupPublication handles GET /v1/publications?doi=...
func (rr *Routes) lookupPublication(w http.ResponseWriter, r *http.Request) {
	doi := strings.TrimSpace(r.URL.Query().Get("doi"))
	if doi == "" {
		common.WriteErrorResponse(w, "doi query parameter is required", http.StatusBadRequest)
		return
	}
	dois := []string{doi}

	project, err := rr.projects.ProjectInfoByDOI(r.Context(), dois)
	if err != nil {
		common.WriteServiceError(w, err, "Failed to look up HCA project")
		return
	}
	collection, err := rr.collections.CollectionInfoByDOI(r.Context(), dois)
	if err != nil {
		common.WriteServiceError(w, err, "Failed to look up CELLxGENE collection")
		return
	}

	common.WriteJSONResponse(w, PublicationResponse{
		DOI:                 mirrors.NormalizeDOI(doi),
		HCAProject:          project,
		CellxGeneCollection: collection,
	}, http.StatusOK)
}

// syncAtlasEntrySheets handles POST /v1/atlases/{atlasId}/entry-sheet-validations/sync
func (rr *Routes) syncAtlasEntrySheets(w http.ResponseWriter, r *http.Request) {
	atlasID, err := common.GetUUIDParam(r, "atlasId")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := rr.entrySheets.StartAtlasSync(r.Context(), atlasID); err != nil {
		writeEntrySheetError(w, r, err)
		return
	}
	common.WriteJSONResponse(w, AcceptedResponse{Message: "Entry sheet sync started"}, http.StatusAccepted)
}

// syncEntrySheet handles POST /v1/atlases/{atlasId}/entry-sheet-validations/{validationId}/sync
func (rr *Routes) syncEntrySheet(w http.ResponseWriter, r *http.Request) {
	atlasID, err := common.GetUUIDParam(r, "atlasId")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	validationID, err := common.GetUUIDParam(r, "validationId")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := rr.entrySheets.StartSingleSync(r.Context(), atlasID, validationID); err != nil {
		writeEntrySheetError(w, r, err)
		return
	}
	common.WriteJSONResponse(w, AcceptedResponse{Message: "Entry sheet sync started"}, http.StatusAccepted)
}

func writeEntrySheetError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, entrysheets.ErrNotFound) {
		common.WriteErrorResponse(w, err.Error(), http.StatusNotFound)
		return
	}
	slog.ErrorContext(r.Context(), "Failed to start entry sheet sync", "error", err)
	common.WriteErrorResponse(w, "Failed to start entry sheet sync", http.StatusInternalServerError)
}

// listJobs handles GET /v1/jobs
func (rr *Routes) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := rr.jobs.ListSyncStatuses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list sync jobs", "error", err)
		common.WriteErrorResponse(w, "Failed to list sync jobs", http.StatusInternalServerError)
		return
	}
	common.WriteJSONResponse(w, JobListResponse{Jobs: jobs}, http.StatusOK)
}

// runValidations handles POST /v1/jobs/validations/run
func (rr *Routes) runValidations(w http.ResponseWriter, _ *http.Request) {
	rr.trigger.Fire()
	common.WriteJSONResponse(w, AcceptedResponse{Message: "Validations job requested"}, http.StatusAccepted)
}
