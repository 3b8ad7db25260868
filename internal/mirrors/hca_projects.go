package mirrors

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/clevercanary/atlas-sync/internal/httpclient"
	"github.com/clevercanary/atlas-sync/internal/refresh"
)

const (
	// HCAProjectsName identifies the HCA data repository mirror
	HCAProjectsName = "hca-projects"

	// DefaultAzulURL is the base URL of the HCA data repository service
	DefaultAzulURL = "https://service.azul.data.humancellatlas.org"

	projectsPageSize = 100

	hcaProjectsNotReadyMessage = "DOI to HCA project ID mapping not initialized"
)

// primaryDataFormats are the file formats that count as primary sequencing data
var primaryDataFormats = map[string]bool{
	"fastq":    true,
	"fastq.gz": true,
	"bam":      true,
}

// ProjectInfo describes an HCA data repository project
type ProjectInfo struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	HasPrimaryData bool   `json:"hasPrimaryData"`
}

// ProjectsData is a snapshot of one catalog of the HCA data repository
type ProjectsData struct {
	Catalog string
	ByDOI   map[string]ProjectInfo
	ByID    map[string]ProjectInfo
}

// HCAProjects mirrors the projects of the latest HCA data repository catalog.
// A refresh is needed whenever the default catalog changes.
type HCAProjects struct {
	*refresh.Service[ProjectsData, string]
}

// NewHCAProjects creates the HCA projects mirror. An empty baseURL selects DefaultAzulURL.
// refresh.WithStore[ProjectsData, string] keeps the refresh info in another store.
func NewHCAProjects(client httpclient.Client, baseURL string, opts ...refresh.Option) (*HCAProjects, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if baseURL == "" {
		baseURL = DefaultAzulURL
	}

	opts = append([]refresh.Option{refresh.WithNotReadyMessage(hcaProjectsNotReadyMessage)}, opts...)
	svc, err := refresh.New[ProjectsData, string](HCAProjectsName, &azulSource{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil, opts...)
	if err != nil {
		return nil, err
	}
	return &HCAProjects{Service: svc}, nil
}

// ProjectInfoByDOI returns the project of the first DOI that matches one,
// or nil if none does
func (p *HCAProjects) ProjectInfoByDOI(ctx context.Context, dois []string) (*ProjectInfo, error) {
	data, err := p.GetData(ctx)
	if err != nil {
		return nil, err
	}
	for _, doi := range dois {
		if info, ok := data.ByDOI[NormalizeDOI(doi)]; ok {
			return &info, nil
		}
	}
	return nil, nil
}

// ProjectIDByDOI returns the ID of the project of the first matching DOI, or
// an empty string if none matches
func (p *HCAProjects) ProjectIDByDOI(ctx context.Context, dois []string) (string, error) {
	info, err := p.ProjectInfoByDOI(ctx, dois)
	if err != nil || info == nil {
		return "", err
	}
	return info.ID, nil
}

// ProjectInfoByID returns the project with the given ID, or nil if it is not in the catalog
func (p *HCAProjects) ProjectInfoByID(ctx context.Context, id string) (*ProjectInfo, error) {
	data, err := p.GetData(ctx)
	if err != nil {
		return nil, err
	}
	if info, ok := data.ByID[id]; ok {
		return &info, nil
	}
	return nil, nil
}

// azulSource fetches projects from the Azul index API
type azulSource struct {
	client  httpclient.Client
	baseURL string
}

// RefreshParams resolves the name of the current default catalog
func (s *azulSource) RefreshParams(ctx context.Context, _ *ProjectsData, _ *string) (string, error) {
	body, err := s.client.Get(ctx, s.baseURL+"/index/catalogs")
	if err != nil {
		return "", fmt.Errorf("failed to fetch HCA catalogs: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("invalid JSON in HCA catalogs response")
	}
	catalog := gjson.GetBytes(body, "default_catalog").String()
	if catalog == "" {
		return "", fmt.Errorf("HCA catalogs response has no default catalog")
	}
	return catalog, nil
}

// RefreshNeeded reports whether the snapshot is of a different catalog
func (*azulSource) RefreshNeeded(data *ProjectsData, catalog string) bool {
	return data == nil || data.Catalog != catalog
}

// Fetch pages through every project of the catalog
func (s *azulSource) Fetch(ctx context.Context, catalog string, _ *ProjectsData) (ProjectsData, error) {
	data := ProjectsData{
		Catalog: catalog,
		ByDOI:   map[string]ProjectInfo{},
		ByID:    map[string]ProjectInfo{},
	}

	next := fmt.Sprintf("%s/index/projects?catalog=%s&size=%d", s.baseURL, url.QueryEscape(catalog), projectsPageSize)
	pages := 0
	for next != "" {
		body, err := s.client.Get(ctx, next)
		if err != nil {
			return ProjectsData{}, fmt.Errorf("failed to fetch HCA projects page %d: %w", pages+1, err)
		}
		if !gjson.ValidBytes(body) {
			return ProjectsData{}, fmt.Errorf("invalid JSON in HCA projects page %d", pages+1)
		}
		pages++

		gjson.GetBytes(body, "hits").ForEach(func(_, hit gjson.Result) bool {
			addProjectHit(&data, hit)
			return true
		})
		next = gjson.GetBytes(body, "pagination.next").String()
	}

	slog.Debug("Loaded HCA projects", "catalog", catalog, "pages", pages, "projects", len(data.ByID))
	return data, nil
}

func addProjectHit(data *ProjectsData, hit gjson.Result) {
	hasPrimaryData := false
	hit.Get("fileTypeSummaries").ForEach(func(_, summary gjson.Result) bool {
		if primaryDataFormats[strings.ToLower(summary.Get("format").String())] {
			hasPrimaryData = true
			return false
		}
		return true
	})

	hit.Get("projects").ForEach(func(_, project gjson.Result) bool {
		info := ProjectInfo{
			ID:             project.Get("projectId").String(),
			Title:          project.Get("projectTitle").String(),
			HasPrimaryData: hasPrimaryData,
		}
		if info.ID == "" {
			return true
		}
		data.ByID[info.ID] = info
		project.Get("publications").ForEach(func(_, publication gjson.Result) bool {
			if doi := publication.Get("doi").String(); doi != "" {
				data.ByDOI[NormalizeDOI(doi)] = info
			}
			return true
		})
		return true
	})
}
