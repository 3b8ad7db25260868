package mirrors

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"

	"github.com/clevercanary/atlas-sync/internal/httpclient"
	"github.com/clevercanary/atlas-sync/internal/refresh"
)

const (
	// CellxGeneName identifies the CELLxGENE mirror
	CellxGeneName = "cellxgene"

	// DefaultCellxGeneURL is the base URL of the CELLxGENE curation API
	DefaultCellxGeneURL = "https://api.cellxgene.cziscience.com"

	// CellxGeneRefreshInterval is the age after which the CELLxGENE snapshot is refreshed
	CellxGeneRefreshInterval = 4 * time.Hour

	cellxgeneNotReadyMessage = "Cache of CELLxGENE collections and datasets not initialized"
)

// CollectionInfo describes a CELLxGENE collection
type CollectionInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Dataset describes a CELLxGENE dataset
type Dataset struct {
	ID           string `json:"datasetId"`
	CollectionID string `json:"collectionId"`
	Title        string `json:"title"`
	CellCount    int64  `json:"cellCount"`
}

// CellxGeneData is a snapshot of the CELLxGENE collections and datasets
type CellxGeneData struct {
	CollectionInfoByDOI    map[string]CollectionInfo
	CollectionInfoByID     map[string]CollectionInfo
	DatasetsByCollectionID map[string][]Dataset
	LastRefreshTime        time.Time
}

// CellxGene mirrors the CELLxGENE collections and datasets. The snapshot is
// refreshed once it is older than CellxGeneRefreshInterval.
type CellxGene struct {
	*refresh.Service[CellxGeneData, struct{}]
}

// NewCellxGene creates the CELLxGENE mirror. An empty baseURL selects
// DefaultCellxGeneURL; a nil clock selects the real clock.
// refresh.WithStore[CellxGeneData, struct{}] keeps the refresh info in another store.
func NewCellxGene(client httpclient.Client, baseURL string, clk clock.PassiveClock, opts ...refresh.Option) (*CellxGene, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if baseURL == "" {
		baseURL = DefaultCellxGeneURL
	}
	if clk == nil {
		clk = clock.RealClock{}
	}

	opts = append([]refresh.Option{
		refresh.WithNotReadyMessage(cellxgeneNotReadyMessage),
		refresh.WithClock(clk),
	}, opts...)
	svc, err := refresh.New[CellxGeneData, struct{}](CellxGeneName, &curationSource{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		clock:   clk,
	}, nil, opts...)
	if err != nil {
		return nil, err
	}
	return &CellxGene{Service: svc}, nil
}

// CollectionInfoByDOI returns the collection of the first DOI that matches
// one, or nil if none does
func (c *CellxGene) CollectionInfoByDOI(ctx context.Context, dois []string) (*CollectionInfo, error) {
	data, err := c.GetData(ctx)
	if err != nil {
		return nil, err
	}
	for _, doi := range dois {
		if info, ok := data.CollectionInfoByDOI[NormalizeDOI(doi)]; ok {
			return &info, nil
		}
	}
	return nil, nil
}

// CollectionIDByDOI returns the ID of the collection of the first matching
// DOI, or an empty string if none matches
func (c *CellxGene) CollectionIDByDOI(ctx context.Context, dois []string) (string, error) {
	info, err := c.CollectionInfoByDOI(ctx, dois)
	if err != nil || info == nil {
		return "", err
	}
	return info.ID, nil
}

// CollectionInfoByID returns the collection with the given ID, or nil if it does not exist
func (c *CellxGene) CollectionInfoByID(ctx context.Context, id string) (*CollectionInfo, error) {
	data, err := c.GetData(ctx)
	if err != nil {
		return nil, err
	}
	if info, ok := data.CollectionInfoByID[id]; ok {
		return &info, nil
	}
	return nil, nil
}

// DatasetsByCollectionID returns the datasets of a collection
func (c *CellxGene) DatasetsByCollectionID(ctx context.Context, collectionID string) ([]Dataset, error) {
	data, err := c.GetData(ctx)
	if err != nil {
		return nil, err
	}
	return data.DatasetsByCollectionID[collectionID], nil
}

// curationSource fetches from the CELLxGENE curation API
type curationSource struct {
	client  httpclient.Client
	baseURL string
	clock   clock.PassiveClock
}

func (*curationSource) RefreshParams(context.Context, *CellxGeneData, *struct{}) (struct{}, error) {
	return struct{}{}, nil
}

// RefreshNeeded reports whether the snapshot is missing or older than the refresh interval
func (s *curationSource) RefreshNeeded(data *CellxGeneData, _ struct{}) bool {
	if data == nil {
		return true
	}
	return s.clock.Since(data.LastRefreshTime) > CellxGeneRefreshInterval
}

// Fetch loads collections and datasets concurrently. Either failing fails the
// whole refresh.
func (s *curationSource) Fetch(ctx context.Context, _ struct{}, _ *CellxGeneData) (CellxGeneData, error) {
	data := CellxGeneData{LastRefreshTime: s.clock.Now()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		byDOI, byID, err := s.fetchCollections(gctx)
		if err != nil {
			return err
		}
		data.CollectionInfoByDOI = byDOI
		data.CollectionInfoByID = byID
		return nil
	})
	g.Go(func() error {
		datasets, err := s.fetchDatasets(gctx)
		if err != nil {
			return err
		}
		data.DatasetsByCollectionID = datasets
		return nil
	})
	if err := g.Wait(); err != nil {
		return CellxGeneData{}, err
	}
	return data, nil
}

func (s *curationSource) fetchCollections(ctx context.Context) (map[string]CollectionInfo, map[string]CollectionInfo, error) {
	slog.Info("Requesting CELLxGENE collections")
	body, err := s.client.Get(ctx, s.baseURL+"/curation/v1/collections")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch CELLxGENE collections: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, nil, fmt.Errorf("invalid JSON in CELLxGENE collections response")
	}

	byDOI := map[string]CollectionInfo{}
	byID := map[string]CollectionInfo{}
	gjson.ParseBytes(body).ForEach(func(_, collection gjson.Result) bool {
		info := CollectionInfo{
			ID:    collection.Get("collection_id").String(),
			Title: collection.Get("name").String(),
		}
		byID[info.ID] = info
		if doi := collection.Get("doi").String(); doi != "" {
			byDOI[NormalizeDOI(doi)] = info
		}
		return true
	})
	slog.Info("Loaded CELLxGENE collections", "count", len(byID))
	return byDOI, byID, nil
}

func (s *curationSource) fetchDatasets(ctx context.Context) (map[string][]Dataset, error) {
	slog.Info("Requesting CELLxGENE datasets")
	body, err := s.client.Get(ctx, s.baseURL+"/curation/v1/datasets")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch CELLxGENE datasets: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON in CELLxGENE datasets response")
	}

	byCollection := map[string][]Dataset{}
	count := 0
	gjson.ParseBytes(body).ForEach(func(_, dataset gjson.Result) bool {
		d := Dataset{
			ID:           dataset.Get("dataset_id").String(),
			CollectionID: dataset.Get("collection_id").String(),
			Title:        dataset.Get("title").String(),
			CellCount:    dataset.Get("cell_count").Int(),
		}
		byCollection[d.CollectionID] = append(byCollection[d.CollectionID], d)
		count++
		return true
	})
	slog.Info("Loaded CELLxGENE datasets", "count", count)
	return byCollection, nil
}
