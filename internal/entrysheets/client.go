package entrysheets

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/clevercanary/atlas-sync/internal/httpclient"
)

//go:embed response_schema.json
var responseSchemaJSON []byte

const responseSchemaURL = "https://atlas-sync/schemas/validation-tools-response.json"

var responseSchema = mustCompileResponseSchema()

func mustCompileResponseSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(responseSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid validation tools response schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(responseSchemaURL, doc); err != nil {
		panic(fmt.Sprintf("failed to add validation tools response schema: %v", err))
	}
	return compiler.MustCompile(responseSchemaURL)
}

// Client fetches entry sheet validation reports
//
//go:generate mockgen -destination=mocks/mock_client.go -package=mocks github.com/clevercanary/atlas-sync/internal/entrysheets Client
type Client interface {
	// ValidateSheet returns the report of the sheet. A logical failure is
	// returned as a response with Error set, not as an error.
	ValidateSheet(ctx context.Context, sheetID string) (*Response, error)
}

// ToolsClient calls the HCA validation tools over HTTP
type ToolsClient struct {
	http httpclient.Client
	url  string
}

// NewToolsClient creates a client posting to the validation tools endpoint at url
func NewToolsClient(client httpclient.Client, url string) (*ToolsClient, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if url == "" {
		return nil, fmt.Errorf("validation tools URL is required")
	}
	return &ToolsClient{http: client, url: url}, nil
}

type validateRequest struct {
	SheetID string `json:"sheet_id"`
}

// ValidateSheet posts the sheet id and parses the response. The tools report
// some failures with a non-2xx status and an error body, so an HTTP error
// whose body carries an error message is returned as that response. Any other
// HTTP error is returned as is.
func (c *ToolsClient) ValidateSheet(ctx context.Context, sheetID string) (*Response, error) {
	body, err := c.http.PostJSON(ctx, c.url, validateRequest{SheetID: sheetID})
	if err != nil {
		var httpErr *httpclient.HTTPError
		if !errors.As(err, &httpErr) || len(httpErr.Body) == 0 {
			return nil, err
		}
		resp, parseErr := ParseResponse(httpErr.Body)
		if parseErr != nil || resp.Error == nil {
			return nil, err
		}
		return resp, nil
	}
	return ParseResponse(body)
}

// ParseResponse validates body against the response schema and decodes it
func ParseResponse(body []byte) (*Response, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, &UnexpectedResponseError{Detail: err.Error()}
	}
	if err := responseSchema.Validate(doc); err != nil {
		return nil, &UnexpectedResponseError{Detail: err.Error()}
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &UnexpectedResponseError{Detail: err.Error()}
	}
	return &resp, nil
}
