// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package repo fetches collection records from the repository API.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/google/uuid"

	"github.com/pdiddy/handle-lookup/internal/httputil"
	"github.com/pdiddy/handle-lookup/pkg/types"
)

// FetchError wraps any failure to retrieve or decode the record list.
type FetchError struct {
	// RequestID is the X-Request-Id sent with the request, if one was sent.
	RequestID string
	Err       error
}

func (e *FetchError) Error() string {
	if e.RequestID == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (request %s)", e.Err, e.RequestID)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client issues the single records request.
type Client struct {
	HTTP *http.Client
	// Warn receives notices about skipped array elements. Nil means stderr.
	Warn io.Writer
}

// NewClient returns a Client whose HTTP client enforces cfg.Timeout.
func NewClient(cfg types.HTTPConfig) *Client {
	return &Client{HTTP: &http.Client{Timeout: cfg.Timeout}}
}

// Response is the decoded record list.
type Response struct {
	// Records holds the object elements of the array, in response order.
	Records []types.Record
	// Elements is the length of the array the API sent, including
	// elements dropped because they were not objects.
	Elements int
}

// Dropped returns the number of array elements that were not objects.
func (r *Response) Dropped() int { return r.Elements - len(r.Records) }

// FetchRecords requests every record of the configured collection and
// returns the JSON array elements in response order. Errors are *FetchError.
func (c *Client) FetchRecords(ctx context.Context, cfg types.LookupConfig) (*Response, error) {
	reqURL, err := recordsURL(cfg)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &FetchError{RequestID: requestID, Err: fmt.Errorf("repository API request: %w", err)}
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(resp); err != nil {
		return nil, &FetchError{RequestID: requestID, Err: err}
	}

	var body any
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&body); err != nil {
		return nil, &FetchError{RequestID: requestID, Err: fmt.Errorf("parsing repository API response: %w", err)}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &FetchError{RequestID: requestID, Err: fmt.Errorf("parsing repository API response: unexpected data after top-level JSON value")}
	}
	items, ok := body.([]any)
	if !ok {
		return nil, &FetchError{
			RequestID: requestID,
			Err:       fmt.Errorf("unexpected API response (expected JSON array), got %s", jsonType(body)),
		}
	}

	records := make([]types.Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			fmt.Fprintf(c.warn(), "warning: skipping response element %d: expected object, got %s\n", i, jsonType(item))
			continue
		}
		records = append(records, types.Record(obj))
	}
	return &Response{Records: records, Elements: len(items)}, nil
}

func (c *Client) warn() io.Writer {
	if c.Warn != nil {
		return c.Warn
	}
	return os.Stderr
}

// recordsURL adds the collection query parameters to the endpoint, keeping
// any parameters the endpoint already carries. api_key is omitted entirely
// when no key is configured. cfg.RecordType is sent as given; the config
// resolver supplies its default.
func recordsURL(cfg types.LookupConfig) (string, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint %q: %w", cfg.Endpoint, err)
	}

	params := u.Query()
	params.Set("sip_uuid", cfg.SIPUUID)
	params.Set("type", cfg.RecordType)
	if cfg.HasAPIKey() {
		params.Set("api_key", cfg.APIKey)
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// jsonType names the JSON type of a value produced by encoding/json.
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
