package aidebt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultAPIURL = "https://api.regrada.com"

// Client is the HTTP client for the AI debt governance API
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBaseURL points the client at another deployment
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a new API client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultAPIURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TriggerScanRequest queues a scan of one repository, or of every active
// repository when RepositoryID is empty.
type TriggerScanRequest struct {
	RepositoryID string   `json:"repository_id,omitempty"`
	ScanType     ScanType `json:"scan_type,omitempty"`
	Ref          string   `json:"ref,omitempty"`
	PRNumber     int      `json:"pr_number,omitempty"`
}

// QueuedScan identifies one queued scan
type QueuedScan struct {
	ScanID       string `json:"scan_id"`
	RepositoryID string `json:"repository_id"`
}

// TriggerResult reports the scans a trigger queued. Success is false when
// only some of them could be queued.
type TriggerResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Queued  int          `json:"queued"`
	Failed  int          `json:"failed"`
	Scans   []QueuedScan `json:"scans"`
}

// ScanListOptions filters ListScans
type ScanListOptions struct {
	RepositoryID string
	Status       ScanStatus
	Limit        int
	Offset       int
}

// TriggerScan queues scans. A partial failure returns the result without an error.
func (c *Client) TriggerScan(ctx context.Context, req TriggerScanRequest) (*TriggerResult, error) {
	var result TriggerResult
	if err := c.do(ctx, http.MethodPost, "/v1/scans", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetScan retrieves one scan
func (c *Client) GetScan(ctx context.Context, scanID string) (*Scan, error) {
	var scan Scan
	if err := c.do(ctx, http.MethodGet, "/v1/scans/"+url.PathEscape(scanID), nil, nil, &scan); err != nil {
		return nil, err
	}
	return &scan, nil
}

// ListScans lists scans newest first
func (c *Client) ListScans(ctx context.Context, opts ScanListOptions) ([]*Scan, error) {
	q := url.Values{}
	if opts.RepositoryID != "" {
		q.Set("repository_id", opts.RepositoryID)
	}
	if opts.Status != "" {
		q.Set("status", string(opts.Status))
	}
	if opts.Limit > 0 {
		q.Set("limit", fmt.Sprint(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", fmt.Sprint(opts.Offset))
	}

	var out struct {
		Scans []*Scan `json:"scans"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/scans", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Scans, nil
}

// WaitForScan polls a scan until it completes or fails
func (c *Client) WaitForScan(ctx context.Context, scanID string, interval time.Duration) (*Scan, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		scan, err := c.GetScan(ctx, scanID)
		if err != nil {
			return nil, err
		}
		if scan.Status.Terminal() {
			return scan, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// GetDebtScore returns the latest company score, or a repository's score
// when repositoryID is set.
func (c *Client) GetDebtScore(ctx context.Context, repositoryID string) (*AIDebtScore, error) {
	q := url.Values{}
	if repositoryID != "" {
		q.Set("repository_id", repositoryID)
	}
	var score AIDebtScore
	if err := c.do(ctx, http.MethodGet, "/v1/scores/debt", q, nil, &score); err != nil {
		return nil, err
	}
	return &score, nil
}

// GetAdoptionScore returns the organization's AI adoption score
func (c *Client) GetAdoptionScore(ctx context.Context) (*AdoptionScore, error) {
	var score AdoptionScore
	if err := c.do(ctx, http.MethodGet, "/v1/scores/adoption", nil, nil, &score); err != nil {
		return nil, err
	}
	return &score, nil
}

// ListAlerts lists alerts, optionally filtered by status
func (c *Client) ListAlerts(ctx context.Context, status AlertStatus) ([]*Alert, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var out struct {
		Alerts []*Alert `json:"alerts"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/alerts", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Alerts, nil
}

// AcknowledgeAlert marks an active alert as acknowledged
func (c *Client) AcknowledgeAlert(ctx context.Context, alertID string) (*Alert, error) {
	var alert Alert
	if err := c.do(ctx, http.MethodPost, "/v1/alerts/"+url.PathEscape(alertID)+"/acknowledge", nil, nil, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, result any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

func decodeAPIError(resp *http.Response) error {
	var envelope struct {
		Error APIError `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)

	apiErr := envelope.Error
	apiErr.StatusCode = resp.StatusCode
	if apiErr.Code == "" {
		apiErr.Code = strings.ToUpper(strings.ReplaceAll(http.StatusText(resp.StatusCode), " ", "_"))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return &apiErr
}

// APIError represents an API error response
type APIError struct {
	StatusCode int            `json:"-"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
