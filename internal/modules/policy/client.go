package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hedgelab/hedgebench/internal/domain"
)

// Client is an HTTP client for a model-serving sidecar that hosts the trained
// policy. It implements domain.Policy by forwarding each observation to the
// service's action-selection endpoint.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new policy service client.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log.With().Str("client", "policy").Logger(),
	}
}

// selectActionRequest mirrors the sidecar's action-selection payload.
type selectActionRequest struct {
	Observation domain.Observation `json:"observation"`
	Training    bool               `json:"training"`
}

// selectActionResult is the payload carried in a successful response.
type selectActionResult struct {
	Action int     `json:"action"`
	Aux    float64 `json:"aux"`
}

// serviceResponse is the standard response envelope from the sidecar.
type serviceResponse struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     *string         `json:"error"`
	Timestamp string          `json:"timestamp"`
}

// SelectAction forwards the observation to the service and returns its
// chosen action index. Any transport or service-level failure is returned
// unmasked; the caller decides whether the batch survives.
func (c *Client) SelectAction(obs domain.Observation, training bool) (int, float64, error) {
	resp, err := c.post("/select-action", selectActionRequest{Observation: obs, Training: training})
	if err != nil {
		return 0, 0, err
	}

	var result selectActionResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return 0, 0, fmt.Errorf("failed to parse action result: %w", err)
	}

	return result.Action, result.Aux, nil
}

// Health probes the sidecar's health endpoint.
func (c *Client) Health() error {
	httpResp, err := c.client.Get(c.baseURL + "/health")
	if err != nil {
		return fmt.Errorf("failed to reach policy service: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("policy service unhealthy: status %d", httpResp.StatusCode)
	}
	return nil
}

// post sends a POST request to the sidecar and unwraps the response envelope.
func (c *Client) post(endpoint string, request interface{}) (*serviceResponse, error) {
	url := c.baseURL + endpoint

	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	c.log.Debug().
		Str("endpoint", endpoint).
		Msg("Calling policy service")

	httpReq, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp serviceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !resp.Success {
		errorMsg := "unknown error"
		if resp.Error != nil {
			errorMsg = *resp.Error
		}
		return nil, fmt.Errorf("action selection failed: %s", errorMsg)
	}

	return &resp, nil
}
