package statesync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mkobayashi/planning-poker/go/internal/models"
)

// Client submits snapshots to the relay endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a relay client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// TriggerGameState posts the snapshot to /api/pusher under the given
// event name.
func (c *Client) TriggerGameState(ctx context.Context, event string, state models.GameState) error {
	body, err := json.Marshal(models.TriggerRequest{
		Event:     event,
		GameState: state,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pusher", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("relay returned status code: %d, response: %s", resp.StatusCode, string(responseBody))
	}

	return nil
}
