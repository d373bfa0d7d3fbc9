package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/onnise/beyond-ads-scraper/internal/entity"
)

// RunEvent is the body posted when a run reaches a terminal state.
type RunEvent struct {
	Event string     `json:"event"`
	Run   entity.Run `json:"run"`
}

// Webhook posts JSON payloads to a single endpoint.
type Webhook struct {
	client *http.Client
	url    string
}

// NewWebhook builds a webhook client. A nil client gets an ID token client
// for the target audience, falling back to a plain client with a timeout.
func NewWebhook(client *http.Client, target string) (*Webhook, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("webhook url must not be empty")
	}
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), target)
		if err != nil {
			client = &http.Client{Timeout: 10 * time.Second}
		} else {
			client = idc
		}
	}
	return &Webhook{client: client, url: target}, nil
}

// NotifyRun posts a run.finished event.
func (w *Webhook) NotifyRun(ctx context.Context, run entity.Run) error {
	return w.PostJSON(ctx, RunEvent{Event: "run." + string(run.Status), Run: run}, run.ID.String())
}

// PostJSON posts the payload and fails on any non-2xx answer.
func (w *Webhook) PostJSON(ctx context.Context, payload any, requestID string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook error (%d): %s", resp.StatusCode, extractError(resp.Body))
	}
	return nil
}

func extractError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return "webhook returned an error"
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(data))
}
