package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/simforge/tictactoe-sim/internal/entity"
)

const recordsPath = "/api/games"

// HTTPSink - talks to the record store over HTTP. It reports failures as
// plain errors and keeps no state; retries are the caller's decision (the
// simulator makes none).
type HTTPSink struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSink(baseURL string, timeout time.Duration) *HTTPSink {
	return &HTTPSink{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// SubmitBatch - POSTs the batch as a single JSON array.
func (that *HTTPSink) SubmitBatch(ctx context.Context, records []entity.GameRecord) error {
	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.baseURL+recordsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("store rejected batch: %s", resp.Status)
	}

	return nil
}

// FetchHistory - GETs the stored records, newest first. Any transport, status
// or decode failure comes back as an error; the caller treats that as "no
// data" and keeps whatever it already shows.
func (that *HTTPSink) FetchHistory(ctx context.Context) ([]entity.GameRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, that.baseURL+recordsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store refused history request: %s", resp.Status)
	}

	var records []entity.GameRecord
	if err = json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	return records, nil
}
