package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/teamsgen/teamsgen/internal/errors"
)

// DefaultEndpoint receives usage batches when no sink is configured
// explicitly.
const DefaultEndpoint = "https://telemetry.teamsgen.dev/v1/events"

// Sink delivers one usage batch.
type Sink interface {
	Send(ctx context.Context, batch Batch) error
}

// NopSink discards every batch.
type NopSink struct{}

func (NopSink) Send(context.Context, Batch) error { return nil }

// HTTPSink posts batches as JSON.
type HTTPSink struct {
	URL    string
	Client *http.Client
}

// NewHTTPSink creates a sink for the default endpoint.
func NewHTTPSink() *HTTPSink {
	return &HTTPSink{
		URL:    DefaultEndpoint,
		Client: &http.Client{Timeout: FlushTimeout},
	}
}

func (s *HTTPSink) Send(ctx context.Context, batch Batch) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return errors.Wrap(err, "encoding usage batch")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errors.Newf("usage endpoint returned %s", resp.Status)
	}
	return nil
}
