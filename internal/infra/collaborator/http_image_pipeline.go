package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"fork-kitchen/internal/resilience/retry"
)

// ImagePipelineConfig configures the HTTP image pipeline client.
type ImagePipelineConfig struct {
	BaseURL string
	Timeout time.Duration
}

// HTTPImagePipeline calls the image pipeline service over HTTP, behind
// a circuit breaker. The pipeline is the least reliable collaborator
// (it does media processing), so a stuck pipeline must not tie up
// request goroutines here.
type HTTPImagePipeline struct {
	config     ImagePipelineConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewHTTPImagePipeline(config ImagePipelineConfig) *HTTPImagePipeline {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "image-pipeline",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && counts.TotalFailures*2 > counts.Requests
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			recordBreakerState(name, to)
		},
	})
	return &HTTPImagePipeline{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		breaker:    breaker,
	}
}

type associateRequest struct {
	EntityKind string   `json:"entityKind"`
	PublicID   string   `json:"publicId"`
	ImageRefs  []string `json:"imageRefs"`
}

func (p *HTTPImagePipeline) Associate(ctx context.Context, kind EntityKind, publicID string, imageRefs []string) error {
	if len(imageRefs) == 0 {
		return nil
	}
	start := time.Now()
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, retry.WithBackoff(ctx, retry.CollaboratorConfig(), func() error {
			return p.post(ctx, associateRequest{
				EntityKind: string(kind),
				PublicID:   publicID,
				ImageRefs:  imageRefs,
			})
		})
	})
	recordCall("image-pipeline", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("image pipeline associate: %w", err)
	}
	return nil
}

func (p *HTTPImagePipeline) post(ctx context.Context, payload associateRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.BaseURL+"/v1/images/associate", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 300 {
		return &retry.HTTPError{StatusCode: resp.StatusCode, Message: "image pipeline"}
	}
	return nil
}
