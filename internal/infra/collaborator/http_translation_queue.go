package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fork-kitchen/internal/resilience/retry"
)

// TranslationQueueConfig configures the HTTP translation queue client.
type TranslationQueueConfig struct {
	BaseURL string
	Timeout time.Duration
}

// HTTPTranslationQueue enqueues recipe text for translation over HTTP.
type HTTPTranslationQueue struct {
	config     TranslationQueueConfig
	httpClient *http.Client
}

func NewHTTPTranslationQueue(config TranslationQueueConfig) *HTTPTranslationQueue {
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	return &HTTPTranslationQueue{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

func (q *HTTPTranslationQueue) Enqueue(ctx context.Context, job TranslationJob) error {
	start := time.Now()
	err := retry.WithBackoff(ctx, retry.CollaboratorConfig(), func() error {
		return q.post(ctx, job)
	})
	recordCall("translation-queue", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("translation enqueue: %w", err)
	}
	return nil
}

func (q *HTTPTranslationQueue) post(ctx context.Context, job TranslationJob) error {
	body, err := json.Marshal(map[string]string{
		"recipePublicId": job.RecipePublicID,
		"sourceLocale":   job.SourceLocale,
		"title":          job.Title,
		"description":    job.Description,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		q.config.BaseURL+"/v1/translations", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := q.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 300 {
		return &retry.HTTPError{StatusCode: resp.StatusCode, Message: "translation queue"}
	}
	return nil
}
