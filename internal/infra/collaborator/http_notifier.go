package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"fork-kitchen/internal/resilience/retry"
)

// NotifierConfig configures the HTTP notification client.
type NotifierConfig struct {
	BaseURL string
	Timeout time.Duration
}

// HTTPNotifier posts activity events to the notification service.
// Both notify methods are fire and forget: the work runs on its own
// goroutine with a fresh deadline, detached from the request context,
// and an eventual failure only shows up in logs and metrics.
type HTTPNotifier struct {
	config     NotifierConfig
	httpClient *http.Client
}

func NewHTTPNotifier(config NotifierConfig) *HTTPNotifier {
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	return &HTTPNotifier{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

func (n *HTTPNotifier) NotifyFork(ctx context.Context, ev ForkEvent) {
	n.dispatch("fork", map[string]any{
		"type":            "fork",
		"recipePublicId":  ev.RecipePublicID,
		"variantPublicId": ev.VariantPublicID,
		"creatorId":       ev.CreatorID,
		"forkerId":        ev.ForkerID,
	})
}

func (n *HTTPNotifier) NotifyLog(ctx context.Context, ev LogEvent) {
	n.dispatch("log", map[string]any{
		"type":           "log",
		"recipePublicId": ev.RecipePublicID,
		"creatorId":      ev.CreatorID,
		"cookId":         ev.CookID,
	})
}

func (n *HTTPNotifier) dispatch(kind string, payload map[string]any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.config.Timeout*2)
		defer cancel()

		start := time.Now()
		err := retry.WithBackoff(ctx, retry.CollaboratorConfig(), func() error {
			return n.post(ctx, payload)
		})
		recordCall("notifier", err, time.Since(start))
		if err != nil {
			slog.Warn("notification dropped",
				slog.String("kind", kind),
				slog.Any("error", err))
		}
	}()
}

func (n *HTTPNotifier) post(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		n.config.BaseURL+"/v1/notifications", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 300 {
		return &retry.HTTPError{StatusCode: resp.StatusCode, Message: "notifier"}
	}
	return nil
}
