package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"refurbmarket/internal/usecase/interfaces"
)

// WebhookNotifier delivers domain events to an external webhook sink.
//
// Deliveries are fire-and-forget at the usecase level: a failed Publish is
// logged by the caller and never fails or rolls back the operation that
// produced the event. With no NOTIFY_WEBHOOK_URL configured the notifier only
// logs the event locally.
type WebhookNotifier struct {
	webhookURL string
	http       *http.Client
}

var _ interfaces.INotifier = (*WebhookNotifier)(nil)

func NewWebhookNotifier(webhookURL string) *WebhookNotifier {
	webhookURL = strings.TrimSpace(webhookURL)
	if webhookURL == "" {
		log.Printf("[notifications][webhook] no NOTIFY_WEBHOOK_URL configured; events will only be logged")
	}
	return &WebhookNotifier{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: 5 * time.Second},
	}
}

func (n *WebhookNotifier) Publish(ctx context.Context, event string, payload map[string]any) error {
	if n.webhookURL == "" {
		log.Printf("[notifications][webhook] event=%s payload=%v", event, payload)
		return nil
	}

	body, err := json.Marshal(map[string]any{
		"event":       event,
		"payload":     payload,
		"occurred_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook sink returned status %d", resp.StatusCode)
	}
	log.Printf("[notifications][webhook] delivered event=%s", event)
	return nil
}
