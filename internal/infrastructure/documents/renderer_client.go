package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase/interfaces"
)

var ErrMissingRendererBaseURL = errors.New("missing RENDERER_BASE_URL")

// RendererClient talks to the invoice document renderer.
//
// Contract: POST {base}/render with the invoice payload returns
// {"document_ref"}. A failure here must keep the invoice draft, which the
// invoice usecase guarantees by rendering before persisting issuance.
//
// RENDERER_MOCK (1/true/yes/on/mock) returns a deterministic reference.
type RendererClient struct {
	baseURL  string
	http     *http.Client
	mockMode bool
}

var _ interfaces.IDocumentRenderer = (*RendererClient)(nil)

func NewRendererClient(baseURL string) (*RendererClient, error) {
	if isMockEnabled("RENDERER_MOCK") {
		log.Printf("[documents][client] mock mode enabled")
		return &RendererClient{mockMode: true}, nil
	}
	if strings.TrimSpace(baseURL) == "" {
		log.Printf("[documents][client] missing RENDERER_BASE_URL")
		return nil, ErrMissingRendererBaseURL
	}
	return &RendererClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (c *RendererClient) RenderInvoice(ctx context.Context, inv entities.Invoice) (string, error) {
	if c.mockMode {
		ref := "mock-doc-" + inv.Number
		log.Printf("[documents][client] mock render invoice_id=%s document_ref=%s", inv.ID, ref)
		return ref, nil
	}

	payload, err := json.Marshal(map[string]any{
		"invoice_id":   inv.ID,
		"number":       inv.Number,
		"order_id":     inv.OrderID,
		"company_id":   inv.CompanyID,
		"amount_total": inv.AmountTotal,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("[documents][client] render start invoice_id=%s number=%s", inv.ID, inv.Number)
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[documents][client] render failed invoice_id=%s err=%v", inv.ID, err)
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[documents][client] render rejected invoice_id=%s status=%d", inv.ID, resp.StatusCode)
		return "", fmt.Errorf("document renderer returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		DocumentRef string `json:"document_ref"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.DocumentRef == "" {
		return "", errors.New("document renderer returned no document ref")
	}
	log.Printf("[documents][client] render success invoice_id=%s document_ref=%s", inv.ID, out.DocumentRef)
	return out.DocumentRef, nil
}

func isMockEnabled(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
