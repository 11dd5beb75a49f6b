package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase/interfaces"
)

var ErrMissingPricingBaseURL = errors.New("missing PRICING_BASE_URL")

// PricingClient talks to the CTO pricing engine.
//
// Contract: GET {base}/configurations/{config_id} returns the validated flag,
// the asset the configuration was priced for, the lead time and the pricing
// snapshot. The client is a pure consumer: nothing here ever asks the engine
// to refresh a price already captured into a quote or an order.
//
// PRICING_MOCK (1/true/yes/on/mock) short-circuits to a deterministic
// response for local runs without the engine.
type PricingClient struct {
	baseURL  string
	http     *http.Client
	mockMode bool
}

var _ interfaces.IPricingSource = (*PricingClient)(nil)

func NewPricingClient(baseURL string) (*PricingClient, error) {
	if isMockEnabled("PRICING_MOCK") {
		log.Printf("[pricing][client] mock mode enabled")
		return &PricingClient{mockMode: true}, nil
	}
	if strings.TrimSpace(baseURL) == "" {
		log.Printf("[pricing][client] missing PRICING_BASE_URL")
		return nil, ErrMissingPricingBaseURL
	}
	return &PricingClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type configurationResponse struct {
	ConfigID     string                   `json:"config_id"`
	AssetID      string                   `json:"asset_id"`
	Validated    bool                     `json:"validated"`
	LeadTimeDays int                      `json:"lead_time_days"`
	Snapshot     entities.PricingSnapshot `json:"snapshot"`
}

func (c *PricingClient) GetConfiguration(ctx context.Context, configID string) (interfaces.PricedConfiguration, error) {
	if c.mockMode {
		return c.mockConfiguration(configID), nil
	}

	endpoint := c.baseURL + "/configurations/" + url.PathEscape(configID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return interfaces.PricedConfiguration{}, err
	}

	log.Printf("[pricing][client] fetch start config_id=%s", configID)
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[pricing][client] fetch failed config_id=%s err=%v", configID, err)
		return interfaces.PricedConfiguration{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return interfaces.PricedConfiguration{}, err
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[pricing][client] fetch rejected config_id=%s status=%d", configID, resp.StatusCode)
		return interfaces.PricedConfiguration{}, fmt.Errorf("pricing engine returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out configurationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		log.Printf("[pricing][client] response unmarshal failed config_id=%s err=%v", configID, err)
		return interfaces.PricedConfiguration{}, err
	}
	log.Printf("[pricing][client] fetch success config_id=%s asset_id=%s validated=%t total=%s", configID, out.AssetID, out.Validated, out.Snapshot.GrandTotal)

	return interfaces.PricedConfiguration{
		ConfigID:     out.ConfigID,
		AssetID:      out.AssetID,
		Validated:    out.Validated,
		LeadTimeDays: out.LeadTimeDays,
		Snapshot:     out.Snapshot,
	}, nil
}

// mockConfiguration prices every configuration the same way and marks it
// validated for the asset named in PRICING_MOCK_ASSET_ID (default mock-asset).
func (c *PricingClient) mockConfiguration(configID string) interfaces.PricedConfiguration {
	assetID := getenvDefault("PRICING_MOCK_ASSET_ID", "mock-asset")
	unit := decimal.RequireFromString("980.00")
	labor := decimal.RequireFromString("120.00")
	subtotal := unit.Add(labor)
	margin := decimal.RequireFromString("115.40")

	log.Printf("[pricing][client] mock fetch config_id=%s asset_id=%s", configID, assetID)
	return interfaces.PricedConfiguration{
		ConfigID:     configID,
		AssetID:      assetID,
		Validated:    true,
		LeadTimeDays: 10,
		Snapshot: entities.PricingSnapshot{
			Components: []entities.PricedComponent{
				{Type: "base_unit", Reference: "REF-" + configID, Quantity: 1, UnitPrice: unit, LineTotal: unit},
			},
			LaborCost:  labor,
			Subtotal:   subtotal,
			Margin:     margin,
			GrandTotal: subtotal.Add(margin),
			Currency:   "EUR",
			CapturedAt: time.Now().UTC(),
		},
	}
}

func isMockEnabled(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
