package inventory

import (
	"bytes"
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

	"github.com/google/uuid"

	"refurbmarket/internal/usecase/interfaces"
)

var ErrMissingInventoryBaseURL = errors.New("missing INVENTORY_BASE_URL")

// AvailabilityClient talks to the inventory service.
//
// Contract:
//   - GET  {base}/assets/{asset_id}/availability -> {"available": bool}
//   - POST {base}/assets/{asset_id}/reservations {"order_ref"} -> {"reservation_id"}
//
// A reservation can fail right after availability reported true (another
// order won the unit); that error propagates to the caller unchanged in
// meaning — the client never retries.
//
// INVENTORY_MOCK (1/true/yes/on/mock) makes every asset available and
// reservations always succeed.
type AvailabilityClient struct {
	baseURL  string
	http     *http.Client
	mockMode bool
}

var _ interfaces.IAvailabilitySource = (*AvailabilityClient)(nil)

func NewAvailabilityClient(baseURL string) (*AvailabilityClient, error) {
	if isMockEnabled("INVENTORY_MOCK") {
		log.Printf("[inventory][client] mock mode enabled")
		return &AvailabilityClient{mockMode: true}, nil
	}
	if strings.TrimSpace(baseURL) == "" {
		log.Printf("[inventory][client] missing INVENTORY_BASE_URL")
		return nil, ErrMissingInventoryBaseURL
	}
	return &AvailabilityClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *AvailabilityClient) CheckAvailability(ctx context.Context, assetID string) (bool, error) {
	if c.mockMode {
		log.Printf("[inventory][client] mock availability asset_id=%s available=true", assetID)
		return true, nil
	}

	endpoint := c.baseURL + "/assets/" + url.PathEscape(assetID) + "/availability"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[inventory][client] availability check failed asset_id=%s err=%v", assetID, err)
		return false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("inventory service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		Available bool `json:"available"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return false, err
	}
	log.Printf("[inventory][client] availability asset_id=%s available=%t", assetID, out.Available)
	return out.Available, nil
}

func (c *AvailabilityClient) ReserveAsset(ctx context.Context, assetID, orderRef string) (string, error) {
	if c.mockMode {
		id := "mock-res-" + uuid.NewString()
		log.Printf("[inventory][client] mock reservation asset_id=%s order_ref=%s reservation_id=%s", assetID, orderRef, id)
		return id, nil
	}

	payload, err := json.Marshal(map[string]string{"order_ref": orderRef})
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/assets/" + url.PathEscape(assetID) + "/reservations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("[inventory][client] reserve start asset_id=%s order_ref=%s", assetID, orderRef)
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[inventory][client] reserve failed asset_id=%s err=%v", assetID, err)
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("[inventory][client] reserve rejected asset_id=%s status=%d", assetID, resp.StatusCode)
		return "", fmt.Errorf("inventory service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		ReservationID string `json:"reservation_id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.ReservationID == "" {
		return "", errors.New("inventory service returned no reservation id")
	}
	log.Printf("[inventory][client] reserve success asset_id=%s reservation_id=%s", assetID, out.ReservationID)
	return out.ReservationID, nil
}

func isMockEnabled(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
