package repository

import (
	"encoding/json"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"refurbmarket/internal/domain/entities"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// Snapshots are stored as an opaque JSON blob: the marketplace copies them
// verbatim and never touches individual snapshot fields in storage. Decimal
// fields round-trip as strings, so no precision is lost.
func marshalSnapshot(s entities.PricingSnapshot) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalSnapshot(raw string) (entities.PricingSnapshot, error) {
	if raw == "" {
		return entities.PricingSnapshot{}, nil
	}
	var s entities.PricingSnapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return entities.PricingSnapshot{}, err
	}
	return s, nil
}

func decimalToString(d decimal.Decimal) string {
	return d.String()
}

func decimalFromString(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
