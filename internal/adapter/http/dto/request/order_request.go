package request

// CreateOrderRequest places an order directly, without a prior quote. The
// configuration is re-priced and re-validated server side.
type CreateOrderRequest struct {
	CustomerRef string `json:"customer_ref"`
	AssetID     string `json:"asset_id" binding:"required"`
	ConfigID    string `json:"config_id" binding:"required"`
}

// AddOptionsRequest attaches premium catalog options to an order. The batch
// is all-or-nothing.
type AddOptionsRequest struct {
	OptionIDs []string `json:"option_ids" binding:"required,min=1"`
}
