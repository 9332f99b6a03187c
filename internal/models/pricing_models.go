package models

// PricingRule is one named adjustment rule. Rules are applied in a fixed
// order; inactive rules are skipped.
type PricingRule struct {
	RuleName        string `json:"rule_name"`
	RuleDescription string `json:"rule_description"`
	Active          bool   `json:"active"`
}

// PriceAdjustment is the outcome of running the active rules against one
// item's current price.
type PriceAdjustment struct {
	ItemID   string  `json:"item_id"`
	OldPrice float64 `json:"old_price"`
	NewPrice float64 `json:"new_price"`
}
