package models

import "github.com/shopspring/decimal"

// SplitResult represents one person's calculated share of a bill.
// This is the output of the allocation engine.
type SplitResult struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`

	// Subtotal is the sum of this person's shares of their assigned items.
	Subtotal decimal.Decimal `json:"subtotal"`

	// TaxShare is this person's proportional share of the tax.
	// Calculated as: subtotal × (tax / assigned_subtotal)
	TaxShare decimal.Decimal `json:"tax_share"`

	// TipShare is this person's proportional share of the tip.
	TipShare decimal.Decimal `json:"tip_share"`

	// Total is the final amount this person owes (subtotal + tax + tip).
	Total decimal.Decimal `json:"total"`

	// Items are the items assigned to this person, for itemized display.
	Items []Item `json:"items"`
}

// Breakdown maps person ID to that person's SplitResult.
// It has exactly one entry per person on the bill.
type Breakdown map[string]*SplitResult
