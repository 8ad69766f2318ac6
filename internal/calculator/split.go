// Package calculator implements the allocation engine: it turns a Bill into
// a per-person Breakdown.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/fairshare/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ComputeBreakdown computes how much each person owes, including their
// proportional share of tax and tip.
//
// Algorithm:
//   - Each assigned item is split evenly across its assignees
//   - person_tax = person_subtotal × (tax / assigned_subtotal)
//   - person_tip = person_subtotal × (tip_amount / assigned_subtotal)
//   - person_total = person_subtotal + person_tax + person_tip
//
// Items assigned to nobody are not charged to anyone and do not count toward
// the assigned subtotal. Assignees that are not on the bill are ignored.
// The bill is never modified.
func ComputeBreakdown(bill models.Bill) models.Breakdown {
	splits := make(models.Breakdown, len(bill.People))

	// Initialize splits for all people
	for _, p := range bill.People {
		splits[p.ID] = &models.SplitResult{
			PersonID: p.ID,
			Name:     p.Name,
			Subtotal: decimal.Zero,
			TaxShare: decimal.Zero,
			TipShare: decimal.Zero,
			Total:    decimal.Zero,
			Items:    []models.Item{},
		}
	}

	// Split each item among its assignees
	assignedSubtotal := decimal.Zero
	for _, item := range bill.Items {
		assignees := Assignees(item)
		if len(assignees) == 0 {
			continue
		}

		share := ItemShare(item)
		for _, id := range assignees {
			if split, exists := splits[id]; exists {
				split.Subtotal = split.Subtotal.Add(share)
				split.Items = append(split.Items, item.Clone())
			}
		}
		assignedSubtotal = assignedSubtotal.Add(item.Price)
	}

	// Nothing assigned: every subtotal is zero, so any nonzero denominator
	// yields zero shares.
	denominator := assignedSubtotal
	if denominator.IsZero() {
		denominator = decimal.NewFromInt(1)
	}

	taxRatio := bill.Tax.Div(denominator)
	tipRatio := TipAmount(bill.Tip, assignedSubtotal).Div(denominator)

	// Apply proportional tax and tip and calculate totals
	for _, split := range splits {
		split.TaxShare = split.Subtotal.Mul(taxRatio)
		split.TipShare = split.Subtotal.Mul(tipRatio)
		split.Total = split.Subtotal.Add(split.TaxShare).Add(split.TipShare)
	}

	return splits
}

// TipAmount returns the absolute tip for a bill whose assigned items add up
// to assignedSubtotal.
func TipAmount(tip models.Tip, assignedSubtotal decimal.Decimal) decimal.Decimal {
	if tip.IsFixed() {
		return tip.Value
	}
	return assignedSubtotal.Mul(tip.Value.Div(hundred))
}

// AssignedSubtotal sums the prices of items that have at least one assignee.
func AssignedSubtotal(items []models.Item) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if len(item.AssignedTo) > 0 {
			sum = sum.Add(item.Price)
		}
	}
	return sum
}

// Ordered returns the breakdown's results in the bill's people order.
// People missing from the breakdown are skipped.
func Ordered(bill models.Bill, breakdown models.Breakdown) []*models.SplitResult {
	out := make([]*models.SplitResult, 0, len(bill.People))
	for _, p := range bill.People {
		if split, ok := breakdown[p.ID]; ok {
			out = append(out, split)
		}
	}
	return out
}

// ItemShare is what each assignee pays for item, before tax and tip.
// It is zero for an item assigned to nobody.
func ItemShare(item models.Item) decimal.Decimal {
	n := len(Assignees(item))
	if n == 0 {
		return decimal.Zero
	}
	return item.Price.Div(decimal.NewFromInt(int64(n)))
}

// Assignees returns the item's distinct assignee ids in first-seen order.
func Assignees(item models.Item) []string {
	ids := item.AssignedTo
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
