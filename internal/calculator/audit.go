package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fairshare/internal/models"
)

var (
	ErrSubtotalMismatch = errors.New("subtotal shares do not add up to the assigned subtotal")
	ErrTaxMismatch      = errors.New("tax shares do not add up to the tax")
	ErrTipMismatch      = errors.New("tip shares do not add up to the tip")
)

// DefaultTolerance is the largest per-column drift Reconcile accepts.
var DefaultTolerance = decimal.New(1, -6)

// Totals holds the bill-level figures behind a breakdown, for auditing and
// display.
type Totals struct {
	AssignedSubtotal   decimal.Decimal `json:"assigned_subtotal"`   // Sum of prices of items with at least one assignee
	UnassignedSubtotal decimal.Decimal `json:"unassigned_subtotal"` // Sum of prices of items assigned to nobody
	EnteredSubtotal    decimal.Decimal `json:"entered_subtotal"`    // Bill.Subtotal as entered by the user
	SubtotalDrift      decimal.Decimal `json:"subtotal_drift"`      // EnteredSubtotal - AssignedSubtotal
	Tax                decimal.Decimal `json:"tax"`
	TipAmount          decimal.Decimal `json:"tip_amount"`
	GrandTotal         decimal.Decimal `json:"grand_total"` // AssignedSubtotal + Tax + TipAmount, when anything is assigned

	// Column sums over every person's result.
	SubtotalShares decimal.Decimal `json:"subtotal_shares"`
	TaxShares      decimal.Decimal `json:"tax_shares"`
	TipShares      decimal.Decimal `json:"tip_shares"`
	TotalShares    decimal.Decimal `json:"total_shares"`
}

// Summarize computes the bill-level totals for a breakdown produced by
// ComputeBreakdown.
//
// When nothing is assigned, no tax or tip can be allocated, so GrandTotal
// is zero even if the bill carries tax.
func Summarize(bill models.Bill, breakdown models.Breakdown) Totals {
	t := Totals{
		AssignedSubtotal:   AssignedSubtotal(bill.Items),
		UnassignedSubtotal: decimal.Zero,
		EnteredSubtotal:    bill.Subtotal,
		Tax:                bill.Tax,
		SubtotalShares:     decimal.Zero,
		TaxShares:          decimal.Zero,
		TipShares:          decimal.Zero,
		TotalShares:        decimal.Zero,
	}
	for _, item := range bill.Items {
		if len(item.AssignedTo) == 0 {
			t.UnassignedSubtotal = t.UnassignedSubtotal.Add(item.Price)
		}
	}
	t.SubtotalDrift = t.EnteredSubtotal.Sub(t.AssignedSubtotal)
	t.TipAmount = TipAmount(bill.Tip, t.AssignedSubtotal)

	t.GrandTotal = decimal.Zero
	if !t.AssignedSubtotal.IsZero() {
		t.GrandTotal = t.AssignedSubtotal.Add(t.Tax).Add(t.TipAmount)
	}

	for _, split := range breakdown {
		t.SubtotalShares = t.SubtotalShares.Add(split.Subtotal)
		t.TaxShares = t.TaxShares.Add(split.TaxShare)
		t.TipShares = t.TipShares.Add(split.TipShare)
		t.TotalShares = t.TotalShares.Add(split.Total)
	}

	return t
}

// Reconcile checks that every share column adds up to its bill-level figure
// within tolerance. Tax and tip are only checked when something is assigned.
// Bills with assignments to unknown people fail the subtotal check, since
// those shares are charged to nobody.
func Reconcile(t Totals, tolerance decimal.Decimal) error {
	var errs []error

	if drift := t.SubtotalShares.Sub(t.AssignedSubtotal).Abs(); drift.GreaterThan(tolerance) {
		errs = append(errs, fmt.Errorf("%w: %s vs %s", ErrSubtotalMismatch, t.SubtotalShares, t.AssignedSubtotal))
	}

	if !t.AssignedSubtotal.IsZero() {
		if drift := t.TaxShares.Sub(t.Tax).Abs(); drift.GreaterThan(tolerance) {
			errs = append(errs, fmt.Errorf("%w: %s vs %s", ErrTaxMismatch, t.TaxShares, t.Tax))
		}
		if drift := t.TipShares.Sub(t.TipAmount).Abs(); drift.GreaterThan(tolerance) {
			errs = append(errs, fmt.Errorf("%w: %s vs %s", ErrTipMismatch, t.TipShares, t.TipAmount))
		}
	}

	return errors.Join(errs...)
}
