// Package report renders breakdowns as plain text for sharing and
// itemized display.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fairshare/internal/calculator"
	"github.com/mmynk/fairshare/internal/models"
)

// ShareHeader starts every share text.
const ShareHeader = "🧾 Bill Split:\n\n"

// Money formats an amount as dollars with two decimals.
func Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// ShareText returns the plain-text summary handed to share or clipboard
// targets: one "<name>: $<total>" line per person, in bill order.
func ShareText(bill models.Bill, breakdown models.Breakdown) string {
	var b strings.Builder
	b.WriteString(ShareHeader)
	for _, split := range calculator.Ordered(bill, breakdown) {
		fmt.Fprintf(&b, "%s: %s\n", split.Name, Money(split.Total))
	}
	return b.String()
}

// Itemized returns a per-person receipt: each item with that person's share,
// then subtotal, tax, tip and total lines.
func Itemized(bill models.Bill, breakdown models.Breakdown) string {
	var b strings.Builder
	for i, split := range calculator.Ordered(bill, breakdown) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s — %s (%d items)\n", split.Name, Money(split.Total), len(split.Items))
		for _, item := range split.Items {
			share := calculator.ItemShare(item)
			marker := ""
			if len(calculator.Assignees(item)) > 1 {
				marker = " (split)"
			}
			fmt.Fprintf(&b, "  %-24s %10s\n", item.Name+marker, Money(share))
		}
		fmt.Fprintf(&b, "  %-24s %10s\n", "Subtotal", Money(split.Subtotal))
		fmt.Fprintf(&b, "  %-24s %10s\n", "Tax", Money(split.TaxShare))
		fmt.Fprintf(&b, "  %-24s %10s\n", "Tip", Money(split.TipShare))
	}
	return b.String()
}
