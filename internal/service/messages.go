package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/fairshare/internal/calculator"
	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/receipt"
)

// ComputeBreakdownRequest asks for the split of a bill.
type ComputeBreakdownRequest struct {
	Bill models.Bill `json:"bill"`

	// Strict rejects bills that fail models.Bill.Validate instead of
	// computing them as-is.
	Strict bool `json:"strict"`
}

// ComputeBreakdownResponse carries one result per person, in bill order.
type ComputeBreakdownResponse struct {
	Results   []*models.SplitResult `json:"results"`
	Totals    calculator.Totals     `json:"totals"`
	ShareText string                `json:"share_text"`

	// Reconciled is false when the shares do not add up to the bill, which
	// only happens when items are assigned to people not on the bill.
	Reconciled bool `json:"reconciled"`
}

type ShareTextRequest struct {
	Bill models.Bill `json:"bill"`
}

type ShareTextResponse struct {
	Text string `json:"text"`
}

// ScanReceiptRequest carries a base64 receipt image. Image may also be a
// data URL ("data:image/png;base64,..."), in which case MimeType is optional.
type ScanReceiptRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

type ScanReceiptResponse struct {
	Items    []receipt.LineItem `json:"items"`
	Subtotal *decimal.Decimal   `json:"subtotal,omitempty"`
	Tax      *decimal.Decimal   `json:"tax,omitempty"`
	Tip      *decimal.Decimal   `json:"tip,omitempty"`
}
