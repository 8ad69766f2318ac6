// Package receipt extracts line items from photos of receipts.
//
// The allocation engine never depends on this package: scanned lines become
// ordinary unassigned items, exactly like manually entered ones.
package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyImage    = errors.New("empty image")
	ErrEmptyResponse = errors.New("empty response from model")
	ErrNonJSON       = errors.New("model returned non-json output")
)

// Prompt asks the model for the receipt's line items as raw JSON.
const Prompt = `
Analyze this receipt image.
Extract the following as JSON:
- items: array of objects with 'name' (string) and 'price' (number).
- subtotal: number
- tax: number
- tip: number (if present, otherwise 0)

Ignore payment lines (Visa, Auth Code, Total).
Focus on the line items ordered.
Return ONLY raw JSON, no markdown formatting.
`

// Image is an encoded receipt photo.
type Image struct {
	Data     []byte
	MIMEType string
}

// LineItem is one name/price pair read off a receipt.
type LineItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Receipt is everything a scan produced. Totals are nil when the receipt
// did not show them.
type Receipt struct {
	Items    []LineItem       `json:"items"`
	Subtotal *decimal.Decimal `json:"subtotal,omitempty"`
	Tax      *decimal.Decimal `json:"tax,omitempty"`
	Tip      *decimal.Decimal `json:"tip,omitempty"`
}

// Extractor turns a receipt image into line items.
type Extractor interface {
	ExtractLineItems(ctx context.Context, img Image) ([]LineItem, error)
}

// Scanner is an Extractor that also reports the receipt's printed totals.
type Scanner interface {
	Extractor
	ScanReceipt(ctx context.Context, img Image) (*Receipt, error)
}

// Parse decodes a model answer into a Receipt. A surrounding markdown code
// fence is tolerated; lines without a name are dropped.
func Parse(raw []byte) (*Receipt, error) {
	raw = stripCodeFence(raw)
	if len(raw) == 0 {
		return nil, ErrEmptyResponse
	}
	if !json.Valid(raw) {
		return nil, ErrNonJSON
	}

	var r Receipt
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("failed to decode receipt: %w", err)
	}

	items := make([]LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			continue
		}
		items = append(items, item)
	}
	r.Items = items

	return &r, nil
}

func stripCodeFence(raw []byte) []byte {
	raw = bytes.TrimSpace(raw)
	if !bytes.HasPrefix(raw, []byte("```")) {
		return raw
	}
	// Drop the opening fence line (``` or ```json) and the closing fence.
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		raw = raw[i+1:]
	} else {
		return nil
	}
	raw = bytes.TrimSpace(raw)
	raw = bytes.TrimSuffix(raw, []byte("```"))
	return bytes.TrimSpace(raw)
}
