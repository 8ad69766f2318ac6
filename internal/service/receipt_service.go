package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/internal/receipt"
)

// ReceiptService extracts line items from receipt images.
type ReceiptService struct {
	scanner receipt.Scanner
}

// NewReceiptService creates a ReceiptService. A nil scanner disables
// scanning; calls then fail with CodeFailedPrecondition.
func NewReceiptService(scanner receipt.Scanner) *ReceiptService {
	return &ReceiptService{scanner: scanner}
}

// ScanReceipt reads the line items (and any printed totals) off a receipt.
func (s *ReceiptService) ScanReceipt(ctx context.Context, req *connect.Request[ScanReceiptRequest]) (*connect.Response[ScanReceiptResponse], error) {
	if s.scanner == nil {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("receipt scanning is not configured"))
	}

	img, err := decodeImage(req.Msg.Image, req.Msg.MimeType)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	r, err := s.scanner.ScanReceipt(ctx, img)
	if err != nil {
		slog.Error("ScanReceipt failed", "mime_type", img.MIMEType, "bytes", len(img.Data), "error", err)
		return nil, connect.NewError(scanErrorCode(ctx, err), err)
	}

	slog.Info("Receipt scanned", "items", len(r.Items))
	return connect.NewResponse(&ScanReceiptResponse{
		Items:    r.Items,
		Subtotal: r.Subtotal,
		Tax:      r.Tax,
		Tip:      r.Tip,
	}), nil
}

// decodeImage accepts raw base64 or a base64 data URL.
func decodeImage(image, mimeType string) (receipt.Image, error) {
	image = strings.TrimSpace(image)
	if rest, ok := strings.CutPrefix(image, "data:"); ok {
		header, data, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return receipt.Image{}, errors.New("image data URL must be base64 encoded")
		}
		if mimeType == "" {
			mimeType = strings.TrimSuffix(header, ";base64")
		}
		image = data
	}
	if image == "" {
		return receipt.Image{}, receipt.ErrEmptyImage
	}

	data, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		return receipt.Image{}, fmt.Errorf("invalid base64 image: %w", err)
	}
	return receipt.Image{Data: data, MIMEType: mimeType}, nil
}

func scanErrorCode(ctx context.Context, err error) connect.Code {
	switch {
	case errors.Is(err, receipt.ErrEmptyImage):
		return connect.CodeInvalidArgument
	case errors.Is(err, receipt.ErrMissingAPIKey):
		return connect.CodeFailedPrecondition
	case errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil:
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeUnavailable
	}
}
