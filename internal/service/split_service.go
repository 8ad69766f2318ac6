package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/internal/calculator"
	"github.com/mmynk/fairshare/internal/report"
)

// SplitService computes bill breakdowns. It is stateless.
type SplitService struct{}

// NewSplitService creates a new SplitService.
func NewSplitService() *SplitService {
	return &SplitService{}
}

// ComputeBreakdown handles bill split calculation
func (s *SplitService) ComputeBreakdown(ctx context.Context, req *connect.Request[ComputeBreakdownRequest]) (*connect.Response[ComputeBreakdownResponse], error) {
	bill := req.Msg.Bill

	if req.Msg.Strict {
		if err := bill.Validate(); err != nil {
			slog.Error("ComputeBreakdown validation failed", "error", err)
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}

	for i, item := range bill.Items {
		slog.Debug("Processing item",
			"index", i+1,
			"name", item.Name,
			"price", item.Price,
			"assigned_to", item.AssignedTo,
		)
	}

	breakdown := calculator.ComputeBreakdown(bill)
	totals := calculator.Summarize(bill, breakdown)

	reconciled := true
	if err := calculator.Reconcile(totals, calculator.DefaultTolerance); err != nil {
		slog.Warn("Breakdown does not reconcile", "error", err)
		reconciled = false
	}

	results := calculator.Ordered(bill, breakdown)
	for _, split := range results {
		slog.Debug("Person split",
			"person", split.Name,
			"subtotal", split.Subtotal,
			"tax", split.TaxShare,
			"tip", split.TipShare,
			"total", split.Total,
			"items_count", len(split.Items),
		)
	}

	return connect.NewResponse(&ComputeBreakdownResponse{
		Results:    results,
		Totals:     totals,
		ShareText:  report.ShareText(bill, breakdown),
		Reconciled: reconciled,
	}), nil
}

// ShareText returns only the plain-text summary of a bill's split.
func (s *SplitService) ShareText(ctx context.Context, req *connect.Request[ShareTextRequest]) (*connect.Response[ShareTextResponse], error) {
	bill := req.Msg.Bill
	return connect.NewResponse(&ShareTextResponse{
		Text: report.ShareText(bill, calculator.ComputeBreakdown(bill)),
	}), nil
}
