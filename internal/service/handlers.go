package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	SplitServiceName   = "fairshare.v1.SplitService"
	ReceiptServiceName = "fairshare.v1.ReceiptService"

	SplitServiceComputeBreakdownProcedure = "/" + SplitServiceName + "/ComputeBreakdown"
	SplitServiceShareTextProcedure        = "/" + SplitServiceName + "/ShareText"
	ReceiptServiceScanReceiptProcedure    = "/" + ReceiptServiceName + "/ScanReceipt"
)

// NewSplitServiceHandler builds an HTTP handler for SplitService and returns
// the path prefix to mount it on.
func NewSplitServiceHandler(svc *SplitService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	compute := connect.NewUnaryHandler(SplitServiceComputeBreakdownProcedure, svc.ComputeBreakdown, opts...)
	share := connect.NewUnaryHandler(SplitServiceShareTextProcedure, svc.ShareText, opts...)

	return "/" + SplitServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SplitServiceComputeBreakdownProcedure:
			compute.ServeHTTP(w, r)
		case SplitServiceShareTextProcedure:
			share.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewReceiptServiceHandler builds an HTTP handler for ReceiptService and
// returns the path prefix to mount it on.
func NewReceiptServiceHandler(svc *ReceiptService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	scan := connect.NewUnaryHandler(ReceiptServiceScanReceiptProcedure, svc.ScanReceipt, opts...)

	return "/" + ReceiptServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ReceiptServiceScanReceiptProcedure:
			scan.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// SplitServiceClient calls a remote SplitService.
type SplitServiceClient struct {
	computeBreakdown *connect.Client[ComputeBreakdownRequest, ComputeBreakdownResponse]
	shareText        *connect.Client[ShareTextRequest, ShareTextResponse]
}

// NewSplitServiceClient creates a client for the SplitService at baseURL.
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SplitServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &SplitServiceClient{
		computeBreakdown: connect.NewClient[ComputeBreakdownRequest, ComputeBreakdownResponse](httpClient, baseURL+SplitServiceComputeBreakdownProcedure, opts...),
		shareText:        connect.NewClient[ShareTextRequest, ShareTextResponse](httpClient, baseURL+SplitServiceShareTextProcedure, opts...),
	}
}

func (c *SplitServiceClient) ComputeBreakdown(ctx context.Context, req *connect.Request[ComputeBreakdownRequest]) (*connect.Response[ComputeBreakdownResponse], error) {
	return c.computeBreakdown.CallUnary(ctx, req)
}

func (c *SplitServiceClient) ShareText(ctx context.Context, req *connect.Request[ShareTextRequest]) (*connect.Response[ShareTextResponse], error) {
	return c.shareText.CallUnary(ctx, req)
}

// ReceiptServiceClient calls a remote ReceiptService.
type ReceiptServiceClient struct {
	scanReceipt *connect.Client[ScanReceiptRequest, ScanReceiptResponse]
}

// NewReceiptServiceClient creates a client for the ReceiptService at baseURL.
func NewReceiptServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ReceiptServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &ReceiptServiceClient{
		scanReceipt: connect.NewClient[ScanReceiptRequest, ScanReceiptResponse](httpClient, baseURL+ReceiptServiceScanReceiptProcedure, opts...),
	}
}

func (c *ReceiptServiceClient) ScanReceipt(ctx context.Context, req *connect.Request[ScanReceiptRequest]) (*connect.Response[ScanReceiptResponse], error) {
	return c.scanReceipt.CallUnary(ctx, req)
}
