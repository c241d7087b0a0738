package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"kayexpress/internal/domain"
	"kayexpress/internal/middleware"
)

// Gateway statuses as they appear in charge responses and webhook
// payloads.
const (
	GatewayProcessing = "processing"
	GatewaySuccessful = "successful"
	GatewayFailed     = "failed"
)

type ChargeRequest struct {
	Reference    string               `json:"reference"`
	Amount       float64              `json:"amount"`
	Currency     string               `json:"currency"`
	Method       domain.PaymentMethod `json:"method"`
	MomoProvider domain.MomoProvider  `json:"momo_provider,omitempty"`
	MomoNumber   string               `json:"momo_number,omitempty"`
}

type ChargeResult struct {
	TxnID  string `json:"transaction_id"`
	Status string `json:"status"`
}

type GatewayState struct {
	TxnID  string `json:"transaction_id"`
	Status string `json:"status"`
}

// Gateway is the payment processor. Charges are asynchronous: Charge
// returns a transaction id and the final outcome arrives later on the
// webhook. Lookup answers client polling in the meantime.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Lookup(ctx context.Context, txnID string) (*GatewayState, error)
}

// SimulatedGateway stands in for the processor in development and
// tests. The outcome is decided at charge time, like sandbox
// processors do with magic test numbers, and encoded in the
// transaction id so Lookup needs no state.
type SimulatedGateway struct {
	loggerf func(format string, args ...interface{})
}

func NewSimulatedGateway(loggerf func(format string, args ...interface{})) *SimulatedGateway {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &SimulatedGateway{loggerf: loggerf}
}

// Charge accepts everything except mobile money wallets ending in
// 0000, which decline.
func (g *SimulatedGateway) Charge(_ context.Context, req ChargeRequest) (*ChargeResult, error) {
	outcome := "OK"
	if strings.HasSuffix(req.MomoNumber, "0000") {
		outcome = "DECLINED"
	}
	txnID := fmt.Sprintf("SIM-%s-%s", outcome, uuid.NewString())
	g.loggerf("level=info msg=simulated charge accepted reference=%s amount=%.2f txn_id=%s", req.Reference, req.Amount, txnID)
	return &ChargeResult{TxnID: txnID, Status: GatewayProcessing}, nil
}

func (g *SimulatedGateway) Lookup(_ context.Context, txnID string) (*GatewayState, error) {
	switch {
	case strings.HasPrefix(txnID, "SIM-OK-"):
		return &GatewayState{TxnID: txnID, Status: GatewaySuccessful}, nil
	case strings.HasPrefix(txnID, "SIM-DECLINED-"):
		return &GatewayState{TxnID: txnID, Status: GatewayFailed}, nil
	}
	return nil, fmt.Errorf("unknown transaction %q", txnID)
}

// HTTPGateway talks to the live processor. Request bodies carry the
// same HMAC signature the processor puts on its webhook callbacks.
type HTTPGateway struct {
	baseURL string
	secret  string
	client  *http.Client
	loggerf func(format string, args ...interface{})
}

func NewHTTPGateway(baseURL, secret string, loggerf func(format string, args ...interface{})) *HTTPGateway {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		client:  &http.Client{Timeout: 30 * time.Second},
		loggerf: loggerf,
	}
}

func (g *HTTPGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(middleware.SignatureHeader, middleware.Sign(body, g.secret))

	var result ChargeResult
	if err := g.do(httpReq, &result); err != nil {
		return nil, err
	}
	g.loggerf("level=info msg=gateway charge accepted reference=%s txn_id=%s status=%s", req.Reference, result.TxnID, result.Status)
	return &result, nil
}

func (g *HTTPGateway) Lookup(ctx context.Context, txnID string) (*GatewayState, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/charges/"+url.PathEscape(txnID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set(middleware.SignatureHeader, middleware.Sign(nil, g.secret))

	var state GatewayState
	if err := g.do(httpReq, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (g *HTTPGateway) do(req *http.Request, out interface{}) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned %s: %s", resp.Status, respBody)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
