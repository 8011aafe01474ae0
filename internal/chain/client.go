// Package chain talks to the Monad JSON-RPC endpoint and verifies
// game-fee payment transactions.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Client is a minimal Monad (EVM) JSON-RPC client.
type Client struct {
	rpcURL     string
	httpClient *http.Client

	// Rate limiting, public RPC endpoints throttle aggressively.
	mu       sync.Mutex
	lastCall time.Time
	minDelay time.Duration
}

// NewClient creates a new JSON-RPC client for the given endpoint.
func NewClient(rpcURL string, timeout, minDelay time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		rpcURL: strings.TrimSuffix(rpcURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		minDelay: minDelay,
	}
}

func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.lastCall)
	if elapsed < c.minDelay {
		time.Sleep(c.minDelay - elapsed)
	}
	c.lastCall = time.Now()
}

// call performs one JSON-RPC request and unmarshals the result field
// into out. A null result leaves out untouched and returns false.
func (c *Client) call(ctx context.Context, method string, params []any, out any) (bool, error) {
	c.throttle()

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return false, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return false, fmt.Errorf("RPC error %d: %s", resp.StatusCode, string(data))
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return false, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if envelope.Error != nil {
		return false, fmt.Errorf("RPC error %d: %s", envelope.Error.Code, envelope.Error.Message)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return false, nil
	}

	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return false, fmt.Errorf("unmarshal result: %w", err)
	}
	return true, nil
}

// GetTransactionReceipt returns the receipt for a transaction hash, or
// nil if the transaction is unknown or not yet mined.
func (c *Client) GetTransactionReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	var receipt Receipt
	found, err := c.call(ctx, "eth_getTransactionReceipt", []any{txHash}, &receipt)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &receipt, nil
}

// GetTransactionByHash returns a transaction by hash, or nil if the
// node does not know it.
func (c *Client) GetTransactionByHash(ctx context.Context, txHash string) (*Transaction, error) {
	var tx Transaction
	found, err := c.call(ctx, "eth_getTransactionByHash", []any{txHash}, &tx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &tx, nil
}
