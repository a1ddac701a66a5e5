// Package network talks to a node's REST gateway and discovers nodes over DNS.
package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bitfsorg/catapult-go/chain"
	"github.com/bitfsorg/catapult-go/tx"
)

// Client is a REST client for one node. It implements TransactionService.
type Client struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

var _ TransactionService = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the pooled default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client for the node at baseURL (e.g. http://localhost:3000).
// It maintains a connection pool for efficient reuse.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		url: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the node base URL.
func (c *Client) URL() string { return c.url }

type payloadRequest struct {
	Payload string `json:"payload"`
}

type cosignatureRequest struct {
	ParentHash string `json:"parentHash"`
	Signature  string `json:"signature"`
	Signer     string `json:"signer"`
}

type blockResponse struct {
	Meta struct {
		GenerationHash string `json:"generationHash"`
	} `json:"meta"`
}

// Announce implements TransactionService.
func (c *Client) Announce(ctx context.Context, signed *tx.SignedTransaction) error {
	if signed == nil {
		return fmt.Errorf("%w: nil signed transaction", tx.ErrNilParam)
	}
	return c.do(ctx, http.MethodPut, "/transaction", payloadRequest{Payload: signed.PayloadHex()}, nil)
}

// AnnounceAggregateBonded implements TransactionService.
func (c *Client) AnnounceAggregateBonded(ctx context.Context, signed *tx.SignedTransaction) error {
	if signed == nil {
		return fmt.Errorf("%w: nil signed transaction", tx.ErrNilParam)
	}
	if signed.Type != tx.TypeAggregateBonded {
		return fmt.Errorf("%w: got %s", tx.ErrNotBondedAggregate, signed.Type)
	}
	return c.do(ctx, http.MethodPut, "/transaction/partial", payloadRequest{Payload: signed.PayloadHex()}, nil)
}

// AnnounceCosignature implements TransactionService.
func (c *Client) AnnounceCosignature(ctx context.Context, cosig *tx.CosignatureSignedTransaction) error {
	if cosig == nil {
		return fmt.Errorf("%w: nil cosignature", tx.ErrNilParam)
	}
	req := cosignatureRequest{
		ParentHash: cosig.ParentHash.String(),
		Signature:  cosig.Signature.String(),
		Signer:     cosig.Signer.String(),
	}
	return c.do(ctx, http.MethodPut, "/transaction/cosignature", req, nil)
}

// GetTransactionStatus implements TransactionService. Unknown hashes return ErrTxNotFound.
func (c *Client) GetTransactionStatus(ctx context.Context, hash tx.Hash) (*TransactionStatus, error) {
	var status TransactionStatus
	if err := c.do(ctx, http.MethodGet, "/transaction/"+hash.String()+"/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetGenerationHash implements TransactionService by reading the nemesis block.
func (c *Client) GetGenerationHash(ctx context.Context) (chain.GenerationHash, error) {
	var block blockResponse
	if err := c.do(ctx, http.MethodGet, "/block/1", nil, &block); err != nil {
		return chain.GenerationHash{}, err
	}
	g, err := chain.ParseGenerationHash(block.Meta.GenerationHash)
	if err != nil {
		return g, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return g, nil
}

// do sends a JSON request and decodes a JSON response into result. A nil
// body sends no payload; a nil result discards the response.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("network: marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reader)
	if err != nil {
		return fmt.Errorf("network: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("node request")

	if resp.StatusCode == http.StatusNotFound && method == http.MethodGet {
		return fmt.Errorf("%w: %s", ErrTxNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: HTTP %d: %s", ErrConnectionFailed, resp.StatusCode, string(respBody))
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrInvalidResponse, err)
	}
	return nil
}
