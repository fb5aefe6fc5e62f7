// Package api is the HTTP client for the catalog backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jask/catalogedit/internal/catalog"
)

const (
	PathGet    = "/api/product/get"
	PathUpdate = "/api/product/update"
	PathDelete = "/api/product/delete"

	maxBody = 1 << 20
)

var (
	ErrNotFound         = errors.New("api: product not found")
	ErrIncompleteRecord = errors.New("api: incomplete product record")
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Code    string
	Details string
}

func (e *Error) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s (%d)", e.Code, e.Status)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Details)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client talks to the catalog backend. It is safe for concurrent use.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
		log:  zap.L(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("api")
	return c
}

type idRequest struct {
	ProductID string `json:"productId"`
}

type ack struct {
	OK bool `json:"ok"`
}

// Lookup fetches one product. A response lacking any of the mutable fields
// fails with ErrIncompleteRecord.
func (c *Client) Lookup(ctx context.Context, id string) (catalog.Product, error) {
	var w wireProduct
	if err := c.post(ctx, PathGet, idRequest{ProductID: id}, &w); err != nil {
		return catalog.Product{}, err
	}
	return w.product(id)
}

// Update sends every mutable field together with product and vendor ids.
func (c *Client) Update(ctx context.Context, req catalog.UpdateRequest) error {
	var a ack
	return c.post(ctx, PathUpdate, req, &a)
}

// Delete removes a product by id.
func (c *Client) Delete(ctx context.Context, req catalog.DeleteRequest) error {
	var a ack
	return c.post(ctx, PathDelete, req, &a)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	c.log.Debug("request done",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", resp.Header.Get("X-Request-Id")),
	)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	e := &Error{Status: status}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		e.Code = payload.Error
		e.Details = payload.Details
		return e
	}
	e.Code = strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	e.Details = strings.TrimSpace(string(data))
	return e
}
