package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Classification of a failed lookup. The orchestrator branches on these,
// so they must stay distinguishable; never collapse them into one error.
var (
	ErrNotFound     = errors.New("product not found")
	ErrUnreachable  = errors.New("product service unreachable")
	ErrMalformed    = errors.New("malformed product response")
	ErrRemoteStatus = errors.New("product service error")
)

// Snapshot is a point-in-time read of the remote product. It is fetched
// fresh on every order-creation attempt and never cached locally.
type Snapshot struct {
	ID    string
	Stock int
	Price float64
}

// Client issues one GET per Fetch against the product service. It keeps no
// state between calls and never retries; a single attempt bounds latency
// and avoids duplicate side effects on the remote.
type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// remote payload; id is raw so both string and numeric ids decode.
type productPayload struct {
	ID    json.RawMessage `json:"id"`
	Stock *int            `json:"stock"`
	Price float64         `json:"price"`
}

func (c *Client) Fetch(ctx context.Context, productID string) (Snapshot, error) {
	u := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(productID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: build request: %v", ErrUnreachable, err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		// connection refused, DNS failure, or timeout elapsed
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Snapshot{}, fmt.Errorf("%w: id=%s", ErrNotFound, productID)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Snapshot{}, fmt.Errorf("%w: status %d", ErrRemoteStatus, resp.StatusCode)
	}

	var p productPayload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(p.ID) == 0 || p.Stock == nil || *p.Stock < 0 {
		return Snapshot{}, fmt.Errorf("%w: missing id or stock", ErrMalformed)
	}

	return Snapshot{ID: productID, Stock: *p.Stock, Price: p.Price}, nil
}
