package product

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Found(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/P1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "P1", "stock": 5, "price": 9.99}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	snap, err := c.Fetch(context.Background(), "P1")

	require.NoError(t, err)
	assert.Equal(t, "P1", snap.ID)
	assert.Equal(t, 5, snap.Stock)
	assert.Equal(t, 9.99, snap.Price)
}

func TestFetch_NumericID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": 42, "stock": 3, "price": 1.5}`))
	}))
	defer srv.Close()

	snap, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Stock)
}

func TestFetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail": "Product not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetch_RemoteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), "P1")
	assert.ErrorIs(t, err, ErrRemoteStatus)
}

func TestFetch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), "P1")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFetch_MissingStockField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": "P1", "price": 9.99}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), "P1")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFetch_NegativeStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": "P1", "stock": -1, "price": 9.99}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), "P1")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // nothing listens on this address anymore

	_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), "P1")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 30*time.Millisecond).Fetch(context.Background(), "P1")
	assert.ErrorIs(t, err, ErrUnreachable)
}

// Same inputs against unchanged remote state classify identically.
func TestFetch_ClassificationIsStable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	for i := 0; i < 3; i++ {
		_, err := c.Fetch(context.Background(), "gone")
		assert.ErrorIs(t, err, ErrNotFound)
	}
}
