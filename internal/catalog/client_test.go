package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, discardLogger()), srv
}

func Test_Client_Products(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"title":"Backpack","price":109.95,"category":"men's clothing","rating":{"rate":3.9,"count":120}},
			{"id":2,"title":"T-Shirt","price":22.3,"category":"men's clothing","rating":{"rate":4.1,"count":259}}
		]`))
	})

	products := client.Products(context.Background())
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Backpack", products[0].Title)
	assert.InDelta(t, 109.95, products[0].Price, 1e-9)
	assert.InDelta(t, 3.9, products[0].Rating.Rate, 1e-9)
	assert.Equal(t, 120, products[0].Rating.Count)
}

func Test_Client_Products_UpstreamFailure(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("not-json"))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, tc.handler)

			// Failures degrade to an empty list, never an error.
			products := client.Products(context.Background())
			assert.NotNil(t, products)
			assert.Empty(t, products)
		})
	}
}

func Test_Client_Products_UnreachableUpstream(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {})
	srv.Close()

	assert.Empty(t, client.Products(context.Background()))
	assert.Empty(t, client.Categories(context.Background()))
	assert.Nil(t, client.ProductByID(context.Background(), 1))
}

func Test_Client_ProductByID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":7,"title":"Hard Drive","price":64,"category":"electronics"}`))
	})

	product := client.ProductByID(context.Background(), 7)
	require.NotNil(t, product)
	assert.Equal(t, int64(7), product.ID)
	assert.Equal(t, "electronics", product.Category)
}

func Test_Client_ProductByID_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	assert.Nil(t, client.ProductByID(context.Background(), 999))
}

func Test_Client_Categories(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		_, _ = w.Write([]byte(`["electronics","jewelery","men's clothing","women's clothing"]`))
	})

	categories := client.Categories(context.Background())
	assert.Equal(t, []string{"electronics", "jewelery", "men's clothing", "women's clothing"}, categories)
}
