package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/market/spot", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"price": 1875.5}`))
	})
	mux.HandleFunc("/onchain/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tvl": 2500000, "apy": 4.1, "gas_price": 35}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetSpotPrice(t *testing.T) {
	srv := newTestServer(t)
	p := NewProvider(srv.URL, "/market/spot", "/onchain/metrics", time.Second)

	price, err := p.GetSpotPrice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 1875.5 {
		t.Fatalf("price: got %v", price)
	}
}

func TestGetOnChainMetrics(t *testing.T) {
	srv := newTestServer(t)
	p := NewProvider(srv.URL, "/market/spot", "/onchain/metrics", time.Second)

	m, err := p.GetOnChainMetrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TVL != 2500000 || m.APY != 4.1 || m.GasPrice != 35 {
		t.Fatalf("metrics mismatch: %+v", m)
	}
}

func TestGetSpotPriceRejectsNonPositive(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/market/spot", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"price": 0}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewProvider(srv.URL, "/market/spot", "/onchain/metrics", time.Second)
	if _, err := p.GetSpotPrice(context.Background()); err == nil {
		t.Fatalf("expected error for non-positive price")
	}
}

func TestGetSpotPriceServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/market/spot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewProvider(srv.URL, "/market/spot", "/onchain/metrics", time.Second)
	if _, err := p.GetSpotPrice(context.Background()); err == nil {
		t.Fatalf("expected error for 502 response")
	}
}
