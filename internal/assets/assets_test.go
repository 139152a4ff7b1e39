package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

func TestHTTPPreloader_FetchesAndDrains(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("png bytes"))
	}))
	defer srv.Close()

	p := NewHTTPPreloader(zap.NewNop())
	if err := p.Preload(context.Background(), srv.URL+"/preview.png"); err != nil {
		t.Fatalf("preload: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
}

func TestHTTPPreloader_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	p := NewHTTPPreloader(zap.NewNop())
	if err := p.Preload(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestHTTPPreloader_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewHTTPPreloader(zap.NewNop())
	if err := p.Preload(ctx, srv.URL); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
