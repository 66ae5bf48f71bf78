package social

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPostUnsupportedPlatform(t *testing.T) {
	p, err := New("", "", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, platform := range []string{"myspace", "discord", ""} {
		if err := p.Post(context.Background(), platform, "hi"); !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("Post(%q) err = %v, want ErrUnsupportedPlatform", platform, err)
		}
	}
}

func TestPostWebhook(t *testing.T) {
	var gotBody map[string]string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p, err := New("", "", map[string]string{"facebook": srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := p.Post(context.Background(), "Facebook", "fresh copy"); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if gotBody["content"] != "fresh copy" {
		t.Errorf("webhook body = %v", gotBody)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
}

func TestPostWebhookUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, err := New("", "", map[string]string{"twitter": srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := p.Post(context.Background(), "twitter", "x"); err == nil {
		t.Fatal("expected error on non-2xx webhook response")
	}
}
