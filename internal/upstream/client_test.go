package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchAttachesKeyAndHeaders(t *testing.T) {
	var gotKey, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(http.DefaultTransport)
	body, err := c.Fetch(context.Background(), srv.URL+"/v1/things", "sk-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %q", body)
	}
	if gotKey != "sk-test" {
		t.Errorf("X-API-Key = %q, want %q", gotKey, "sk-test")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestFetchNonSuccessBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"retry_after":5}`))
	}))
	defer srv.Close()

	c := NewClient(http.DefaultTransport)
	_, err := c.Fetch(context.Background(), srv.URL, "k")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
	}
	if string(apiErr.Body) != `{"retry_after":5}` {
		t.Errorf("Body = %q, want unmodified upstream body", apiErr.Body)
	}
}

func TestFetchNetworkFailure(t *testing.T) {
	c := NewClient(http.DefaultTransport)
	_, err := c.Fetch(context.Background(), "http://127.0.0.1:1/unreachable", "k")
	if err == nil {
		t.Fatal("expected error for unreachable upstream")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("network failure must not classify as APIError")
	}
}
