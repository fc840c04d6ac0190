package qstash

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPublishRequestShape(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	client := MustNew(
		Config{URL: server.URL, Token: "token"},
		WithHTTPClient(server.Client()),
	)

	payload := map[string]string{"order_id": "SL1001"}
	if err := client.Publish(context.Background(), "https://support.example/hook", payload); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if gotPath != "/v2/publish/https://support.example/hook" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer token" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	var decoded map[string]string
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if decoded["order_id"] != "SL1001" {
		t.Fatalf("unexpected body: %s", gotBody)
	}
}

func TestPublishRejectsEmptyDestination(t *testing.T) {
	t.Parallel()

	client := MustNew(Config{URL: "https://qstash.upstash.io", Token: "token"})
	if err := client.Publish(context.Background(), "  ", nil); err == nil {
		t.Fatal("expected error for empty destination")
	}
}

func TestPublishSurfacesHTTPFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := MustNew(
		Config{URL: server.URL, Token: "bad"},
		WithHTTPClient(server.Client()),
	)
	if err := client.Publish(context.Background(), "https://support.example/hook", nil); err == nil {
		t.Fatal("expected error for http failure")
	}
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{Token: "t", URL: ""}); err == nil {
		t.Fatal("expected error for empty url")
	}
	if _, err := NewClient(Config{URL: "https://qstash.upstash.io"}); err == nil {
		t.Fatal("expected error for empty token")
	}
}
