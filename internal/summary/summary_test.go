package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	t.Setenv("SCRAWL_SUMMARY_TOKEN", "sekrit")

	var gotBody request
	var gotAuth, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(response{Summary: "two boxes and an arrow"})
	}))
	defer srv.Close()

	c := New(srv.URL, "base")
	got, err := c.Summarize(context.Background(), []string{"plan", "ship it"})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "two boxes and an arrow" {
		t.Errorf("unexpected summary: %q", got)
	}
	if gotAuth != "Bearer sekrit" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
	if gotType != "application/json" {
		t.Errorf("unexpected content type: %q", gotType)
	}
	if gotBody.Model != "base" || len(gotBody.Texts) != 2 || gotBody.Texts[1] != "ship it" {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
}

func TestSummarizeNoToken(t *testing.T) {
	t.Setenv("SCRAWL_SUMMARY_TOKEN", "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("expected no auth header, got %q", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(response{Summary: "ok"})
	}))
	defer srv.Close()

	if _, err := New(srv.URL, "").Summarize(context.Background(), []string{"x"}); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
}

func TestSummarizeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Summarize(context.Background(), []string{"x"})
	if err == nil {
		t.Fatal("expected an error for a 503 response")
	}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("expected status and body in error, got %v", err)
	}
}

func TestSummarizeErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(response{Error: "texts too long"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Summarize(context.Background(), []string{"x"})
	if err == nil || err.Error() != "texts too long" {
		t.Fatalf("expected endpoint error to surface, got %v", err)
	}
}

func TestSummarizeEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(response{Summary: "   "})
	}))
	defer srv.Close()

	if _, err := New(srv.URL, "").Summarize(context.Background(), []string{"x"}); err == nil {
		t.Fatal("expected an error for a blank summary")
	}
}

func TestSummarizeNoEndpoint(t *testing.T) {
	_, err := New("", "").Summarize(context.Background(), []string{"x"})
	if !errors.Is(err, errNoEndpoint) {
		t.Fatalf("expected errNoEndpoint, got %v", err)
	}
}

func TestSummarizeCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(response{Summary: "late"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(srv.URL, "").Summarize(ctx, []string{"x"}); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
