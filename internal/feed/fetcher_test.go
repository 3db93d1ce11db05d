package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gridironhq/sportwire/internal/models"
)

func testFetcher(timeout time.Duration) *Fetcher {
	return NewFetcher(FetcherOptions{
		Timeout:    timeout,
		MaxRetries: 3,
		RetryDelay: 10 * time.Millisecond,
		UserAgent:  "sportwire-test",
	})
}

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<rss>payload</rss>"))
	}))
	defer server.Close()

	payload, err := testFetcher(time.Second).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(payload) != "<rss>payload</rss>" {
		t.Errorf("Unexpected payload %q", payload)
	}
}

func TestFetchClientErrorIsTerminal(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testFetcher(time.Second).Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}

	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *models.FetchError, got %T", err)
	}
	if fetchErr.Kind != models.FetchHTTPError || fetchErr.Status != http.StatusNotFound {
		t.Errorf("Unexpected classification %+v", fetchErr)
	}
	if fetchErr.Retryable() {
		t.Error("4xx must not be retryable")
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("Expected exactly 1 attempt for client error, got %d", got)
	}
}

func TestFetchServerErrorRetries(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testFetcher(time.Second).Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for persistent 500 response")
	}

	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *models.FetchError, got %T", err)
	}
	if fetchErr.Kind != models.FetchHTTPError || fetchErr.Status != http.StatusInternalServerError {
		t.Errorf("Unexpected classification %+v", fetchErr)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("Expected 3 attempts for transient error, got %d", got)
	}
}

func TestFetchEventualSuccess(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	payload, err := testFetcher(time.Second).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(payload) != "ok" {
		t.Errorf("Unexpected payload %q", payload)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("Expected success on 3rd attempt, got %d attempts", got)
	}
}

func TestFetchConnectionFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := testFetcher(time.Second).Fetch(context.Background(), url)
	if err == nil {
		t.Fatal("Expected error for closed server")
	}

	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *models.FetchError, got %T", err)
	}
	if fetchErr.Kind != models.FetchConnectionFailed {
		t.Errorf("Expected connection failure, got %q", fetchErr.Kind)
	}
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	_, err := testFetcher(30 * time.Millisecond).Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected timeout error")
	}

	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *models.FetchError, got %T", err)
	}
	if fetchErr.Kind != models.FetchTimeout {
		t.Errorf("Expected timeout classification, got %q", fetchErr.Kind)
	}
}
