package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	client := NewClient()
	body, err := client.GetString(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetString(): %v", err)
	}
	if body != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
}

func TestClient_GetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient()
	_, err := client.GetString(context.Background(), srv.URL)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.Code != 404 {
		t.Errorf("Code = %d, want 404", statusErr.Code)
	}
}

func TestClient_GetStringNoFollow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		w.Write([]byte("landing"))
	}))
	defer srv.Close()

	client := NewClient()

	// The redirect is reported, not followed.
	_, err := client.GetStringNoFollow(context.Background(), srv.URL+"/gone")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusFound {
		t.Errorf("Code = %d, want %d", statusErr.Code, http.StatusFound)
	}

	// Non-redirecting pages come through normally.
	body, err := client.GetStringNoFollow(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetStringNoFollow(): %v", err)
	}
	if body != "landing" {
		t.Errorf("body = %q", body)
	}
}

func TestClient_UnreachableHost(t *testing.T) {
	client := NewClient()
	_, err := client.GetString(context.Background(), "http://127.0.0.1:1/unreachable")
	if err == nil {
		t.Error("expected error for unreachable host")
	}
}
