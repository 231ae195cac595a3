package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mbms-project/mbms-gateway/pkg/middleware"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func ctxWithToken(token string) context.Context {
	return context.WithValue(context.Background(), middleware.TokenKey, token)
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})
	defer srv.Close()

	if err := client.Get(ctxWithToken("tok-123"), "/orders", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization: got %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestDoAnonymousWithoutToken(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})
	defer srv.Close()

	var out []struct{}
	if err := client.Get(context.Background(), "/payments", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization sent on anonymous call: %q", gotAuth)
	}
}

func TestDoDecodesResponse(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_id":"o1","deviceName":"Pixel 8"}`))
	})
	defer srv.Close()

	var out struct {
		ID         string `json:"_id"`
		DeviceName string `json:"deviceName"`
	}
	if err := client.Get(context.Background(), "/orders/o1", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.ID != "o1" || out.DeviceName != "Pixel 8" {
		t.Errorf("decoded: %+v", out)
	}
}

func TestDoMapsUnauthorized(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	err := client.Post(context.Background(), "/users/login", map[string]string{"email": "x"}, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestDoMapsAPIError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"quantity is required"}`))
	})
	defer srv.Close()

	err := client.Post(context.Background(), "/orders", map[string]string{}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T (%v), want *APIError", err, err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", apiErr.Status)
	}
	if apiErr.Message != "quantity is required" {
		t.Errorf("message: got %q", apiErr.Message)
	}
}

func TestDoEmptyBodySuccess(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	if err := client.Delete(context.Background(), "/orders/o1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
