package httpfetch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/mediasense/internal/domain"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "mediasense/") {
				t.Errorf("User-Agent = %q", ua)
			}
			_, _ = w.Write([]byte("pngbytes"))
		case "/big":
			_, _ = w.Write(bytes.Repeat([]byte("x"), 64))
		case "/empty":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f := New(time.Second, 32)

	data, err := f.Fetch(context.Background(), server.URL+"/ok.png")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != "pngbytes" {
		t.Errorf("body = %q", data)
	}

	tests := []struct {
		path string
		want error
	}{
		{"/missing", domain.ErrValidation},
		{"/big", domain.ErrValidation},
		{"/empty", domain.ErrDecode},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if _, err := f.Fetch(context.Background(), server.URL+tc.path); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFetch_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	if _, err := New(time.Second, 1024).Fetch(context.Background(), url); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	if _, err := New(20*time.Millisecond, 1024).Fetch(context.Background(), server.URL); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
