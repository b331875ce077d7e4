package clip

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kailas-cloud/mediasense/internal/domain"
	"github.com/kailas-cloud/mediasense/internal/imaging"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestClient_EmbedImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/generate-embeddings" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()

		img, err := jpeg.Decode(f)
		if err != nil {
			t.Errorf("uploaded file is not a jpeg: %v", err)
		} else if b := img.Bounds(); b.Dx() != imaging.ModelSide || b.Dy() != imaging.ModelSide {
			t.Errorf("uploaded size = %dx%d", b.Dx(), b.Dy())
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"embeddings":[0.1,0.2,0.3]}`))
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL + "/", Model: "ViT-B/32"})
	res, err := c.EmbedImage(context.Background(), pngBytes(t, 40, 30))
	if err != nil {
		t.Fatalf("EmbedImage failed: %v", err)
	}
	if res.Dimensions() != 3 || res.Backend != BackendName || res.Model != "ViT-B/32" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestClient_EmbedImage_DecodeError(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer server.Close()

	_, err := New(Config{BaseURL: server.URL}).EmbedImage(context.Background(), []byte("not an image"))
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if called {
		t.Error("backend must not be called for undecodable bytes")
	}
}

func TestClient_EmbedText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate-query-embedding" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.FormValue("query_text"); got != "a red car" {
			t.Errorf("query_text = %q", got)
		}
		_, _ = w.Write([]byte(`{"embeddings":[1,0]}`))
	}))
	defer server.Close()

	res, err := New(Config{BaseURL: server.URL}).EmbedText(context.Background(), "a red car")
	if err != nil {
		t.Fatalf("EmbedText failed: %v", err)
	}
	if res.Dimensions() != 2 || res.Embedding[0] != 1 {
		t.Errorf("unexpected embedding %v", res.Embedding)
	}
}

func TestClient_BackendErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"detail":"cuda oom"}`},
		{"empty embeddings", http.StatusOK, `{"embeddings":[]}`},
		{"garbage body", http.StatusOK, `<html>`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := New(Config{BaseURL: server.URL}).EmbedText(context.Background(), "x")
			if !errors.Is(err, domain.ErrBackend) {
				t.Fatalf("expected ErrBackend, got %v", err)
			}
		})
	}
}

func TestClient_EmbedText_Empty(t *testing.T) {
	if _, err := New(Config{BaseURL: "http://127.0.0.1:1"}).EmbedText(context.Background(), "  "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestClient_HealthCheck(t *testing.T) {
	healthy := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	if err := c.HealthCheck(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}
	healthy = false
	if err := c.HealthCheck(context.Background()); !errors.Is(err, domain.ErrBackend) {
		t.Fatalf("expected ErrBackend, got %v", err)
	}
}
