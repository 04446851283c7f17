package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"testing"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestInferer(fn roundTripFunc) *HTTPInferer {
	h := NewHTTPInferer(testTracer, "https://models.example.com/", "chart_patterns_1", 0, nil)
	h.client = &http.Client{Transport: fn}
	return h
}

func TestHTTPInfererInfer(t *testing.T) {
	h := newTestInferer(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", req.Method)
		}
		if req.URL.Path != "/v1/models/chart_patterns_1:classify" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		var payload classifyRequest
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		raw, err := base64.StdEncoding.DecodeString(payload.Image)
		if err != nil {
			t.Fatalf("decode base64: %v", err)
		}
		if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
			t.Fatalf("expected png payload: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"predictions":[{"label":"Hammer","confidence":0.8},{"label":"Doji","confidence":0.2}]}`), nil
	})

	obs, err := h.Infer(context.Background(), testImage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 2 || obs[0].Label != "Hammer" || obs[0].Confidence != 0.8 {
		t.Fatalf("unexpected observations: %+v", obs)
	}
}

func TestHTTPInfererInferServerError(t *testing.T) {
	h := newTestInferer(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, "oom"), nil
	})
	if _, err := h.Infer(context.Background(), testImage()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestHTTPInfererInferNilImage(t *testing.T) {
	h := newTestInferer(func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})
	if _, err := h.Infer(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil image")
	}
}

func TestHTTPInfererLoad(t *testing.T) {
	h := newTestInferer(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodGet || req.URL.Path != "/v1/models/chart_patterns_1" {
			t.Fatalf("unexpected request: %s %s", req.Method, req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"name":"chart_patterns_1","ready":true,"labels":["Hammer"]}`), nil
	})
	if err := h.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTPInfererLoadNotReady(t *testing.T) {
	h := newTestInferer(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"name":"chart_patterns_1","ready":false}`), nil
	})
	if err := h.Load(context.Background()); !errors.Is(err, ErrModelNotReady) {
		t.Fatalf("expected ErrModelNotReady, got %v", err)
	}

	h = newTestInferer(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, "no such model"), nil
	})
	if err := h.Load(context.Background()); !errors.Is(err, ErrModelNotReady) {
		t.Fatalf("expected ErrModelNotReady for 404, got %v", err)
	}
}

func TestHTTPInfererFeedsModelWrapper(t *testing.T) {
	h := newTestInferer(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"predictions":[]}`), nil
	})
	got := NewModel(testTracer, "chart_patterns_1", h).Classify(context.Background(), testImage())
	if !got.IsEmpty() {
		t.Fatalf("expected empty result, got %+v", got)
	}
}
