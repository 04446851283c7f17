package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chart-signal/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrModelNotReady = errors.New("model not ready")

// HTTPInferer calls one model hosted on a remote model server.
type HTTPInferer struct {
	client  *http.Client
	baseURL string
	modelID string
	limiter *RateLimiter
	tracer  trace.Tracer
}

func NewHTTPInferer(tracer trace.Tracer, baseURL, modelID string, timeout time.Duration, limiter *RateLimiter) *HTTPInferer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPInferer{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		modelID: modelID,
		limiter: limiter,
		tracer:  tracer,
	}
}

type modelStatus struct {
	Name   string   `json:"name"`
	Ready  bool     `json:"ready"`
	Labels []string `json:"labels"`
}

type classifyRequest struct {
	Image string `json:"image"`
}

type classifyResponse struct {
	Predictions []domain.Observation `json:"predictions"`
}

// Load checks that the model server has the model loaded and ready to serve.
func (h *HTTPInferer) Load(ctx context.Context) error {
	ctx, span := h.tracer.Start(ctx, "inference.load")
	defer span.End()
	span.SetAttributes(attribute.String("model.id", h.modelID))

	endpoint := h.baseURL + "/v1/models/" + url.PathEscape(h.modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("load model %s: %w", h.modelID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("load model %s: status %d: %s: %w", h.modelID, resp.StatusCode, strings.TrimSpace(string(body)), ErrModelNotReady)
	}

	var status modelStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("decode model status for %s: %w", h.modelID, err)
	}
	if !status.Ready {
		return fmt.Errorf("load model %s: %w", h.modelID, ErrModelNotReady)
	}
	return nil
}

func (h *HTTPInferer) Infer(ctx context.Context, img image.Image) ([]domain.Observation, error) {
	ctx, span := h.tracer.Start(ctx, "inference.classify")
	defer span.End()
	span.SetAttributes(attribute.String("model.id", h.modelID))

	if img == nil {
		return nil, errors.New("nil image")
	}
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	payload, err := json.Marshal(classifyRequest{Image: base64.StdEncoding.EncodeToString(buf.Bytes())})
	if err != nil {
		return nil, err
	}

	endpoint := h.baseURL + "/v1/models/" + url.PathEscape(h.modelID) + ":classify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("model server error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode classify response: %w", err)
	}
	return out.Predictions, nil
}
