package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const hfBaseURL = "https://api-inference.huggingface.co/models"

// Loading-retry wait bounds. The backend reports its own estimate but
// we clamp it so a wild estimate cannot stall the chat.
const (
	minLoadingWait = 2 * time.Second
	maxLoadingWait = 10 * time.Second
)

// HuggingFaceClient calls the Hugging Face inference API for
// text-to-image models
type HuggingFaceClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	minWait    time.Duration
	maxWait    time.Duration
}

// NewHuggingFaceClient creates a client with a bounded request timeout
func NewHuggingFaceClient(token string, timeout time.Duration, logger *zap.Logger) *HuggingFaceClient {
	return &HuggingFaceClient{
		token:   token,
		baseURL: hfBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		minWait: minLoadingWait,
		maxWait: maxLoadingWait,
	}
}

// hfParameters mirrors the inference API "parameters" object
type hfParameters struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

// hfErrorBody covers both shapes the API uses: "error" may be a string
// or a list of strings; "estimated_time" is present on the loading 503
type hfErrorBody struct {
	Error         json.RawMessage `json:"error"`
	EstimatedTime float64         `json:"estimated_time"`
}

// Generate issues one request; if the model reports it is still
// loading, it waits a clamped interval and retries exactly once
func (c *HuggingFaceClient) Generate(ctx context.Context, req Request) (*Result, error) {
	result, wait, err := c.post(ctx, req)
	if wait == 0 {
		return result, err
	}

	c.logger.Info("Model is loading, retrying once",
		zap.String("model", req.Model),
		zap.Duration("wait", wait),
	)

	select {
	case <-time.After(wait):
	case <-ctx.Done():
		return nil, &Error{Kind: KindOther, Message: "timeout"}
	}

	result, wait, err = c.post(ctx, req)
	if wait != 0 {
		// Still loading after the single retry
		return nil, &Error{Kind: KindUnavailable, Message: "model is still loading"}
	}
	return result, err
}

// post performs one HTTP round trip. A non-zero wait means the backend
// reported a loading state and the caller may retry after waiting.
func (c *HuggingFaceClient) post(ctx context.Context, req Request) (*Result, time.Duration, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: req.Prompt,
		Parameters: hfParameters{
			Width:  req.Width,
			Height: req.Height,
		},
	})
	if err != nil {
		return nil, 0, &Error{Kind: KindOther, Message: err.Error()}
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, &Error{Kind: KindOther, Message: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, 0, &Error{Kind: KindOther, Message: "timeout"}
		}
		return nil, 0, &Error{Kind: KindOther, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &Error{Kind: KindOther, Message: err.Error()}
	}

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode == http.StatusOK && strings.HasPrefix(contentType, "image/") {
		return &Result{Image: respBody, MimeType: contentType}, 0, nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, 0, &Error{Kind: KindAuth, Message: extractMessage(respBody)}
	case http.StatusNotFound:
		return nil, 0, &Error{Kind: KindNotFound, Message: extractMessage(respBody)}
	case http.StatusServiceUnavailable:
		var payload hfErrorBody
		if err := json.Unmarshal(respBody, &payload); err == nil && payload.EstimatedTime > 0 {
			return nil, c.clampWait(payload.EstimatedTime), nil
		}
		return nil, 0, &Error{Kind: KindUnavailable, Message: extractMessage(respBody)}
	}

	return nil, 0, &Error{Kind: KindOther, Message: extractMessage(respBody)}
}

// extractMessage pulls a human-readable description out of an error
// body, falling back to the raw text when it is not the expected JSON
func extractMessage(body []byte) string {
	var payload hfErrorBody
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Error) > 0 {
		var single string
		if err := json.Unmarshal(payload.Error, &single); err == nil {
			return single
		}
		var list []string
		if err := json.Unmarshal(payload.Error, &list); err == nil && len(list) > 0 {
			return strings.Join(list, "; ")
		}
	}
	return strings.TrimSpace(string(body))
}

func (c *HuggingFaceClient) clampWait(estimatedSeconds float64) time.Duration {
	wait := time.Duration(estimatedSeconds * float64(time.Second))
	if wait < c.minWait {
		return c.minWait
	}
	if wait > c.maxWait {
		return c.maxWait
	}
	return wait
}
