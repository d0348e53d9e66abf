package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const openAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient calls the OpenAI Images API. Unlike Hugging Face there
// is no loading signal, so every call is a single round trip.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenAIClient creates a client with a bounded request timeout
func NewOpenAIClient(apiKey string, timeout time.Duration, logger *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: openAIBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type openAIRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type openAIResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate requests one image and decodes the base64 payload
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(openAIRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		N:      1,
		Size:   fmt.Sprintf("%dx%d", req.Width, req.Height),
	})
	if err != nil {
		return nil, &Error{Kind: KindOther, Message: err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindOther, Message: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &Error{Kind: KindOther, Message: "timeout"}
		}
		return nil, &Error{Kind: KindOther, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindOther, Message: err.Error()}
	}

	var payload openAIResponse
	parseErr := json.Unmarshal(respBody, &payload)

	message := strings.TrimSpace(string(respBody))
	if parseErr == nil && payload.Error != nil {
		message = payload.Error.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &Error{Kind: KindAuth, Message: message}
	case http.StatusNotFound:
		return nil, &Error{Kind: KindNotFound, Message: message}
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return nil, &Error{Kind: KindUnavailable, Message: message}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindOther, Message: message}
	}

	if parseErr != nil || len(payload.Data) == 0 || payload.Data[0].B64JSON == "" {
		return nil, &Error{Kind: KindOther, Message: "response contained no image data"}
	}

	image, err := base64.StdEncoding.DecodeString(payload.Data[0].B64JSON)
	if err != nil {
		return nil, &Error{Kind: KindOther, Message: "failed to decode image data"}
	}

	return &Result{Image: image, MimeType: "image/png"}, nil
}
