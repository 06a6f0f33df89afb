package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fixed generation configuration. These are product constants, not knobs:
// every note gets the same model, the same plain-text response format, and
// the same system instruction.
//
// The instruction is in Portuguese, verbatim from the product: elaborate on
// the Python topics touched by the note, without markdown examples.
const (
	defaultBaseURL = "https://api.openai.com/v1"
	model          = "gpt-3.5-turbo-0125"

	systemInstruction = "Com base na anotação passada como nota, elabore nos " +
		"assuntos abordados sobre PYTHON, não use exemplos com markdown, " +
		"simplesmente elabore nos assuntos"
)

// requestTimeout bounds the whole call. The upstream has no SLA we control;
// without this a hung connection would pin the request handler forever.
const requestTimeout = 120 * time.Second

// chatMessage is one entry in the chat history we send.
type chatMessage struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

// chatRequest is the OpenAI-compatible request payload.
type chatRequest struct {
	Model          string         `json:"model"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
}

type responseFormat struct {
	Type string `json:"type"` // always "text"
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenAIClient talks to an OpenAI-compatible chat-completions endpoint.
//
// Stateless apart from its fixed configuration: one instance is constructed
// at startup and shared by every request. Safe for concurrent use —
// http.Client is, and nothing here mutates after construction.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client authenticated with apiKey.
//
// baseURL overrides the API host when non-empty — tests point it at an
// httptest server, and OpenAI-compatible gateways work the same way.
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Generate sends the prompt with the fixed system instruction and returns
// the first choice's content.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:          model,
		ResponseFormat: responseFormat{Type: "text"},
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("assistant: marshaling request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("assistant: creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant: request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("assistant: reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant: api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("assistant: decoding response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("assistant: api returned error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("assistant: empty choices in response")
	}

	return chatResp.Choices[0].Message.Content, nil
}
