package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// AzureOpenAI implements the Provider interface for Azure OpenAI
// deployments. This is the primary backend: the endpoint, key and
// deployment name come straight from the environment.
type AzureOpenAI struct {
	endpoint   string
	apiKey     string
	deployment string
	apiVersion string
}

var _ Provider = (*AzureOpenAI)(nil)

// NewAzureOpenAI creates an Azure OpenAI provider.
func NewAzureOpenAI(endpoint, apiKey, deployment, apiVersion string) *AzureOpenAI {
	if apiVersion == "" {
		apiVersion = "2024-02-01"
	}
	return &AzureOpenAI{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		deployment: deployment,
		apiVersion: apiVersion,
	}
}

func (a *AzureOpenAI) Name() string {
	return fmt.Sprintf("Azure OpenAI (%s)", a.deployment)
}

func (a *AzureOpenAI) Complete(ctx context.Context, creq CompletionRequest) (string, error) {
	ctx, cancel := reqContext(ctx, creq.Timeout)
	defer cancel()

	type chatMsg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	body := map[string]interface{}{
		"messages": []chatMsg{
			{Role: "system", Content: creq.System},
			{Role: "user", Content: creq.User},
		},
		"temperature": creq.Temperature,
		"max_tokens":  creq.MaxTokens,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		a.endpoint, a.deployment, a.apiVersion)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", a.apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("azure openai request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("azure openai API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("azure openai parse error: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("azure openai returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}
