package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/factgate/factgate/internal/model"
	"github.com/factgate/factgate/internal/util"
	"github.com/sashabaranov/go-openai"
)

// OpenAIOracle verifies claims through OpenAI's Chat Completions API with a
// strict JSON response contract
type OpenAIOracle struct {
	client *openai.Client
	config model.OracleConfig
}

// NewOpenAIOracle creates a new OpenAI-backed oracle
func NewOpenAIOracle(config model.OracleConfig) (*OpenAIOracle, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
		},
	}

	return &OpenAIOracle{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (o *OpenAIOracle) Name() string {
	return "openai"
}

// oracleResponse is the JSON contract the model must answer with
type oracleResponse struct {
	Status       string `json:"status"`
	Confidence   int    `json:"confidence"`
	CorrectValue string `json:"correct_value,omitempty"`
	SourceURL    string `json:"source_url,omitempty"`
}

// Verify checks one claim and returns its verdict
func (o *OpenAIOracle) Verify(ctx context.Context, claim model.Claim) (*model.VerificationResult, error) {
	timeout := time.Duration(o.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatModel := o.config.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	req := openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: `You verify factual claims about venues, events, and places.
Answer ONLY with a JSON object: {"status": "verified" | "false" | "unknown", "confidence": 0-100, "correct_value": "...", "source_url": "..."}.
Rules:
- "verified" only when current, reliable sources confirm the claim.
- "false" only when sources contradict it; then correct_value MUST hold the accurate value.
- "unknown" when sources are missing, conflicting, or stale. Never guess.
- correct_value must be empty unless status is "false".`,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildClaimPrompt(claim),
			},
		},
		Temperature: 0,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("oracle request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("oracle returned no choices")
	}

	parsed, err := parseOracleResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return resultFromResponse(claim, parsed), nil
}

// buildClaimPrompt renders one claim for verification
func buildClaimPrompt(claim model.Claim) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Claim type: %s\n", claim.Type)
	fmt.Fprintf(&b, "Claim value: %s\n", claim.Value)
	if claim.Context != "" {
		fmt.Fprintf(&b, "Context: %s\n", claim.Context)
	}
	b.WriteString("\nVerify this claim.")
	return b.String()
}

// parseOracleResponse decodes the model's JSON answer, tolerating markdown fences
func parseOracleResponse(content string) (*oracleResponse, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var parsed oracleResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("parse oracle response: %w", err)
	}
	return &parsed, nil
}

// resultFromResponse maps the raw response onto a VerificationResult,
// clamping out-of-contract values rather than failing the claim
func resultFromResponse(claim model.Claim, parsed *oracleResponse) *model.VerificationResult {
	status := model.VerificationStatus(parsed.Status)
	switch status {
	case model.StatusVerified, model.StatusFalse, model.StatusUnknown:
	default:
		status = model.StatusUnknown
	}

	confidence := parsed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	correctValue := ""
	if status == model.StatusFalse {
		correctValue = strings.TrimSpace(parsed.CorrectValue)
	}

	return &model.VerificationResult{
		ClaimID:      claim.ID,
		Status:       status,
		Confidence:   confidence,
		Source:       model.SourceWebSearch,
		SourceURL:    parsed.SourceURL,
		CorrectValue: correctValue,
		CheckedAt:    time.Now().UTC(),
	}
}
