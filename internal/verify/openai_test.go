package verify

import (
	"strings"
	"testing"

	"github.com/factgate/factgate/internal/model"
)

func TestParseOracleResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    oracleResponse
		wantErr bool
	}{
		{
			name:    "plain json",
			content: `{"status": "verified", "confidence": 90}`,
			want:    oracleResponse{Status: "verified", Confidence: 90},
		},
		{
			name:    "json fence",
			content: "```json\n{\"status\": \"false\", \"confidence\": 80, \"correct_value\": \"09:00-17:00\"}\n```",
			want:    oracleResponse{Status: "false", Confidence: 80, CorrectValue: "09:00-17:00"},
		},
		{
			name:    "bare fence",
			content: "```\n{\"status\": \"unknown\", \"confidence\": 0}\n```",
			want:    oracleResponse{Status: "unknown", Confidence: 0},
		},
		{
			name:    "prose instead of json",
			content: "I believe this claim is true.",
			wantErr: true,
		},
		{
			name:    "empty",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOracleResponse(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("Got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestResultFromResponse_Clamping(t *testing.T) {
	claim := model.Claim{ID: "claim-001", Type: model.ClaimHours, Value: "09:00-18:00"}

	// Out-of-contract status falls back to unknown
	r := resultFromResponse(claim, &oracleResponse{Status: "probably", Confidence: 70})
	if r.Status != model.StatusUnknown {
		t.Errorf("Expected unknown for bad status, got %s", r.Status)
	}

	// Confidence clamps to [0,100]
	r = resultFromResponse(claim, &oracleResponse{Status: "verified", Confidence: 150})
	if r.Confidence != 100 {
		t.Errorf("Expected confidence clamped to 100, got %d", r.Confidence)
	}
	r = resultFromResponse(claim, &oracleResponse{Status: "verified", Confidence: -5})
	if r.Confidence != 0 {
		t.Errorf("Expected confidence clamped to 0, got %d", r.Confidence)
	}

	// correct_value only survives on a false verdict
	r = resultFromResponse(claim, &oracleResponse{Status: "verified", Confidence: 90, CorrectValue: "nonsense"})
	if r.CorrectValue != "" {
		t.Errorf("Expected correct value dropped on verified, got %q", r.CorrectValue)
	}
	r = resultFromResponse(claim, &oracleResponse{Status: "false", Confidence: 90, CorrectValue: " 09:00-17:00 "})
	if r.CorrectValue != "09:00-17:00" {
		t.Errorf("Expected trimmed correct value, got %q", r.CorrectValue)
	}

	if r.ClaimID != "claim-001" {
		t.Errorf("Expected claim ID carried, got %q", r.ClaimID)
	}
	if r.Source != model.SourceWebSearch {
		t.Errorf("Expected web_search source, got %s", r.Source)
	}
}

func TestBuildClaimPrompt(t *testing.T) {
	claim := model.Claim{
		Type:    model.ClaimHours,
		Value:   "09:00-18:00",
		Context: "운영시간: 09:00-18:00 (매주 화요일 휴무)",
	}
	prompt := buildClaimPrompt(claim)

	if !strings.Contains(prompt, "hours") {
		t.Errorf("Expected claim type in prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "09:00-18:00") {
		t.Errorf("Expected claim value in prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "매주 화요일 휴무") {
		t.Errorf("Expected context in prompt: %q", prompt)
	}

	// Context line is omitted when empty
	claim.Context = ""
	if strings.Contains(buildClaimPrompt(claim), "Context:") {
		t.Error("Expected no context line for empty context")
	}
}

func TestNewOpenAIOracle_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIOracle(model.OracleConfig{}); err == nil {
		t.Error("Expected error without API key")
	}
}
