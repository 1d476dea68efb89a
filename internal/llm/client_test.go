package llm

import "testing"

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSONBlock(tt.input); got != tt.expected {
				t.Errorf("CleanJSONBlock(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConfigGetModel(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.GetModel(TierStandard); got != "gemini-2.5-flash" {
		t.Errorf("GetModel(standard) = %q", got)
	}
	if got := cfg.GetModel(TierLite); got != "gemini-2.5-flash-lite" {
		t.Errorf("GetModel(lite) = %q", got)
	}
}

func TestConfigGetModel_FallbackChain(t *testing.T) {
	cfg := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{TierLite: "only-lite"}}
	if got := cfg.GetModel(TierStandard); got != "only-lite" {
		t.Errorf("GetModel(standard) = %q, want fallback to lite", got)
	}

	empty := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	if got := empty.GetModel(TierStandard); got != "" {
		t.Errorf("GetModel on empty config = %q, want empty", got)
	}
}

func TestConfigWithModel(t *testing.T) {
	cfg := DefaultConfig()
	modified := cfg.WithModel(TierStandard, "custom-model")

	if got := modified.GetModel(TierStandard); got != "custom-model" {
		t.Errorf("GetModel(standard) = %q, want custom-model", got)
	}
	// Original is untouched.
	if got := cfg.GetModel(TierStandard); got != "gemini-2.5-flash" {
		t.Errorf("original mutated: %q", got)
	}
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	if _, err := NewGeminiClient(t.Context(), DefaultConfig(), ""); err == nil {
		t.Error("expected error for empty API key")
	}
}
