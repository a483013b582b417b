package agent

import (
	"testing"
)

func TestGetProviderAgentOverride(t *testing.T) {
	m := NewManager(Config{
		ActiveProvider: "gemini",
		Agents: map[string]AgentConfig{
			"memo": {Provider: "deepseek"},
		},
	})

	if p := m.GetProvider("memo"); p == nil {
		t.Fatal("Expected provider for memo agent")
	} else if p == m.GetProviderByName("gemini") {
		t.Error("Agent override should beat the global provider")
	}

	if p := m.GetProvider("extractor"); p != m.GetProviderByName("gemini") {
		t.Error("Agents without override should use the active provider")
	}
}

func TestGetProviderFallback(t *testing.T) {
	m := NewManager(Config{ActiveProvider: "nonexistent"})
	if p := m.GetProvider("extractor"); p != m.GetProviderByName("gemini") {
		t.Error("Unknown active provider should fall back to gemini")
	}
}

func TestSetGlobalProvider(t *testing.T) {
	m := NewManager(Config{ActiveProvider: "gemini"})

	if err := m.SetGlobalProvider("deepseek"); err != nil {
		t.Fatalf("Expected switch to succeed: %v", err)
	}
	if m.GetActiveProvider() != "deepseek" {
		t.Errorf("Active provider not updated: %s", m.GetActiveProvider())
	}

	if err := m.SetGlobalProvider("no-such-model"); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
