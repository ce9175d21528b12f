package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"sectorchat/config"
)

func testConfig() config.Config {
	return config.Config{
		LLM:   config.LLMConfig{APIKey: "k", BaseURL: "http://localhost:0", Model: "test-model"},
		Agent: config.AgentConfig{MaxTurns: 10, MaxLookaheadDays: 7},
	}
}

func TestInstructions_InjectsToday(t *testing.T) {
	a := New(testConfig(), NewToolset(&fakeAPI{}, &fakeVolume{}))
	a.clock = func() time.Time {
		return time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)
	}

	got, err := a.instructions(context.Background(), a.agent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(got, "2024-07-15") != 2 {
		t.Fatalf("today's date must appear twice in the prompt:\n%s", got)
	}
	for _, fragment := range []string{
		"sum the volume for each company",
		"non-trading",
		"total volume descending",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("prompt lost required guidance %q", fragment)
		}
	}
}

func TestNew_AgentCarriesTools(t *testing.T) {
	a := New(testConfig(), NewToolset(&fakeAPI{}, &fakeVolume{}))
	if len(a.agent.Tools) != 5 {
		t.Fatalf("want 5 tools on the agent, got %d", len(a.agent.Tools))
	}
	if a.runner.Config.MaxTurns != 10 {
		t.Fatalf("turn ceiling not applied, got %d", a.runner.Config.MaxTurns)
	}
	if !a.runner.Config.TracingDisabled {
		t.Fatalf("tracing should be disabled")
	}
}

func TestModelProvider_DefaultModel(t *testing.T) {
	p := newModelProvider(config.LLMConfig{APIKey: "k", BaseURL: "http://localhost:0", Model: "fallback"})
	if _, err := p.GetModel(""); err != nil {
		t.Fatalf("empty model name must resolve to the default: %v", err)
	}
	if _, err := p.GetModel("explicit"); err != nil {
		t.Fatalf("explicit model name must resolve: %v", err)
	}
}
