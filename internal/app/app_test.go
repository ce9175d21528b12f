package app

import (
	"testing"

	"sectorchat/config"
)

func TestBuildServices(t *testing.T) {
	cfg := config.Config{
		Sectors: config.SectorsConfig{APIKey: "k", BaseURL: "http://localhost:0"},
		LLM:     config.LLMConfig{APIKey: "k", BaseURL: "http://localhost:0", Model: "m"},
		Agent:   config.AgentConfig{MaxTurns: 5, MaxLookaheadDays: 7},
	}
	chatSvc, volumeSvc, client := buildServices(cfg)
	if chatSvc == nil || volumeSvc == nil || client == nil {
		t.Fatalf("wiring incomplete: %v %v %v", chatSvc, volumeSvc, client)
	}
}

func TestInitializeApp_RoutesRegistered(t *testing.T) {
	t.Setenv("SECTORS_API_KEY", "k")
	t.Setenv("GROQ_API_KEY", "k")
	config.LoadConfig()

	router, cleanup, err := InitializeApp()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	want := map[string]bool{
		"POST /api/v1/chat":                       false,
		"GET /api/v1/volume/top":                  false,
		"GET /api/v1/daily":                       false,
		"GET /api/v1/company/:ticker/overview":    false,
		"GET /api/v1/company/:ticker/ipo":         false,
		"GET /api/v1/company/:ticker/segments":    false,
		"GET /healthz":                            false,
		"GET /readyz":                             false,
	}
	for _, r := range router.Routes() {
		key := r.Method + " " + r.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Fatalf("route %s not registered", key)
		}
	}
}
