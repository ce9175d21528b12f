package agent

import (
	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"

	"sectorchat/config"
)

// modelProvider resolves model names against an OpenAI-compatible
// chat-completions vendor (Groq by default). An empty model name falls back
// to the configured default, so agents may leave their Model unset.
type modelProvider struct {
	client       agents.OpenaiClient
	defaultModel string
}

func newModelProvider(cfg config.LLMConfig) *modelProvider {
	return &modelProvider{
		client: agents.NewOpenaiClient(
			param.NewOpt(cfg.BaseURL),
			param.NewOpt(cfg.APIKey),
		),
		defaultModel: cfg.Model,
	}
}

func (p *modelProvider) GetModel(modelName string) (agents.Model, error) {
	if modelName == "" {
		modelName = p.defaultModel
	}
	return agents.NewOpenAIChatCompletionsModel(modelName, p.client), nil
}
