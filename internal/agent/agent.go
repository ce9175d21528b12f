package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/nlpodyssey/openai-agents-go/memory"
	"github.com/nlpodyssey/openai-agents-go/modelsettings"
	"github.com/openai/openai-go/v2/packages/param"
	"github.com/rs/zerolog"

	"sectorchat/config"
	"sectorchat/internal/logger"
)

// instructionsTemplate is the system prompt consumed by the reasoning engine.
// The two %s verbs receive today's date.
const instructionsTemplate = `Answer the following queries, being as factual and analytical as you can.
If you need the start and end dates but they are not explicitly provided,
infer from the query. Whenever you return a list of names, return also the
corresponding values for each name. If the volume was about a single day,
the start and end parameter should be the same. If the volume is for a range
of dates then sum the volume for each company before giving the list of top
companies, and return also the sum for each company. Note that the endpoint
for performance since IPO has only one required parameter, which is the stock.
Always compare companies by Market Cap Rank; Rank 1 is the largest market cap.
If a comparison is needed between two stocks or companies, invoke queries for
both stocks. For each query, select one of the available and suitable tools.
If the date is not specified just give the answer from last week to %s.
Today is %s.

Make sure the data is correct and do not add anything to the result.

If the data for the initial input date is unavailable due to it being a
non-trading day, the tool returns the next available trading day instead;
relay its message and the results for that actual day.

When a user asks about top companies by transaction volume over a specific
period: aggregate the transaction volumes for each company over the entire
period, sort the companies by the total transaction volume, and provide the
top companies in that order. Always order by total volume descending as a
table; do not try to order by company name.`

// Assistant wraps a configured financial-analyst agent and its runner.
// It is safe for concurrent use; per-conversation state lives in the
// memory.Session passed to Ask.
type Assistant struct {
	agent  *agents.Agent
	runner agents.Runner
	clock  func() time.Time
	log    zerolog.Logger
}

// New builds the assistant: one agent carrying the five Sectors tools, run
// against the configured OpenAI-compatible provider with temperature 0 and a
// bounded number of turns.
func New(cfg config.Config, toolset *Toolset) *Assistant {
	a := &Assistant{
		clock: time.Now,
		log:   logger.With("agent"),
	}

	a.agent = agents.New("Financial Analyst").
		WithInstructionsFunc(a.instructions).
		WithTools(toolset.Tools()...)

	a.runner = agents.Runner{Config: agents.RunConfig{
		ModelProvider: newModelProvider(cfg.LLM),
		ModelSettings: modelsettings.ModelSettings{
			Temperature: param.NewOpt(0.0),
		},
		MaxTurns:        uint64(cfg.Agent.MaxTurns),
		TracingDisabled: true,
		WorkflowName:    "sectorchat",
	}}

	return a
}

func (a *Assistant) instructions(context.Context, *agents.Agent) (string, error) {
	today := a.clock().Format("2006-01-02")
	return fmt.Sprintf(instructionsTemplate, today, today), nil
}

// Ask runs one conversational turn. The session carries the model-side
// history for the conversation; the returned string is the agent's final
// answer.
func (a *Assistant) Ask(ctx context.Context, session memory.Session, question string) (string, error) {
	runner := a.runner
	runner.Config.Session = session

	start := time.Now()
	result, err := runner.Run(ctx, a.agent, question)
	if err != nil {
		a.log.Error().Err(err).Msg("agent run failed")
		return "", fmt.Errorf("agent run: %w", err)
	}

	answer, ok := result.FinalOutput.(string)
	if !ok {
		answer = fmt.Sprint(result.FinalOutput)
	}
	a.log.Info().
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Int("answer_len", len(answer)).
		Msg("agent_turn")
	return answer, nil
}
