package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"
	"github.com/rs/zerolog"

	"sectorchat/internal/domain/models"
	"sectorchat/internal/logger"
	"sectorchat/internal/sectors"
	"sectorchat/internal/service"
)

// defaultTopN is used when the model omits top_n on the volume tool.
const defaultTopN = 5

// Toolset exposes the Sectors operations as agent-callable function tools.
//
// Tool names and description strings are part of the contract with the
// external reasoning engine: the model decides which operation to invoke
// based on them, so they must stay stable.
type Toolset struct {
	api sectors.API
	svc service.VolumeService
	log zerolog.Logger
}

// NewToolset builds the registry over an endpoint client and the volume
// service.
func NewToolset(api sectors.API, svc service.VolumeService) *Toolset {
	return &Toolset{api: api, svc: svc, log: logger.With("tools")}
}

// Tools returns the five registered function tools.
func (t *Toolset) Tools() []agents.Tool {
	return []agents.Tool{
		t.companyOverviewTool(),
		t.topCompaniesByVolumeTool(),
		t.dailyTransactionTool(),
		t.performanceSinceIPOTool(),
		t.revenueCostTool(),
	}
}

type stockArgs struct {
	Stock string `json:"stock"`
}

type tickerArgs struct {
	Ticker string `json:"ticker"`
}

type dailyTxArgs struct {
	Stock     string `json:"stock"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type topVolumeArgs struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TopN      int    `json:"top_n"`
}

func stringProp(title string) map[string]any {
	return map[string]any{"title": title, "type": "string"}
}

func (t *Toolset) companyOverviewTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name: "get_company_overview",
		Description: "Get company overview, such as phone, email, website, market cap. " +
			"Market Cap Rank = 1 is the largest market cap.",
		ParamsJSONSchema: map[string]any{
			"title":                "get_company_overview_args",
			"type":                 "object",
			"required":             []string{"stock"},
			"additionalProperties": false,
			"properties": map[string]any{
				"stock": stringProp("Stock"),
			},
		},
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			var args stockArgs
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return nil, fmt.Errorf("get_company_overview arguments: %w", err)
			}
			t.log.Debug().Str("tool", "get_company_overview").Str("stock", args.Stock).Msg("tool_invoked")
			raw, err := t.api.CompanyOverview(ctx, args.Stock)
			if err != nil {
				return nil, err
			}
			return string(raw), nil
		},
		StrictJSONSchema: param.NewOpt(true),
	}
}

func (t *Toolset) dailyTransactionTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name: "get_daily_tx",
		Description: "Get daily transaction for a stock from a range of start date and end date, " +
			"including price. Use this for the detail of stock price or close price.",
		ParamsJSONSchema: map[string]any{
			"title":                "get_daily_tx_args",
			"type":                 "object",
			"required":             []string{"stock", "start_date", "end_date"},
			"additionalProperties": false,
			"properties": map[string]any{
				"stock":      stringProp("Stock"),
				"start_date": stringProp("Start Date"),
				"end_date":   stringProp("End Date"),
			},
		},
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			var args dailyTxArgs
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return nil, fmt.Errorf("get_daily_tx arguments: %w", err)
			}
			window, err := models.NewDateWindow(args.StartDate, args.EndDate)
			if err != nil {
				return fmt.Sprintf("invalid date range: %v; dates must use YYYY-MM-DD", err), nil
			}
			t.log.Debug().Str("tool", "get_daily_tx").Str("stock", args.Stock).
				Str("start", args.StartDate).Str("end", args.EndDate).Msg("tool_invoked")
			raw, err := t.api.DailyTransactions(ctx, args.Stock, window)
			if err != nil {
				return nil, err
			}
			return string(raw), nil
		},
		StrictJSONSchema: param.NewOpt(true),
	}
}

func (t *Toolset) performanceSinceIPOTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name: "get_performance_since_ipo",
		Description: "Get stock performance since initial public offering (IPO) listing. " +
			"Returns price change over the last 7 days (chg_7d), 30 days (chg_30d), " +
			"90 days (chg_90d), and 365 days (chg_365d).",
		ParamsJSONSchema: map[string]any{
			"title":                "get_performance_since_ipo_args",
			"type":                 "object",
			"required":             []string{"stock"},
			"additionalProperties": false,
			"properties": map[string]any{
				"stock": stringProp("Stock"),
			},
		},
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			var args stockArgs
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return nil, fmt.Errorf("get_performance_since_ipo arguments: %w", err)
			}
			t.log.Debug().Str("tool", "get_performance_since_ipo").Str("stock", args.Stock).Msg("tool_invoked")
			raw, err := t.api.ListingPerformance(ctx, args.Stock)
			if err != nil {
				return nil, err
			}
			return string(raw), nil
		},
		StrictJSONSchema: param.NewOpt(true),
	}
}

func (t *Toolset) topCompaniesByVolumeTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name: "get_top_companies_by_tx_volume",
		Description: "Get top companies by transaction volume. Returns the top n companies with the " +
			"highest transaction volumes within a given date range, aggregated across the range and " +
			"sorted in descending order of total volume. If the data for the given start date is " +
			"unavailable (e.g., non-trading day), data for the next available trading day is returned.",
		ParamsJSONSchema: map[string]any{
			"title":                "get_top_companies_by_tx_volume_args",
			"type":                 "object",
			"required":             []string{"start_date", "end_date"},
			"additionalProperties": false,
			"properties": map[string]any{
				"start_date": stringProp("Start Date"),
				"end_date":   stringProp("End Date"),
				"top_n":      map[string]any{"title": "Top N", "type": "integer", "default": defaultTopN},
			},
		},
		OnInvokeTool: t.invokeTopCompaniesByVolume,
		// top_n is optional with a default, which strict mode does not allow.
		StrictJSONSchema: param.NewOpt(false),
	}
}

// invokeTopCompaniesByVolume runs the resolver and renders the answer.
// Domain outcomes (bad dates, no trading data in the look-ahead window) are
// returned as text so the model can relay them; infrastructure failures are
// returned as errors and fail the run.
func (t *Toolset) invokeTopCompaniesByVolume(ctx context.Context, arguments string) (any, error) {
	var args topVolumeArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil, fmt.Errorf("get_top_companies_by_tx_volume arguments: %w", err)
	}
	if args.TopN == 0 {
		args.TopN = defaultTopN
	}

	window, err := models.NewDateWindow(args.StartDate, args.EndDate)
	if err != nil {
		return fmt.Sprintf("invalid date range: %v; dates must use YYYY-MM-DD", err), nil
	}

	t.log.Debug().Str("tool", "get_top_companies_by_tx_volume").
		Str("start", args.StartDate).Str("end", args.EndDate).Int("top_n", args.TopN).
		Msg("tool_invoked")

	res, err := t.svc.TopByVolume(ctx, window, args.TopN)
	if err != nil {
		var nde *service.NoTradingDataError
		switch {
		case errors.As(err, &nde):
			return nde.Error(), nil
		case errors.Is(err, service.ErrInvalidArgument):
			return err.Error(), nil
		default:
			return nil, err
		}
	}

	header := fmt.Sprintf("Here is the top companies by transaction volume for %s:\n",
		res.EffectiveStart.Format(models.DateLayout))
	if !res.EffectiveStart.Equal(window.Start) {
		header = fmt.Sprintf("The data is unavailable for %s because it is a non-trading day. "+
			"Showing the next available trading day instead.\n", window.StartString()) + header
	}
	return header + res.Table, nil
}

func (t *Toolset) revenueCostTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name:        "get_revenue_cost_by_company",
		Description: "Return revenue and cost segments of a given ticker.",
		ParamsJSONSchema: map[string]any{
			"title":                "get_revenue_cost_by_company_args",
			"type":                 "object",
			"required":             []string{"ticker"},
			"additionalProperties": false,
			"properties": map[string]any{
				"ticker": stringProp("Ticker"),
			},
		},
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			var args tickerArgs
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return nil, fmt.Errorf("get_revenue_cost_by_company arguments: %w", err)
			}
			t.log.Debug().Str("tool", "get_revenue_cost_by_company").Str("ticker", args.Ticker).Msg("tool_invoked")
			raw, err := t.api.CompanySegments(ctx, args.Ticker)
			if err != nil {
				return nil, err
			}
			return string(raw), nil
		},
		StrictJSONSchema: param.NewOpt(true),
	}
}
