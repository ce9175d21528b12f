package models

// TransactionRecord is a single per-day trading record for one company, as
// returned by the Sectors most-traded endpoint. Records are read-only once
// parsed from the provider payload.
//
// Fields:
//   - CompanyName: full listed-company name (aggregation key).
//   - Symbol: ticker symbol (e.g., "BBRI.JK").
//   - Volume: number of units traded for that company on that day.
type TransactionRecord struct {
	CompanyName string `json:"company_name" example:"Bank Rakyat Indonesia"`
	Symbol      string `json:"symbol" example:"BBRI.JK"`
	Volume      int64  `json:"volume" example:"150000"`
}

// DailyTransactions is the raw provider shape for a date range: per-date lists
// of transaction records, keyed by "YYYY-MM-DD" date strings.
type DailyTransactions map[string][]TransactionRecord
