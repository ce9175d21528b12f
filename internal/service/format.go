package service

import (
	"fmt"
	"strings"

	"sectorchat/internal/domain/models"
)

const tableRule = "--------------------------------"

// FormatTable renders a ranked result as a fixed-width text table:
// a dash rule, the header row, a second rule, then one row per company.
// Columns are left-justified at widths 20 (company), 10 (symbol) and
// 15 (total volume). The output is deterministic; an empty result renders
// the header and rules with no data rows.
func FormatTable(result models.RankedResult) string {
	var b strings.Builder
	b.WriteString(tableRule + "\n")
	fmt.Fprintf(&b, "%-20s%-10s%-15s\n", "Company Name", "Symbol", "Total Volume")
	b.WriteString(tableRule + "\n")
	for _, e := range result {
		fmt.Fprintf(&b, "%-20s%-10s%-15d\n", e.CompanyName, e.Symbol, e.TotalVolume)
	}
	return b.String()
}
