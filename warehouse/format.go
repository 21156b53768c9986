package warehouse

import (
	"fmt"
	"strings"
)

// NoDataMessage is the fixed text for a query that matches nothing.
const NoDataMessage = "No data found matching your query."

// FormatRows renders rows into length-bounded text for the narration
// prompt and the transcript:
//   - zero rows → NoDataMessage
//   - exactly one row and one column → a single compact "column: value" line
//   - otherwise one "column: value" block per row, blank-line separated,
//     capped at limit rows with a truncation suffix naming the cap and
//     the total.
func FormatRows(columns []string, rows []Row, limit int) string {
	if len(rows) == 0 {
		return NoDataMessage
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Query Results (%d rows):\n\n", len(rows))

	if len(rows) == 1 && len(columns) == 1 {
		fmt.Fprintf(&sb, "%s: %v\n", columns[0], rows[0][columns[0]])
		return sb.String()
	}

	display := len(rows)
	if limit > 0 && limit < display {
		display = limit
	}
	for _, row := range rows[:display] {
		for _, col := range columns {
			fmt.Fprintf(&sb, "%s: %v\n", col, row[col])
		}
		sb.WriteString("\n")
	}

	if len(rows) > display {
		fmt.Fprintf(&sb, "\n(Showing first %d of %d results)", display, len(rows))
	}

	return sb.String()
}
