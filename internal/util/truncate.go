package util

import "fmt"

// DefaultDetailsMaxLen caps the free-text details stored on an audit row.
// Browser automation failures carry full CDP error chains; the audit log only
// needs enough of them to diagnose the run.
const DefaultDetailsMaxLen = 1024

// TruncateDetails truncates long strings before they are written to the audit
// log, appending the original length so nothing is silently lost.
func TruncateDetails(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + fmt.Sprintf("... [truncated, %d bytes total]", len(s))
}
