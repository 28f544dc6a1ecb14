package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter formats diagnostics for the terminal.
type Reporter struct {
	unit string
}

// NewReporter creates a reporter for a named compilation unit.
func NewReporter(unit string) *Reporter {
	return &Reporter{unit: unit}
}

// Format renders a single diagnostic with level coloring.
func (r *Reporter) Format(d Diagnostic) string {
	levelColor := r.levelColor(d.Level)
	dim := color.New(color.Faint).SprintFunc()

	var result strings.Builder
	if d.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, d.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), d.Message))
	}
	result.WriteString(fmt.Sprintf("  %s %s\n", dim("-->"), r.unit))
	return result.String()
}

// FormatAll renders every diagnostic of a result envelope, warnings
// first, and a closing summary line when there are errors.
func FormatAll[T any](r *Reporter, res Result[T]) string {
	var result strings.Builder
	for _, w := range res.Warnings {
		result.WriteString(r.Format(w))
	}
	for _, e := range res.Errors {
		result.WriteString(r.Format(e))
	}
	if len(res.Errors) > 0 {
		bold := color.New(color.FgRed, color.Bold).SprintFunc()
		result.WriteString(fmt.Sprintf("%s: %d error(s) in %s\n",
			bold("failed"), len(res.Errors), r.unit))
	}
	return result.String()
}

func (r *Reporter) levelColor(level Level) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}
