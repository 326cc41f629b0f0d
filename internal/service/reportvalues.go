package service

import (
	"regexp"
	"strings"

	"github.com/healix-app/healix-go/pkg/model"
)

// Matches one "name: value unit" fragment; the unit tail is optional.
var reportValuePattern = regexp.MustCompile(`^([A-Za-z\-/\s]+?)\s*:?\s*([0-9]+(?:\.[0-9]+)?)\s*(.*)$`)

// ParseReportValues derives a value table from a free-text summary of
// semicolon-delimited "name: value unit" fragments. The parse is lossy
// and best-effort: fragments that do not match are dropped.
func ParseReportValues(summary string) []model.ReportValue {
	if summary == "" {
		return nil
	}

	var values []model.ReportValue
	for _, part := range strings.Split(summary, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := reportValuePattern.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		values = append(values, model.ReportValue{
			Name:  strings.TrimSpace(m[1]),
			Value: strings.TrimSpace(m[2]),
			Unit:  strings.TrimSpace(m[3]),
		})
	}
	return values
}
