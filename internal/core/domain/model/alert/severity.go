package alert

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

type Severity int

const (
	Unknown Severity = iota
	Info
	Warning
	Critical
)

func getSeverityStrings() map[Severity]string {
	return map[Severity]string{
		Unknown:  "unknown",
		Info:     "info",
		Warning:  "warning",
		Critical: "critical",
	}
}

func (s Severity) Validate() error {
	if s <= Unknown || s > Critical {
		return errs.NewValueIsInvalidErrorWithCause("alert severity", fmt.Errorf("%d is not a valid severity", s))
	}
	return nil
}

func (s Severity) String() string {
	if str, ok := getSeverityStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseSeverity maps "info", "warning" or "critical" to a Severity.
func ParseSeverity(s string) (Severity, error) {
	for severity, name := range getSeverityStrings() {
		if severity != Unknown && name == strings.ToLower(strings.TrimSpace(s)) {
			return severity, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("alert severity", fmt.Errorf("%q is not a valid severity", s))
}
