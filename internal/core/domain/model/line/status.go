package line

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Status is the administrative state of a production line.
type Status int

const (
	Unknown Status = iota

	// Active lines accept new work orders.
	Active

	// Paused lines keep their orders but take no new ones.
	Paused

	// Fault marks a line that is out of service because of an error.
	Fault
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "unknown",
		Active:  "active",
		Paused:  "paused",
		Fault:   "error",
	}
}

// ParseStatus maps the wire name of a status ("active", "paused", "error") to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == strings.ToLower(strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("line status", fmt.Errorf("%q is not a valid line status", s))
}

// Validate rejects values outside the declared statuses.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("line status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("line status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
