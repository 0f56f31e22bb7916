package step

import (
	"fmt"

	"production/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Pending
	InProcess
	Done
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		InProcess: "in_process",
		Done:      "done",
	}
}

func (s Status) Validate() error {
	if s <= Unknown || s > Done {
		return errs.NewValueIsInvalidErrorWithCause("step status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
