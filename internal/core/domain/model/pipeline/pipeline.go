// Package pipeline describes the ordered list of mandatory stages every work
// order passes through. The list is configuration, not code: changing the
// number or order of stages does not change the gating rules of the steps
// built from it.
package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/step"
	"production/internal/pkg/errs"
)

// Stage is one entry of the pipeline.
type Stage struct {
	Name     string
	Position int
}

// Pipeline is an immutable, validated list of stages sorted by position.
type Pipeline struct {
	stages []Stage
}

// DefaultStages is the six-stage fabrication pipeline used when no
// configuration is supplied.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "cutting", Position: 1},
		{Name: "welding", Position: 2},
		{Name: "assembly", Position: 3},
		{Name: "painting", Position: 4},
		{Name: "quality_check", Position: 5},
		{Name: "packaging", Position: 6},
	}
}

// Default returns the pipeline built from DefaultStages.
func Default() Pipeline {
	p, err := New(DefaultStages())
	if err != nil {
		panic(err)
	}
	return p
}

// New validates stages and returns them as a pipeline. Positions must form
// the sequence 1..N (in any input order) and names must be unique and not blank.
func New(stages []Stage) (Pipeline, error) {
	if len(stages) == 0 {
		return Pipeline{}, errs.NewValueIsRequiredError("pipeline stages")
	}

	sorted := slices.Clone(stages)
	slices.SortFunc(sorted, func(a, b Stage) int { return a.Position - b.Position })

	var errList []error
	names := make(map[string]struct{}, len(sorted))
	for i := range sorted {
		sorted[i].Name = strings.TrimSpace(sorted[i].Name)
		s := sorted[i]
		if s.Position != i+1 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"stage position",
				fmt.Errorf("expected position %d, got %d", i+1, s.Position),
			))
		}
		if s.Name == "" {
			errList = append(errList, errs.NewValueIsRequiredError(fmt.Sprintf("stage %d name", s.Position)))
			continue
		}
		if _, dup := names[s.Name]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"stage name",
				fmt.Errorf("%q is used more than once", s.Name),
			))
		}
		names[s.Name] = struct{}{}
	}
	if err := errors.Join(errList...); err != nil {
		return Pipeline{}, err
	}

	return Pipeline{stages: sorted}, nil
}

// Stages returns a copy of the stages in position order.
func (p Pipeline) Stages() []Stage {
	return slices.Clone(p.stages)
}

func (p Pipeline) Len() int {
	return len(p.stages)
}

// BuildSteps creates one pending step per stage for the given order.
func (p Pipeline) BuildSteps(orderID kernel.UUID) ([]*step.ProcessStep, error) {
	if len(p.stages) == 0 {
		return nil, errs.NewValueIsRequiredError("pipeline stages")
	}

	steps := make([]*step.ProcessStep, 0, len(p.stages))
	for _, s := range p.stages {
		ps, err := step.NewProcessStep(kernel.NewUUID(), orderID, s.Position, s.Name)
		if err != nil {
			return nil, err
		}
		steps = append(steps, ps)
	}
	return steps, nil
}
