package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes. Every error produced while realizing a template matches exactly one of them,
// so callers can tell a malformed template apart from a trial that lacks data.
var (
	// ErrAuthoring marks problems in the template itself.
	ErrAuthoring = errors.New("template authoring error")
	// ErrTrial marks problems that only exist for the trial being realized.
	ErrTrial = errors.New("trial resolution error")
)

// Authoring errors.
var (
	ErrMissingParent     = errors.New("missing parent")
	ErrCycleDetected     = errors.New("cycle detected")
	ErrNoRoot            = errors.New("template has no root segment")
	ErrMultipleRoots     = errors.New("template has more than one root segment")
	ErrDuplicateSegment  = errors.New("duplicate segment")
	ErrInvalidAxisToKeep = errors.New("axis to keep is not one of the declared axes")
	ErrInvalidDoF        = errors.New("invalid degrees of freedom")
	ErrInvalidReference  = errors.New("invalid spatial reference")
)

// Trial errors.
var (
	ErrUnknownMarker       = errors.New("unknown marker")
	ErrReferenceEvaluation = errors.New("reference evaluation failed")
	ErrDegenerateAxis      = errors.New("degenerate axis")
)

// Lookup errors.
var (
	ErrSegmentNotFound = errors.New("segment not found")
	ErrModelNotFound   = errors.New("model not found")
)

// TemplateError reports a problem in the authored template.
type TemplateError struct {
	Segment string
	Err     error
	Detail  string
}

func (e *TemplateError) Error() string {
	msg := e.Err.Error()
	if e.Segment != "" {
		msg = fmt.Sprintf("segment %q: %s", e.Segment, msg)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *TemplateError) Unwrap() error { return e.Err }

// Is reports the authoring class in addition to the wrapped sentinel.
func (e *TemplateError) Is(target error) bool { return target == ErrAuthoring }

// ResolutionError reports a reference that could not be resolved against a trial.
type ResolutionError struct {
	Segment   string
	Reference string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("segment %q: resolving %s: %v", e.Segment, e.Reference, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Is reports the trial class, or the authoring class when the reference itself is malformed.
func (e *ResolutionError) Is(target error) bool {
	authoring := errors.Is(e.Err, ErrInvalidReference)
	switch target {
	case ErrTrial:
		return !authoring
	case ErrAuthoring:
		return authoring
	}
	return false
}

// AxisError reports axes that cannot span a frame.
type AxisError struct {
	Segment string
	Axes    []AxisName
	Reason  string
}

func (e *AxisError) Error() string {
	names := make([]string, len(e.Axes))
	for i, a := range e.Axes {
		names[i] = string(a)
	}
	return fmt.Sprintf("segment %q: %v (%s): %s", e.Segment, ErrDegenerateAxis, strings.Join(names, ","), e.Reason)
}

func (e *AxisError) Unwrap() error { return ErrDegenerateAxis }

func (e *AxisError) Is(target error) bool { return target == ErrTrial }

// ReferenceEvaluationError wraps a failure raised inside a function-form reference.
type ReferenceEvaluationError struct {
	Description string
	Err         error
}

func (e *ReferenceEvaluationError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrReferenceEvaluation, e.Description, e.Err)
}

// Unwrap exposes both the evaluation sentinel and the cause, so an unknown marker
// raised inside a function stays matchable.
func (e *ReferenceEvaluationError) Unwrap() []error {
	return []error{ErrReferenceEvaluation, e.Err}
}

// IsAuthoringError reports whether err stems from a malformed template.
func IsAuthoringError(err error) bool { return errors.Is(err, ErrAuthoring) }

// IsTrialError reports whether err stems from the trial being realized.
func IsTrialError(err error) bool { return errors.Is(err, ErrTrial) }
