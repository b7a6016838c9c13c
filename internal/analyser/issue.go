package analyser

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/eqgen/internal/model"
)

// IssueKind classifies an analysis problem.
type IssueKind int

const (
	Underconstrained IssueKind = iota
	Overconstrained
	Unsuitable
	UnitsMismatch
	Unsupported
)

var (
	ErrUnderconstrained = errors.New("underconstrained")
	ErrOverconstrained  = errors.New("overconstrained")
	ErrUnsuitable       = errors.New("unsuitable")
	ErrUnitsMismatch    = errors.New("units mismatch")
	ErrUnsupported      = errors.New("unsupported")
)

func (k IssueKind) String() string {
	return k.sentinel().Error()
}

func (k IssueKind) sentinel() error {
	switch k {
	case Underconstrained:
		return ErrUnderconstrained
	case Overconstrained:
		return ErrOverconstrained
	case Unsuitable:
		return ErrUnsuitable
	case UnitsMismatch:
		return ErrUnitsMismatch
	}
	return ErrUnsupported
}

// Severity tells whether an issue blocks code generation.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Issue is a problem found while analysing a model. Issues are collected,
// never raised.
type Issue struct {
	Kind     IssueKind
	Severity Severity
	Message  string
	Variable *model.Variable
	Equation *model.Equation
}

// Error implements error so issues can be joined and matched with errors.Is
// against the Err* sentinels.
func (i Issue) Error() string {
	return fmt.Sprintf("%s (%s): %s", i.Kind, i.Severity, i.Message)
}

func (i Issue) Unwrap() error {
	return i.Kind.sentinel()
}

// HasErrors reports whether any issue has error severity.
func (m *Model) HasErrors() bool {
	for _, i := range m.Issues {
		if i.Severity == Error {
			return true
		}
	}
	return false
}

// Err joins every error-severity issue, or returns nil.
func (m *Model) Err() error {
	var errs []error
	for _, i := range m.Issues {
		if i.Severity == Error {
			errs = append(errs, i)
		}
	}
	return errors.Join(errs...)
}

// Warnings returns the warning-severity issues.
func (m *Model) Warnings() []Issue {
	var out []Issue
	for _, i := range m.Issues {
		if i.Severity == Warning {
			out = append(out, i)
		}
	}
	return out
}
