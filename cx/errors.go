package cx

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying conversion failures. Typed errors below
// unwrap to one of these so callers can tell a malformed document from a
// construct a policy does not support.
var (
	// ErrFormatViolation means a required field is absent or has the wrong shape.
	ErrFormatViolation = errors.New("cx format violation")

	// ErrUnsupportedValue means a value's data type is not handled.
	ErrUnsupportedValue = errors.New("unhandled data type")

	// ErrUnknownAspect means a strict policy met an aspect it has no handler for.
	ErrUnknownAspect = errors.New("unhandled aspect")

	// ErrUnresolvableReference means an entity reference could not be created.
	ErrUnresolvableReference = errors.New("unresolvable entity reference")
)

// FormatError describes a required field that is absent or malformed.
// Index is the entry position within the aspect, or -1 for document and
// aspect level problems.
type FormatError struct {
	Aspect string
	Index  int
	Field  string
	Reason string
}

func (e *FormatError) Error() string {
	msg := ErrFormatViolation.Error()
	if e.Aspect != "" {
		msg += fmt.Sprintf(": aspect %q", e.Aspect)
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf(" entry %d", e.Index)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" field %q", e.Field)
	}
	return msg + ": " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return ErrFormatViolation
}

// UnsupportedValueError is returned for a data type discriminator or value
// shape that the exporters do not convert.
type UnsupportedValueError struct {
	Aspect   string
	DataType string
	Value    any
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unhandled data type: %s %v (aspect %q)", e.DataType, e.Value, e.Aspect)
}

func (e *UnsupportedValueError) Unwrap() error {
	return ErrUnsupportedValue
}

// UnknownAspectError is returned by the strict aspect policy. Known reports
// whether the name is a recognized CX aspect that simply has no handler.
type UnknownAspectError struct {
	Name  string
	Known bool
}

func (e *UnknownAspectError) Error() string {
	if e.Known {
		return fmt.Sprintf("unhandled known aspect: %s", e.Name)
	}
	return fmt.Sprintf("unhandled unknown aspect: %s", e.Name)
}

func (e *UnknownAspectError) Unwrap() error {
	return ErrUnknownAspect
}

// UnresolvableReferenceError is returned when an edge endpoint has no node,
// e.g. an ontology class whose name could not be derived.
type UnresolvableReferenceError struct {
	Role   string // "source" or "target"
	Entity string
}

func (e *UnresolvableReferenceError) Error() string {
	return fmt.Sprintf("unresolvable entity reference: edge %s %s has no node", e.Role, e.Entity)
}

func (e *UnresolvableReferenceError) Unwrap() error {
	return ErrUnresolvableReference
}

// IsFormatViolation reports whether err is a format violation.
func IsFormatViolation(err error) bool {
	return errors.Is(err, ErrFormatViolation)
}

// IsUnsupportedValue reports whether err is an unsupported value error.
func IsUnsupportedValue(err error) bool {
	return errors.Is(err, ErrUnsupportedValue)
}

// IsUnknownAspect reports whether err is an unknown aspect error.
func IsUnknownAspect(err error) bool {
	return errors.Is(err, ErrUnknownAspect)
}

// IsUnresolvableReference reports whether err is an unresolvable reference.
func IsUnresolvableReference(err error) bool {
	return errors.Is(err, ErrUnresolvableReference)
}

// InAspect fills in the aspect and entry position of a FormatError or
// UnsupportedValueError raised by an Entry accessor. Other errors are
// returned unchanged.
func InAspect(err error, aspect string, index int) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		if fe.Aspect == "" {
			fe.Aspect = aspect
			fe.Index = index
		}
		return err
	}
	var ue *UnsupportedValueError
	if errors.As(err, &ue) && ue.Aspect == "" {
		ue.Aspect = aspect
	}
	return err
}
