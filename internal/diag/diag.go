package diag

import "fmt"

// Lowering diagnostics flow through a compile result envelope: a
// possibly absent value together with the warnings and errors collected
// while producing it.  The caller decides whether a partial value is
// usable.

// Level represents the severity of a diagnostic
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
)

// Diagnostic codes used across the toolchain.
//
// Code ranges:
// L0001-L0099: Lowering errors
// L0100-L0199: IR structural errors
// L0800-L0899: Warning codes
const (
	// L0001: Typed declaration lookup failures
	ErrorDeclarationNotFound = "L0001"

	// L0002: Missing entry point in a script or predicate
	ErrorMissingEntryPoint = "L0002"

	// L0003: Mismatched lowering types
	ErrorTypeMismatch = "L0003"

	// L0100: IR verification failures surfaced to the driver
	ErrorVerification = "L0100"

	// L0800: Dead code discovered during lowering
	WarningDeadCode = "L0800"
)

// MainEntryPointName is the function name scripts and predicates use to
// identify their entry point.
const MainEntryPointName = "main"

// Diagnostic is a single leveled message with a stable code.
type Diagnostic struct {
	Level   Level
	Code    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", d.Level, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Level, d.Message)
}

// Errorf builds an error level diagnostic.
func Errorf(code, format string, args ...any) Diagnostic {
	return Diagnostic{Level: Error, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Warningf builds a warning level diagnostic.
func Warningf(code, format string, args ...any) Diagnostic {
	return Diagnostic{Level: Warning, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Result is the compile result envelope: an optional value plus the
// warnings and errors gathered while producing it.
type Result[T any] struct {
	value    *T
	Warnings []Diagnostic
	Errors   []Diagnostic
}

// Ok wraps a successfully produced value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: &value}
}

// Err wraps a failure with at least one error diagnostic.
func Err[T any](errs ...Diagnostic) Result[T] {
	return Result[T]{Errors: errs}
}

// Partial wraps a value produced alongside errors; callers decide
// whether it is usable.
func Partial[T any](value T, warnings, errs []Diagnostic) Result[T] {
	return Result[T]{value: &value, Warnings: warnings, Errors: errs}
}

// Value returns the carried value, if one was produced.
func (r Result[T]) Value() (T, bool) {
	if r.value == nil {
		var zero T
		return zero, false
	}
	return *r.value, true
}

// IsOk reports whether a value was produced with no errors.
func (r Result[T]) IsOk() bool {
	return r.value != nil && len(r.Errors) == 0
}

// WithWarning returns a copy of the result with an extra warning.
func (r Result[T]) WithWarning(w Diagnostic) Result[T] {
	r.Warnings = append(r.Warnings, w)
	return r
}

// OnErr invokes f with the collected errors when there are any, and
// returns the result unchanged so calls can be chained.
func (r Result[T]) OnErr(f func(errs []Diagnostic)) Result[T] {
	if len(r.Errors) > 0 {
		f(r.Errors)
	}
	return r
}

// Map transforms the carried value, preserving diagnostics.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	mapped := Result[U]{Warnings: r.Warnings, Errors: r.Errors}
	if r.value != nil {
		u := f(*r.value)
		mapped.value = &u
	}
	return mapped
}
