// Package errors provides structured error handling for the whole library.
// Every failure mode of the pipeline algebra (unknown components, shape
// mismatches, unfitted nodes, exhausted cross-validation runs) has its own
// error type, carries a stack trace, and can be emitted as a structured
// zerolog object.
package errors

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("PipeML-Warning: %v\n", w)
	}
	// zerolog sink, installed lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the library-wide warning handler. Passing a
// no-op handler silences warnings such as UndefinedMetricWarning.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. When set it
// takes precedence over the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a non-fatal warning through the configured sink.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// UndefinedMetricWarning is raised when a metric is ill-defined for the given
// inputs, e.g. precision with no predicted positives for a class. The metric
// substitutes Result instead of failing.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning creates a new UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned when Transform (or any state-dependent call) is
// invoked on a node or component before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("pipeml: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports a row or column misalignment between a node's input
// and its fitted expectation, or between sibling outputs of a parallel node.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("pipeml: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// UnknownComponentError is returned by the expression compiler when an
// identifier does not resolve to a registered component. Compilation aborts.
type UnknownComponentError struct {
	Component string
	Known     []string
}

func (e *UnknownComponentError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("pipeml: unknown component %q (registry is empty)", e.Component)
	}
	return fmt.Sprintf("pipeml: unknown component %q (registered: %s)", e.Component, strings.Join(e.Known, ", "))
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *UnknownComponentError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("component", e.Component).
		Strs("registered", e.Known).
		Str("type", "UnknownComponentError")
}

// NewUnknownComponentError creates a new UnknownComponentError with a stack trace.
func NewUnknownComponentError(component string, known []string) error {
	err := &UnknownComponentError{Component: component, Known: known}
	return errors.WithStack(err)
}

// SyntaxError reports an invalid pipeline expression. Pos is a zero-based
// byte offset into the expression source.
type SyntaxError struct {
	Expr    string
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pipeml: syntax error at offset %d in %q: %s", e.Pos, e.Expr, e.Message)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *SyntaxError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("expression", e.Expr).
		Int("pos", e.Pos).
		Str("message", e.Message).
		Str("type", "SyntaxError")
}

// NewSyntaxError creates a new SyntaxError with a stack trace.
func NewSyntaxError(expr string, pos int, message string) error {
	err := &SyntaxError{Expr: expr, Pos: pos, Message: message}
	return errors.WithStack(err)
}

// AllFoldsFailedError is returned by the cross-validation orchestrator when
// every fold failed and the aggregate mean/std are undefined.
type AllFoldsFailedError struct {
	Folds     int
	FirstFail error
}

func (e *AllFoldsFailedError) Error() string {
	if e.FirstFail != nil {
		return fmt.Sprintf("pipeml: all %d cross-validation folds failed (first failure: %v)", e.Folds, e.FirstFail)
	}
	return fmt.Sprintf("pipeml: all %d cross-validation folds failed", e.Folds)
}

func (e *AllFoldsFailedError) Unwrap() error {
	return e.FirstFail
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *AllFoldsFailedError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("folds", e.Folds).
		AnErr("first_failure", e.FirstFail).
		Str("type", "AllFoldsFailedError")
}

// NewAllFoldsFailedError creates a new AllFoldsFailedError with a stack trace.
func NewAllFoldsFailedError(folds int, firstFail error) error {
	err := &AllFoldsFailedError{Folds: folds, FirstFail: firstFail}
	return errors.WithStack(err)
}

// ValidationError reports an invalid parameter value, e.g. a fold count
// below two or a holdout fraction outside (0, 1).
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pipeml: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a new ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError reports an unacceptable argument value for an operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("pipeml: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError is a general error raised by a pipeline component.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pipeml: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("pipeml: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a new ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to err.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error values
//
// ===========================================================================

var (
	// ErrEmptyData is returned when a dataset with zero rows or columns is passed.
	ErrEmptyData = New("empty data")

	// ErrMissingTarget is returned when a supervised component is fit without a target.
	ErrMissingTarget = New("missing target")
)
