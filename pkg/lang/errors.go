package lang

import (
	"fmt"
	"strings"
)

// ErrorKind classifies an Error per spec.md §4.7.
type ErrorKind int

const (
	BadTypes ErrorKind = iota
	ArityMismatch
	UndefinedSymbol
	DivideByZero
	ReaderErrorKind
	UserError
	IndexOutOfBounds
	PanicError
)

func (k ErrorKind) String() string {
	switch k {
	case BadTypes:
		return "BadTypes"
	case ArityMismatch:
		return "ArityMismatch"
	case UndefinedSymbol:
		return "UndefinedSymbol"
	case DivideByZero:
		return "DivideByZero"
	case ReaderErrorKind:
		return "ReaderError"
	case UserError:
		return "UserError"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case PanicError:
		return "Panic"
	default:
		return "Error"
	}
}

// Frame is a single call-site annotation accumulated during unwinding:
// the callee's name and the arguments it was invoked with, rendered with
// the same printer `print` uses (spec.md §4.7/§7).
type Frame struct {
	Callee string
	Args   []Value
}

func (f Frame) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = renderArg(a)
	}
	return fmt.Sprintf("%s(%s)", f.Callee, strings.Join(parts, ", "))
}

func renderArg(v Value) string {
	if s, ok := v.(Str); ok {
		return s.Quoted()
	}
	return v.String()
}

// Error is x7's structured failure value: a kind plus the stack of call
// frames accumulated as it propagated outward. Frames are appended
// innermost-first, matching spec.md §4.7's documented presentation order.
type Error struct {
	Kind    ErrorKind
	Message string
	Frames  []Frame
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	for _, f := range e.Frames {
		b.WriteString("\n  at ")
		b.WriteString(f.String())
	}
	return b.String()
}

// NewError builds an Error with no frames yet.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithFrame returns err decorated with an additional call frame, appended
// after the frames it already carries; non-*Error errors are wrapped as a
// BadTypes Error first, so every error that crosses a call boundary
// carries a stacktrace regardless of its origin (spec.md §4.2 step 5).
func WithFrame(err error, callee string, args []Value) *Error {
	lerr, ok := err.(*Error)
	if !ok {
		lerr = &Error{Kind: BadTypes, Message: err.Error()}
	}
	lerr.Frames = append(lerr.Frames, Frame{Callee: callee, Args: args})
	return lerr
}

// AsError extracts *Error from a Go error, wrapping arbitrary errors from
// builtin implementations (which return plain `fmt.Errorf` for brevity,
// matching the teacher's idiom) as BadTypes, and reader failures
// (*ParseError) as ReaderError.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if lerr, ok := err.(*Error); ok {
		return lerr
	}
	if perr, ok := err.(*ParseError); ok {
		return &Error{Kind: ReaderErrorKind, Message: perr.Error()}
	}
	return &Error{Kind: BadTypes, Message: err.Error()}
}
