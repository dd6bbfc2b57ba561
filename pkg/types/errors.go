package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a gorational error. The first letter encodes the
// error kind.
type ErrorCode string

const (
	// L01xx: lexical structure errors
	ErrUnmatchedOpenToken  ErrorCode = "L0101"
	ErrMissingOpenToken    ErrorCode = "L0102"
	ErrWrongClosingToken   ErrorCode = "L0103"
	ErrBlankSpan           ErrorCode = "L0104"
	ErrPrematureSibling    ErrorCode = "L0105"
	ErrUnexpectedCharacter ErrorCode = "L0106"
	ErrNodeState           ErrorCode = "L0107"
	ErrMalformedNumber     ErrorCode = "L0108"

	// G02xx: grammar errors
	ErrIllegalSequence      ErrorCode = "G0201"
	ErrIncompleteExpression ErrorCode = "G0202"

	// A03xx: arithmetic domain errors
	ErrDivisionByZero    ErrorCode = "A0301"
	ErrNonPositiveLog    ErrorCode = "A0302"
	ErrNotNaturalNumber  ErrorCode = "A0303"
	ErrRoundingNecessary ErrorCode = "A0304"
	ErrOutOfDomain       ErrorCode = "A0305"
	ErrNegativeRoot      ErrorCode = "A0306"

	// I04xx: invocation errors
	ErrUnknownFunction       ErrorCode = "I0401"
	ErrArgumentCount         ErrorCode = "I0402"
	ErrVectorInScalarContext ErrorCode = "I0403"
	ErrInvocationFailed      ErrorCode = "I0404"
	ErrUndefinedVariable     ErrorCode = "I0405"

	// C05xx: configuration errors
	ErrInvalidConfiguration ErrorCode = "C0501"
	ErrInvalidMappingName   ErrorCode = "C0502"
	ErrInvalidArity         ErrorCode = "C0503"
	ErrMappingCollision     ErrorCode = "C0504"
)

// Sentinel errors for each error kind. A *Error matches its kind's sentinel
// through errors.Is.
var (
	ErrLexicalStructure = errors.New("lexical structure error")
	ErrGrammar          = errors.New("grammar error")
	ErrArithmeticDomain = errors.New("arithmetic domain error")
	ErrInvocation       = errors.New("invocation error")
	ErrConfiguration    = errors.New("configuration error")
)

// Kind returns the sentinel error of the code's kind, or nil for an
// unknown prefix.
func (c ErrorCode) Kind() error {
	if c == "" {
		return nil
	}
	switch c[0] {
	case 'L':
		return ErrLexicalStructure
	case 'G':
		return ErrGrammar
	case 'A':
		return ErrArithmeticDomain
	case 'I':
		return ErrInvocation
	case 'C':
		return ErrConfiguration
	}
	return nil
}

// Error represents a structured gorational error.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	Token    string
	// Annotated is a position-annotated copy of the source, for diagnostics.
	Annotated string
	// Signature and Operands describe the failing call, if any.
	Signature string
	Operands  []string
	Err       error
}

// NewError creates a new error. Use a negative position when the error is
// not tied to a source position.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Errorf creates a new error with a formatted message and no position.
func Errorf(code ErrorCode, format string, args ...interface{}) *Error {
	return NewError(code, fmt.Sprintf(format, args...), -1)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Position >= 0 {
		fmt.Fprintf(&b, "%s at position %d: %s", e.Code, e.Position, e.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	}
	if e.Signature != "" {
		fmt.Fprintf(&b, " in %s", e.Signature)
		if len(e.Operands) > 0 {
			fmt.Fprintf(&b, " with (%s)", strings.Join(e.Operands, ", "))
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of this error's kind, or a
// *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Code == e.Code
	}
	return target != nil && target == e.Code.Kind()
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// WithAnnotation attaches an annotated copy of the source.
func (e *Error) WithAnnotation(annotated string) *Error {
	e.Annotated = annotated
	return e
}

// WithSignature records the failing call and its actual operands.
func (e *Error) WithSignature(signature string, operands []string) *Error {
	e.Signature = signature
	e.Operands = operands
	return e
}

// AsError returns err as a *Error if it is one (or wraps one).
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
