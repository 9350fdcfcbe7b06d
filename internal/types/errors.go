package types

import (
	"fmt"

	"github.com/you-not-fish/vela/internal/syntax"
)

// ErrorKind classifies a semantic error.
type ErrorKind uint8

const (
	// Duplicate declarations
	ConstantAlreadyExist ErrorKind = iota
	TypeAlreadyExist
	FunctionAlreadyExist

	// Lookup misses
	ValueNotFound
	FunctionNotFound

	// Control flow
	ReturnNotFound
)

var errorKindNames = [...]string{
	ConstantAlreadyExist: "constantAlreadyExist",
	TypeAlreadyExist:     "typeAlreadyExist",
	FunctionAlreadyExist: "functionAlreadyExist",
	ValueNotFound:        "valueNotFound",
	FunctionNotFound:     "functionNotFound",
	ReturnNotFound:       "returnNotFound",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error is a semantic error: the failure kind, the offending identifier
// and where it was written.
type Error struct {
	Kind  ErrorKind
	Value string
	Pos   syntax.Pos
}

// NewError returns an error of kind for the identifier id.
func NewError(kind ErrorKind, id syntax.Ident) *Error {
	return &Error{Kind: kind, Value: id.Name(), Pos: id.Pos()}
}

// Error returns the trace line (<kind> for value <identifier> at <location>).
func (e *Error) Error() string {
	return fmt.Sprintf("(%s for value %s at %s)", e.Kind, e.Value, e.Pos)
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, &Error{Kind: k}) matches any error of kind k.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
