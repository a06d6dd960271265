package translator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalancedClose matches a ']' with no open loop.
	ErrUnbalancedClose = errors.New("unbalanced closing bracket")
	// ErrUnterminatedLoop matches a '[' still open at end of input.
	ErrUnterminatedLoop = errors.New("unterminated loop")
)

// Position locates a byte in the source. Line and Column are 1-based;
// Column counts bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// StructuralError reports malformed bracket nesting.
type StructuralError struct {
	Kind error
	Pos  Position
}

func (e *StructuralError) Error() string {
	switch e.Kind {
	case ErrUnbalancedClose:
		return fmt.Sprintf("%s: %s: ']' has no matching '['", e.Pos, e.Kind)
	case ErrUnterminatedLoop:
		return fmt.Sprintf("%s: %s: '[' is never closed", e.Pos, e.Kind)
	default:
		return fmt.Sprintf("%s: %s", e.Pos, e.Kind)
	}
}

// Is lets errors.Is match the sentinel kind.
func (e *StructuralError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap exposes the sentinel kind.
func (e *StructuralError) Unwrap() error {
	return e.Kind
}
