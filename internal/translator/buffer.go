package translator

import (
	"fmt"
	"strings"
)

// IndentUnit is the number of spaces added per indentation level.
const IndentUnit = 4

// Buffer accumulates emitted lines and tracks the current indentation.
type Buffer struct {
	sb    strings.Builder
	level int
	lines int
}

// NewBuffer returns an empty buffer at indentation level zero.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// EmitLine appends text prefixed with the current indentation. An empty line
// is written without indentation.
func (b *Buffer) EmitLine(text string) {
	if text != "" {
		b.sb.WriteString(strings.Repeat(" ", b.level))
		b.sb.WriteString(text)
	}
	b.sb.WriteByte('\n')
	b.lines++
}

// EmitLinef is EmitLine with fmt formatting.
func (b *Buffer) EmitLinef(format string, args ...any) {
	b.EmitLine(fmt.Sprintf(format, args...))
}

// Indent moves one unit deeper.
func (b *Buffer) Indent() {
	b.level += IndentUnit
}

// Dedent moves one unit shallower. Going below zero means indent and dedent
// calls were not paired, which is a bug in the caller.
func (b *Buffer) Dedent() {
	if b.level < IndentUnit {
		panic(fmt.Sprintf("translator: dedent below zero (level %d)", b.level))
	}
	b.level -= IndentUnit
}

// Level returns the current indentation in spaces.
func (b *Buffer) Level() int { return b.level }

// Lines returns the number of lines emitted so far.
func (b *Buffer) Lines() int { return b.lines }

// Finalize returns the accumulated text.
func (b *Buffer) Finalize() string {
	return b.sb.String()
}
