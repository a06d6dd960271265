package translator

import (
	"fmt"
	"strings"

	"github.com/vk/bfc/internal/label"
)

// DefaultCells is the size of the emitted cell array.
const DefaultCells = 300_000

// headerBreaks keeps the header on a single comment line.
var headerBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Options controls the program skeleton.
type Options struct {
	// Cells is the length of the emitted cell array.
	Cells int
	// Header, when set, is the native compile command written into a
	// leading comment of the generated file.
	Header string
}

// Stats summarizes one pass.
type Stats struct {
	Symbols  int // meaningful symbols consumed
	Skipped  int // inert bytes ignored
	Loops    int
	MaxDepth int
}

type openLoop struct {
	id  int
	pos Position
}

// Translator converts one Brainfuck program to C.
type Translator struct {
	alloc label.Allocator
	opts  Options
	stats Stats
}

// New returns a Translator that draws loop labels from alloc.
func New(alloc label.Allocator, opts Options) *Translator {
	if opts.Cells <= 0 {
		opts.Cells = DefaultCells
	}
	return &Translator{alloc: alloc, opts: opts}
}

// Stats returns the counters gathered by the last call to Translate.
func (t *Translator) Stats() Stats { return t.stats }

// Translate scans src once and returns the generated C program. On any
// error no buffer is returned.
func (t *Translator) Translate(src []byte) (*Buffer, error) {
	t.stats = Stats{}
	b := NewBuffer()
	t.prologue(b)

	var stack []openLoop
	pos := Position{Line: 1, Column: 1}

	for i, c := range src {
		pos.Offset = i
		switch c {
		case '>':
			b.EmitLine("++data_ptr;")
		case '<':
			b.EmitLine("--data_ptr;")
		case '+':
			b.EmitLine("++(*data_ptr);")
		case '-':
			b.EmitLine("--(*data_ptr);")
		case '.':
			b.EmitLine(`printf("%c", (char)*data_ptr);`)
			b.EmitLine("fflush(stdout);")
		case ',':
			b.EmitLine("input = fgetc(stdin);")
			b.EmitLine("if (input != EOF) (*data_ptr) = input;")
		case '[':
			id, err := t.alloc.Allocate()
			if err != nil {
				return nil, fmt.Errorf("%s: allocating loop label: %w", pos, err)
			}
			stack = append(stack, openLoop{id: id, pos: pos})
			t.stats.Loops++
			t.stats.MaxDepth = max(t.stats.MaxDepth, len(stack))

			b.Dedent()
			b.EmitLinef("l%db:", id)
			b.Indent()
			b.EmitLinef("if ((*data_ptr) == 0) goto l%df;", id)
		case ']':
			if len(stack) == 0 {
				return nil, &StructuralError{Kind: ErrUnbalancedClose, Pos: pos}
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			b.Dedent()
			b.EmitLinef("l%df:", top.id)
			b.Indent()
			b.EmitLinef("if ((*data_ptr) != 0) goto l%db;", top.id)
		default:
			t.stats.Skipped++
			advance(&pos, c)
			continue
		}
		t.stats.Symbols++
		advance(&pos, c)
	}

	if len(stack) > 0 {
		return nil, &StructuralError{Kind: ErrUnterminatedLoop, Pos: stack[len(stack)-1].pos}
	}

	t.epilogue(b)
	return b, nil
}

func (t *Translator) prologue(b *Buffer) {
	if t.opts.Header != "" {
		b.EmitLinef("// This will be compiled to machine code with: %s", headerBreaks.Replace(t.opts.Header))
	}
	b.EmitLine("#include <stdio.h>")
	b.EmitLine("")
	b.EmitLine("int input;")
	b.EmitLinef("int cells[%d] = {0};", t.opts.Cells)
	b.EmitLine("int main() {")
	b.Indent()
	b.EmitLine("int* data_ptr = cells;")
	b.EmitLine("(void)data_ptr;")
}

func (t *Translator) epilogue(b *Buffer) {
	b.Dedent()
	b.EmitLine("}")
}

func advance(pos *Position, c byte) {
	if c == '\n' {
		pos.Line++
		pos.Column = 1
		return
	}
	pos.Column++
}
