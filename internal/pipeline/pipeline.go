// Package pipeline wires the translation stages together. Each stage is a
// Processor that reads and extends the shared Context; a stage that finds
// the context already failed passes it through untouched, so the first
// error wins and no partial output is produced.
package pipeline

import (
	"github.com/pycatalyst/catalyst/internal/ast"
	"github.com/pycatalyst/catalyst/internal/config"
	"github.com/pycatalyst/catalyst/internal/cpp"
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/token"
)

// Context carries one translation run through the stages. A run owns its
// Context exclusively; nothing in it is shared across runs.
type Context struct {
	FilePath   string
	SourceCode string
	Config     *config.Config

	Tokens  []token.Token
	Program *ast.Program
	Unit    *cpp.File
	Output  string

	Errors []*diagnostics.Diagnostic
}

// Failed reports whether any stage has recorded an error.
func (c *Context) Failed() bool {
	return len(c.Errors) > 0
}

// AddError records a diagnostic, stamping it with the run's file path.
func (c *Context) AddError(d *diagnostics.Diagnostic) {
	if d.File == "" {
		d.File = c.FilePath
	}
	c.Errors = append(c.Errors, d)
}

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the stages in order. Translation aborts on the first failed
// stage: later stages see Failed() and return immediately.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
