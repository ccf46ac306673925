package parser

import (
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/pipeline"
	"github.com/pycatalyst/catalyst/internal/token"
)

// ParserProcessor is the pipeline stage that turns tokens into an AST.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Failed() {
		return ctx
	}
	if ctx.Tokens == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil"))
		return ctx
	}

	parser := New(ctx.Tokens)
	program := parser.ParseProgram()
	program.File = ctx.FilePath

	for _, err := range parser.Errors() {
		ctx.AddError(err)
	}
	if !ctx.Failed() {
		ctx.Program = program
	}
	return ctx
}
