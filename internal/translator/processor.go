package translator

import (
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/pipeline"
	"github.com/pycatalyst/catalyst/internal/token"
)

// TranslatorProcessor is the pipeline stage that turns the AST into a
// translation unit.
type TranslatorProcessor struct{}

func (tp *TranslatorProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Failed() {
		return ctx
	}
	if ctx.Program == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrT001, token.Token{}, "translator: program is nil"))
		return ctx
	}

	tr := New(ctx.Config)
	if err := tr.Translate(ctx.Program); err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.Unit = tr.File()
	return ctx
}

// RenderProcessor is the final stage: it assembles the accumulated unit
// into the output text. Rendering is deterministic, so a re-run over the
// same source yields byte-identical output.
type RenderProcessor struct{}

func (rp *RenderProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Failed() {
		return ctx
	}
	if ctx.Unit == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrT001, token.Token{}, "render: translation unit is nil"))
		return ctx
	}
	ctx.Output = ctx.Unit.Render(ctx.Config.Indent)
	return ctx
}
