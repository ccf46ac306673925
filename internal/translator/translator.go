// Package translator walks the syntax tree and produces the emission
// objects that make up the C++ translation unit. It owns the scope chain
// and drives type inference; dispatch over node kinds is exhaustive, so a
// construct without a case fails with a diagnostic instead of mis-emitting.
package translator

import (
	"github.com/pycatalyst/catalyst/internal/ast"
	"github.com/pycatalyst/catalyst/internal/config"
	"github.com/pycatalyst/catalyst/internal/cpp"
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/scope"
	"github.com/pycatalyst/catalyst/internal/token"
	"github.com/pycatalyst/catalyst/internal/types"
)

// funcInfo tracks one user function or method across translation. Types
// are monomorphic: parameters left unresolved by the body are fixed by the
// first call with concrete argument types and never changed afterwards.
type funcInfo struct {
	def        *cpp.Function
	paramNames []string
	returnDeps []int // parameter indices the return type derives from
	returnFixed bool

	owner    *classInfo // set for methods and constructors
	attrDeps []attrDep  // attributes typed directly from a parameter
}

// attrDep links a still-unresolved attribute to the initializer parameter
// it was assigned from, so fixing the parameter also fixes the attribute.
type attrDep struct {
	paramIdx int
	attr     string
}

// classInfo tracks one user class: its emission object, its attribute
// scope frame, and its methods.
type classInfo struct {
	def     *cpp.Class
	attrs   *scope.Scope
	ctor    *funcInfo
	methods map[string]*funcInfo
}

// Translator performs one translation run. A run owns its scope chain and
// its output accumulator exclusively; only the builtin table is shared
// between runs, and that is immutable.
type Translator struct {
	cfg  *config.Config
	file *cpp.File

	moduleScope *scope.Scope
	scope       *scope.Scope

	funcs   map[string]*funcInfo
	classes map[string]*classInfo
	decls   map[*scope.Symbol]*cpp.Decl

	curFunc  *funcInfo
	curClass *classInfo
	selfName string
	inInit   bool
	inLoop   bool
}

func New(cfg *config.Config) *Translator {
	mod := scope.NewModule()
	return &Translator{
		cfg:         cfg,
		file:        cpp.NewFile(cfg.Output),
		moduleScope: mod,
		scope:       mod,
		funcs:       make(map[string]*funcInfo),
		classes:     make(map[string]*classInfo),
		decls:       make(map[*scope.Symbol]*cpp.Decl),
	}
}

// File returns the accumulated translation unit.
func (t *Translator) File() *cpp.File { return t.file }

// Translate walks the whole program. Function and class headers are
// declared first so later statements can reference them; bodies follow,
// and the remaining top-level statements become the entry function.
func (t *Translator) Translate(program *ast.Program) *diagnostics.Diagnostic {
	// Headers first, in encounter order.
	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.FunctionStatement:
			if err := t.declareFunctionHeader(s); err != nil {
				return err
			}
		case *ast.ClassStatement:
			if err := t.declareClassHeader(s); err != nil {
				return err
			}
		}
	}

	// Class bodies, then function bodies, in encounter order.
	for _, stmt := range program.Statements {
		if s, ok := stmt.(*ast.ClassStatement); ok {
			if err := t.translateClass(s); err != nil {
				return err
			}
		}
	}
	for _, stmt := range program.Statements {
		if s, ok := stmt.(*ast.FunctionStatement); ok {
			if err := t.translateFunctionBody(s); err != nil {
				return err
			}
		}
	}

	// Everything else is owned by the synthesized entry function.
	for _, stmt := range program.Statements {
		switch stmt.(type) {
		case *ast.FunctionStatement, *ast.ClassStatement:
			continue
		}
		emitted, err := t.translateStatement(stmt)
		if err != nil {
			return err
		}
		for _, s := range emitted {
			t.file.AddMain(s)
		}
	}
	return nil
}

// declareFunctionHeader declares the function symbol and builds its
// emission object with parameter types taken from default values, leaving
// the rest unresolved.
func (t *Translator) declareFunctionHeader(node *ast.FunctionStatement) *diagnostics.Diagnostic {
	if node.Decorated {
		return diagnostics.Unsupported(node.GetToken(), "decorated function %q", node.Name.Value)
	}

	def := &cpp.Function{Name: node.Name.Value, Return: types.Unresolved}
	fi := &funcInfo{def: def}
	for _, param := range node.Params {
		ptype := types.Type(types.Unresolved)
		defaultText := ""
		if param.Default != nil {
			val, err := t.emitExpr(param.Default)
			if err != nil {
				return err
			}
			ptype = val.typ
			defaultText = val.text
		}
		def.Params = append(def.Params, cpp.Param{Name: param.Name, Type: ptype, Default: defaultText})
		fi.paramNames = append(fi.paramNames, param.Name)
	}

	if _, err := t.moduleScope.Declare(node.Name.Value, types.Unresolved, scope.KindFunction); err != nil {
		return diagnostics.Redeclared(node.Name.Token, node.Name.Value)
	}
	t.funcs[node.Name.Value] = fi
	return nil
}

// translateFunctionBody opens the function's scope frame, declares its
// parameters, and translates the body statements in order. The return type
// is fixed by the first return statement encountered.
func (t *Translator) translateFunctionBody(node *ast.FunctionStatement) *diagnostics.Diagnostic {
	fi := t.funcs[node.Name.Value]

	t.scope = t.scope.Enter("function " + node.Name.Value)
	defer func() { t.scope = t.scope.Exit() }()

	for i, param := range node.Params {
		if _, err := t.scope.Declare(param.Name, fi.def.Params[i].Type, scope.KindParameter); err != nil {
			return diagnostics.Redeclared(param.Token, param.Name)
		}
	}

	prevFunc := t.curFunc
	t.curFunc = fi
	body, err := t.translateBlock(node.Body)
	t.curFunc = prevFunc
	if err != nil {
		return err
	}
	fi.def.Body = body
	if !fi.returnFixed && len(fi.returnDeps) == 0 {
		// No return statement: the function yields nothing.
		if types.Equal(fi.def.Return, types.Unresolved) {
			fi.def.Return = types.Void
		}
	}
	t.file.AddFunction(fi.def)
	return nil
}

// translateBlock translates a suite of statements into emitted statements.
func (t *Translator) translateBlock(block *ast.BlockStatement) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	var out []cpp.Stmt
	for _, stmt := range block.Statements {
		emitted, err := t.translateStatement(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, emitted...)
	}
	return out, nil
}

// translateStatement dispatches over the closed statement set.
func (t *Translator) translateStatement(node ast.Statement) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	switch s := node.(type) {
	case *ast.ExpressionStatement:
		return t.translateExpressionStatement(s)
	case *ast.AssignStatement:
		return t.translateAssign(s)
	case *ast.AugAssignStatement:
		return t.translateAugAssign(s)
	case *ast.ReturnStatement:
		return t.translateReturn(s)
	case *ast.IfStatement:
		return t.translateIf(s)
	case *ast.WhileStatement:
		return t.translateWhile(s)
	case *ast.ForStatement:
		return t.translateFor(s)
	case *ast.BreakStatement:
		if !t.inLoop {
			return nil, diagnostics.Unsupported(s.Token, "'break' outside loop")
		}
		return []cpp.Stmt{{Kind: cpp.StmtBreak}}, nil
	case *ast.ContinueStatement:
		if !t.inLoop {
			return nil, diagnostics.Unsupported(s.Token, "'continue' outside loop")
		}
		return []cpp.Stmt{{Kind: cpp.StmtContinue}}, nil
	case *ast.PassStatement:
		return nil, nil
	case *ast.ImportStatement:
		return t.translateImport(s)
	case *ast.FunctionStatement:
		return nil, diagnostics.Unsupported(s.Token, "nested function definition %q", s.Name.Value)
	case *ast.ClassStatement:
		return nil, diagnostics.Unsupported(s.Token, "nested class definition %q", s.Name.Value)
	case *ast.BlockStatement:
		return t.translateBlock(s)
	}
	return nil, diagnostics.Unsupported(node.GetToken(), "statement kind %T", node)
}

func (t *Translator) translateExpressionStatement(node *ast.ExpressionStatement) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	// A bare string literal is a docstring; it survives as a comment.
	if lit, ok := node.Expression.(*ast.StringLiteral); ok {
		return []cpp.Stmt{{Kind: cpp.StmtComment, Text: lit.Value}}, nil
	}
	val, err := t.emitExpr(node.Expression)
	if err != nil {
		return nil, err
	}
	return []cpp.Stmt{{Kind: cpp.StmtExpr, Text: val.text, Incs: val.incs}}, nil
}

func (t *Translator) translateImport(node *ast.ImportStatement) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	if node.Module == config.MathModuleName {
		// The math builtins are always available; the import is a no-op.
		return nil, nil
	}
	return nil, diagnostics.Unsupported(node.Token, "import of module %q", node.Module)
}

func (t *Translator) translateReturn(node *ast.ReturnStatement) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	if t.curFunc == nil {
		return nil, diagnostics.Unsupported(node.Token, "'return' outside function")
	}

	// `return` and `return None` both yield nothing.
	if node.Value == nil {
		if err := t.recordReturnType(types.Void, nil, node.Token); err != nil {
			return nil, err
		}
		return []cpp.Stmt{{Kind: cpp.StmtReturn}}, nil
	}
	if _, isNone := node.Value.(*ast.NoneLiteral); isNone {
		if err := t.recordReturnType(types.Void, nil, node.Token); err != nil {
			return nil, err
		}
		return []cpp.Stmt{{Kind: cpp.StmtReturn}}, nil
	}

	val, err := t.emitExpr(node.Value)
	if err != nil {
		return nil, err
	}
	var deps []int
	if types.Equal(val.typ, types.Unresolved) {
		deps = t.paramDeps(node.Value)
	}
	if err := t.recordReturnType(val.typ, deps, node.Token); err != nil {
		return nil, err
	}
	return []cpp.Stmt{{Kind: cpp.StmtReturn, Text: val.text, Incs: val.incs}}, nil
}

// recordReturnType fixes the current function's return type on the first
// return statement; later returns must agree.
func (t *Translator) recordReturnType(typ types.Type, deps []int, tok token.Token) *diagnostics.Diagnostic {
	fi := t.curFunc
	current := fi.def.Return
	switch {
	case types.Equal(current, types.Unresolved) && !types.Equal(typ, types.Unresolved):
		fi.def.Return = typ
		fi.returnFixed = true
	case types.Equal(current, types.Unresolved):
		if len(fi.returnDeps) == 0 {
			fi.returnDeps = deps
		}
	case types.Equal(typ, types.Unresolved):
		// A parameter-dependent return after a concrete one; the concrete
		// type stands.
	case !types.Equal(current, typ):
		return diagnostics.NewError(diagnostics.ErrT004, tok,
			"conflicting return types %s and %s in function %q", current, typ, fi.def.Name)
	}
	return nil
}

// paramDeps collects the indices of the current function's parameters
// referenced by expr, so a parameter-dependent return type can be
// recomputed once the parameters are fixed by the first call.
func (t *Translator) paramDeps(expr ast.Expression) []int {
	var deps []int
	seen := make(map[int]bool)
	var walk func(e ast.Expression)
	walk = func(e ast.Expression) {
		switch n := e.(type) {
		case *ast.Identifier:
			for i, name := range t.curFunc.paramNames {
				if name == n.Value && !seen[i] {
					seen[i] = true
					deps = append(deps, i)
				}
			}
		case *ast.PrefixExpression:
			walk(n.Right)
		case *ast.InfixExpression:
			walk(n.Left)
			walk(n.Right)
		case *ast.CallExpression:
			for _, a := range n.Arguments {
				walk(a)
			}
		case *ast.IndexExpression:
			walk(n.Object)
			walk(n.Index)
		case *ast.AttributeExpression:
			walk(n.Object)
		}
	}
	walk(expr)
	return deps
}

func (t *Translator) translateIf(node *ast.IfStatement) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	cond, err := t.emitCondition(node.Condition)
	if err != nil {
		return nil, err
	}
	body, err := t.translateBlock(node.Consequence)
	if err != nil {
		return nil, err
	}

	stmt := cpp.Stmt{Kind: cpp.StmtIf, Cond: cond.text, Body: body, Incs: cond.incs}
	switch alt := node.Alternative.(type) {
	case nil:
	case *ast.IfStatement:
		nested, err := t.translateIf(alt)
		if err != nil {
			return nil, err
		}
		stmt.Else = nested
	case *ast.BlockStatement:
		elseBody, err := t.translateBlock(alt)
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
	default:
		return nil, diagnostics.Unsupported(node.Token, "malformed if/else chain")
	}
	return []cpp.Stmt{stmt}, nil
}

func (t *Translator) translateWhile(node *ast.WhileStatement) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	cond, err := t.emitCondition(node.Condition)
	if err != nil {
		return nil, err
	}
	prevLoop := t.inLoop
	t.inLoop = true
	body, err := t.translateBlock(node.Body)
	t.inLoop = prevLoop
	if err != nil {
		return nil, err
	}
	return []cpp.Stmt{{Kind: cpp.StmtWhile, Cond: cond.text, Body: body, Incs: cond.incs}}, nil
}

// emitCondition emits a boolean or numeric condition expression. The
// surrounding if/while parenthesizes the condition itself, so a redundant
// outer grouping is stripped.
func (t *Translator) emitCondition(expr ast.Expression) (value, *diagnostics.Diagnostic) {
	val, err := t.emitExpr(expr)
	if err != nil {
		return value{}, err
	}
	if !types.Equal(val.typ, types.Bool) && !types.IsNumeric(val.typ) && !types.Equal(val.typ, types.Unresolved) {
		return value{}, diagnostics.Unsupported(expr.GetToken(), "condition of type %s", val.typ)
	}
	val.text = stripOuterParens(val.text)
	return val, nil
}

func stripOuterParens(text string) string {
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return text
	}
	depth := 0
	for i := 0; i < len(text)-1; i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			return text
		}
	}
	return text[1 : len(text)-1]
}
