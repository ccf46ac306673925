package translator

import (
	"strconv"
	"strings"

	"github.com/pycatalyst/catalyst/internal/ast"
	"github.com/pycatalyst/catalyst/internal/builtins"
	"github.com/pycatalyst/catalyst/internal/config"
	"github.com/pycatalyst/catalyst/internal/cpp"
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/scope"
	"github.com/pycatalyst/catalyst/internal/token"
	"github.com/pycatalyst/catalyst/internal/types"
)

// value is one emitted expression: its rendered C++ text, its inferred
// type, and the headers the rendering depends on.
type value struct {
	text string
	typ  types.Type
	incs []string
}

func mergeIncs(base []string, more ...[]string) []string {
	out := append([]string(nil), base...)
	for _, group := range more {
		for _, inc := range group {
			found := false
			for _, have := range out {
				if have == inc {
					found = true
					break
				}
			}
			if !found {
				out = append(out, inc)
			}
		}
	}
	return out
}

// emitExpr renders an expression and infers its type. Every expression
// kind either has a translation or fails here with a diagnostic.
func (t *Translator) emitExpr(expr ast.Expression) (value, *diagnostics.Diagnostic) {
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		return value{text: n.Token.Lexeme, typ: types.Int}, nil
	case *ast.FloatLiteral:
		return value{text: n.Token.Lexeme, typ: types.Float}, nil
	case *ast.StringLiteral:
		return value{text: strconv.Quote(n.Value), typ: types.Str}, nil
	case *ast.BooleanLiteral:
		if n.Value {
			return value{text: "true", typ: types.Bool}, nil
		}
		return value{text: "false", typ: types.Bool}, nil
	case *ast.NoneLiteral:
		return value{}, diagnostics.Unsupported(n.Token, "None in expression position")
	case *ast.Identifier:
		return t.emitIdentifier(n)
	case *ast.PrefixExpression:
		return t.emitPrefix(n)
	case *ast.InfixExpression:
		return t.emitInfix(n)
	case *ast.CallExpression:
		return t.emitCall(n)
	case *ast.AttributeExpression:
		return t.emitAttribute(n)
	case *ast.IndexExpression:
		return t.emitIndex(n)
	case *ast.ListLiteral:
		return t.emitListLiteral(n)
	case *ast.TupleLiteral:
		return t.emitTupleLiteral(n)
	case *ast.SetLiteral:
		return t.emitSetLiteral(n)
	case *ast.DictLiteral:
		return value{}, diagnostics.Unsupported(n.Token, "dictionary literal")
	case *ast.LambdaExpression:
		return value{}, diagnostics.Unsupported(n.Token, "lambda expression")
	case *ast.YieldExpression:
		return value{}, diagnostics.Unsupported(n.Token, "yield expression")
	}
	return value{}, diagnostics.Unsupported(expr.GetToken(), "expression kind %T", expr)
}

func (t *Translator) emitIdentifier(n *ast.Identifier) (value, *diagnostics.Diagnostic) {
	if t.curClass != nil && n.Value == t.selfName {
		return value{text: "(*this)", typ: types.Named{Class: t.curClass.def.Name}}, nil
	}
	sym, ok := t.scope.Resolve(n.Value)
	if !ok {
		return value{}, diagnostics.NameNotFound(n.Token, n.Value, t.scope.Name())
	}
	switch sym.Kind {
	case scope.KindFunction, scope.KindClass:
		return value{}, diagnostics.Unsupported(n.Token, "%s %q used as a value", sym.Kind, n.Value)
	}
	return value{text: n.Value, typ: sym.Type}, nil
}

func (t *Translator) emitPrefix(n *ast.PrefixExpression) (value, *diagnostics.Diagnostic) {
	operand, err := t.emitExpr(n.Right)
	if err != nil {
		return value{}, err
	}
	switch n.Operator {
	case "-":
		if !types.IsNumeric(operand.typ) && !types.Equal(operand.typ, types.Unresolved) {
			return value{}, diagnostics.Unsupported(n.Token, "unary '-' on %s", operand.typ)
		}
		return value{text: "(-" + operand.text + ")", typ: operand.typ, incs: operand.incs}, nil
	case "not":
		if !types.Equal(operand.typ, types.Bool) && !types.Equal(operand.typ, types.Unresolved) {
			return value{}, diagnostics.Unsupported(n.Token, "'not' on %s", operand.typ)
		}
		return value{text: "!" + operand.text, typ: types.Bool, incs: operand.incs}, nil
	}
	return value{}, diagnostics.Unsupported(n.Token, "unary operator %q", n.Operator)
}

func (t *Translator) emitInfix(n *ast.InfixExpression) (value, *diagnostics.Diagnostic) {
	switch n.Operator {
	case "is", "in":
		return value{}, diagnostics.Unsupported(n.Token, "operator %q", n.Operator)
	}

	left, err := t.emitExpr(n.Left)
	if err != nil {
		return value{}, err
	}
	right, err := t.emitExpr(n.Right)
	if err != nil {
		return value{}, err
	}
	incs := mergeIncs(left.incs, right.incs)

	switch n.Operator {
	case "and", "or":
		return t.emitLogical(n, left, right, incs)
	case "==", "!=", "<", ">", "<=", ">=":
		return t.emitComparison(n, left, right, incs)
	}
	return t.emitArithmetic(n, left, right, incs)
}

func (t *Translator) emitLogical(n *ast.InfixExpression, left, right value, incs []string) (value, *diagnostics.Diagnostic) {
	for _, side := range []value{left, right} {
		if !types.Equal(side.typ, types.Bool) && !types.Equal(side.typ, types.Unresolved) {
			return value{}, diagnostics.Unsupported(n.Token, "operator %q on %s", n.Operator, side.typ)
		}
	}
	op := "&&"
	if n.Operator == "or" {
		op = "||"
	}
	return value{text: "(" + left.text + " " + op + " " + right.text + ")", typ: types.Bool, incs: incs}, nil
}

func (t *Translator) emitComparison(n *ast.InfixExpression, left, right value, incs []string) (value, *diagnostics.Diagnostic) {
	comparable := types.Equal(left.typ, right.typ) ||
		(types.IsNumeric(left.typ) && types.IsNumeric(right.typ)) ||
		types.Equal(left.typ, types.Unresolved) || types.Equal(right.typ, types.Unresolved)
	if !comparable {
		return value{}, diagnostics.Unsupported(n.Token, "comparison %q between %s and %s",
			n.Operator, left.typ, right.typ)
	}
	return value{
		text: "(" + left.text + " " + n.Operator + " " + right.text + ")",
		typ:  types.Bool,
		incs: incs,
	}, nil
}

func (t *Translator) emitArithmetic(n *ast.InfixExpression, left, right value, incs []string) (value, *diagnostics.Diagnostic) {
	result, ok := types.Widen(left.typ, right.typ)
	if !ok {
		return value{}, diagnostics.Unsupported(n.Token, "operator %q between %s and %s",
			n.Operator, left.typ, right.typ)
	}
	if types.Equal(result, types.Str) && n.Operator != "+" {
		return value{}, diagnostics.Unsupported(n.Token, "operator %q on str", n.Operator)
	}

	switch n.Operator {
	case "+", "-", "*":
		return value{text: "(" + left.text + " " + n.Operator + " " + right.text + ")", typ: result, incs: incs}, nil
	case "/":
		return value{text: "(" + left.text + " / " + right.text + ")", typ: result, incs: incs}, nil
	case "//":
		if types.Equal(result, types.Float) {
			return value{
				text: "std::floor(" + left.text + " / " + right.text + ")",
				typ:  types.Float,
				incs: mergeIncs(incs, []string{"cmath"}),
			}, nil
		}
		return value{text: "(" + left.text + " / " + right.text + ")", typ: types.Int, incs: incs}, nil
	case "%":
		if types.Equal(result, types.Float) {
			return value{
				text: "std::fmod(" + left.text + ", " + right.text + ")",
				typ:  types.Float,
				incs: mergeIncs(incs, []string{"cmath"}),
			}, nil
		}
		return value{text: "(" + left.text + " % " + right.text + ")", typ: types.Int, incs: incs}, nil
	case "**":
		return value{
			text: "std::pow(" + left.text + ", " + right.text + ")",
			typ:  types.Float,
			incs: mergeIncs(incs, []string{"cmath"}),
		}, nil
	}
	return value{}, diagnostics.Unsupported(n.Token, "operator %q", n.Operator)
}

// emitReceiver emits the object of an attribute access or method call,
// also reporting the member access joiner. The receiver parameter of the
// enclosing method renders as `this`.
func (t *Translator) emitReceiver(obj ast.Expression) (value, string, *diagnostics.Diagnostic) {
	if ident, ok := obj.(*ast.Identifier); ok && t.curClass != nil && ident.Value == t.selfName {
		return value{text: "this", typ: types.Named{Class: t.curClass.def.Name}}, "->", nil
	}
	val, err := t.emitExpr(obj)
	if err != nil {
		return value{}, "", err
	}
	return val, ".", nil
}

func (t *Translator) emitCall(n *ast.CallExpression) (value, *diagnostics.Diagnostic) {
	switch fn := n.Function.(type) {
	case *ast.Identifier:
		return t.emitNamedCall(n, fn)
	case *ast.AttributeExpression:
		return t.emitMethodCall(n, fn)
	}
	return value{}, diagnostics.Unsupported(n.Token, "call on a non-name expression")
}

func (t *Translator) emitArgs(n *ast.CallExpression) ([]value, *diagnostics.Diagnostic) {
	args := make([]value, 0, len(n.Arguments))
	for _, arg := range n.Arguments {
		val, err := t.emitExpr(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return args, nil
}

func argTexts(args []value) []string {
	texts := make([]string, len(args))
	for i, a := range args {
		texts[i] = a.text
	}
	return texts
}

func argIncs(args []value) []string {
	var incs []string
	for _, a := range args {
		incs = mergeIncs(incs, a.incs)
	}
	return incs
}

func (t *Translator) emitNamedCall(n *ast.CallExpression, fn *ast.Identifier) (value, *diagnostics.Diagnostic) {
	name := fn.Value

	if sym, ok := t.scope.Resolve(name); ok {
		switch sym.Kind {
		case scope.KindFunction:
			return t.emitUserCall(n, name)
		case scope.KindClass:
			return t.emitConstructorCall(n, name)
		}
		return value{}, diagnostics.Unsupported(n.Token, "call of %s %q", sym.Kind, name)
	}

	if builtins.FreeFunctions[name] {
		return t.emitBuiltinCall(n, name)
	}
	if name == config.RangeFuncName {
		return value{}, diagnostics.Unsupported(n.Token, "range outside a for loop")
	}
	return value{}, diagnostics.NameNotFound(fn.Token, name, t.scope.Name())
}

func (t *Translator) emitUserCall(n *ast.CallExpression, name string) (value, *diagnostics.Diagnostic) {
	fi := t.funcs[name]
	args, err := t.emitArgs(n)
	if err != nil {
		return value{}, err
	}
	ret, err := t.fixCall(fi, args, n.Token)
	if err != nil {
		return value{}, err
	}
	return value{
		text: name + "(" + strings.Join(argTexts(args), ", ") + ")",
		typ:  ret,
		incs: argIncs(args),
	}, nil
}

func (t *Translator) emitConstructorCall(n *ast.CallExpression, name string) (value, *diagnostics.Diagnostic) {
	ci := t.classes[name]
	args, err := t.emitArgs(n)
	if err != nil {
		return value{}, err
	}
	if ci.ctor != nil {
		if _, err := t.fixCall(ci.ctor, args, n.Token); err != nil {
			return value{}, err
		}
	} else if len(args) != 0 {
		return value{}, diagnostics.Unsupported(n.Token,
			"constructor arguments for class %q, which has no initializer", name)
	}
	return value{
		text: name + "(" + strings.Join(argTexts(args), ", ") + ")",
		typ:  types.Named{Class: name},
		incs: argIncs(args),
	}, nil
}

// emitBuiltinCall translates the free built-ins. All but print treat their
// first argument as the receiver for table lookup.
func (t *Translator) emitBuiltinCall(n *ast.CallExpression, name string) (value, *diagnostics.Diagnostic) {
	args, err := t.emitArgs(n)
	if err != nil {
		return value{}, err
	}

	if name == config.PrintFuncName {
		for _, a := range args {
			if types.Equal(a.typ, types.Void) {
				return value{}, diagnostics.Unsupported(n.Token, "printing a value-less expression")
			}
		}
		binding, _ := builtins.Lookup(builtins.CatFree, name, len(args))
		return value{
			text: binding.Expand("", argTexts(args)),
			typ:  binding.Result,
			incs: mergeIncs(binding.Includes, argIncs(args)),
		}, nil
	}

	if len(args) == 0 {
		return value{}, diagnostics.Unsupported(n.Token, "%s() without arguments", name)
	}
	recv, rest := args[0], args[1:]
	binding, ok := builtins.Lookup(receiverCategory(recv.typ), name, len(rest))
	if !ok {
		return value{}, diagnostics.Unsupported(n.Token, "%s() on %s", name, recv.typ)
	}
	return value{
		text: binding.Expand(recv.text, argTexts(rest)),
		typ:  binding.Result,
		incs: mergeIncs(binding.Includes, argIncs(args)),
	}, nil
}

// receiverCategory maps a receiver type to its builtin lookup category.
// A still-unresolved receiver is assumed numeric: the math builtins are
// the only ones meaningful before inference has fixed the type, and
// container operations genuinely need the shape to be known.
func receiverCategory(t types.Type) builtins.Category {
	if types.Equal(t, types.Unresolved) {
		return builtins.CatNumber
	}
	return builtins.CategoryOf(t)
}

func (t *Translator) emitMethodCall(n *ast.CallExpression, fn *ast.AttributeExpression) (value, *diagnostics.Diagnostic) {
	recv, joiner, err := t.emitReceiver(fn.Object)
	if err != nil {
		return value{}, err
	}
	methodName := fn.Attribute.Value
	args, emitErr := t.emitArgs(n)
	if emitErr != nil {
		return value{}, emitErr
	}

	if named, ok := recv.typ.(types.Named); ok {
		ci, exists := t.classes[named.Class]
		if !exists {
			return value{}, diagnostics.NameNotFound(fn.Token, named.Class, t.scope.Name())
		}
		fi, found := ci.methods[methodName]
		if !found {
			return value{}, diagnostics.Unsupported(n.Token, "method %q on class %s", methodName, named.Class)
		}
		ret, fixErr := t.fixCall(fi, args, n.Token)
		if fixErr != nil {
			return value{}, fixErr
		}
		return value{
			text: recv.text + joiner + methodName + "(" + strings.Join(argTexts(args), ", ") + ")",
			typ:  ret,
			incs: mergeIncs(recv.incs, argIncs(args)),
		}, nil
	}

	binding, ok := builtins.Lookup(receiverCategory(recv.typ), methodName, len(args))
	if !ok {
		return value{}, diagnostics.Unsupported(n.Token, "method %q on %s", methodName, recv.typ)
	}
	return value{
		text: binding.Expand(recv.text, argTexts(args)),
		typ:  binding.Result,
		incs: mergeIncs(binding.Includes, recv.incs, argIncs(args)),
	}, nil
}

// fixCall checks arity, fixes any still-unresolved parameter types from
// the argument types of this call, and returns the call's result type,
// recomputing a parameter-dependent return type if the fixation resolved
// its inputs.
func (t *Translator) fixCall(fi *funcInfo, args []value, tok token.Token) (types.Type, *diagnostics.Diagnostic) {
	if len(args) < fi.requiredParams() || len(args) > len(fi.def.Params) {
		return nil, diagnostics.Unsupported(tok, "call to %q with %d arguments, want %d",
			fi.def.Name, len(args), len(fi.def.Params))
	}
	for i := range args {
		p := &fi.def.Params[i]
		if !types.Equal(p.Type, types.Unresolved) {
			if !types.Equal(args[i].typ, p.Type) && !types.Equal(args[i].typ, types.Unresolved) {
				return nil, diagnostics.NewError(diagnostics.ErrT004, tok,
					"argument %d of %q is %s, want %s", i+1, fi.def.Name, args[i].typ, p.Type)
			}
			continue
		}
		if !types.Equal(args[i].typ, types.Unresolved) && !types.Equal(args[i].typ, types.Void) {
			p.Type = args[i].typ
		}
	}

	if fi.owner != nil {
		fi.propagateAttrTypes()
	}

	if !fi.returnFixed && len(fi.returnDeps) > 0 {
		ret := types.Type(types.Unresolved)
		resolved := true
		for _, idx := range fi.returnDeps {
			widened, ok := types.Widen(ret, fi.def.Params[idx].Type)
			if !ok {
				resolved = false
				break
			}
			ret = widened
		}
		if resolved && !types.Equal(ret, types.Unresolved) {
			fi.def.Return = ret
			fi.returnFixed = true
		}
	}

	if fi.def.IsCtor || fi.def.Return == nil {
		return types.Void, nil
	}
	return fi.def.Return, nil
}

// propagateAttrTypes pushes freshly fixed parameter types onto attributes
// that were declared directly from those parameters.
func (fi *funcInfo) propagateAttrTypes() {
	for _, dep := range fi.attrDeps {
		ptype := fi.def.Params[dep.paramIdx].Type
		if types.Equal(ptype, types.Unresolved) {
			continue
		}
		sym, ok := fi.owner.attrs.ResolveLocal(dep.attr)
		if !ok || !types.Equal(sym.Type, types.Unresolved) {
			continue
		}
		sym.Type = ptype
		for i := range fi.owner.def.Attrs {
			if fi.owner.def.Attrs[i].Name == dep.attr {
				fi.owner.def.Attrs[i].Type = ptype
			}
		}
	}
}

// requiredParams counts the leading parameters without defaults.
func (fi *funcInfo) requiredParams() int {
	required := 0
	for _, p := range fi.def.Params {
		if p.Default == "" {
			required++
		}
	}
	return required
}

func (t *Translator) emitAttribute(n *ast.AttributeExpression) (value, *diagnostics.Diagnostic) {
	recv, joiner, err := t.emitReceiver(n.Object)
	if err != nil {
		return value{}, err
	}
	named, ok := recv.typ.(types.Named)
	if !ok {
		return value{}, diagnostics.Unsupported(n.Token, "attribute access on %s", recv.typ)
	}
	ci, exists := t.classes[named.Class]
	if !exists {
		return value{}, diagnostics.NameNotFound(n.Token, named.Class, t.scope.Name())
	}
	sym, found := ci.attrs.Resolve(n.Attribute.Value)
	if !found {
		return value{}, diagnostics.NameNotFound(n.Attribute.Token, n.Attribute.Value, ci.attrs.Name())
	}
	return value{text: recv.text + joiner + n.Attribute.Value, typ: sym.Type, incs: recv.incs}, nil
}

func (t *Translator) emitIndex(n *ast.IndexExpression) (value, *diagnostics.Diagnostic) {
	obj, err := t.emitExpr(n.Object)
	if err != nil {
		return value{}, err
	}

	if tuple, ok := obj.typ.(types.Tuple); ok {
		lit, isLit := n.Index.(*ast.IntegerLiteral)
		if !isLit {
			return value{}, diagnostics.Unsupported(n.Token, "tuple index must be an integer literal")
		}
		if lit.Value < 0 || lit.Value >= int64(len(tuple.Elems)) {
			return value{}, diagnostics.Unsupported(lit.Token, "tuple index %d out of range for %s",
				lit.Value, tuple)
		}
		return value{
			text: "std::get<" + strconv.FormatInt(lit.Value, 10) + ">(" + obj.text + ")",
			typ:  tuple.Elems[lit.Value],
			incs: mergeIncs(obj.incs, []string{"tuple"}),
		}, nil
	}

	idx, err := t.emitExpr(n.Index)
	if err != nil {
		return value{}, err
	}
	if !types.Equal(idx.typ, types.Int) && !types.Equal(idx.typ, types.Unresolved) {
		return value{}, diagnostics.Unsupported(n.Token, "index of type %s", idx.typ)
	}
	incs := mergeIncs(obj.incs, idx.incs)

	switch ot := obj.typ.(type) {
	case types.Sequence:
		return value{text: obj.text + "[" + idx.text + "]", typ: ot.Elem, incs: incs}, nil
	}
	if types.Equal(obj.typ, types.Str) {
		return value{text: obj.text + "[" + idx.text + "]", typ: types.Str, incs: incs}, nil
	}
	return value{}, diagnostics.Unsupported(n.Token, "indexing into %s", obj.typ)
}

func (t *Translator) emitListLiteral(n *ast.ListLiteral) (value, *diagnostics.Diagnostic) {
	elems, elemType, incs, err := t.emitElements(n.Elements, "list")
	if err != nil {
		return value{}, err
	}
	return value{
		text: cpp.SequenceInit(elems),
		typ:  types.Sequence{Elem: elemType},
		incs: mergeIncs(incs, []string{"vector"}),
	}, nil
}

func (t *Translator) emitSetLiteral(n *ast.SetLiteral) (value, *diagnostics.Diagnostic) {
	elems, elemType, incs, err := t.emitElements(n.Elements, "set")
	if err != nil {
		return value{}, err
	}
	return value{
		text: cpp.SetInit(elems),
		typ:  types.Set{Elem: elemType},
		incs: mergeIncs(incs, []string{"unordered_set"}),
	}, nil
}

func (t *Translator) emitTupleLiteral(n *ast.TupleLiteral) (value, *diagnostics.Diagnostic) {
	texts := make([]string, 0, len(n.Elements))
	elemTypes := make([]types.Type, 0, len(n.Elements))
	var incs []string
	for _, elem := range n.Elements {
		val, err := t.emitExpr(elem)
		if err != nil {
			return value{}, err
		}
		texts = append(texts, val.text)
		elemTypes = append(elemTypes, val.typ)
		incs = mergeIncs(incs, val.incs)
	}
	return value{
		text: cpp.TupleInit(texts),
		typ:  types.Tuple{Elems: elemTypes},
		incs: mergeIncs(incs, []string{"tuple"}),
	}, nil
}

// emitElements renders a homogeneous literal's elements and unifies their
// types, naming the clashing pair when unification fails.
func (t *Translator) emitElements(elements []ast.Expression, kind string) ([]string, types.Type, []string, *diagnostics.Diagnostic) {
	texts := make([]string, 0, len(elements))
	elemTypes := make([]types.Type, 0, len(elements))
	var incs []string
	for _, elem := range elements {
		val, err := t.emitExpr(elem)
		if err != nil {
			return nil, nil, nil, err
		}
		texts = append(texts, val.text)
		elemTypes = append(elemTypes, val.typ)
		incs = mergeIncs(incs, val.incs)
	}

	unified, ok := types.UnifyElems(elemTypes)
	if !ok {
		var first types.Type
		for i, et := range elemTypes {
			if types.Equal(et, types.Unresolved) {
				continue
			}
			if first == nil {
				first = et
				continue
			}
			if !types.Equal(et, first) {
				return nil, nil, nil, diagnostics.Unsupported(elements[i].GetToken(),
					"heterogeneous %s literal: %s and %s", kind, first, et)
			}
		}
		return nil, nil, nil, diagnostics.Unsupported(elements[0].GetToken(),
			"heterogeneous %s literal", kind)
	}
	return texts, unified, incs, nil
}
