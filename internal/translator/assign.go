package translator

import (
	"github.com/pycatalyst/catalyst/internal/ast"
	"github.com/pycatalyst/catalyst/internal/config"
	"github.com/pycatalyst/catalyst/internal/cpp"
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/scope"
	"github.com/pycatalyst/catalyst/internal/types"
)

// translateAssign handles `target = value`. An unbound plain name in the
// innermost frame becomes a declaration; a bound one must keep its type.
func (t *Translator) translateAssign(node *ast.AssignStatement) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	val, err := t.emitExpr(node.Value)
	if err != nil {
		return nil, err
	}
	if types.Equal(val.typ, types.Void) {
		return nil, diagnostics.Unsupported(node.Token, "assignment of a value-less expression")
	}

	switch target := node.Target.(type) {
	case *ast.Identifier:
		return t.assignIdentifier(node, target, val)
	case *ast.AttributeExpression:
		return t.assignAttribute(node, target, val)
	case *ast.IndexExpression:
		return t.assignIndex(node, target, val)
	case *ast.TupleLiteral:
		return nil, diagnostics.Unsupported(node.Token, "tuple unpacking assignment")
	}
	return nil, diagnostics.Unsupported(node.Token, "assignment target %T", node.Target)
}

func (t *Translator) assignIdentifier(node *ast.AssignStatement, target *ast.Identifier, val value) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	if t.curClass != nil && target.Value == t.selfName {
		return nil, diagnostics.Unsupported(target.Token, "assignment to the receiver parameter")
	}

	sym, bound := t.scope.ResolveLocal(target.Value)
	if !bound {
		declared, declErr := t.scope.Declare(target.Value, val.typ, scope.KindVariable)
		if declErr != nil {
			return nil, diagnostics.Redeclared(target.Token, target.Value)
		}
		decl := &cpp.Decl{Name: target.Value, Type: val.typ, Init: val.text, Incs: val.incs}
		t.decls[declared] = decl
		return []cpp.Stmt{{Kind: cpp.StmtDecl, Decl: decl}}, nil
	}

	switch sym.Kind {
	case scope.KindVariable, scope.KindParameter:
	default:
		return nil, diagnostics.Unsupported(target.Token, "assignment to %s %q", sym.Kind, target.Value)
	}
	if err := t.refixSymbol(sym, val.typ, target); err != nil {
		return nil, err
	}
	return []cpp.Stmt{{Kind: cpp.StmtAssign, Text: target.Value + " = " + val.text, Incs: val.incs}}, nil
}

// recordAttrDep remembers that an attribute was declared straight from an
// initializer parameter, so the first constructor call can type it.
func (t *Translator) recordAttrDep(valueExpr ast.Expression, attrName string) {
	ident, ok := valueExpr.(*ast.Identifier)
	if !ok {
		return
	}
	sym, ok := t.scope.Resolve(ident.Value)
	if !ok || sym.Kind != scope.KindParameter {
		return
	}
	for i, name := range t.curFunc.paramNames {
		if name == ident.Value {
			t.curFunc.attrDeps = append(t.curFunc.attrDeps, attrDep{paramIdx: i, attr: attrName})
			return
		}
	}
}

// refixSymbol checks a rebinding against the monomorphic rule. Unresolved
// parts of the bound type adopt the new one; anything already fixed must
// match. A refined type propagates back into the symbol's declaration and,
// for parameters, into the enclosing function's signature.
func (t *Translator) refixSymbol(sym *scope.Symbol, typ types.Type, target *ast.Identifier) *diagnostics.Diagnostic {
	merged, ok := types.Merge(sym.Type, typ)
	if !ok {
		return diagnostics.NewError(diagnostics.ErrT004, target.Token,
			"cannot rebind %q from %s to %s", target.Value, sym.Type, typ)
	}
	if types.Equal(merged, sym.Type) {
		return nil
	}
	sym.Type = merged
	if decl, declared := t.decls[sym]; declared {
		decl.Type = merged
	}
	if sym.Kind == scope.KindParameter && t.curFunc != nil {
		for i, name := range t.curFunc.paramNames {
			if name == sym.Name {
				t.curFunc.def.Params[i].Type = merged
			}
		}
	}
	return nil
}

func (t *Translator) assignAttribute(node *ast.AssignStatement, target *ast.AttributeExpression, val value) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	recv, joiner, err := t.emitReceiver(target.Object)
	if err != nil {
		return nil, err
	}
	named, ok := recv.typ.(types.Named)
	if !ok {
		return nil, diagnostics.Unsupported(target.Token, "attribute assignment on %s", recv.typ)
	}
	ci, exists := t.classes[named.Class]
	if !exists {
		return nil, diagnostics.NameNotFound(target.Token, named.Class, t.scope.Name())
	}
	attrName := target.Attribute.Value
	isSelf := t.curClass == ci && joiner == "->"

	sym, bound := ci.attrs.Resolve(attrName)
	if !bound {
		// Attributes come into being only inside the initializer.
		if !isSelf || !t.inInit {
			return nil, diagnostics.NameNotFound(target.Attribute.Token, attrName, ci.attrs.Name())
		}
		if _, declErr := ci.attrs.Declare(attrName, val.typ, scope.KindAttribute); declErr != nil {
			return nil, diagnostics.Redeclared(target.Attribute.Token, attrName)
		}
		ci.def.Attrs = append(ci.def.Attrs, cpp.Decl{Name: attrName, Type: val.typ})
		if types.Equal(val.typ, types.Unresolved) {
			t.recordAttrDep(node.Value, attrName)
		}
		return []cpp.Stmt{{
			Kind: cpp.StmtAssign,
			Text: "this->" + attrName + " = " + val.text,
			Incs: val.incs,
		}}, nil
	}

	if !types.Equal(val.typ, types.Unresolved) && !types.Equal(sym.Type, val.typ) {
		return nil, diagnostics.NewError(diagnostics.ErrT004, target.Attribute.Token,
			"cannot rebind attribute %q from %s to %s", attrName, sym.Type, val.typ)
	}
	return []cpp.Stmt{{
		Kind: cpp.StmtAssign,
		Text: recv.text + joiner + attrName + " = " + val.text,
		Incs: mergeIncs(recv.incs, val.incs),
	}}, nil
}

func (t *Translator) assignIndex(node *ast.AssignStatement, target *ast.IndexExpression, val value) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	obj, err := t.emitExpr(target.Object)
	if err != nil {
		return nil, err
	}
	seq, ok := obj.typ.(types.Sequence)
	if !ok {
		return nil, diagnostics.Unsupported(target.Token, "index assignment on %s", obj.typ)
	}
	idx, err := t.emitExpr(target.Index)
	if err != nil {
		return nil, err
	}
	if !types.Equal(idx.typ, types.Int) && !types.Equal(idx.typ, types.Unresolved) {
		return nil, diagnostics.Unsupported(target.Token, "index of type %s", idx.typ)
	}
	if !types.Equal(val.typ, types.Unresolved) && !types.Equal(seq.Elem, types.Unresolved) &&
		!types.Equal(seq.Elem, val.typ) {
		return nil, diagnostics.NewError(diagnostics.ErrT004, node.Token,
			"cannot store %s into %s", val.typ, seq)
	}
	return []cpp.Stmt{{
		Kind: cpp.StmtAssign,
		Text: obj.text + "[" + idx.text + "] = " + val.text,
		Incs: mergeIncs(obj.incs, idx.incs, val.incs),
	}}, nil
}

// translateAugAssign handles `target op= value`. The target must already
// be bound, and the operation must not change its type.
func (t *Translator) translateAugAssign(node *ast.AugAssignStatement) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	val, err := t.emitExpr(node.Value)
	if err != nil {
		return nil, err
	}

	var targetText string
	var targetType types.Type
	var incs []string

	switch target := node.Target.(type) {
	case *ast.Identifier:
		resolved, emitErr := t.emitIdentifier(target)
		if emitErr != nil {
			return nil, emitErr
		}
		targetText, targetType, incs = resolved.text, resolved.typ, resolved.incs
	case *ast.AttributeExpression:
		resolved, emitErr := t.emitAttribute(target)
		if emitErr != nil {
			return nil, emitErr
		}
		targetText, targetType, incs = resolved.text, resolved.typ, resolved.incs
	default:
		return nil, diagnostics.Unsupported(node.Token, "augmented assignment target %T", node.Target)
	}

	widened, ok := types.Widen(targetType, val.typ)
	if !ok {
		return nil, diagnostics.Unsupported(node.Token, "operator %q= between %s and %s",
			node.Operator, targetType, val.typ)
	}
	if types.Equal(widened, types.Str) && node.Operator != "+" {
		return nil, diagnostics.Unsupported(node.Token, "operator %q= on str", node.Operator)
	}
	if !types.Equal(targetType, types.Unresolved) && !types.Equal(widened, targetType) {
		return nil, diagnostics.NewError(diagnostics.ErrT004, node.Token,
			"operator %q= would change the type of the target from %s to %s",
			node.Operator, targetType, widened)
	}

	return []cpp.Stmt{{
		Kind: cpp.StmtAssign,
		Text: targetText + " " + node.Operator + "= " + val.text,
		Incs: mergeIncs(incs, val.incs),
	}}, nil
}

// translateFor handles the two supported loop shapes: counting loops over
// range() and element loops over sequences and sets.
func (t *Translator) translateFor(node *ast.ForStatement) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	if call, ok := node.Iterable.(*ast.CallExpression); ok {
		if fn, isIdent := call.Function.(*ast.Identifier); isIdent && fn.Value == config.RangeFuncName {
			if _, shadowed := t.scope.Resolve(config.RangeFuncName); !shadowed {
				return t.translateRangeFor(node, call)
			}
		}
	}

	iter, err := t.emitExpr(node.Iterable)
	if err != nil {
		return nil, err
	}
	var elemType types.Type
	switch it := iter.typ.(type) {
	case types.Sequence:
		elemType = it.Elem
	case types.Set:
		elemType = it.Elem
	default:
		return nil, diagnostics.Unsupported(node.Token, "iteration over %s", iter.typ)
	}

	header, incs, declErr := t.loopVariable(node.Var, elemType)
	if declErr != nil {
		return nil, declErr
	}

	body, bodyErr := t.loopBody(node.Body)
	if bodyErr != nil {
		return nil, bodyErr
	}
	return []cpp.Stmt{{
		Kind: cpp.StmtFor,
		Text: header + " : " + iter.text,
		Body: body,
		Incs: mergeIncs(incs, iter.incs),
	}}, nil
}

// loopVariable binds the loop variable, returning the header fragment
// that introduces it: typed on first binding, bare on reuse.
func (t *Translator) loopVariable(ident *ast.Identifier, typ types.Type) (string, []string, *diagnostics.Diagnostic) {
	if sym, bound := t.scope.ResolveLocal(ident.Value); bound {
		if err := t.refixSymbol(sym, typ, ident); err != nil {
			return "", nil, err
		}
		return ident.Value, nil, nil
	}
	if _, err := t.scope.Declare(ident.Value, typ, scope.KindVariable); err != nil {
		return "", nil, diagnostics.Redeclared(ident.Token, ident.Value)
	}
	ctype, incs := cpp.CType(typ)
	return ctype + " " + ident.Value, incs, nil
}

func (t *Translator) loopBody(block *ast.BlockStatement) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	prevLoop := t.inLoop
	t.inLoop = true
	body, err := t.translateBlock(block)
	t.inLoop = prevLoop
	return body, err
}

// translateRangeFor emits a counting loop. range takes a stop, a start and
// stop, or a start, stop, and step; the step's sign must be decidable at
// translation time, so it has to be a literal when given.
func (t *Translator) translateRangeFor(node *ast.ForStatement, call *ast.CallExpression) ([]cpp.Stmt, *diagnostics.Diagnostic) {
	if len(call.Arguments) < 1 || len(call.Arguments) > 3 {
		return nil, diagnostics.Unsupported(call.Token, "range() with %d arguments", len(call.Arguments))
	}
	args := make([]value, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		val, err := t.emitExpr(arg)
		if err != nil {
			return nil, err
		}
		if !types.Equal(val.typ, types.Int) && !types.Equal(val.typ, types.Unresolved) {
			return nil, diagnostics.Unsupported(arg.GetToken(), "range() argument of type %s", val.typ)
		}
		args = append(args, val)
	}

	start, stop := "0", args[0].text
	if len(args) >= 2 {
		start, stop = args[0].text, args[1].text
	}

	step := "1"
	descending := false
	if len(args) == 3 {
		switch stepExpr := call.Arguments[2].(type) {
		case *ast.IntegerLiteral:
			step = args[2].text
		case *ast.PrefixExpression:
			if _, isInt := stepExpr.Right.(*ast.IntegerLiteral); stepExpr.Operator != "-" || !isInt {
				return nil, diagnostics.Unsupported(stepExpr.Token, "range() step must be an integer literal")
			}
			step = args[2].text
			descending = true
		default:
			return nil, diagnostics.Unsupported(call.Token, "range() step must be an integer literal")
		}
	}

	intro, incs, declErr := t.loopVariable(node.Var, types.Int)
	if declErr != nil {
		return nil, declErr
	}
	name := node.Var.Value

	cond := name + " < " + stop
	if descending {
		cond = name + " > " + stop
	}
	advance := name + " += " + step
	if step == "1" {
		advance = name + "++"
	}

	for _, a := range args {
		incs = mergeIncs(incs, a.incs)
	}
	body, bodyErr := t.loopBody(node.Body)
	if bodyErr != nil {
		return nil, bodyErr
	}
	return []cpp.Stmt{{
		Kind: cpp.StmtFor,
		Text: intro + " = " + start + "; " + cond + "; " + advance,
		Body: body,
		Incs: incs,
	}}, nil
}
