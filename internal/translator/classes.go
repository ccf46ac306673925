package translator

import (
	"github.com/pycatalyst/catalyst/internal/ast"
	"github.com/pycatalyst/catalyst/internal/config"
	"github.com/pycatalyst/catalyst/internal/cpp"
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/scope"
	"github.com/pycatalyst/catalyst/internal/types"
)

// declareClassHeader declares the class name and registers headers for
// all of its methods, so method bodies and later code can call them.
func (t *Translator) declareClassHeader(node *ast.ClassStatement) *diagnostics.Diagnostic {
	if len(node.Bases) > 1 {
		return diagnostics.Unsupported(node.Token, "multiple inheritance for class %q", node.Name.Value)
	}

	name := node.Name.Value
	if _, err := t.moduleScope.Declare(name, types.Named{Class: name}, scope.KindClass); err != nil {
		return diagnostics.Redeclared(node.Name.Token, name)
	}

	ci := &classInfo{
		def:     &cpp.Class{Name: name},
		attrs:   scope.NewFrame("class " + name),
		methods: make(map[string]*funcInfo),
	}
	if len(node.Bases) == 1 {
		ci.def.Base = node.Bases[0].Value
	}
	t.classes[name] = ci

	for _, stmt := range node.Body.Statements {
		method, ok := stmt.(*ast.FunctionStatement)
		if !ok {
			continue
		}
		if err := t.declareMethodHeader(ci, method); err != nil {
			return err
		}
	}
	return nil
}

// declareMethodHeader builds the emission object for one method. The
// leading receiver parameter is dropped from the C++ signature; the
// initializer method becomes the constructor.
func (t *Translator) declareMethodHeader(ci *classInfo, node *ast.FunctionStatement) *diagnostics.Diagnostic {
	if node.Decorated {
		return diagnostics.Unsupported(node.GetToken(), "decorated method %q", node.Name.Value)
	}
	if len(node.Params) == 0 {
		return diagnostics.Unsupported(node.GetToken(), "method %q without a receiver parameter", node.Name.Value)
	}

	methodName := node.Name.Value
	isInit := methodName == config.InitMethodName

	def := &cpp.Function{Name: methodName, Return: types.Unresolved}
	if isInit {
		def.Name = ci.def.Name
		def.IsCtor = true
		def.Return = types.Void
	}

	fi := &funcInfo{def: def, owner: ci}
	for _, param := range node.Params[1:] {
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

	if isInit {
		if ci.ctor != nil {
			return diagnostics.Redeclared(node.Name.Token, methodName)
		}
		ci.ctor = fi
		return nil
	}
	if _, exists := ci.methods[methodName]; exists {
		return diagnostics.Redeclared(node.Name.Token, methodName)
	}
	ci.methods[methodName] = fi
	return nil
}

// translateClass translates the class body: the initializer first, so the
// attribute frame is populated before the other methods resolve against
// it, then the remaining methods in definition order.
func (t *Translator) translateClass(node *ast.ClassStatement) *diagnostics.Diagnostic {
	ci := t.classes[node.Name.Value]

	var initNode *ast.FunctionStatement
	var methodNodes []*ast.FunctionStatement
	for _, stmt := range node.Body.Statements {
		switch s := stmt.(type) {
		case *ast.FunctionStatement:
			if s.Name.Value == config.InitMethodName {
				initNode = s
			} else {
				methodNodes = append(methodNodes, s)
			}
		case *ast.ExpressionStatement:
			if _, isDoc := s.Expression.(*ast.StringLiteral); isDoc {
				continue
			}
			return diagnostics.Unsupported(s.Token, "class-level statement in class %q", node.Name.Value)
		case *ast.PassStatement:
		default:
			return diagnostics.Unsupported(stmt.GetToken(), "class-level statement in class %q", node.Name.Value)
		}
	}

	if initNode != nil {
		if err := t.translateMethodBody(ci, initNode, ci.ctor, true); err != nil {
			return err
		}
		ci.def.Ctor = ci.ctor.def
	}
	for _, m := range methodNodes {
		fi := ci.methods[m.Name.Value]
		if err := t.translateMethodBody(ci, m, fi, false); err != nil {
			return err
		}
		ci.def.Methods = append(ci.def.Methods, fi.def)
	}

	t.file.AddClass(ci.def)
	return nil
}

func (t *Translator) translateMethodBody(ci *classInfo, node *ast.FunctionStatement, fi *funcInfo, isInit bool) *diagnostics.Diagnostic {
	t.scope = t.scope.Enter("method " + ci.def.Name + "." + node.Name.Value)
	defer func() { t.scope = t.scope.Exit() }()

	for i, param := range node.Params[1:] {
		if _, err := t.scope.Declare(param.Name, fi.def.Params[i].Type, scope.KindParameter); err != nil {
			return diagnostics.Redeclared(param.Token, param.Name)
		}
	}

	prevFunc, prevClass, prevSelf, prevInit := t.curFunc, t.curClass, t.selfName, t.inInit
	t.curFunc, t.curClass, t.selfName, t.inInit = fi, ci, node.Params[0].Name, isInit
	body, err := t.translateBlock(node.Body)
	t.curFunc, t.curClass, t.selfName, t.inInit = prevFunc, prevClass, prevSelf, prevInit
	if err != nil {
		return err
	}

	fi.def.Body = body
	if !isInit && !fi.returnFixed && len(fi.returnDeps) == 0 && types.Equal(fi.def.Return, types.Unresolved) {
		fi.def.Return = types.Void
	}
	return nil
}
