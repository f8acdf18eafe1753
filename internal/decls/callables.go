package decls

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/symbols"
	"quill/internal/types"
)

// visitCallable routes a callable declaration together with its already-built
// signature and optional body. The variant set is closed; an unhandled kind
// here is an implementation fault.
func (v *Visitor) visitCallable(node *ast.CallableNode, sig types.Signature, body *ast.Body) error {
	switch node.Kind {
	case ast.CallableBuiltin:
		id, err := v.createBuiltin(node, node.Name.Name, node.Name.Name, sig, body)
		if err != nil {
			return err
		}
		v.declareCallable(node.Name.Name, id, node.Name.Pos)
		return nil
	case ast.CallableMacro, ast.CallableExternalMacro:
		id := v.createMacro(node.Name.Name, node.Name.Name, sig, body, node.Pos)
		v.declareCallable(node.Name.Name, id, node.Name.Pos)
		return nil
	case ast.CallableExternalRuntime:
		id, err := v.createRuntimeFunction(node, node.Name.Name, sig)
		if err != nil {
			return err
		}
		v.declareCallable(node.Name.Name, id, node.Name.Pos)
		return nil
	case ast.CallableIntrinsic:
		id := v.createIntrinsic(node.Name.Name, sig, node.Pos)
		v.declareCallable(node.Name.Name, id, node.Name.Pos)
		return nil
	default:
		panic(fmt.Errorf("decls: unhandled callable variant %s", node.Kind))
	}
}

func (v *Visitor) declareCallable(name string, id symbols.CallableID, pos source.Span) {
	v.table.Declare(v.currentScope(), name, symbols.Symbol{
		Kind:     symbols.SymbolCallable,
		Span:     pos,
		Callable: id,
	})
}

// createBuiltin validates the builtin calling convention and materializes
// the callable. Checks, in order: first parameter is the execution context;
// varargs implies JS linkage; a JS builtin's second parameter is the
// generic object type; no struct-category parameter or return.
func (v *Visitor) createBuiltin(decl *ast.CallableNode, generatedName, readableName string, sig types.Signature, body *ast.Body) (symbols.CallableID, error) {
	javascript := decl.JavaScript
	varargs := sig.Varargs

	kind := symbols.BuiltinStub
	if javascript {
		if varargs {
			kind = symbols.BuiltinVarArgsJS
		} else {
			kind = symbols.BuiltinFixedArgsJS
		}
	}

	contextType, err := v.contextTypeID()
	if err != nil {
		return symbols.NoCallableID, err
	}
	if len(sig.ParamTypes) == 0 || sig.ParamTypes[0] != contextType {
		return symbols.NoCallableID, v.fail(diag.DeclSignatureConvention, decl.Name.Pos,
			"first parameter to builtin %s is not a context but should be", decl.Name.Name)
	}

	if varargs && !javascript {
		return symbols.NoCallableID, v.fail(diag.DeclSignatureConvention, decl.Name.Pos,
			"builtin %s with rest parameters must be a javascript builtin", decl.Name.Name)
	}

	if javascript && len(sig.ParamTypes) >= 2 {
		objectType, err := v.objectTypeID()
		if err != nil {
			return symbols.NoCallableID, err
		}
		if sig.ParamTypes[1] != objectType {
			return symbols.NoCallableID, v.fail(diag.DeclSignatureConvention, decl.Name.Pos,
				"second parameter to javascript builtin %s is %s but should be %s",
				decl.Name.Name, v.interner.Name(sig.ParamTypes[1]), symbols.ObjectTypeName)
		}
	}

	if err := v.checkNoStructTypes("builtin", decl.Name.Name, sig); err != nil {
		return symbols.NoCallableID, err
	}

	return v.table.NewCallable(symbols.Callable{
		Category:      symbols.CallableBuiltin,
		Builtin:       kind,
		GeneratedName: generatedName,
		ReadableName:  readableName,
		Signature:     sig,
		Body:          body,
		Span:          decl.Pos,
	}), nil
}

// createRuntimeFunction enforces the runtime calling convention (context
// first, no struct types) and materializes the callable.
func (v *Visitor) createRuntimeFunction(decl *ast.CallableNode, name string, sig types.Signature) (symbols.CallableID, error) {
	contextType, err := v.contextTypeID()
	if err != nil {
		return symbols.NoCallableID, err
	}
	if len(sig.ParamTypes) == 0 || sig.ParamTypes[0] != contextType {
		return symbols.NoCallableID, v.fail(diag.DeclSignatureConvention, decl.Name.Pos,
			"first parameter to runtime %s is not a context but should be", name)
	}
	if err := v.checkNoStructTypes("runtime function", name, sig); err != nil {
		return symbols.NoCallableID, err
	}
	return v.table.NewCallable(symbols.Callable{
		Category:      symbols.CallableRuntimeFunction,
		GeneratedName: name,
		ReadableName:  name,
		Signature:     sig,
		Span:          decl.Pos,
	}), nil
}

func (v *Visitor) createMacro(generatedName, readableName string, sig types.Signature, body *ast.Body, pos source.Span) symbols.CallableID {
	return v.table.NewCallable(symbols.Callable{
		Category:      symbols.CallableMacro,
		GeneratedName: generatedName,
		ReadableName:  readableName,
		Signature:     sig,
		Body:          body,
		Span:          pos,
	})
}

func (v *Visitor) createIntrinsic(name string, sig types.Signature, pos source.Span) symbols.CallableID {
	return v.table.NewCallable(symbols.Callable{
		Category:      symbols.CallableIntrinsic,
		GeneratedName: name,
		ReadableName:  name,
		Signature:     sig,
		Span:          pos,
	})
}

// checkNoStructTypes rejects struct-category parameter and return types for
// builtins and runtime functions, naming the offending position.
func (v *Visitor) checkNoStructTypes(what, name string, sig types.Signature) error {
	for i, paramType := range sig.ParamTypes {
		if v.interner.IsStruct(paramType) {
			paramName := fmt.Sprintf("parameter %d", i+1)
			if i < len(sig.ParamNames) {
				paramName = fmt.Sprintf("argument %q", sig.ParamNames[i])
			}
			return v.fail(diag.DeclSignatureConvention, v.currentPos(),
				"%s %q uses the struct %q as %s, which is not supported",
				what, name, v.interner.Name(paramType), paramName)
		}
	}
	if v.interner.IsStruct(sig.Return) {
		return v.fail(diag.DeclSignatureConvention, v.currentPos(),
			"%ss (in this case %q) cannot return structs (in this case %q)",
			what, name, v.interner.Name(sig.Return))
	}
	return nil
}
