package decls

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quill/internal/diag"
	"quill/internal/parser"
	"quill/internal/source"
	"quill/internal/symbols"
	"quill/internal/types"
)

func runPass(t *testing.T, src string, opts Options) (*Visitor, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ql", []byte(src))
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}

	parsed := parser.ParseFile(fs.Get(id), reporter)
	require.Falsef(t, bag.HasErrors(), "parse diagnostics: %v", bag.Items())

	table := symbols.NewTable(nil)
	interner := types.NewInterner()
	symbols.InstallPrelude(table, interner)

	v := NewVisitor(table, interner, reporter, opts)
	_ = v.Run(parsed)
	return v, bag
}

func runClean(t *testing.T, src string) *Visitor {
	t.Helper()
	v, bag := runPass(t, src, Options{})
	require.Falsef(t, bag.HasErrors(), "diagnostics: %v", bag.Items())
	return v
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// aliasTarget resolves a declared type name in scope to its canonical type.
func aliasTarget(t *testing.T, v *Visitor, scope symbols.ScopeID, name string) types.TypeID {
	t.Helper()
	for _, symID := range v.Table().LookupShallow(scope, name) {
		sym := v.Table().Symbols.Get(symID)
		if sym.Kind == symbols.SymbolTypeAlias {
			alias := v.Table().GetAlias(sym.Alias)
			require.Equalf(t, symbols.AliasResolved, alias.State, "alias %s not resolved", name)
			return alias.Target
		}
	}
	t.Fatalf("no type alias %s in scope %d", name, scope)
	return types.NoTypeID
}

func findGeneric(t *testing.T, v *Visitor, name string) (symbols.GenericID, *symbols.Generic) {
	t.Helper()
	for _, symID := range v.Table().LookupShallow(v.Table().Universe, name) {
		sym := v.Table().Symbols.Get(symID)
		if sym.Kind == symbols.SymbolGeneric {
			return sym.Generic, v.Table().GetGeneric(sym.Generic)
		}
	}
	t.Fatalf("no generic %s", name)
	return symbols.NoGenericID, nil
}

func TestAliasForwardReference(t *testing.T) {
	v := runClean(t, "type A = B;\ntype B = int32;")
	universe := v.Table().Universe
	a := aliasTarget(t, v, universe, "A")
	b := aliasTarget(t, v, universe, "B")
	i32 := aliasTarget(t, v, universe, "int32")
	require.Equal(t, i32, a)
	require.Equal(t, i32, b)
}

func TestAliasOrderIndependence(t *testing.T) {
	forward := runClean(t, "type A = B;\ntype B = int32;")
	backward := runClean(t, "type B = int32;\ntype A = B;")
	fa := aliasTarget(t, forward, forward.Table().Universe, "A")
	ba := aliasTarget(t, backward, backward.Table().Universe, "A")
	// Same prelude layout, so the canonical IDs line up across runs.
	require.Equal(t, fa, ba)
}

func TestAliasCycle(t *testing.T) {
	_, bag := runPass(t, "type A = B;\ntype B = A;", Options{})
	require.True(t, hasCode(bag, diag.DeclUnresolvedType))
}

func TestConstexprTypesAreMemoized(t *testing.T) {
	v := runClean(t, "type X = constexpr int32;\ntype Y = constexpr int32;")
	universe := v.Table().Universe
	x := aliasTarget(t, v, universe, "X")
	y := aliasTarget(t, v, universe, "Y")
	require.Equal(t, x, y)
	require.True(t, v.Types().IsConstexpr(x))
}

func TestStructTypeInNamespace(t *testing.T) {
	v := runClean(t, "namespace m {\nstruct Pair { first: Smi; second: HeapObject; }\n}")
	_, nsScope := v.Table().GetOrCreateNamespace(v.Table().Universe, "m", source.Span{})
	pair := aliasTarget(t, v, nsScope, "Pair")
	require.True(t, v.Types().IsStruct(pair))
	require.Equal(t, "m::Pair", v.Types().Name(pair))
	require.Len(t, v.Types().StructFields(pair), 2)
}

func TestDuplicateTypeName(t *testing.T) {
	_, bag := runPass(t, "type A = int32;\ntype A = bool;", Options{})
	require.True(t, hasCode(bag, diag.DeclDuplicateSymbol))
}

func TestNamespaceReopen(t *testing.T) {
	v := runClean(t, "namespace m { type A = int32; }\nnamespace m { type B = A; }")
	_, nsScope := v.Table().GetOrCreateNamespace(v.Table().Universe, "m", source.Span{})
	require.Equal(t,
		aliasTarget(t, v, nsScope, "A"),
		aliasTarget(t, v, nsScope, "B"))
	require.Len(t, v.Table().LookupShallow(v.Table().Universe, "m"), 1)
}

func TestQualifiedTypeReference(t *testing.T) {
	v := runClean(t, "namespace m { type A = int32; }\ntype B = m::A;")
	universe := v.Table().Universe
	require.Equal(t,
		aliasTarget(t, v, universe, "int32"),
		aliasTarget(t, v, universe, "B"))
}

func TestUnknownNamespace(t *testing.T) {
	_, bag := runPass(t, "type B = nowhere::A;", Options{})
	require.True(t, hasCode(bag, diag.DeclUnresolvedType))
}

func TestExternConstRequiresConstexpr(t *testing.T) {
	_, bag := runPass(t, "extern const k: int31 = kValue;", Options{})
	require.True(t, hasCode(bag, diag.DeclTypeConstraint))

	runClean(t, "extern const k: constexpr int31 = kValue;")
}

func TestConstDeclared(t *testing.T) {
	v := runClean(t, "const kTen: Smi = 10;")
	hits := v.Table().LookupShallow(v.Table().Universe, "kTen")
	require.Len(t, hits, 1)
	sym := v.Table().Symbols.Get(hits[0])
	require.Equal(t, symbols.SymbolConst, sym.Kind)
	require.Equal(t, aliasTarget(t, v, v.Table().Universe, "Smi"), sym.Const.Type)
}

func TestDuplicateConst(t *testing.T) {
	_, bag := runPass(t, "const k: Smi = 1;\nconst k: Smi = 2;", Options{})
	require.True(t, hasCode(bag, diag.DeclDuplicateSymbol))
}

func TestBuiltinRequiresContextFirst(t *testing.T) {
	_, bag := runPass(t, "builtin Bad(x: Smi): Smi { b }", Options{})
	require.True(t, hasCode(bag, diag.DeclSignatureConvention))

	runClean(t, "builtin Good(context: Context, x: Smi): Smi { b }")
}

func TestBuiltinVarargsRequiresJavaScript(t *testing.T) {
	_, bag := runPass(t, "builtin Bad(context: Context, ...rest): Smi { b }", Options{})
	require.True(t, hasCode(bag, diag.DeclSignatureConvention))

	runClean(t, "javascript builtin Good(context: Context, receiver: Object, ...rest): Smi { b }")
}

func TestJavaScriptBuiltinSecondParamIsObject(t *testing.T) {
	_, bag := runPass(t, "javascript builtin Bad(context: Context, receiver: Smi): Smi { b }", Options{})
	require.True(t, hasCode(bag, diag.DeclSignatureConvention))
}

func TestBuiltinRejectsStructTypes(t *testing.T) {
	_, bag := runPass(t, "struct S { a: Smi; }\nbuiltin Bad(context: Context, s: S): Smi { b }", Options{})
	require.True(t, hasCode(bag, diag.DeclSignatureConvention))

	_, bag = runPass(t, "struct S { a: Smi; }\nbuiltin Bad(context: Context): S { b }", Options{})
	require.True(t, hasCode(bag, diag.DeclSignatureConvention))
}

func TestRuntimeRequiresContextFirst(t *testing.T) {
	_, bag := runPass(t, "extern runtime Bad(x: Smi): never;", Options{})
	require.True(t, hasCode(bag, diag.DeclSignatureConvention))

	runClean(t, "extern runtime Good(context: Context, x: Object): never;")
}

func TestMacroDeclared(t *testing.T) {
	v := runClean(t, "extern macro BranchIfSmi(value: HeapObject): never;")
	hits := v.Table().LookupShallow(v.Table().Universe, "BranchIfSmi")
	require.Len(t, hits, 1)
	sym := v.Table().Symbols.Get(hits[0])
	require.Equal(t, symbols.SymbolCallable, sym.Kind)
	callable := v.Table().GetCallable(sym.Callable)
	require.Equal(t, symbols.CallableMacro, callable.Category)
	require.Nil(t, callable.Body)
}

func TestExplicitSpecialization(t *testing.T) {
	v := runClean(t, `
builtin Identity<T>(context: Context, value: T): T { b }
Identity<Smi>(context: Context, value: Smi): Smi { b }
`)
	_, generic := findGeneric(t, v, "Identity")
	require.Equal(t, 1, generic.SpecializationCount())

	smi := aliasTarget(t, v, v.Table().Universe, "Smi")
	id, ok := generic.Specialization([]types.TypeID{smi})
	require.True(t, ok)

	callable := v.Table().GetCallable(id)
	require.Equal(t, "Identity_Smi", callable.GeneratedName)
	require.Equal(t, "Identity<Smi>", callable.ReadableName)
	require.Equal(t, symbols.CallableBuiltin, callable.Category)
	require.NotNil(t, callable.Body)
	require.Equal(t, symbols.ScopeCallable, v.Table().Scopes.Get(callable.Scope).Kind)
}

func TestDuplicateSpecialization(t *testing.T) {
	_, bag := runPass(t, `
builtin Identity<T>(context: Context, value: T): T { b }
Identity<Smi>(context: Context, value: Smi): Smi { b }
Identity<Smi>(context: Context, value: Smi): Smi { b }
`, Options{})
	require.True(t, hasCode(bag, diag.DeclDuplicateSpecialization))
}

func TestSpecializationOfUnknownGeneric(t *testing.T) {
	_, bag := runPass(t, "Missing<Smi>(context: Context, value: Smi): Smi { b }", Options{})
	require.True(t, hasCode(bag, diag.DeclNoSuchGeneric))
}

func TestSpecializationArityMismatch(t *testing.T) {
	_, bag := runPass(t, `
builtin Identity<T>(context: Context, value: T): T { b }
Identity<Smi, Smi>(context: Context, value: Smi): Smi { b }
`, Options{})
	require.True(t, hasCode(bag, diag.DeclParamCountMismatch))
}

func TestSpecializationNoMatchingOverload(t *testing.T) {
	_, bag := runPass(t, `
builtin Wrap<T>(context: Context, value: T): T { b }
Wrap<Smi>(context: Context, value: HeapObject): Smi { b }
`, Options{})
	require.True(t, hasCode(bag, diag.DeclNoMatchingOverload))
}

func TestSpecializationAmbiguous(t *testing.T) {
	_, bag := runPass(t, `
builtin Pick<T>(context: Context, value: T): T { b }
macro Pick<T>(value: T): T { b }
Pick<Smi>(context: Context, value: Smi): Smi { b }
`, Options{})
	require.True(t, hasCode(bag, diag.DeclAmbiguousOverload))
}

func TestSpecializationBodyRules(t *testing.T) {
	_, bag := runPass(t, `
builtin Identity<T>(context: Context, value: T): T { b }
Identity<Smi>(context: Context, value: Smi): Smi;
`, Options{})
	require.True(t, hasCode(bag, diag.DeclMalformed))

	_, bag = runPass(t, `
builtin Identity<T>(context: Context, value: T): T { b }
extern Identity<Smi>(context: Context, value: Smi): Smi { b }
`, Options{})
	require.True(t, hasCode(bag, diag.DeclMalformed))
}

func TestImplicitSpecialization(t *testing.T) {
	v := runClean(t, "builtin Identity<T>(context: Context, value: T): T { b }")
	gid, generic := findGeneric(t, v, "Identity")
	smi := aliasTarget(t, v, v.Table().Universe, "Smi")

	id, err := v.SpecializeImplicit(symbols.SpecializationKey{Generic: gid, Types: []types.TypeID{smi}})
	require.NoError(t, err)
	require.Equal(t, 1, generic.SpecializationCount())

	// Idempotent: the second request is a cache hit.
	again, err := v.SpecializeImplicit(symbols.SpecializationKey{Generic: gid, Types: []types.TypeID{smi}})
	require.NoError(t, err)
	require.Equal(t, id, again)
	require.Equal(t, 1, generic.SpecializationCount())

	callable := v.Table().GetCallable(id)
	require.Equal(t, "Identity_Smi", callable.GeneratedName)
}

func TestExplicitSpecializationWinsOverImplicit(t *testing.T) {
	v := runClean(t, `
builtin Identity<T>(context: Context, value: T): T { generic }
Identity<Smi>(context: Context, value: Smi): Smi { explicit }
`)
	gid, generic := findGeneric(t, v, "Identity")
	smi := aliasTarget(t, v, v.Table().Universe, "Smi")

	cached, ok := generic.Specialization([]types.TypeID{smi})
	require.True(t, ok)

	id, err := v.SpecializeImplicit(symbols.SpecializationKey{Generic: gid, Types: []types.TypeID{smi}})
	require.NoError(t, err)
	require.Equal(t, cached, id)
}

func TestMissingImplicitSpecialization(t *testing.T) {
	v, bag := runPass(t, "builtin NoBody<T>(context: Context, value: T): T;", Options{})
	require.False(t, bag.HasErrors())

	gid, _ := findGeneric(t, v, "NoBody")
	smi := aliasTarget(t, v, v.Table().Universe, "Smi")
	_, err := v.SpecializeImplicit(symbols.SpecializationKey{Generic: gid, Types: []types.TypeID{smi}})
	require.Error(t, err)
	require.Equal(t, diag.DeclMissingImplicitSpecialization, FailureCode(err))
	require.True(t, hasCode(bag, diag.DeclMissingImplicitSpecialization))
}

func TestIntrinsicImplicitSpecializationWithoutBody(t *testing.T) {
	v := runClean(t, "intrinsic UnsafeCast<T>(value: Object): T;")
	gid, _ := findGeneric(t, v, "UnsafeCast")
	smi := aliasTarget(t, v, v.Table().Universe, "Smi")

	id, err := v.SpecializeImplicit(symbols.SpecializationKey{Generic: gid, Types: []types.TypeID{smi}})
	require.NoError(t, err)
	require.Equal(t, symbols.CallableIntrinsic, v.Table().GetCallable(id).Category)
}

func TestIncludesKeepDeclarationOrder(t *testing.T) {
	v := runClean(t, "#include \"b.h\"\n#include \"a.h\"\n#include \"b.h\"")
	require.Equal(t, []string{"b.h", "a.h", "b.h"}, v.Includes)
}

func TestAccumulateAndContinue(t *testing.T) {
	_, bag := runPass(t, `
extern const one: int31 = v;
extern const two: int31 = v;
`, Options{})
	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.DeclTypeConstraint {
			count++
		}
	}
	require.Equal(t, 2, count)
}

func TestFailFastStopsAtFirstError(t *testing.T) {
	_, bag := runPass(t, `
extern const one: int31 = v;
extern const two: int31 = v;
`, Options{FailFast: true})
	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.DeclTypeConstraint {
			count++
		}
	}
	require.Equal(t, 1, count)
}
