package types

import "testing"

func TestHasSameTypesAsIgnoresImplicits(t *testing.T) {
	in := NewInterner()
	ctx := in.DeclareAbstract("Context")
	smi := in.DeclareAbstract("Smi")
	obj := in.DeclareAbstract("Object")

	withCtx := Signature{
		ParamNames:    []string{"context", "x"},
		ParamTypes:    []TypeID{ctx, smi},
		ImplicitCount: 1,
		Return:        obj,
	}
	bare := Signature{
		ParamNames: []string{"x"},
		ParamTypes: []TypeID{smi},
		Return:     obj,
	}
	if !withCtx.HasSameTypesAs(bare) {
		t.Error("implicit context should not participate in matching")
	}

	otherReturn := bare
	otherReturn.Return = smi
	if withCtx.HasSameTypesAs(otherReturn) {
		t.Error("differing return types must not match")
	}

	otherParam := bare
	otherParam.ParamTypes = []TypeID{obj}
	if withCtx.HasSameTypesAs(otherParam) {
		t.Error("differing explicit params must not match")
	}
}

func TestSignatureRender(t *testing.T) {
	in := NewInterner()
	smi := in.DeclareAbstract("Smi")
	obj := in.DeclareAbstract("Object")

	s := Signature{ParamTypes: []TypeID{smi, obj}, Return: obj}
	if got := s.Render(in); got != "(Smi, Object): Object" {
		t.Errorf("Render = %q", got)
	}

	v := Signature{ParamTypes: []TypeID{smi}, Varargs: true, Return: obj}
	if got := v.Render(in); got != "(Smi, ...): Object" {
		t.Errorf("varargs Render = %q", got)
	}

	if got := RenderTypeList(in, []TypeID{smi, obj}); got != "<Smi, Object>" {
		t.Errorf("RenderTypeList = %q", got)
	}
}
