package ir

import "github.com/dekarrin/stgraph/internal/mop"

// LiteralNil, LiteralFalse and LiteralTrue carry no data of their own; GVN
// collapses every occurrence of each into a single shared node per build
// scope, same as the original's singleton literal nodes.
type LiteralNil struct{ mop.Header }
type LiteralFalse struct{ mop.Header }
type LiteralTrue struct{ mop.Header }

func NewLiteralNil(d mop.Derivation) *LiteralNil     { return &LiteralNil{mop.Header{Kind: KindLiteralNil, Derivation: d}} }
func NewLiteralFalse(d mop.Derivation) *LiteralFalse { return &LiteralFalse{mop.Header{Kind: KindLiteralFalse, Derivation: d}} }
func NewLiteralTrue(d mop.Derivation) *LiteralTrue   { return &LiteralTrue{mop.Header{Kind: KindLiteralTrue, Derivation: d}} }

type LiteralInteger struct {
	mop.Header
	Value int64
}

func NewLiteralInteger(d mop.Derivation, v int64) *LiteralInteger {
	return &LiteralInteger{Header: mop.Header{Kind: KindLiteralInteger, Derivation: d}, Value: v}
}

type LiteralFloat struct {
	mop.Header
	Value float64
}

func NewLiteralFloat(d mop.Derivation, v float64) *LiteralFloat {
	return &LiteralFloat{Header: mop.Header{Kind: KindLiteralFloat, Derivation: d}, Value: v}
}

type LiteralString struct {
	mop.Header
	Value string
}

func NewLiteralString(d mop.Derivation, v string) *LiteralString {
	return &LiteralString{Header: mop.Header{Kind: KindLiteralString, Derivation: d}, Value: v}
}

type LiteralSymbol struct {
	mop.Header
	Value string
}

func NewLiteralSymbol(d mop.Derivation, v string) *LiteralSymbol {
	return &LiteralSymbol{Header: mop.Header{Kind: KindLiteralSymbol, Derivation: d}, Value: v}
}

type LiteralCharacter struct {
	mop.Header
	Value rune
}

func NewLiteralCharacter(d mop.Derivation, v rune) *LiteralCharacter {
	return &LiteralCharacter{Header: mop.Header{Kind: KindLiteralCharacter, Derivation: d}, Value: v}
}

// LiteralObject wraps a host-side value (a runtime.Object) that has no
// syntax of its own, e.g. a value produced by one primitive and passed to
// another at compile time.
type LiteralObject struct {
	mop.Header
	Value interface{}
}

func NewLiteralObject(d mop.Derivation, v interface{}) *LiteralObject {
	return &LiteralObject{Header: mop.Header{Kind: KindLiteralObject, Derivation: d}, Value: v}
}

// PrimitiveImpl is a compile-time-evaluable implementation of a primitive
// function, used by the reduction pass to fold an Application of a pure
// primitive over literal arguments (DESIGN.md open question 2).
type PrimitiveImpl func(args ...Node) Node

// LiteralPrimitiveFunction names a built-in function installed by
// internal/runtime. CompileTimeImplementation is nil unless Pure is set.
type LiteralPrimitiveFunction struct {
	mop.Header
	Name                      string
	CompileTimeImplementation PrimitiveImpl
	Pure                      bool
	CompileTime               bool
	AlwaysInline              bool
}

func NewLiteralPrimitiveFunction(d mop.Derivation, name string, impl PrimitiveImpl, pure, compileTime, alwaysInline bool) *LiteralPrimitiveFunction {
	return &LiteralPrimitiveFunction{
		Header: mop.Header{Kind: KindLiteralPrimitiveFunction, Derivation: d},
		Name:   name, CompileTimeImplementation: impl, Pure: pure, CompileTime: compileTime, AlwaysInline: alwaysInline,
	}
}

func init() {
	reg := func(k mop.Kind, attrs []mop.AttrDescriptor) {
		mop.RegisterKind(mop.KindDescriptor{Kind: k, Parent: KindLiteralNode, Attrs: attrs})
	}
	reg(KindLiteralNil, nil)
	reg(KindLiteralFalse, nil)
	reg(KindLiteralTrue, nil)
	reg(KindLiteralInteger, []mop.AttrDescriptor{
		{Name: "value", Role: mop.RoleData, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.IntAttr(n.(*LiteralInteger).Value) }},
	})
	reg(KindLiteralFloat, []mop.AttrDescriptor{
		{Name: "value", Role: mop.RoleData, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.FloatAttr(n.(*LiteralFloat).Value) }},
	})
	reg(KindLiteralString, []mop.AttrDescriptor{
		{Name: "value", Role: mop.RoleData, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.StringAttr(n.(*LiteralString).Value) }},
	})
	reg(KindLiteralSymbol, []mop.AttrDescriptor{
		{Name: "value", Role: mop.RoleData, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.StringAttr(n.(*LiteralSymbol).Value) }},
	})
	reg(KindLiteralCharacter, []mop.AttrDescriptor{
		{Name: "value", Role: mop.RoleData, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.RuneAttr(n.(*LiteralCharacter).Value) }},
	})
	reg(KindLiteralObject, nil) // not comparable for unification: host values have no structural identity
	reg(KindLiteralPrimitiveFunction, []mop.AttrDescriptor{
		// name is the only attribute compared for unification; the
		// implementation closure and flags are metadata, matching
		// asg.py's compileTimeImplementation field (notCompared=True).
		{Name: "name", Role: mop.RoleData, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.StringAttr(n.(*LiteralPrimitiveFunction).Name) }},
	})
}
