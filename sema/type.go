/*
 * Scriptc - The static-to-script lowering compiler
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sema

import (
	"strings"
)

// Type is a resolved source-level type.
type Type interface {
	isType()
	// ID returns a string which uniquely identifies the type
	ID() string
	String() string
}

// PrimitiveType

type PrimitiveKind uint8

const (
	PrimitiveKindUnknown PrimitiveKind = iota
	PrimitiveKindInt32
	PrimitiveKindInt64
	PrimitiveKindDouble
	PrimitiveKindBoolean
	PrimitiveKindChar
	PrimitiveKindString
	PrimitiveKindObject
	PrimitiveKindVoid
)

type PrimitiveType struct {
	Kind PrimitiveKind
	Name string
}

var _ Type = &PrimitiveType{}

var (
	Int32Type   = &PrimitiveType{Kind: PrimitiveKindInt32, Name: "Int32"}
	Int64Type   = &PrimitiveType{Kind: PrimitiveKindInt64, Name: "Int64"}
	DoubleType  = &PrimitiveType{Kind: PrimitiveKindDouble, Name: "Double"}
	BooleanType = &PrimitiveType{Kind: PrimitiveKindBoolean, Name: "Boolean"}
	CharType    = &PrimitiveType{Kind: PrimitiveKindChar, Name: "Char"}
	StringType  = &PrimitiveType{Kind: PrimitiveKindString, Name: "String"}
	ObjectType  = &PrimitiveType{Kind: PrimitiveKindObject, Name: "Object"}
	VoidType    = &PrimitiveType{Kind: PrimitiveKindVoid, Name: "Void"}
)

func (*PrimitiveType) isType() {}

func (t *PrimitiveType) ID() string {
	return t.Name
}

func (t *PrimitiveType) String() string {
	return t.Name
}

func (t *PrimitiveType) IsNumeric() bool {
	switch t.Kind {
	case PrimitiveKindInt32,
		PrimitiveKindInt64,
		PrimitiveKindDouble,
		PrimitiveKindChar:

		return true

	default:
		return false
	}
}

func (t *PrimitiveType) IsValueType() bool {
	switch t.Kind {
	case PrimitiveKindString, PrimitiveKindObject:
		return false
	default:
		return true
	}
}

// NullableType is a value type extended with an absent value.
type NullableType struct {
	Type Type
}

var _ Type = &NullableType{}

func (*NullableType) isType() {}

func (t *NullableType) ID() string {
	return t.Type.ID() + "?"
}

func (t *NullableType) String() string {
	return t.Type.String() + "?"
}

// ArrayType is an array with the given number of dimensions.
type ArrayType struct {
	ElementType Type
	Rank        int
}

var _ Type = &ArrayType{}

func (*ArrayType) isType() {}

func (t *ArrayType) ID() string {
	return t.ElementType.ID() + t.rankString()
}

func (t *ArrayType) String() string {
	return t.ElementType.String() + t.rankString()
}

func (t *ArrayType) rankString() string {
	rank := t.Rank
	if rank < 1 {
		rank = 1
	}
	return "[" + strings.Repeat(",", rank-1) + "]"
}

// DynamicType is the type of values which are dispatched dynamically.
type DynamicType struct{}

var TheDynamicType = &DynamicType{}

var _ Type = TheDynamicType

func (*DynamicType) isType() {}

func (*DynamicType) ID() string {
	return "dynamic"
}

func (*DynamicType) String() string {
	return "dynamic"
}

// CompositeType is a class, struct or interface.
type CompositeType struct {
	Identifier     string
	BaseType       *CompositeType
	TypeParameters []*TypeParameter
	IsValueType    bool
}

var _ Type = &CompositeType{}

func (*CompositeType) isType() {}

func (t *CompositeType) ID() string {
	return t.Identifier
}

func (t *CompositeType) String() string {
	return t.Identifier
}

// HasNonTrivialBase returns true if the type derives from a type other than Object.
func (t *CompositeType) HasNonTrivialBase() bool {
	return t.BaseType != nil
}

// TypeParameter is a type parameter of a type or a method.
type TypeParameter struct {
	Name string
}

var _ Type = &TypeParameter{}

func (*TypeParameter) isType() {}

func (t *TypeParameter) ID() string {
	return t.Name
}

func (t *TypeParameter) String() string {
	return t.Name
}

// DelegateType is the type of a function value.
type DelegateType struct {
	Identifier     string
	ParameterTypes []Type
	ReturnType     Type
}

var _ Type = &DelegateType{}

func (*DelegateType) isType() {}

func (t *DelegateType) ID() string {
	var sb strings.Builder
	sb.WriteString(t.Identifier)
	sb.WriteByte('(')
	for i, parameterType := range t.ParameterTypes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(parameterType.ID())
	}
	sb.WriteString(")")
	if t.ReturnType != nil {
		sb.WriteString(": ")
		sb.WriteString(t.ReturnType.ID())
	}
	return sb.String()
}

func (t *DelegateType) String() string {
	return t.ID()
}

// ExpressionTreeType is the expression-tree wrapper of a delegate type:
// a lambda converted to it is represented as data, not as a function.
type ExpressionTreeType struct {
	DelegateType *DelegateType
}

var _ Type = &ExpressionTreeType{}

func (*ExpressionTreeType) isType() {}

func (t *ExpressionTreeType) ID() string {
	return "Expression<" + t.DelegateType.ID() + ">"
}

func (t *ExpressionTreeType) String() string {
	return t.ID()
}

// IsNullable returns true if the given type is a nullable value type.
func IsNullable(t Type) bool {
	_, ok := t.(*NullableType)
	return ok
}

// UnwrapNullable returns the underlying type of a nullable type,
// or the type itself.
func UnwrapNullable(t Type) Type {
	if nullableType, ok := t.(*NullableType); ok {
		return nullableType.Type
	}
	return t
}

func IsDynamic(t Type) bool {
	_, ok := t.(*DynamicType)
	return ok
}

func IsExpressionTree(t Type) bool {
	_, ok := t.(*ExpressionTreeType)
	return ok
}

func IsDelegate(t Type) bool {
	_, ok := t.(*DelegateType)
	return ok
}

// IsValueType returns true if values of the given type are copied on assignment.
func IsValueType(t Type) bool {
	switch t := t.(type) {
	case *PrimitiveType:
		return t.IsValueType()
	case *CompositeType:
		return t.IsValueType
	default:
		return false
	}
}

// IsSubType returns true if a value of type subType can be used
// as a value of type superType without a conversion check.
func IsSubType(subType, superType Type) bool {
	if subType.ID() == superType.ID() {
		return true
	}

	switch superType := superType.(type) {
	case *PrimitiveType:
		return superType == ObjectType &&
			!IsDynamic(subType)

	case *NullableType:
		return subType.ID() == superType.Type.ID()

	case *CompositeType:
		composite, ok := subType.(*CompositeType)
		if !ok {
			return false
		}
		for base := composite.BaseType; base != nil; base = base.BaseType {
			if base.ID() == superType.ID() {
				return true
			}
		}
	}

	return false
}
