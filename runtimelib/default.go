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

package runtimelib

import (
	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/sema"
)

// Names are the names of the runtime library functions
// called by the default runtime library.
type Names struct {
	Lift                          string
	Cast                          string
	FromNullable                  string
	CombineDelegates              string
	RemoveDelegate                string
	Bind                          string
	Default                       string
	GetTransparentType            string
	GetTransparentTypeConstructor string
	GetTransparentTypeMember      string
	GetMember                     string
	// ExpressionFactory is the type which has the expression tree node factory functions
	ExpressionFactory string
	// ExpressionNodePrefix is prepended to the node kind name
	// to get the name of the factory function
	ExpressionNodePrefix string
}

func DefaultNames() Names {
	return Names{
		Lift:                          "$Lift",
		Cast:                          "$Cast",
		FromNullable:                  "$FromNullable",
		CombineDelegates:              "$Combine",
		RemoveDelegate:                "$Remove",
		Bind:                          "$Bind",
		Default:                       "$Default",
		GetTransparentType:            "$GetTransparentType",
		GetTransparentTypeConstructor: "$GetTransparentTypeConstructor",
		GetTransparentTypeMember:      "$GetTransparentTypeMember",
		GetMember:                     "$GetMember",
		ExpressionFactory:             "Expression",
		ExpressionNodePrefix:          "$",
	}
}

// DefaultRuntimeLibrary calls global functions of the runtime library.
type DefaultRuntimeLibrary struct {
	names Names
}

var _ RuntimeLibrary = &DefaultRuntimeLibrary{}

func NewDefaultRuntimeLibrary(names Names) *DefaultRuntimeLibrary {
	return &DefaultRuntimeLibrary{
		names: names,
	}
}

func (l *DefaultRuntimeLibrary) call(name string, arguments ...jsast.Expression) jsast.Expression {
	return jsast.NewInvocation(
		jsast.NewIdentifier(name),
		arguments...,
	)
}

func (l *DefaultRuntimeLibrary) TypeOf(t sema.Type) jsast.Expression {
	switch t := t.(type) {
	case *sema.NullableType:
		return l.TypeOf(t.Type)
	case *sema.ArrayType:
		return &jsast.TypeReference{Name: "Array"}
	case *sema.DelegateType, *sema.ExpressionTreeType:
		return &jsast.TypeReference{Name: "Function"}
	case *sema.DynamicType:
		return &jsast.TypeReference{Name: sema.ObjectType.Name}
	default:
		return &jsast.TypeReference{Name: t.ID()}
	}
}

func (l *DefaultRuntimeLibrary) Lift(expression jsast.Expression) jsast.Expression {
	return l.call(l.names.Lift, expression)
}

func (l *DefaultRuntimeLibrary) Cast(
	expression jsast.Expression,
	targetType sema.Type,
	targetReference jsast.Expression,
) jsast.Expression {
	result := l.call(l.names.Cast, expression, targetReference)

	// the checked conversion results in null for a failed conversion
	if sema.IsValueType(targetType) {
		result = l.call(l.names.FromNullable, result)
	}

	return result
}

func (l *DefaultRuntimeLibrary) Upcast(expression jsast.Expression, _, _ sema.Type) jsast.Expression {
	return expression
}

func (l *DefaultRuntimeLibrary) CombineDelegates(a, b jsast.Expression) jsast.Expression {
	return l.call(l.names.CombineDelegates, a, b)
}

func (l *DefaultRuntimeLibrary) RemoveDelegate(a, b jsast.Expression) jsast.Expression {
	return l.call(l.names.RemoveDelegate, a, b)
}

func (l *DefaultRuntimeLibrary) Bind(function, receiver jsast.Expression) jsast.Expression {
	return l.call(l.names.Bind, function, receiver)
}

func (l *DefaultRuntimeLibrary) DefaultValue(t sema.Type, reference jsast.Expression) jsast.Expression {
	switch t := t.(type) {
	case *sema.PrimitiveType:
		switch t.Kind {
		case sema.PrimitiveKindInt32,
			sema.PrimitiveKindInt64,
			sema.PrimitiveKindDouble,
			sema.PrimitiveKindChar:

			return &jsast.Number{Value: 0}

		case sema.PrimitiveKindBoolean:
			return &jsast.Boolean{Value: false}
		}

	case *sema.CompositeType:
		if t.IsValueType {
			return l.call(l.names.Default, reference)
		}

	case *sema.TypeParameter:
		return l.call(l.names.Default, reference)
	}

	return &jsast.Null{}
}

func (l *DefaultRuntimeLibrary) SynthesizeCarrierType(fields []CarrierField) jsast.Expression {
	arguments := make([]jsast.Expression, 0, len(fields)*2)
	for _, field := range fields {
		arguments = append(
			arguments,
			field.Type,
			&jsast.String{Value: field.Name},
		)
	}
	return l.call(l.names.GetTransparentType, arguments...)
}

func (l *DefaultRuntimeLibrary) CarrierConstructor(carrierType jsast.Expression) jsast.Expression {
	return l.call(l.names.GetTransparentTypeConstructor, carrierType)
}

func (l *DefaultRuntimeLibrary) CarrierMember(carrierType jsast.Expression, name string) jsast.Expression {
	return l.call(
		l.names.GetTransparentTypeMember,
		carrierType,
		&jsast.String{Value: name},
	)
}

func (l *DefaultRuntimeLibrary) GetMember(declaringType jsast.Expression, name string) jsast.Expression {
	return l.call(
		l.names.GetMember,
		declaringType,
		&jsast.String{Value: name},
	)
}

func (l *DefaultRuntimeLibrary) ExpressionNode(kind ExpressionNodeKind, arguments ...jsast.Expression) jsast.Expression {
	return jsast.NewInvocation(
		jsast.NewMember(
			&jsast.TypeReference{Name: l.names.ExpressionFactory},
			l.names.ExpressionNodePrefix+kind.Name(),
		),
		arguments...,
	)
}
