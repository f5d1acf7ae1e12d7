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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onflow/scriptc/ast"
	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/sema"
)

func TestDefaultRuntimeLibrary(t *testing.T) {

	t.Parallel()

	library := NewDefaultRuntimeLibrary(DefaultNames())

	d := jsast.NewIdentifier("$d")
	f := jsast.NewIdentifier("$f")

	t.Run("lift", func(t *testing.T) {
		t.Parallel()

		lifted := library.Lift(
			jsast.NewBinary(jsast.BinaryOperatorAdd, d, &jsast.Number{Value: 1}),
		)
		assert.Equal(t, "$Lift($d + 1)", lifted.String())
	})

	t.Run("cast to value type", func(t *testing.T) {
		t.Parallel()

		cast := library.Cast(d, sema.Int32Type, library.TypeOf(sema.Int32Type))
		assert.Equal(t, "$FromNullable($Cast($d, {Int32}))", cast.String())
	})

	t.Run("cast to reference type", func(t *testing.T) {
		t.Parallel()

		target := &sema.CompositeType{Identifier: "C"}
		cast := library.Cast(d, target, &jsast.TypeReference{Name: "C"})
		assert.Equal(t, "$Cast($d, {C})", cast.String())
	})

	t.Run("upcast", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, d, library.Upcast(d, sema.StringType, sema.ObjectType))
	})

	t.Run("delegates", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "$Combine($d, $f)", library.CombineDelegates(d, f).String())
		assert.Equal(t, "$Remove($d, $f)", library.RemoveDelegate(d, f).String())
		assert.Equal(t, "$Bind($f, this)", library.Bind(f, &jsast.This{}).String())
	})

	t.Run("builtin types", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "{Int32}", library.TypeOf(&sema.NullableType{Type: sema.Int32Type}).String())
		assert.Equal(t, "{Array}", library.TypeOf(&sema.ArrayType{ElementType: sema.Int32Type, Rank: 1}).String())
		assert.Equal(t, "{Object}", library.TypeOf(sema.TheDynamicType).String())
		assert.Equal(t, "{Function}", library.TypeOf(&sema.DelegateType{Identifier: "Func"}).String())
	})

	t.Run("default values", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "0", library.DefaultValue(sema.Int32Type, nil).String())
		assert.Equal(t, "false", library.DefaultValue(sema.BooleanType, nil).String())
		assert.Equal(t, "null", library.DefaultValue(sema.StringType, nil).String())
		assert.Equal(t, "null", library.DefaultValue(&sema.NullableType{Type: sema.Int32Type}, nil).String())

		structType := &sema.CompositeType{Identifier: "S", IsValueType: true}
		assert.Equal(t,
			"$Default({S})",
			library.DefaultValue(structType, &jsast.TypeReference{Name: "S"}).String(),
		)
	})

	t.Run("carrier types", func(t *testing.T) {
		t.Parallel()

		carrier := library.SynthesizeCarrierType([]CarrierField{
			{Name: "$a", Type: &jsast.TypeReference{Name: "Int32"}},
			{Name: "$b", Type: &jsast.TypeReference{Name: "String"}},
		})
		assert.Equal(t, "$GetTransparentType({Int32}, '$a', {String}, '$b')", carrier.String())

		handle := jsast.NewIdentifier("$tmp1")
		assert.Equal(t, "$GetTransparentTypeConstructor($tmp1)", library.CarrierConstructor(handle).String())
		assert.Equal(t, "$GetTransparentTypeMember($tmp1, '$a')", library.CarrierMember(handle, "$a").String())
	})

	t.Run("expression nodes", func(t *testing.T) {
		t.Parallel()

		member := library.GetMember(&jsast.TypeReference{Name: "C"}, "P")
		assert.Equal(t, "$GetMember({C}, 'P')", member.String())

		node := library.ExpressionNode(
			ExpressionNodeKindProperty,
			jsast.NewIdentifier("$tmp1"),
			member,
		)
		assert.Equal(t, "{Expression}.$Property($tmp1, $GetMember({C}, 'P'))", node.String())
	})
}

func TestExpressionNodeKinds(t *testing.T) {

	t.Parallel()

	kind, ok := BinaryExpressionNodeKind(ast.OperationPlus)
	assert.True(t, ok)
	assert.Equal(t, ExpressionNodeKindAdd, kind)

	kind, ok = BinaryExpressionNodeKind(ast.OperationNullCoalesce)
	assert.True(t, ok)
	assert.Equal(t, "Coalesce", kind.Name())

	_, ok = BinaryExpressionNodeKind(ast.OperationNegate)
	assert.False(t, ok)

	kind, ok = UnaryExpressionNodeKind(ast.OperationLogicalNot)
	assert.True(t, ok)
	assert.Equal(t, "Not", kind.String())

	_, ok = UnaryExpressionNodeKind(ast.OperationPreIncrement)
	assert.False(t, ok)
}
