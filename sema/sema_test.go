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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeIDs(t *testing.T) {

	t.Parallel()

	assert.Equal(t, "Int32?", (&NullableType{Type: Int32Type}).ID())
	assert.Equal(t, "Int32[]", (&ArrayType{ElementType: Int32Type, Rank: 1}).ID())
	assert.Equal(t, "Int32[,]", (&ArrayType{ElementType: Int32Type, Rank: 2}).ID())
	assert.Equal(t,
		"Func(Int32): String",
		(&DelegateType{
			Identifier:     "Func",
			ParameterTypes: []Type{Int32Type},
			ReturnType:     StringType,
		}).ID(),
	)
}

func TestIsSubType(t *testing.T) {

	t.Parallel()

	baseType := &CompositeType{Identifier: "B"}
	derivedType := &CompositeType{Identifier: "D", BaseType: baseType}
	otherType := &CompositeType{Identifier: "O"}

	assert.True(t, IsSubType(derivedType, baseType))
	assert.False(t, IsSubType(baseType, derivedType))
	assert.False(t, IsSubType(otherType, baseType))
	assert.True(t, IsSubType(derivedType, ObjectType))
	assert.True(t, IsSubType(Int32Type, &NullableType{Type: Int32Type}))
	assert.False(t, IsSubType(&NullableType{Type: Int32Type}, Int32Type))
	assert.False(t, IsSubType(TheDynamicType, ObjectType))
	assert.False(t, IsSubType(DoubleType, Int32Type))
}

func TestMemberNames(t *testing.T) {

	t.Parallel()

	declaringType := &CompositeType{Identifier: "C"}

	assert.Equal(t, "C.M", (&Method{Identifier: "M", DeclaringType: declaringType}).String())
	assert.Equal(t, "C..ctor", (&Constructor{DeclaringType: declaringType}).String())

	indexer := &Property{Identifier: "Item", DeclaringType: declaringType, IsIndexer: true}
	assert.Equal(t, "indexer", indexer.MemberKind().Name())
}
