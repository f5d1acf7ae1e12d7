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

package compiler

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/naming"
	"github.com/onflow/scriptc/sema"
)

func TestContextNames(t *testing.T) {

	t.Parallel()

	t.Run("stable variable names", func(t *testing.T) {
		t.Parallel()

		context := NewContext(naming.NewDefaultConvention(), nil)

		first := &sema.Variable{Identifier: "x"}
		second := &sema.Variable{Identifier: "x"}

		assert.Equal(t, "$x", context.NameFor(first))
		assert.Equal(t, "$x1", context.NameFor(second))
		assert.Equal(t, "$x", context.NameFor(first))
		assert.Equal(t, "$x1", context.NameFor(second))

		third := &sema.Variable{Identifier: "x"}
		assert.Equal(t, "$x2", context.NameFor(third))
		assert.Equal(t, "$x", context.Child().NameFor(first))
		assert.Equal(t, "$x2", context.Child().NameFor(third))
	})

	t.Run("reserved words", func(t *testing.T) {
		t.Parallel()

		context := NewContext(naming.NewDefaultConvention(), nil)
		convention := naming.DefaultConvention{
			Prefix:          "",
			TemporaryPrefix: "tmp",
			This:            "self",
		}
		context.naming = convention

		assert.Equal(t, "new_", context.NameFor(&sema.Variable{Identifier: "new"}))
	})

	t.Run("type parameters are reserved", func(t *testing.T) {
		t.Parallel()

		context := NewContext(
			naming.NewDefaultConvention(),
			[]*sema.TypeParameter{{Name: "T"}},
		)

		assert.Equal(t, "$T1", context.NameFor(&sema.Variable{Identifier: "T"}))
	})

	t.Run("temporaries skip used names", func(t *testing.T) {
		t.Parallel()

		context := NewContext(naming.NewDefaultConvention(), nil)

		assert.Equal(t, "$tmp1", context.NameFor(&sema.Variable{Identifier: "tmp1"}))
		assert.Equal(t, "$tmp2", context.AllocateTemporary())
		assert.True(t, context.IsTemporary("$tmp2"))
		assert.False(t, context.IsTemporary("$tmp1"))
	})

	t.Run("this alias", func(t *testing.T) {
		t.Parallel()

		context := NewContext(naming.NewDefaultConvention(), nil)

		assert.Equal(t, "$this", context.ThisAlias())
		assert.Equal(t, "$this1", context.NameFor(&sema.Variable{Identifier: "this"}))
	})
}

func TestContextChild(t *testing.T) {

	t.Parallel()

	parent := NewContext(naming.NewDefaultConvention(), nil)

	outer := &sema.Variable{Identifier: "x"}
	require.Equal(t, "$x", parent.NameFor(outer))
	require.Equal(t, "$tmp1", parent.AllocateTemporary())

	child := parent.Child()

	// the child sees the variables of the parent
	assert.Equal(t, "$x", child.NameFor(outer))

	inner := &sema.Variable{Identifier: "y"}
	assert.Equal(t, "$y", child.NameFor(inner))
	assert.Equal(t, "$tmp2", child.AllocateTemporary())
	assert.Equal(t, "$tmp3", child.AllocateTemporary())

	// temporaries of the parent are temporaries in the child
	assert.True(t, child.IsTemporary("$tmp1"))
	assert.True(t, child.Child().IsTemporary("$tmp1"))

	// the parent is not modified by the child
	assert.False(t, parent.Contains("$y"))
	assert.False(t, parent.IsTemporary("$tmp2"))

	parent.Absorb(child)

	assert.Equal(t, "$tmp4", parent.AllocateTemporary())
}

func TestContextRangeScopes(t *testing.T) {

	t.Parallel()

	context := NewContext(naming.NewDefaultConvention(), nil)

	variable := &sema.RangeVariable{Identifier: "x"}

	context.bindRangeVariable(variable, rangeBinding{expression: jsast.NewIdentifier("$x")})

	context.pushRangeScope()
	context.bindRangeVariable(variable, rangeBinding{
		expression: jsast.NewIdentifier("$node"),
		isNode:     true,
	})

	binding, ok := context.rangeVariable(variable)
	require.True(t, ok)
	assert.True(t, binding.isNode)

	context.popRangeScope()

	binding, ok = context.rangeVariable(variable)
	require.True(t, ok)
	assert.False(t, binding.isNode)
	assert.Equal(t, "$x", binding.expression.String())
}

func TestContextTemporariesAreUnique(t *testing.T) {

	t.Parallel()

	properties := gopter.NewProperties(nil)

	properties.Property("temporaries of nested contexts never clash", prop.ForAll(
		func(counts []uint8) bool {
			root := NewContext(naming.NewDefaultConvention(), nil)
			seen := map[string]struct{}{}

			allocate := func(context *Context, count uint8) bool {
				for i := uint8(0); i < count%8; i++ {
					name := context.AllocateTemporary()
					if _, ok := seen[name]; ok {
						return false
					}
					seen[name] = struct{}{}
				}
				return true
			}

			for _, count := range counts {
				child := root.Child()
				if !allocate(child, count) {
					return false
				}
				root.Absorb(child)
				if !allocate(root, count/8) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}
