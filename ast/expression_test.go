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

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/scriptc/sema"
)

func TestExpressionString(t *testing.T) {

	t.Parallel()

	classType := &sema.CompositeType{Identifier: "C"}
	property := &sema.Property{
		Identifier:    "P",
		DeclaringType: classType,
		Type:          sema.Int32Type,
	}
	i := &sema.Variable{Identifier: "i", Type: sema.Int32Type}

	expression := &UnaryExpression{
		Operation: OperationPostIncrement,
		Operand: &MemberExpression{
			Target: &ThisExpression{Type: classType},
			Member: property,
		},
		Type: sema.Int32Type,
	}
	assert.Equal(t, "this.P++", expression.String())

	binary := &BinaryExpression{
		Operation: OperationPlus,
		Left:      &VariableExpression{Variable: i},
		Right:     &ConstantExpression{Value: int64(1), Type: sema.Int32Type},
		Type:      sema.Int32Type,
	}
	assert.Equal(t, "(i + 1)", binary.String())
	assert.False(t, binary.IsLifted())
}

func TestBinaryExpressionIsLifted(t *testing.T) {

	t.Parallel()

	nullableInt := &sema.NullableType{Type: sema.Int32Type}
	i := &sema.Variable{Identifier: "i", Type: nullableInt}

	newBinary := func(operation Operation) *BinaryExpression {
		return &BinaryExpression{
			Operation: operation,
			Left:      &VariableExpression{Variable: i},
			Right:     &ConstantExpression{Value: int64(1), Type: sema.Int32Type},
			Type:      nullableInt,
		}
	}

	assert.True(t, newBinary(OperationPlus).IsLifted())
	assert.True(t, newBinary(OperationLess).IsLifted())
	assert.False(t, newBinary(OperationEqual).IsLifted())
	assert.False(t, newBinary(OperationNullCoalesce).IsLifted())
}

func TestReferencedRangeVariables(t *testing.T) {

	t.Parallel()

	a := &sema.RangeVariable{Identifier: "a", Type: sema.Int32Type}
	b := &sema.RangeVariable{Identifier: "b", Type: sema.Int32Type}

	expression := &BinaryExpression{
		Operation: OperationPlus,
		Left:      &RangeVariableExpression{Variable: a},
		Right: &BinaryExpression{
			Operation: OperationMul,
			Left:      &RangeVariableExpression{Variable: b},
			Right:     &RangeVariableExpression{Variable: a},
			Type:      sema.Int32Type,
		},
		Type: sema.Int32Type,
	}

	references := ReferencedRangeVariables(expression)
	require.Len(t, references, 3)
	assert.Same(t, a, references[0].Variable)
	assert.Same(t, b, references[1].Variable)
	assert.Same(t, a, references[2].Variable)
}

func TestAcceptExpressionUnknown(t *testing.T) {

	t.Parallel()

	assert.Panics(t, func() {
		AcceptExpression[struct{}](&unknownExpression{}, nil)
	})
}

type unknownExpression struct {
	ConstantExpression
}

func (*unknownExpression) ElementType() ElementType {
	return ElementTypeUnknown
}
