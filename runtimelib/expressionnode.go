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
	"github.com/onflow/scriptc/ast"
)

// ExpressionNodeKind is the kind of an expression tree node.
type ExpressionNodeKind uint8

const (
	ExpressionNodeKindUnknown ExpressionNodeKind = iota
	ExpressionNodeKindParameter
	ExpressionNodeKindConstant
	ExpressionNodeKindProperty
	ExpressionNodeKindField
	ExpressionNodeKindCall
	ExpressionNodeKindInvoke
	ExpressionNodeKindNew
	ExpressionNodeKindLambda
	ExpressionNodeKindConvert
	ExpressionNodeKindCondition
	ExpressionNodeKindNewArrayInit
	ExpressionNodeKindArrayIndex
	ExpressionNodeKindNegate
	ExpressionNodeKindUnaryPlus
	ExpressionNodeKindNot
	ExpressionNodeKindOnesComplement
	ExpressionNodeKindAdd
	ExpressionNodeKindSubtract
	ExpressionNodeKindMultiply
	ExpressionNodeKindDivide
	ExpressionNodeKindModulo
	ExpressionNodeKindAnd
	ExpressionNodeKindOr
	ExpressionNodeKindExclusiveOr
	ExpressionNodeKindLeftShift
	ExpressionNodeKindRightShift
	ExpressionNodeKindAndAlso
	ExpressionNodeKindOrElse
	ExpressionNodeKindEqual
	ExpressionNodeKindNotEqual
	ExpressionNodeKindLessThan
	ExpressionNodeKindLessThanOrEqual
	ExpressionNodeKindGreaterThan
	ExpressionNodeKindGreaterThanOrEqual
	ExpressionNodeKindCoalesce
)

func (k ExpressionNodeKind) Name() string {
	switch k {
	case ExpressionNodeKindParameter:
		return "Parameter"
	case ExpressionNodeKindConstant:
		return "Constant"
	case ExpressionNodeKindProperty:
		return "Property"
	case ExpressionNodeKindField:
		return "Field"
	case ExpressionNodeKindCall:
		return "Call"
	case ExpressionNodeKindInvoke:
		return "Invoke"
	case ExpressionNodeKindNew:
		return "New"
	case ExpressionNodeKindLambda:
		return "Lambda"
	case ExpressionNodeKindConvert:
		return "Convert"
	case ExpressionNodeKindCondition:
		return "Condition"
	case ExpressionNodeKindNewArrayInit:
		return "NewArrayInit"
	case ExpressionNodeKindArrayIndex:
		return "ArrayIndex"
	case ExpressionNodeKindNegate:
		return "Negate"
	case ExpressionNodeKindUnaryPlus:
		return "UnaryPlus"
	case ExpressionNodeKindNot:
		return "Not"
	case ExpressionNodeKindOnesComplement:
		return "OnesComplement"
	case ExpressionNodeKindAdd:
		return "Add"
	case ExpressionNodeKindSubtract:
		return "Subtract"
	case ExpressionNodeKindMultiply:
		return "Multiply"
	case ExpressionNodeKindDivide:
		return "Divide"
	case ExpressionNodeKindModulo:
		return "Modulo"
	case ExpressionNodeKindAnd:
		return "And"
	case ExpressionNodeKindOr:
		return "Or"
	case ExpressionNodeKindExclusiveOr:
		return "ExclusiveOr"
	case ExpressionNodeKindLeftShift:
		return "LeftShift"
	case ExpressionNodeKindRightShift:
		return "RightShift"
	case ExpressionNodeKindAndAlso:
		return "AndAlso"
	case ExpressionNodeKindOrElse:
		return "OrElse"
	case ExpressionNodeKindEqual:
		return "Equal"
	case ExpressionNodeKindNotEqual:
		return "NotEqual"
	case ExpressionNodeKindLessThan:
		return "LessThan"
	case ExpressionNodeKindLessThanOrEqual:
		return "LessThanOrEqual"
	case ExpressionNodeKindGreaterThan:
		return "GreaterThan"
	case ExpressionNodeKindGreaterThanOrEqual:
		return "GreaterThanOrEqual"
	case ExpressionNodeKindCoalesce:
		return "Coalesce"
	}

	return "Unknown"
}

func (k ExpressionNodeKind) String() string {
	return k.Name()
}

// BinaryExpressionNodeKind returns the node kind for a binary operation.
func BinaryExpressionNodeKind(operation ast.Operation) (ExpressionNodeKind, bool) {
	switch operation {
	case ast.OperationPlus:
		return ExpressionNodeKindAdd, true
	case ast.OperationMinus:
		return ExpressionNodeKindSubtract, true
	case ast.OperationMul:
		return ExpressionNodeKindMultiply, true
	case ast.OperationDiv:
		return ExpressionNodeKindDivide, true
	case ast.OperationMod:
		return ExpressionNodeKindModulo, true
	case ast.OperationBitwiseAnd:
		return ExpressionNodeKindAnd, true
	case ast.OperationBitwiseOr:
		return ExpressionNodeKindOr, true
	case ast.OperationBitwiseXor:
		return ExpressionNodeKindExclusiveOr, true
	case ast.OperationBitwiseLeftShift:
		return ExpressionNodeKindLeftShift, true
	case ast.OperationBitwiseRightShift:
		return ExpressionNodeKindRightShift, true
	case ast.OperationAnd:
		return ExpressionNodeKindAndAlso, true
	case ast.OperationOr:
		return ExpressionNodeKindOrElse, true
	case ast.OperationEqual:
		return ExpressionNodeKindEqual, true
	case ast.OperationNotEqual:
		return ExpressionNodeKindNotEqual, true
	case ast.OperationLess:
		return ExpressionNodeKindLessThan, true
	case ast.OperationLessEqual:
		return ExpressionNodeKindLessThanOrEqual, true
	case ast.OperationGreater:
		return ExpressionNodeKindGreaterThan, true
	case ast.OperationGreaterEqual:
		return ExpressionNodeKindGreaterThanOrEqual, true
	case ast.OperationNullCoalesce:
		return ExpressionNodeKindCoalesce, true
	}
	return ExpressionNodeKindUnknown, false
}

// UnaryExpressionNodeKind returns the node kind for a unary operation.
func UnaryExpressionNodeKind(operation ast.Operation) (ExpressionNodeKind, bool) {
	switch operation {
	case ast.OperationNegate:
		return ExpressionNodeKindNegate, true
	case ast.OperationUnaryPlus:
		return ExpressionNodeKindUnaryPlus, true
	case ast.OperationLogicalNot:
		return ExpressionNodeKindNot, true
	case ast.OperationBitwiseNot:
		return ExpressionNodeKindOnesComplement, true
	}
	return ExpressionNodeKindUnknown, false
}
