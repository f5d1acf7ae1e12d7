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
	"github.com/onflow/scriptc/errors"
)

type ExpressionVisitor[T any] interface {
	VisitConstantExpression(*ConstantExpression) T
	VisitThisExpression(*ThisExpression) T
	VisitVariableExpression(*VariableExpression) T
	VisitRangeVariableExpression(*RangeVariableExpression) T
	VisitMemberExpression(*MemberExpression) T
	VisitDynamicMemberExpression(*DynamicMemberExpression) T
	VisitIndexExpression(*IndexExpression) T
	VisitInvocationExpression(*InvocationExpression) T
	VisitDelegateInvocationExpression(*DelegateInvocationExpression) T
	VisitObjectCreationExpression(*ObjectCreationExpression) T
	VisitUnaryExpression(*UnaryExpression) T
	VisitBinaryExpression(*BinaryExpression) T
	VisitAssignmentExpression(*AssignmentExpression) T
	VisitConditionalExpression(*ConditionalExpression) T
	VisitCastExpression(*CastExpression) T
	VisitLambdaExpression(*LambdaExpression) T
	VisitArrayCreationExpression(*ArrayCreationExpression) T
	VisitQueryExpression(*QueryExpression) T
}

func AcceptExpression[T any](expression Expression, visitor ExpressionVisitor[T]) T {

	switch expression.ElementType() {

	case ElementTypeConstantExpression:
		return visitor.VisitConstantExpression(expression.(*ConstantExpression))

	case ElementTypeThisExpression:
		return visitor.VisitThisExpression(expression.(*ThisExpression))

	case ElementTypeVariableExpression:
		return visitor.VisitVariableExpression(expression.(*VariableExpression))

	case ElementTypeRangeVariableExpression:
		return visitor.VisitRangeVariableExpression(expression.(*RangeVariableExpression))

	case ElementTypeMemberExpression:
		return visitor.VisitMemberExpression(expression.(*MemberExpression))

	case ElementTypeDynamicMemberExpression:
		return visitor.VisitDynamicMemberExpression(expression.(*DynamicMemberExpression))

	case ElementTypeIndexExpression:
		return visitor.VisitIndexExpression(expression.(*IndexExpression))

	case ElementTypeInvocationExpression:
		return visitor.VisitInvocationExpression(expression.(*InvocationExpression))

	case ElementTypeDelegateInvocationExpression:
		return visitor.VisitDelegateInvocationExpression(expression.(*DelegateInvocationExpression))

	case ElementTypeObjectCreationExpression:
		return visitor.VisitObjectCreationExpression(expression.(*ObjectCreationExpression))

	case ElementTypeUnaryExpression:
		return visitor.VisitUnaryExpression(expression.(*UnaryExpression))

	case ElementTypeBinaryExpression:
		return visitor.VisitBinaryExpression(expression.(*BinaryExpression))

	case ElementTypeAssignmentExpression:
		return visitor.VisitAssignmentExpression(expression.(*AssignmentExpression))

	case ElementTypeConditionalExpression:
		return visitor.VisitConditionalExpression(expression.(*ConditionalExpression))

	case ElementTypeCastExpression:
		return visitor.VisitCastExpression(expression.(*CastExpression))

	case ElementTypeLambdaExpression:
		return visitor.VisitLambdaExpression(expression.(*LambdaExpression))

	case ElementTypeArrayCreationExpression:
		return visitor.VisitArrayCreationExpression(expression.(*ArrayCreationExpression))

	case ElementTypeQueryExpression:
		return visitor.VisitQueryExpression(expression.(*QueryExpression))
	}

	panic(errors.NewUnreachableError())
}

type StatementVisitor[T any] interface {
	VisitBlock(*Block) T
	VisitExpressionStatement(*ExpressionStatement) T
	VisitVariableDeclaration(*VariableDeclaration) T
	VisitReturnStatement(*ReturnStatement) T
	VisitIfStatement(*IfStatement) T
	VisitWhileStatement(*WhileStatement) T
	VisitBreakStatement(*BreakStatement) T
	VisitContinueStatement(*ContinueStatement) T
	VisitThrowStatement(*ThrowStatement) T
}

func AcceptStatement[T any](statement Statement, visitor StatementVisitor[T]) T {

	switch statement.ElementType() {

	case ElementTypeBlock:
		return visitor.VisitBlock(statement.(*Block))

	case ElementTypeExpressionStatement:
		return visitor.VisitExpressionStatement(statement.(*ExpressionStatement))

	case ElementTypeVariableDeclaration:
		return visitor.VisitVariableDeclaration(statement.(*VariableDeclaration))

	case ElementTypeReturnStatement:
		return visitor.VisitReturnStatement(statement.(*ReturnStatement))

	case ElementTypeIfStatement:
		return visitor.VisitIfStatement(statement.(*IfStatement))

	case ElementTypeWhileStatement:
		return visitor.VisitWhileStatement(statement.(*WhileStatement))

	case ElementTypeBreakStatement:
		return visitor.VisitBreakStatement(statement.(*BreakStatement))

	case ElementTypeContinueStatement:
		return visitor.VisitContinueStatement(statement.(*ContinueStatement))

	case ElementTypeThrowStatement:
		return visitor.VisitThrowStatement(statement.(*ThrowStatement))
	}

	panic(errors.NewUnreachableError())
}
