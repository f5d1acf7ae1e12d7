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

type ElementType uint64

const (
	ElementTypeUnknown ElementType = iota

	ElementTypeBlock

	// Declarations

	ElementTypeMethodDeclaration
	ElementTypeConstructorDeclaration

	// Statements

	ElementTypeExpressionStatement
	ElementTypeVariableDeclaration
	ElementTypeReturnStatement
	ElementTypeIfStatement
	ElementTypeWhileStatement
	ElementTypeBreakStatement
	ElementTypeContinueStatement
	ElementTypeThrowStatement

	// Expressions

	ElementTypeConstantExpression
	ElementTypeThisExpression
	ElementTypeVariableExpression
	ElementTypeRangeVariableExpression
	ElementTypeMemberExpression
	ElementTypeDynamicMemberExpression
	ElementTypeIndexExpression
	ElementTypeInvocationExpression
	ElementTypeDelegateInvocationExpression
	ElementTypeObjectCreationExpression
	ElementTypeUnaryExpression
	ElementTypeBinaryExpression
	ElementTypeAssignmentExpression
	ElementTypeConditionalExpression
	ElementTypeCastExpression
	ElementTypeLambdaExpression
	ElementTypeArrayCreationExpression
	ElementTypeQueryExpression

	// Query clauses

	ElementTypeFromClause
	ElementTypeLetClause
	ElementTypeWhereClause
	ElementTypeJoinClause
	ElementTypeOrderByClause
	ElementTypeSelectClause
	ElementTypeGroupClause
	ElementTypeContinuationClause
)

func (t ElementType) Name() string {
	switch t {
	case ElementTypeBlock:
		return "block"
	case ElementTypeMethodDeclaration:
		return "method declaration"
	case ElementTypeConstructorDeclaration:
		return "constructor declaration"
	case ElementTypeExpressionStatement:
		return "expression statement"
	case ElementTypeVariableDeclaration:
		return "variable declaration"
	case ElementTypeReturnStatement:
		return "return statement"
	case ElementTypeIfStatement:
		return "if statement"
	case ElementTypeWhileStatement:
		return "while statement"
	case ElementTypeBreakStatement:
		return "break statement"
	case ElementTypeContinueStatement:
		return "continue statement"
	case ElementTypeThrowStatement:
		return "throw statement"
	case ElementTypeConstantExpression:
		return "constant"
	case ElementTypeThisExpression:
		return "this"
	case ElementTypeVariableExpression:
		return "variable"
	case ElementTypeRangeVariableExpression:
		return "range variable"
	case ElementTypeMemberExpression:
		return "member access"
	case ElementTypeDynamicMemberExpression:
		return "dynamic member access"
	case ElementTypeIndexExpression:
		return "index access"
	case ElementTypeInvocationExpression:
		return "invocation"
	case ElementTypeDelegateInvocationExpression:
		return "delegate invocation"
	case ElementTypeObjectCreationExpression:
		return "object creation"
	case ElementTypeUnaryExpression:
		return "unary expression"
	case ElementTypeBinaryExpression:
		return "binary expression"
	case ElementTypeAssignmentExpression:
		return "assignment"
	case ElementTypeConditionalExpression:
		return "conditional expression"
	case ElementTypeCastExpression:
		return "cast"
	case ElementTypeLambdaExpression:
		return "lambda"
	case ElementTypeArrayCreationExpression:
		return "array creation"
	case ElementTypeQueryExpression:
		return "query"
	case ElementTypeFromClause:
		return "from clause"
	case ElementTypeLetClause:
		return "let clause"
	case ElementTypeWhereClause:
		return "where clause"
	case ElementTypeJoinClause:
		return "join clause"
	case ElementTypeOrderByClause:
		return "orderby clause"
	case ElementTypeSelectClause:
		return "select clause"
	case ElementTypeGroupClause:
		return "group clause"
	case ElementTypeContinuationClause:
		return "into clause"
	}

	return "unknown"
}

func (t ElementType) String() string {
	return t.Name()
}
