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

package jsast

import (
	"github.com/onflow/scriptc/errors"
)

// ReplaceThis returns copies of the given statements in which every `this`
// is replaced by the given expression.
// Nested functions are not rewritten, as they have their own `this`.
func ReplaceThis(statements []Statement, replacement Expression) []Statement {
	result := make([]Statement, 0, len(statements))
	for _, statement := range statements {
		result = append(result, replaceThisInStatement(statement, replacement))
	}
	return result
}

func replaceThisInStatement(statement Statement, replacement Expression) Statement {
	switch statement := statement.(type) {
	case nil:
		return nil

	case *Block:
		return replaceThisInBlock(statement, replacement)

	case *ExpressionStatement:
		return &ExpressionStatement{
			Expression: replaceThisInExpression(statement.Expression, replacement),
		}

	case *VariableDeclaration:
		declarators := make([]*VariableDeclarator, 0, len(statement.Declarators))
		for _, declarator := range statement.Declarators {
			declarators = append(
				declarators,
				&VariableDeclarator{
					Name:        declarator.Name,
					Initializer: replaceThisInExpression(declarator.Initializer, replacement),
				},
			)
		}
		return &VariableDeclaration{Declarators: declarators}

	case *Return:
		return &Return{
			Expression: replaceThisInExpression(statement.Expression, replacement),
		}

	case *If:
		return &If{
			Test: replaceThisInExpression(statement.Test, replacement),
			Then: replaceThisInBlock(statement.Then, replacement),
			Else: replaceThisInStatement(statement.Else, replacement),
		}

	case *While:
		return &While{
			Test: replaceThisInExpression(statement.Test, replacement),
			Body: replaceThisInBlock(statement.Body, replacement),
		}

	case *Throw:
		return &Throw{
			Expression: replaceThisInExpression(statement.Expression, replacement),
		}

	case *Break, *Continue:
		return statement
	}

	panic(errors.NewUnexpectedError("cannot rewrite statement: %T", statement))
}

func replaceThisInBlock(block *Block, replacement Expression) *Block {
	if block == nil {
		return nil
	}
	return &Block{
		Statements: ReplaceThis(block.Statements, replacement),
	}
}

func replaceThisInExpressions(expressions []Expression, replacement Expression) []Expression {
	if expressions == nil {
		return nil
	}
	result := make([]Expression, 0, len(expressions))
	for _, expression := range expressions {
		result = append(result, replaceThisInExpression(expression, replacement))
	}
	return result
}

func replaceThisInExpression(expression Expression, replacement Expression) Expression {
	switch expression := expression.(type) {
	case nil:
		return nil

	case *This:
		return replacement

	case *Identifier, *Null, *Number, *String, *Boolean, *TypeReference, *Function:
		return expression

	case *ArrayLiteral:
		return &ArrayLiteral{
			Elements: replaceThisInExpressions(expression.Elements, replacement),
		}

	case *ObjectLiteral:
		properties := make([]*ObjectProperty, 0, len(expression.Properties))
		for _, property := range expression.Properties {
			properties = append(
				properties,
				&ObjectProperty{
					Name:  property.Name,
					Value: replaceThisInExpression(property.Value, replacement),
				},
			)
		}
		return &ObjectLiteral{Properties: properties}

	case *Member:
		return &Member{
			Target: replaceThisInExpression(expression.Target, replacement),
			Name:   expression.Name,
		}

	case *Index:
		return &Index{
			Target: replaceThisInExpression(expression.Target, replacement),
			Index:  replaceThisInExpression(expression.Index, replacement),
		}

	case *Invocation:
		return &Invocation{
			Target:    replaceThisInExpression(expression.Target, replacement),
			Arguments: replaceThisInExpressions(expression.Arguments, replacement),
		}

	case *New:
		return &New{
			Constructor: replaceThisInExpression(expression.Constructor, replacement),
			Arguments:   replaceThisInExpressions(expression.Arguments, replacement),
		}

	case *Unary:
		return &Unary{
			Operator: expression.Operator,
			Operand:  replaceThisInExpression(expression.Operand, replacement),
		}

	case *Binary:
		return &Binary{
			Operator: expression.Operator,
			Left:     replaceThisInExpression(expression.Left, replacement),
			Right:    replaceThisInExpression(expression.Right, replacement),
		}

	case *Conditional:
		return &Conditional{
			Test: replaceThisInExpression(expression.Test, replacement),
			Then: replaceThisInExpression(expression.Then, replacement),
			Else: replaceThisInExpression(expression.Else, replacement),
		}

	case *InlineCode:
		parts := make([]InlineCodePart, 0, len(expression.Parts))
		for _, part := range expression.Parts {
			parts = append(
				parts,
				InlineCodePart{
					Text:       part.Text,
					Expression: replaceThisInExpression(part.Expression, replacement),
				},
			)
		}
		return &InlineCode{Parts: parts}
	}

	panic(errors.NewUnexpectedError("cannot rewrite expression: %T", expression))
}

// UsesThis returns true if the given statements refer to `this`
// outside of nested functions.
func UsesThis(statements []Statement) bool {
	for _, statement := range statements {
		if statementUsesThis(statement) {
			return true
		}
	}
	return false
}

func statementUsesThis(statement Statement) bool {
	switch statement := statement.(type) {
	case *Block:
		return statement != nil && UsesThis(statement.Statements)
	case *ExpressionStatement:
		return expressionUsesThis(statement.Expression)
	case *VariableDeclaration:
		for _, declarator := range statement.Declarators {
			if expressionUsesThis(declarator.Initializer) {
				return true
			}
		}
	case *Return:
		return expressionUsesThis(statement.Expression)
	case *If:
		return expressionUsesThis(statement.Test) ||
			statementUsesThis(statement.Then) ||
			(statement.Else != nil && statementUsesThis(statement.Else))
	case *While:
		return expressionUsesThis(statement.Test) ||
			statementUsesThis(statement.Body)
	case *Throw:
		return expressionUsesThis(statement.Expression)
	}
	return false
}

func expressionsUseThis(expressions []Expression) bool {
	for _, expression := range expressions {
		if expressionUsesThis(expression) {
			return true
		}
	}
	return false
}

func expressionUsesThis(expression Expression) bool {
	switch expression := expression.(type) {
	case *This:
		return true
	case *ArrayLiteral:
		return expressionsUseThis(expression.Elements)
	case *ObjectLiteral:
		for _, property := range expression.Properties {
			if expressionUsesThis(property.Value) {
				return true
			}
		}
	case *Member:
		return expressionUsesThis(expression.Target)
	case *Index:
		return expressionUsesThis(expression.Target) ||
			expressionUsesThis(expression.Index)
	case *Invocation:
		return expressionUsesThis(expression.Target) ||
			expressionsUseThis(expression.Arguments)
	case *New:
		return expressionUsesThis(expression.Constructor) ||
			expressionsUseThis(expression.Arguments)
	case *Unary:
		return expressionUsesThis(expression.Operand)
	case *Binary:
		return expressionUsesThis(expression.Left) ||
			expressionUsesThis(expression.Right)
	case *Conditional:
		return expressionUsesThis(expression.Test) ||
			expressionUsesThis(expression.Then) ||
			expressionUsesThis(expression.Else)
	case *InlineCode:
		for _, part := range expression.Parts {
			if part.Expression != nil && expressionUsesThis(part.Expression) {
				return true
			}
		}
	}
	return false
}
