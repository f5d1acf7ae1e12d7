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
	"github.com/onflow/scriptc/ast"
	"github.com/onflow/scriptc/errors"
	"github.com/onflow/scriptc/jsast"
)

func (c *Compiler) compileStatement(statement ast.Statement) []jsast.Statement {
	return ast.AcceptStatement[[]jsast.Statement](statement, c)
}

func (c *Compiler) compileStatements(statements []ast.Statement) []jsast.Statement {
	var result []jsast.Statement
	for _, statement := range statements {
		result = append(result, c.compileStatement(statement)...)
	}
	return result
}

func (c *Compiler) compileBlock(block *ast.Block) *jsast.Block {
	if block == nil {
		return jsast.NewBlock()
	}
	return jsast.NewBlock(c.compileStatements(block.Statements)...)
}

func (c *Compiler) VisitBlock(block *ast.Block) []jsast.Statement {
	return []jsast.Statement{
		c.compileBlock(block),
	}
}

func (c *Compiler) VisitExpressionStatement(statement *ast.ExpressionStatement) []jsast.Statement {
	return c.compileExpressionStatement(statement.Expression)
}

// compileExpressionStatement compiles an expression whose value is discarded
func (c *Compiler) compileExpressionStatement(expression ast.Expression) []jsast.Statement {
	var result Result
	switch expression := expression.(type) {
	case *ast.AssignmentExpression:
		result = c.compileAssignment(expression, false)

	case *ast.UnaryExpression:
		if expression.Operation.IsIncrementOrDecrement() {
			result = c.compileIncrementOrDecrement(expression, false)
		} else {
			result = c.compileExpression(expression)
		}

	default:
		result = c.compileExpression(expression)
	}

	if c.isStable(result.Expression) {
		return result.Prelude
	}

	return append(
		result.Prelude,
		jsast.NewExpressionStatement(result.Expression),
	)
}

func (c *Compiler) VisitVariableDeclaration(declaration *ast.VariableDeclaration) []jsast.Statement {
	variable := declaration.Variable
	name := c.context.NameFor(variable)

	var prelude []jsast.Statement
	var value jsast.Expression

	if declaration.Value != nil {
		result := c.compileExpression(declaration.Value)
		prelude = result.Prelude
		value = result.Expression
	}

	if variable.IsByRef {
		if value == nil {
			value = c.Config.RuntimeLibrary.DefaultValue(
				variable.Type,
				c.typeReference(variable.Type),
			)
		}
		value = &jsast.ObjectLiteral{
			Properties: []*jsast.ObjectProperty{
				{
					Name:  byRefMember,
					Value: value,
				},
			},
		}
	}

	return append(
		prelude,
		jsast.NewVariableDeclaration(name, value),
	)
}

func (c *Compiler) VisitReturnStatement(statement *ast.ReturnStatement) []jsast.Statement {
	if statement.Expression == nil {
		return []jsast.Statement{
			&jsast.Return{},
		}
	}

	result := c.compileExpression(statement.Expression)
	return append(
		result.Prelude,
		&jsast.Return{
			Expression: result.Expression,
		},
	)
}

func (c *Compiler) VisitIfStatement(statement *ast.IfStatement) []jsast.Statement {
	test := c.compileExpression(statement.Test)

	result := &jsast.If{
		Test: test.Expression,
		Then: c.compileBlock(statement.Then),
	}

	switch otherwise := statement.Else.(type) {
	case nil:

	case *ast.Block:
		result.Else = c.compileBlock(otherwise)

	case *ast.IfStatement:
		statements := c.compileStatement(otherwise)
		if len(statements) == 1 {
			result.Else = statements[0]
		} else {
			result.Else = jsast.NewBlock(statements...)
		}

	default:
		panic(errors.NewUnexpectedError("unsupported else statement: %T", otherwise))
	}

	return append(test.Prelude, result)
}

// VisitWhileStatement compiles a while loop.
// If evaluating the test requires statements, they are executed
// at the start of each iteration, and the loop is exited explicitly.
func (c *Compiler) VisitWhileStatement(statement *ast.WhileStatement) []jsast.Statement {
	test := c.compileExpression(statement.Test)
	body := c.compileBlock(statement.Block)

	if !test.HasPrelude() {
		return []jsast.Statement{
			&jsast.While{
				Test: test.Expression,
				Body: body,
			},
		}
	}

	statements := make([]jsast.Statement, 0, len(test.Prelude)+1+len(body.Statements))
	statements = append(statements, test.Prelude...)
	statements = append(
		statements,
		&jsast.If{
			Test: &jsast.Unary{
				Operator: jsast.UnaryOperatorLogicalNot,
				Operand:  test.Expression,
			},
			Then: jsast.NewBlock(&jsast.Break{}),
		},
	)
	statements = append(statements, body.Statements...)

	return []jsast.Statement{
		&jsast.While{
			Test: &jsast.Boolean{Value: true},
			Body: jsast.NewBlock(statements...),
		},
	}
}

func (c *Compiler) VisitBreakStatement(_ *ast.BreakStatement) []jsast.Statement {
	return []jsast.Statement{
		&jsast.Break{},
	}
}

func (c *Compiler) VisitContinueStatement(_ *ast.ContinueStatement) []jsast.Statement {
	return []jsast.Statement{
		&jsast.Continue{},
	}
}

func (c *Compiler) VisitThrowStatement(statement *ast.ThrowStatement) []jsast.Statement {
	result := c.compileExpression(statement.Expression)
	return append(
		result.Prelude,
		&jsast.Throw{
			Expression: result.Expression,
		},
	)
}
