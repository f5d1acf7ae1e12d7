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
	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/sema"
)

func (c *Compiler) VisitLambdaExpression(expression *ast.LambdaExpression) Result {
	if sema.IsExpressionTree(expression.Type) {
		return c.compileExpressionTreeLambda(expression)
	}

	function := c.compileFunction(expression.Parameters, expression.Body, expression.Expression, returnsValue(expression.Type))
	return expressionResult(c.bindReceiver(function))
}

// returnsValue returns true if the lambda of the given delegate type returns a value
func returnsValue(t sema.Type) bool {
	delegateType, ok := t.(*sema.DelegateType)
	if !ok {
		return true
	}
	return delegateType.ReturnType != nil &&
		delegateType.ReturnType.ID() != sema.VoidType.ID()
}

// compileFunction compiles a nested function, with either a block body,
// or an expression body.
func (c *Compiler) compileFunction(
	parameters []*sema.Variable,
	block *ast.Block,
	expression ast.Expression,
	returnsValue bool,
) *jsast.Function {

	child := c.child()

	parameterNames := make([]string, 0, len(parameters))
	for _, parameter := range parameters {
		parameterNames = append(parameterNames, child.context.NameFor(parameter))
	}

	var body []jsast.Statement
	switch {
	case block != nil:
		body = child.compileStatements(block.Statements)

	case returnsValue:
		result := child.compileExpression(expression)
		body = append(result.Prelude, &jsast.Return{Expression: result.Expression})

	default:
		body = child.compileExpressionStatement(expression)
	}

	c.absorb(child)

	return &jsast.Function{
		Parameters: parameterNames,
		Body:       jsast.NewBlock(body...),
	}
}

// bindReceiver binds the function to the current receiver,
// if the function refers to `this`
func (c *Compiler) bindReceiver(function *jsast.Function) jsast.Expression {
	if _, ok := c.receiver.(*jsast.This); !ok {
		return function
	}
	if !jsast.UsesThis(function.Body.Statements) {
		return function
	}
	return c.Config.RuntimeLibrary.Bind(function, &jsast.This{})
}
