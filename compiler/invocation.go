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
	"github.com/onflow/scriptc/semantics"
)

func (c *Compiler) VisitInvocationExpression(expression *ast.InvocationExpression) Result {
	method := expression.Method
	methodSemantics := c.memberSemantics(method, expression)

	prelude, receiver, arguments := c.compileMemberOperands(
		expression.Target,
		method,
		expression.Arguments,
		func(index int, argument ast.Expression) Result {
			return c.compileArgument(method.Parameters, index, argument)
		},
	)

	switch methodSemantics := methodSemantics.(type) {
	case semantics.NormalCall:
		if !methodSemantics.IgnoreGenericArguments {
			arguments = append(
				c.typeReferences(expression.TypeArguments),
				arguments...,
			)
		}
		return Result{
			Prelude: prelude,
			Expression: jsast.NewInvocation(
				jsast.NewMember(receiver, methodSemantics.Name),
				arguments...,
			),
		}

	case semantics.StaticWithExplicitReceiver:
		if !method.Static {
			arguments = append([]jsast.Expression{receiver}, arguments...)
		}
		return Result{
			Prelude: prelude,
			Expression: jsast.NewInvocation(
				jsast.NewMember(
					c.typeReference(method.DeclaringType),
					methodSemantics.Name,
				),
				arguments...,
			),
		}

	case semantics.InlineTemplate:
		bindings := c.parameterBindings(method.Parameters, arguments)
		if !method.Static {
			bindings[semantics.ThisHole] = receiver
		}
		for i, typeParameter := range method.TypeParameters {
			if i < len(expression.TypeArguments) {
				bindings[typeParameter.Name] = c.typeReference(expression.TypeArguments[i])
			}
		}
		result := c.expandTemplate(methodSemantics.Template, bindings, method, expression, &prelude)
		return Result{
			Prelude:    prelude,
			Expression: result,
		}
	}

	panic(c.unsupportedSemantics(method, expression))
}

// compileArgument compiles the argument for the parameter at the given index.
// A variable passed by reference is passed as its box.
func (c *Compiler) compileArgument(
	parameters []*sema.Parameter,
	index int,
	argument ast.Expression,
) Result {
	if index >= len(parameters) || !parameters[index].IsByRef {
		return c.compileExpression(argument)
	}

	variableExpression, ok := argument.(*ast.VariableExpression)
	if !ok || !variableExpression.Variable.IsByRef {
		panic(&UnsupportedShapeError{
			Construct: "by-reference argument",
			Reason:    "only variables declared as passed by reference can be passed by reference",
			Range:     ast.NewRangeFromPositioned(argument),
		})
	}

	return expressionResult(
		jsast.NewIdentifier(c.context.NameFor(variableExpression.Variable)),
	)
}

func (c *Compiler) parameterBindings(
	parameters []*sema.Parameter,
	arguments []jsast.Expression,
) map[string]jsast.Expression {
	bindings := make(map[string]jsast.Expression, len(arguments)+1)
	for i, parameter := range parameters {
		if i < len(arguments) {
			bindings[parameter.Identifier] = arguments[i]
		}
	}
	return bindings
}

func (c *Compiler) VisitObjectCreationExpression(expression *ast.ObjectCreationExpression) Result {
	constructor := expression.Constructor
	constructorSemantics := c.constructorSemantics(constructor, expression)

	prelude, arguments := c.compileInOrderWith(
		expression.Arguments,
		func(index int, argument ast.Expression) Result {
			return c.compileArgument(constructor.Parameters, index, argument)
		},
	)

	result := c.constructorCall(
		constructor,
		constructorSemantics,
		arguments,
		expression,
		&prelude,
	)

	return Result{
		Prelude:    prelude,
		Expression: result,
	}
}

// constructorCall returns the expression which creates a new instance using the given constructor
func (c *Compiler) constructorCall(
	constructor *sema.Constructor,
	constructorSemantics semantics.ConstructorSemantics,
	arguments []jsast.Expression,
	hasPosition ast.HasPosition,
	prelude *[]jsast.Statement,
) jsast.Expression {

	switch constructorSemantics := constructorSemantics.(type) {
	case semantics.UnnamedConstructor:
		return &jsast.New{
			Constructor: c.typeReference(constructor.DeclaringType),
			Arguments:   arguments,
		}

	case semantics.NamedConstructor:
		return &jsast.New{
			Constructor: jsast.NewMember(
				c.typeReference(constructor.DeclaringType),
				constructorSemantics.Name,
			),
			Arguments: arguments,
		}

	case semantics.StaticFactory:
		return jsast.NewInvocation(
			jsast.NewMember(
				c.typeReference(constructor.DeclaringType),
				constructorSemantics.Name,
			),
			arguments...,
		)

	case semantics.InlineConstructor:
		bindings := c.parameterBindings(constructor.Parameters, arguments)
		return c.expandTemplate(constructorSemantics.Template, bindings, constructor, hasPosition, prelude)
	}

	panic(c.unsupportedSemantics(constructor, hasPosition))
}
