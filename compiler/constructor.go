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
	"github.com/onflow/scriptc/common"
	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/sema"
	"github.com/onflow/scriptc/semantics"
)

// callMember is the member of a function which calls it with an explicit `this`
const callMember = "call"

// CompileConstructor lowers a constructor to a function.
//
// If declaration is nil, the implicit default constructor is lowered.
// The field initializers are assigned unless the constructor
// delegates to another constructor of the same type.
//
// The result is nil if the constructor is not represented by a function,
// i.e. if its uses are replaced by a template.
func (m *MethodCompiler) CompileConstructor(
	location common.Location,
	constructor *sema.Constructor,
	declaration *ast.ConstructorDeclaration,
	initializers []*FieldInitializer,
) (*jsast.Function, error) {
	return lowerUnit(
		m,
		location,
		sema.QualifiedName(constructor),
		traceLowerConstructor,
		func() *jsast.Function {
			return m.compileConstructor(location, constructor, declaration, initializers)
		},
	)
}

func (m *MethodCompiler) compileConstructor(
	location common.Location,
	constructor *sema.Constructor,
	declaration *ast.ConstructorDeclaration,
	initializers []*FieldInitializer,
) *jsast.Function {

	var hasPosition ast.HasPosition = ast.EmptyRange
	if declaration != nil {
		hasPosition = declaration
	}

	declaringType := constructor.DeclaringType
	context := NewContext(m.Config.Naming, unitTypeParameters(declaringType, nil))

	constructorSemantics := m.Config.Resolver.ConstructorSemantics(constructor)

	var receiver jsast.Expression
	var isFactory bool

	switch constructorSemantics.(type) {
	case semantics.UnnamedConstructor, semantics.NamedConstructor:
		receiver = &jsast.This{}

	case semantics.StaticFactory:
		isFactory = true
		receiver = jsast.NewIdentifier(context.ThisAlias())

	case semantics.InlineConstructor, semantics.UnusableConstructor:
		return nil

	default:
		panic(&UnsupportedShapeError{
			Construct: "constructor " + sema.QualifiedName(constructor),
			Reason:    "the constructor is not represented by a function",
			Range:     ast.NewRangeFromPositioned(hasPosition),
		})
	}

	compiler := NewCompiler(m.Config, location, context, receiver)

	var parameters []string
	if declaration != nil {
		for _, parameter := range declaration.Parameters {
			parameters = append(parameters, context.NameFor(parameter))
		}
	}

	var statements []jsast.Statement

	if declaration.ChainsToSameType() {
		statements = append(
			statements,
			compiler.compileConstructorInitializer(
				declaration.Initializer.Constructor,
				declaration.Initializer.Arguments,
				isFactory,
				declaration.Initializer,
			)...,
		)
	} else {
		switch {
		case declaringType.HasNonTrivialBase():
			baseConstructor := &sema.Constructor{
				DeclaringType: declaringType.BaseType,
			}
			var arguments []ast.Expression
			if declaration != nil && declaration.Initializer != nil {
				baseConstructor = declaration.Initializer.Constructor
				arguments = declaration.Initializer.Arguments
				hasPosition = declaration.Initializer
			}
			statements = append(
				statements,
				compiler.compileConstructorInitializer(
					baseConstructor,
					arguments,
					isFactory,
					hasPosition,
				)...,
			)

		case isFactory:
			statements = append(
				statements,
				jsast.NewVariableDeclaration(
					m.Config.Naming.ThisAlias(),
					&jsast.ObjectLiteral{},
				),
			)
		}

		// Field initializers are lowered for `this`,
		// and rebound to the receiver of the factory
		initializerCompiler := NewCompiler(m.Config, location, context, &jsast.This{})
		initializerStatements := initializerCompiler.compileFieldInitializers(initializers)
		if isFactory {
			initializerStatements = jsast.ReplaceThis(initializerStatements, receiver)
		}
		statements = append(statements, initializerStatements...)
	}

	if declaration != nil && declaration.Body != nil {
		statements = append(
			statements,
			compiler.compileStatements(declaration.Body.Statements)...,
		)
	}

	if isFactory {
		statements = append(
			statements,
			&jsast.Return{
				Expression: receiver,
			},
		)
	}

	return &jsast.Function{
		Parameters: parameters,
		Body:       jsast.NewBlock(statements...),
	}
}

// compileConstructorInitializer compiles the call of the given constructor
// from another constructor, i.e. a `this(...)` or `base(...)` call.
//
// A constructor which initializes `this` calls the other constructor function on `this`.
// A factory declares its receiver as the instance created by the other constructor.
func (c *Compiler) compileConstructorInitializer(
	constructor *sema.Constructor,
	arguments []ast.Expression,
	isFactory bool,
	hasPosition ast.HasPosition,
) []jsast.Statement {

	constructorSemantics := c.constructorSemantics(constructor, hasPosition)

	prelude, compiledArguments := c.compileInOrderWith(
		arguments,
		func(index int, argument ast.Expression) Result {
			return c.compileArgument(constructor.Parameters, index, argument)
		},
	)

	if isFactory {
		instance := c.constructorCall(
			constructor,
			constructorSemantics,
			compiledArguments,
			hasPosition,
			&prelude,
		)
		return append(
			prelude,
			jsast.NewVariableDeclaration(
				c.Config.Naming.ThisAlias(),
				instance,
			),
		)
	}

	var function jsast.Expression
	switch constructorSemantics := constructorSemantics.(type) {
	case semantics.UnnamedConstructor:
		function = c.typeReference(constructor.DeclaringType)

	case semantics.NamedConstructor:
		function = jsast.NewMember(
			c.typeReference(constructor.DeclaringType),
			constructorSemantics.Name,
		)

	default:
		panic(&UnsupportedShapeError{
			Construct: "call of constructor " + sema.QualifiedName(constructor),
			Reason:    "a constructor which initializes `this` can only call constructors which initialize `this`",
			Range:     ast.NewRangeFromPositioned(hasPosition),
		})
	}

	callArguments := make([]jsast.Expression, 0, len(compiledArguments)+1)
	callArguments = append(callArguments, c.receiver)
	callArguments = append(callArguments, compiledArguments...)

	return append(
		prelude,
		jsast.NewExpressionStatement(
			jsast.NewInvocation(
				jsast.NewMember(function, callMember),
				callArguments...,
			),
		),
	)
}
