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

// valueParameter is the parameter of setters, adders and removers
var valueParameter = &sema.Variable{
	Identifier:  semantics.ValueHole,
	IsParameter: true,
}

// CompileAutoPropertyGetter lowers the getter of an automatically implemented property,
// which reads the given backing field.
// The result is nil if the property is not represented by accessors.
func (m *MethodCompiler) CompileAutoPropertyGetter(
	location common.Location,
	property *sema.Property,
	backingField string,
) (*jsast.Function, error) {
	return lowerUnit(
		m,
		location,
		sema.QualifiedName(property)+".get",
		traceLowerMethod,
		func() *jsast.Function {
			accessors, ok := m.Config.Resolver.MemberSemantics(property).(semantics.PropertyAccessors)
			if !ok || accessors.Get == nil {
				return nil
			}
			return m.compileAutoAccessor(
				location,
				property,
				accessors.Get,
				false,
				func(field jsast.Expression, _ jsast.Expression) jsast.Statement {
					return &jsast.Return{
						Expression: field,
					}
				},
				backingField,
			)
		},
	)
}

// CompileAutoPropertySetter lowers the setter of an automatically implemented property,
// which writes the given backing field
func (m *MethodCompiler) CompileAutoPropertySetter(
	location common.Location,
	property *sema.Property,
	backingField string,
) (*jsast.Function, error) {
	return lowerUnit(
		m,
		location,
		sema.QualifiedName(property)+".set",
		traceLowerMethod,
		func() *jsast.Function {
			accessors, ok := m.Config.Resolver.MemberSemantics(property).(semantics.PropertyAccessors)
			if !ok || accessors.Set == nil {
				return nil
			}
			return m.compileAutoAccessor(
				location,
				property,
				accessors.Set,
				true,
				func(field jsast.Expression, value jsast.Expression) jsast.Statement {
					return jsast.NewExpressionStatement(
						jsast.NewAssignment(field, value),
					)
				},
				backingField,
			)
		},
	)
}

// CompileAutoEventAdder lowers the adder of an automatically implemented event,
// which combines the handler with the delegate stored in the given backing field
func (m *MethodCompiler) CompileAutoEventAdder(
	location common.Location,
	event *sema.Event,
	backingField string,
) (*jsast.Function, error) {
	return m.compileAutoEventAccessor(location, event, backingField, true)
}

// CompileAutoEventRemover lowers the remover of an automatically implemented event
func (m *MethodCompiler) CompileAutoEventRemover(
	location common.Location,
	event *sema.Event,
	backingField string,
) (*jsast.Function, error) {
	return m.compileAutoEventAccessor(location, event, backingField, false)
}

func (m *MethodCompiler) compileAutoEventAccessor(
	location common.Location,
	event *sema.Event,
	backingField string,
	isAdder bool,
) (*jsast.Function, error) {

	unit := sema.QualifiedName(event) + ".remove"
	if isAdder {
		unit = sema.QualifiedName(event) + ".add"
	}

	return lowerUnit(
		m,
		location,
		unit,
		traceLowerMethod,
		func() *jsast.Function {
			accessors, ok := m.Config.Resolver.MemberSemantics(event).(semantics.EventAccessors)
			if !ok {
				return nil
			}

			accessor := accessors.Remove
			if isAdder {
				accessor = accessors.Add
			}
			if accessor == nil {
				return nil
			}

			runtimeLibrary := m.Config.RuntimeLibrary

			return m.compileAutoAccessor(
				location,
				event,
				accessor,
				true,
				func(field jsast.Expression, value jsast.Expression) jsast.Statement {
					var combined jsast.Expression
					if isAdder {
						combined = runtimeLibrary.CombineDelegates(field, value)
					} else {
						combined = runtimeLibrary.RemoveDelegate(field, value)
					}
					return jsast.NewExpressionStatement(
						jsast.NewAssignment(field, combined),
					)
				},
				backingField,
			)
		},
	)
}

// compileAutoAccessor returns the function of an accessor of the given member,
// which accesses the backing field through the body function
func (m *MethodCompiler) compileAutoAccessor(
	location common.Location,
	member sema.Member,
	accessor semantics.SymbolSemantics,
	hasValue bool,
	body func(field jsast.Expression, value jsast.Expression) jsast.Statement,
	backingField string,
) *jsast.Function {

	compiler := m.newUnitCompiler(location, member.MemberDeclaringType(), nil)
	context := compiler.context

	var parameters []string
	receiver := compiler.compileReceiver(nil, member).Expression

	switch accessor.(type) {
	case semantics.NormalCall:

	case semantics.StaticWithExplicitReceiver:
		if !member.IsStatic() {
			alias := context.ThisAlias()
			parameters = append(parameters, alias)
			receiver = jsast.NewIdentifier(alias)
		}

	default:
		panic(&UnsupportedShapeError{
			Construct: "automatically implemented " + member.MemberKind().Name() + " " + sema.QualifiedName(member),
			Reason:    "the accessors are not represented by functions",
			Range:     ast.EmptyRange,
		})
	}

	var value jsast.Expression
	if hasValue {
		name := context.NameFor(valueParameter)
		parameters = append(parameters, name)
		value = jsast.NewIdentifier(name)
	}

	field := jsast.NewMember(receiver, backingField)

	return &jsast.Function{
		Parameters: parameters,
		Body:       jsast.NewBlock(body(field, value)),
	}
}
