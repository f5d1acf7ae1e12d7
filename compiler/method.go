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
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/scriptc/ast"
	"github.com/onflow/scriptc/common"
	"github.com/onflow/scriptc/errors"
	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/sema"
	"github.com/onflow/scriptc/semantics"
)

const (
	traceLowerMethod      = "lower.method"
	traceLowerConstructor = "lower.constructor"
	traceLowerQuery       = "lower.query"
)

// MethodCompiler lowers the units of a program:
// methods, constructors, field initializers and accessors.
//
// Each unit is lowered with a new context.
// A MethodCompiler may be used concurrently if the ErrorReporter supports it.
type MethodCompiler struct {
	Config *Config
}

func NewMethodCompiler(config *Config) *MethodCompiler {
	return &MethodCompiler{
		Config: config,
	}
}

// lowerUnit calls lower and converts a panic with a lowering error
// into a reported diagnostic and a returned UnitError
func lowerUnit[T any](
	m *MethodCompiler,
	location common.Location,
	unit string,
	operationName string,
	lower func() T,
) (result T, err error) {

	logger := m.Config.Logger.With().
		Str("unit", unit).
		Logger()

	logger.Debug().Msg("lowering unit")

	start := time.Now()

	defer func() {
		if recovered := recover(); recovered != nil {
			var empty T
			result = empty
			err = m.report(location, unit, errors.Recovered(recovered))
		}

		duration := time.Since(start)

		if m.Config.TracingEnabled && m.Config.OnRecordTrace != nil {
			m.Config.OnRecordTrace(
				operationName,
				duration,
				[]attribute.KeyValue{
					attribute.String("unit", unit),
					attribute.Bool("failed", err != nil),
				},
			)
		}

		logger.Debug().
			Dur("duration", duration).
			Bool("failed", err != nil).
			Msg("lowered unit")
	}()

	return lower(), nil
}

func (m *MethodCompiler) report(location common.Location, unit string, err error) error {
	kind := "user"
	if errors.IsInternalError(err) {
		kind = "internal"
	}

	m.Config.Logger.Warn().
		Err(err).
		Str("unit", unit).
		Str("kind", kind).
		Msg("failed to lower unit")

	if m.Config.ErrorReporter != nil {
		m.Config.ErrorReporter.Report(Diagnostic{
			Severity: common.SeverityError,
			Location: location,
			Message:  err.Error(),
			Err:      err,
		})
	}

	return errors.UnitError{
		Unit: unit,
		Err:  err,
	}
}

// CompileMethod lowers the body of a method to a function.
//
// The result is nil if the method is not represented by a function,
// i.e. if its uses are replaced by a template.
func (m *MethodCompiler) CompileMethod(
	location common.Location,
	declaration *ast.MethodDeclaration,
) (*jsast.Function, error) {
	method := declaration.Method

	return lowerUnit(
		m,
		location,
		sema.QualifiedName(method),
		traceLowerMethod,
		func() *jsast.Function {
			return m.compileMethod(location, declaration)
		},
	)
}

func unitTypeParameters(declaringType *sema.CompositeType, method *sema.Method) []*sema.TypeParameter {
	var typeParameters []*sema.TypeParameter
	if declaringType != nil {
		typeParameters = append(typeParameters, declaringType.TypeParameters...)
	}
	if method != nil {
		typeParameters = append(typeParameters, method.TypeParameters...)
	}
	return typeParameters
}

func (m *MethodCompiler) compileMethod(
	location common.Location,
	declaration *ast.MethodDeclaration,
) *jsast.Function {

	method := declaration.Method
	context := NewContext(m.Config.Naming, unitTypeParameters(method.DeclaringType, method))

	var parameters []string
	var receiver jsast.Expression

	switch methodSemantics := m.Config.Resolver.MethodSemantics(method).(type) {
	case semantics.NormalCall:
		if !methodSemantics.IgnoreGenericArguments {
			for _, typeParameter := range method.TypeParameters {
				parameters = append(
					parameters,
					m.Config.Naming.TypeParameterName(typeParameter.Name),
				)
			}
		}

	case semantics.StaticWithExplicitReceiver:
		if !method.Static {
			alias := context.ThisAlias()
			parameters = append(parameters, alias)
			receiver = jsast.NewIdentifier(alias)
		}

	case semantics.InlineTemplate, semantics.Unusable:
		return nil

	default:
		panic(&UnsupportedShapeError{
			Construct: "method " + sema.QualifiedName(method),
			Reason:    "the method is not represented by a function",
			Range:     ast.NewRangeFromPositioned(declaration),
		})
	}

	compiler := NewCompiler(m.Config, location, context, receiver)

	for _, parameter := range declaration.Parameters {
		parameters = append(parameters, context.NameFor(parameter))
	}

	return &jsast.Function{
		Parameters: parameters,
		Body:       compiler.compileBlock(declaration.Body),
	}
}

// FieldInitializer is the initial value of an instance field,
// assigned by constructors which do not delegate to another constructor
// of the same type. If Value is nil, the field is initialized to the default value of its type.
type FieldInitializer struct {
	Field *sema.Field
	Value ast.Expression
}

// CompileFieldInitializer lowers the initialization of a field
// to the statements which assign the value.
// Static fields are assigned on the type, instance fields on `this`.
func (m *MethodCompiler) CompileFieldInitializer(
	location common.Location,
	field *sema.Field,
	value ast.Expression,
) (*jsast.Block, error) {
	return lowerUnit(
		m,
		location,
		sema.QualifiedName(field),
		traceLowerMethod,
		func() *jsast.Block {
			compiler := m.newUnitCompiler(location, field.DeclaringType, nil)
			return jsast.NewBlock(
				compiler.compileFieldInitializer(&FieldInitializer{
					Field: field,
					Value: value,
				})...,
			)
		},
	)
}

// CompileDefaultFieldInitializer lowers the initialization of a field
// to the default value of its type
func (m *MethodCompiler) CompileDefaultFieldInitializer(
	location common.Location,
	field *sema.Field,
) (*jsast.Block, error) {
	return m.CompileFieldInitializer(location, field, nil)
}

func (m *MethodCompiler) newUnitCompiler(
	location common.Location,
	declaringType *sema.CompositeType,
	method *sema.Method,
) *Compiler {
	context := NewContext(m.Config.Naming, unitTypeParameters(declaringType, method))
	return NewCompiler(m.Config, location, context, nil)
}

func (c *Compiler) compileFieldInitializers(initializers []*FieldInitializer) []jsast.Statement {
	var statements []jsast.Statement
	for _, initializer := range initializers {
		statements = append(statements, c.compileFieldInitializer(initializer)...)
	}
	return statements
}

func (c *Compiler) compileFieldInitializer(initializer *FieldInitializer) []jsast.Statement {
	field := initializer.Field

	var hasPosition ast.HasPosition = ast.EmptyRange
	if initializer.Value != nil {
		hasPosition = initializer.Value
	}

	fieldAccess, ok := c.memberSemantics(field, hasPosition).(semantics.FieldAccess)
	if !ok {
		panic(c.unsupportedSemantics(field, hasPosition))
	}

	var result Result
	if initializer.Value == nil {
		result = expressionResult(
			c.Config.RuntimeLibrary.DefaultValue(
				field.Type,
				c.typeReference(field.Type),
			),
		)
	} else {
		result = c.compileExpression(initializer.Value)
	}

	target := jsast.NewMember(
		c.compileReceiver(nil, field).Expression,
		fieldAccess.Name,
	)

	return append(
		result.Prelude,
		jsast.NewExpressionStatement(
			jsast.NewAssignment(target, result.Expression),
		),
	)
}
