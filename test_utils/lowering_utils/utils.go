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

package lowering_utils

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/scriptc/ast"
	"github.com/onflow/scriptc/compiler"
	"github.com/onflow/scriptc/config"
	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/sema"
	"github.com/onflow/scriptc/semantics"
	. "github.com/onflow/scriptc/test_utils/common_utils"
)

// Importer is a metadata importer with fixed naming rules:
//
//   - types are named by their identifier
//   - methods are called by name, e.g. `$M`
//   - fields are accessed by name, e.g. `$F`
//   - properties and indexers use accessors, e.g. `get_$P` and `set_$P`
//   - events use accessors, e.g. `add_$E` and `remove_$E`
//   - constructors are unnamed
//
// The semantics of individual symbols can be overridden.
type Importer struct {
	mutex        sync.Mutex
	members      map[sema.Member]semantics.SymbolSemantics
	constructors map[*sema.Constructor]semantics.ConstructorSemantics
	types        map[*sema.CompositeType]semantics.TypeSemantics
}

var _ semantics.MetadataImporter = &Importer{}

func NewImporter() *Importer {
	return &Importer{
		members:      map[sema.Member]semantics.SymbolSemantics{},
		constructors: map[*sema.Constructor]semantics.ConstructorSemantics{},
		types:        map[*sema.CompositeType]semantics.TypeSemantics{},
	}
}

func (i *Importer) WithMember(member sema.Member, symbolSemantics semantics.SymbolSemantics) *Importer {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	i.members[member] = symbolSemantics
	return i
}

func (i *Importer) WithConstructor(
	constructor *sema.Constructor,
	constructorSemantics semantics.ConstructorSemantics,
) *Importer {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	i.constructors[constructor] = constructorSemantics
	return i
}

func (i *Importer) WithType(compositeType *sema.CompositeType, typeSemantics semantics.TypeSemantics) *Importer {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	i.types[compositeType] = typeSemantics
	return i
}

func (i *Importer) MemberSemantics(member sema.Member) semantics.SymbolSemantics {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	if symbolSemantics, ok := i.members[member]; ok {
		return symbolSemantics
	}

	name := "$" + member.MemberName()

	switch member.(type) {
	case *sema.Method:
		return semantics.NormalCall{Name: name}

	case *sema.Field:
		return semantics.FieldAccess{Name: name}

	case *sema.Property:
		return semantics.PropertyAccessors{
			Get: semantics.NormalCall{Name: "get_" + name},
			Set: semantics.NormalCall{Name: "set_" + name},
		}

	case *sema.Event:
		return semantics.EventAccessors{
			Add:    semantics.NormalCall{Name: "add_" + name},
			Remove: semantics.NormalCall{Name: "remove_" + name},
		}
	}

	return semantics.Unusable{}
}

func (i *Importer) ConstructorSemantics(constructor *sema.Constructor) semantics.ConstructorSemantics {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	if constructorSemantics, ok := i.constructors[constructor]; ok {
		return constructorSemantics
	}
	return semantics.UnnamedConstructor{}
}

func (i *Importer) TypeSemantics(compositeType *sema.CompositeType) semantics.TypeSemantics {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	if typeSemantics, ok := i.types[compositeType]; ok {
		return typeSemantics
	}
	return semantics.NormalType{Name: compositeType.Identifier}
}

// Trace is a trace recorded by the compiler
type Trace struct {
	OperationName string
	Attributes    []attribute.KeyValue
}

// Traces collects the traces recorded by the compiler
type Traces struct {
	mutex  sync.Mutex
	traces []Trace
}

func (t *Traces) Record(operationName string, _ time.Duration, attributes []attribute.KeyValue) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.traces = append(t.traces, Trace{
		OperationName: operationName,
		Attributes:    attributes,
	})
}

func (t *Traces) OperationNames() []string {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	names := make([]string, 0, len(t.traces))
	for _, trace := range t.traces {
		names = append(names, trace.OperationName)
	}
	return names
}

// NewConfig returns a compiler configuration with the default settings,
// which collects reported diagnostics and logs to the test.
func NewConfig(t testing.TB, importer semantics.MetadataImporter) (*compiler.Config, *compiler.CollectingErrorReporter) {
	reporter := &compiler.CollectingErrorReporter{}
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return compiler.NewConfig(config.Default(), importer, reporter, logger), reporter
}

// NewCompiler returns a compiler for expressions and statements
// of an instance method of a type with the given type parameters.
func NewCompiler(t testing.TB, importer semantics.MetadataImporter, typeParameters ...*sema.TypeParameter) *compiler.Compiler {
	compilerConfig, _ := NewConfig(t, importer)
	context := compiler.NewContext(compilerConfig.Naming, typeParameters)
	return compiler.NewCompiler(compilerConfig, TestLocation, context, nil)
}

// Render renders the prelude and the expression of a result, one statement per line
func Render(result compiler.Result) string {
	return jsast.RenderStatements(result.Statements())
}

// Builders

func NewClass(identifier string) *sema.CompositeType {
	return &sema.CompositeType{Identifier: identifier}
}

func NewMethod(
	declaringType *sema.CompositeType,
	identifier string,
	static bool,
	returnType sema.Type,
	parameters ...*sema.Parameter,
) *sema.Method {
	return &sema.Method{
		Identifier:    identifier,
		DeclaringType: declaringType,
		Static:        static,
		Parameters:    parameters,
		ReturnType:    returnType,
	}
}

func NewParameter(identifier string, t sema.Type) *sema.Parameter {
	return &sema.Parameter{
		Identifier: identifier,
		Type:       t,
	}
}

func NewField(declaringType *sema.CompositeType, identifier string, static bool, t sema.Type) *sema.Field {
	return &sema.Field{
		Identifier:    identifier,
		DeclaringType: declaringType,
		Static:        static,
		Type:          t,
	}
}

func NewProperty(declaringType *sema.CompositeType, identifier string, static bool, t sema.Type) *sema.Property {
	return &sema.Property{
		Identifier:    identifier,
		DeclaringType: declaringType,
		Static:        static,
		Type:          t,
	}
}

func NewLocal(identifier string, t sema.Type) *sema.Variable {
	return &sema.Variable{
		Identifier: identifier,
		Type:       t,
	}
}

func NewRangeVariable(identifier string, t sema.Type) *sema.RangeVariable {
	return &sema.RangeVariable{
		Identifier: identifier,
		Type:       t,
	}
}

func Int(value int64) *ast.ConstantExpression {
	return &ast.ConstantExpression{
		Value: value,
		Type:  sema.Int32Type,
	}
}

func Bool(value bool) *ast.ConstantExpression {
	return &ast.ConstantExpression{
		Value: value,
		Type:  sema.BooleanType,
	}
}

func Null(t sema.Type) *ast.ConstantExpression {
	return &ast.ConstantExpression{
		Type: t,
	}
}

func Ref(variable *sema.Variable) *ast.VariableExpression {
	return &ast.VariableExpression{
		Variable: variable,
	}
}

func RangeRef(variable *sema.RangeVariable) *ast.RangeVariableExpression {
	return &ast.RangeVariableExpression{
		Variable: variable,
	}
}

// Call returns the invocation of the method.
// The target is nil for static methods, and for instance methods of the current receiver.
func Call(target ast.Expression, method *sema.Method, arguments ...ast.Expression) *ast.InvocationExpression {
	return &ast.InvocationExpression{
		Target:    target,
		Method:    method,
		Arguments: arguments,
		Type:      method.ReturnType,
	}
}

func Member(target ast.Expression, member sema.Member) *ast.MemberExpression {
	return &ast.MemberExpression{
		Target: target,
		Member: member,
	}
}

func Binary(operation ast.Operation, left, right ast.Expression, t sema.Type) *ast.BinaryExpression {
	return &ast.BinaryExpression{
		Operation: operation,
		Left:      left,
		Right:     right,
		Type:      t,
	}
}

func Assign(target, value ast.Expression) *ast.AssignmentExpression {
	return &ast.AssignmentExpression{
		Target: target,
		Value:  value,
	}
}

func CompoundAssign(operation ast.Operation, target, value ast.Expression) *ast.AssignmentExpression {
	return &ast.AssignmentExpression{
		Operation: operation,
		Target:    target,
		Value:     value,
	}
}

func Statement(expression ast.Expression) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{
		Expression: expression,
	}
}

func Block(statements ...ast.Statement) *ast.Block {
	return &ast.Block{
		Statements: statements,
	}
}
