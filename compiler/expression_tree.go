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
	"github.com/onflow/scriptc/runtimelib"
	"github.com/onflow/scriptc/sema"
)

// treeBuilder builds the expression tree of a lambda,
// i.e. an expression which constructs nodes describing the lambda,
// instead of a function.
//
// Parameter nodes are declared in the prelude,
// so every reference to a parameter refers to the same node.
type treeBuilder struct {
	compiler   *Compiler
	prelude    *[]jsast.Statement
	parameters map[*sema.Variable]jsast.Expression
}

var _ ast.ExpressionVisitor[jsast.Expression] = &treeBuilder{}

func (c *Compiler) newTreeBuilder(prelude *[]jsast.Statement) *treeBuilder {
	return &treeBuilder{
		compiler:   c,
		prelude:    prelude,
		parameters: map[*sema.Variable]jsast.Expression{},
	}
}

func (c *Compiler) compileExpressionTreeLambda(expression *ast.LambdaExpression) Result {
	var prelude []jsast.Statement
	builder := c.newTreeBuilder(&prelude)
	node := builder.VisitLambdaExpression(expression)
	return Result{
		Prelude:    prelude,
		Expression: node,
	}
}

func (b *treeBuilder) build(expression ast.Expression) jsast.Expression {
	return ast.AcceptExpression[jsast.Expression](expression, b)
}

func (b *treeBuilder) buildAll(expressions []ast.Expression) *jsast.ArrayLiteral {
	elements := make([]jsast.Expression, 0, len(expressions))
	for _, expression := range expressions {
		elements = append(elements, b.build(expression))
	}
	return &jsast.ArrayLiteral{
		Elements: elements,
	}
}

func (b *treeBuilder) node(kind runtimelib.ExpressionNodeKind, arguments ...jsast.Expression) jsast.Expression {
	return b.compiler.Config.RuntimeLibrary.ExpressionNode(kind, arguments...)
}

func (b *treeBuilder) typeReference(t sema.Type) jsast.Expression {
	if t == nil {
		t = sema.ObjectType
	}
	return b.compiler.typeReference(t)
}

// declareParameter declares a new parameter node in the prelude
func (b *treeBuilder) declareParameter(parameterType jsast.Expression, name string) *jsast.Identifier {
	return b.compiler.capture(
		b.node(
			runtimelib.ExpressionNodeKindParameter,
			parameterType,
			&jsast.String{Value: name},
		),
		b.prelude,
	)
}

// lambda returns the lambda node for the given body and parameter nodes
func (b *treeBuilder) lambda(body jsast.Expression, parameters []jsast.Expression) jsast.Expression {
	return b.node(
		runtimelib.ExpressionNodeKindLambda,
		body,
		&jsast.ArrayLiteral{Elements: parameters},
	)
}

func (b *treeBuilder) unsupported(construct string, hasPosition ast.HasPosition) *UnsupportedShapeError {
	return &UnsupportedShapeError{
		Construct: construct,
		Reason:    "it cannot be represented in an expression tree",
		Range:     ast.NewRangeFromPositioned(hasPosition),
	}
}

// memberHandle returns the node which refers to the given member
func (b *treeBuilder) memberHandle(member sema.Member) jsast.Expression {
	return b.compiler.Config.RuntimeLibrary.GetMember(
		b.compiler.typeReference(member.MemberDeclaringType()),
		member.MemberName(),
	)
}

// target returns the node of the receiver of an instance member,
// or null for static members
func (b *treeBuilder) target(target ast.Expression, member sema.Member) jsast.Expression {
	if member.IsStatic() {
		return &jsast.Null{}
	}
	if target == nil {
		return b.constant(b.compiler.receiver, member.MemberDeclaringType())
	}
	return b.build(target)
}

func (b *treeBuilder) constant(value jsast.Expression, t sema.Type) jsast.Expression {
	return b.node(
		runtimelib.ExpressionNodeKindConstant,
		value,
		b.typeReference(t),
	)
}

func (b *treeBuilder) VisitConstantExpression(expression *ast.ConstantExpression) jsast.Expression {
	return b.constant(constantExpression(expression.Value), expression.Type)
}

func (b *treeBuilder) VisitThisExpression(expression *ast.ThisExpression) jsast.Expression {
	return b.constant(b.compiler.receiver, expression.Type)
}

func (b *treeBuilder) VisitVariableExpression(expression *ast.VariableExpression) jsast.Expression {
	if parameter, ok := b.parameters[expression.Variable]; ok {
		return parameter
	}

	// Variables of the enclosing function are captured by value
	value := b.compiler.VisitVariableExpression(expression).Expression
	return b.constant(value, expression.Variable.Type)
}

func (b *treeBuilder) VisitRangeVariableExpression(expression *ast.RangeVariableExpression) jsast.Expression {
	binding, ok := b.compiler.context.rangeVariable(expression.Variable)
	if !ok {
		panic(errors.NewUnexpectedError(
			"range variable is not bound: %s",
			expression.Variable.Identifier,
		))
	}
	if !binding.isNode {
		return b.constant(binding.expression, expression.Variable.Type)
	}
	return binding.expression
}

func (b *treeBuilder) VisitMemberExpression(expression *ast.MemberExpression) jsast.Expression {
	member := expression.Member
	b.compiler.memberSemantics(member, expression)

	var kind runtimelib.ExpressionNodeKind
	switch member.(type) {
	case *sema.Field, *sema.Event:
		kind = runtimelib.ExpressionNodeKindField
	case *sema.Property:
		kind = runtimelib.ExpressionNodeKindProperty
	default:
		panic(b.unsupported("conversion of method "+sema.QualifiedName(member)+" to a delegate", expression))
	}

	return b.node(
		kind,
		b.target(expression.Target, member),
		b.memberHandle(member),
	)
}

func (b *treeBuilder) VisitDynamicMemberExpression(expression *ast.DynamicMemberExpression) jsast.Expression {
	panic(b.unsupported("dynamic member access", expression))
}

func (b *treeBuilder) VisitIndexExpression(expression *ast.IndexExpression) jsast.Expression {
	if indexer := expression.Indexer; indexer != nil {
		b.compiler.memberSemantics(indexer, expression)
		return b.node(
			runtimelib.ExpressionNodeKindCall,
			b.target(expression.Target, indexer),
			b.memberHandle(indexer),
			b.buildAll(expression.Indices),
		)
	}

	if sema.IsDynamic(expression.Target.ResultType()) {
		panic(b.unsupported("dynamic indexing", expression))
	}

	b.compiler.checkNativeIndexing(expression)

	return b.node(
		runtimelib.ExpressionNodeKindArrayIndex,
		b.build(expression.Target),
		b.build(expression.Indices[0]),
	)
}

func (b *treeBuilder) VisitInvocationExpression(expression *ast.InvocationExpression) jsast.Expression {
	method := expression.Method
	b.compiler.memberSemantics(method, expression)

	return b.node(
		runtimelib.ExpressionNodeKindCall,
		b.target(expression.Target, method),
		b.memberHandle(method),
		b.buildAll(expression.Arguments),
	)
}

func (b *treeBuilder) VisitDelegateInvocationExpression(expression *ast.DelegateInvocationExpression) jsast.Expression {
	return b.node(
		runtimelib.ExpressionNodeKindInvoke,
		b.build(expression.Delegate),
		b.buildAll(expression.Arguments),
	)
}

func (b *treeBuilder) VisitObjectCreationExpression(expression *ast.ObjectCreationExpression) jsast.Expression {
	constructor := expression.Constructor
	b.compiler.constructorSemantics(constructor, expression)

	return b.node(
		runtimelib.ExpressionNodeKindNew,
		b.memberHandle(constructor),
		b.buildAll(expression.Arguments),
	)
}

func (b *treeBuilder) VisitUnaryExpression(expression *ast.UnaryExpression) jsast.Expression {
	kind, ok := runtimelib.UnaryExpressionNodeKind(expression.Operation)
	if !ok {
		panic(b.unsupported("increment or decrement", expression))
	}

	return b.node(
		kind,
		b.build(expression.Operand),
		b.typeReference(expression.Type),
	)
}

func (b *treeBuilder) VisitBinaryExpression(expression *ast.BinaryExpression) jsast.Expression {
	kind, ok := runtimelib.BinaryExpressionNodeKind(expression.Operation)
	if !ok {
		panic(errors.NewUnreachableError())
	}

	return b.node(
		kind,
		b.build(expression.Left),
		b.build(expression.Right),
		b.typeReference(expression.Type),
	)
}

func (b *treeBuilder) VisitAssignmentExpression(expression *ast.AssignmentExpression) jsast.Expression {
	panic(b.unsupported("assignment", expression))
}

func (b *treeBuilder) VisitConditionalExpression(expression *ast.ConditionalExpression) jsast.Expression {
	return b.node(
		runtimelib.ExpressionNodeKindCondition,
		b.build(expression.Test),
		b.build(expression.Then),
		b.build(expression.Else),
		b.typeReference(expression.Type),
	)
}

func (b *treeBuilder) VisitCastExpression(expression *ast.CastExpression) jsast.Expression {
	return b.node(
		runtimelib.ExpressionNodeKindConvert,
		b.build(expression.Expression),
		b.typeReference(expression.Type),
	)
}

func (b *treeBuilder) VisitLambdaExpression(expression *ast.LambdaExpression) jsast.Expression {
	if expression.Body != nil {
		panic(b.unsupported("lambda with a statement body", expression))
	}

	parameters := make([]jsast.Expression, 0, len(expression.Parameters))
	for _, parameter := range expression.Parameters {
		node := b.declareParameter(
			b.typeReference(parameter.Type),
			parameter.Identifier,
		)
		b.parameters[parameter] = node
		parameters = append(parameters, node)
	}

	return b.lambda(b.build(expression.Expression), parameters)
}

func (b *treeBuilder) VisitArrayCreationExpression(expression *ast.ArrayCreationExpression) jsast.Expression {
	return b.node(
		runtimelib.ExpressionNodeKindNewArrayInit,
		b.typeReference(expression.ItemType),
		b.buildAll(expression.Elements),
	)
}

func (b *treeBuilder) VisitQueryExpression(expression *ast.QueryExpression) jsast.Expression {
	panic(b.unsupported("query", expression))
}
