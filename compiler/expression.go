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
	"github.com/onflow/scriptc/sema"
	"github.com/onflow/scriptc/semantics"
)

func (c *Compiler) VisitConstantExpression(expression *ast.ConstantExpression) Result {
	return expressionResult(constantExpression(expression.Value))
}

func constantExpression(value any) jsast.Expression {
	switch value := value.(type) {
	case nil:
		return &jsast.Null{}
	case bool:
		return &jsast.Boolean{Value: value}
	case int64:
		return &jsast.Number{Value: float64(value)}
	case float64:
		return &jsast.Number{Value: value}
	case string:
		return &jsast.String{Value: value}
	}

	panic(errors.NewUnexpectedError("unsupported constant: %T", value))
}

func (c *Compiler) VisitThisExpression(_ *ast.ThisExpression) Result {
	return expressionResult(c.receiver)
}

func (c *Compiler) VisitVariableExpression(expression *ast.VariableExpression) Result {
	variable := expression.Variable
	var result jsast.Expression = jsast.NewIdentifier(c.context.NameFor(variable))
	if variable.IsByRef {
		result = jsast.NewMember(result, byRefMember)
	}
	return expressionResult(result)
}

func (c *Compiler) VisitRangeVariableExpression(expression *ast.RangeVariableExpression) Result {
	binding, ok := c.context.rangeVariable(expression.Variable)
	if !ok || binding.isNode {
		panic(errors.NewUnexpectedError(
			"range variable is not bound: %s",
			expression.Variable.Identifier,
		))
	}
	return expressionResult(binding.expression)
}

func (c *Compiler) VisitMemberExpression(expression *ast.MemberExpression) Result {
	member := expression.Member
	memberSemantics := c.memberSemantics(member, expression)

	if method, ok := member.(*sema.Method); ok {
		return c.compileMethodGroup(expression, method, memberSemantics)
	}

	receiver := c.compileReceiver(expression.Target, member)
	prelude := receiver.Prelude

	switch memberSemantics := memberSemantics.(type) {
	case semantics.FieldAccess:
		return Result{
			Prelude:    prelude,
			Expression: jsast.NewMember(receiver.Expression, memberSemantics.Name),
		}

	case semantics.PropertyAccessors:
		if memberSemantics.Get == nil {
			panic(&UnsupportedShapeError{
				Construct: "read of " + sema.QualifiedName(member),
				Reason:    "the property has no getter",
				Range:     ast.NewRangeFromPositioned(expression),
			})
		}
		result := c.accessorCall(
			memberSemantics.Get,
			member,
			receiver.Expression,
			nil,
			nil,
			expression,
			&prelude,
		)
		return Result{
			Prelude:    prelude,
			Expression: result,
		}

	case semantics.InlineTemplate:
		bindings := map[string]jsast.Expression{}
		if !member.IsStatic() {
			bindings[semantics.ThisHole] = receiver.Expression
		}
		result := c.expandTemplate(memberSemantics.Template, bindings, member, expression, &prelude)
		return Result{
			Prelude:    prelude,
			Expression: result,
		}
	}

	panic(c.unsupportedSemantics(member, expression))
}

// compileMethodGroup compiles a method used as a delegate value
func (c *Compiler) compileMethodGroup(
	expression *ast.MemberExpression,
	method *sema.Method,
	memberSemantics semantics.SymbolSemantics,
) Result {
	normalCall, ok := memberSemantics.(semantics.NormalCall)
	if !ok {
		panic(&UnsupportedShapeError{
			Construct: "conversion of method " + sema.QualifiedName(method) + " to a delegate",
			Reason:    "only methods called by name can be converted",
			Range:     ast.NewRangeFromPositioned(expression),
		})
	}

	receiver := c.compileReceiver(expression.Target, method)
	prelude := receiver.Prelude

	if method.Static {
		return Result{
			Prelude:    prelude,
			Expression: jsast.NewMember(receiver.Expression, normalCall.Name),
		}
	}

	target := receiver.Expression
	if !c.isReusable(target) {
		target = c.capture(target, &prelude)
	}

	return Result{
		Prelude: prelude,
		Expression: c.Config.RuntimeLibrary.Bind(
			jsast.NewMember(target, normalCall.Name),
			target,
		),
	}
}

// accessorCall calls the getter or setter of a property or indexer,
// or the adder or remover of an event
func (c *Compiler) accessorCall(
	accessor semantics.SymbolSemantics,
	member sema.Member,
	receiver jsast.Expression,
	indices []jsast.Expression,
	value jsast.Expression,
	hasPosition ast.HasPosition,
	prelude *[]jsast.Statement,
) jsast.Expression {

	arguments := make([]jsast.Expression, 0, len(indices)+1)
	arguments = append(arguments, indices...)
	if value != nil {
		arguments = append(arguments, value)
	}

	switch accessor := accessor.(type) {
	case semantics.NormalCall:
		return jsast.NewInvocation(
			jsast.NewMember(receiver, accessor.Name),
			arguments...,
		)

	case semantics.StaticWithExplicitReceiver:
		return jsast.NewInvocation(
			jsast.NewMember(c.typeReference(member.MemberDeclaringType()), accessor.Name),
			append([]jsast.Expression{receiver}, arguments...)...,
		)

	case semantics.InlineTemplate:
		bindings := map[string]jsast.Expression{}
		if !member.IsStatic() {
			bindings[semantics.ThisHole] = receiver
		}
		if property, ok := member.(*sema.Property); ok {
			for i, parameter := range property.Parameters {
				if i < len(indices) {
					bindings[parameter.Identifier] = indices[i]
				}
			}
		}
		if value != nil {
			bindings[semantics.ValueHole] = value
		}
		return c.expandTemplate(accessor.Template, bindings, member, hasPosition, prelude)

	case semantics.Unusable:
		panic(&UnresolvedSemanticsError{
			Kind:   member.MemberKind().Name() + " accessor",
			Symbol: sema.QualifiedName(member),
			Range:  ast.NewRangeFromPositioned(hasPosition),
		})
	}

	panic(c.unsupportedSemantics(member, hasPosition))
}

func (c *Compiler) VisitDynamicMemberExpression(expression *ast.DynamicMemberExpression) Result {
	target := c.compileExpression(expression.Target)
	return Result{
		Prelude:    target.Prelude,
		Expression: jsast.NewMember(target.Expression, expression.Name),
	}
}

func (c *Compiler) VisitIndexExpression(expression *ast.IndexExpression) Result {
	if expression.Indexer != nil {
		return c.compileIndexerAccess(expression)
	}

	c.checkNativeIndexing(expression)

	prelude, operands := c.compileInOrder([]ast.Expression{
		expression.Target,
		expression.Indices[0],
	})

	return Result{
		Prelude:    prelude,
		Expression: c.nativeIndex(expression, operands[0], operands[1]),
	}
}

// checkNativeIndexing rejects indexing of arrays and dynamic values
// with more than one dimension
func (c *Compiler) checkNativeIndexing(expression *ast.IndexExpression) {
	indexCount := len(expression.Indices)

	if arrayType, ok := expression.Target.ResultType().(*sema.ArrayType); ok {
		dimensions := max(arrayType.Rank, indexCount)
		if dimensions != 1 {
			panic(newDimensionError("multi-dimensional array access", dimensions, expression))
		}
		return
	}

	if indexCount != 1 {
		panic(newDimensionError("dynamic indexing", indexCount, expression))
	}
}

// nativeIndex returns the native index operation.
// A dynamic index into an array is converted to a number first.
func (c *Compiler) nativeIndex(
	expression *ast.IndexExpression,
	target jsast.Expression,
	index jsast.Expression,
) jsast.Expression {
	_, isArray := expression.Target.ResultType().(*sema.ArrayType)
	if isArray && sema.IsDynamic(expression.Indices[0].ResultType()) {
		index = c.Config.RuntimeLibrary.Cast(
			index,
			sema.Int32Type,
			c.typeReference(sema.Int32Type),
		)
	}

	return &jsast.Index{
		Target: target,
		Index:  index,
	}
}

func (c *Compiler) compileIndexerAccess(expression *ast.IndexExpression) Result {
	indexer := expression.Indexer
	indexerSemantics := c.memberSemantics(indexer, expression)

	operandExpressions := make([]ast.Expression, 0, len(expression.Indices)+1)
	operandExpressions = append(operandExpressions, expression.Target)
	operandExpressions = append(operandExpressions, expression.Indices...)

	switch indexerSemantics := indexerSemantics.(type) {
	case semantics.NativeIndexer:
		if len(expression.Indices) != 1 {
			panic(newDimensionError("native indexer access", len(expression.Indices), expression))
		}
		prelude, operands := c.compileInOrder(operandExpressions)
		return Result{
			Prelude: prelude,
			Expression: &jsast.Index{
				Target: operands[0],
				Index:  operands[1],
			},
		}

	case semantics.PropertyAccessors:
		if indexerSemantics.Get == nil {
			panic(&UnsupportedShapeError{
				Construct: "read of " + sema.QualifiedName(indexer),
				Reason:    "the indexer has no getter",
				Range:     ast.NewRangeFromPositioned(expression),
			})
		}
		prelude, operands := c.compileInOrder(operandExpressions)
		result := c.accessorCall(
			indexerSemantics.Get,
			indexer,
			operands[0],
			operands[1:],
			nil,
			expression,
			&prelude,
		)
		return Result{
			Prelude:    prelude,
			Expression: result,
		}

	case semantics.InlineTemplate:
		prelude, operands := c.compileInOrder(operandExpressions)
		result := c.accessorCall(
			indexerSemantics,
			indexer,
			operands[0],
			operands[1:],
			nil,
			expression,
			&prelude,
		)
		return Result{
			Prelude:    prelude,
			Expression: result,
		}
	}

	panic(c.unsupportedSemantics(indexer, expression))
}

func (c *Compiler) VisitUnaryExpression(expression *ast.UnaryExpression) Result {
	if expression.Operation.IsIncrementOrDecrement() {
		return c.compileIncrementOrDecrement(expression, true)
	}

	operand := c.compileExpression(expression.Operand)

	var result jsast.Expression = &jsast.Unary{
		Operator: unaryOperator(expression.Operation),
		Operand:  operand.Expression,
	}

	if expression.Operation.IsLiftable() &&
		sema.IsNullable(expression.Operand.ResultType()) {

		result = c.Config.RuntimeLibrary.Lift(result)
	}

	return Result{
		Prelude:    operand.Prelude,
		Expression: result,
	}
}

func unaryOperator(operation ast.Operation) jsast.UnaryOperator {
	switch operation {
	case ast.OperationNegate:
		return jsast.UnaryOperatorNegate
	case ast.OperationUnaryPlus:
		return jsast.UnaryOperatorPlus
	case ast.OperationLogicalNot:
		return jsast.UnaryOperatorLogicalNot
	case ast.OperationBitwiseNot:
		return jsast.UnaryOperatorBitwiseNot
	}

	panic(errors.NewUnreachableError())
}

func binaryOperator(operation ast.Operation) jsast.BinaryOperator {
	switch operation {
	case ast.OperationOr:
		return jsast.BinaryOperatorLogicalOr
	case ast.OperationAnd:
		return jsast.BinaryOperatorLogicalAnd
	case ast.OperationEqual:
		return jsast.BinaryOperatorStrictEqual
	case ast.OperationNotEqual:
		return jsast.BinaryOperatorStrictNotEqual
	case ast.OperationLess:
		return jsast.BinaryOperatorLess
	case ast.OperationGreater:
		return jsast.BinaryOperatorGreater
	case ast.OperationLessEqual:
		return jsast.BinaryOperatorLessEqual
	case ast.OperationGreaterEqual:
		return jsast.BinaryOperatorGreaterEqual
	case ast.OperationPlus:
		return jsast.BinaryOperatorAdd
	case ast.OperationMinus:
		return jsast.BinaryOperatorSubtract
	case ast.OperationMul:
		return jsast.BinaryOperatorMultiply
	case ast.OperationDiv:
		return jsast.BinaryOperatorDivide
	case ast.OperationMod:
		return jsast.BinaryOperatorModulo
	case ast.OperationBitwiseOr:
		return jsast.BinaryOperatorBitwiseOr
	case ast.OperationBitwiseXor:
		return jsast.BinaryOperatorBitwiseXor
	case ast.OperationBitwiseAnd:
		return jsast.BinaryOperatorBitwiseAnd
	case ast.OperationBitwiseLeftShift:
		return jsast.BinaryOperatorLeftShift
	case ast.OperationBitwiseRightShift:
		return jsast.BinaryOperatorRightShift
	}

	panic(errors.NewUnreachableError())
}

func isNullConstant(expression ast.Expression) bool {
	constant, ok := expression.(*ast.ConstantExpression)
	return ok && constant.Value == nil
}

// isLooseEquality returns true if an equality comparison must treat
// undefined and null as equal
func isLooseEquality(expression *ast.BinaryExpression) bool {
	return sema.IsNullable(expression.Left.ResultType()) ||
		sema.IsNullable(expression.Right.ResultType()) ||
		isNullConstant(expression.Left) ||
		isNullConstant(expression.Right)
}

func (c *Compiler) VisitBinaryExpression(expression *ast.BinaryExpression) Result {
	if expression.Operation.IsShortCircuit() {
		return c.compileShortCircuit(expression)
	}

	prelude, operands := c.compileInOrder([]ast.Expression{
		expression.Left,
		expression.Right,
	})
	left, right := operands[0], operands[1]

	if sema.IsDelegate(expression.Type) {
		switch expression.Operation {
		case ast.OperationPlus:
			return Result{
				Prelude:    prelude,
				Expression: c.Config.RuntimeLibrary.CombineDelegates(left, right),
			}
		case ast.OperationMinus:
			return Result{
				Prelude:    prelude,
				Expression: c.Config.RuntimeLibrary.RemoveDelegate(left, right),
			}
		}
	}

	operator := binaryOperator(expression.Operation)
	if isLooseEquality(expression) {
		switch operator {
		case jsast.BinaryOperatorStrictEqual:
			operator = jsast.BinaryOperatorEqual
		case jsast.BinaryOperatorStrictNotEqual:
			operator = jsast.BinaryOperatorNotEqual
		}
	}

	var result jsast.Expression = jsast.NewBinary(operator, left, right)
	if expression.IsLifted() {
		result = c.Config.RuntimeLibrary.Lift(result)
	}

	return Result{
		Prelude:    prelude,
		Expression: result,
	}
}

// compileShortCircuit compiles `&&`, `||` and `??`.
// If the right operand has a prelude, the prelude must only be executed
// if the right operand is evaluated, so the operation is compiled to an if statement.
func (c *Compiler) compileShortCircuit(expression *ast.BinaryExpression) Result {
	left := c.compileExpression(expression.Left)
	right := c.compileExpression(expression.Right)

	prelude := left.Prelude

	if !right.HasPrelude() {
		var result jsast.Expression
		switch expression.Operation {
		case ast.OperationAnd, ast.OperationOr:
			result = jsast.NewBinary(
				binaryOperator(expression.Operation),
				left.Expression,
				right.Expression,
			)

		case ast.OperationNullCoalesce:
			value := left.Expression
			if !c.isReusable(value) {
				value = c.capture(value, &prelude)
			}
			result = &jsast.Conditional{
				Test: jsast.NewBinary(jsast.BinaryOperatorNotEqual, value, &jsast.Null{}),
				Then: value,
				Else: right.Expression,
			}

		default:
			panic(errors.NewUnreachableError())
		}

		return Result{
			Prelude:    prelude,
			Expression: result,
		}
	}

	temporary := c.capture(left.Expression, &prelude)

	var test jsast.Expression
	switch expression.Operation {
	case ast.OperationAnd:
		test = temporary
	case ast.OperationOr:
		test = &jsast.Unary{
			Operator: jsast.UnaryOperatorLogicalNot,
			Operand:  temporary,
		}
	case ast.OperationNullCoalesce:
		test = jsast.NewBinary(jsast.BinaryOperatorEqual, temporary, &jsast.Null{})
	default:
		panic(errors.NewUnreachableError())
	}

	prelude = append(
		prelude,
		&jsast.If{
			Test: test,
			Then: assignResult(temporary, right),
		},
	)

	return Result{
		Prelude:    prelude,
		Expression: temporary,
	}
}

// assignResult returns a block which executes the prelude of the result,
// and assigns the expression to the given temporary
func assignResult(temporary *jsast.Identifier, result Result) *jsast.Block {
	statements := make([]jsast.Statement, 0, len(result.Prelude)+1)
	statements = append(statements, result.Prelude...)
	statements = append(
		statements,
		jsast.NewExpressionStatement(
			jsast.NewAssignment(temporary, result.Expression),
		),
	)
	return jsast.NewBlock(statements...)
}

func (c *Compiler) VisitConditionalExpression(expression *ast.ConditionalExpression) Result {
	test := c.compileExpression(expression.Test)
	then := c.compileExpression(expression.Then)
	otherwise := c.compileExpression(expression.Else)

	prelude := test.Prelude

	if !then.HasPrelude() && !otherwise.HasPrelude() {
		return Result{
			Prelude: prelude,
			Expression: &jsast.Conditional{
				Test: test.Expression,
				Then: then.Expression,
				Else: otherwise.Expression,
			},
		}
	}

	name := c.context.AllocateTemporary()
	temporary := jsast.NewIdentifier(name)

	prelude = append(
		prelude,
		jsast.NewVariableDeclaration(name, nil),
		&jsast.If{
			Test: test.Expression,
			Then: assignResult(temporary, then),
			Else: assignResult(temporary, otherwise),
		},
	)

	return Result{
		Prelude:    prelude,
		Expression: temporary,
	}
}

func (c *Compiler) VisitCastExpression(expression *ast.CastExpression) Result {
	result := c.compileExpression(expression.Expression)

	sourceType := expression.Expression.ResultType()
	targetType := expression.Type

	switch {
	case sourceType.ID() == targetType.ID():
		return result

	case sema.IsSubType(sourceType, targetType):
		return Result{
			Prelude:    result.Prelude,
			Expression: c.Config.RuntimeLibrary.Upcast(result.Expression, sourceType, targetType),
		}

	default:
		return Result{
			Prelude: result.Prelude,
			Expression: c.Config.RuntimeLibrary.Cast(
				result.Expression,
				targetType,
				c.typeReference(targetType),
			),
		}
	}
}

func (c *Compiler) VisitArrayCreationExpression(expression *ast.ArrayCreationExpression) Result {
	prelude, elements := c.compileInOrder(expression.Elements)
	return Result{
		Prelude: prelude,
		Expression: &jsast.ArrayLiteral{
			Elements: elements,
		},
	}
}

func (c *Compiler) VisitDelegateInvocationExpression(expression *ast.DelegateInvocationExpression) Result {
	expressions := make([]ast.Expression, 0, len(expression.Arguments)+1)
	expressions = append(expressions, expression.Delegate)
	expressions = append(expressions, expression.Arguments...)

	prelude, operands := c.compileInOrder(expressions)

	return Result{
		Prelude:    prelude,
		Expression: jsast.NewInvocation(operands[0], operands[1:]...),
	}
}
