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

type assignableKind uint8

const (
	assignableNative assignableKind = iota
	assignableAccessors
	assignableEvent
)

// assignable is the target of an assignment, compound assignment,
// increment or decrement.
//
// The operands (receiver and indices) are compiled by the caller,
// which decides whether they must be captured before they are used more than once.
type assignable struct {
	kind     assignableKind
	operands []ast.Expression

	// native returns the native target, e.g. a member or an index
	native func(operands []jsast.Expression) jsast.Expression

	get    func(operands []jsast.Expression, prelude *[]jsast.Statement) jsast.Expression
	set    func(operands []jsast.Expression, value jsast.Expression, prelude *[]jsast.Statement) jsast.Expression
	add    func(operands []jsast.Expression, value jsast.Expression, prelude *[]jsast.Statement) jsast.Expression
	remove func(operands []jsast.Expression, value jsast.Expression, prelude *[]jsast.Statement) jsast.Expression
}

func (a assignable) read(operands []jsast.Expression, prelude *[]jsast.Statement) jsast.Expression {
	if a.kind == assignableNative {
		return a.native(operands)
	}
	return a.get(operands, prelude)
}

// write returns the expression which stores the value
func (a assignable) write(
	operands []jsast.Expression,
	value jsast.Expression,
	prelude *[]jsast.Statement,
) jsast.Expression {
	if a.kind == assignableNative {
		return jsast.NewAssignment(a.native(operands), value)
	}
	return a.set(operands, value, prelude)
}

func (c *Compiler) planAssignable(target ast.Expression, hasPosition ast.HasPosition) assignable {
	switch target := target.(type) {
	case *ast.VariableExpression:
		return assignable{
			kind: assignableNative,
			native: func(_ []jsast.Expression) jsast.Expression {
				return c.compileExpression(target).Expression
			},
		}

	case *ast.DynamicMemberExpression:
		return assignable{
			kind:     assignableNative,
			operands: []ast.Expression{target.Target},
			native: func(operands []jsast.Expression) jsast.Expression {
				return jsast.NewMember(operands[0], target.Name)
			},
		}

	case *ast.IndexExpression:
		if target.Indexer == nil {
			c.checkNativeIndexing(target)
			return assignable{
				kind:     assignableNative,
				operands: []ast.Expression{target.Target, target.Indices[0]},
				native: func(operands []jsast.Expression) jsast.Expression {
					return c.nativeIndex(target, operands[0], operands[1])
				},
			}
		}
		return c.planIndexerAssignable(target)

	case *ast.MemberExpression:
		return c.planMemberAssignable(target)
	}

	panic(&UnsupportedShapeError{
		Construct: "assignment",
		Reason:    "the target is not assignable",
		Range:     ast.NewRangeFromPositioned(hasPosition),
	})
}

func (c *Compiler) planIndexerAssignable(target *ast.IndexExpression) assignable {
	indexer := target.Indexer

	operands := make([]ast.Expression, 0, len(target.Indices)+1)
	operands = append(operands, target.Target)
	operands = append(operands, target.Indices...)

	switch indexerSemantics := c.memberSemantics(indexer, target).(type) {
	case semantics.NativeIndexer:
		if len(target.Indices) != 1 {
			panic(newDimensionError("native indexer access", len(target.Indices), target))
		}
		return assignable{
			kind:     assignableNative,
			operands: operands,
			native: func(operands []jsast.Expression) jsast.Expression {
				return &jsast.Index{
					Target: operands[0],
					Index:  operands[1],
				}
			},
		}

	case semantics.PropertyAccessors:
		return c.accessorsAssignable(
			indexerSemantics,
			indexer,
			target,
			operands,
			func(operands []jsast.Expression) (jsast.Expression, []jsast.Expression) {
				return operands[0], operands[1:]
			},
		)
	}

	panic(c.unsupportedSemantics(indexer, target))
}

func (c *Compiler) planMemberAssignable(target *ast.MemberExpression) assignable {
	member := target.Member
	operands := receiverOperands(target.Target, member)

	receiver := func(operands []jsast.Expression) jsast.Expression {
		if len(operands) > 0 {
			return operands[0]
		}
		return c.compileReceiver(target.Target, member).Expression
	}

	switch memberSemantics := c.memberSemantics(member, target).(type) {
	case semantics.FieldAccess:
		return assignable{
			kind:     assignableNative,
			operands: operands,
			native: func(operands []jsast.Expression) jsast.Expression {
				return jsast.NewMember(receiver(operands), memberSemantics.Name)
			},
		}

	case semantics.PropertyAccessors:
		return c.accessorsAssignable(
			memberSemantics,
			member,
			target,
			operands,
			func(operands []jsast.Expression) (jsast.Expression, []jsast.Expression) {
				return receiver(operands), nil
			},
		)

	case semantics.EventAccessors:
		accessor := func(accessor semantics.SymbolSemantics) func(
			operands []jsast.Expression,
			value jsast.Expression,
			prelude *[]jsast.Statement,
		) jsast.Expression {
			return func(
				operands []jsast.Expression,
				value jsast.Expression,
				prelude *[]jsast.Statement,
			) jsast.Expression {
				return c.accessorCall(accessor, member, receiver(operands), nil, value, target, prelude)
			}
		}
		return assignable{
			kind:     assignableEvent,
			operands: operands,
			add:      accessor(memberSemantics.Add),
			remove:   accessor(memberSemantics.Remove),
		}
	}

	panic(c.unsupportedSemantics(member, target))
}

// accessorsAssignable returns the assignable for a property or indexer with accessors.
// split separates the compiled operands into the receiver and the indices.
func (c *Compiler) accessorsAssignable(
	accessors semantics.PropertyAccessors,
	member sema.Member,
	hasPosition ast.HasPosition,
	operands []ast.Expression,
	split func(operands []jsast.Expression) (jsast.Expression, []jsast.Expression),
) assignable {

	return assignable{
		kind:     assignableAccessors,
		operands: operands,
		get: func(operands []jsast.Expression, prelude *[]jsast.Statement) jsast.Expression {
			if accessors.Get == nil {
				panic(&UnsupportedShapeError{
					Construct: "read of " + sema.QualifiedName(member),
					Reason:    "the " + member.MemberKind().Name() + " has no getter",
					Range:     ast.NewRangeFromPositioned(hasPosition),
				})
			}
			receiver, indices := split(operands)
			return c.accessorCall(accessors.Get, member, receiver, indices, nil, hasPosition, prelude)
		},
		set: func(
			operands []jsast.Expression,
			value jsast.Expression,
			prelude *[]jsast.Statement,
		) jsast.Expression {
			if accessors.Set == nil {
				panic(&UnsupportedShapeError{
					Construct: "assignment to " + sema.QualifiedName(member),
					Reason:    "the " + member.MemberKind().Name() + " has no setter",
					Range:     ast.NewRangeFromPositioned(hasPosition),
				})
			}
			receiver, indices := split(operands)
			return c.accessorCall(accessors.Set, member, receiver, indices, value, hasPosition, prelude)
		},
	}
}

func (c *Compiler) VisitAssignmentExpression(expression *ast.AssignmentExpression) Result {
	return c.compileAssignment(expression, true)
}

// compileAssignment compiles a simple or compound assignment.
// If valueUsed is false, the result of the assignment is discarded,
// which allows accessor calls to be emitted without capturing the value.
func (c *Compiler) compileAssignment(expression *ast.AssignmentExpression, valueUsed bool) Result {
	target := c.planAssignable(expression.Target, expression)

	if target.kind == assignableEvent {
		return c.compileEventAssignment(expression, target)
	}

	if !expression.IsCompound() {
		return c.compileSimpleAssignment(expression, target, valueUsed)
	}

	return c.compileCompoundAssignment(expression, target, valueUsed)
}

func (c *Compiler) compileSimpleAssignment(
	expression *ast.AssignmentExpression,
	target assignable,
	valueUsed bool,
) Result {
	operandCount := len(target.operands)

	expressions := make([]ast.Expression, 0, operandCount+1)
	expressions = append(expressions, target.operands...)
	expressions = append(expressions, expression.Value)

	prelude, compiled := c.compileInOrder(expressions)
	operands, value := compiled[:operandCount], compiled[operandCount]

	if target.kind == assignableNative || !valueUsed {
		return Result{
			Prelude:    prelude,
			Expression: target.write(operands, value, &prelude),
		}
	}

	c.captureOperands(operands, &prelude, false)
	temporary := value
	if !c.isStable(value) {
		temporary = c.capture(value, &prelude)
	}
	prelude = append(
		prelude,
		jsast.NewExpressionStatement(target.write(operands, temporary, &prelude)),
	)

	return Result{
		Prelude:    prelude,
		Expression: temporary,
	}
}

func (c *Compiler) compileEventAssignment(expression *ast.AssignmentExpression, target assignable) Result {
	var accessor func([]jsast.Expression, jsast.Expression, *[]jsast.Statement) jsast.Expression
	switch expression.Operation {
	case ast.OperationPlus:
		accessor = target.add
	case ast.OperationMinus:
		accessor = target.remove
	default:
		panic(&UnsupportedShapeError{
			Construct: "assignment to event",
			Reason:    "only subscription with += and unsubscription with -= are supported",
			Range:     ast.NewRangeFromPositioned(expression),
		})
	}

	operandCount := len(target.operands)

	expressions := make([]ast.Expression, 0, operandCount+1)
	expressions = append(expressions, target.operands...)
	expressions = append(expressions, expression.Value)

	prelude, compiled := c.compileInOrder(expressions)

	result := accessor(compiled[:operandCount], compiled[operandCount], &prelude)

	return Result{
		Prelude:    prelude,
		Expression: result,
	}
}

// isLiftedAssignment returns true if the arithmetic of a compound assignment
// operates on nullable values
func isLiftedAssignment(expression *ast.AssignmentExpression) bool {
	return expression.Operation.IsLiftable() &&
		(sema.IsNullable(expression.Target.ResultType()) ||
			sema.IsNullable(expression.Value.ResultType()))
}

func (c *Compiler) compileCompoundAssignment(
	expression *ast.AssignmentExpression,
	target assignable,
	valueUsed bool,
) Result {

	switch expression.Operation {
	case ast.OperationNullCoalesce, ast.OperationAnd, ast.OperationOr:
		panic(&UnsupportedShapeError{
			Construct: "compound assignment with " + expression.Operation.Symbol(),
			Reason:    "the right operand is evaluated conditionally",
			Range:     ast.NewRangeFromPositioned(expression),
		})
	}

	isDelegate := sema.IsDelegate(expression.Target.ResultType())
	isLifted := isLiftedAssignment(expression)

	if target.kind == assignableNative && !isDelegate && !isLifted {
		operator, ok := binaryOperator(expression.Operation).CompoundAssignment()
		if ok {
			operandCount := len(target.operands)

			expressions := make([]ast.Expression, 0, operandCount+1)
			expressions = append(expressions, target.operands...)
			expressions = append(expressions, expression.Value)

			prelude, compiled := c.compileInOrder(expressions)

			return Result{
				Prelude: prelude,
				Expression: jsast.NewBinary(
					operator,
					target.native(compiled[:operandCount]),
					compiled[operandCount],
				),
			}
		}
	}

	prelude, operands := c.compileInOrder(target.operands)
	value := c.compileExpression(expression.Value)

	// The target is read before the value is evaluated,
	// so the prelude of the value must run after the read
	c.captureOperands(operands, &prelude, !value.HasPrelude())
	current := target.read(operands, &prelude)
	if value.HasPrelude() {
		current = c.capture(current, &prelude)
		prelude = append(prelude, value.Prelude...)
	}

	newValue := c.combine(expression.Operation, current, value.Expression, isDelegate, isLifted)

	if target.kind == assignableNative || !valueUsed {
		return Result{
			Prelude:    prelude,
			Expression: target.write(operands, newValue, &prelude),
		}
	}

	temporary := c.capture(newValue, &prelude)
	prelude = append(
		prelude,
		jsast.NewExpressionStatement(target.write(operands, temporary, &prelude)),
	)

	return Result{
		Prelude:    prelude,
		Expression: temporary,
	}
}

// combine returns the new value of a read-modify-write operation
func (c *Compiler) combine(
	operation ast.Operation,
	current jsast.Expression,
	operand jsast.Expression,
	isDelegate bool,
	isLifted bool,
) jsast.Expression {

	if isDelegate {
		switch operation {
		case ast.OperationPlus:
			return c.Config.RuntimeLibrary.CombineDelegates(current, operand)
		case ast.OperationMinus:
			return c.Config.RuntimeLibrary.RemoveDelegate(current, operand)
		}
	}

	var result jsast.Expression = jsast.NewBinary(
		binaryOperator(operation),
		current,
		operand,
	)
	if isLifted {
		result = c.Config.RuntimeLibrary.Lift(result)
	}
	return result
}

func incrementOperator(operation ast.Operation) jsast.UnaryOperator {
	switch operation {
	case ast.OperationPreIncrement:
		return jsast.UnaryOperatorPrefixIncrement
	case ast.OperationPreDecrement:
		return jsast.UnaryOperatorPrefixDecrement
	case ast.OperationPostIncrement:
		return jsast.UnaryOperatorPostfixIncrement
	default:
		return jsast.UnaryOperatorPostfixDecrement
	}
}

// compileIncrementOrDecrement compiles a prefix or postfix increment or decrement.
// If valueUsed is false, the result is discarded, so a postfix operation
// need not preserve the old value.
func (c *Compiler) compileIncrementOrDecrement(expression *ast.UnaryExpression, valueUsed bool) Result {
	operation := expression.Operation
	target := c.planAssignable(expression.Operand, expression)

	if target.kind == assignableEvent {
		panic(&UnsupportedShapeError{
			Construct: "increment of event",
			Reason:    "events can only be subscribed to and unsubscribed from",
			Range:     ast.NewRangeFromPositioned(expression),
		})
	}

	isLifted := sema.IsNullable(expression.Operand.ResultType())

	prelude, operands := c.compileInOrder(target.operands)

	if target.kind == assignableNative && !isLifted {
		return Result{
			Prelude: prelude,
			Expression: &jsast.Unary{
				Operator: incrementOperator(operation),
				Operand:  target.native(operands),
			},
		}
	}

	binaryOperation := ast.OperationMinus
	if operation.IsIncrement() {
		binaryOperation = ast.OperationPlus
	}
	one := &jsast.Number{Value: 1}

	c.captureOperands(operands, &prelude, true)
	current := target.read(operands, &prelude)

	if operation.IsPostfix() && valueUsed {
		oldValue := c.capture(current, &prelude)
		newValue := c.combine(binaryOperation, oldValue, one, false, isLifted)
		prelude = append(
			prelude,
			jsast.NewExpressionStatement(target.write(operands, newValue, &prelude)),
		)
		return Result{
			Prelude:    prelude,
			Expression: oldValue,
		}
	}

	newValue := c.combine(binaryOperation, current, one, false, isLifted)

	if target.kind == assignableNative || !valueUsed {
		return Result{
			Prelude:    prelude,
			Expression: target.write(operands, newValue, &prelude),
		}
	}

	temporary := c.capture(newValue, &prelude)
	prelude = append(
		prelude,
		jsast.NewExpressionStatement(target.write(operands, temporary, &prelude)),
	)

	return Result{
		Prelude:    prelude,
		Expression: temporary,
	}
}
