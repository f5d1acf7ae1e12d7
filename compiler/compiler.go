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
	"github.com/bits-and-blooms/bitset"

	"github.com/onflow/scriptc/ast"
	"github.com/onflow/scriptc/common"
	"github.com/onflow/scriptc/errors"
	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/sema"
	"github.com/onflow/scriptc/semantics"
)

// byRefMember is the member of the box of a variable passed by reference
const byRefMember = "$"

// Compiler lowers the expressions and statements of one unit.
type Compiler struct {
	Config   *Config
	Location common.Location

	context *Context
	// receiver is `this`, or the alias of the receiver
	// of static functions and static factories
	receiver jsast.Expression
}

var _ ast.ExpressionVisitor[Result] = &Compiler{}
var _ ast.StatementVisitor[[]jsast.Statement] = &Compiler{}

func NewCompiler(
	config *Config,
	location common.Location,
	context *Context,
	receiver jsast.Expression,
) *Compiler {
	if receiver == nil {
		receiver = &jsast.This{}
	}
	return &Compiler{
		Config:   config,
		Location: location,
		context:  context,
		receiver: receiver,
	}
}

// child returns a compiler for a function nested in the current unit
func (c *Compiler) child() *Compiler {
	return &Compiler{
		Config:   c.Config,
		Location: c.Location,
		context:  c.context.Child(),
		receiver: c.receiver,
	}
}

func (c *Compiler) absorb(child *Compiler) {
	c.context.Absorb(child.context)
}

func (c *Compiler) CompileExpression(expression ast.Expression) Result {
	return ast.AcceptExpression[Result](expression, c)
}

func (c *Compiler) compileExpression(expression ast.Expression) Result {
	return ast.AcceptExpression[Result](expression, c)
}

// capture assigns the given expression to a new temporary,
// and returns a reference to the temporary
func (c *Compiler) capture(expression jsast.Expression, prelude *[]jsast.Statement) *jsast.Identifier {
	name := c.context.AllocateTemporary()
	*prelude = append(
		*prelude,
		jsast.NewVariableDeclaration(name, expression),
	)
	return jsast.NewIdentifier(name)
}

// isConstant returns true if evaluating the expression has no side effects,
// and the result never changes
func isConstant(expression jsast.Expression) bool {
	switch expression.(type) {
	case *jsast.Null,
		*jsast.Number,
		*jsast.String,
		*jsast.Boolean,
		*jsast.This,
		*jsast.TypeReference,
		*jsast.Function:

		return true
	}
	return false
}

// isStable returns true if the expression can be evaluated again
// at any later point, with the same result
func (c *Compiler) isStable(expression jsast.Expression) bool {
	if isConstant(expression) || expression == c.receiver {
		return true
	}
	identifier, ok := expression.(*jsast.Identifier)
	return ok && c.context.IsTemporary(identifier.Name)
}

// isReusable returns true if the expression can be evaluated again
// as part of the same read-modify-write operation
func (c *Compiler) isReusable(expression jsast.Expression) bool {
	if c.isStable(expression) {
		return true
	}
	_, ok := expression.(*jsast.Identifier)
	return ok
}

// captureOperands captures each operand which cannot be evaluated again.
// If reuseLocals is set, local variables are not captured.
func (c *Compiler) captureOperands(
	operands []jsast.Expression,
	prelude *[]jsast.Statement,
	reuseLocals bool,
) {
	for i, operand := range operands {
		if c.isStable(operand) {
			continue
		}
		if reuseLocals && c.isReusable(operand) {
			continue
		}
		operands[i] = c.capture(operand, prelude)
	}
}

// compileInOrder compiles the given expressions, which are evaluated in order.
// An expression is captured if the prelude of a later expression
// must be executed after it is evaluated.
func (c *Compiler) compileInOrder(expressions []ast.Expression) ([]jsast.Statement, []jsast.Expression) {
	return c.compileInOrderWith(
		expressions,
		func(_ int, expression ast.Expression) Result {
			return c.compileExpression(expression)
		},
	)
}

func (c *Compiler) compileInOrderWith(
	expressions []ast.Expression,
	compile func(index int, expression ast.Expression) Result,
) ([]jsast.Statement, []jsast.Expression) {

	count := len(expressions)
	results := make([]Result, count)
	hasPrelude := bitset.New(uint(count))

	for i, expression := range expressions {
		result := compile(i, expression)
		results[i] = result
		if result.HasPrelude() {
			hasPrelude.Set(uint(i))
		}
	}

	var prelude []jsast.Statement
	compiled := make([]jsast.Expression, count)

	for i, result := range results {
		prelude = append(prelude, result.Prelude...)

		expression := result.Expression
		if _, later := hasPrelude.NextSet(uint(i + 1)); later && !c.isStable(expression) {
			expression = c.capture(expression, &prelude)
		}
		compiled[i] = expression
	}

	return prelude, compiled
}

// typeReference returns a reference to the runtime representation of the given type
func (c *Compiler) typeReference(t sema.Type) jsast.Expression {
	switch t := t.(type) {
	case *sema.CompositeType:
		switch typeSemantics := c.Config.Resolver.TypeSemantics(t).(type) {
		case semantics.NormalType:
			return &jsast.TypeReference{Name: typeSemantics.Name}
		default:
			panic(&UnresolvedSemanticsError{
				Kind:   "type",
				Symbol: t.Identifier,
			})
		}

	case *sema.TypeParameter:
		return jsast.NewIdentifier(c.Config.Naming.TypeParameterName(t.Name))

	default:
		return c.Config.RuntimeLibrary.TypeOf(t)
	}
}

func (c *Compiler) typeReferences(types []sema.Type) []jsast.Expression {
	references := make([]jsast.Expression, 0, len(types))
	for _, t := range types {
		references = append(references, c.typeReference(t))
	}
	return references
}

// memberSemantics returns the semantics of the given member.
// Unusable members are rejected.
func (c *Compiler) memberSemantics(member sema.Member, hasPosition ast.HasPosition) semantics.SymbolSemantics {
	memberSemantics := c.Config.Resolver.MemberSemantics(member)
	if _, ok := memberSemantics.(semantics.Unusable); ok {
		panic(&UnresolvedSemanticsError{
			Kind:   member.MemberKind().Name(),
			Symbol: sema.QualifiedName(member),
			Range:  ast.NewRangeFromPositioned(hasPosition),
		})
	}
	return memberSemantics
}

func (c *Compiler) constructorSemantics(
	constructor *sema.Constructor,
	hasPosition ast.HasPosition,
) semantics.ConstructorSemantics {
	constructorSemantics := c.Config.Resolver.ConstructorSemantics(constructor)
	if _, ok := constructorSemantics.(semantics.UnusableConstructor); ok {
		panic(&UnresolvedSemanticsError{
			Kind:   common.MemberKindConstructor.Name(),
			Symbol: sema.QualifiedName(constructor),
			Range:  ast.NewRangeFromPositioned(hasPosition),
		})
	}
	return constructorSemantics
}

func (c *Compiler) unsupportedSemantics(
	member sema.Member,
	hasPosition ast.HasPosition,
) *UnsupportedShapeError {
	return &UnsupportedShapeError{
		Construct: "use of " + member.MemberKind().Name() + " " + sema.QualifiedName(member),
		Reason:    "the representation does not apply to this use",
		Range:     ast.NewRangeFromPositioned(hasPosition),
	}
}

// expandTemplate expands the template of a member.
// Bindings for holes which are used more than once are captured,
// so they are evaluated exactly once.
func (c *Compiler) expandTemplate(
	template *semantics.Template,
	bindings map[string]jsast.Expression,
	member sema.Member,
	hasPosition ast.HasPosition,
	prelude *[]jsast.Statement,
) jsast.Expression {

	for _, hole := range template.Holes() {
		binding, ok := bindings[hole]
		if !ok || c.isStable(binding) {
			continue
		}
		if template.HoleCount(hole) > 1 {
			bindings[hole] = c.capture(binding, prelude)
		}
	}

	code, err := template.Expand(bindings)
	if err != nil {
		panic(&UnresolvedSemanticsError{
			Kind:   member.MemberKind().Name(),
			Symbol: sema.QualifiedName(member),
			Cause:  err,
			Range:  ast.NewRangeFromPositioned(hasPosition),
		})
	}
	return code
}

// compileReceiver compiles the receiver of a member access:
// the type for static members, the target for instance members.
// An instance member without a target is accessed on the current receiver.
func (c *Compiler) compileReceiver(target ast.Expression, member sema.Member) Result {
	switch {
	case member.IsStatic():
		return expressionResult(c.typeReference(member.MemberDeclaringType()))
	case target == nil:
		return expressionResult(c.receiver)
	default:
		return c.compileExpression(target)
	}
}

// compileMemberOperands compiles the receiver of a member access,
// followed by the given operands, in evaluation order
func (c *Compiler) compileMemberOperands(
	target ast.Expression,
	member sema.Member,
	operands []ast.Expression,
	compileOperand func(index int, expression ast.Expression) Result,
) (prelude []jsast.Statement, receiver jsast.Expression, compiled []jsast.Expression) {

	targetOperands := receiverOperands(target, member)
	targetCount := len(targetOperands)

	expressions := make([]ast.Expression, 0, targetCount+len(operands))
	expressions = append(expressions, targetOperands...)
	expressions = append(expressions, operands...)

	prelude, compiled = c.compileInOrderWith(
		expressions,
		func(index int, expression ast.Expression) Result {
			if index < targetCount {
				return c.compileExpression(expression)
			}
			return compileOperand(index-targetCount, expression)
		},
	)

	if targetCount > 0 {
		return prelude, compiled[0], compiled[1:]
	}
	return prelude, c.compileReceiver(target, member).Expression, compiled
}

// receiverOperands returns the expressions evaluated to get the receiver of a member access
func receiverOperands(target ast.Expression, member sema.Member) []ast.Expression {
	if target == nil || member.IsStatic() {
		return nil
	}
	return []ast.Expression{target}
}

func (c *Compiler) unexpected(message string, arguments ...any) errors.UnexpectedError {
	return errors.NewUnexpectedError(message, arguments...)
}
