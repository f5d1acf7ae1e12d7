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

package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/onflow/scriptc/sema"
)

type Element interface {
	HasPosition
	ElementType() ElementType
	Walk(walkChild func(Element))
}

// Expression is a resolved source expression.
type Expression interface {
	Element
	fmt.Stringer
	isExpression()
	// ResultType returns the statically resolved type of the expression
	ResultType() sema.Type
}

func walkExpressions(walkChild func(Element), expressions []Expression) {
	for _, expression := range expressions {
		if expression != nil {
			walkChild(expression)
		}
	}
}

func joinExpressions(expressions []Expression) string {
	var sb strings.Builder
	for i, expression := range expressions {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(expression.String())
	}
	return sb.String()
}

// ConstantExpression is a literal, or a constant folded by the front end.
// Value is nil, a bool, an int64, a float64, or a string.
type ConstantExpression struct {
	Value any
	Type  sema.Type
	Range
}

var _ Expression = &ConstantExpression{}

func (*ConstantExpression) isExpression() {}

func (*ConstantExpression) ElementType() ElementType {
	return ElementTypeConstantExpression
}

func (*ConstantExpression) Walk(_ func(Element)) {}

func (e *ConstantExpression) ResultType() sema.Type {
	return e.Type
}

func (e *ConstantExpression) String() string {
	switch value := e.Value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(value)
	default:
		return fmt.Sprint(value)
	}
}

// ThisExpression

type ThisExpression struct {
	Type sema.Type
	Range
}

var _ Expression = &ThisExpression{}

func (*ThisExpression) isExpression() {}

func (*ThisExpression) ElementType() ElementType {
	return ElementTypeThisExpression
}

func (*ThisExpression) Walk(_ func(Element)) {}

func (e *ThisExpression) ResultType() sema.Type {
	return e.Type
}

func (*ThisExpression) String() string {
	return "this"
}

// VariableExpression is a reference to a local variable or parameter.
type VariableExpression struct {
	Variable *sema.Variable
	Range
}

var _ Expression = &VariableExpression{}

func (*VariableExpression) isExpression() {}

func (*VariableExpression) ElementType() ElementType {
	return ElementTypeVariableExpression
}

func (*VariableExpression) Walk(_ func(Element)) {}

func (e *VariableExpression) ResultType() sema.Type {
	return e.Variable.Type
}

func (e *VariableExpression) String() string {
	return e.Variable.Identifier
}

// RangeVariableExpression is a reference to a query range variable.
type RangeVariableExpression struct {
	Variable *sema.RangeVariable
	Range
}

var _ Expression = &RangeVariableExpression{}

func (*RangeVariableExpression) isExpression() {}

func (*RangeVariableExpression) ElementType() ElementType {
	return ElementTypeRangeVariableExpression
}

func (*RangeVariableExpression) Walk(_ func(Element)) {}

func (e *RangeVariableExpression) ResultType() sema.Type {
	return e.Variable.Type
}

func (e *RangeVariableExpression) String() string {
	return e.Variable.Identifier
}

// MemberExpression is an access to a field, property or event.
// Target is nil for static members.
type MemberExpression struct {
	Target Expression
	Member sema.Member
	Range
}

var _ Expression = &MemberExpression{}

func (*MemberExpression) isExpression() {}

func (*MemberExpression) ElementType() ElementType {
	return ElementTypeMemberExpression
}

func (e *MemberExpression) Walk(walkChild func(Element)) {
	if e.Target != nil {
		walkChild(e.Target)
	}
}

func (e *MemberExpression) ResultType() sema.Type {
	switch member := e.Member.(type) {
	case *sema.Field:
		return member.Type
	case *sema.Property:
		return member.Type
	case *sema.Event:
		return member.Type
	case *sema.Method:
		return member.ReturnType
	}
	return nil
}

func (e *MemberExpression) String() string {
	if e.Target == nil {
		return e.Member.MemberDeclaringType().Identifier + "." + e.Member.MemberName()
	}
	return e.Target.String() + "." + e.Member.MemberName()
}

// DynamicMemberExpression is a member access on a dynamically typed target.
type DynamicMemberExpression struct {
	Target Expression
	Name   string
	Range
}

var _ Expression = &DynamicMemberExpression{}

func (*DynamicMemberExpression) isExpression() {}

func (*DynamicMemberExpression) ElementType() ElementType {
	return ElementTypeDynamicMemberExpression
}

func (e *DynamicMemberExpression) Walk(walkChild func(Element)) {
	walkChild(e.Target)
}

func (*DynamicMemberExpression) ResultType() sema.Type {
	return sema.TheDynamicType
}

func (e *DynamicMemberExpression) String() string {
	return e.Target.String() + "." + e.Name
}

// IndexExpression is an array element access, an indexer access,
// or an index access on a dynamically typed target.
// Indexer is set only for indexer accesses.
type IndexExpression struct {
	Target  Expression
	Indices []Expression
	Indexer *sema.Property
	Type    sema.Type
	Range
}

var _ Expression = &IndexExpression{}

func (*IndexExpression) isExpression() {}

func (*IndexExpression) ElementType() ElementType {
	return ElementTypeIndexExpression
}

func (e *IndexExpression) Walk(walkChild func(Element)) {
	walkChild(e.Target)
	walkExpressions(walkChild, e.Indices)
}

func (e *IndexExpression) ResultType() sema.Type {
	return e.Type
}

func (e *IndexExpression) String() string {
	return e.Target.String() + "[" + joinExpressions(e.Indices) + "]"
}

// InvocationExpression is a method call.
// Target is the receiver, and nil for static methods.
type InvocationExpression struct {
	Target        Expression
	Method        *sema.Method
	Arguments     []Expression
	TypeArguments []sema.Type
	Type          sema.Type
	Range
}

var _ Expression = &InvocationExpression{}

func (*InvocationExpression) isExpression() {}

func (*InvocationExpression) ElementType() ElementType {
	return ElementTypeInvocationExpression
}

func (e *InvocationExpression) Walk(walkChild func(Element)) {
	if e.Target != nil {
		walkChild(e.Target)
	}
	walkExpressions(walkChild, e.Arguments)
}

func (e *InvocationExpression) ResultType() sema.Type {
	return e.Type
}

func (e *InvocationExpression) String() string {
	var target string
	if e.Target == nil {
		target = e.Method.DeclaringType.Identifier
	} else {
		target = e.Target.String()
	}
	return target + "." + e.Method.Identifier + "(" + joinExpressions(e.Arguments) + ")"
}

// DelegateInvocationExpression is a call of a function value.
type DelegateInvocationExpression struct {
	Delegate  Expression
	Arguments []Expression
	Type      sema.Type
	Range
}

var _ Expression = &DelegateInvocationExpression{}

func (*DelegateInvocationExpression) isExpression() {}

func (*DelegateInvocationExpression) ElementType() ElementType {
	return ElementTypeDelegateInvocationExpression
}

func (e *DelegateInvocationExpression) Walk(walkChild func(Element)) {
	walkChild(e.Delegate)
	walkExpressions(walkChild, e.Arguments)
}

func (e *DelegateInvocationExpression) ResultType() sema.Type {
	return e.Type
}

func (e *DelegateInvocationExpression) String() string {
	return e.Delegate.String() + "(" + joinExpressions(e.Arguments) + ")"
}

// ObjectCreationExpression

type ObjectCreationExpression struct {
	Constructor *sema.Constructor
	Arguments   []Expression
	Range
}

var _ Expression = &ObjectCreationExpression{}

func (*ObjectCreationExpression) isExpression() {}

func (*ObjectCreationExpression) ElementType() ElementType {
	return ElementTypeObjectCreationExpression
}

func (e *ObjectCreationExpression) Walk(walkChild func(Element)) {
	walkExpressions(walkChild, e.Arguments)
}

func (e *ObjectCreationExpression) ResultType() sema.Type {
	return e.Constructor.DeclaringType
}

func (e *ObjectCreationExpression) String() string {
	return "new " + e.Constructor.DeclaringType.Identifier + "(" + joinExpressions(e.Arguments) + ")"
}

// UnaryExpression, including prefix and postfix increment and decrement

type UnaryExpression struct {
	Operation Operation
	Operand   Expression
	Type      sema.Type
	Range
}

var _ Expression = &UnaryExpression{}

func (*UnaryExpression) isExpression() {}

func (*UnaryExpression) ElementType() ElementType {
	return ElementTypeUnaryExpression
}

func (e *UnaryExpression) Walk(walkChild func(Element)) {
	walkChild(e.Operand)
}

func (e *UnaryExpression) ResultType() sema.Type {
	return e.Type
}

func (e *UnaryExpression) String() string {
	if e.Operation.IsPostfix() {
		return e.Operand.String() + e.Operation.Symbol()
	}
	return e.Operation.Symbol() + e.Operand.String()
}

// BinaryExpression

type BinaryExpression struct {
	Operation Operation
	Left      Expression
	Right     Expression
	Type      sema.Type
	Range
}

var _ Expression = &BinaryExpression{}

func (*BinaryExpression) isExpression() {}

func (*BinaryExpression) ElementType() ElementType {
	return ElementTypeBinaryExpression
}

func (e *BinaryExpression) Walk(walkChild func(Element)) {
	walkChild(e.Left)
	walkChild(e.Right)
}

func (e *BinaryExpression) ResultType() sema.Type {
	return e.Type
}

func (e *BinaryExpression) String() string {
	return fmt.Sprintf(
		"(%s %s %s)",
		e.Left, e.Operation.Symbol(), e.Right,
	)
}

// IsLifted returns true if the operation applies to a nullable operand.
func (e *BinaryExpression) IsLifted() bool {
	return e.Operation.IsLiftable() &&
		(sema.IsNullable(e.Left.ResultType()) ||
			sema.IsNullable(e.Right.ResultType()))
}

// AssignmentExpression is a simple assignment if Operation is OperationUnknown,
// and a compound assignment (e.g. +=) otherwise.
type AssignmentExpression struct {
	Operation Operation
	Target    Expression
	Value     Expression
	Range
}

var _ Expression = &AssignmentExpression{}

func (*AssignmentExpression) isExpression() {}

func (*AssignmentExpression) ElementType() ElementType {
	return ElementTypeAssignmentExpression
}

func (e *AssignmentExpression) Walk(walkChild func(Element)) {
	walkChild(e.Target)
	walkChild(e.Value)
}

func (e *AssignmentExpression) ResultType() sema.Type {
	return e.Target.ResultType()
}

func (e *AssignmentExpression) IsCompound() bool {
	return e.Operation != OperationUnknown
}

func (e *AssignmentExpression) String() string {
	return fmt.Sprintf(
		"%s %s= %s",
		e.Target, e.Operation.Symbol(), e.Value,
	)
}

// ConditionalExpression

type ConditionalExpression struct {
	Test Expression
	Then Expression
	Else Expression
	Type sema.Type
	Range
}

var _ Expression = &ConditionalExpression{}

func (*ConditionalExpression) isExpression() {}

func (*ConditionalExpression) ElementType() ElementType {
	return ElementTypeConditionalExpression
}

func (e *ConditionalExpression) Walk(walkChild func(Element)) {
	walkChild(e.Test)
	walkChild(e.Then)
	walkChild(e.Else)
}

func (e *ConditionalExpression) ResultType() sema.Type {
	return e.Type
}

func (e *ConditionalExpression) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", e.Test, e.Then, e.Else)
}

// CastExpression is an explicit or implicit conversion to Type.
type CastExpression struct {
	Expression Expression
	Type       sema.Type
	Range
}

var _ Expression = &CastExpression{}

func (*CastExpression) isExpression() {}

func (*CastExpression) ElementType() ElementType {
	return ElementTypeCastExpression
}

func (e *CastExpression) Walk(walkChild func(Element)) {
	walkChild(e.Expression)
}

func (e *CastExpression) ResultType() sema.Type {
	return e.Type
}

func (e *CastExpression) String() string {
	return fmt.Sprintf("((%s)%s)", e.Type, e.Expression)
}

// LambdaExpression is a function literal with either a block body
// or an expression body. Its Type is a delegate type,
// or an expression-tree type if the lambda is converted to data.
type LambdaExpression struct {
	Parameters []*sema.Variable
	Body       *Block
	Expression Expression
	Type       sema.Type
	Range
}

var _ Expression = &LambdaExpression{}

func (*LambdaExpression) isExpression() {}

func (*LambdaExpression) ElementType() ElementType {
	return ElementTypeLambdaExpression
}

func (e *LambdaExpression) Walk(walkChild func(Element)) {
	if e.Body != nil {
		walkChild(e.Body)
	}
	if e.Expression != nil {
		walkChild(e.Expression)
	}
}

func (e *LambdaExpression) ResultType() sema.Type {
	return e.Type
}

func (e *LambdaExpression) String() string {
	names := make([]string, 0, len(e.Parameters))
	for _, parameter := range e.Parameters {
		names = append(names, parameter.Identifier)
	}
	body := "{...}"
	if e.Expression != nil {
		body = e.Expression.String()
	}
	return "(" + strings.Join(names, ", ") + ") => " + body
}

// ArrayCreationExpression is a single-dimensional array with the given elements.
type ArrayCreationExpression struct {
	ItemType sema.Type
	Elements []Expression
	Range
}

var _ Expression = &ArrayCreationExpression{}

func (*ArrayCreationExpression) isExpression() {}

func (*ArrayCreationExpression) ElementType() ElementType {
	return ElementTypeArrayCreationExpression
}

func (e *ArrayCreationExpression) Walk(walkChild func(Element)) {
	walkExpressions(walkChild, e.Elements)
}

func (e *ArrayCreationExpression) ResultType() sema.Type {
	return &sema.ArrayType{
		ElementType: e.ItemType,
		Rank:        1,
	}
}

func (e *ArrayCreationExpression) String() string {
	return "new[] { " + joinExpressions(e.Elements) + " }"
}
