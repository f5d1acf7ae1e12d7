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

package jsast

import (
	"math"
	"strconv"
	"strings"

	"github.com/turbolent/prettier"
)

// Expression is an expression of the output tree.
type Expression interface {
	Node
	isExpression()
	precedence() precedence
}

// Identifier

type Identifier struct {
	Name string
}

var _ Expression = &Identifier{}

func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

func (*Identifier) isExpression() {}

func (*Identifier) precedence() precedence {
	return precedencePrimary
}

func (e *Identifier) Doc() prettier.Doc {
	return prettier.Text(e.Name)
}

func (e *Identifier) String() string {
	return e.Name
}

// This

type This struct{}

var _ Expression = &This{}

func (*This) isExpression() {}

func (*This) precedence() precedence {
	return precedencePrimary
}

func (*This) Doc() prettier.Doc {
	return prettier.Text("this")
}

func (*This) String() string {
	return "this"
}

// Null

type Null struct{}

var _ Expression = &Null{}

func (*Null) isExpression() {}

func (*Null) precedence() precedence {
	return precedencePrimary
}

func (*Null) Doc() prettier.Doc {
	return prettier.Text("null")
}

func (*Null) String() string {
	return "null"
}

// Number

type Number struct {
	Value float64
}

var _ Expression = &Number{}

func (*Number) isExpression() {}

func (e *Number) precedence() precedence {
	if e.Value < 0 {
		return precedenceUnary
	}
	return precedencePrimary
}

func (e *Number) Doc() prettier.Doc {
	return prettier.Text(e.String())
}

func (e *Number) String() string {
	value := e.Value
	if value == math.Trunc(value) && math.Abs(value) < 1e21 {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// String

type String struct {
	Value string
}

var _ Expression = &String{}

func (*String) isExpression() {}

func (*String) precedence() precedence {
	return precedencePrimary
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func (e *String) Doc() prettier.Doc {
	return prettier.Text(e.String())
}

func (e *String) String() string {
	return "'" + stringEscaper.Replace(e.Value) + "'"
}

// Boolean

type Boolean struct {
	Value bool
}

var _ Expression = &Boolean{}

func (*Boolean) isExpression() {}

func (*Boolean) precedence() precedence {
	return precedencePrimary
}

func (e *Boolean) Doc() prettier.Doc {
	return prettier.Text(e.String())
}

func (e *Boolean) String() string {
	return strconv.FormatBool(e.Value)
}

// ArrayLiteral

type ArrayLiteral struct {
	Elements []Expression
}

var _ Expression = &ArrayLiteral{}

func (*ArrayLiteral) isExpression() {}

func (*ArrayLiteral) precedence() precedence {
	return precedencePrimary
}

func (e *ArrayLiteral) Doc() prettier.Doc {
	docs := make([]prettier.Doc, 0, len(e.Elements))
	for _, element := range e.Elements {
		docs = append(docs, wrap(element, precedenceAssignment))
	}
	return prettier.Concat{
		prettier.Text("["),
		prettier.Join(argumentSeparatorDoc, docs...),
		prettier.Text("]"),
	}
}

func (e *ArrayLiteral) String() string {
	return Render(e.Doc())
}

// ObjectLiteral

type ObjectProperty struct {
	Name  string
	Value Expression
}

type ObjectLiteral struct {
	Properties []*ObjectProperty
}

var _ Expression = &ObjectLiteral{}

func (*ObjectLiteral) isExpression() {}

func (*ObjectLiteral) precedence() precedence {
	return precedencePrimary
}

func (e *ObjectLiteral) Doc() prettier.Doc {
	if len(e.Properties) == 0 {
		return prettier.Text("{}")
	}
	docs := make([]prettier.Doc, 0, len(e.Properties))
	for _, property := range e.Properties {
		docs = append(
			docs,
			prettier.Concat{
				prettier.Text(property.Name),
				prettier.Text(": "),
				wrap(property.Value, precedenceAssignment),
			},
		)
	}
	return prettier.Concat{
		prettier.Text("{ "),
		prettier.Join(argumentSeparatorDoc, docs...),
		prettier.Text(" }"),
	}
}

func (e *ObjectLiteral) String() string {
	return Render(e.Doc())
}

// Member is a property access with a constant name, e.g. `a.b`.
type Member struct {
	Target Expression
	Name   string
}

var _ Expression = &Member{}

func NewMember(target Expression, name string) *Member {
	return &Member{
		Target: target,
		Name:   name,
	}
}

func (*Member) isExpression() {}

func (*Member) precedence() precedence {
	return precedenceMember
}

func (e *Member) Doc() prettier.Doc {
	return prettier.Concat{
		wrap(e.Target, precedenceMember),
		prettier.Text("."),
		prettier.Text(e.Name),
	}
}

func (e *Member) String() string {
	return Render(e.Doc())
}

// Index is a computed property access, e.g. `a[b]`.
type Index struct {
	Target Expression
	Index  Expression
}

var _ Expression = &Index{}

func (*Index) isExpression() {}

func (*Index) precedence() precedence {
	return precedenceMember
}

func (e *Index) Doc() prettier.Doc {
	return prettier.Concat{
		wrap(e.Target, precedenceMember),
		prettier.Text("["),
		e.Index.Doc(),
		prettier.Text("]"),
	}
}

func (e *Index) String() string {
	return Render(e.Doc())
}

// Invocation

type Invocation struct {
	Target    Expression
	Arguments []Expression
}

var _ Expression = &Invocation{}

func NewInvocation(target Expression, arguments ...Expression) *Invocation {
	return &Invocation{
		Target:    target,
		Arguments: arguments,
	}
}

func (*Invocation) isExpression() {}

func (*Invocation) precedence() precedence {
	return precedenceMember
}

func (e *Invocation) Doc() prettier.Doc {
	return prettier.Concat{
		wrap(e.Target, precedenceMember),
		argumentsDoc(e.Arguments),
	}
}

func (e *Invocation) String() string {
	return Render(e.Doc())
}

// New

type New struct {
	Constructor Expression
	Arguments   []Expression
}

var _ Expression = &New{}

func (*New) isExpression() {}

func (*New) precedence() precedence {
	return precedenceNew
}

func (e *New) Doc() prettier.Doc {
	constructorDoc := e.Constructor.Doc()
	switch e.Constructor.(type) {
	case *Identifier, *Member, *TypeReference:
	default:
		constructorDoc = prettier.Concat{
			prettier.Text("("),
			constructorDoc,
			prettier.Text(")"),
		}
	}
	return prettier.Concat{
		prettier.Text("new "),
		constructorDoc,
		argumentsDoc(e.Arguments),
	}
}

func (e *New) String() string {
	return Render(e.Doc())
}

// Unary

type Unary struct {
	Operator UnaryOperator
	Operand  Expression
}

var _ Expression = &Unary{}

func (*Unary) isExpression() {}

func (e *Unary) precedence() precedence {
	if e.Operator.IsPostfix() {
		return precedencePostfix
	}
	return precedenceUnary
}

func (e *Unary) Doc() prettier.Doc {
	if e.Operator.IsPostfix() {
		return prettier.Concat{
			wrap(e.Operand, precedencePostfix),
			prettier.Text(e.Operator.Symbol()),
		}
	}

	operandDoc := wrap(e.Operand, precedenceUnary)

	// avoid printing e.g. `- -x` as `--x`
	if operand, ok := e.Operand.(*Unary); ok &&
		!operand.Operator.IsPostfix() &&
		operand.Operator.Symbol()[0] == e.Operator.Symbol()[0] {

		operandDoc = prettier.Concat{
			prettier.Text("("),
			operandDoc,
			prettier.Text(")"),
		}
	}

	return prettier.Concat{
		prettier.Text(e.Operator.Symbol()),
		operandDoc,
	}
}

func (e *Unary) String() string {
	return Render(e.Doc())
}

// Binary, including assignments and the comma operator

type Binary struct {
	Operator BinaryOperator
	Left     Expression
	Right    Expression
}

var _ Expression = &Binary{}

func NewBinary(operator BinaryOperator, left, right Expression) *Binary {
	return &Binary{
		Operator: operator,
		Left:     left,
		Right:    right,
	}
}

func NewAssignment(target, value Expression) *Binary {
	return NewBinary(BinaryOperatorAssign, target, value)
}

func (*Binary) isExpression() {}

func (e *Binary) precedence() precedence {
	return e.Operator.precedence()
}

func (e *Binary) Doc() prettier.Doc {
	ownPrecedence := e.precedence()

	var leftDoc, rightDoc prettier.Doc

	if e.Operator.IsAssignment() {
		// right-associative
		leftDoc = wrap(e.Left, ownPrecedence+1)
		rightDoc = wrap(e.Right, ownPrecedence)
	} else {
		leftDoc = wrap(e.Left, ownPrecedence)
		rightDoc = wrap(e.Right, ownPrecedence+1)
	}

	separator := prettier.Text(" " + e.Operator.Symbol() + " ")
	if e.Operator == BinaryOperatorComma {
		separator = prettier.Text(", ")
	}

	return prettier.Concat{
		leftDoc,
		separator,
		rightDoc,
	}
}

func (e *Binary) String() string {
	return Render(e.Doc())
}

// Conditional

type Conditional struct {
	Test Expression
	Then Expression
	Else Expression
}

var _ Expression = &Conditional{}

func (*Conditional) isExpression() {}

func (*Conditional) precedence() precedence {
	return precedenceConditional
}

func (e *Conditional) Doc() prettier.Doc {
	return prettier.Concat{
		wrap(e.Test, precedenceLogicalOr),
		prettier.Text(" ? "),
		wrap(e.Then, precedenceAssignment),
		prettier.Text(" : "),
		wrap(e.Else, precedenceAssignment),
	}
}

func (e *Conditional) String() string {
	return Render(e.Doc())
}

// Function is a function literal.
type Function struct {
	Name       string
	Parameters []string
	Body       *Block
}

var _ Expression = &Function{}

func (*Function) isExpression() {}

func (*Function) precedence() precedence {
	return precedencePrimary
}

func (e *Function) Doc() prettier.Doc {
	parameterDocs := make([]prettier.Doc, 0, len(e.Parameters))
	for _, parameter := range e.Parameters {
		parameterDocs = append(parameterDocs, prettier.Text(parameter))
	}

	head := "function"
	if e.Name != "" {
		head += " " + e.Name
	}

	body := e.Body
	if body == nil {
		body = &Block{}
	}

	return prettier.Concat{
		prettier.Text(head),
		prettier.Text("("),
		prettier.Join(argumentSeparatorDoc, parameterDocs...),
		prettier.Text(") "),
		body.Doc(),
	}
}

func (e *Function) String() string {
	return Render(e.Doc())
}

// TypeReference refers to the runtime representation of a type,
// printed as `{Name}`.
type TypeReference struct {
	Name string
}

var _ Expression = &TypeReference{}

func (*TypeReference) isExpression() {}

func (*TypeReference) precedence() precedence {
	return precedencePrimary
}

func (e *TypeReference) Doc() prettier.Doc {
	return prettier.Text("{" + e.Name + "}")
}

func (e *TypeReference) String() string {
	return "{" + e.Name + "}"
}
