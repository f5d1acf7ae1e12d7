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
	"github.com/onflow/scriptc/sema"
)

type Statement interface {
	Element
	isStatement()
}

// Block

type Block struct {
	Statements []Statement
	Range
}

var _ Statement = &Block{}

func (*Block) isStatement() {}

func (*Block) ElementType() ElementType {
	return ElementTypeBlock
}

func (b *Block) Walk(walkChild func(Element)) {
	for _, statement := range b.Statements {
		walkChild(statement)
	}
}

// ExpressionStatement

type ExpressionStatement struct {
	Expression Expression
}

var _ Statement = &ExpressionStatement{}

func (*ExpressionStatement) isStatement() {}

func (*ExpressionStatement) ElementType() ElementType {
	return ElementTypeExpressionStatement
}

func (s *ExpressionStatement) Walk(walkChild func(Element)) {
	walkChild(s.Expression)
}

func (s *ExpressionStatement) StartPosition() Position {
	return s.Expression.StartPosition()
}

func (s *ExpressionStatement) EndPosition() Position {
	return s.Expression.EndPosition()
}

// VariableDeclaration declares one local variable.
// Value is nil if the variable is not initialized.
type VariableDeclaration struct {
	Variable *sema.Variable
	Value    Expression
	Range
}

var _ Statement = &VariableDeclaration{}

func (*VariableDeclaration) isStatement() {}

func (*VariableDeclaration) ElementType() ElementType {
	return ElementTypeVariableDeclaration
}

func (d *VariableDeclaration) Walk(walkChild func(Element)) {
	if d.Value != nil {
		walkChild(d.Value)
	}
}

// ReturnStatement

type ReturnStatement struct {
	Expression Expression
	Range
}

var _ Statement = &ReturnStatement{}

func (*ReturnStatement) isStatement() {}

func (*ReturnStatement) ElementType() ElementType {
	return ElementTypeReturnStatement
}

func (s *ReturnStatement) Walk(walkChild func(Element)) {
	if s.Expression != nil {
		walkChild(s.Expression)
	}
}

// IfStatement. Else is nil, a *Block, or an *IfStatement.
type IfStatement struct {
	Test Expression
	Then *Block
	Else Statement
	Range
}

var _ Statement = &IfStatement{}

func (*IfStatement) isStatement() {}

func (*IfStatement) ElementType() ElementType {
	return ElementTypeIfStatement
}

func (s *IfStatement) Walk(walkChild func(Element)) {
	walkChild(s.Test)
	walkChild(s.Then)
	if s.Else != nil {
		walkChild(s.Else)
	}
}

// WhileStatement

type WhileStatement struct {
	Test  Expression
	Block *Block
	Range
}

var _ Statement = &WhileStatement{}

func (*WhileStatement) isStatement() {}

func (*WhileStatement) ElementType() ElementType {
	return ElementTypeWhileStatement
}

func (s *WhileStatement) Walk(walkChild func(Element)) {
	walkChild(s.Test)
	walkChild(s.Block)
}

// BreakStatement

type BreakStatement struct {
	Range
}

var _ Statement = &BreakStatement{}

func (*BreakStatement) isStatement() {}

func (*BreakStatement) ElementType() ElementType {
	return ElementTypeBreakStatement
}

func (*BreakStatement) Walk(_ func(Element)) {}

// ContinueStatement

type ContinueStatement struct {
	Range
}

var _ Statement = &ContinueStatement{}

func (*ContinueStatement) isStatement() {}

func (*ContinueStatement) ElementType() ElementType {
	return ElementTypeContinueStatement
}

func (*ContinueStatement) Walk(_ func(Element)) {}

// ThrowStatement

type ThrowStatement struct {
	Expression Expression
	Range
}

var _ Statement = &ThrowStatement{}

func (*ThrowStatement) isStatement() {}

func (*ThrowStatement) ElementType() ElementType {
	return ElementTypeThrowStatement
}

func (s *ThrowStatement) Walk(walkChild func(Element)) {
	walkChild(s.Expression)
}
