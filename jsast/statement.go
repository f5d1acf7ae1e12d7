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
	"github.com/turbolent/prettier"
)

// Statement is a statement of the output tree.
type Statement interface {
	Node
	isStatement()
}

// Block

type Block struct {
	Statements []Statement
}

var _ Statement = &Block{}

func NewBlock(statements ...Statement) *Block {
	return &Block{Statements: statements}
}

func (*Block) isStatement() {}

func (b *Block) Doc() prettier.Doc {
	if len(b.Statements) == 0 {
		return prettier.Text("{}")
	}

	statementDocs := make(prettier.Concat, 0, len(b.Statements)*2)
	for _, statement := range b.Statements {
		statementDocs = append(
			statementDocs,
			prettier.HardLine{},
			statement.Doc(),
		)
	}

	return prettier.Concat{
		prettier.Text("{"),
		prettier.Indent{
			Doc: statementDocs,
		},
		prettier.HardLine{},
		prettier.Text("}"),
	}
}

func (b *Block) String() string {
	return Render(b.Doc())
}

// ExpressionStatement

type ExpressionStatement struct {
	Expression Expression
}

var _ Statement = &ExpressionStatement{}

func NewExpressionStatement(expression Expression) *ExpressionStatement {
	return &ExpressionStatement{Expression: expression}
}

func (*ExpressionStatement) isStatement() {}

func (s *ExpressionStatement) Doc() prettier.Doc {
	doc := s.Expression.Doc()
	if startsWithBrace(s.Expression) {
		doc = prettier.Concat{
			prettier.Text("("),
			doc,
			prettier.Text(")"),
		}
	}
	return prettier.Concat{
		doc,
		prettier.Text(";"),
	}
}

func (s *ExpressionStatement) String() string {
	return Render(s.Doc())
}

// startsWithBrace returns true if the printed expression would start
// with `function` or `{`, which are parsed as declarations or blocks
// at the start of a statement.
func startsWithBrace(expression Expression) bool {
	for {
		switch e := expression.(type) {
		case *Function, *ObjectLiteral:
			return true
		case *Member:
			expression = e.Target
		case *Index:
			expression = e.Target
		case *Invocation:
			expression = e.Target
		case *Binary:
			if e.Left.precedence() < e.precedence() {
				return false
			}
			expression = e.Left
		default:
			return false
		}
	}
}

// VariableDeclaration

type VariableDeclarator struct {
	Name        string
	Initializer Expression
}

type VariableDeclaration struct {
	Declarators []*VariableDeclarator
}

var _ Statement = &VariableDeclaration{}

// NewVariableDeclaration declares a single variable.
// The initializer may be nil.
func NewVariableDeclaration(name string, initializer Expression) *VariableDeclaration {
	return &VariableDeclaration{
		Declarators: []*VariableDeclarator{
			{
				Name:        name,
				Initializer: initializer,
			},
		},
	}
}

func (*VariableDeclaration) isStatement() {}

func (s *VariableDeclaration) Doc() prettier.Doc {
	docs := make([]prettier.Doc, 0, len(s.Declarators))
	for _, declarator := range s.Declarators {
		if declarator.Initializer == nil {
			docs = append(docs, prettier.Text(declarator.Name))
			continue
		}
		docs = append(
			docs,
			prettier.Concat{
				prettier.Text(declarator.Name),
				prettier.Text(" = "),
				wrap(declarator.Initializer, precedenceAssignment),
			},
		)
	}
	return prettier.Concat{
		prettier.Text("var "),
		prettier.Join(argumentSeparatorDoc, docs...),
		prettier.Text(";"),
	}
}

func (s *VariableDeclaration) String() string {
	return Render(s.Doc())
}

// Return

type Return struct {
	Expression Expression
}

var _ Statement = &Return{}

func (*Return) isStatement() {}

func (s *Return) Doc() prettier.Doc {
	if s.Expression == nil {
		return prettier.Text("return;")
	}
	return prettier.Concat{
		prettier.Text("return "),
		s.Expression.Doc(),
		prettier.Text(";"),
	}
}

func (s *Return) String() string {
	return Render(s.Doc())
}

// If. Else is nil, a *Block or an *If.
type If struct {
	Test Expression
	Then *Block
	Else Statement
}

var _ Statement = &If{}

func (*If) isStatement() {}

func (s *If) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text("if ("),
		s.Test.Doc(),
		prettier.Text(") "),
		s.Then.Doc(),
	}
	if s.Else != nil {
		doc = append(
			doc,
			prettier.Text(" else "),
			s.Else.Doc(),
		)
	}
	return doc
}

func (s *If) String() string {
	return Render(s.Doc())
}

// While

type While struct {
	Test Expression
	Body *Block
}

var _ Statement = &While{}

func (*While) isStatement() {}

func (s *While) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text("while ("),
		s.Test.Doc(),
		prettier.Text(") "),
		s.Body.Doc(),
	}
}

func (s *While) String() string {
	return Render(s.Doc())
}

// Break

type Break struct{}

var _ Statement = &Break{}

func (*Break) isStatement() {}

func (*Break) Doc() prettier.Doc {
	return prettier.Text("break;")
}

func (*Break) String() string {
	return "break;"
}

// Continue

type Continue struct{}

var _ Statement = &Continue{}

func (*Continue) isStatement() {}

func (*Continue) Doc() prettier.Doc {
	return prettier.Text("continue;")
}

func (*Continue) String() string {
	return "continue;"
}

// Throw

type Throw struct {
	Expression Expression
}

var _ Statement = &Throw{}

func (*Throw) isStatement() {}

func (s *Throw) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text("throw "),
		s.Expression.Doc(),
		prettier.Text(";"),
	}
}

func (s *Throw) String() string {
	return Render(s.Doc())
}
