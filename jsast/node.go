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
	"strings"

	"github.com/turbolent/prettier"
)

// Node is a node of the output tree.
type Node interface {
	Doc() prettier.Doc
	String() string
}

const maxLineWidth = 1 << 20

// Render prints the given document.
// Lines are indented with tabs and never wrapped.
func Render(doc prettier.Doc) string {
	var b strings.Builder
	prettier.Prettier(&b, doc, maxLineWidth, "\t")
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderStatements prints each statement on its own line.
func RenderStatements(statements []Statement) string {
	docs := make([]prettier.Doc, 0, len(statements))
	for _, statement := range statements {
		docs = append(docs, statement.Doc())
	}
	return Render(prettier.Join(prettier.HardLine{}, docs...))
}

type precedence uint

const (
	precedenceUnknown precedence = iota
	precedenceSequence
	precedenceAssignment
	precedenceConditional
	precedenceLogicalOr
	precedenceLogicalAnd
	precedenceBitwiseOr
	precedenceBitwiseXor
	precedenceBitwiseAnd
	precedenceEquality
	precedenceRelational
	precedenceShift
	precedenceAdditive
	precedenceMultiplicative
	precedenceUnary
	precedencePostfix
	precedenceNew
	precedenceMember
	precedencePrimary
)

// wrap parenthesizes the document of the expression if its precedence
// is lower than the given minimum.
func wrap(expression Expression, minimum precedence) prettier.Doc {
	doc := expression.Doc()
	if expression.precedence() < minimum {
		return prettier.Concat{
			prettier.Text("("),
			doc,
			prettier.Text(")"),
		}
	}
	return doc
}

var argumentSeparatorDoc prettier.Doc = prettier.Text(", ")

func argumentsDoc(arguments []Expression) prettier.Doc {
	if len(arguments) == 0 {
		return prettier.Text("()")
	}
	docs := make([]prettier.Doc, 0, len(arguments))
	for _, argument := range arguments {
		docs = append(docs, wrap(argument, precedenceAssignment))
	}
	return prettier.Concat{
		prettier.Text("("),
		prettier.Join(argumentSeparatorDoc, docs...),
		prettier.Text(")"),
	}
}
