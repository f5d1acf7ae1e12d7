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

// InlineCodePart is either literal text or a substituted expression.
type InlineCodePart struct {
	Text       string
	Expression Expression
}

// InlineCode is the expansion of a code template:
// literal text with substituted expressions.
type InlineCode struct {
	Parts []InlineCodePart
}

var _ Expression = &InlineCode{}

func (*InlineCode) isExpression() {}

// precedence is member precedence if the literal text outside of brackets
// only continues a member/call chain, e.g. `{this}.foo({x})`.
// Otherwise the expansion may contain operators and is treated as a sequence.
func (e *InlineCode) precedence() precedence {
	depth := 0
	for _, part := range e.Parts {
		if part.Expression != nil {
			continue
		}
		for _, r := range part.Text {
			switch r {
			case '(', '[':
				depth++
				continue
			case ')', ']':
				depth--
				continue
			}
			if depth > 0 {
				continue
			}
			if !isChainRune(r) {
				return precedenceSequence
			}
		}
	}
	return precedenceMember
}

func isChainRune(r rune) bool {
	return r == '.' || r == '$' || r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func (e *InlineCode) Doc() prettier.Doc {
	docs := make(prettier.Concat, 0, len(e.Parts))
	depth := 0
	for _, part := range e.Parts {
		if part.Expression == nil {
			for _, r := range part.Text {
				switch r {
				case '(', '[', '{':
					depth++
				case ')', ']', '}':
					depth--
				}
			}
			docs = append(docs, prettier.Text(part.Text))
			continue
		}

		minimum := precedenceMember
		if depth > 0 {
			minimum = precedenceAssignment
		}
		docs = append(docs, wrap(part.Expression, minimum))
	}
	return docs
}

func (e *InlineCode) String() string {
	return Render(e.Doc())
}
