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

package semantics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/onflow/scriptc/errors"
	"github.com/onflow/scriptc/jsast"
)

const (
	// ThisHole is bound to the receiver
	ThisHole = "this"
	// ValueHole is bound to the assigned value in setter templates
	ValueHole = "value"
)

type templatePart struct {
	text string
	hole string
}

// Template is a code template: literal text with `{name}` holes.
// A brace not followed by an identifier and a closing brace is literal text.
type Template struct {
	Text  string
	parts []templatePart
}

// ParseTemplate splits the given text into literal text and holes.
func ParseTemplate(text string) *Template {
	template := &Template{Text: text}

	var literal strings.Builder
	flushLiteral := func() {
		if literal.Len() > 0 {
			template.parts = append(template.parts, templatePart{text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(text); {
		if text[i] == '{' {
			end := holeEnd(text, i+1)
			if end > 0 {
				flushLiteral()
				template.parts = append(template.parts, templatePart{hole: text[i+1 : end]})
				i = end + 1
				continue
			}
		}
		literal.WriteByte(text[i])
		i++
	}
	flushLiteral()

	return template
}

// holeEnd returns the index of the closing brace of a hole
// whose name starts at the given index, or -1.
func holeEnd(text string, start int) int {
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '}':
			if i == start {
				return -1
			}
			return i
		case c == '_' || c == '$' ||
			(c >= 'a' && c <= 'z') ||
			(c >= 'A' && c <= 'Z') ||
			(i > start && c >= '0' && c <= '9'):
			continue
		default:
			return -1
		}
	}
	return -1
}

// HoleCount returns how many times the hole with the given name occurs.
func (t *Template) HoleCount(name string) int {
	count := 0
	for _, part := range t.parts {
		if part.hole == name {
			count++
		}
	}
	return count
}

// Holes returns the distinct hole names in order of first occurrence.
func (t *Template) Holes() []string {
	var holes []string
	seen := map[string]struct{}{}
	for _, part := range t.parts {
		if part.hole == "" {
			continue
		}
		if _, ok := seen[part.hole]; ok {
			continue
		}
		seen[part.hole] = struct{}{}
		holes = append(holes, part.hole)
	}
	return holes
}

// Expand substitutes the holes with the given bindings.
func (t *Template) Expand(bindings map[string]jsast.Expression) (*jsast.InlineCode, error) {
	parts := make([]jsast.InlineCodePart, 0, len(t.parts))
	for _, part := range t.parts {
		if part.hole == "" {
			parts = append(parts, jsast.InlineCodePart{Text: part.text})
			continue
		}

		expression, ok := bindings[part.hole]
		if !ok {
			return nil, &UnknownTemplateHoleError{
				Template: t.Text,
				Hole:     part.hole,
				Bindings: bindings,
			}
		}
		parts = append(parts, jsast.InlineCodePart{Expression: expression})
	}
	return &jsast.InlineCode{Parts: parts}, nil
}

// UnknownTemplateHoleError is reported when a template refers to a name
// which is neither the receiver, nor a parameter, nor a type parameter.
type UnknownTemplateHoleError struct {
	Template string
	Hole     string
	Bindings map[string]jsast.Expression
}

var _ errors.UserError = &UnknownTemplateHoleError{}
var _ errors.SecondaryError = &UnknownTemplateHoleError{}

func (*UnknownTemplateHoleError) IsUserError() {}

func (e *UnknownTemplateHoleError) Error() string {
	return fmt.Sprintf(
		"template `%s` refers to unknown name `%s`",
		e.Template,
		e.Hole,
	)
}

func (e *UnknownTemplateHoleError) SecondaryError() string {
	if closest := e.findClosestName(); closest != "" {
		return fmt.Sprintf("did you mean `%s`?", closest)
	}
	return "unknown name"
}

// findClosestName finds the bound name with the smallest edit distance
// from the unknown hole.
func (e *UnknownTemplateHoleError) findClosestName() (closestName string) {
	nameRunes := []rune(e.Hole)

	closestDistance := len(e.Hole)

	sortedNames := make([]string, 0, len(e.Bindings))
	for name := range e.Bindings { //nolint:maprange
		sortedNames = append(sortedNames, name)
	}
	sort.Strings(sortedNames)

	for _, name := range sortedNames {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(name),
			levenshtein.DefaultOptions,
		)

		// Don't update the closest name if the distance is greater than one already found,
		// or if the edits required would involve a complete replacement of the name
		if distance < closestDistance && distance < len(name) {
			closestName = name
			closestDistance = distance
		}
	}

	return
}
