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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/turbolent/prettier"

	"github.com/onflow/scriptc/test_utils/common_utils"
)

func TestExpressionString(t *testing.T) {

	t.Parallel()

	i := NewIdentifier("$i")
	one := &Number{Value: 1}

	tests := map[string]Expression{
		"$i + 1": NewBinary(BinaryOperatorAdd, i, one),
		"($i + 1) * 2": NewBinary(
			BinaryOperatorMultiply,
			NewBinary(BinaryOperatorAdd, i, one),
			&Number{Value: 2},
		),
		"$i - ($i - 1)": NewBinary(
			BinaryOperatorSubtract,
			i,
			NewBinary(BinaryOperatorSubtract, i, one),
		),
		"$a = $b = 1": NewAssignment(
			NewIdentifier("$a"),
			NewAssignment(NewIdentifier("$b"), one),
		),
		"this.get_$P()": NewInvocation(NewMember(&This{}, "get_$P")),
		"{C}.set_$P({C}.get_$P() + 1)": NewInvocation(
			NewMember(&TypeReference{Name: "C"}, "set_$P"),
			NewBinary(
				BinaryOperatorAdd,
				NewInvocation(NewMember(&TypeReference{Name: "C"}, "get_$P")),
				one,
			),
		),
		"++this.$F().$F": &Unary{
			Operator: UnaryOperatorPrefixIncrement,
			Operand:  NewMember(NewInvocation(NewMember(&This{}, "$F")), "$F"),
		},
		"$i++": &Unary{
			Operator: UnaryOperatorPostfixIncrement,
			Operand:  i,
		},
		"-(-$i)": &Unary{
			Operator: UnaryOperatorNegate,
			Operand: &Unary{
				Operator: UnaryOperatorNegate,
				Operand:  i,
			},
		},
		"$arr[$i]": &Index{Target: NewIdentifier("$arr"), Index: i},
		"($a + $b).$x": NewMember(
			NewBinary(BinaryOperatorAdd, NewIdentifier("$a"), NewIdentifier("$b")),
			"$x",
		),
		"new {C}($i, 'a\\'b')": &New{
			Constructor: &TypeReference{Name: "C"},
			Arguments:   []Expression{i, &String{Value: "a'b"}},
		},
		"{ $a: $a, $b: 2.5 }": &ObjectLiteral{
			Properties: []*ObjectProperty{
				{Name: "$a", Value: NewIdentifier("$a")},
				{Name: "$b", Value: &Number{Value: 2.5}},
			},
		},
		"$c ? $a : $b": &Conditional{
			Test: NewIdentifier("$c"),
			Then: NewIdentifier("$a"),
			Else: NewIdentifier("$b"),
		},
		"[1, null, true]": &ArrayLiteral{
			Elements: []Expression{one, &Null{}, &Boolean{Value: true}},
		},
	}

	for expected, expression := range tests {
		assert.Equal(t, expected, expression.String())
	}
}

func TestFunctionString(t *testing.T) {

	t.Parallel()

	function := &Function{
		Parameters: []string{"$i"},
		Body: NewBlock(
			&Return{
				Expression: NewBinary(BinaryOperatorGreater, NewIdentifier("$i"), &Number{Value: 5}),
			},
		),
	}

	assert.Equal(t,
		"function($i) {\n\treturn $i > 5;\n}",
		function.String(),
	)

	statement := NewVariableDeclaration(
		"$result",
		NewInvocation(NewMember(NewIdentifier("$arr"), "$Where"), function),
	)

	assert.Equal(t,
		"var $result = $arr.$Where(function($i) {\n\treturn $i > 5;\n});",
		statement.String(),
	)
}

func TestStatementDoc(t *testing.T) {

	t.Parallel()

	block := NewBlock(&Break{})

	assert.Equal(t,
		prettier.Concat{
			prettier.Text("{"),
			prettier.Indent{
				Doc: prettier.Concat{
					prettier.HardLine{},
					prettier.Text("break;"),
				},
			},
			prettier.HardLine{},
			prettier.Text("}"),
		},
		block.Doc(),
	)

	ifStatement := &If{
		Test: NewIdentifier("$c"),
		Then: NewBlock(&Continue{}),
		Else: NewBlock(&Throw{Expression: NewIdentifier("$e")}),
	}
	assert.Equal(t,
		"if ($c) {\n\tcontinue;\n} else {\n\tthrow $e;\n}",
		ifStatement.String(),
	)

	assert.Equal(t, "({}.x);", NewExpressionStatement(NewMember(&ObjectLiteral{}, "x")).String())
}

func TestInlineCode(t *testing.T) {

	t.Parallel()

	chain := &InlineCode{
		Parts: []InlineCodePart{
			{Expression: NewIdentifier("$arr")},
			{Text: ".$Select("},
			{Expression: NewBinary(BinaryOperatorAdd, NewIdentifier("$a"), NewIdentifier("$b"))},
			{Text: ")"},
		},
	}

	assert.Equal(t, "$arr.$Select($a + $b)", chain.String())
	assert.Equal(t, "$arr.$Select($a + $b).$x", NewMember(chain, "$x").String())

	operator := &InlineCode{
		Parts: []InlineCodePart{
			{Expression: NewIdentifier("$a")},
			{Text: " + "},
			{Expression: NewIdentifier("$b")},
		},
	}
	assert.Equal(t, "($a + $b).$x", NewMember(operator, "$x").String())
}

func TestReplaceThis(t *testing.T) {

	t.Parallel()

	nested := &Function{
		Body: NewBlock(NewExpressionStatement(NewMember(&This{}, "$y"))),
	}

	statements := []Statement{
		NewExpressionStatement(
			NewAssignment(NewMember(&This{}, "$x"), NewInvocation(NewMember(&This{}, "$F"))),
		),
		NewExpressionStatement(
			NewAssignment(NewMember(&This{}, "$f"), nested),
		),
	}

	assert.True(t, UsesThis(statements))

	rewritten := ReplaceThis(statements, NewIdentifier("$this"))

	assert.Equal(t,
		"$this.$x = $this.$F();\n$this.$f = function() {\n\tthis.$y;\n};",
		RenderStatements(rewritten),
	)

	// nested functions have their own receiver
	common_utils.AssertEqualWithDiff(t,
		[]Statement{
			NewExpressionStatement(
				NewAssignment(
					NewMember(NewIdentifier("$this"), "$x"),
					NewInvocation(NewMember(NewIdentifier("$this"), "$F")),
				),
			),
			NewExpressionStatement(
				NewAssignment(NewMember(NewIdentifier("$this"), "$f"), nested),
			),
		},
		rewritten,
	)

	// the original statements are unchanged
	assert.Equal(t,
		"this.$x = this.$F();",
		statements[0].String(),
	)

	assert.False(t, UsesThis([]Statement{
		NewExpressionStatement(nested),
	}))
}
