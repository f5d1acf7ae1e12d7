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

package compiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/scriptc/ast"
	"github.com/onflow/scriptc/compiler"
	"github.com/onflow/scriptc/sema"
	. "github.com/onflow/scriptc/test_utils/common_utils"
	. "github.com/onflow/scriptc/test_utils/lowering_utils"
)

type testSequence struct {
	class             *sema.CompositeType
	where             *sema.Method
	selectMethod      *sema.Method
	selectMany        *sema.Method
	join              *sema.Method
	groupJoin         *sema.Method
	groupBy           *sema.Method
	orderBy           *sema.Method
	orderByDescending *sema.Method
	thenBy            *sema.Method
	thenByDescending  *sema.Method
	property          *sema.Property
}

func newTestSequence(identifier string, parameterType func(*sema.DelegateType) sema.Type) *testSequence {
	class := NewClass(identifier)

	function := func(parameterCount int) sema.Type {
		parameterTypes := make([]sema.Type, 0, parameterCount)
		for i := 0; i < parameterCount; i++ {
			parameterTypes = append(parameterTypes, sema.Int32Type)
		}
		return parameterType(&sema.DelegateType{
			Identifier:     "Func",
			ParameterTypes: parameterTypes,
			ReturnType:     sema.ObjectType,
		})
	}

	combinator := func(name string, parameterTypes ...sema.Type) *sema.Method {
		parameters := make([]*sema.Parameter, 0, len(parameterTypes))
		for i, parameterType := range parameterTypes {
			parameters = append(parameters, NewParameter(string(rune('a'+i)), parameterType))
		}
		return NewMethod(class, name, false, class, parameters...)
	}

	return &testSequence{
		class:             class,
		where:             combinator("Where", function(1)),
		selectMethod:      combinator("Select", function(1)),
		selectMany:        combinator("SelectMany", function(1), function(2)),
		join:              combinator("Join", class, function(1), function(1), function(2)),
		groupJoin:         combinator("GroupJoin", class, function(1), function(1), function(2)),
		groupBy:           combinator("GroupBy", function(1)),
		orderBy:           combinator("OrderBy", function(1)),
		orderByDescending: combinator("OrderByDescending", function(1)),
		thenBy:            combinator("ThenBy", function(1)),
		thenByDescending:  combinator("ThenByDescending", function(1)),
		property:          NewProperty(class, "P", false, class),
	}
}

func newFunctionSequence() *testSequence {
	return newTestSequence("Seq", func(delegateType *sema.DelegateType) sema.Type {
		return delegateType
	})
}

func TestLowerQueries(t *testing.T) {

	t.Parallel()

	seq := newFunctionSequence()

	xs := NewLocal("xs", seq.class)
	ys := NewLocal("ys", seq.class)

	t.Run("identity select after where is elided", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.WhereClause{
					Predicate: Binary(ast.OperationGreater, RangeRef(x), Int(0), sema.BooleanType),
					Method:    seq.where,
				},
				&ast.SelectClause{Projection: RangeRef(x), Method: seq.selectMethod},
			},
		}

		assert.Equal(t,
			"$xs.$Where(function($x) {\n"+
				"\treturn $x > 0;\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})

	t.Run("identity select alone is kept", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.SelectClause{Projection: RangeRef(x), Method: seq.selectMethod},
			},
		}

		assert.Equal(t,
			"$xs.$Select(function($x) {\n"+
				"\treturn $x;\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})

	t.Run("let introduces a carrier", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)
		y := NewRangeVariable("y", sema.Int32Type)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.LetClause{
					Variable: y,
					Value:    Binary(ast.OperationMul, RangeRef(x), Int(2), sema.Int32Type),
					Method:   seq.selectMethod,
				},
				&ast.SelectClause{
					Projection: Binary(ast.OperationPlus, RangeRef(x), RangeRef(y), sema.Int32Type),
					Method:     seq.selectMethod,
				},
			},
		}

		assert.Equal(t,
			"$xs.$Select(function($x) {\n"+
				"\treturn { $x: $x, $y: $x * 2 };\n"+
				"}).$Select(function($tmp1) {\n"+
				"\treturn $tmp1.$x + $tmp1.$y;\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})

	t.Run("second from merges the select", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)
		y := NewRangeVariable("y", sema.Int32Type)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.FromClause{Variable: y, Source: Ref(ys), SelectManyMethod: seq.selectMany},
				&ast.SelectClause{
					Projection: Binary(ast.OperationPlus, RangeRef(x), RangeRef(y), sema.Int32Type),
					Method:     seq.selectMethod,
				},
			},
		}

		assert.Equal(t,
			"$xs.$SelectMany(function($x) {\n"+
				"\treturn $ys;\n"+
				"}, function($x, $y) {\n"+
				"\treturn $x + $y;\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})

	t.Run("join merges the select", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)
		y := NewRangeVariable("y", sema.Int32Type)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.JoinClause{
					Variable:    y,
					InnerSource: Ref(ys),
					OuterKey:    RangeRef(x),
					InnerKey:    RangeRef(y),
					Method:      seq.join,
				},
				&ast.SelectClause{
					Projection: Binary(ast.OperationPlus, RangeRef(x), RangeRef(y), sema.Int32Type),
					Method:     seq.selectMethod,
				},
			},
		}

		assert.Equal(t,
			"$xs.$Join($ys, function($x) {\n"+
				"\treturn $x;\n"+
				"}, function($y) {\n"+
				"\treturn $y;\n"+
				"}, function($x, $y) {\n"+
				"\treturn $x + $y;\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})

	t.Run("inner key of join cannot refer to outer range variables", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)
		y := NewRangeVariable("y", sema.Int32Type)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.JoinClause{
					Variable:    y,
					InnerSource: Ref(ys),
					OuterKey:    RangeRef(x),
					InnerKey:    Binary(ast.OperationPlus, RangeRef(y), RangeRef(x), sema.Int32Type),
					Method:      seq.join,
				},
				&ast.SelectClause{Projection: RangeRef(y), Method: seq.selectMethod},
			},
		}

		_, err := lowerExpression(t, NewImporter(), query)
		RequireError(t, err)

		var scopingErr *compiler.ScopingViolationError
		require.ErrorAs(t, err, &scopingErr)
		assert.Equal(t, "x", scopingErr.Variable)
	})

	t.Run("group by with identity projection", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.GroupClause{
					Projection: RangeRef(x),
					Key:        Binary(ast.OperationMod, RangeRef(x), Int(2), sema.Int32Type),
					Method:     seq.groupBy,
				},
			},
		}

		assert.Equal(t,
			"$xs.$GroupBy(function($x) {\n"+
				"\treturn $x % 2;\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})

	t.Run("continuation", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)
		y := NewRangeVariable("y", sema.Int32Type)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.SelectClause{
					Projection: Binary(ast.OperationMul, RangeRef(x), Int(2), sema.Int32Type),
					Method:     seq.selectMethod,
				},
				&ast.ContinuationClause{Variable: y},
				&ast.WhereClause{
					Predicate: Binary(ast.OperationGreater, RangeRef(y), Int(1), sema.BooleanType),
					Method:    seq.where,
				},
				&ast.SelectClause{Projection: RangeRef(y), Method: seq.selectMethod},
			},
		}

		assert.Equal(t,
			"$xs.$Select(function($x) {\n"+
				"\treturn $x * 2;\n"+
				"}).$Where(function($y) {\n"+
				"\treturn $y > 1;\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})

	t.Run("descending ordering", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.OrderByClause{
					Orderings: []*ast.Ordering{
						{
							Key:        RangeRef(x),
							Descending: true,
							Method:     seq.orderByDescending,
						},
					},
				},
				&ast.SelectClause{Projection: RangeRef(x), Method: seq.selectMethod},
			},
		}

		assert.Equal(t,
			"$xs.$OrderByDescending(function($x) {\n"+
				"\treturn $x;\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})
}

func TestLowerQueryCarriersAndJoins(t *testing.T) {

	t.Parallel()

	seq := newFunctionSequence()

	xs := NewLocal("xs", seq.class)
	ys := NewLocal("ys", seq.class)

	t.Run("third range variable nests carriers", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)
		y := NewRangeVariable("y", sema.Int32Type)
		z := NewRangeVariable("z", sema.Int32Type)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.LetClause{
					Variable: y,
					Value:    Binary(ast.OperationMul, RangeRef(x), Int(2), sema.Int32Type),
					Method:   seq.selectMethod,
				},
				&ast.LetClause{
					Variable: z,
					Value:    Binary(ast.OperationPlus, RangeRef(y), Int(1), sema.Int32Type),
					Method:   seq.selectMethod,
				},
				&ast.SelectClause{
					Projection: Binary(
						ast.OperationPlus,
						Binary(ast.OperationPlus, RangeRef(x), RangeRef(y), sema.Int32Type),
						RangeRef(z),
						sema.Int32Type,
					),
					Method: seq.selectMethod,
				},
			},
		}

		assert.Equal(t,
			"$xs.$Select(function($x) {\n"+
				"\treturn { $x: $x, $y: $x * 2 };\n"+
				"}).$Select(function($tmp1) {\n"+
				"\treturn { $tmp1: $tmp1, $z: $tmp1.$y + 1 };\n"+
				"}).$Select(function($tmp2) {\n"+
				"\treturn $tmp2.$tmp1.$x + $tmp2.$tmp1.$y + $tmp2.$z;\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})

	t.Run("group join", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)
		y := NewRangeVariable("y", sema.Int32Type)
		g := NewRangeVariable("g", seq.class)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.JoinClause{
					Variable:    y,
					InnerSource: Ref(ys),
					OuterKey:    RangeRef(x),
					InnerKey:    RangeRef(y),
					Method:      seq.groupJoin,
					Into:        g,
				},
				&ast.SelectClause{Projection: RangeRef(g), Method: seq.selectMethod},
			},
		}

		assert.Equal(t,
			"$xs.$GroupJoin($ys, function($x) {\n"+
				"\treturn $x;\n"+
				"}, function($y) {\n"+
				"\treturn $y;\n"+
				"}, function($x, $g) {\n"+
				"\treturn $g;\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})

	t.Run("secondary orderings", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.OrderByClause{
					Orderings: []*ast.Ordering{
						{
							Key:    RangeRef(x),
							Method: seq.orderBy,
						},
						{
							Key:        Binary(ast.OperationMod, RangeRef(x), Int(2), sema.Int32Type),
							Descending: true,
							Method:     seq.thenByDescending,
						},
						{
							Key:    Binary(ast.OperationMul, RangeRef(x), Int(3), sema.Int32Type),
							Method: seq.thenBy,
						},
					},
				},
				&ast.SelectClause{Projection: RangeRef(x), Method: seq.selectMethod},
			},
		}

		assert.Equal(t,
			"$xs.$OrderBy(function($x) {\n"+
				"\treturn $x;\n"+
				"}).$ThenByDescending(function($x) {\n"+
				"\treturn $x % 2;\n"+
				"}).$ThenBy(function($x) {\n"+
				"\treturn $x * 3;\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})

	t.Run("inner source of join is evaluated after the outer source", func(t *testing.T) {
		t.Parallel()

		x := NewRangeVariable("x", sema.Int32Type)
		y := NewRangeVariable("y", sema.Int32Type)

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: x, Source: Ref(xs)},
				&ast.JoinClause{
					Variable:    y,
					InnerSource: Assign(Member(nil, seq.property), Ref(ys)),
					OuterKey:    RangeRef(x),
					InnerKey:    RangeRef(y),
					Method:      seq.join,
				},
				&ast.SelectClause{
					Projection: Binary(ast.OperationPlus, RangeRef(x), RangeRef(y), sema.Int32Type),
					Method:     seq.selectMethod,
				},
			},
		}

		assert.Equal(t,
			"var $tmp2 = $xs;\n"+
				"var $tmp1 = $ys;\n"+
				"this.set_$P($tmp1);\n"+
				"$tmp2.$Join($tmp1, function($x) {\n"+
				"\treturn $x;\n"+
				"}, function($y) {\n"+
				"\treturn $y;\n"+
				"}, function($x, $y) {\n"+
				"\treturn $x + $y;\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})

	t.Run("inner key may refer to range variables of an enclosing query", func(t *testing.T) {
		t.Parallel()

		a := NewRangeVariable("a", sema.Int32Type)
		b := NewRangeVariable("b", sema.Int32Type)
		c := NewRangeVariable("c", sema.Int32Type)

		inner := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: b, Source: Ref(ys)},
				&ast.JoinClause{
					Variable:    c,
					InnerSource: Ref(ys),
					OuterKey:    RangeRef(b),
					InnerKey:    Binary(ast.OperationPlus, RangeRef(c), RangeRef(a), sema.Int32Type),
					Method:      seq.join,
				},
				&ast.SelectClause{Projection: RangeRef(c), Method: seq.selectMethod},
			},
			Type: seq.class,
		}

		query := &ast.QueryExpression{
			Clauses: []ast.QueryClause{
				&ast.FromClause{Variable: a, Source: Ref(xs)},
				&ast.SelectClause{Projection: inner, Method: seq.selectMethod},
			},
		}

		assert.Equal(t,
			"$xs.$Select(function($a) {\n"+
				"\treturn $ys.$Join($ys, function($b) {\n"+
				"\t\treturn $b;\n"+
				"\t}, function($c) {\n"+
				"\t\treturn $c + $a;\n"+
				"\t}, function($b, $c) {\n"+
				"\t\treturn $c;\n"+
				"\t});\n"+
				"});",
			requireLowered(t, NewImporter(), query),
		)
	})
}

func TestLowerQueryExpressionTrees(t *testing.T) {

	t.Parallel()

	queryable := newTestSequence("Q", func(delegateType *sema.DelegateType) sema.Type {
		return &sema.ExpressionTreeType{DelegateType: delegateType}
	})

	qs := NewLocal("qs", queryable.class)
	x := NewRangeVariable("x", sema.Int32Type)

	query := &ast.QueryExpression{
		Clauses: []ast.QueryClause{
			&ast.FromClause{Variable: x, Source: Ref(qs)},
			&ast.WhereClause{
				Predicate: Binary(ast.OperationGreater, RangeRef(x), Int(0), sema.BooleanType),
				Method:    queryable.where,
			},
			&ast.SelectClause{Projection: RangeRef(x), Method: queryable.selectMethod},
		},
	}

	config, _ := NewConfig(t, NewImporter())
	traces := &Traces{}
	config.TracingEnabled = true
	config.OnRecordTrace = traces.Record

	c := compiler.NewCompiler(config, TestLocation, compiler.NewContext(config.Naming, nil), nil)

	assert.Equal(t,
		"var $tmp1 = {Expression}.$Parameter({Int32}, '$x');\n"+
			"$qs.$Where({Expression}.$Lambda("+
			"{Expression}.$GreaterThan($tmp1, {Expression}.$Constant(0, {Int32}), {Boolean}), "+
			"[$tmp1]"+
			"));",
		Render(c.CompileExpression(query)),
	)

	assert.Equal(t, []string{"lower.query"}, traces.OperationNames())
}

func TestLowerQueryExpressionTreeParameterReuse(t *testing.T) {

	t.Parallel()

	queryable := newTestSequence("Q", func(delegateType *sema.DelegateType) sema.Type {
		return &sema.ExpressionTreeType{DelegateType: delegateType}
	})

	qs := NewLocal("qs", queryable.class)
	x := NewRangeVariable("x", sema.Int32Type)

	query := &ast.QueryExpression{
		Clauses: []ast.QueryClause{
			&ast.FromClause{Variable: x, Source: Ref(qs)},
			&ast.WhereClause{
				Predicate: Binary(
					ast.OperationGreater,
					Binary(ast.OperationPlus, RangeRef(x), RangeRef(x), sema.Int32Type),
					Int(0),
					sema.BooleanType,
				),
				Method: queryable.where,
			},
			&ast.SelectClause{Projection: RangeRef(x), Method: queryable.selectMethod},
		},
	}

	rendered := requireLowered(t, NewImporter(), query)

	assert.Equal(t,
		"var $tmp1 = {Expression}.$Parameter({Int32}, '$x');\n"+
			"$qs.$Where({Expression}.$Lambda("+
			"{Expression}.$GreaterThan("+
			"{Expression}.$Add($tmp1, $tmp1, {Int32}), "+
			"{Expression}.$Constant(0, {Int32}), {Boolean}), "+
			"[$tmp1]"+
			"));",
		rendered,
	)
	assert.Equal(t, 1, strings.Count(rendered, "$Parameter("))
}
