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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/scriptc/ast"
	"github.com/onflow/scriptc/compiler"
	"github.com/onflow/scriptc/errors"
	"github.com/onflow/scriptc/sema"
	"github.com/onflow/scriptc/semantics"
	. "github.com/onflow/scriptc/test_utils/common_utils"
	. "github.com/onflow/scriptc/test_utils/lowering_utils"
)

func lowerMethod(
	t *testing.T,
	importer *Importer,
	declaration *ast.MethodDeclaration,
) string {
	t.Helper()

	config, reporter := NewConfig(t, importer)
	function, err := compiler.NewMethodCompiler(config).CompileMethod(TestLocation, declaration)
	require.NoError(t, err)
	require.Empty(t, reporter.Diagnostics)
	require.NotNil(t, function)

	return function.String()
}

func TestLowerStatements(t *testing.T) {

	t.Parallel()

	c := newTestClass()

	t.Run("while loop with test prelude", func(t *testing.T) {
		t.Parallel()

		declaration := &ast.MethodDeclaration{
			Method: NewMethod(c.class, "Run", false, sema.VoidType),
			Body: Block(
				&ast.VariableDeclaration{
					Variable: c.x,
					Value:    Int(0),
				},
				&ast.WhileStatement{
					Test: Binary(
						ast.OperationLess,
						c.postIncrementProperty(),
						Int(10),
						sema.BooleanType,
					),
					Block: Block(
						Statement(CompoundAssign(ast.OperationPlus, Ref(c.x), Int(1))),
					),
				},
			),
		}

		assert.Equal(t,
			"function() {\n"+
				"\tvar $x = 0;\n"+
				"\twhile (true) {\n"+
				"\t\tvar $tmp1 = this.get_$P();\n"+
				"\t\tthis.set_$P($tmp1 + 1);\n"+
				"\t\tif (!($tmp1 < 10)) {\n"+
				"\t\t\tbreak;\n"+
				"\t\t}\n"+
				"\t\t$x += 1;\n"+
				"\t}\n"+
				"}",
			lowerMethod(t, NewImporter(), declaration),
		)
	})

	t.Run("else if chain", func(t *testing.T) {
		t.Parallel()

		declaration := &ast.MethodDeclaration{
			Method:     NewMethod(c.class, "Sign", true, sema.Int32Type),
			Parameters: []*sema.Variable{c.x},
			Body: Block(
				&ast.IfStatement{
					Test: Binary(ast.OperationGreater, Ref(c.x), Int(0), sema.BooleanType),
					Then: Block(&ast.ReturnStatement{Expression: Int(1)}),
					Else: &ast.IfStatement{
						Test: Binary(ast.OperationLess, Ref(c.x), Int(0), sema.BooleanType),
						Then: Block(&ast.ReturnStatement{Expression: Int(-1)}),
						Else: Block(&ast.ReturnStatement{Expression: Int(0)}),
					},
				},
			),
		}

		assert.Equal(t,
			"function($x) {\n"+
				"\tif ($x > 0) {\n"+
				"\t\treturn 1;\n"+
				"\t} else if ($x < 0) {\n"+
				"\t\treturn -1;\n"+
				"\t} else {\n"+
				"\t\treturn 0;\n"+
				"\t}\n"+
				"}",
			lowerMethod(t, NewImporter(), declaration),
		)
	})

	t.Run("increment statement discards the old value", func(t *testing.T) {
		t.Parallel()

		declaration := &ast.MethodDeclaration{
			Method: NewMethod(c.class, "Bump", false, sema.VoidType),
			Body: Block(
				Statement(c.postIncrementProperty()),
			),
		}

		assert.Equal(t,
			"function() {\n"+
				"\tthis.set_$P(this.get_$P() + 1);\n"+
				"}",
			lowerMethod(t, NewImporter(), declaration),
		)
	})

	t.Run("variables passed by reference", func(t *testing.T) {
		t.Parallel()

		parameter := NewParameter("v", sema.Int32Type)
		parameter.IsByRef = true
		increment := NewMethod(c.class, "Inc", true, sema.VoidType, parameter)

		boxed := NewLocal("r", sema.Int32Type)
		boxed.IsByRef = true

		declaration := &ast.MethodDeclaration{
			Method: NewMethod(c.class, "Boxed", false, sema.Int32Type),
			Body: Block(
				&ast.VariableDeclaration{Variable: boxed},
				Statement(Call(nil, increment, Ref(boxed))),
				&ast.ReturnStatement{Expression: Ref(boxed)},
			),
		}

		assert.Equal(t,
			"function() {\n"+
				"\tvar $r = { $: 0 };\n"+
				"\t{C}.$Inc($r);\n"+
				"\treturn $r.$;\n"+
				"}",
			lowerMethod(t, NewImporter(), declaration),
		)
	})

	t.Run("throw", func(t *testing.T) {
		t.Parallel()

		declaration := &ast.MethodDeclaration{
			Method: NewMethod(c.class, "Fail", false, sema.VoidType),
			Body: Block(
				&ast.ThrowStatement{Expression: Call(nil, c.get)},
			),
		}

		assert.Equal(t,
			"function() {\n"+
				"\tthrow this.$Get();\n"+
				"}",
			lowerMethod(t, NewImporter(), declaration),
		)
	})
}

func TestLowerMethods(t *testing.T) {

	t.Parallel()

	c := newTestClass()

	t.Run("generic method", func(t *testing.T) {
		t.Parallel()

		method := NewMethod(c.class, "G", false, sema.VoidType, NewParameter("a", sema.Int32Type))
		method.TypeParameters = []*sema.TypeParameter{{Name: "T"}}

		declaration := &ast.MethodDeclaration{
			Method:     method,
			Parameters: []*sema.Variable{NewLocal("a", sema.Int32Type)},
			Body:       Block(),
		}

		assert.Equal(t,
			"function($T, $a) {}",
			lowerMethod(t, NewImporter(), declaration),
		)
	})

	t.Run("static with explicit receiver", func(t *testing.T) {
		t.Parallel()

		method := NewMethod(c.class, "Value", false, sema.Int32Type)
		importer := NewImporter().
			WithMember(method, semantics.StaticWithExplicitReceiver{Name: "value"})

		declaration := &ast.MethodDeclaration{
			Method: method,
			Body: Block(
				&ast.ReturnStatement{Expression: Member(nil, c.field)},
			),
		}

		assert.Equal(t,
			"function($this) {\n"+
				"\treturn $this.$F;\n"+
				"}",
			lowerMethod(t, importer, declaration),
		)
	})

	t.Run("inline method", func(t *testing.T) {
		t.Parallel()

		method := NewMethod(c.class, "Inline", false, sema.VoidType)
		importer := NewImporter().
			WithMember(method, semantics.InlineTemplate{
				Template: semantics.ParseTemplate("{this}.run()"),
			})

		config, _ := NewConfig(t, importer)
		function, err := compiler.NewMethodCompiler(config).CompileMethod(
			TestLocation,
			&ast.MethodDeclaration{
				Method: method,
				Body:   Block(),
			},
		)
		require.NoError(t, err)
		assert.Nil(t, function)
	})

	t.Run("failing method is reported", func(t *testing.T) {
		t.Parallel()

		array := NewLocal("arr", &sema.ArrayType{ElementType: sema.Int32Type, Rank: 2})

		declaration := &ast.MethodDeclaration{
			Method:     NewMethod(c.class, "Broken", false, sema.Int32Type),
			Parameters: []*sema.Variable{array},
			Body: Block(
				&ast.ReturnStatement{
					Expression: &ast.IndexExpression{
						Target:  Ref(array),
						Indices: []ast.Expression{Int(0), Int(0)},
						Type:    sema.Int32Type,
					},
				},
			),
		}

		traces := &Traces{}

		config, reporter := NewConfig(t, NewImporter())
		config.TracingEnabled = true
		config.OnRecordTrace = traces.Record

		function, err := compiler.NewMethodCompiler(config).CompileMethod(TestLocation, declaration)
		RequireError(t, err)
		assert.Nil(t, function)

		var unitErr errors.UnitError
		require.ErrorAs(t, err, &unitErr)
		assert.Equal(t, "C.Broken", unitErr.Unit)
		assert.True(t, errors.IsUserError(err))

		require.Len(t, reporter.Diagnostics, 1)
		diagnostic := reporter.Diagnostics[0]
		assert.Equal(t, TestLocation, diagnostic.Location)
		assert.ErrorAs(t, diagnostic.Err, new(*compiler.UnsupportedShapeError))

		assert.Equal(t, []string{"lower.method"}, traces.OperationNames())
	})
}

func TestLowerFieldInitializers(t *testing.T) {

	t.Parallel()

	c := newTestClass()

	config, _ := NewConfig(t, NewImporter())
	methodCompiler := compiler.NewMethodCompiler(config)

	block, err := methodCompiler.CompileFieldInitializer(TestLocation, c.field, Call(nil, c.get))
	require.NoError(t, err)
	assert.Equal(t,
		"{\n"+
			"\tthis.$F = this.$Get();\n"+
			"}",
		block.String(),
	)

	static := NewField(c.class, "S", true, c.class)

	block, err = methodCompiler.CompileDefaultFieldInitializer(TestLocation, static)
	require.NoError(t, err)
	assert.Equal(t,
		"{\n"+
			"\t{C}.$S = null;\n"+
			"}",
		block.String(),
	)
}
