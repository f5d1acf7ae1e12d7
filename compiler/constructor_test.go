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
	"github.com/onflow/scriptc/sema"
	"github.com/onflow/scriptc/semantics"
	. "github.com/onflow/scriptc/test_utils/common_utils"
	. "github.com/onflow/scriptc/test_utils/lowering_utils"
)

func TestLowerConstructors(t *testing.T) {

	t.Parallel()

	base := NewClass("B")
	baseConstructor := &sema.Constructor{
		DeclaringType: base,
		Parameters:    []*sema.Parameter{NewParameter("x", sema.Int32Type)},
	}

	derived := NewClass("D")
	derived.BaseType = base

	field := NewField(derived, "F", false, sema.Int32Type)
	initializers := []*compiler.FieldInitializer{
		{
			Field: field,
			Value: Int(1),
		},
	}

	x := NewLocal("x", sema.Int32Type)

	lower := func(
		t *testing.T,
		importer *Importer,
		constructor *sema.Constructor,
		declaration *ast.ConstructorDeclaration,
		initializers []*compiler.FieldInitializer,
	) (string, error) {
		config, _ := NewConfig(t, importer)
		function, err := compiler.NewMethodCompiler(config).
			CompileConstructor(TestLocation, constructor, declaration, initializers)
		if err != nil || function == nil {
			return "", err
		}
		return function.String(), nil
	}

	t.Run("base call before field initializers", func(t *testing.T) {
		t.Parallel()

		constructor := &sema.Constructor{
			DeclaringType: derived,
			Parameters:    []*sema.Parameter{NewParameter("x", sema.Int32Type)},
		}

		declaration := &ast.ConstructorDeclaration{
			Constructor: constructor,
			Parameters:  []*sema.Variable{x},
			Initializer: &ast.ConstructorInitializer{
				Kind:        ast.ConstructorInitializerKindBase,
				Constructor: baseConstructor,
				Arguments:   []ast.Expression{Ref(x)},
			},
			Body: Block(
				Statement(CompoundAssign(ast.OperationPlus, Member(nil, field), Ref(x))),
			),
		}

		rendered, err := lower(t, NewImporter(), constructor, declaration, initializers)
		require.NoError(t, err)
		assert.Equal(t,
			"function($x) {\n"+
				"\t{B}.call(this, $x);\n"+
				"\tthis.$F = 1;\n"+
				"\tthis.$F += $x;\n"+
				"}",
			rendered,
		)
	})

	t.Run("implicit base call", func(t *testing.T) {
		t.Parallel()

		constructor := &sema.Constructor{DeclaringType: derived}

		rendered, err := lower(t, NewImporter(), constructor, nil, initializers)
		require.NoError(t, err)
		assert.Equal(t,
			"function() {\n"+
				"\t{B}.call(this);\n"+
				"\tthis.$F = 1;\n"+
				"}",
			rendered,
		)
	})

	t.Run("chained constructor skips field initializers", func(t *testing.T) {
		t.Parallel()

		target := &sema.Constructor{
			DeclaringType: derived,
			Parameters:    []*sema.Parameter{NewParameter("x", sema.Int32Type)},
		}
		constructor := &sema.Constructor{DeclaringType: derived}

		importer := NewImporter().
			WithConstructor(target, semantics.NamedConstructor{Name: "withValue"})

		declaration := &ast.ConstructorDeclaration{
			Constructor: constructor,
			Initializer: &ast.ConstructorInitializer{
				Kind:        ast.ConstructorInitializerKindThis,
				Constructor: target,
				Arguments:   []ast.Expression{Int(2)},
			},
		}

		rendered, err := lower(t, importer, constructor, declaration, initializers)
		require.NoError(t, err)
		assert.Equal(t,
			"function() {\n"+
				"\t{D}.withValue.call(this, 2);\n"+
				"}",
			rendered,
		)
	})

	t.Run("static factory", func(t *testing.T) {
		t.Parallel()

		constructor := &sema.Constructor{
			DeclaringType: derived,
			Parameters:    []*sema.Parameter{NewParameter("x", sema.Int32Type)},
		}

		importer := NewImporter().
			WithConstructor(constructor, semantics.StaticFactory{Name: "create"}).
			WithConstructor(baseConstructor, semantics.StaticFactory{Name: "create"})

		declaration := &ast.ConstructorDeclaration{
			Constructor: constructor,
			Parameters:  []*sema.Variable{x},
			Initializer: &ast.ConstructorInitializer{
				Kind:        ast.ConstructorInitializerKindBase,
				Constructor: baseConstructor,
				Arguments:   []ast.Expression{Ref(x)},
			},
			Body: Block(
				Statement(Assign(Member(nil, field), Ref(x))),
			),
		}

		rendered, err := lower(t, importer, constructor, declaration, initializers)
		require.NoError(t, err)
		assert.Equal(t,
			"function($x) {\n"+
				"\tvar $this = {B}.create($x);\n"+
				"\t$this.$F = 1;\n"+
				"\t$this.$F = $x;\n"+
				"\treturn $this;\n"+
				"}",
			rendered,
		)
	})

	t.Run("static factory without base", func(t *testing.T) {
		t.Parallel()

		constructor := &sema.Constructor{DeclaringType: base}

		importer := NewImporter().
			WithConstructor(constructor, semantics.StaticFactory{Name: "create"})

		rendered, err := lower(t, importer, constructor, nil, nil)
		require.NoError(t, err)
		assert.Equal(t,
			"function() {\n"+
				"\tvar $this = {};\n"+
				"\treturn $this;\n"+
				"}",
			rendered,
		)
	})

	t.Run("inline constructor", func(t *testing.T) {
		t.Parallel()

		constructor := &sema.Constructor{DeclaringType: base}

		importer := NewImporter().
			WithConstructor(constructor, semantics.InlineConstructor{
				Template: semantics.ParseTemplate("[]"),
			})

		rendered, err := lower(t, importer, constructor, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, rendered)
	})

	t.Run("chaining to a factory", func(t *testing.T) {
		t.Parallel()

		constructor := &sema.Constructor{
			DeclaringType: derived,
			Parameters:    []*sema.Parameter{NewParameter("x", sema.Int32Type)},
		}

		importer := NewImporter().
			WithConstructor(baseConstructor, semantics.StaticFactory{Name: "create"})

		declaration := &ast.ConstructorDeclaration{
			Constructor: constructor,
			Parameters:  []*sema.Variable{x},
			Initializer: &ast.ConstructorInitializer{
				Kind:        ast.ConstructorInitializerKindBase,
				Constructor: baseConstructor,
				Arguments:   []ast.Expression{Ref(x)},
			},
		}

		_, err := lower(t, importer, constructor, declaration, nil)
		RequireError(t, err)
		assert.ErrorAs(t, err, new(*compiler.UnsupportedShapeError))
	})
}

func TestLowerObjectCreation(t *testing.T) {

	t.Parallel()

	class := NewClass("C")
	constructor := &sema.Constructor{
		DeclaringType: class,
		Parameters:    []*sema.Parameter{NewParameter("x", sema.Int32Type)},
	}

	creation := &ast.ObjectCreationExpression{
		Constructor: constructor,
		Arguments:   []ast.Expression{Int(1)},
	}

	tests := map[string]struct {
		semantics semantics.ConstructorSemantics
		expected  string
	}{
		"unnamed": {
			semantics: semantics.UnnamedConstructor{},
			expected:  "new {C}(1);",
		},
		"named": {
			semantics: semantics.NamedConstructor{Name: "withValue"},
			expected:  "new {C}.withValue(1);",
		},
		"factory": {
			semantics: semantics.StaticFactory{Name: "create"},
			expected:  "{C}.create(1);",
		},
		"inline": {
			semantics: semantics.InlineConstructor{
				Template: semantics.ParseTemplate("[{x}]"),
			},
			expected: "[1];",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			importer := NewImporter().WithConstructor(constructor, test.semantics)

			assert.Equal(t,
				test.expected,
				requireLowered(t, importer, creation),
			)
		})
	}
}

func TestLowerAutoAccessors(t *testing.T) {

	t.Parallel()

	class := NewClass("C")
	property := NewProperty(class, "P", false, sema.Int32Type)
	event := &sema.Event{
		Identifier:    "E",
		DeclaringType: class,
		Type: &sema.DelegateType{
			Identifier: "Action",
		},
	}

	t.Run("property", func(t *testing.T) {
		t.Parallel()

		config, _ := NewConfig(t, NewImporter())
		methodCompiler := compiler.NewMethodCompiler(config)

		getter, err := methodCompiler.CompileAutoPropertyGetter(TestLocation, property, "$P")
		require.NoError(t, err)
		assert.Equal(t,
			"function() {\n"+
				"\treturn this.$P;\n"+
				"}",
			getter.String(),
		)

		setter, err := methodCompiler.CompileAutoPropertySetter(TestLocation, property, "$P")
		require.NoError(t, err)
		assert.Equal(t,
			"function($value) {\n"+
				"\tthis.$P = $value;\n"+
				"}",
			setter.String(),
		)
	})

	t.Run("property with explicit receiver", func(t *testing.T) {
		t.Parallel()

		importer := NewImporter().
			WithMember(property, semantics.PropertyAccessors{
				Get: semantics.StaticWithExplicitReceiver{Name: "getP"},
			})

		config, _ := NewConfig(t, importer)
		methodCompiler := compiler.NewMethodCompiler(config)

		getter, err := methodCompiler.CompileAutoPropertyGetter(TestLocation, property, "$P")
		require.NoError(t, err)
		assert.Equal(t,
			"function($this) {\n"+
				"\treturn $this.$P;\n"+
				"}",
			getter.String(),
		)

		setter, err := methodCompiler.CompileAutoPropertySetter(TestLocation, property, "$P")
		require.NoError(t, err)
		assert.Nil(t, setter)
	})

	t.Run("event", func(t *testing.T) {
		t.Parallel()

		config, _ := NewConfig(t, NewImporter())
		methodCompiler := compiler.NewMethodCompiler(config)

		adder, err := methodCompiler.CompileAutoEventAdder(TestLocation, event, "$E")
		require.NoError(t, err)
		assert.Equal(t,
			"function($value) {\n"+
				"\tthis.$E = $Combine(this.$E, $value);\n"+
				"}",
			adder.String(),
		)

		remover, err := methodCompiler.CompileAutoEventRemover(TestLocation, event, "$E")
		require.NoError(t, err)
		assert.Equal(t,
			"function($value) {\n"+
				"\tthis.$E = $Remove(this.$E, $value);\n"+
				"}",
			remover.String(),
		)
	})
}
