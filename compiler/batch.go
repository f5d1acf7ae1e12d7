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

package compiler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/onflow/scriptc/ast"
	"github.com/onflow/scriptc/common"
	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/sema"
)

// Unit is an independently lowered part of a program
type Unit interface {
	UnitLocation() common.Location
	Compile(compiler *MethodCompiler) (jsast.Node, error)
}

// MethodUnit is the body of a method
type MethodUnit struct {
	Location    common.Location
	Declaration *ast.MethodDeclaration
}

var _ Unit = MethodUnit{}

func (u MethodUnit) UnitLocation() common.Location {
	return u.Location
}

func (u MethodUnit) Compile(compiler *MethodCompiler) (jsast.Node, error) {
	function, err := compiler.CompileMethod(u.Location, u.Declaration)
	if function == nil {
		return nil, err
	}
	return function, err
}

// ConstructorUnit is a constructor.
// Declaration is nil for the implicit default constructor.
type ConstructorUnit struct {
	Location     common.Location
	Constructor  *sema.Constructor
	Declaration  *ast.ConstructorDeclaration
	Initializers []*FieldInitializer
}

var _ Unit = ConstructorUnit{}

func (u ConstructorUnit) UnitLocation() common.Location {
	return u.Location
}

func (u ConstructorUnit) Compile(compiler *MethodCompiler) (jsast.Node, error) {
	function, err := compiler.CompileConstructor(
		u.Location,
		u.Constructor,
		u.Declaration,
		u.Initializers,
	)
	if function == nil {
		return nil, err
	}
	return function, err
}

// FieldInitializerUnit is the initialization of a field.
// Value is nil if the field is initialized to its default value.
type FieldInitializerUnit struct {
	Location common.Location
	Field    *sema.Field
	Value    ast.Expression
}

var _ Unit = FieldInitializerUnit{}

func (u FieldInitializerUnit) UnitLocation() common.Location {
	return u.Location
}

func (u FieldInitializerUnit) Compile(compiler *MethodCompiler) (jsast.Node, error) {
	block, err := compiler.CompileFieldInitializer(u.Location, u.Field, u.Value)
	if block == nil {
		return nil, err
	}
	return block, err
}

// UnitResult is the result of lowering a unit.
// Output is nil if the unit failed, or if it has no representation in the output.
type UnitResult struct {
	Unit   Unit
	Output jsast.Node
	Err    error
}

// CompileUnits lowers the given units, at most parallelism at a time.
//
// A failing unit is reported and recorded in its result, and the other units are still lowered.
// If the context is cancelled, no further units are started, and the context's error is returned.
func CompileUnits(
	ctx context.Context,
	config *Config,
	units []Unit,
	parallelism int,
) ([]UnitResult, error) {

	if parallelism < 1 {
		parallelism = 1
	}

	compiler := NewMethodCompiler(config)
	results := make([]UnitResult, len(units))

	// The group's context is cancelled once Wait returns,
	// so only the caller's context decides the outcome
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallelism)

	for i, unit := range units {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			output, err := unit.Compile(compiler)
			results[i] = UnitResult{
				Unit:   unit,
				Output: output,
				Err:    err,
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	return results, nil
}
