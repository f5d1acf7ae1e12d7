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

// MethodDeclaration is the body of a method or an accessor.
type MethodDeclaration struct {
	Method     *sema.Method
	Parameters []*sema.Variable
	Body       *Block
	Range
}

func (*MethodDeclaration) ElementType() ElementType {
	return ElementTypeMethodDeclaration
}

func (d *MethodDeclaration) Walk(walkChild func(Element)) {
	walkChild(d.Body)
}

type ConstructorInitializerKind uint8

const (
	ConstructorInitializerKindUnknown ConstructorInitializerKind = iota
	// ConstructorInitializerKindThis is a call of another constructor of the same type
	ConstructorInitializerKindThis
	// ConstructorInitializerKindBase is a call of a constructor of the base type
	ConstructorInitializerKindBase
)

// ConstructorInitializer is the `this(...)` or `base(...)` call of a constructor.
type ConstructorInitializer struct {
	Kind        ConstructorInitializerKind
	Constructor *sema.Constructor
	Arguments   []Expression
	Range
}

// ConstructorDeclaration is the body of a constructor.
// Initializer is nil if the constructor has no explicit initializer.
type ConstructorDeclaration struct {
	Constructor *sema.Constructor
	Parameters  []*sema.Variable
	Initializer *ConstructorInitializer
	Body        *Block
	Range
}

func (*ConstructorDeclaration) ElementType() ElementType {
	return ElementTypeConstructorDeclaration
}

func (d *ConstructorDeclaration) Walk(walkChild func(Element)) {
	if d.Initializer != nil {
		walkExpressions(walkChild, d.Initializer.Arguments)
	}
	if d.Body != nil {
		walkChild(d.Body)
	}
}

// ChainsToSameType returns true if the constructor delegates
// to another constructor of the same type.
func (d *ConstructorDeclaration) ChainsToSameType() bool {
	return d != nil &&
		d.Initializer != nil &&
		d.Initializer.Kind == ConstructorInitializerKindThis
}
