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

package runtimelib

import (
	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/sema"
)

// CarrierField is a field of a synthesized carrier type.
type CarrierField struct {
	Name string
	Type jsast.Expression
}

// RuntimeLibrary produces the calls into the runtime library
// for operations the compiler does not implement itself.
// The compiler decides when each hook is used.
type RuntimeLibrary interface {
	// TypeOf returns a reference to the runtime representation of a type
	// which is not a composite type or a type parameter.
	TypeOf(t sema.Type) jsast.Expression
	// Lift wraps an operation over nullable operands,
	// so an absent operand results in an absent result.
	Lift(expression jsast.Expression) jsast.Expression
	// Cast converts a value to the target type, checking the conversion.
	Cast(expression jsast.Expression, targetType sema.Type, targetReference jsast.Expression) jsast.Expression
	// Upcast converts a value to a super type.
	Upcast(expression jsast.Expression, sourceType, targetType sema.Type) jsast.Expression
	CombineDelegates(a, b jsast.Expression) jsast.Expression
	RemoveDelegate(a, b jsast.Expression) jsast.Expression
	// Bind binds the receiver of a function.
	Bind(function, receiver jsast.Expression) jsast.Expression
	// DefaultValue returns the default value of a type.
	DefaultValue(t sema.Type, reference jsast.Expression) jsast.Expression
	// SynthesizeCarrierType returns a handle for a type with the given fields,
	// used in expression trees of queries.
	SynthesizeCarrierType(fields []CarrierField) jsast.Expression
	CarrierConstructor(carrierType jsast.Expression) jsast.Expression
	CarrierMember(carrierType jsast.Expression, name string) jsast.Expression
	// GetMember returns a handle for the member of a type, used in expression trees.
	GetMember(declaringType jsast.Expression, name string) jsast.Expression
	// ExpressionNode returns an expression which constructs an expression tree node.
	ExpressionNode(kind ExpressionNodeKind, arguments ...jsast.Expression) jsast.Expression
}
