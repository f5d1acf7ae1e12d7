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

type Operation uint

const (
	OperationUnknown Operation = iota

	// Binary

	OperationOr
	OperationAnd
	OperationEqual
	OperationNotEqual
	OperationLess
	OperationGreater
	OperationLessEqual
	OperationGreaterEqual
	OperationPlus
	OperationMinus
	OperationMul
	OperationDiv
	OperationMod
	OperationNullCoalesce
	OperationBitwiseOr
	OperationBitwiseXor
	OperationBitwiseAnd
	OperationBitwiseLeftShift
	OperationBitwiseRightShift

	// Unary

	OperationNegate
	OperationUnaryPlus
	OperationLogicalNot
	OperationBitwiseNot
	OperationPreIncrement
	OperationPreDecrement
	OperationPostIncrement
	OperationPostDecrement
)

func (s Operation) Symbol() string {
	switch s {
	case OperationOr:
		return "||"
	case OperationAnd:
		return "&&"
	case OperationEqual:
		return "=="
	case OperationNotEqual:
		return "!="
	case OperationLess:
		return "<"
	case OperationGreater:
		return ">"
	case OperationLessEqual:
		return "<="
	case OperationGreaterEqual:
		return ">="
	case OperationPlus, OperationUnaryPlus:
		return "+"
	case OperationMinus, OperationNegate:
		return "-"
	case OperationMul:
		return "*"
	case OperationDiv:
		return "/"
	case OperationMod:
		return "%"
	case OperationNullCoalesce:
		return "??"
	case OperationBitwiseOr:
		return "|"
	case OperationBitwiseXor:
		return "^"
	case OperationBitwiseAnd:
		return "&"
	case OperationBitwiseLeftShift:
		return "<<"
	case OperationBitwiseRightShift:
		return ">>"
	case OperationLogicalNot:
		return "!"
	case OperationBitwiseNot:
		return "~"
	case OperationPreIncrement, OperationPostIncrement:
		return "++"
	case OperationPreDecrement, OperationPostDecrement:
		return "--"
	}

	return ""
}

// IsIncrementOrDecrement returns true for the prefix and postfix
// increment and decrement operations.
func (s Operation) IsIncrementOrDecrement() bool {
	switch s {
	case OperationPreIncrement,
		OperationPreDecrement,
		OperationPostIncrement,
		OperationPostDecrement:

		return true

	default:
		return false
	}
}

func (s Operation) IsIncrement() bool {
	return s == OperationPreIncrement ||
		s == OperationPostIncrement
}

func (s Operation) IsPostfix() bool {
	return s == OperationPostIncrement ||
		s == OperationPostDecrement
}

// IsShortCircuit returns true for binary operations
// which only evaluate their right operand conditionally.
func (s Operation) IsShortCircuit() bool {
	switch s {
	case OperationAnd,
		OperationOr,
		OperationNullCoalesce:

		return true

	default:
		return false
	}
}

// IsLiftable returns true for operations which propagate an absent operand
// to an absent result when applied to nullable operands.
func (s Operation) IsLiftable() bool {
	switch s {
	case OperationPlus,
		OperationMinus,
		OperationMul,
		OperationDiv,
		OperationMod,
		OperationBitwiseOr,
		OperationBitwiseXor,
		OperationBitwiseAnd,
		OperationBitwiseLeftShift,
		OperationBitwiseRightShift,
		OperationLess,
		OperationGreater,
		OperationLessEqual,
		OperationGreaterEqual,
		OperationNegate,
		OperationUnaryPlus,
		OperationBitwiseNot,
		OperationLogicalNot:

		return true

	default:
		return false
	}
}
