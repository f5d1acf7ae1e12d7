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
	"github.com/onflow/scriptc/errors"
)

type BinaryOperator uint8

const (
	BinaryOperatorUnknown BinaryOperator = iota
	BinaryOperatorComma
	BinaryOperatorAssign
	BinaryOperatorAddAssign
	BinaryOperatorSubtractAssign
	BinaryOperatorMultiplyAssign
	BinaryOperatorDivideAssign
	BinaryOperatorModuloAssign
	BinaryOperatorBitwiseAndAssign
	BinaryOperatorBitwiseOrAssign
	BinaryOperatorBitwiseXorAssign
	BinaryOperatorLeftShiftAssign
	BinaryOperatorRightShiftAssign
	BinaryOperatorLogicalOr
	BinaryOperatorLogicalAnd
	BinaryOperatorBitwiseOr
	BinaryOperatorBitwiseXor
	BinaryOperatorBitwiseAnd
	BinaryOperatorEqual
	BinaryOperatorNotEqual
	BinaryOperatorStrictEqual
	BinaryOperatorStrictNotEqual
	BinaryOperatorLess
	BinaryOperatorLessEqual
	BinaryOperatorGreater
	BinaryOperatorGreaterEqual
	BinaryOperatorLeftShift
	BinaryOperatorRightShift
	BinaryOperatorAdd
	BinaryOperatorSubtract
	BinaryOperatorMultiply
	BinaryOperatorDivide
	BinaryOperatorModulo
)

func (o BinaryOperator) Symbol() string {
	switch o {
	case BinaryOperatorComma:
		return ","
	case BinaryOperatorAssign:
		return "="
	case BinaryOperatorAddAssign:
		return "+="
	case BinaryOperatorSubtractAssign:
		return "-="
	case BinaryOperatorMultiplyAssign:
		return "*="
	case BinaryOperatorDivideAssign:
		return "/="
	case BinaryOperatorModuloAssign:
		return "%="
	case BinaryOperatorBitwiseAndAssign:
		return "&="
	case BinaryOperatorBitwiseOrAssign:
		return "|="
	case BinaryOperatorBitwiseXorAssign:
		return "^="
	case BinaryOperatorLeftShiftAssign:
		return "<<="
	case BinaryOperatorRightShiftAssign:
		return ">>="
	case BinaryOperatorLogicalOr:
		return "||"
	case BinaryOperatorLogicalAnd:
		return "&&"
	case BinaryOperatorBitwiseOr:
		return "|"
	case BinaryOperatorBitwiseXor:
		return "^"
	case BinaryOperatorBitwiseAnd:
		return "&"
	case BinaryOperatorEqual:
		return "=="
	case BinaryOperatorNotEqual:
		return "!="
	case BinaryOperatorStrictEqual:
		return "==="
	case BinaryOperatorStrictNotEqual:
		return "!=="
	case BinaryOperatorLess:
		return "<"
	case BinaryOperatorLessEqual:
		return "<="
	case BinaryOperatorGreater:
		return ">"
	case BinaryOperatorGreaterEqual:
		return ">="
	case BinaryOperatorLeftShift:
		return "<<"
	case BinaryOperatorRightShift:
		return ">>"
	case BinaryOperatorAdd:
		return "+"
	case BinaryOperatorSubtract:
		return "-"
	case BinaryOperatorMultiply:
		return "*"
	case BinaryOperatorDivide:
		return "/"
	case BinaryOperatorModulo:
		return "%"
	}

	panic(errors.NewUnreachableError())
}

func (o BinaryOperator) precedence() precedence {
	switch o {
	case BinaryOperatorComma:
		return precedenceSequence
	case BinaryOperatorLogicalOr:
		return precedenceLogicalOr
	case BinaryOperatorLogicalAnd:
		return precedenceLogicalAnd
	case BinaryOperatorBitwiseOr:
		return precedenceBitwiseOr
	case BinaryOperatorBitwiseXor:
		return precedenceBitwiseXor
	case BinaryOperatorBitwiseAnd:
		return precedenceBitwiseAnd
	case BinaryOperatorEqual,
		BinaryOperatorNotEqual,
		BinaryOperatorStrictEqual,
		BinaryOperatorStrictNotEqual:
		return precedenceEquality
	case BinaryOperatorLess,
		BinaryOperatorLessEqual,
		BinaryOperatorGreater,
		BinaryOperatorGreaterEqual:
		return precedenceRelational
	case BinaryOperatorLeftShift, BinaryOperatorRightShift:
		return precedenceShift
	case BinaryOperatorAdd, BinaryOperatorSubtract:
		return precedenceAdditive
	case BinaryOperatorMultiply, BinaryOperatorDivide, BinaryOperatorModulo:
		return precedenceMultiplicative
	}
	if o.IsAssignment() {
		return precedenceAssignment
	}

	panic(errors.NewUnreachableError())
}

// IsAssignment returns true for simple and compound assignment operators.
func (o BinaryOperator) IsAssignment() bool {
	return o >= BinaryOperatorAssign &&
		o <= BinaryOperatorRightShiftAssign
}

// CompoundAssignment returns the compound assignment operator for an arithmetic operator,
// e.g. += for +.
func (o BinaryOperator) CompoundAssignment() (BinaryOperator, bool) {
	switch o {
	case BinaryOperatorAdd:
		return BinaryOperatorAddAssign, true
	case BinaryOperatorSubtract:
		return BinaryOperatorSubtractAssign, true
	case BinaryOperatorMultiply:
		return BinaryOperatorMultiplyAssign, true
	case BinaryOperatorDivide:
		return BinaryOperatorDivideAssign, true
	case BinaryOperatorModulo:
		return BinaryOperatorModuloAssign, true
	case BinaryOperatorBitwiseAnd:
		return BinaryOperatorBitwiseAndAssign, true
	case BinaryOperatorBitwiseOr:
		return BinaryOperatorBitwiseOrAssign, true
	case BinaryOperatorBitwiseXor:
		return BinaryOperatorBitwiseXorAssign, true
	case BinaryOperatorLeftShift:
		return BinaryOperatorLeftShiftAssign, true
	case BinaryOperatorRightShift:
		return BinaryOperatorRightShiftAssign, true
	}
	return BinaryOperatorUnknown, false
}

type UnaryOperator uint8

const (
	UnaryOperatorUnknown UnaryOperator = iota
	UnaryOperatorNegate
	UnaryOperatorPlus
	UnaryOperatorLogicalNot
	UnaryOperatorBitwiseNot
	UnaryOperatorTypeOf
	UnaryOperatorPrefixIncrement
	UnaryOperatorPrefixDecrement
	UnaryOperatorPostfixIncrement
	UnaryOperatorPostfixDecrement
)

func (o UnaryOperator) Symbol() string {
	switch o {
	case UnaryOperatorNegate:
		return "-"
	case UnaryOperatorPlus:
		return "+"
	case UnaryOperatorLogicalNot:
		return "!"
	case UnaryOperatorBitwiseNot:
		return "~"
	case UnaryOperatorTypeOf:
		return "typeof "
	case UnaryOperatorPrefixIncrement, UnaryOperatorPostfixIncrement:
		return "++"
	case UnaryOperatorPrefixDecrement, UnaryOperatorPostfixDecrement:
		return "--"
	}

	panic(errors.NewUnreachableError())
}

func (o UnaryOperator) IsPostfix() bool {
	return o == UnaryOperatorPostfixIncrement ||
		o == UnaryOperatorPostfixDecrement
}
