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
	"fmt"

	"github.com/onflow/scriptc/ast"
	"github.com/onflow/scriptc/errors"
)

// LoweringError is an error of a construct which cannot be lowered.
type LoweringError interface {
	errors.UserError
	ast.HasPosition
	isLoweringError()
}

// UnsupportedShapeError is reported for a construct which has no representation in the output,
// e.g. indexing with more than one index.
type UnsupportedShapeError struct {
	Construct string
	// Dimensions is the number of dimensions found, if the construct is rejected for its dimensionality
	Dimensions int
	Reason     string
	ast.Range
}

var _ LoweringError = &UnsupportedShapeError{}
var _ errors.SecondaryError = &UnsupportedShapeError{}

func (*UnsupportedShapeError) isLoweringError() {}

func (*UnsupportedShapeError) IsUserError() {}

func (e *UnsupportedShapeError) Error() string {
	if e.Dimensions > 1 {
		return fmt.Sprintf(
			"unsupported %s: found %d dimensions, only one dimension is supported",
			e.Construct,
			e.Dimensions,
		)
	}
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Construct, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Construct)
}

func (e *UnsupportedShapeError) SecondaryError() string {
	if e.Dimensions > 1 {
		return "use a single index"
	}
	return "cannot be represented in the output"
}

func newDimensionError(construct string, dimensions int, hasPosition ast.HasPosition) *UnsupportedShapeError {
	return &UnsupportedShapeError{
		Construct:  construct,
		Dimensions: dimensions,
		Range:      ast.NewRangeFromPositioned(hasPosition),
	}
}

// UnresolvedSemanticsError is reported for a symbol used in executable code
// which has no usable representation in the output.
type UnresolvedSemanticsError struct {
	Kind   string
	Symbol string
	// Cause is set if the representation exists, but cannot be applied,
	// e.g. a code template with an unknown hole
	Cause error
	ast.Range
}

var _ LoweringError = &UnresolvedSemanticsError{}
var _ errors.SecondaryError = &UnresolvedSemanticsError{}

func (*UnresolvedSemanticsError) isLoweringError() {}

func (*UnresolvedSemanticsError) IsUserError() {}

func (e *UnresolvedSemanticsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf(
			"cannot use %s `%s`: %s",
			e.Kind,
			e.Symbol,
			e.Cause.Error(),
		)
	}
	return fmt.Sprintf(
		"cannot use %s `%s`: it has no representation in the output",
		e.Kind,
		e.Symbol,
	)
}

func (e *UnresolvedSemanticsError) Unwrap() error {
	return e.Cause
}

func (e *UnresolvedSemanticsError) SecondaryError() string {
	if secondaryError, ok := e.Cause.(errors.SecondaryError); ok {
		return secondaryError.SecondaryError()
	}
	return "not usable from compiled code"
}

// ScopingViolationError is reported if a lambda generated for a query clause
// would refer to a range variable which is not in scope for it,
// e.g. the inner key selector of a join referring to a range variable of the outer sequence.
type ScopingViolationError struct {
	Variable string
	Clause   string
	ast.Range
}

var _ LoweringError = &ScopingViolationError{}
var _ errors.ErrorNotes = &ScopingViolationError{}

func (*ScopingViolationError) isLoweringError() {}

func (*ScopingViolationError) IsUserError() {}

func (e *ScopingViolationError) Error() string {
	return fmt.Sprintf(
		"range variable `%s` is not in scope in the %s",
		e.Variable,
		e.Clause,
	)
}

type scopingNote struct{}

func (scopingNote) Message() string {
	return "the inner key of a join cannot refer to the range variables of the outer sequence"
}

func (e *ScopingViolationError) ErrorNotes() []errors.ErrorNote {
	return []errors.ErrorNote{
		scopingNote{},
	}
}
