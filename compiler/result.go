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
	"github.com/onflow/scriptc/jsast"
)

// Result is the lowering of an expression:
// the statements of the prelude must be executed, in order,
// before the expression is evaluated.
type Result struct {
	Prelude    []jsast.Statement
	Expression jsast.Expression
}

func expressionResult(expression jsast.Expression) Result {
	return Result{
		Expression: expression,
	}
}

func (r Result) HasPrelude() bool {
	return len(r.Prelude) > 0
}

// Statements returns the prelude followed by the expression as a statement.
func (r Result) Statements() []jsast.Statement {
	if r.Expression == nil {
		return r.Prelude
	}
	statements := make([]jsast.Statement, 0, len(r.Prelude)+1)
	statements = append(statements, r.Prelude...)
	return append(statements, jsast.NewExpressionStatement(r.Expression))
}
