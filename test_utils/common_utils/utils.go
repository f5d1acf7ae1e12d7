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

package common_utils

import (
	"strings"
	"testing"

	"github.com/k0kubun/pp/v3"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/onflow/scriptc/ast"
	"github.com/onflow/scriptc/common"
	"github.com/onflow/scriptc/errors"
)

func init() {
	pp.Default.SetColoringEnabled(false)
}

// TestLocation is the location of all units lowered in tests
const TestLocation = common.StringLocation("test")

// AssertEqualWithDiff asserts that two trees are deeply equal,
// and reports the differing fields if they are not.
func AssertEqualWithDiff(t testing.TB, expected, actual any) {
	t.Helper()

	differences := pretty.Diff(expected, actual)
	if len(differences) == 0 {
		return
	}

	t.Errorf(
		"trees differ:\n%s\nexpected: %s\nactual:   %s",
		strings.Join(differences, "\n"),
		pp.Sprint(expected),
		pp.Sprint(actual),
	)
}

// RequireError requires an error, and checks that every message
// reported for it can be produced, including those of wrapped errors
func RequireError(t testing.TB, err error) {
	t.Helper()

	require.Error(t, err)
	require.NotEmpty(t, err.Error())

	if positioned, ok := err.(ast.HasPosition); ok {
		require.LessOrEqual(t, positioned.StartPosition().Offset, positioned.EndPosition().Offset)
	}

	if notes, ok := err.(errors.ErrorNotes); ok {
		for _, note := range notes.ErrorNotes() {
			require.NotEmpty(t, note.Message())
		}
	}

	if secondary, ok := err.(errors.SecondaryError); ok {
		_ = secondary.SecondaryError()
	}

	if parent, ok := err.(errors.ParentError); ok {
		for _, child := range parent.ChildErrors() {
			RequireError(t, child)
		}
	}
}
