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

package activations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/scriptc/common"
)

func TestActivations(t *testing.T) {

	t.Parallel()

	activations := NewActivations[string](nil)

	_, ok := activations.Find(common.StringEntry("a"))
	assert.False(t, ok)

	activations.Set(common.StringEntry("a"), "$a")
	require.Equal(t, 1, activations.Depth())

	activations.PushNewWithCurrent()
	activations.Set(common.StringEntry("b"), "$b")

	value, ok := activations.Find(common.StringEntry("a"))
	require.True(t, ok)
	assert.Equal(t, "$a", value)

	value, ok = activations.Find(common.StringEntry("b"))
	require.True(t, ok)
	assert.Equal(t, "$b", value)

	activations.Pop()

	_, ok = activations.Find(common.StringEntry("b"))
	assert.False(t, ok)
}

func TestActivationsSnapshot(t *testing.T) {

	t.Parallel()

	parent := NewActivations[int](nil)
	parent.Set(common.StringEntry("x"), 1)

	child := NewActivations(parent)
	child.Set(common.StringEntry("y"), 2)

	// the parent changes after the child was created
	parent.Set(common.StringEntry("z"), 3)

	value, ok := child.Find(common.StringEntry("x"))
	require.True(t, ok)
	assert.Equal(t, 1, value)

	_, ok = child.Find(common.StringEntry("z"))
	assert.False(t, ok)

	_, ok = parent.Find(common.StringEntry("y"))
	assert.False(t, ok)
}
