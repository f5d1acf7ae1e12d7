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

package persistent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onflow/scriptc/common/persistent"
)

func collect(t *testing.T, set *persistent.OrderedSet[string]) []string {
	var result []string
	err := set.ForEach(func(item string) error {
		result = append(result, item)
		return nil
	})
	assert.NoError(t, err)
	return result
}

func TestOrderedSet(t *testing.T) {

	t.Parallel()

	// Parent set with only $a

	set := persistent.NewOrderedSet[string](nil)
	set.Add("$a")

	assert.True(t, set.Contains("$a"))
	assert.False(t, set.Contains("$b"))
	assert.Equal(t, []string{"$a"}, collect(t, set))

	// Child set with also $b

	set = set.Clone()
	assert.Equal(t, []string{"$a"}, collect(t, set))

	set.Add("$b")

	assert.True(t, set.Contains("$a"))
	assert.True(t, set.Contains("$b"))
	assert.Equal(t, []string{"$b", "$a"}, collect(t, set))

	// Grandchild with also $c, re-adding $a is a no-op

	set = set.Clone()
	set.Add("$c")
	set.Add("$a")

	assert.Equal(t, []string{"$c", "$b", "$a"}, collect(t, set))
	assert.Equal(t, 3, set.Len())

	// Pop

	set = set.Parent
	assert.False(t, set.Contains("$c"))
	assert.Equal(t, []string{"$b", "$a"}, collect(t, set))

	set = set.Parent
	assert.False(t, set.Contains("$b"))
	assert.Equal(t, []string{"$a"}, collect(t, set))
}

func TestOrderedSetForEachStops(t *testing.T) {

	t.Parallel()

	set := persistent.NewOrderedSet[int](nil)
	set.Add(1)
	set.Add(2)

	stop := assert.AnError
	var visited []int
	err := set.ForEach(func(item int) error {
		visited = append(visited, item)
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []int{1}, visited)
}
