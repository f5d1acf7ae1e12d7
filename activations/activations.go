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
	"github.com/raviqqe/hamt"
)

// Activations is a stack of activation records.
// Each entry represents a new scope.
//
// Records are persistent maps, so a snapshot of the current record
// is never affected by later changes.
type Activations[T any] struct {
	activations []hamt.Map
}

// NewActivations returns a new stack.
// If a parent is given, the first record of the new stack
// is a snapshot of the parent's current record.
func NewActivations[T any](parent *Activations[T]) *Activations[T] {
	activations := &Activations[T]{}
	if parent != nil {
		activations.Push(parent.CurrentOrNew())
	}
	return activations
}

func (a *Activations[T]) current() *hamt.Map {
	count := len(a.activations)
	if count < 1 {
		return nil
	}
	current := a.activations[count-1]
	return &current
}

// Find returns the value bound to the given key in the current scope.
func (a *Activations[T]) Find(key hamt.Entry) (value T, ok bool) {
	current := a.current()
	if current == nil {
		return
	}
	result := current.Find(key)
	if result == nil {
		return
	}
	return result.(T), true
}

// Set binds the given key in the current scope.
func (a *Activations[T]) Set(key hamt.Entry, value T) {
	current := a.current()
	if current == nil {
		a.PushNewWithCurrent()
		current = &a.activations[0]
	}

	count := len(a.activations)
	a.activations[count-1] = current.Insert(key, value)
}

// PushNewWithCurrent pushes a new scope, which initially contains
// all bindings of the current scope.
func (a *Activations[T]) PushNewWithCurrent() {
	a.Push(a.CurrentOrNew())
}

func (a *Activations[T]) Push(activation hamt.Map) {
	a.activations = append(
		a.activations,
		activation,
	)
}

func (a *Activations[T]) Pop() {
	count := len(a.activations)
	if count < 1 {
		return
	}
	a.activations = a.activations[:count-1]
}

// CurrentOrNew returns the current record, or an empty one.
func (a *Activations[T]) CurrentOrNew() hamt.Map {
	current := a.current()
	if current == nil {
		return hamt.NewMap()
	}

	return *current
}

func (a *Activations[T]) Depth() int {
	return len(a.activations)
}
