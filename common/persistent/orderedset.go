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

package persistent

// OrderedSet is a set of items which remembers insertion order.
// A set may have a parent set: a child contains all items of its parent,
// but adding items to the child never modifies the parent.
type OrderedSet[T comparable] struct {
	Parent *OrderedSet[T]
	items  map[T]struct{}
	order  []T
}

// NewOrderedSet returns a set with the given parent, which may be nil.
func NewOrderedSet[T comparable](parent *OrderedSet[T]) *OrderedSet[T] {
	return &OrderedSet[T]{
		Parent: parent,
	}
}

// Add inserts the item, unless it is already contained in the set or any of its parents.
func (s *OrderedSet[T]) Add(item T) {
	if s.Contains(item) {
		return
	}
	if s.items == nil {
		s.items = map[T]struct{}{}
	}
	s.items[item] = struct{}{}
	s.order = append(s.order, item)
}

// Contains returns true if the item is in the set or any of its parents.
func (s *OrderedSet[T]) Contains(item T) bool {
	for set := s; set != nil; set = set.Parent {
		if _, ok := set.items[item]; ok {
			return true
		}
	}
	return false
}

// ForEach calls the given function for each item.
// Items of the set itself are visited first, in insertion order,
// followed by the items of the parent.
// Iteration stops at the first error, which is returned.
func (s *OrderedSet[T]) ForEach(f func(item T) error) error {
	for set := s; set != nil; set = set.Parent {
		for _, item := range set.order {
			err := f(item)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Len returns the number of items in the set and all of its parents.
func (s *OrderedSet[T]) Len() int {
	count := 0
	for set := s; set != nil; set = set.Parent {
		count += len(set.order)
	}
	return count
}

// Clone returns a new child set of this set.
func (s *OrderedSet[T]) Clone() *OrderedSet[T] {
	return NewOrderedSet(s)
}
