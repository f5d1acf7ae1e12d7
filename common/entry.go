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

package common

import (
	"github.com/raviqqe/hamt"
	"github.com/segmentio/fasthash/fnv1a"
)

// StringEntry is a hamt entry keyed by a string.
type StringEntry string

var _ hamt.Entry = StringEntry("")

func (key StringEntry) Hash() uint32 {
	return fnv1a.HashString32(string(key))
}

func (key StringEntry) Equal(other hamt.Entry) bool {
	switch otherKey := other.(type) {
	case StringEntry:
		return string(otherKey) == string(key)
	case IdentityEntry:
		return false
	default:
		// Map entries wrap their key
		return other.Equal(key)
	}
}

// IdentityEntry is a hamt entry keyed by the identity of a pointer.
// Entries are hashed by name, so distinct keys with the same name
// collide in the hash but are never equal.
type IdentityEntry struct {
	Key  any
	Name string
}

var _ hamt.Entry = IdentityEntry{}

func NewIdentityEntry(key any, name string) IdentityEntry {
	return IdentityEntry{
		Key:  key,
		Name: name,
	}
}

func (key IdentityEntry) Hash() uint32 {
	return fnv1a.HashString32(key.Name)
}

func (key IdentityEntry) Equal(other hamt.Entry) bool {
	switch otherKey := other.(type) {
	case IdentityEntry:
		return otherKey.Key == key.Key
	case StringEntry:
		return false
	default:
		// Map entries wrap their key
		return other.Equal(key)
	}
}
