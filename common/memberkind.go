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

// MemberKind is the kind of a member of a type.
type MemberKind uint8

const (
	MemberKindUnknown MemberKind = iota
	MemberKindMethod
	MemberKindProperty
	MemberKindIndexer
	MemberKindField
	MemberKindEvent
	MemberKindConstructor
)

func (k MemberKind) Name() string {
	switch k {
	case MemberKindMethod:
		return "method"
	case MemberKindProperty:
		return "property"
	case MemberKindIndexer:
		return "indexer"
	case MemberKindField:
		return "field"
	case MemberKindEvent:
		return "event"
	case MemberKindConstructor:
		return "constructor"
	}

	return "unknown"
}

func (k MemberKind) String() string {
	return k.Name()
}

// HasAccessors returns true if members of this kind may be represented
// by a pair of accessor methods.
func (k MemberKind) HasAccessors() bool {
	switch k {
	case MemberKindProperty,
		MemberKindIndexer,
		MemberKindEvent:

		return true

	default:
		return false
	}
}
