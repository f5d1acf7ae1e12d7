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

package semantics

// SymbolSemantics describes how a member is represented in the output.
// The set of variants is closed.
type SymbolSemantics interface {
	isSymbolSemantics()
}

// NormalCall is a method called by name.
// If IgnoreGenericArguments is false, type arguments are passed
// as leading arguments.
type NormalCall struct {
	Name                   string
	IgnoreGenericArguments bool
}

var _ SymbolSemantics = NormalCall{}

func (NormalCall) isSymbolSemantics() {}

// InlineTemplate is a member whose uses are replaced by the expansion of a code template.
type InlineTemplate struct {
	Template *Template
}

var _ SymbolSemantics = InlineTemplate{}

func (InlineTemplate) isSymbolSemantics() {}

// FieldAccess is a field, or a property or event stored like a field.
type FieldAccess struct {
	Name string
}

var _ SymbolSemantics = FieldAccess{}

func (FieldAccess) isSymbolSemantics() {}

// NativeIndexer is an indexer represented by the native index operator.
type NativeIndexer struct{}

var _ SymbolSemantics = NativeIndexer{}

func (NativeIndexer) isSymbolSemantics() {}

// StaticWithExplicitReceiver is an instance method represented as a static function
// of the declaring type, which takes the receiver as its first argument.
type StaticWithExplicitReceiver struct {
	Name string
}

var _ SymbolSemantics = StaticWithExplicitReceiver{}

func (StaticWithExplicitReceiver) isSymbolSemantics() {}

// PropertyAccessors is a property or indexer represented by accessor methods.
// Get or Set is nil if the accessor does not exist.
type PropertyAccessors struct {
	Get SymbolSemantics
	Set SymbolSemantics
}

var _ SymbolSemantics = PropertyAccessors{}

func (PropertyAccessors) isSymbolSemantics() {}

// EventAccessors is an event represented by add and remove methods.
type EventAccessors struct {
	Add    SymbolSemantics
	Remove SymbolSemantics
}

var _ SymbolSemantics = EventAccessors{}

func (EventAccessors) isSymbolSemantics() {}

// Unusable is a member which cannot be used from compiled code.
type Unusable struct{}

var _ SymbolSemantics = Unusable{}

func (Unusable) isSymbolSemantics() {}

// ConstructorSemantics describes how a constructor is represented in the output.
type ConstructorSemantics interface {
	isConstructorSemantics()
}

// UnnamedConstructor is the type's constructor function itself, called with `new`.
type UnnamedConstructor struct{}

var _ ConstructorSemantics = UnnamedConstructor{}

func (UnnamedConstructor) isConstructorSemantics() {}

// NamedConstructor is an additional constructor function stored on the type,
// called with `new`.
type NamedConstructor struct {
	Name string
}

var _ ConstructorSemantics = NamedConstructor{}

func (NamedConstructor) isConstructorSemantics() {}

// StaticFactory is a static method which creates and returns the instance.
type StaticFactory struct {
	Name string
}

var _ ConstructorSemantics = StaticFactory{}

func (StaticFactory) isConstructorSemantics() {}

// InlineConstructor is a constructor whose uses are replaced
// by the expansion of a code template.
type InlineConstructor struct {
	Template *Template
}

var _ ConstructorSemantics = InlineConstructor{}

func (InlineConstructor) isConstructorSemantics() {}

// UnusableConstructor

type UnusableConstructor struct{}

var _ ConstructorSemantics = UnusableConstructor{}

func (UnusableConstructor) isConstructorSemantics() {}

// IsThisConstructing returns true if the constructor initializes
// a receiver created by `new`, as opposed to creating the instance itself.
func IsThisConstructing(semantics ConstructorSemantics) bool {
	switch semantics.(type) {
	case UnnamedConstructor, NamedConstructor:
		return true
	default:
		return false
	}
}

// TypeSemantics describes how a type is represented in the output.
type TypeSemantics interface {
	isTypeSemantics()
}

// NormalType is a type referred to by name.
type NormalType struct {
	Name string
}

var _ TypeSemantics = NormalType{}

func (NormalType) isTypeSemantics() {}

// UnusableType

type UnusableType struct{}

var _ TypeSemantics = UnusableType{}

func (UnusableType) isTypeSemantics() {}
