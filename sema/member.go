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

package sema

import (
	"github.com/onflow/scriptc/common"
)

// Member is a resolved member of a type.
type Member interface {
	isMember()
	MemberKind() common.MemberKind
	MemberName() string
	MemberDeclaringType() *CompositeType
	IsStatic() bool
}

// Parameter is a parameter of a method, indexer or constructor.
type Parameter struct {
	Identifier string
	Type       Type
	IsByRef    bool
}

// Method

type Method struct {
	Identifier     string
	DeclaringType  *CompositeType
	Static         bool
	IsExtension    bool
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	ReturnType     Type
}

var _ Member = &Method{}

func (*Method) isMember() {}

func (*Method) MemberKind() common.MemberKind {
	return common.MemberKindMethod
}

func (m *Method) MemberName() string {
	return m.Identifier
}

func (m *Method) MemberDeclaringType() *CompositeType {
	return m.DeclaringType
}

func (m *Method) IsStatic() bool {
	return m.Static
}

func (m *Method) String() string {
	return QualifiedName(m)
}

// Property is a property, or an indexer if IsIndexer is set.
type Property struct {
	Identifier    string
	DeclaringType *CompositeType
	Static        bool
	Type          Type
	IsIndexer     bool
	Parameters    []*Parameter
}

var _ Member = &Property{}

func (*Property) isMember() {}

func (p *Property) MemberKind() common.MemberKind {
	if p.IsIndexer {
		return common.MemberKindIndexer
	}
	return common.MemberKindProperty
}

func (p *Property) MemberName() string {
	return p.Identifier
}

func (p *Property) MemberDeclaringType() *CompositeType {
	return p.DeclaringType
}

func (p *Property) IsStatic() bool {
	return p.Static
}

func (p *Property) String() string {
	return QualifiedName(p)
}

// Field

type Field struct {
	Identifier    string
	DeclaringType *CompositeType
	Static        bool
	Type          Type
}

var _ Member = &Field{}

func (*Field) isMember() {}

func (*Field) MemberKind() common.MemberKind {
	return common.MemberKindField
}

func (f *Field) MemberName() string {
	return f.Identifier
}

func (f *Field) MemberDeclaringType() *CompositeType {
	return f.DeclaringType
}

func (f *Field) IsStatic() bool {
	return f.Static
}

func (f *Field) String() string {
	return QualifiedName(f)
}

// Event

type Event struct {
	Identifier    string
	DeclaringType *CompositeType
	Static        bool
	Type          *DelegateType
}

var _ Member = &Event{}

func (*Event) isMember() {}

func (*Event) MemberKind() common.MemberKind {
	return common.MemberKindEvent
}

func (e *Event) MemberName() string {
	return e.Identifier
}

func (e *Event) MemberDeclaringType() *CompositeType {
	return e.DeclaringType
}

func (e *Event) IsStatic() bool {
	return e.Static
}

func (e *Event) String() string {
	return QualifiedName(e)
}

// Constructor

const ConstructorName = ".ctor"

type Constructor struct {
	DeclaringType *CompositeType
	Parameters    []*Parameter
}

var _ Member = &Constructor{}

func (*Constructor) isMember() {}

func (*Constructor) MemberKind() common.MemberKind {
	return common.MemberKindConstructor
}

func (*Constructor) MemberName() string {
	return ConstructorName
}

func (c *Constructor) MemberDeclaringType() *CompositeType {
	return c.DeclaringType
}

func (*Constructor) IsStatic() bool {
	return false
}

func (c *Constructor) String() string {
	return QualifiedName(c)
}

// QualifiedName returns the name of the member, qualified by the name of its declaring type
func QualifiedName(member Member) string {
	declaringType := member.MemberDeclaringType()
	if declaringType == nil {
		return member.MemberName()
	}
	return declaringType.Identifier + "." + member.MemberName()
}

// Variable is a local variable or a parameter.
type Variable struct {
	Identifier  string
	Type        Type
	IsParameter bool
	// IsCaptured is set if a nested function refers to the variable
	IsCaptured bool
	// IsByRef is set if the variable is passed by reference,
	// in which case it is stored in a box
	IsByRef bool
}

func (v *Variable) String() string {
	return v.Identifier
}

// RangeVariable is the iteration variable introduced by a query clause.
type RangeVariable struct {
	Identifier string
	Type       Type
}

func (v *RangeVariable) String() string {
	return v.Identifier
}
