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
	"github.com/onflow/scriptc/activations"
	"github.com/onflow/scriptc/common"
	"github.com/onflow/scriptc/common/persistent"
	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/naming"
	"github.com/onflow/scriptc/sema"
)

// rangeBinding is the value of a range variable in the current scope.
// If isNode is set, the expression is an expression tree node.
type rangeBinding struct {
	expression jsast.Expression
	isNode     bool
}

// Context is the compilation context of one method, constructor, initializer or accessor,
// or of a function nested in one.
//
// A context is not safe for concurrent use.
type Context struct {
	parent         *Context
	naming         naming.Convention
	usedNames      *persistent.OrderedSet[string]
	variables      *activations.Activations[string]
	rangeVariables *activations.Activations[rangeBinding]
	temporaries    map[string]struct{}
	temporaryCount int
}

// NewContext returns the context for a new unit.
// The names of the given type parameters are reserved.
func NewContext(convention naming.Convention, typeParameters []*sema.TypeParameter) *Context {
	context := &Context{
		naming:         convention,
		usedNames:      persistent.NewOrderedSet[string](nil),
		variables:      activations.NewActivations[string](nil),
		rangeVariables: activations.NewActivations[rangeBinding](nil),
		temporaries:    map[string]struct{}{},
	}
	for _, typeParameter := range typeParameters {
		context.Reserve(convention.TypeParameterName(typeParameter.Name))
	}
	return context
}

// Child returns the context for a function nested in the current one.
// The child sees the names used and the variables bound in the context so far,
// but never modifies the parent.
func (c *Context) Child() *Context {
	return &Context{
		parent:         c,
		naming:         c.naming,
		usedNames:      c.usedNames.Clone(),
		variables:      activations.NewActivations(c.variables),
		rangeVariables: activations.NewActivations(c.rangeVariables),
		temporaries:    map[string]struct{}{},
		temporaryCount: c.temporaryCount,
	}
}

// Absorb advances the temporary counter past all temporaries allocated by the given child,
// so temporaries of sibling functions are never numbered the same.
func (c *Context) Absorb(child *Context) {
	if child.temporaryCount > c.temporaryCount {
		c.temporaryCount = child.temporaryCount
	}
}

// Reserve marks the given name as used
func (c *Context) Reserve(name string) {
	c.usedNames.Add(name)
}

// Contains returns true if the given name is used
func (c *Context) Contains(name string) bool {
	return c.usedNames.Contains(name)
}

var _ naming.UsedNames = &Context{}

// AllocateTemporary returns the name of a fresh temporary
func (c *Context) AllocateTemporary() string {
	for {
		c.temporaryCount++
		name := c.naming.TemporaryName(c.temporaryCount)
		if c.usedNames.Contains(name) {
			continue
		}
		c.usedNames.Add(name)
		c.temporaries[name] = struct{}{}
		return name
	}
}

// IsTemporary returns true if the given name is a temporary of this context
// or of an enclosing one. Temporaries are assigned exactly once.
func (c *Context) IsTemporary(name string) bool {
	for context := c; context != nil; context = context.parent {
		if _, ok := context.temporaries[name]; ok {
			return true
		}
	}
	return false
}

// NameFor returns the name of the given variable.
// The name is chosen on first use, and stable afterwards.
func (c *Context) NameFor(variable *sema.Variable) string {
	return c.nameFor(variable, variable.Identifier)
}

// NameForRangeVariable returns the name of the given range variable,
// used for lambda parameters and carrier fields.
func (c *Context) NameForRangeVariable(variable *sema.RangeVariable) string {
	return c.nameFor(variable, variable.Identifier)
}

func (c *Context) nameFor(variable any, identifier string) string {
	key := common.NewIdentityEntry(variable, identifier)
	name, ok := c.variables.Find(key)
	if ok {
		return name
	}
	name = c.naming.VariableName(identifier, c.usedNames)
	c.usedNames.Add(name)
	c.variables.Set(key, name)
	return name
}

// ThisAlias returns the name of the receiver of static functions and factories.
func (c *Context) ThisAlias() string {
	alias := c.naming.ThisAlias()
	c.usedNames.Add(alias)
	return alias
}

func (c *Context) bindRangeVariable(variable *sema.RangeVariable, binding rangeBinding) {
	key := common.NewIdentityEntry(variable, variable.Identifier)
	c.rangeVariables.Set(key, binding)
}

func (c *Context) rangeVariable(variable *sema.RangeVariable) (rangeBinding, bool) {
	key := common.NewIdentityEntry(variable, variable.Identifier)
	return c.rangeVariables.Find(key)
}

func (c *Context) pushRangeScope() {
	c.rangeVariables.PushNewWithCurrent()
}

func (c *Context) popRangeScope() {
	c.rangeVariables.Pop()
}
