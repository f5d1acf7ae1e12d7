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

package naming

import (
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// UsedNames is the set of names already used in a scope.
type UsedNames interface {
	Contains(name string) bool
}

// Convention decides the names of variables in the output.
type Convention interface {
	// VariableName returns a name for the given source variable
	// which is not in the given set of used names.
	VariableName(identifier string, usedNames UsedNames) string
	// TypeParameterName returns the name of the parameter
	// through which a type argument is passed.
	TypeParameterName(identifier string) string
	// TemporaryName returns the name of the temporary with the given index.
	TemporaryName(index int) string
	// ThisAlias is the name of the receiver parameter of methods
	// compiled as static functions, and of the receiver of static factories.
	ThisAlias() string
}

// DefaultConvention prefixes every name, e.g. `$x`.
type DefaultConvention struct {
	Prefix          string
	TemporaryPrefix string
	This            string
}

var _ Convention = DefaultConvention{}

func NewDefaultConvention() DefaultConvention {
	return DefaultConvention{
		Prefix:          "$",
		TemporaryPrefix: "tmp",
		This:            "$this",
	}
}

func (c DefaultConvention) baseName(identifier string) string {
	name := c.Prefix + norm.NFC.String(identifier)
	if IsReservedWord(name) {
		name += "_"
	}
	return name
}

func (c DefaultConvention) VariableName(identifier string, usedNames UsedNames) string {
	base := c.baseName(identifier)
	name := base
	for index := 1; usedNames != nil && usedNames.Contains(name); index++ {
		name = base + strconv.Itoa(index)
	}
	return name
}

func (c DefaultConvention) TypeParameterName(identifier string) string {
	return c.baseName(identifier)
}

func (c DefaultConvention) TemporaryName(index int) string {
	return c.Prefix + c.TemporaryPrefix + strconv.Itoa(index)
}

func (c DefaultConvention) ThisAlias() string {
	return c.This
}
