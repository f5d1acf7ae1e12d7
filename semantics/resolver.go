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

import (
	"sync"

	"github.com/onflow/scriptc/sema"
)

// MetadataImporter decides how symbols are represented in the output.
type MetadataImporter interface {
	// MemberSemantics returns the semantics of a method, property, indexer, field or event.
	MemberSemantics(member sema.Member) SymbolSemantics
	ConstructorSemantics(constructor *sema.Constructor) ConstructorSemantics
	TypeSemantics(compositeType *sema.CompositeType) TypeSemantics
}

// Resolver memoizes the semantics returned by a MetadataImporter,
// so repeated lookups of the same symbol yield the identical descriptor.
//
// A Resolver may be shared by concurrently running compilations.
type Resolver struct {
	importer     MetadataImporter
	mutex        sync.RWMutex
	members      map[sema.Member]SymbolSemantics
	constructors map[*sema.Constructor]ConstructorSemantics
	types        map[*sema.CompositeType]TypeSemantics
}

func NewResolver(importer MetadataImporter) *Resolver {
	return &Resolver{
		importer:     importer,
		members:      map[sema.Member]SymbolSemantics{},
		constructors: map[*sema.Constructor]ConstructorSemantics{},
		types:        map[*sema.CompositeType]TypeSemantics{},
	}
}

// memoize returns the cached value for the key,
// or computes, caches and returns it.
// The first computed value wins if two callers race.
func memoize[K comparable, V any](
	mutex *sync.RWMutex,
	cache map[K]V,
	key K,
	compute func(K) V,
) V {
	mutex.RLock()
	value, ok := cache[key]
	mutex.RUnlock()
	if ok {
		return value
	}

	computed := compute(key)

	mutex.Lock()
	defer mutex.Unlock()

	value, ok = cache[key]
	if ok {
		return value
	}
	cache[key] = computed
	return computed
}

func (r *Resolver) MemberSemantics(member sema.Member) SymbolSemantics {
	return memoize(&r.mutex, r.members, member, r.importer.MemberSemantics)
}

func (r *Resolver) ConstructorSemantics(constructor *sema.Constructor) ConstructorSemantics {
	return memoize(&r.mutex, r.constructors, constructor, r.importer.ConstructorSemantics)
}

func (r *Resolver) TypeSemantics(compositeType *sema.CompositeType) TypeSemantics {
	return memoize(&r.mutex, r.types, compositeType, r.importer.TypeSemantics)
}

// MethodSemantics is a convenience for methods.
func (r *Resolver) MethodSemantics(method *sema.Method) SymbolSemantics {
	return r.MemberSemantics(method)
}
