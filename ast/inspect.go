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

package ast

// Inspect traverses an element in depth-first order.
// It calls f for each element, and descends into the element's children
// only if f returns true.
func Inspect(element Element, f func(Element) bool) {
	if element == nil || !f(element) {
		return
	}
	element.Walk(func(child Element) {
		Inspect(child, f)
	})
}

// ReferencedRangeVariables returns the range variables
// referenced anywhere in the given element, in order of first reference.
func ReferencedRangeVariables(element Element) []*RangeVariableExpression {
	var result []*RangeVariableExpression
	Inspect(element, func(element Element) bool {
		if reference, ok := element.(*RangeVariableExpression); ok {
			result = append(result, reference)
		}
		return true
	})
	return result
}
