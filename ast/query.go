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

import (
	"strings"

	"github.com/onflow/scriptc/sema"
)

// QueryExpression is a query comprehension.
// The first clause is always a FromClause.
//
// Each clause carries the combinator method the front end resolved for it,
// e.g. the Where method for a WhereClause.
type QueryExpression struct {
	Clauses []QueryClause
	Type    sema.Type
	Range
}

var _ Expression = &QueryExpression{}

func (*QueryExpression) isExpression() {}

func (*QueryExpression) ElementType() ElementType {
	return ElementTypeQueryExpression
}

func (e *QueryExpression) Walk(walkChild func(Element)) {
	for _, clause := range e.Clauses {
		walkChild(clause)
	}
}

func (e *QueryExpression) ResultType() sema.Type {
	return e.Type
}

func (e *QueryExpression) String() string {
	parts := make([]string, 0, len(e.Clauses))
	for _, clause := range e.Clauses {
		parts = append(parts, clause.String())
	}
	return strings.Join(parts, " ")
}

type QueryClause interface {
	Element
	isQueryClause()
	String() string
}

// FromClause introduces a range variable over Source.
// CastMethod is set if the range variable has an explicit type.
// SelectManyMethod is set for every from clause but the first.
type FromClause struct {
	Variable         *sema.RangeVariable
	Source           Expression
	CastMethod       *sema.Method
	SelectManyMethod *sema.Method
	Range
}

var _ QueryClause = &FromClause{}

func (*FromClause) isQueryClause() {}

func (*FromClause) ElementType() ElementType {
	return ElementTypeFromClause
}

func (c *FromClause) Walk(walkChild func(Element)) {
	walkChild(c.Source)
}

func (c *FromClause) String() string {
	return "from " + c.Variable.Identifier + " in " + c.Source.String()
}

// LetClause

type LetClause struct {
	Variable *sema.RangeVariable
	Value    Expression
	Method   *sema.Method
	Range
}

var _ QueryClause = &LetClause{}

func (*LetClause) isQueryClause() {}

func (*LetClause) ElementType() ElementType {
	return ElementTypeLetClause
}

func (c *LetClause) Walk(walkChild func(Element)) {
	walkChild(c.Value)
}

func (c *LetClause) String() string {
	return "let " + c.Variable.Identifier + " = " + c.Value.String()
}

// WhereClause

type WhereClause struct {
	Predicate Expression
	Method    *sema.Method
	Range
}

var _ QueryClause = &WhereClause{}

func (*WhereClause) isQueryClause() {}

func (*WhereClause) ElementType() ElementType {
	return ElementTypeWhereClause
}

func (c *WhereClause) Walk(walkChild func(Element)) {
	walkChild(c.Predicate)
}

func (c *WhereClause) String() string {
	return "where " + c.Predicate.String()
}

// JoinClause is a join, or a group join if Into is set.
type JoinClause struct {
	Variable    *sema.RangeVariable
	InnerSource Expression
	CastMethod  *sema.Method
	OuterKey    Expression
	InnerKey    Expression
	Method      *sema.Method
	Into        *sema.RangeVariable
	Range
}

var _ QueryClause = &JoinClause{}

func (*JoinClause) isQueryClause() {}

func (*JoinClause) ElementType() ElementType {
	return ElementTypeJoinClause
}

func (c *JoinClause) Walk(walkChild func(Element)) {
	walkChild(c.InnerSource)
	walkChild(c.OuterKey)
	walkChild(c.InnerKey)
}

func (c *JoinClause) IsGroupJoin() bool {
	return c.Into != nil
}

func (c *JoinClause) String() string {
	result := "join " + c.Variable.Identifier + " in " + c.InnerSource.String() +
		" on " + c.OuterKey.String() + " equals " + c.InnerKey.String()
	if c.Into != nil {
		result += " into " + c.Into.Identifier
	}
	return result
}

// Ordering is one key of an orderby clause.
// Method is the primary or secondary ordering combinator,
// depending on the position of the key.
type Ordering struct {
	Key        Expression
	Descending bool
	Method     *sema.Method
}

// OrderByClause

type OrderByClause struct {
	Orderings []*Ordering
	Range
}

var _ QueryClause = &OrderByClause{}

func (*OrderByClause) isQueryClause() {}

func (*OrderByClause) ElementType() ElementType {
	return ElementTypeOrderByClause
}

func (c *OrderByClause) Walk(walkChild func(Element)) {
	for _, ordering := range c.Orderings {
		walkChild(ordering.Key)
	}
}

func (c *OrderByClause) String() string {
	parts := make([]string, 0, len(c.Orderings))
	for _, ordering := range c.Orderings {
		part := ordering.Key.String()
		if ordering.Descending {
			part += " descending"
		}
		parts = append(parts, part)
	}
	return "orderby " + strings.Join(parts, ", ")
}

// SelectClause

type SelectClause struct {
	Projection Expression
	Method     *sema.Method
	Range
}

var _ QueryClause = &SelectClause{}

func (*SelectClause) isQueryClause() {}

func (*SelectClause) ElementType() ElementType {
	return ElementTypeSelectClause
}

func (c *SelectClause) Walk(walkChild func(Element)) {
	walkChild(c.Projection)
}

func (c *SelectClause) String() string {
	return "select " + c.Projection.String()
}

// GroupClause

type GroupClause struct {
	Projection Expression
	Key        Expression
	Method     *sema.Method
	Range
}

var _ QueryClause = &GroupClause{}

func (*GroupClause) isQueryClause() {}

func (*GroupClause) ElementType() ElementType {
	return ElementTypeGroupClause
}

func (c *GroupClause) Walk(walkChild func(Element)) {
	walkChild(c.Projection)
	walkChild(c.Key)
}

func (c *GroupClause) String() string {
	return "group " + c.Projection.String() + " by " + c.Key.String()
}

// ContinuationClause (`into x`) follows a select or group clause
// and starts a new comprehension over its result.
type ContinuationClause struct {
	Variable *sema.RangeVariable
	Range
}

var _ QueryClause = &ContinuationClause{}

func (*ContinuationClause) isQueryClause() {}

func (*ContinuationClause) ElementType() ElementType {
	return ElementTypeContinuationClause
}

func (*ContinuationClause) Walk(_ func(Element)) {}

func (c *ContinuationClause) String() string {
	return "into " + c.Variable.Identifier
}
