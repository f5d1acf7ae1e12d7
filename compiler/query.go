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
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/scriptc/ast"
	"github.com/onflow/scriptc/errors"
	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/runtimelib"
	"github.com/onflow/scriptc/sema"
	"github.com/onflow/scriptc/semantics"
)

// rangeEnvironment describes how the range variables in scope
// are stored in the current element of a query.
//
// An environment is either a single range variable,
// or a carrier with two fields: the previous environment and a new range variable.
// The name is the name of the lambda parameter and of the carrier field.
type rangeEnvironment struct {
	name     string
	variable *sema.RangeVariable
	fields   []*rangeEnvironment
	// handle refers to the synthesized carrier type, in expression trees
	handle jsast.Expression
}

func (e *rangeEnvironment) isSingle() bool {
	return e.variable != nil
}

// query is the state of the lowering of one query expression
type query struct {
	compiler   *Compiler
	expression *ast.QueryExpression
	prelude    []jsast.Statement
	// chain is the combinator call chain built so far
	chain       jsast.Expression
	environment *rangeEnvironment
	// combinatorCount is the number of combinator calls in the current comprehension
	combinatorCount int
	// rangeVariables are the range variables declared by the clauses compiled so far
	rangeVariables mapset.Set[*sema.RangeVariable]
}

// lambdaBody builds the body of a lambda passed to a combinator,
// as a function body, or as an expression tree.
// The roots are the lambda's parameters, or their parameter nodes.
type lambdaBody struct {
	function func(c *Compiler, roots []jsast.Expression) Result
	tree     func(b *treeBuilder, roots []jsast.Expression) jsast.Expression
}

func expressionBody(expression ast.Expression) lambdaBody {
	return lambdaBody{
		function: func(c *Compiler, _ []jsast.Expression) Result {
			return c.compileExpression(expression)
		},
		tree: func(b *treeBuilder, _ []jsast.Expression) jsast.Expression {
			return b.build(expression)
		},
	}
}

func (c *Compiler) VisitQueryExpression(expression *ast.QueryExpression) Result {
	start := time.Now()

	q := &query{
		compiler:       c,
		expression:     expression,
		rangeVariables: mapset.NewThreadUnsafeSet[*sema.RangeVariable](),
	}
	result := q.compile()

	c.recordTrace(
		traceLowerQuery,
		start,
		attribute.Int("clauses", len(expression.Clauses)),
	)

	return result
}

func (c *Compiler) recordTrace(operationName string, start time.Time, attributes ...attribute.KeyValue) {
	if !c.Config.TracingEnabled || c.Config.OnRecordTrace == nil {
		return
	}
	c.Config.OnRecordTrace(operationName, time.Since(start), attributes)
}

func (q *query) compile() Result {
	clauses := q.expression.Clauses

	from, ok := clauses[0].(*ast.FromClause)
	if !ok {
		panic(errors.NewUnexpectedError("query must start with a from clause"))
	}
	q.compileInitialFrom(from)

	for i := 1; i < len(clauses); i++ {
		var next ast.QueryClause
		if i+1 < len(clauses) {
			next = clauses[i+1]
		}

		if q.environment == nil {
			if _, ok := clauses[i].(*ast.ContinuationClause); !ok {
				panic(errors.NewUnexpectedError("clause after the end of the query: %s", clauses[i]))
			}
		}

		switch clause := clauses[i].(type) {
		case *ast.FromClause:
			if q.compileFrom(clause, next) {
				i++
			}

		case *ast.LetClause:
			q.compileLet(clause)

		case *ast.WhereClause:
			q.compileWhere(clause)

		case *ast.JoinClause:
			if q.compileJoin(clause, next) {
				i++
			}

		case *ast.OrderByClause:
			q.compileOrderBy(clause)

		case *ast.SelectClause:
			q.compileSelect(clause)

		case *ast.GroupClause:
			q.compileGroup(clause)

		case *ast.ContinuationClause:
			q.compileContinuation(clause)

		default:
			panic(errors.NewUnexpectedError("unsupported query clause: %T", clause))
		}
	}

	return Result{
		Prelude:    q.prelude,
		Expression: q.chain,
	}
}

// singleEnvironment returns the environment of the given range variable.
// The name is chosen once, so all lambdas and carriers use the same name.
func (q *query) singleEnvironment(variable *sema.RangeVariable) *rangeEnvironment {
	q.rangeVariables.Add(variable)
	return &rangeEnvironment{
		name:     q.compiler.context.NameForRangeVariable(variable),
		variable: variable,
	}
}

func (q *query) compileInitialFrom(clause *ast.FromClause) {
	source := q.compiler.compileExpression(clause.Source)
	q.prelude = append(q.prelude, source.Prelude...)
	q.chain = source.Expression

	if clause.CastMethod != nil {
		q.chain = q.callCombinator(clause.CastMethod, q.chain, nil, clause)
		q.combinatorCount++
	}

	q.environment = q.singleEnvironment(clause.Variable)
}

// isTreeParameter returns true if the argument at the given position of a combinator,
// not counting the source, is an expression tree
func isTreeParameter(method *sema.Method, position int) bool {
	if method.Static {
		position++
	}
	if position >= len(method.Parameters) {
		return false
	}
	return sema.IsExpressionTree(method.Parameters[position].Type)
}

// lambda returns the function or expression tree with the given environments as parameters
func (q *query) lambda(
	method *sema.Method,
	position int,
	environments []*rangeEnvironment,
	body lambdaBody,
) jsast.Expression {
	if isTreeParameter(method, position) {
		return q.treeLambda(environments, body)
	}
	return q.functionLambda(environments, body)
}

func (q *query) functionLambda(environments []*rangeEnvironment, body lambdaBody) jsast.Expression {
	c := q.compiler
	child := c.child()

	parameters := make([]string, 0, len(environments))
	roots := make([]jsast.Expression, 0, len(environments))
	for _, environment := range environments {
		child.context.Reserve(environment.name)
		root := jsast.NewIdentifier(environment.name)
		q.bindEnvironment(child.context, environment, root, false)
		parameters = append(parameters, environment.name)
		roots = append(roots, root)
	}

	result := body.function(child, roots)

	c.absorb(child)

	function := &jsast.Function{
		Parameters: parameters,
		Body: jsast.NewBlock(
			append(
				result.Prelude,
				&jsast.Return{Expression: result.Expression},
			)...,
		),
	}

	return c.bindReceiver(function)
}

func (q *query) treeLambda(environments []*rangeEnvironment, body lambdaBody) jsast.Expression {
	c := q.compiler

	c.context.pushRangeScope()
	defer c.context.popRangeScope()

	builder := c.newTreeBuilder(&q.prelude)

	parameters := make([]jsast.Expression, 0, len(environments))
	for _, environment := range environments {
		node := builder.declareParameter(q.environmentType(environment), environment.name)
		q.bindEnvironment(c.context, environment, node, true)
		parameters = append(parameters, node)
	}

	return builder.lambda(body.tree(builder, parameters), parameters)
}

// bindEnvironment binds the range variables of the environment,
// stored in the given root, in the given context
func (q *query) bindEnvironment(
	context *Context,
	environment *rangeEnvironment,
	root jsast.Expression,
	isNode bool,
) {
	if environment.isSingle() {
		context.bindRangeVariable(
			environment.variable,
			rangeBinding{
				expression: root,
				isNode:     isNode,
			},
		)
		return
	}

	runtimeLibrary := q.compiler.Config.RuntimeLibrary

	for _, field := range environment.fields {
		var fieldRoot jsast.Expression
		if isNode {
			fieldRoot = runtimeLibrary.ExpressionNode(
				runtimelib.ExpressionNodeKindProperty,
				root,
				runtimeLibrary.CarrierMember(q.environmentType(environment), field.name),
			)
		} else {
			fieldRoot = jsast.NewMember(root, field.name)
		}
		q.bindEnvironment(context, field, fieldRoot, isNode)
	}
}

// environmentType returns the reference to the type of the element, in expression trees.
// The type of a carrier is synthesized on first use.
func (q *query) environmentType(environment *rangeEnvironment) jsast.Expression {
	if environment.isSingle() {
		return q.compiler.typeReference(environment.variable.Type)
	}

	if environment.handle == nil {
		fields := make([]runtimelib.CarrierField, 0, len(environment.fields))
		for _, field := range environment.fields {
			fields = append(
				fields,
				runtimelib.CarrierField{
					Name: field.name,
					Type: q.environmentType(field),
				},
			)
		}
		environment.handle = q.compiler.capture(
			q.compiler.Config.RuntimeLibrary.SynthesizeCarrierType(fields),
			&q.prelude,
		)
	}

	return environment.handle
}

// carrierBody returns the body of a lambda which creates the given carrier
// of the previous environment, passed as the first parameter, and a new value
func (q *query) carrierBody(carrier *rangeEnvironment, value lambdaBody) lambdaBody {
	previous, added := carrier.fields[0], carrier.fields[1]

	return lambdaBody{
		function: func(c *Compiler, roots []jsast.Expression) Result {
			result := value.function(c, roots)
			return Result{
				Prelude: result.Prelude,
				Expression: &jsast.ObjectLiteral{
					Properties: []*jsast.ObjectProperty{
						{
							Name:  previous.name,
							Value: roots[0],
						},
						{
							Name:  added.name,
							Value: result.Expression,
						},
					},
				},
			}
		},
		tree: func(b *treeBuilder, roots []jsast.Expression) jsast.Expression {
			runtimeLibrary := q.compiler.Config.RuntimeLibrary
			carrierType := q.environmentType(carrier)
			return b.node(
				runtimelib.ExpressionNodeKindNew,
				runtimeLibrary.CarrierConstructor(carrierType),
				&jsast.ArrayLiteral{
					Elements: []jsast.Expression{
						roots[0],
						value.tree(b, roots),
					},
				},
				&jsast.ArrayLiteral{
					Elements: []jsast.Expression{
						runtimeLibrary.CarrierMember(carrierType, previous.name),
						runtimeLibrary.CarrierMember(carrierType, added.name),
					},
				},
			)
		},
	}
}

// newCarrier returns the lambda which creates the carrier of the current environment
// and the added range variable, and makes the carrier the current environment
func (q *query) newCarrier(
	method *sema.Method,
	position int,
	parameters []*rangeEnvironment,
	added *sema.RangeVariable,
	value lambdaBody,
) jsast.Expression {
	carrier := &rangeEnvironment{
		fields: []*rangeEnvironment{
			q.environment,
			q.singleEnvironment(added),
		},
	}

	lambda := q.lambda(
		method,
		position,
		parameters,
		q.carrierBody(carrier, value),
	)

	// Allocated after the lambda is compiled,
	// so the name is not used by the lambda's temporaries
	carrier.name = q.compiler.context.AllocateTemporary()
	q.environment = carrier

	return lambda
}

func (q *query) compileLet(clause *ast.LetClause) {
	lambda := q.newCarrier(
		clause.Method,
		0,
		[]*rangeEnvironment{q.environment},
		clause.Variable,
		expressionBody(clause.Value),
	)
	q.call(clause.Method, clause, lambda)
}

func (q *query) compileWhere(clause *ast.WhereClause) {
	predicate := q.lambda(
		clause.Method,
		0,
		[]*rangeEnvironment{q.environment},
		expressionBody(clause.Predicate),
	)
	q.call(clause.Method, clause, predicate)
}

// variableBody returns the body which evaluates to the given parameter
func variableBody(index int) lambdaBody {
	return lambdaBody{
		function: func(_ *Compiler, roots []jsast.Expression) Result {
			return expressionResult(roots[index])
		},
		tree: func(_ *treeBuilder, roots []jsast.Expression) jsast.Expression {
			return roots[index]
		},
	}
}

// compileFrom compiles a from clause which is not the first clause.
// If the next clause is a select clause, the projection is merged into the result selector,
// and compileFrom returns true.
func (q *query) compileFrom(clause *ast.FromClause, next ast.QueryClause) bool {
	method := clause.SelectManyMethod

	collection := q.lambda(
		method,
		0,
		[]*rangeEnvironment{q.environment},
		q.castBody(clause.Source, clause.CastMethod, clause),
	)

	added := q.singleEnvironment(clause.Variable)

	if selectClause, ok := next.(*ast.SelectClause); ok {
		result := q.lambda(
			method,
			1,
			[]*rangeEnvironment{q.environment, added},
			expressionBody(selectClause.Projection),
		)
		q.environment = nil
		q.call(method, clause, collection, result)
		return true
	}

	result := q.newCarrier(
		method,
		1,
		[]*rangeEnvironment{q.environment, added},
		clause.Variable,
		variableBody(1),
	)
	q.call(method, clause, collection, result)
	return false
}

// castBody returns the body which evaluates the source of a clause,
// converted with the cast combinator, if any
func (q *query) castBody(
	source ast.Expression,
	castMethod *sema.Method,
	hasPosition ast.HasPosition,
) lambdaBody {
	if castMethod == nil {
		return expressionBody(source)
	}

	return lambdaBody{
		function: func(c *Compiler, _ []jsast.Expression) Result {
			result := c.compileExpression(source)
			prelude := result.Prelude
			cast := c.callCombinator(castMethod, result.Expression, nil, hasPosition, &prelude)
			return Result{
				Prelude:    prelude,
				Expression: cast,
			}
		},
		tree: func(b *treeBuilder, _ []jsast.Expression) jsast.Expression {
			return b.node(
				runtimelib.ExpressionNodeKindCall,
				&jsast.Null{},
				b.memberHandle(castMethod),
				&jsast.ArrayLiteral{
					Elements: []jsast.Expression{
						b.build(source),
					},
				},
			)
		},
	}
}

// compileJoin compiles a join or group join clause.
// If the next clause is a select clause, the projection is merged into the result selector,
// and compileJoin returns true.
func (q *query) compileJoin(clause *ast.JoinClause, next ast.QueryClause) bool {
	c := q.compiler
	method := clause.Method

	q.checkInnerKeyScope(clause)

	inner := c.compileExpression(clause.InnerSource)
	innerSource := inner.Expression
	if inner.HasPrelude() {
		if !c.isStable(q.chain) {
			q.chain = c.capture(q.chain, &q.prelude)
		}
		q.prelude = append(q.prelude, inner.Prelude...)
	}
	if clause.CastMethod != nil {
		innerSource = q.callCombinator(clause.CastMethod, innerSource, nil, clause)
	}

	outerKey := q.lambda(
		method,
		1,
		[]*rangeEnvironment{q.environment},
		expressionBody(clause.OuterKey),
	)

	joined := q.singleEnvironment(clause.Variable)

	innerKey := q.lambda(
		method,
		2,
		[]*rangeEnvironment{joined},
		expressionBody(clause.InnerKey),
	)

	addedVariable := clause.Variable
	added := joined
	if clause.IsGroupJoin() {
		addedVariable = clause.Into
		added = q.singleEnvironment(clause.Into)
	}

	if selectClause, ok := next.(*ast.SelectClause); ok {
		result := q.lambda(
			method,
			3,
			[]*rangeEnvironment{q.environment, added},
			expressionBody(selectClause.Projection),
		)
		q.environment = nil
		q.call(method, clause, innerSource, outerKey, innerKey, result)
		return true
	}

	result := q.newCarrier(
		method,
		3,
		[]*rangeEnvironment{q.environment, added},
		addedVariable,
		variableBody(1),
	)
	q.call(method, clause, innerSource, outerKey, innerKey, result)
	return false
}

// checkInnerKeyScope verifies that the inner key of a join
// does not refer to the range variables of the query it belongs to.
// Range variables of enclosing queries are in scope.
func (q *query) checkInnerKeyScope(clause *ast.JoinClause) {
	references := ast.ReferencedRangeVariables(clause.InnerKey)

	referenced := mapset.NewThreadUnsafeSet[*sema.RangeVariable]()
	for _, reference := range references {
		referenced.Add(reference.Variable)
	}

	outOfScope := referenced.Intersect(q.rangeVariables)
	if outOfScope.IsEmpty() {
		return
	}

	for _, reference := range references {
		if outOfScope.Contains(reference.Variable) {
			panic(&ScopingViolationError{
				Variable: reference.Variable.Identifier,
				Clause:   "inner key of a join",
				Range:    ast.NewRangeFromPositioned(reference),
			})
		}
	}
}

func (q *query) compileOrderBy(clause *ast.OrderByClause) {
	for _, ordering := range clause.Orderings {
		key := q.lambda(
			ordering.Method,
			0,
			[]*rangeEnvironment{q.environment},
			expressionBody(ordering.Key),
		)
		q.call(ordering.Method, clause, key)
	}
}

// isIdentity returns true if the projection is the single range variable in scope
func (q *query) isIdentity(projection ast.Expression) bool {
	reference, ok := projection.(*ast.RangeVariableExpression)
	return ok &&
		q.environment.isSingle() &&
		reference.Variable == q.environment.variable
}

func (q *query) compileSelect(clause *ast.SelectClause) {
	defer func() {
		q.environment = nil
	}()

	// The identity projection is only needed if it is the only operation
	if q.isIdentity(clause.Projection) && q.combinatorCount > 0 {
		return
	}

	projection := q.lambda(
		clause.Method,
		0,
		[]*rangeEnvironment{q.environment},
		expressionBody(clause.Projection),
	)
	q.call(clause.Method, clause, projection)
}

func (q *query) compileGroup(clause *ast.GroupClause) {
	defer func() {
		q.environment = nil
	}()

	key := q.lambda(
		clause.Method,
		0,
		[]*rangeEnvironment{q.environment},
		expressionBody(clause.Key),
	)

	if q.isIdentity(clause.Projection) {
		q.call(clause.Method, clause, key)
		return
	}

	element := q.lambda(
		clause.Method,
		1,
		[]*rangeEnvironment{q.environment},
		expressionBody(clause.Projection),
	)
	q.call(clause.Method, clause, key, element)
}

func (q *query) compileContinuation(clause *ast.ContinuationClause) {
	q.environment = q.singleEnvironment(clause.Variable)
	q.combinatorCount = 0
}

// call appends the call of the combinator to the chain
func (q *query) call(method *sema.Method, hasPosition ast.HasPosition, arguments ...jsast.Expression) {
	q.chain = q.callCombinator(method, q.chain, arguments, hasPosition)
	q.combinatorCount++
}

func (q *query) callCombinator(
	method *sema.Method,
	source jsast.Expression,
	arguments []jsast.Expression,
	hasPosition ast.HasPosition,
) jsast.Expression {
	return q.compiler.callCombinator(method, source, arguments, hasPosition, &q.prelude)
}

// callCombinator returns the call of the combinator method on the source.
// Type arguments are never passed, as the combinators of a query are not generic in the output.
func (c *Compiler) callCombinator(
	method *sema.Method,
	source jsast.Expression,
	arguments []jsast.Expression,
	hasPosition ast.HasPosition,
	prelude *[]jsast.Statement,
) jsast.Expression {

	switch methodSemantics := c.memberSemantics(method, hasPosition).(type) {
	case semantics.NormalCall:
		if !method.Static {
			return jsast.NewInvocation(
				jsast.NewMember(source, methodSemantics.Name),
				arguments...,
			)
		}
		return jsast.NewInvocation(
			jsast.NewMember(c.typeReference(method.DeclaringType), methodSemantics.Name),
			append([]jsast.Expression{source}, arguments...)...,
		)

	case semantics.StaticWithExplicitReceiver:
		return jsast.NewInvocation(
			jsast.NewMember(c.typeReference(method.DeclaringType), methodSemantics.Name),
			append([]jsast.Expression{source}, arguments...)...,
		)

	case semantics.InlineTemplate:
		var bindings map[string]jsast.Expression
		if method.Static {
			bindings = c.parameterBindings(
				method.Parameters,
				append([]jsast.Expression{source}, arguments...),
			)
		} else {
			bindings = c.parameterBindings(method.Parameters, arguments)
			bindings[semantics.ThisHole] = source
		}
		return c.expandTemplate(methodSemantics.Template, bindings, method, hasPosition, prelude)
	}

	panic(c.unsupportedSemantics(method, hasPosition))
}
