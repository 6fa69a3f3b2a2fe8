// Copyright 2026 The Depgraph Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package feature

import (
	"gonum.org/v1/gonum/graph"

	depgraph "github.com/cratedeps/depgraph/graph"
)

// EdgeKind distinguishes the three edge kinds used during feature-graph
// construction; cross-package edges additionally carry an optional flag
// separating the mandatory and optional halves of a dependency. The kinds
// share traversal but differ in gating, so they are modeled as a tagged
// variant rather than as separately-dispatched objects.
type EdgeKind int

const (
	EdgeFeatureToBase EdgeKind = iota
	EdgeFeatureDependency
	EdgeCrossPackage
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeFeatureToBase:
		return "feature-to-base"
	case EdgeFeatureDependency:
		return "feature-dependency"
	case EdgeCrossPackage:
		return "cross-package"
	default:
		return "unknown"
	}
}

// Edge is implemented by the three edge-kind structs (the unexported
// featureToBase and featureDependency, and CrossPackageEdge). Callers
// needing kind-specific fields (the cross-package predicate/optional flag)
// type-assert to *CrossPackageEdge.
type Edge interface {
	From() FeatureIx
	To() FeatureIx
	Kind() EdgeKind
}

type featureToBase struct {
	from, to FeatureIx
}

func (e *featureToBase) From() FeatureIx { return e.from }
func (e *featureToBase) To() FeatureIx   { return e.to }
func (e *featureToBase) Kind() EdgeKind  { return EdgeFeatureToBase }

type featureDependency struct {
	from, to FeatureIx
}

func (e *featureDependency) From() FeatureIx { return e.from }
func (e *featureDependency) To() FeatureIx   { return e.to }
func (e *featureDependency) Kind() EdgeKind  { return EdgeFeatureDependency }

// CrossPackageEdge is a Phase B edge derived from a package-graph
// dependency edge: enabling "from" implies enabling "to" under predicate,
// for the given dependency kind, gated by whether it came from the
// mandatory or optional half.
type CrossPackageEdge struct {
	from, to  FeatureIx
	depKind   depgraph.DependencyKind
	predicate depgraph.TargetPredicate
	optional  bool
}

func (e *CrossPackageEdge) From() FeatureIx                     { return e.from }
func (e *CrossPackageEdge) To() FeatureIx                       { return e.to }
func (e *CrossPackageEdge) Kind() EdgeKind                      { return EdgeCrossPackage }
func (e *CrossPackageEdge) DepKind() depgraph.DependencyKind    { return e.depKind }
func (e *CrossPackageEdge) Predicate() depgraph.TargetPredicate { return e.predicate }
func (e *CrossPackageEdge) Optional() bool                      { return e.optional }

// fnode adapts a FeatureIx to gonum's graph.Node interface.
type fnode int64

func (n fnode) ID() int64 { return int64(n) }

// gonumEdge adapts an Edge to gonum's graph.Edge interface so the feature
// graph can live directly on a gonum simple.DirectedGraph, the same way
// the package graph adapts DependencyEdge.
type gonumEdge struct {
	e Edge
}

func (a gonumEdge) From() graph.Node { return fnode(a.e.From()) }
func (a gonumEdge) To() graph.Node   { return fnode(a.e.To()) }
func (a gonumEdge) ReversedEdge() graph.Edge {
	return gonumEdge{e: reversedEdge{a.e}}
}

// reversedEdge swaps From/To for gonum's ReversedEdge contract; the
// feature graph never traverses reversed edges directly (reverse queries
// walk the underlying gonum graph's To() iterator instead), so this exists
// only to satisfy the interface.
type reversedEdge struct{ Edge }

func (r reversedEdge) From() FeatureIx { return r.Edge.To() }
func (r reversedEdge) To() FeatureIx   { return r.Edge.From() }
