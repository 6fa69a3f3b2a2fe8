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

// Package feature builds and queries the feature graph: a directed graph
// whose nodes are (package, base | named-feature | optional-dep) and whose
// edges encode "enabling X implies enabling Y" under platform/kind
// conditions. BuildFeatureGraph constructs it from a *graph.PackageGraph on
// each call; the package graph does not cache it, and a feature graph built
// before PackageGraph.RetainEdges does not reflect the removed edges.
package feature

import (
	"fmt"

	"github.com/cratedeps/depgraph/graph"
)

// FeatureIx is the stable integer index assigned to a feature node at
// build time, backing the gonum graph node id for that node.
type FeatureIx int64

// FeatureID names a feature node: a package id plus a slot, where an empty
// slot denotes the package's base node.
type FeatureID struct {
	Package graph.PackageID
	Slot    string
}

func (id FeatureID) String() string {
	if id.Slot == "" {
		return fmt.Sprintf("%s (base)", id.Package)
	}
	return fmt.Sprintf("%s/%s", id.Package, id.Slot)
}

// IsBase reports whether this id names a package's base node.
func (id FeatureID) IsBase() bool { return id.Slot == "" }

// FeatureNode is a (package, slot) pair, with a back-pointer to the owning
// graph for traversal methods.
type FeatureNode struct {
	g  *FeatureGraph
	ix FeatureIx
	id FeatureID
}

// Ix returns the node's stable build-order index.
func (n *FeatureNode) Ix() FeatureIx { return n.ix }

// ID returns the node's (package, slot) identity.
func (n *FeatureNode) ID() FeatureID { return n.id }

// Package returns the package metadata this node belongs to.
func (n *FeatureNode) Package() *graph.PackageMetadata {
	p, _ := n.g.pg.Metadata(n.id.Package)
	return p
}
