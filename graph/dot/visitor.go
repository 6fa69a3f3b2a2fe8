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

// Package dot fixes the interface boundary for the DOT-rendering
// collaborator: the engine calls back into a caller-supplied Visitor for
// every node and edge it wants drawn, and does no formatting of its own.
package dot

// Visitor receives label callbacks while a PackageSet or feature-graph
// query is displayed. Implementations typically accumulate GraphViz DOT
// source, but the engine has no opinion on the output format.
type Visitor interface {
	// PackageNode is called once per package in the rendered set, with
	// its id and display name.
	PackageNode(id, name string)
	// PackageEdge is called once per dependency edge in the rendered set,
	// with the dependent id, the dependency id, and the declared
	// dependency name.
	PackageEdge(fromID, toID, depName string)
	// FeatureNode is called once per feature node in the rendered set.
	// slot is "" for a package's base node, else the feature name.
	FeatureNode(packageID, slot string)
	// FeatureEdge is called once per feature-graph edge in the rendered
	// set, with a short label describing its kind.
	FeatureEdge(fromPackageID, fromSlot, toPackageID, toSlot, kindLabel string)
}
