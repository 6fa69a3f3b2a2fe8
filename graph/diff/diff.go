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

// Package diff compares two (package, activated-feature-set) maps and
// reports the structural difference, for the Diff tool collaborator
// described in spec.md §6 ("receives two ordered (package-id ->
// feature-name-set) maps and emits a structured difference"). It is a pure
// function package: it uses only the graph package's PackageID type,
// builds or queries no graph, and does not import the cargo package;
// grounded on the original's tools/cargo-compare/src/diff.rs, which diffed
// two BTreeMap<PackageId, BTreeSet<String>> with the diffus crate.
package diff

import (
	"sort"

	"github.com/cratedeps/depgraph/graph"
)

// FeatureNameSet is the activated named-feature set for one package, as
// used on both sides of a comparison.
type FeatureNameSet map[string]struct{}

// NewFeatureNameSet builds a FeatureNameSet from a slice of names.
func NewFeatureNameSet(names []string) FeatureNameSet {
	s := make(FeatureNameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s FeatureNameSet) sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// PackageFeatureDiff is the feature-set delta for one package present on
// both sides of a comparison.
type PackageFeatureDiff struct {
	Added   []string
	Removed []string
}

func (d PackageFeatureDiff) isEmpty() bool { return len(d.Added) == 0 && len(d.Removed) == 0 }

// Result is the structured difference between two (package -> feature set)
// maps: packages only on one side, and feature-set deltas for packages on
// both.
type Result struct {
	AddedPackages   []graph.PackageID
	RemovedPackages []graph.PackageID
	Changed         map[graph.PackageID]PackageFeatureDiff
}

// IsEmpty reports whether the two maps compared equal.
func (r Result) IsEmpty() bool {
	return len(r.AddedPackages) == 0 && len(r.RemovedPackages) == 0 && len(r.Changed) == 0
}

// Diff compares before and after, reporting packages added, removed, and
// changed between them. Output order is always sorted by PackageID so that
// results are deterministic regardless of map iteration order.
func Diff(before, after map[graph.PackageID]FeatureNameSet) Result {
	res := Result{Changed: make(map[graph.PackageID]PackageFeatureDiff)}

	for id := range before {
		if _, ok := after[id]; !ok {
			res.RemovedPackages = append(res.RemovedPackages, id)
		}
	}
	for id := range after {
		if _, ok := before[id]; !ok {
			res.AddedPackages = append(res.AddedPackages, id)
		}
	}
	sortPackageIDs(res.AddedPackages)
	sortPackageIDs(res.RemovedPackages)

	for id, beforeSet := range before {
		afterSet, ok := after[id]
		if !ok {
			continue
		}
		d := diffFeatureSets(beforeSet, afterSet)
		if !d.isEmpty() {
			res.Changed[id] = d
		}
	}

	return res
}

func diffFeatureSets(before, after FeatureNameSet) PackageFeatureDiff {
	var d PackageFeatureDiff
	for _, n := range after.sorted() {
		if _, ok := before[n]; !ok {
			d.Added = append(d.Added, n)
		}
	}
	for _, n := range before.sorted() {
		if _, ok := after[n]; !ok {
			d.Removed = append(d.Removed, n)
		}
	}
	return d
}

func sortPackageIDs(ids []graph.PackageID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
