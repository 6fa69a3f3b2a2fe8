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

package graph

// FeatureValue is what a package's features map associates with a feature
// name: either a named feature's list of feature-dep tokens, or the
// sentinel marking that this name is an optional dependency surfaced as a
// feature of the same name.
type FeatureValue struct {
	OptionalDep bool
	Deps        []string // feature-dep tokens, e.g. "serde", "dep/feat"; empty for OptionalDep
}

// OrderedFeatures is an insertion-order-preserving string-keyed map. Go has
// no ordered map in the standard library and none appears anywhere in the
// retrieved corpus as a grounded, exercised dependency, so this is the one
// data structure in the module built by hand rather than on a library.
type OrderedFeatures struct {
	keys   []string
	values map[string]FeatureValue
}

// NewOrderedFeatures returns an empty OrderedFeatures.
func NewOrderedFeatures() *OrderedFeatures {
	return &OrderedFeatures{values: make(map[string]FeatureValue)}
}

// Set inserts or updates the value for name, preserving the position of an
// existing key and appending a new one.
func (f *OrderedFeatures) Set(name string, v FeatureValue) {
	if _, ok := f.values[name]; !ok {
		f.keys = append(f.keys, name)
	}
	f.values[name] = v
}

// Get returns the value for name and whether it was present.
func (f *OrderedFeatures) Get(name string) (FeatureValue, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Has reports whether name is a known feature or optional-dep slot.
func (f *OrderedFeatures) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Len returns the number of entries.
func (f *OrderedFeatures) Len() int { return len(f.keys) }

// Keys returns the feature names in insertion order. The returned slice
// must not be mutated by the caller.
func (f *OrderedFeatures) Keys() []string { return f.keys }

// NamedFeatureNames returns, in insertion order, the names of entries that
// are named features (not optional-dep sentinels).
func (f *OrderedFeatures) NamedFeatureNames() []string {
	var out []string
	for _, k := range f.keys {
		if !f.values[k].OptionalDep {
			out = append(out, k)
		}
	}
	return out
}

// OptionalDepNames returns, in insertion order, the names of entries that
// are optional-dependency sentinels.
func (f *OrderedFeatures) OptionalDepNames() []string {
	var out []string
	for _, k := range f.keys {
		if f.values[k].OptionalDep {
			out = append(out, k)
		}
	}
	return out
}
