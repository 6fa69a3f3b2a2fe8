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

// Package cargo implements the feature-aware, Cargo-compatible resolver:
// given a feature query (a set of seed nodes in a feature graph) and a set
// of options, it computes the activated (package, feature) set the way the
// package manager's own unification algorithm would.
package cargo

import (
	"errors"

	"github.com/cratedeps/depgraph/graph/feature"
	"github.com/cratedeps/depgraph/platform"
)

// ResolverVersion selects which unification algorithm a query runs under.
// Modeled as an open string-backed enum per spec: callers name a version
// explicitly, and new versions can be added without breaking the type.
type ResolverVersion string

const (
	// ResolverV1 is the "legacy" resolver: a single forward reachability
	// pass whose result is copied into both the target and host sets.
	ResolverV1 ResolverVersion = "v1"
	// ResolverV2 is reserved for the kind/platform-partitioned resolver
	// described in spec.md §4.5. Not yet implemented; Resolve returns
	// ErrResolverVersionUnsupported for it.
	ResolverV2 ResolverVersion = "v2"
)

// ErrResolverVersionUnsupported is returned by Resolve when asked to run a
// ResolverVersion this package does not implement.
var ErrResolverVersionUnsupported = errors.New("cargo: unsupported resolver version")

// CargoOptions configures one resolution. TargetPlatform and HostPlatform
// may be the same *platform.Platform value when cross-compilation is not in
// play.
type CargoOptions struct {
	IncludeDev      bool
	TargetPlatform  *platform.Platform
	HostPlatform    *platform.Platform
	ResolverVersion ResolverVersion
}

// FeatureQuery is the set of seed nodes a resolution starts from.
type FeatureQuery struct {
	Seeds []feature.FeatureID
}

// NewFeatureQuery builds a query from the given seed ids.
func NewFeatureQuery(seeds ...feature.FeatureID) FeatureQuery {
	return FeatureQuery{Seeds: append([]feature.FeatureID{}, seeds...)}
}
