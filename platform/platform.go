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

package platform

// OS identifies the operating system family of a platform.
type OS int

const (
	OSUnknown OS = iota
	OSLinux
	OSMacOS
	OSWindows
	OSOther
)

func (o OS) String() string {
	switch o {
	case OSLinux:
		return "linux"
	case OSMacOS:
		return "macos"
	case OSWindows:
		return "windows"
	default:
		return "unknown"
	}
}

// entry is one row of the embedded platforms database: a target triple and
// the attributes derived from it.
type entry struct {
	triple string
	os     OS
	osName string // target_os value, e.g. "linux", "macos", "ios", "android"
	arch   string // target_arch value, e.g. "x86_64", "aarch64"
	env    string // target_env value, possibly empty, e.g. "gnu", "musl", "msvc"
}

// TargetFeatures describes the set of target CPU features a Platform is
// considered to match against `cfg(target_feature = "...")` predicates.
type TargetFeatures struct {
	all      bool
	features map[string]struct{}
}

// AllTargetFeatures returns a TargetFeatures value that matches every
// feature name (the evaluator's default when none are specified).
func AllTargetFeatures() TargetFeatures {
	return TargetFeatures{all: true}
}

// NoTargetFeatures returns a TargetFeatures value that matches no feature.
func NoTargetFeatures() TargetFeatures {
	return TargetFeatures{features: map[string]struct{}{}}
}

// SomeTargetFeatures returns a TargetFeatures value that matches exactly
// the given feature names.
func SomeTargetFeatures(features []string) TargetFeatures {
	set := make(map[string]struct{}, len(features))
	for _, f := range features {
		set[f] = struct{}{}
	}
	return TargetFeatures{features: set}
}

// Matches reports whether the given feature name is included.
func (t TargetFeatures) Matches(feature string) bool {
	if t.all {
		return true
	}
	_, ok := t.features[feature]
	return ok
}

// Platform is a target triple plus target-feature set, resolved against the
// embedded platforms database, against which TargetSpec values are
// evaluated.
type Platform struct {
	triple         string
	entry          entry
	targetFeatures TargetFeatures
}

// NewPlatform resolves triple in the embedded platforms database and
// returns a Platform ready for evaluation. It returns an error satisfying
// errors.As(_, *EvalError) with Kind == TargetNotFound if the triple is
// unknown.
func NewPlatform(triple string, targetFeatures TargetFeatures) (*Platform, error) {
	e, ok := lookupTriple(triple)
	if !ok {
		return nil, &EvalError{Kind: TargetNotFound}
	}
	return &Platform{triple: triple, entry: e, targetFeatures: targetFeatures}, nil
}

// Triple returns the target triple this platform was constructed from.
func (p *Platform) Triple() string { return p.triple }

// TargetFeatures returns the target-feature set this platform matches.
func (p *Platform) TargetFeatures() TargetFeatures { return p.targetFeatures }
