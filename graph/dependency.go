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

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/cratedeps/depgraph/platform"
)

// DependencyStatus is the three-valued inclusion of a dependency on a given
// platform. Optional must never be conflated with "maybe included": the
// resolver branches on it explicitly.
type DependencyStatus int

const (
	StatusNever DependencyStatus = iota
	StatusOptional
	StatusMandatory
)

func (s DependencyStatus) String() string {
	switch s {
	case StatusMandatory:
		return "mandatory"
	case StatusOptional:
		return "optional"
	default:
		return "never"
	}
}

// TargetPredicate is either Always or a disjunction of TargetSpecs; an
// empty Specs list means Never.
type TargetPredicate struct {
	always bool
	specs  []*platform.TargetSpec
}

// AlwaysPredicate returns the predicate that is true on every platform.
func AlwaysPredicate() TargetPredicate { return TargetPredicate{always: true} }

// NeverPredicate returns the predicate that is false on every platform.
func NeverPredicate() TargetPredicate { return TargetPredicate{} }

// SpecsPredicate returns a predicate true iff any of the given specs
// evaluates true.
func SpecsPredicate(specs []*platform.TargetSpec) TargetPredicate {
	return TargetPredicate{specs: specs}
}

// IsNever reports whether this predicate is the empty disjunction.
func (t TargetPredicate) IsNever() bool { return !t.always && len(t.specs) == 0 }

// IsAlways reports whether this predicate is true on every platform without
// needing one evaluated.
func (t TargetPredicate) IsAlways() bool { return t.always }

// EvalOn evaluates the predicate against p, returning a TargetEvalError if
// any underlying spec fails to evaluate.
func (t TargetPredicate) EvalOn(p *platform.Platform) (bool, error) {
	if t.always {
		return true, nil
	}
	for _, spec := range t.specs {
		ok, err := platform.Eval(spec, p)
		if err != nil {
			return false, &TargetEvalError{Platform: p.Triple(), Err: err}
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Merge returns the disjunction of two predicates.
func (t TargetPredicate) Merge(other TargetPredicate) TargetPredicate {
	if t.always || other.always {
		return AlwaysPredicate()
	}
	return TargetPredicate{specs: append(append([]*platform.TargetSpec{}, t.specs...), other.specs...)}
}

// FeatureRequest pairs a target predicate with the feature names it
// enables on the dependency if the predicate holds.
type FeatureRequest struct {
	Predicate TargetPredicate
	Features  []string
}

// DependencyReq is the mandatory/optional half-pair for one dependency
// kind: build-gating predicate, default-features-gating predicate, and a
// list of (predicate, features) pairs recording which extra features are
// requested under which platform condition.
type DependencyReq struct {
	buildIf           TargetPredicate
	defaultFeaturesIf TargetPredicate
	featureRequests   []FeatureRequest
	present           bool
}

// FeatureRequests returns the (predicate, features) pairs recording which
// extra features are requested under which platform condition.
func (r *DependencyReq) FeatureRequests() []FeatureRequest { return r.featureRequests }

// BuildIf returns the predicate gating whether this half is built at all.
func (r *DependencyReq) BuildIf() TargetPredicate { return r.buildIf }

// DefaultFeaturesIf returns the predicate gating default-feature
// inclusion.
func (r *DependencyReq) DefaultFeaturesIf() TargetPredicate { return r.defaultFeaturesIf }

// StatusOn returns this half's status on the given platform.
func (r *DependencyReq) StatusOn(p *platform.Platform) (DependencyStatus, error) {
	if !r.present || r.buildIf.IsNever() {
		return StatusNever, nil
	}
	if r.buildIf.always {
		return StatusMandatory, nil
	}
	ok, err := r.buildIf.EvalOn(p)
	if err != nil {
		return StatusNever, err
	}
	if ok {
		return StatusMandatory, nil
	}
	return StatusNever, nil
}

// FeaturesOn returns the feature names this half requests on p.
func (r *DependencyReq) FeaturesOn(p *platform.Platform) ([]string, error) {
	var out []string
	seen := map[string]struct{}{}
	for _, fr := range r.featureRequests {
		ok, err := fr.Predicate.EvalOn(p)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for _, f := range fr.Features {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out, nil
}

// DependencyMetadata describes one kind (normal/build/dev) of a
// DependencyEdge: the semver requirement plus the mandatory/optional
// DependencyReq halves.
type DependencyMetadata struct {
	req             *semver.Constraints
	reqString       string
	mandatory       DependencyReq
	optional        DependencyReq
	allFeatures     []string
	singleTargetSet bool
	singleTarget    TargetPredicate

	currentStatus          DependencyStatus
	currentStatusKnown     bool
	currentDefaultFeatures bool
}

// Req returns the semver requirement string as written in the manifest.
func (d *DependencyMetadata) Req() string { return d.reqString }

// Mandatory returns the mandatory half of this kind's DependencyReq.
func (d *DependencyMetadata) Mandatory() *DependencyReq { return &d.mandatory }

// Optional returns the optional half of this kind's DependencyReq.
func (d *DependencyMetadata) Optional() *DependencyReq { return &d.optional }

// AllFeatures returns the union of every feature mentioned across both
// halves, deduplicated, in first-seen order.
func (d *DependencyMetadata) AllFeatures() []string { return d.allFeatures }

// StatusOn returns the combined (mandatory-takes-precedence) status of this
// dependency kind on the given platform.
func (d *DependencyMetadata) StatusOn(p *platform.Platform) (DependencyStatus, error) {
	ms, err := d.mandatory.StatusOn(p)
	if err != nil {
		return StatusNever, err
	}
	if ms == StatusMandatory {
		return StatusMandatory, nil
	}
	os, err := d.optional.StatusOn(p)
	if err != nil {
		return StatusNever, err
	}
	if os == StatusMandatory {
		return StatusOptional, nil
	}
	return StatusNever, nil
}

// CurrentStatus returns the precomputed status against the current
// (build-machine) platform, if it was discoverable at construction time.
func (d *DependencyMetadata) CurrentStatus() (DependencyStatus, bool) {
	return d.currentStatus, d.currentStatusKnown
}

// CurrentDefaultFeatures reports whether the precomputed current-platform
// default-features evaluation was true; valid only when CurrentStatus
// reports known.
func (d *DependencyMetadata) CurrentDefaultFeatures() bool { return d.currentDefaultFeatures }

// VersionMatches reports whether the given version satisfies this
// dependency's requirement, applying the override that a requirement
// textually equal to "*" accepts any version including pre-releases.
func (d *DependencyMetadata) VersionMatches(v *semver.Version) bool {
	return versionMatches(d.reqString, d.req, v)
}

// versionMatches implements invariant 4: a requirement textually equal to
// "*" accepts any version including pre-releases, overriding
// Masterminds/semver's default rejection of pre-releases for "*".
func versionMatches(reqString string, constraints *semver.Constraints, v *semver.Version) bool {
	if strings.TrimSpace(reqString) == "*" {
		return true
	}
	if constraints == nil {
		return false
	}
	return constraints.Check(v)
}

// DependencyEdge is a directed edge from a dependent package to a
// dependency, with up to three optional per-kind DependencyMetadata
// payloads.
type DependencyEdge struct {
	from PackageIx
	to   PackageIx

	depName      string
	resolvedName string

	normal *DependencyMetadata
	build  *DependencyMetadata
	dev    *DependencyMetadata
}

// From returns the dependent's index.
func (e *DependencyEdge) From() PackageIx { return e.from }

// To returns the dependency's index.
func (e *DependencyEdge) To() PackageIx { return e.to }

// DepName returns the name as written in the manifest (may be a rename).
func (e *DependencyEdge) DepName() string { return e.depName }

// ResolvedName returns the identifier used at compile time (dashes
// converted to underscores).
func (e *DependencyEdge) ResolvedName() string { return e.resolvedName }

// Normal returns the normal-kind metadata, or nil if absent.
func (e *DependencyEdge) Normal() *DependencyMetadata { return e.normal }

// Build returns the build-kind metadata, or nil if absent.
func (e *DependencyEdge) Build() *DependencyMetadata { return e.build }

// Dev returns the dev-kind metadata, or nil if absent.
func (e *DependencyEdge) Dev() *DependencyMetadata { return e.dev }

// Metadata returns the metadata slot for the given kind, or nil if absent.
func (e *DependencyEdge) Metadata(kind DependencyKind) *DependencyMetadata {
	switch kind {
	case KindBuild:
		return e.build
	case KindDev:
		return e.dev
	default:
		return e.normal
	}
}

// resolvedIdent converts a dash-separated dependency name to the
// underscore-separated identifier used at compile time.
func resolvedIdent(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
