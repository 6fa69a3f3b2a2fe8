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
	"github.com/Masterminds/semver/v3"
)

// PackageID is an opaque package identifier of the form
// "<name> <version> (<source>)", exactly as the metadata document
// represents it. PackageID values are only ever copied, never parsed by
// this package beyond what ingest requires.
type PackageID string

func (id PackageID) String() string { return string(id) }

// PackageIx is the stable integer index assigned to a package at build
// time, in insertion order. It backs the gonum graph node id for that
// package (as an int64).
type PackageIx int

// PackageMetadata is the full record for one package: its manifest
// attributes plus a back-pointer to the owning graph for traversal
// methods, mirroring the original's arena-handle pattern.
type PackageMetadata struct {
	g *PackageGraph

	id      PackageID
	ix      PackageIx
	name    string
	version *semver.Version

	authors      []string
	description  string
	license      string
	licenseFile  string
	manifestPath string
	categories   []string
	keywords     []string
	readme       string
	repository   string
	edition      string
	links        string
	publish      []string
	metadata     map[string]interface{}

	workspacePath string // empty iff not a workspace member
	inWorkspace   bool

	features           *OrderedFeatures
	hasDefaultFeature  bool
}

// ID returns the package's identifier.
func (p *PackageMetadata) ID() PackageID { return p.id }

// Ix returns the package's stable build-order index.
func (p *PackageMetadata) Ix() PackageIx { return p.ix }

// Name returns the package's declared name.
func (p *PackageMetadata) Name() string { return p.name }

// Version returns the package's semver version.
func (p *PackageMetadata) Version() *semver.Version { return p.version }

func (p *PackageMetadata) Authors() []string                { return p.authors }
func (p *PackageMetadata) Description() string              { return p.description }
func (p *PackageMetadata) License() string                  { return p.license }
func (p *PackageMetadata) LicenseFile() string               { return p.licenseFile }
func (p *PackageMetadata) ManifestPath() string              { return p.manifestPath }
func (p *PackageMetadata) Categories() []string              { return p.categories }
func (p *PackageMetadata) Keywords() []string                { return p.keywords }
func (p *PackageMetadata) Readme() string                    { return p.readme }
func (p *PackageMetadata) Repository() string                { return p.repository }
func (p *PackageMetadata) Edition() string                   { return p.edition }
func (p *PackageMetadata) Links() string                     { return p.links }
func (p *PackageMetadata) Publish() []string                 { return p.publish }
func (p *PackageMetadata) Metadata() map[string]interface{}  { return p.metadata }

// InWorkspace reports whether this package is a workspace member.
func (p *PackageMetadata) InWorkspace() bool { return p.inWorkspace }

// WorkspacePath returns the workspace-relative path, or "" if this package
// is not a workspace member.
func (p *PackageMetadata) WorkspacePath() string { return p.workspacePath }

// HasDefaultFeature reports whether this package declares a "default"
// feature.
func (p *PackageMetadata) HasDefaultFeature() bool { return p.hasDefaultFeature }

// Features returns the package's ordered feature/optional-dep map.
func (p *PackageMetadata) Features() *OrderedFeatures { return p.features }

// DefaultFeatureID returns the feature name to activate by default:
// "default" if the package declares it, else the empty string denoting the
// base feature slot. Mirrors PackageMetadata::default_feature_id in the
// original.
func (p *PackageMetadata) DefaultFeatureID() string {
	if p.hasDefaultFeature {
		return "default"
	}
	return ""
}

// NamedFeatures returns the package's named-feature names, in declaration
// order.
func (p *PackageMetadata) NamedFeatures() []string {
	return p.features.NamedFeatureNames()
}

// OptionalDeps returns the package's optional-dependency feature names, in
// declaration order.
func (p *PackageMetadata) OptionalDeps() []string {
	return p.features.OptionalDepNames()
}
