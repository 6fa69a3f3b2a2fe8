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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/cratedeps/depgraph/platform"
)

// BuildOption configures BuildPackageGraph / BuildPackageGraphFromJSON.
type BuildOption func(*buildConfig)

type buildConfig struct {
	currentPlatform *platform.Platform
}

// WithCurrentPlatform supplies the host platform used to precompute
// per-edge current-platform status (step 5 of ingest). Without it, current
// status is left unknown and callers must use the On(platform) query
// variants.
func WithCurrentPlatform(p *platform.Platform) BuildOption {
	return func(c *buildConfig) { c.currentPlatform = p }
}

// BuildPackageGraph decodes a single `--format-version 1` metadata
// document from r and constructs a PackageGraph. The document is read and
// decoded as a whole: resolver output is a bounded, already-resolved
// document, not a stream, so a single Decode call is the idiomatic shape
// here.
func BuildPackageGraph(r io.Reader, opts ...BuildOption) (*PackageGraph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &MetadataParseError{Err: err}
	}
	return BuildPackageGraphFromJSON(data, opts...)
}

// BuildPackageGraphFromJSON constructs a PackageGraph from an in-memory
// metadata document.
func BuildPackageGraphFromJSON(data []byte, opts ...BuildOption) (*PackageGraph, error) {
	var raw rawMetadata
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, &MetadataParseError{Err: err}
	}

	cfg := &buildConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	pg := newPackageGraph()
	pg.currentPlatform = cfg.currentPlatform
	declaredByID := make(map[PackageID][]rawDependency, len(raw.Packages))

	// Step 1: id -> Package table, stable ix in insertion order.
	for ix, rp := range raw.Packages {
		if _, dup := pg.byID[PackageID(rp.ID)]; dup {
			return nil, &ConstructError{Msg: fmt.Sprintf("duplicate package id %q", rp.ID)}
		}
		ver, err := semver.NewVersion(rp.Version)
		if err != nil {
			return nil, &ConstructError{Msg: fmt.Sprintf("package %q has invalid version %q: %v", rp.ID, rp.Version, err)}
		}
		features, hasDefault, err := decodeOrderedFeatures(rp.Features)
		if err != nil {
			return nil, &ConstructError{Msg: fmt.Sprintf("package %q has invalid features: %v", rp.ID, err)}
		}
		addImplicitOptionalDepFeatures(features, rp.Dependencies)
		meta := &PackageMetadata{
			g:                 pg,
			id:                PackageID(rp.ID),
			ix:                PackageIx(ix),
			name:              rp.Name,
			version:           ver,
			authors:           rp.Authors,
			description:       rp.Description,
			license:           rp.License,
			licenseFile:       rp.LicenseFile,
			manifestPath:      rp.ManifestPath,
			categories:        rp.Categories,
			keywords:          rp.Keywords,
			readme:            rp.Readme,
			repository:        rp.Repository,
			edition:           rp.Edition,
			links:             rp.Links,
			publish:           rp.Publish,
			metadata:          rp.Metadata,
			features:          features,
			hasDefaultFeature: hasDefault,
		}
		pg.packages = append(pg.packages, meta)
		pg.byID[meta.id] = meta
		pg.g.AddNode(simpleNode(ix))
		declaredByID[meta.id] = rp.Dependencies
	}

	// Workspace: derive relative paths from manifest_path vs workspace_root.
	ws := &Workspace{root: raw.WorkspaceRoot, members: make(map[string]PackageID)}
	memberSet := make(map[PackageID]bool, len(raw.WorkspaceMembers))
	for _, id := range raw.WorkspaceMembers {
		memberSet[PackageID(id)] = true
	}
	for _, p := range pg.packages {
		if !memberSet[p.id] {
			continue
		}
		rel := workspaceRelativePath(raw.WorkspaceRoot, p.manifestPath)
		ws.members[rel] = p.id
		ws.paths = append(ws.paths, rel)
		p.inWorkspace = true
		p.workspacePath = rel
	}
	sortStrings(ws.paths)
	pg.workspace = ws

	// Step 2: determine realized (from, to) pairs from resolver output.
	type pairKey struct {
		from PackageIx
		to   PackageIx
	}
	seen := make(map[pairKey]bool)
	var order []pairKey
	pairDepName := make(map[pairKey]string)
	for _, node := range raw.Resolve.Nodes {
		fromMeta, ok := pg.byID[PackageID(node.ID)]
		if !ok {
			return nil, &ConstructError{Msg: fmt.Sprintf("resolve node references unknown package id %q", node.ID)}
		}
		for _, rd := range node.Deps {
			toMeta, ok := pg.byID[PackageID(rd.Pkg)]
			if !ok {
				return nil, &ConstructError{Msg: fmt.Sprintf("resolve dependency references unknown package id %q", rd.Pkg)}
			}
			key := pairKey{from: fromMeta.ix, to: toMeta.ix}
			if !seen[key] {
				seen[key] = true
				order = append(order, key)
				pairDepName[key] = rd.Name
			}
		}
	}

	// Steps 2-4: build one DependencyEdge per realized pair by scanning the
	// from-package's declared dependencies.
	for _, key := range order {
		fromMeta := pg.packages[key.from]
		toMeta := pg.packages[key.to]
		edge, err := buildDependencyEdge(fromMeta, toMeta, pairDepName[key], declaredByID[fromMeta.id])
		if err != nil {
			return nil, err
		}
		pg.g.SetEdge(depEdge{f: simpleNode(int(key.from)), t: simpleNode(int(key.to)), dep: edge})
	}

	// Step 5: precompute current-platform status where possible.
	if pg.currentPlatform != nil {
		edges := pg.g.Edges()
		for edges.Next() {
			de, ok := edges.Edge().(depEdge)
			if !ok {
				continue
			}
			precomputeCurrentStatus(de.dep, pg.currentPlatform)
		}
	}

	if err := pg.DebugVerify(); err != nil {
		return nil, err
	}
	return pg, nil
}

type simpleNode int

func (n simpleNode) ID() int64 { return int64(n) }

func workspaceRelativePath(root, manifestPath string) string {
	dir := path.Dir(filepathToSlash(manifestPath))
	rootSlash := strings.TrimSuffix(filepathToSlash(root), "/")
	rel := strings.TrimPrefix(dir, rootSlash)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		rel = "."
	}
	return rel
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func sortStrings(s []string) {
	// small, local insertion sort avoids importing sort for a single call
	// site elsewhere in this file; this file already needs no other sort.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// addImplicitOptionalDepFeatures gives every optional dependency not
// already named in the `features` table its own feature slot of the same
// name, matching cargo's implicit-optional-dependency-feature rule: an
// optional dep can be turned on either by a named feature that mentions it
// or, absent that, by activating a feature with the dependency's own name.
func addImplicitOptionalDepFeatures(features *OrderedFeatures, deps []rawDependency) {
	for _, d := range deps {
		if !d.Optional {
			continue
		}
		name := d.Name
		if d.Rename != "" {
			name = d.Rename
		}
		if features.Has(name) {
			continue
		}
		features.Set(name, FeatureValue{OptionalDep: true})
	}
}

// decodeOrderedFeatures parses a package's `features` JSON object
// preserving key order, which encoding/json's map decoding would
// otherwise discard.
func decodeOrderedFeatures(raw json.RawMessage) (*OrderedFeatures, bool, error) {
	of := NewOrderedFeatures()
	if len(raw) == 0 {
		return of, false, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, false, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, false, fmt.Errorf("features: expected JSON object")
	}
	hasDefault := false
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false, fmt.Errorf("features: expected string key")
		}
		var deps []string
		if err := dec.Decode(&deps); err != nil {
			return nil, false, fmt.Errorf("features[%q]: %w", key, err)
		}
		of.Set(key, FeatureValue{Deps: deps})
		if key == "default" {
			hasDefault = true
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, false, err
	}
	return of, hasDefault, nil
}

// buildDependencyEdge scans fromMeta's declared dependencies for the
// instances that match toMeta (by name or rename), per spec.md §4.2 steps
// 2-4: declarations of the same dependency under different platform
// predicates are unified into a single DependencyEdge.
func buildDependencyEdge(fromMeta, toMeta *PackageMetadata, resolvedDepName string, fromDeclared []rawDependency) (*DependencyEdge, error) {
	var declared []rawDependency
	for _, d := range fromDeclared {
		if d.Name == toMeta.name || (d.Rename != "" && d.Rename == resolvedDepName) {
			declared = append(declared, d)
		}
	}
	if len(declared) == 0 {
		// The resolver selected this edge but the manifest declares no
		// matching dependency; fall back to a minimal mandatory normal
		// edge named after the dependency package itself, so construction does not
		// fail on a resolver/manifest skew it cannot otherwise explain.
		declared = []rawDependency{{Name: toMeta.name, Req: "*", UsesDefaultFeatures: true}}
	}

	depName := declared[0].Name
	if declared[0].Rename != "" {
		depName = declared[0].Rename
	}

	builders := map[DependencyKind]*metadataBuilder{}
	for _, d := range declared {
		kind := parseKind(d.Kind)
		b, ok := builders[kind]
		if !ok {
			b = newMetadataBuilder(d.Req)
			builders[kind] = b
		}
		if err := b.add(d); err != nil {
			return nil, &ConstructError{Msg: fmt.Sprintf("%s -> %s: %v", fromMeta.id, toMeta.id, err)}
		}
	}

	edge := &DependencyEdge{
		from:         fromMeta.ix,
		to:           toMeta.ix,
		depName:      depName,
		resolvedName: resolvedIdent(depName),
	}
	if b, ok := builders[KindNormal]; ok {
		edge.normal = b.build()
	}
	if b, ok := builders[KindBuild]; ok {
		edge.build = b.build()
	}
	if b, ok := builders[KindDev]; ok {
		edge.dev = b.build()
	}
	return edge, nil
}

type metadataBuilder struct {
	reqString string
	req       *semver.Constraints

	mandatoryBuildIf TargetPredicate
	optionalBuildIf  TargetPredicate
	mandatoryDefIf   TargetPredicate
	optionalDefIf    TargetPredicate
	mandatoryFeats   []FeatureRequest
	optionalFeats    []FeatureRequest

	singleCount int
	singlePred  TargetPredicate
}

func newMetadataBuilder(reqString string) *metadataBuilder {
	c, _ := semver.NewConstraint(reqString)
	return &metadataBuilder{reqString: reqString, req: c}
}

func (b *metadataBuilder) add(d rawDependency) error {
	var pred TargetPredicate
	if d.Target == "" {
		pred = AlwaysPredicate()
	} else {
		spec, err := platform.ParseTargetSpec(d.Target)
		if err != nil {
			return fmt.Errorf("invalid target spec %q: %w", d.Target, err)
		}
		pred = SpecsPredicate([]*platform.TargetSpec{spec})
	}

	b.singleCount++
	b.singlePred = pred

	if d.Optional {
		b.optionalBuildIf = b.optionalBuildIf.Merge(pred)
		if d.UsesDefaultFeatures {
			b.optionalDefIf = b.optionalDefIf.Merge(pred)
		}
		if len(d.Features) > 0 {
			b.optionalFeats = append(b.optionalFeats, FeatureRequest{Predicate: pred, Features: d.Features})
		}
	} else {
		b.mandatoryBuildIf = b.mandatoryBuildIf.Merge(pred)
		if d.UsesDefaultFeatures {
			b.mandatoryDefIf = b.mandatoryDefIf.Merge(pred)
		}
		if len(d.Features) > 0 {
			b.mandatoryFeats = append(b.mandatoryFeats, FeatureRequest{Predicate: pred, Features: d.Features})
		}
	}
	return nil
}

func (b *metadataBuilder) build() *DependencyMetadata {
	dm := &DependencyMetadata{
		req:       b.req,
		reqString: b.reqString,
		mandatory: DependencyReq{
			buildIf:           b.mandatoryBuildIf,
			defaultFeaturesIf: b.mandatoryDefIf,
			featureRequests:   b.mandatoryFeats,
			present:           !b.mandatoryBuildIf.IsNever() || len(b.mandatoryFeats) > 0,
		},
		optional: DependencyReq{
			buildIf:           b.optionalBuildIf,
			defaultFeaturesIf: b.optionalDefIf,
			featureRequests:   b.optionalFeats,
			present:           !b.optionalBuildIf.IsNever() || len(b.optionalFeats) > 0,
		},
	}
	if b.singleCount == 1 {
		dm.singleTargetSet = true
		dm.singleTarget = b.singlePred
	}
	seen := map[string]struct{}{}
	for _, fr := range append(append([]FeatureRequest{}, b.mandatoryFeats...), b.optionalFeats...) {
		for _, f := range fr.Features {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			dm.allFeatures = append(dm.allFeatures, f)
		}
	}
	return dm
}

func precomputeCurrentStatus(e *DependencyEdge, p *platform.Platform) {
	for _, dm := range []*DependencyMetadata{e.normal, e.build, e.dev} {
		if dm == nil {
			continue
		}
		status, err := dm.StatusOn(p)
		if err != nil {
			continue
		}
		dm.currentStatus = status
		dm.currentStatusKnown = true
		ok, err := dm.mandatory.defaultFeaturesIf.EvalOn(p)
		dm.currentDefaultFeatures = err == nil && ok
	}
}
