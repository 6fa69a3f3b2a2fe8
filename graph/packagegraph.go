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
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/cratedeps/depgraph/platform"
)

// depEdge adapts a *DependencyEdge to gonum's graph.Edge interface so it
// can live directly on a simple.DirectedGraph, the way gonum's own
// documentation recommends embedding payloads on custom edge types.
type depEdge struct {
	f, t graph.Node
	dep  *DependencyEdge
}

func (e depEdge) From() graph.Node         { return e.f }
func (e depEdge) To() graph.Node           { return e.t }
func (e depEdge) ReversedEdge() graph.Edge { return depEdge{f: e.t, t: e.f, dep: e.dep} }

// Workspace names the subset of packages that share a root and a lock.
type Workspace struct {
	root    string
	members map[string]PackageID // workspace-relative path -> id
	paths   []string             // sorted
}

// Root returns the workspace root path.
func (w *Workspace) Root() string { return w.root }

// MemberIDs returns workspace member ids, sorted by workspace-relative
// path.
func (w *Workspace) MemberIDs() []PackageID {
	out := make([]PackageID, 0, len(w.paths))
	for _, p := range w.paths {
		out = append(out, w.members[p])
	}
	return out
}

// MemberByPath looks up the package id at a workspace-relative path.
func (w *Workspace) MemberByPath(path string) (PackageID, bool) {
	id, ok := w.members[path]
	return id, ok
}

// sccResult is the memoized strongly-connected-component decomposition of
// the non-dev-only subgraph, plus the dev-only cycle catalog.
type sccResult struct {
	nonDevSCCs [][]PackageIx // components of size > 1, or self-loops: cycles
	devCycles  [][]PackageIx
	acyclic    bool
}

// PackageGraph is a directed graph of packages with per-edge
// normal/build/dev metadata and platform predicates, built once from
// metadata and treated as immutable except for RetainEdges.
type PackageGraph struct {
	mu sync.RWMutex

	g *simple.DirectedGraph

	packages []*PackageMetadata
	byID     map[PackageID]*PackageMetadata

	workspace *Workspace

	currentPlatform *platform.Platform

	sccOnce func() *sccResult
}

func newPackageGraph() *PackageGraph {
	pg := &PackageGraph{
		g:    simple.NewDirectedGraph(),
		byID: make(map[PackageID]*PackageMetadata),
	}
	pg.invalidateCaches()
	return pg
}

func (pg *PackageGraph) invalidateCaches() {
	pg.sccOnce = sync.OnceValue(pg.computeSCCs)
}

// Len returns the number of packages.
func (pg *PackageGraph) Len() int {
	pg.mu.RLock()
	defer pg.mu.RUnlock()
	return len(pg.packages)
}

// Packages returns every package, in build order (insertion order of the
// metadata document).
func (pg *PackageGraph) Packages() []*PackageMetadata {
	pg.mu.RLock()
	defer pg.mu.RUnlock()
	out := make([]*PackageMetadata, len(pg.packages))
	copy(out, pg.packages)
	return out
}

// PackageIDs returns every package id, in build order.
func (pg *PackageGraph) PackageIDs() []PackageID {
	pg.mu.RLock()
	defer pg.mu.RUnlock()
	out := make([]PackageID, len(pg.packages))
	for i, p := range pg.packages {
		out[i] = p.id
	}
	return out
}

// DuplicateNames groups packages by declared name, returning only the names
// with more than one distinct package id (different versions or different
// sources resolved under the same name), each sorted by version. This
// answers the overview's "what duplicate versions exist" query.
func (pg *PackageGraph) DuplicateNames() map[string][]*PackageMetadata {
	pg.mu.RLock()
	defer pg.mu.RUnlock()
	byName := make(map[string][]*PackageMetadata)
	for _, p := range pg.packages {
		byName[p.name] = append(byName[p.name], p)
	}
	out := make(map[string][]*PackageMetadata)
	for name, pkgs := range byName {
		if len(pkgs) < 2 {
			continue
		}
		sorted := append([]*PackageMetadata{}, pkgs...)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].version.LessThan(sorted[j].version)
		})
		out[name] = sorted
	}
	return out
}

// Metadata looks up a package by id.
func (pg *PackageGraph) Metadata(id PackageID) (*PackageMetadata, error) {
	pg.mu.RLock()
	defer pg.mu.RUnlock()
	p, ok := pg.byID[id]
	if !ok {
		return nil, &UnknownPackageIDError{ID: id}
	}
	return p, nil
}

// Workspace returns the graph's workspace.
func (pg *PackageGraph) Workspace() *Workspace { return pg.workspace }

// CurrentPlatform returns the platform the graph was constructed with, if
// the host triple was discoverable.
func (pg *PackageGraph) CurrentPlatform() (*platform.Platform, bool) {
	return pg.currentPlatform, pg.currentPlatform != nil
}

// DependencyLink is a directed edge viewed from a package-graph traversal,
// pairing the endpoints with the edge payload.
type DependencyLink struct {
	From *PackageMetadata
	To   *PackageMetadata
	Edge *DependencyEdge
}

// DepsFrom returns the outgoing dependency links from id, ordered by the
// dependency's package index.
func (pg *PackageGraph) DepsFrom(id PackageID) ([]DependencyLink, error) {
	return pg.links(id, true)
}

// DepsTo returns the incoming dependency links (dependents) of id, ordered
// by the dependent's package index.
func (pg *PackageGraph) DepsTo(id PackageID) ([]DependencyLink, error) {
	return pg.links(id, false)
}

func (pg *PackageGraph) links(id PackageID, forward bool) ([]DependencyLink, error) {
	pg.mu.RLock()
	defer pg.mu.RUnlock()
	p, ok := pg.byID[id]
	if !ok {
		return nil, &UnknownPackageIDError{ID: id}
	}
	nodeID := int64(p.ix)
	var it graph.Nodes
	if forward {
		it = pg.g.From(nodeID)
	} else {
		it = pg.g.To(nodeID)
	}
	var out []DependencyLink
	for it.Next() {
		other := it.Node()
		var e graph.Edge
		if forward {
			e = pg.g.Edge(nodeID, other.ID())
		} else {
			e = pg.g.Edge(other.ID(), nodeID)
		}
		de, ok := e.(depEdge)
		if !ok {
			continue
		}
		otherMeta := pg.packages[other.ID()]
		if forward {
			out = append(out, DependencyLink{From: p, To: otherMeta, Edge: de.dep})
		} else {
			out = append(out, DependencyLink{From: otherMeta, To: p, Edge: de.dep})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if forward {
			return out[i].To.ix < out[j].To.ix
		}
		return out[i].From.ix < out[j].From.ix
	})
	return out, nil
}

// DependsOn reports whether there is a directed path from a to b in the
// forward graph.
func (pg *PackageGraph) DependsOn(a, b PackageID) (bool, error) {
	pg.mu.RLock()
	defer pg.mu.RUnlock()
	pa, ok := pg.byID[a]
	if !ok {
		return false, &UnknownPackageIDError{ID: a}
	}
	pb, ok := pg.byID[b]
	if !ok {
		return false, &UnknownPackageIDError{ID: b}
	}
	return pg.dfsReaches(int64(pa.ix), int64(pb.ix)), nil
}

func (pg *PackageGraph) dfsReaches(from, to int64) bool {
	if from == to {
		return true
	}
	visited := make(map[int64]bool)
	stack := []int64{from}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if cur == to {
			return true
		}
		it := pg.g.From(cur)
		for it.Next() {
			nxt := it.Node().ID()
			if !visited[nxt] {
				stack = append(stack, nxt)
			}
		}
	}
	return false
}

// DependsCache amortizes repeated DependsOn queries by reusing DFS
// visitation state keyed by source node.
type DependsCache struct {
	pg     *PackageGraph
	cached map[int64]map[int64]bool
}

// NewDependsCache returns a fresh cache bound to pg.
func (pg *PackageGraph) NewDependsCache() *DependsCache {
	return &DependsCache{pg: pg, cached: make(map[int64]map[int64]bool)}
}

// DependsOn reports whether a depends on b, memoizing full reachability
// from a on first query.
func (c *DependsCache) DependsOn(a, b PackageID) (bool, error) {
	c.pg.mu.RLock()
	pa, ok := c.pg.byID[a]
	if !ok {
		c.pg.mu.RUnlock()
		return false, &UnknownPackageIDError{ID: a}
	}
	pb, ok := c.pg.byID[b]
	c.pg.mu.RUnlock()
	if !ok {
		return false, &UnknownPackageIDError{ID: b}
	}
	fromIx := int64(pa.ix)
	reach, ok := c.cached[fromIx]
	if !ok {
		reach = c.pg.reachableFrom(fromIx)
		c.cached[fromIx] = reach
	}
	return reach[int64(pb.ix)], nil
}

func (pg *PackageGraph) reachableFrom(from int64) map[int64]bool {
	pg.mu.RLock()
	defer pg.mu.RUnlock()
	visited := map[int64]bool{from: true}
	stack := []int64{from}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		it := pg.g.From(cur)
		for it.Next() {
			nxt := it.Node().ID()
			if !visited[nxt] {
				visited[nxt] = true
				stack = append(stack, nxt)
			}
		}
	}
	return visited
}

// RetainEdgeFunc decides whether an edge should survive a RetainEdges
// call.
type RetainEdgeFunc func(link DependencyLink) bool

// RetainEdges drops every edge for which keep returns false, and
// invalidates all derived caches. Requires exclusive access: the caller
// must not hold any other reference performing concurrent reads.
func (pg *PackageGraph) RetainEdges(keep RetainEdgeFunc) {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	var toRemove []depEdge
	edges := pg.g.Edges()
	for edges.Next() {
		e, ok := edges.Edge().(depEdge)
		if !ok {
			continue
		}
		from := pg.packages[e.f.ID()]
		to := pg.packages[e.t.ID()]
		if !keep(DependencyLink{From: from, To: to, Edge: e.dep}) {
			toRemove = append(toRemove, e)
		}
	}
	for _, e := range toRemove {
		pg.g.RemoveEdge(e.f.ID(), e.t.ID())
	}
	pg.invalidateCaches()
}

// nonDevOnly reports whether a DependencyEdge contributes to
// the non-dev-only subgraph (invariant 2): true iff normal or build
// metadata is present.
func nonDevOnly(e *DependencyEdge) bool {
	return e.normal != nil || e.build != nil
}

// computeSCCs reads pg.g without taking pg.mu itself. DebugVerify calls it
// while holding the read lock; the public accessors below call it through
// sccOnce without the lock, so they rely on RetainEdges (the only writer)
// not running concurrently with them.
func (pg *PackageGraph) computeSCCs() *sccResult {
	nonDev := simple.NewDirectedGraph()
	full := simple.NewDirectedGraph()
	for _, p := range pg.packages {
		nonDev.AddNode(simpleNode(p.ix))
		full.AddNode(simpleNode(p.ix))
	}
	edges := pg.g.Edges()
	for edges.Next() {
		e, ok := edges.Edge().(depEdge)
		if !ok {
			continue
		}
		full.SetEdge(simple.Edge{F: e.f, T: e.t})
		if nonDevOnly(e.dep) {
			nonDev.SetEdge(simple.Edge{F: e.f, T: e.t})
		}
	}

	res := &sccResult{acyclic: true}
	for _, scc := range topo.TarjanSCC(nonDev) {
		if len(scc) > 1 || isSelfLoop(nonDev, scc) {
			res.acyclic = false
			res.nonDevSCCs = append(res.nonDevSCCs, toIxSlice(scc))
		}
	}
	for _, scc := range topo.TarjanSCC(full) {
		if len(scc) > 1 || isSelfLoop(full, scc) {
			res.devCycles = append(res.devCycles, toIxSlice(scc))
		}
	}
	return res
}

func isSelfLoop(g *simple.DirectedGraph, scc []graph.Node) bool {
	if len(scc) != 1 {
		return false
	}
	id := scc[0].ID()
	return g.HasEdgeFromTo(id, id)
}

func toIxSlice(nodes []graph.Node) []PackageIx {
	out := make([]PackageIx, len(nodes))
	for i, n := range nodes {
		out[i] = PackageIx(n.ID())
	}
	return out
}

// Cycles returns the dev-only cycle catalog: SCCs of the full graph (of
// size > 1, or self-loops) that are not also SCCs of the non-dev subgraph.
func (pg *PackageGraph) Cycles() [][]PackageIx {
	res := pg.sccOnce()
	return res.devCycles
}

// IsAcyclic reports whether the non-dev-only subgraph is a DAG.
func (pg *PackageGraph) IsAcyclic() bool {
	return pg.sccOnce().acyclic
}

// SCCs returns the non-trivial strongly-connected components of the
// non-dev-only subgraph.
func (pg *PackageGraph) SCCs() [][]PackageIx {
	return pg.sccOnce().nonDevSCCs
}

// TopoSort returns a topological ordering of the non-dev-only subgraph's
// packages. It panics if the subgraph is not acyclic; callers should check
// IsAcyclic first, matching the original's invariant that construction
// itself rejects cyclic non-dev subgraphs.
func (pg *PackageGraph) TopoSort() []PackageID {
	pg.mu.RLock()
	defer pg.mu.RUnlock()

	nonDev := simple.NewDirectedGraph()
	for _, p := range pg.packages {
		nonDev.AddNode(simpleNode(p.ix))
	}
	edges := pg.g.Edges()
	for edges.Next() {
		e, ok := edges.Edge().(depEdge)
		if !ok {
			continue
		}
		if nonDevOnly(e.dep) {
			nonDev.SetEdge(simple.Edge{F: e.f, T: e.t})
		}
	}
	sorted, err := topo.Sort(nonDev)
	if err != nil {
		panic(fmt.Sprintf("package graph: non-dev subgraph is not acyclic: %v", err))
	}
	out := make([]PackageID, len(sorted))
	for i, n := range sorted {
		out[i] = pg.packages[n.ID()].id
	}
	return out
}

// DebugVerify re-checks invariants 1-4 post construction.
// BuildPackageGraphFromJSON runs it on every graph it builds and fails
// construction if it returns an error.
func (pg *PackageGraph) DebugVerify() error {
	pg.mu.RLock()
	defer pg.mu.RUnlock()

	if pg.g.Nodes().Len() != len(pg.packages) {
		return &InternalError{Msg: "node count does not match package count"}
	}
	if len(pg.byID) != len(pg.packages) {
		return &InternalError{Msg: "package-by-id map size does not match package count"}
	}
	edges := pg.g.Edges()
	for edges.Next() {
		e, ok := edges.Edge().(depEdge)
		if !ok {
			continue
		}
		d := e.dep
		if d.normal == nil && d.build == nil && d.dev == nil {
			return &InternalError{Msg: fmt.Sprintf("edge %s -> %s has no kind metadata", d.depName, d.resolvedName)}
		}
		to := pg.packages[e.t.ID()]
		for _, dm := range []*DependencyMetadata{d.normal, d.build, d.dev} {
			if dm == nil {
				continue
			}
			if !dm.VersionMatches(to.version) {
				return &InternalError{Msg: fmt.Sprintf("dependency requirement %q does not match resolved version %s for %s", dm.reqString, to.version, to.id)}
			}
		}
	}
	if !pg.computeSCCs().acyclic {
		return &InternalError{Msg: "non-dev-only subgraph contains a cycle"}
	}
	return nil
}
