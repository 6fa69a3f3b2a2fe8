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
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	dotvisitor "github.com/cratedeps/depgraph/graph/dot"
)

// Direction picks which way a Select query walks the package graph.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// LinkResolver decides whether a query should follow a given dependency
// link during transitive closure.
type LinkResolver func(link DependencyLink) bool

// ResolverNormal follows only normal-kind edges.
func ResolverNormal(link DependencyLink) bool { return link.Edge.Normal() != nil }

// ResolverBuild follows only build-kind edges.
func ResolverBuild(link DependencyLink) bool { return link.Edge.Build() != nil }

// ResolverDev follows only dev-kind edges.
func ResolverDev(link DependencyLink) bool { return link.Edge.Dev() != nil }

// ResolverAll follows every edge regardless of kind.
func ResolverAll(link DependencyLink) bool { return true }

// ResolverWorkspace follows only edges whose target is a workspace member.
func ResolverWorkspace(link DependencyLink) bool { return link.To.InWorkspace() }

// ResolverThirdParty follows only edges whose target is not a workspace
// member (a "direct third-party dependency" restriction when combined with
// a depth-one query).
func ResolverThirdParty(link DependencyLink) bool { return !link.To.InWorkspace() }

// ResolverAnd composes resolvers with logical AND.
func ResolverAnd(resolvers ...LinkResolver) LinkResolver {
	return func(link DependencyLink) bool {
		for _, r := range resolvers {
			if !r(link) {
				return false
			}
		}
		return true
	}
}

// Select starts a query from the given seed package ids, walking in dir
// and following edges link accepts, and returns the resulting PackageSet.
func (pg *PackageGraph) Select(seeds []PackageID, dir Direction, link LinkResolver) (*PackageSet, error) {
	pg.mu.RLock()
	defer pg.mu.RUnlock()

	seedIx := make([]PackageIx, 0, len(seeds))
	for _, id := range seeds {
		p, ok := pg.byID[id]
		if !ok {
			return nil, &UnknownPackageIDError{ID: id}
		}
		seedIx = append(seedIx, p.ix)
	}

	included := make(map[PackageIx]bool)
	for _, s := range seedIx {
		included[s] = true
	}
	queue := append([]PackageIx{}, seedIx...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		nodeID := int64(cur)
		var it graph.Nodes
		if dir == Forward {
			it = pg.g.From(nodeID)
		} else {
			it = pg.g.To(nodeID)
		}
		for it.Next() {
			other := PackageIx(it.Node().ID())
			var e graph.Edge
			if dir == Forward {
				e = pg.g.Edge(nodeID, int64(other))
			} else {
				e = pg.g.Edge(int64(other), nodeID)
			}
			de, ok := e.(depEdge)
			if !ok {
				continue
			}
			dlink := DependencyLink{From: pg.packages[de.f.ID()], To: pg.packages[de.t.ID()], Edge: de.dep}
			if !link(dlink) {
				continue
			}
			if !included[other] {
				included[other] = true
				queue = append(queue, other)
			}
		}
	}

	members := make([]PackageIx, 0, len(included))
	for ix := range included {
		members = append(members, ix)
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })

	return &PackageSet{pg: pg, members: members}, nil
}

// PackageSet is the result of a Select query: a set of package indices and
// the graph they belong to, with topological iteration and DOT rendering.
type PackageSet struct {
	pg      *PackageGraph
	members []PackageIx
}

// Len returns the number of packages in the set.
func (s *PackageSet) Len() int { return len(s.members) }

// PackageIDs returns the set's members, in ascending index order.
func (s *PackageSet) PackageIDs() []PackageID {
	out := make([]PackageID, len(s.members))
	for i, ix := range s.members {
		out[i] = s.pg.packages[ix].id
	}
	return out
}

// Contains reports whether id is a member of the set.
func (s *PackageSet) Contains(id PackageID) bool {
	s.pg.mu.RLock()
	p, ok := s.pg.byID[id]
	s.pg.mu.RUnlock()
	if !ok {
		return false
	}
	for _, ix := range s.members {
		if ix == p.ix {
			return true
		}
	}
	return false
}

func (s *PackageSet) induced() *simple.DirectedGraph {
	s.pg.mu.RLock()
	defer s.pg.mu.RUnlock()

	member := make(map[PackageIx]bool, len(s.members))
	for _, ix := range s.members {
		member[ix] = true
	}
	sub := simple.NewDirectedGraph()
	for _, ix := range s.members {
		sub.AddNode(simpleNode(ix))
	}
	edges := s.pg.g.Edges()
	for edges.Next() {
		e, ok := edges.Edge().(depEdge)
		if !ok {
			continue
		}
		from := PackageIx(e.f.ID())
		to := PackageIx(e.t.ID())
		if member[from] && member[to] {
			sub.SetEdge(simple.Edge{F: e.f, T: e.t})
		}
	}
	return sub
}

// ForwardTopo returns the set's members in forward topological order of
// the induced subgraph (dependencies before dependents: a package appears
// after everything it depends on).
func (s *PackageSet) ForwardTopo() ([]PackageID, error) {
	sub := s.induced()
	sorted, err := topo.Sort(sub)
	if err != nil {
		return nil, &InternalError{Msg: "induced subgraph is not acyclic"}
	}
	// topo.Sort puts the source of every edge (the dependent) first, so
	// fill the result back to front.
	out := make([]PackageID, len(sorted))
	s.pg.mu.RLock()
	defer s.pg.mu.RUnlock()
	for i, n := range sorted {
		out[len(sorted)-1-i] = s.pg.packages[n.ID()].id
	}
	return out, nil
}

// ReverseTopo returns the set's members in reverse topological order.
func (s *PackageSet) ReverseTopo() ([]PackageID, error) {
	fwd, err := s.ForwardTopo()
	if err != nil {
		return nil, err
	}
	out := make([]PackageID, len(fwd))
	for i, id := range fwd {
		out[len(fwd)-1-i] = id
	}
	return out, nil
}

// DisplayDot renders the set's induced subgraph to the given visitor,
// formatting nothing itself: it only calls back for each node and edge.
func (s *PackageSet) DisplayDot(v dotvisitor.Visitor) {
	s.pg.mu.RLock()
	defer s.pg.mu.RUnlock()

	for _, ix := range s.members {
		v.PackageNode(string(s.pg.packages[ix].id), s.pg.packages[ix].name)
	}
	member := make(map[PackageIx]bool, len(s.members))
	for _, ix := range s.members {
		member[ix] = true
	}
	edges := s.pg.g.Edges()
	for edges.Next() {
		e, ok := edges.Edge().(depEdge)
		if !ok {
			continue
		}
		from := PackageIx(e.f.ID())
		to := PackageIx(e.t.ID())
		if member[from] && member[to] {
			v.PackageEdge(string(s.pg.packages[from].id), string(s.pg.packages[to].id), e.dep.depName)
		}
	}
}
