/*
 * graph.go, part of chemform.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * chemform is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

// Package chemgraph presents chemform structures as gonum graphs, with atoms as
// nodes and bonds as undirected, weighted edges.
package chemgraph

import (
	"sort"

	chem "github.com/rmera/chemform"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/topo"
)

// Atom is a graph node. Its ID is the index of the atom in its structure.
type Atom struct {
	*chem.Atom
}

func (A *Atom) ID() int64 {
	return int64(A.Index)
}

// Bond is a weighted graph edge.
type Bond struct {
	*chem.Bond
	At1, At2   *Atom
	Weightfunc func(*Bond) float64
}

// Weight returns the weight of the bond. By default, that is the bond length.
func (B *Bond) Weight() float64 {
	if B.Weightfunc == nil {
		return B.Dist
	}
	return B.Weightfunc(B)
}

func (B *Bond) From() graph.Node {
	return B.At1
}

func (B *Bond) To() graph.Node {
	return B.At2
}

// ReversedEdge returns a copy of the bond with its ends swapped.
func (B *Bond) ReversedEdge() graph.Edge {
	r := *B
	r.At1, r.At2 = B.At2, B.At1
	return &r
}

// Atoms implements gonum's graph.Nodes
type Atoms struct {
	Atoms []*Atom
	curr  int
}

func newAtoms(a []*Atom) *Atoms {
	return &Atoms{Atoms: a, curr: -1}
}

func (A *Atoms) Len() int {
	if A.curr >= len(A.Atoms) {
		return 0
	}
	if A.curr < 0 {
		return len(A.Atoms)
	}
	return len(A.Atoms) - A.curr - 1
}

func (A *Atoms) Reset() {
	A.curr = -1
}

func (A *Atoms) Next() bool {
	if A.curr >= len(A.Atoms)-1 {
		A.curr = len(A.Atoms)
		return false
	}
	A.curr++
	return true
}

func (A *Atoms) Node() graph.Node {
	if A.curr < 0 || A.curr >= len(A.Atoms) {
		return nil
	}
	return A.Atoms[A.curr]
}

// Topology implements gonum's graph.Undirected and graph.Weighted interfaces
// for a chemform structure. Bonds that don't join two different atoms of the
// structure are left out.
type Topology struct {
	atoms []*Atom
	bonds map[int64]map[int64]*Bond
}

// TopologyFromStructure returns the graph of S. If weightfunc is nil,
// bond lengths are used as weights. The graph shares the atoms and bonds
// of S, so S should not be modified while the graph is in use.
func TopologyFromStructure(S *chem.Structure, weightfunc func(*Bond) float64) *Topology {
	S.ResetIndexes()
	T := &Topology{atoms: make([]*Atom, S.Len()), bonds: make(map[int64]map[int64]*Bond, S.Len())}
	for i := 0; i < S.Len(); i++ {
		T.atoms[i] = &Atom{S.Atom(i)}
	}
	for i := 0; i < S.NBonds(); i++ {
		b := S.Bond(i)
		if b.At1 < 0 || b.At2 < 0 || b.At1 >= S.Len() || b.At2 >= S.Len() || b.At1 == b.At2 {
			continue
		}
		nb := &Bond{Bond: b, At1: T.atoms[b.At1], At2: T.atoms[b.At2], Weightfunc: weightfunc}
		T.setBond(int64(b.At1), int64(b.At2), nb)
		T.setBond(int64(b.At2), int64(b.At1), nb.ReversedEdge().(*Bond))
	}
	return T
}

func (T *Topology) setBond(from, to int64, b *Bond) {
	if T.bonds[from] == nil {
		T.bonds[from] = make(map[int64]*Bond)
	}
	T.bonds[from][to] = b
}

// Node returns the atom with the given ID, or nil if there is none.
func (T *Topology) Node(id int64) graph.Node {
	if id < 0 || id >= int64(len(T.atoms)) {
		return nil
	}
	return T.atoms[id]
}

func (T *Topology) Nodes() graph.Nodes {
	return newAtoms(T.atoms)
}

// From returns the atoms bonded to the atom with the given ID, in index order.
func (T *Topology) From(id int64) graph.Nodes {
	return newAtoms(T.neighbors(id))
}

func (T *Topology) neighbors(id int64) []*Atom {
	ret := make([]*Atom, 0, len(T.bonds[id]))
	for to := range T.bonds[id] {
		ret = append(ret, T.atoms[to])
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Index < ret[j].Index })
	return ret
}

func (T *Topology) HasEdgeBetween(xid, yid int64) bool {
	_, ok := T.bonds[xid][yid]
	return ok
}

// Edge returns the bond from uid to vid, or nil if they are not bonded.
func (T *Topology) Edge(uid, vid int64) graph.Edge {
	return T.WeightedEdge(uid, vid)
}

func (T *Topology) EdgeBetween(xid, yid int64) graph.Edge {
	return T.Edge(xid, yid)
}

func (T *Topology) WeightedEdge(uid, vid int64) graph.WeightedEdge {
	b, ok := T.bonds[uid][vid]
	if !ok {
		return nil
	}
	return b
}

func (T *Topology) WeightedEdgeBetween(xid, yid int64) graph.WeightedEdge {
	return T.WeightedEdge(xid, yid)
}

// Weight returns the weight of the bond between xid and yid. An atom has
// weight 0 to itself. ok is false if the atoms are not bonded.
func (T *Topology) Weight(xid, yid int64) (w float64, ok bool) {
	if xid == yid {
		return 0, true
	}
	b, ok := T.bonds[xid][yid]
	if !ok {
		return 0, false
	}
	return b.Weight(), true
}

// Neighbors returns the indexes of the atoms bonded to atom i of the graph, sorted.
func (T *Topology) Neighbors(i int) []int {
	var ret []int
	for _, a := range T.neighbors(int64(i)) {
		ret = append(ret, a.Index)
	}
	return ret
}

// Fragments returns the indexes of the atoms in each group of atoms connected
// by bonds. Each fragment is sorted, and fragments are sorted by their first atom.
func Fragments(S *chem.Structure) [][]int {
	if S.Len() == 0 {
		return nil
	}
	T := TopologyFromStructure(S, nil)
	comps := topo.ConnectedComponents(T)
	ret := make([][]int, 0, len(comps))
	for _, c := range comps {
		frag := make([]int, 0, len(c))
		for _, n := range c {
			frag = append(frag, int(n.ID()))
		}
		sort.Ints(frag)
		ret = append(ret, frag)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

// Connected returns true if all the atoms of S are joined by bonds.
// Empty and single-atom structures are connected.
func Connected(S *chem.Structure) bool {
	return len(Fragments(S)) <= 1
}

// ShortestPath returns the atoms, in order, in the path with the smallest total
// bond length between atoms from and to of S, and the length of that path.
// It returns nil and +Inf if there is no such path.
func ShortestPath(S *chem.Structure, from, to int) ([]int, float64) {
	T := TopologyFromStructure(S, nil)
	if T.Node(int64(from)) == nil || T.Node(int64(to)) == nil {
		panic("chemgraph: atom index out of range")
	}
	shortest := path.DijkstraFrom(T.Node(int64(from)), T)
	nodes, w := shortest.To(int64(to))
	if len(nodes) == 0 {
		return nil, w
	}
	ret := make([]int, len(nodes))
	for i, n := range nodes {
		ret[i] = int(n.ID())
	}
	return ret, w
}
