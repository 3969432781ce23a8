package search

import (
	"fmt"

	"github.com/katalvlaran/railhex/hexmap"
	"github.com/katalvlaran/railhex/tile"
)

// Step is one entry in a path's visited-connection trail.
type Step struct {
	Addr hexmap.HexAddress
	Conn tile.Connection
}

// StopKind tags the two kinds of revenue stop.
type StopKind int

const (
	// StopCity marks a city visit.
	StopCity StopKind = iota
	// StopDit marks a dit visit.
	StopDit
)

// Visit records one stop actually counted toward revenue.
type Visit struct {
	Addr    hexmap.HexAddress
	Kind    StopKind
	Index   int
	Revenue int
}

// ConflictKind tags the resource class a Conflict claims.
type ConflictKind int

const (
	// ConflictTrack claims one track segment of one hex.
	ConflictTrack ConflictKind = iota
	// ConflictDit claims one dit of one hex.
	ConflictDit
	// ConflictCity claims one city of one hex.
	ConflictCity
	// ConflictHex claims a whole hex.
	ConflictHex
)

// Conflict is an opaque marker for a resource a path claims at most once.
// Conflicts are compared by equality only and stored in sets.
type Conflict struct {
	Addr  hexmap.HexAddress
	Kind  ConflictKind
	Index int
}

// ConflictSet is a set of claimed resources.
type ConflictSet map[Conflict]struct{}

// clone returns an independent copy of the set.
func (s ConflictSet) clone() ConflictSet {
	out := make(ConflictSet, len(s))
	for c := range s {
		out[c] = struct{}{}
	}

	return out
}

// intersectionSize counts elements present in both sets, remembering one of
// them. Used by path combination, which only ever needs size and a witness.
func (s ConflictSet) intersectionSize(o ConflictSet) (int, Conflict) {
	small, large := s, o
	if len(large) < len(small) {
		small, large = large, small
	}
	var witness Conflict
	n := 0
	for c := range small {
		if _, ok := large[c]; ok {
			witness = c
			n++
		}
	}

	return n, witness
}

// union returns a new set holding every element of both.
func (s ConflictSet) union(o ConflictSet) ConflictSet {
	out := s.clone()
	for c := range o {
		out[c] = struct{}{}
	}

	return out
}

// maybeConflict maps a visited (hex, connection) pair onto the resource it
// claims under the given rule, or ok=false for connections that are never
// exclusive at that granularity.
func maybeConflict(rule ConflictRule, addr hexmap.HexAddress, conn tile.Connection) (Conflict, bool) {
	switch rule {
	case RuleHex:
		return Conflict{Addr: addr, Kind: ConflictHex}, true
	case RuleTrackOrCity:
		switch conn.Kind {
		case tile.KindTrack:
			return Conflict{Addr: addr, Kind: ConflictTrack, Index: conn.Index}, true
		case tile.KindDit:
			return Conflict{Addr: addr, Kind: ConflictDit, Index: conn.Index}, true
		case tile.KindCity:
			return Conflict{Addr: addr, Kind: ConflictCity, Index: conn.Index}, true
		case tile.KindFace:
			return Conflict{}, false
		}
	}

	return Conflict{}, false
}

// Path is one immutable search result: a fully-owned snapshot of the steps,
// stops, and claimed resources of a single run, with its revenue.
type Path struct {
	// Steps is the visited-connection trail, in traversal order.
	Steps []Step

	// Visits lists the revenue stops, in traversal order.
	Visits []Visit

	// Conflicts holds the resources claimed under the within-route rule.
	Conflicts ConflictSet

	// RouteConflicts holds the resources claimed under the cross-route rule.
	RouteConflicts ConflictSet

	// NumVisits == NumCities + NumDits == len(Visits).
	NumVisits int

	// NumCities counts city stops.
	NumCities int

	// NumDits counts dit stops.
	NumDits int

	// NumHexes counts hexes entered, the starting hex included.
	NumHexes int

	// Revenue is the sum of all visit revenues.
	Revenue int
}

// String renders the stop sequence and revenue, for tests and diagnostics.
func (p Path) String() string {
	s := "path["
	for i, v := range p.Visits {
		if i > 0 {
			s += " "
		}
		kind := "city"
		if v.Kind == StopDit {
			kind = "dit"
		}
		s += fmt.Sprintf("%s:%s(%d)", v.Addr, kind, v.Revenue)
	}

	return s + fmt.Sprintf("]=%d", p.Revenue)
}
