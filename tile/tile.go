// Package tile builds, for each tile, the connectivity graph that answers
// "what is reachable by crossing this connection" in O(1). The graph is
// constructed exactly once by NewTile and is immutable afterwards.
//
// Resolution rules for a track segment end, in priority order:
//
//  1. a face midpoint the end is anchored on,
//  2. a dit whose anchor coincides with the end,
//  3. a city whose footprint contains the end.
//
// An end resolving to none of these is a dead end inside the tile; that is
// legal. Two segment ends that touch each other without a face, dit, or city
// between them are malformed geometry: construction records a diagnostic and
// carries on, so unusual tiles still load best-effort.
package tile

import (
	"fmt"
	"sort"
)

// Tile is an immutable track network with its precomputed connectivity graph.
type Tile struct {
	name     string
	colour   Colour
	segments []Segment
	cities   []City
	dits     []Dit
	conns    map[Connection][]Connection
	diags    []string
}

// NewTile validates the declared geometry and builds the connectivity graph.
// Malformed geometry is reported via Diagnostics, not via the error return;
// only structurally unusable declarations (no content, negative token spaces,
// degenerate city footprints) fail.
func NewTile(name string, colour Colour, segments []Segment, cities []City) (*Tile, error) {
	// 1. Validate declarations early (fail fast; no partial graph).
	if len(segments) == 0 && len(cities) == 0 {
		return nil, fmt.Errorf("tile %q: %w", name, ErrEmptyTile)
	}
	for i, c := range cities {
		if c.TokenSpaces < 0 {
			return nil, fmt.Errorf("tile %q city %d: %w", name, i, ErrCityTokenSpaces)
		}
		if c.Radius <= 0 {
			return nil, fmt.Errorf("tile %q city %d: %w", name, i, ErrCityFootprint)
		}
	}

	t := &Tile{
		name:     name,
		colour:   colour,
		segments: append([]Segment(nil), segments...),
		cities:   append([]City(nil), cities...),
		conns:    make(map[Connection][]Connection),
	}
	t.build()

	return t, nil
}

// build runs the one-time connectivity construction described in the package
// comment. resolved tracks which segment ends already found their anchor.
func (t *Tile) build() {
	resolved := make(map[Connection]bool)

	// 1. Faces: link every segment end anchored on a face midpoint.
	var si int
	var seg Segment
	for si, seg = range t.segments {
		for _, end := range []SegmentEnd{EndA, EndB} {
			p := seg.End(end)
			for f := Face(0); f < NumFaces; f++ {
				if !Coincident(p, FaceMidpoint(f)) {
					continue
				}
				tc := TrackConn(si, end)
				t.link(FaceConn(f), tc)
				t.link(tc, FaceConn(f))
				resolved[tc] = true
			}
		}
	}

	// 2. Dits: allocate one per carrying segment, link its owning end, then
	//    link every other segment end coincident with the dit anchor.
	//    Segments meeting at a dit connect through the dit, never directly.
	for si, seg = range t.segments {
		if !seg.HasDit {
			continue
		}
		di := len(t.dits)
		t.dits = append(t.dits, Dit{Segment: si, End: seg.DitEnd, Revenue: seg.DitRevenue})
		anchor := seg.End(seg.DitEnd)
		t.resolveEnd(DitConn(di), TrackConn(si, seg.DitEnd), resolved)
		for sj, other := range t.segments {
			if sj == si {
				continue
			}
			for _, end := range []SegmentEnd{EndA, EndB} {
				if Coincident(other.End(end), anchor) {
					t.resolveEnd(DitConn(di), TrackConn(sj, end), resolved)
				}
			}
		}
	}

	// 3. Cities: link every segment end contained in a city footprint.
	var ci int
	var city City
	for ci, city = range t.cities {
		for si, seg = range t.segments {
			for _, end := range []SegmentEnd{EndA, EndB} {
				if t.contains(city, seg.End(end)) {
					t.resolveEnd(CityConn(ci), TrackConn(si, end), resolved)
				}
			}
		}
	}

	// 4. Sanity: an unresolved end touching another segment means two pieces
	//    of track were drawn meeting without a face, dit, or city between
	//    them. Diagnose, do not fail.
	for si, seg = range t.segments {
		for _, end := range []SegmentEnd{EndA, EndB} {
			tc := TrackConn(si, end)
			if resolved[tc] {
				continue
			}
			for sj, other := range t.segments {
				if sj == si {
					continue
				}
				for _, oe := range []SegmentEnd{EndA, EndB} {
					if Coincident(seg.End(end), other.End(oe)) {
						t.diags = append(t.diags, fmt.Sprintf(
							"tile %q: segments %d and %d touch at end %s/%s without a face, dit, or city",
							t.name, si, sj, end, oe))
					}
				}
			}
		}
	}

	// 5. Freeze deterministic neighbour order for every key.
	for key := range t.conns {
		sortConnections(t.conns[key])
	}
}

// resolveEnd records a two-way link between a stop (dit or city) and a track
// end, unless the end already resolved elsewhere; multiple resolutions are
// malformed geometry and become a diagnostic, first resolution wins.
func (t *Tile) resolveEnd(stop, trackEnd Connection, resolved map[Connection]bool) {
	if resolved[trackEnd] {
		t.diags = append(t.diags, fmt.Sprintf(
			"tile %q: %s resolves to %s but was already resolved", t.name, trackEnd, stop))

		return
	}
	t.link(stop, trackEnd)
	t.link(trackEnd, stop)
	resolved[trackEnd] = true
}

// link appends `to` to the adjacency list of `from` if not already present.
func (t *Tile) link(from, to Connection) {
	for _, c := range t.conns[from] {
		if c == to {
			return
		}
	}
	t.conns[from] = append(t.conns[from], to)
}

// contains reports whether p lies within the city's footprint.
func (t *Tile) contains(c City, p Point) bool {
	dx, dy := p.X-c.Centre.X, p.Y-c.Centre.Y

	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// sortConnections orders a neighbour list by (Kind, Index, End, Face) so that
// traversal order is stable across runs.
func sortConnections(cs []Connection) {
	sort.Slice(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		if a.End != b.End {
			return a.End < b.End
		}

		return a.Face < b.Face
	})
}

// Name returns the catalogue name of the tile.
func (t *Tile) Name() string { return t.name }

// Colour returns the tile's paint colour.
func (t *Tile) Colour() Colour { return t.colour }

// Segments returns the declared track segments.
func (t *Tile) Segments() []Segment {
	return append([]Segment(nil), t.segments...)
}

// Cities returns the declared cities in index order.
func (t *Tile) Cities() []City {
	return append([]City(nil), t.cities...)
}

// Dits returns the dits allocated during construction, in index order.
func (t *Tile) Dits() []Dit {
	return append([]Dit(nil), t.dits...)
}

// City returns the city at the given index without copying the full slice.
func (t *Tile) City(i int) (City, bool) {
	if i < 0 || i >= len(t.cities) {
		return City{}, false
	}

	return t.cities[i], true
}

// Dit returns the dit at the given index without copying the full slice.
func (t *Tile) Dit(i int) (Dit, bool) {
	if i < 0 || i >= len(t.dits) {
		return Dit{}, false
	}

	return t.dits[i], true
}

// Connections returns everything directly reachable by crossing the given
// connection, in deterministic order, or nil when nothing is linked.
// The returned slice is shared and must not be mutated.
func (t *Tile) Connections(c Connection) []Connection {
	return t.conns[c]
}

// CityTokenSpaces returns the token-space count of the given city.
// Returns ErrCityIndex when the index is out of range.
func (t *Tile) CityTokenSpaces(city int) (int, error) {
	if city < 0 || city >= len(t.cities) {
		return 0, fmt.Errorf("tile %q city %d: %w", t.name, city, ErrCityIndex)
	}

	return t.cities[city].TokenSpaces, nil
}

// Diagnostics returns the malformed-geometry reports recorded at build time.
// An empty slice means the tile resolved cleanly.
func (t *Tile) Diagnostics() []string {
	return append([]string(nil), t.diags...)
}
