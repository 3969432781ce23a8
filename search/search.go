// search.go: the depth-first explorer behind PathsFrom. See doc.go for the
// package overview.

package search

import (
	"fmt"

	"github.com/katalvlaran/railhex/hexmap"
	"github.com/katalvlaran/railhex/tile"
)

// explorer holds the mutable depth-first state of one search call. Every
// mutation made on the way down is undone on backtrack; push/pop symmetry is
// the load-bearing invariant of this type.
type explorer struct {
	m    *hexmap.Map
	crit Criteria

	startAddr hexmap.HexAddress
	startCity int // city index of the start, -1 for a dit start

	steps          []Step
	visits         []Visit
	conflicts      ConflictSet
	routeConflicts ConflictSet
	numCities      int
	numDits        int
	numHexes       int
	revenue        int

	paths []Path
}

// claimFrame remembers which conflict entries one step introduced, so that
// backtracking removes exactly those and nothing else.
type claimFrame struct {
	path      Conflict
	route     Conflict
	pathAdded bool
	routeAdd  bool
}

// PathsFrom enumerates all single-ended paths starting at the query's city or
// dit. An empty result is a valid answer; errors report misuse of the API
// (nil map, empty hex, non-stop start, bad limit, rule mismatch) before any
// traversal happens.
func PathsFrom(m *hexmap.Map, q Query) ([]Path, error) {
	e, t, err := newExplorer(m, q)
	if err != nil {
		return nil, err
	}

	// Seed: register the start's own conflicts, trail entry, and visit.
	fr, _ := e.claim(q.Addr, q.From)
	e.steps = append(e.steps, Step{Addr: q.Addr, Conn: q.From})
	e.pushVisit(q.Addr, q.From, t)

	// Explore every track end leaving the start. The seed alone is not a
	// result; paths always join at least two stops.
	for _, next := range t.Connections(q.From) {
		e.explore(q.Addr, t, next)
	}

	e.popVisit()
	e.steps = e.steps[:len(e.steps)-1]
	e.unclaim(fr)

	return e.paths, nil
}

// newExplorer validates the query eagerly and builds the initial context.
func newExplorer(m *hexmap.Map, q Query) (*explorer, *tile.Tile, error) {
	if m == nil {
		return nil, nil, ErrNilMap
	}
	if err := q.Criteria.validate(); err != nil {
		return nil, nil, err
	}
	t, _, ok := m.TileAt(q.Addr)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", q.Addr, ErrNoTile)
	}

	startCity := -1
	switch q.From.Kind {
	case tile.KindCity:
		if _, ok := t.City(q.From.Index); !ok {
			return nil, nil, fmt.Errorf("%s at %s: %w", q.From, q.Addr, ErrQueryStart)
		}
		startCity = q.From.Index
	case tile.KindDit:
		if _, ok := t.Dit(q.From.Index); !ok {
			return nil, nil, fmt.Errorf("%s at %s: %w", q.From, q.Addr, ErrQueryStart)
		}
	case tile.KindTrack, tile.KindFace:
		return nil, nil, fmt.Errorf("%s at %s: %w", q.From, q.Addr, ErrQueryStart)
	}

	e := &explorer{
		m:              m,
		crit:           q.Criteria,
		startAddr:      q.Addr,
		startCity:      startCity,
		conflicts:      make(ConflictSet),
		routeConflicts: make(ConflictSet),
		numHexes:       1, // the starting hex counts
	}

	return e, t, nil
}

// explore advances the search into conn on tile t at addr, emits a path at
// every stop reached, recurses onward, and undoes all of it before returning.
func (e *explorer) explore(addr hexmap.HexAddress, t *tile.Tile, conn tile.Connection) {
	// 1. Prune a revisit of an equivalent connection on the same hex.
	//    This is also the cycle breaker that guarantees termination.
	if e.visited(addr, conn) {
		return
	}

	// 2. Kind-specific admission checks, before any state is touched.
	switch conn.Kind {
	case tile.KindCity:
		if !e.allowsStop(StopCity) {
			return
		}
		// Symmetric-start dedup: reaching another city that holds the
		// querying token means the same run is also found starting there.
		// Only the canonically smaller (address, city) start proceeds.
		if e.startCity >= 0 && e.holdsToken(addr, conn.Index) && !e.smallerStart(addr, conn.Index) {
			return
		}
	case tile.KindDit:
		if !e.allowsStop(StopDit) {
			return
		}
	case tile.KindFace:
		if !e.allowsHex() {
			return
		}
	case tile.KindTrack:
		// no admission beyond the conflict claim below
	}

	// 3. Claim exclusive resources; a resource already claimed by this path
	//    prunes the branch.
	fr, ok := e.claim(addr, conn)
	if !ok {
		return
	}
	e.steps = append(e.steps, Step{Addr: addr, Conn: conn})

	// 4. Advance according to the connection kind.
	switch conn.Kind {
	case tile.KindTrack:
		// A segment entered at one end is exited at the other.
		other, err := conn.OtherEnd()
		if err == nil {
			for _, next := range t.Connections(other) {
				e.explore(addr, t, next)
			}
		}
	case tile.KindFace:
		e.crossFace(addr, conn.Face)
	case tile.KindCity:
		e.pushVisit(addr, conn, t)
		e.emit()
		if e.mayContinuePast(addr, t, conn.Index) {
			for _, next := range t.Connections(conn) {
				e.explore(addr, t, next)
			}
		}
		e.popVisit()
	case tile.KindDit:
		e.pushVisit(addr, conn, t)
		e.emit()
		for _, next := range t.Connections(conn) {
			e.explore(addr, t, next)
		}
		e.popVisit()
	}

	// 5. Backtrack: undo the step and its claims.
	e.steps = e.steps[:len(e.steps)-1]
	e.unclaim(fr)
}

// crossFace resolves the hex on the other side of the edge and recurses into
// the neighbour tile. Both sides of the border enter the trail, so two runs
// sharing only the border are still detected as conflicting under RuleHex.
func (e *explorer) crossFace(addr hexmap.HexAddress, f tile.Face) {
	nb, ok := e.m.AdjacentFace(addr, f)
	if !ok {
		return
	}
	nconn := tile.FaceConn(nb.Face)
	if e.visited(nb.Addr, nconn) {
		return
	}
	fr, ok := e.claim(nb.Addr, nconn)
	if !ok {
		return
	}
	e.steps = append(e.steps, Step{Addr: nb.Addr, Conn: nconn})
	e.numHexes++

	for _, next := range nb.Tile.Connections(nconn) {
		e.explore(nb.Addr, nb.Tile, next)
	}

	e.numHexes--
	e.steps = e.steps[:len(e.steps)-1]
	e.unclaim(fr)
}

// visited reports whether an equivalent connection on the same hex is already
// in the trail. Trails are short; a linear scan beats set bookkeeping here.
func (e *explorer) visited(addr hexmap.HexAddress, conn tile.Connection) bool {
	for _, s := range e.steps {
		if s.Addr == addr && s.Conn.Equivalent(conn) {
			return true
		}
	}

	return false
}

// claim records the connection's conflicts under both rules. ok is false when
// the within-route resource was already claimed by this path; the cross-route
// set only accumulates (it is a set, coarser duplicates are expected).
func (e *explorer) claim(addr hexmap.HexAddress, conn tile.Connection) (claimFrame, bool) {
	var fr claimFrame
	if c, ok := maybeConflict(e.crit.PathRule, addr, conn); ok {
		if _, dup := e.conflicts[c]; dup {
			return fr, false
		}
		e.conflicts[c] = struct{}{}
		fr.path, fr.pathAdded = c, true
	}
	if c, ok := maybeConflict(e.crit.RouteRule, addr, conn); ok {
		if _, dup := e.routeConflicts[c]; !dup {
			e.routeConflicts[c] = struct{}{}
			fr.route, fr.routeAdd = c, true
		}
	}

	return fr, true
}

// unclaim removes exactly what the matching claim added.
func (e *explorer) unclaim(fr claimFrame) {
	if fr.pathAdded {
		delete(e.conflicts, fr.path)
	}
	if fr.routeAdd {
		delete(e.routeConflicts, fr.route)
	}
}

// allowsStop reports whether the active limit admits one more stop of the
// given kind.
func (e *explorer) allowsStop(kind StopKind) bool {
	switch e.crit.Limit.Kind() {
	case LimitKindCities:
		return kind != StopCity || e.numCities < e.crit.Limit.Count()
	case LimitKindCitiesAndTowns:
		return len(e.visits) < e.crit.Limit.Count()
	case LimitNone, LimitKindHexes:
		return true
	}

	return true
}

// allowsHex reports whether the active limit admits entering one more hex.
func (e *explorer) allowsHex() bool {
	if e.crit.Limit.Kind() != LimitKindHexes {
		return true
	}

	return e.numHexes < e.crit.Limit.Count()
}

// holdsToken reports whether the querying token occupies a space of the given
// city.
func (e *explorer) holdsToken(addr hexmap.HexAddress, city int) bool {
	for sp, tok := range e.m.Tokens(addr) {
		if sp.City == city && tok == e.crit.Token {
			return true
		}
	}

	return false
}

// smallerStart reports whether the search's starting (address, city) pair
// precedes the given pair under the canonical order.
func (e *explorer) smallerStart(addr hexmap.HexAddress, city int) bool {
	if c := e.startAddr.Compare(addr); c != 0 {
		return c < 0
	}

	return e.startCity < city
}

// mayContinuePast applies the city continuation rule: terminal-colour tiles
// end every run, and a tokened city blocks passage only when all of its
// spaces are filled by other companies' tokens.
func (e *explorer) mayContinuePast(addr hexmap.HexAddress, t *tile.Tile, city int) bool {
	if t.Colour().Terminal() {
		return false
	}
	spaces, err := t.CityTokenSpaces(city)
	if err != nil || spaces == 0 {
		return true
	}
	occupied := 0
	for sp, tok := range e.m.Tokens(addr) {
		if sp.City != city {
			continue
		}
		if tok == e.crit.Token {
			return true
		}
		occupied++
	}

	return occupied < spaces
}

// pushVisit records a revenue stop for the city or dit connection.
func (e *explorer) pushVisit(addr hexmap.HexAddress, conn tile.Connection, t *tile.Tile) {
	var v Visit
	if conn.Kind == tile.KindCity {
		c, _ := t.City(conn.Index)
		v = Visit{Addr: addr, Kind: StopCity, Index: conn.Index, Revenue: c.Revenue}
		e.numCities++
	} else {
		d, _ := t.Dit(conn.Index)
		v = Visit{Addr: addr, Kind: StopDit, Index: conn.Index, Revenue: d.Revenue}
		e.numDits++
	}
	e.visits = append(e.visits, v)
	e.revenue += v.Revenue
}

// popVisit undoes the matching pushVisit.
func (e *explorer) popVisit() {
	v := e.visits[len(e.visits)-1]
	e.visits = e.visits[:len(e.visits)-1]
	e.revenue -= v.Revenue
	if v.Kind == StopCity {
		e.numCities--
	} else {
		e.numDits--
	}
}

// emit snapshots the context into an independent Path result.
func (e *explorer) emit() {
	p := Path{
		Steps:          append([]Step(nil), e.steps...),
		Visits:         append([]Visit(nil), e.visits...),
		Conflicts:      e.conflicts.clone(),
		RouteConflicts: e.routeConflicts.clone(),
		NumVisits:      len(e.visits),
		NumCities:      e.numCities,
		NumDits:        e.numDits,
		NumHexes:       e.numHexes,
		Revenue:        e.revenue,
	}
	e.paths = append(e.paths, p)
}
