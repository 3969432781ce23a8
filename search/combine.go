package search

import (
	"github.com/katalvlaran/railhex/hexmap"
	"github.com/katalvlaran/railhex/tile"
)

// Path combination builds through-routes: every valid two-sided run formed by
// joining two single-ended paths that share only their common origin stop.
// Combination is O(n²) over the single-ended paths of one origin; realistic
// tile fan-out keeps n in the single digits to low tens.

// combineAll pairs up every two distinct single-ended paths from one origin
// and keeps the pairs that join legally under the criteria.
func combineAll(crit Criteria, paths []Path) []Path {
	var out []Path
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			if p, ok := combinePair(crit, paths[i], paths[j]); ok {
				out = append(out, p)
			}
		}
	}

	return out
}

// combinePair joins a and b into a through-route, or ok=false when the pair
// is illegal. Both halves start at the same origin stop.
func combinePair(crit Criteria, a, b Path) (Path, bool) {
	// 1. The cross-route conflict sets must share exactly one resource: the
	//    origin's. Any more means the halves reuse track or hexes.
	//    The origin's conflict sits in both sets, so a singleton
	//    intersection is necessarily that conflict.
	if n, _ := a.RouteConflicts.intersectionSize(b.RouteConflicts); n != 1 {
		return Path{}, false
	}

	// 2. Recompute combined counts with the shared origin counted once.
	origin := a.Visits[0]
	numVisits := a.NumVisits + b.NumVisits - 1
	numCities := a.NumCities + b.NumCities
	numDits := a.NumDits + b.NumDits
	if origin.Kind == StopCity {
		numCities--
	} else {
		numDits--
	}
	numHexes := a.NumHexes + b.NumHexes - 1

	// 3. Enforce the active limit on the combined run.
	switch crit.Limit.Kind() {
	case LimitKindCities:
		if numCities > crit.Limit.Count() {
			return Path{}, false
		}
	case LimitKindCitiesAndTowns:
		if numVisits > crit.Limit.Count() {
			return Path{}, false
		}
	case LimitKindHexes:
		if numHexes > crit.Limit.Count() {
			return Path{}, false
		}
	case LimitNone:
	}

	// 4. Concatenate: the first half reversed (run ends to origin), then the
	//    second half with the duplicated origin dropped.
	steps := make([]Step, 0, len(a.Steps)+len(b.Steps)-1)
	for i := len(a.Steps) - 1; i >= 0; i-- {
		steps = append(steps, a.Steps[i])
	}
	steps = append(steps, b.Steps[1:]...)

	visits := make([]Visit, 0, numVisits)
	for i := len(a.Visits) - 1; i >= 0; i-- {
		visits = append(visits, a.Visits[i])
	}
	visits = append(visits, b.Visits[1:]...)

	return Path{
		Steps:          steps,
		Visits:         visits,
		Conflicts:      a.Conflicts.union(b.Conflicts),
		RouteConflicts: a.RouteConflicts.union(b.RouteConflicts),
		NumVisits:      numVisits,
		NumCities:      numCities,
		NumDits:        numDits,
		NumHexes:       numHexes,
		Revenue:        a.Revenue + b.Revenue - origin.Revenue,
	}, true
}

// PathsThrough enumerates the single-ended paths of the query plus every
// legal through-route passing the origin, in one slice.
func PathsThrough(m *hexmap.Map, q Query) ([]Path, error) {
	singles, err := PathsFrom(m, q)
	if err != nil {
		return nil, err
	}

	return append(singles, combineAll(q.Criteria, singles)...), nil
}

// PathsForToken locates every city where the criteria's token sits, runs
// PathsThrough from each, and concatenates the results. A token with no
// placements, or placements with no track, yields an empty slice and no
// error.
func PathsForToken(m *hexmap.Map, crit Criteria) ([]Path, error) {
	if m == nil {
		return nil, ErrNilMap
	}
	if err := crit.validate(); err != nil {
		return nil, err
	}

	// A token may hold several spaces of one city; query each city once.
	type origin struct {
		addr hexmap.HexAddress
		city int
	}
	seen := make(map[origin]bool)

	var out []Path
	for _, placed := range m.FindPlacedTokens(crit.Token) {
		o := origin{addr: placed.Addr, city: placed.Space.City}
		if seen[o] {
			continue
		}
		seen[o] = true

		paths, err := PathsThrough(m, Query{
			Addr:     placed.Addr,
			From:     tile.CityConn(o.city),
			Criteria: crit,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, paths...)
	}

	return out, nil
}
