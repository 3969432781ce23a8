package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/railhex/catalogue"
	"github.com/katalvlaran/railhex/hexmap"
	"github.com/katalvlaran/railhex/search"
	"github.com/katalvlaran/railhex/tile"
)

// Fixture addresses: a 2×2 odd-q block. The "LP" company sits in the sharp
// city, "PO" in the brown six-way city.
//
//	(0,0) tile 5  rot 2: city 20, LP, exits SE,S
//	(1,0) tile 58 rot 3: town 10, exits S,SW,NW
//	(0,1) tile 6  rot 1: city 20, exits N,NE
//	(1,1) tile 63 rot 0: city 40, PO, exits all
//
// Track joins: city5↔city6, city5↔town, city6↔town, town↔city63. The brown
// city's remaining faces dead-end against trackless edges or the map rim.
var (
	hexCity5  = hexmap.HexAddress{Column: 0, Row: 0}
	hexTown   = hexmap.HexAddress{Column: 1, Row: 0}
	hexCity6  = hexmap.HexAddress{Column: 0, Row: 1}
	hexCity63 = hexmap.HexAddress{Column: 1, Row: 1}
)

// fixtureMap builds the reference 2×2 map with both tokens placed.
func fixtureMap(t *testing.T) *hexmap.Map {
	t.Helper()
	m := hexmap.NewMap()
	place := func(addr hexmap.HexAddress, name string, rot int) {
		tl, err := catalogue.Tile(name)
		require.NoError(t, err)
		require.NoError(t, m.PlaceTile(addr, tl, rot))
	}
	place(hexCity5, "5", 2)
	place(hexTown, "58", 3)
	place(hexCity6, "6", 1)
	place(hexCity63, "63", 0)
	require.NoError(t, m.PlaceToken(hexCity5, hexmap.TokenSpace{}, "LP"))
	require.NoError(t, m.PlaceToken(hexCity63, hexmap.TokenSpace{}, "PO"))

	return m
}

// lpQuery starts at the LP city with the given limit.
func lpQuery(limit search.PathLimit) search.Query {
	crit := search.DefaultCriteria("LP")
	crit.Limit = limit

	return search.Query{Addr: hexCity5, From: tile.CityConn(0), Criteria: crit}
}

// maxRevenue returns the best revenue among paths, 0 for none.
func maxRevenue(paths []search.Path) int {
	best := 0
	for _, p := range paths {
		if p.Revenue > best {
			best = p.Revenue
		}
	}

	return best
}

//----------------------------------------------------------------------------//
// Reference fixture: the revenue ladder
//----------------------------------------------------------------------------//

// TestFixture_RevenueLadder pins the maximum revenue for each stop limit, and
// requires the single-ended and through enumerations to agree at every rung.
func TestFixture_RevenueLadder(t *testing.T) {
	m := fixtureMap(t)
	cases := []struct {
		name  string
		limit search.PathLimit
		want  int
	}{
		{"TwoStops", search.CitiesAndTowns(2), 40},
		{"ThreeStops", search.CitiesAndTowns(3), 70},
		{"FourStops", search.CitiesAndTowns(4), 90},
		{"Unlimited", search.Unlimited(), 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := lpQuery(tc.limit)

			from, err := search.PathsFrom(m, q)
			require.NoError(t, err)
			assert.Equal(t, tc.want, maxRevenue(from), "PathsFrom")

			through, err := search.PathsThrough(m, q)
			require.NoError(t, err)
			assert.Equal(t, tc.want, maxRevenue(through), "PathsThrough")
		})
	}
}

// TestFixture_HexLimit pins the ladder for the hex-count policy.
func TestFixture_HexLimit(t *testing.T) {
	m := fixtureMap(t)
	cases := []struct {
		hexes, want int
	}{
		{2, 40},
		{3, 70},
		{4, 90},
	}
	for _, tc := range cases {
		paths, err := search.PathsFrom(m, lpQuery(search.Hexes(tc.hexes)))
		require.NoError(t, err)
		assert.Equal(t, tc.want, maxRevenue(paths), "hexes=%d", tc.hexes)
	}
}

// TestFixture_CityLimit: dits ride free under the Cities policy.
func TestFixture_CityLimit(t *testing.T) {
	m := fixtureMap(t)

	paths, err := search.PathsFrom(m, lpQuery(search.Cities(2)))
	require.NoError(t, err)
	// Two cities plus the free town: 20 + 10 + 40.
	assert.Equal(t, 70, maxRevenue(paths))

	paths, err = search.PathsFrom(m, lpQuery(search.Cities(3)))
	require.NoError(t, err)
	assert.Equal(t, 90, maxRevenue(paths))
}

// TestFixture_Monotonicity: relaxing a limit never loses paths or revenue.
func TestFixture_Monotonicity(t *testing.T) {
	m := fixtureMap(t)
	prevPaths, prevBest := 0, 0
	for n := 2; n <= 5; n++ {
		paths, err := search.PathsFrom(m, lpQuery(search.CitiesAndTowns(n)))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(paths), prevPaths, "path count at limit %d", n)
		assert.GreaterOrEqual(t, maxRevenue(paths), prevBest, "revenue at limit %d", n)
		prevPaths, prevBest = len(paths), maxRevenue(paths)
	}
}

// TestFixture_DitStart: searches may start at a town.
func TestFixture_DitStart(t *testing.T) {
	m := fixtureMap(t)
	crit := search.DefaultCriteria("LP")
	paths, err := search.PathsFrom(m, search.Query{Addr: hexTown, From: tile.DitConn(0), Criteria: crit})
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	// The best run from the town reaches two stops: 10 + 40.
	assert.Equal(t, 50, maxRevenue(paths))
	for _, p := range paths {
		assert.Equal(t, search.StopDit, p.Visits[0].Kind)
	}
}

//----------------------------------------------------------------------------//
// Path invariants
//----------------------------------------------------------------------------//

// TestPathInvariants checks revenue additivity, count consistency, and the
// no-self-overlap property on every fixture result.
func TestPathInvariants(t *testing.T) {
	m := fixtureMap(t)
	paths, err := search.PathsThrough(m, lpQuery(search.Unlimited()))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, p := range paths {
		sum := 0
		for _, v := range p.Visits {
			sum += v.Revenue
		}
		assert.Equal(t, sum, p.Revenue, "revenue additivity: %s", p)

		assert.Equal(t, len(p.Visits), p.NumVisits, "visit count: %s", p)
		assert.Equal(t, p.NumVisits, p.NumCities+p.NumDits, "count split: %s", p)
		assert.GreaterOrEqual(t, p.NumVisits, 2, "paths join at least two stops")

		for i := 0; i < len(p.Steps); i++ {
			for j := i + 1; j < len(p.Steps); j++ {
				a, b := p.Steps[i], p.Steps[j]
				if a.Addr == b.Addr && a.Conn.Equivalent(b.Conn) {
					t.Errorf("self-overlap in %s: steps %d and %d both use %s at %s", p, i, j, a.Conn, a.Addr)
				}
			}
		}
	}
}

//----------------------------------------------------------------------------//
// Continuation rules
//----------------------------------------------------------------------------//

// blockMap is a three-stop chain whose middle city has one token space:
// LP city, then the middle city, then a far city.
func blockMap(t *testing.T, middleToken hexmap.Token) *hexmap.Map {
	t.Helper()
	m := hexmap.NewMap()
	start, err := catalogue.StraightCity()
	require.NoError(t, err)
	middle, err := catalogue.SharpCity()
	require.NoError(t, err)
	far, err := catalogue.StraightCity()
	require.NoError(t, err)

	origin := hexmap.HexAddress{Column: 0, Row: 0}
	mid := hexmap.HexAddress{Column: 0, Row: 1}
	end := hexmap.HexAddress{Column: 1, Row: 0}

	// Origin's S exit meets mid's N; mid's NE exit meets end's SW.
	require.NoError(t, m.PlaceTile(origin, start, 0))
	require.NoError(t, m.PlaceTile(mid, middle, 0))
	require.NoError(t, m.PlaceTile(end, far, 1))
	require.NoError(t, m.PlaceToken(origin, hexmap.TokenSpace{}, "LP"))
	if middleToken != "" {
		require.NoError(t, m.PlaceToken(mid, hexmap.TokenSpace{}, middleToken))
	}

	return m
}

// TestContinuation_BlockedCity: a city whose only space belongs to another
// company still counts as a stop but ends the run.
func TestContinuation_BlockedCity(t *testing.T) {
	m := blockMap(t, "PO")
	q := search.Query{
		Addr:     hexmap.HexAddress{},
		From:     tile.CityConn(0),
		Criteria: search.DefaultCriteria("LP"),
	}
	paths, err := search.PathsFrom(m, q)
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	assert.Equal(t, 40, maxRevenue(paths), "the run ends at the blocked city")
	for _, p := range paths {
		assert.LessOrEqual(t, p.NumVisits, 2)
	}
}

// TestContinuation_OpenCity: the same chain with a free space runs through.
func TestContinuation_OpenCity(t *testing.T) {
	m := blockMap(t, "")
	q := search.Query{
		Addr:     hexmap.HexAddress{},
		From:     tile.CityConn(0),
		Criteria: search.DefaultCriteria("LP"),
	}
	paths, err := search.PathsFrom(m, q)
	require.NoError(t, err)
	assert.Equal(t, 60, maxRevenue(paths))
}

// TestContinuation_OwnToken: the querying company's own token never blocks.
func TestContinuation_OwnToken(t *testing.T) {
	m := blockMap(t, "LP")
	q := search.Query{
		Addr:     hexmap.HexAddress{},
		From:     tile.CityConn(0),
		Criteria: search.DefaultCriteria("LP"),
	}
	paths, err := search.PathsFrom(m, q)
	require.NoError(t, err)
	assert.Equal(t, 60, maxRevenue(paths))
}

// TestContinuation_Terminal: runs never continue past a red off-board area.
func TestContinuation_Terminal(t *testing.T) {
	m := hexmap.NewMap()
	start, err := catalogue.StraightCity()
	require.NoError(t, err)
	offboard, err := catalogue.OffboardHigh()
	require.NoError(t, err)
	beyond, err := catalogue.StraightCity()
	require.NoError(t, err)

	origin := hexmap.HexAddress{Column: 0, Row: 0}
	require.NoError(t, m.PlaceTile(origin, start, 0))
	require.NoError(t, m.PlaceTile(hexmap.HexAddress{Column: 0, Row: 1}, offboard, 0))
	require.NoError(t, m.PlaceTile(hexmap.HexAddress{Column: 0, Row: 2}, beyond, 0))
	require.NoError(t, m.PlaceToken(origin, hexmap.TokenSpace{}, "LP"))

	paths, err := search.PathsFrom(m, search.Query{
		Addr:     origin,
		From:     tile.CityConn(0),
		Criteria: search.DefaultCriteria("LP"),
	})
	require.NoError(t, err)
	assert.Equal(t, 50, maxRevenue(paths), "20 + 30, never beyond the red area")
	for _, p := range paths {
		assert.LessOrEqual(t, p.NumVisits, 2)
	}
}

//----------------------------------------------------------------------------//
// Symmetric-start deduplication
//----------------------------------------------------------------------------//

// TestSymmetryDedup: a token in two mutually reachable cities yields the run
// between them exactly once across all placements.
func TestSymmetryDedup(t *testing.T) {
	m := hexmap.NewMap()
	for row := 0; row < 2; row++ {
		tl, err := catalogue.StraightCity()
		require.NoError(t, err)
		addr := hexmap.HexAddress{Column: 0, Row: row}
		require.NoError(t, m.PlaceTile(addr, tl, 0))
		require.NoError(t, m.PlaceToken(addr, hexmap.TokenSpace{}, "LP"))
	}

	paths, err := search.PathsForToken(m, search.DefaultCriteria("LP"))
	require.NoError(t, err)
	require.Len(t, paths, 1, "one run between the two home cities, not one per direction")
	assert.Equal(t, 40, paths[0].Revenue)
}

//----------------------------------------------------------------------------//
// PathsForToken
//----------------------------------------------------------------------------//

func TestPathsForToken_Fixture(t *testing.T) {
	m := fixtureMap(t)
	crit := search.DefaultCriteria("LP")
	crit.Limit = search.CitiesAndTowns(4)

	paths, err := search.PathsForToken(m, crit)
	require.NoError(t, err)
	assert.Equal(t, 90, maxRevenue(paths))
}

// TestPathsForToken_NoPlacements: an unplaced token is an empty answer.
func TestPathsForToken_NoPlacements(t *testing.T) {
	m := fixtureMap(t)
	paths, err := search.PathsForToken(m, search.DefaultCriteria("GN"))
	require.NoError(t, err)
	assert.Empty(t, paths)
}

//----------------------------------------------------------------------------//
// API-contract violations
//----------------------------------------------------------------------------//

func TestQueryValidation(t *testing.T) {
	m := fixtureMap(t)
	crit := search.DefaultCriteria("LP")

	_, err := search.PathsFrom(nil, lpQuery(search.Unlimited()))
	assert.ErrorIs(t, err, search.ErrNilMap)

	_, err = search.PathsFrom(m, search.Query{
		Addr: hexmap.HexAddress{Column: 9, Row: 9}, From: tile.CityConn(0), Criteria: crit,
	})
	assert.ErrorIs(t, err, search.ErrNoTile)

	for _, from := range []tile.Connection{
		tile.FaceConn(tile.FaceN),
		tile.TrackConn(0, tile.EndA),
		tile.CityConn(7),
		tile.DitConn(0), // tile 5 has no dits
	} {
		_, err = search.PathsFrom(m, search.Query{Addr: hexCity5, From: from, Criteria: crit})
		assert.ErrorIs(t, err, search.ErrQueryStart, "from=%s", from)
	}

	bad := crit
	bad.Limit = search.Cities(0)
	_, err = search.PathsFrom(m, search.Query{Addr: hexCity5, From: tile.CityConn(0), Criteria: bad})
	assert.ErrorIs(t, err, search.ErrLimitCount)

	strict := crit
	strict.PathRule = search.RuleHex
	strict.RouteRule = search.RuleTrackOrCity
	_, err = search.PathsFrom(m, search.Query{Addr: hexCity5, From: tile.CityConn(0), Criteria: strict})
	assert.ErrorIs(t, err, search.ErrRuleMismatch)
}
