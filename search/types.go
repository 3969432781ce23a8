// types.go: criteria, path limits, conflict rules, and the sentinel errors of
// route enumeration.

package search

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/railhex/hexmap"
	"github.com/katalvlaran/railhex/tile"
)

// Sentinel errors for search operations.
var (
	// ErrNilMap indicates a nil map was passed to a search entry point.
	ErrNilMap = errors.New("search: map is nil")

	// ErrQueryStart indicates the query's starting connection is not a city
	// or dit on the addressed tile. This is an API-contract violation and is
	// reported before any traversal work.
	ErrQueryStart = errors.New("search: query must start at a city or dit")

	// ErrNoTile indicates the query addresses an empty hex.
	ErrNoTile = errors.New("search: no tile at query address")

	// ErrRuleMismatch indicates the cross-route conflict rule is stricter
	// than the within-route rule, which would let two combinable halves
	// double-claim a resource. Checked eagerly, never silently degraded.
	ErrRuleMismatch = errors.New("search: route conflict rule stricter than path conflict rule")

	// ErrLimitCount indicates a path limit with a count below one.
	ErrLimitCount = errors.New("search: path limit count must be at least 1")
)

// LimitKind tags the variants of PathLimit. The set is closed.
type LimitKind int

const (
	// LimitNone places no bound on path length.
	LimitNone LimitKind = iota
	// LimitKindCities bounds the number of city stops; dits are free.
	LimitKindCities
	// LimitKindCitiesAndTowns bounds cities and dits together.
	LimitKindCitiesAndTowns
	// LimitKindHexes bounds the number of hexes entered.
	LimitKindHexes
)

// PathLimit bounds how far a single path may run. The starting stop counts
// toward the bound; the starting hex counts as the first hex entered.
type PathLimit struct {
	kind  LimitKind
	count int
}

// Unlimited returns the distinguished no-limit policy.
func Unlimited() PathLimit {
	return PathLimit{kind: LimitNone}
}

// Cities returns a limit of n city stops (dits do not count).
func Cities(n int) PathLimit {
	return PathLimit{kind: LimitKindCities, count: n}
}

// CitiesAndTowns returns a limit of n stops of either kind.
func CitiesAndTowns(n int) PathLimit {
	return PathLimit{kind: LimitKindCitiesAndTowns, count: n}
}

// Hexes returns a limit of n hexes entered along the path.
func Hexes(n int) PathLimit {
	return PathLimit{kind: LimitKindHexes, count: n}
}

// Kind returns the limit variant.
func (l PathLimit) Kind() LimitKind { return l.kind }

// Count returns the bound; meaningless for LimitNone.
func (l PathLimit) Count() int { return l.count }

// String renders the limit for diagnostics.
func (l PathLimit) String() string {
	switch l.kind {
	case LimitNone:
		return "unlimited"
	case LimitKindCities:
		return fmt.Sprintf("cities(%d)", l.count)
	case LimitKindCitiesAndTowns:
		return fmt.Sprintf("citiesAndTowns(%d)", l.count)
	case LimitKindHexes:
		return fmt.Sprintf("hexes(%d)", l.count)
	}

	return fmt.Sprintf("limit(kind=%d)", int(l.kind))
}

// validate rejects counts below one for bounded kinds.
func (l PathLimit) validate() error {
	if l.kind != LimitNone && l.count < 1 {
		return fmt.Errorf("%s: %w", l, ErrLimitCount)
	}

	return nil
}

// ConflictRule selects the granularity at which a visited connection claims
// an exclusive resource. The set is closed; RuleTrackOrCity is strictly finer
// than RuleHex.
type ConflictRule int

const (
	// RuleTrackOrCity claims the exact track segment, dit, or city visited
	// on a hex. Bare face crossings claim nothing.
	RuleTrackOrCity ConflictRule = iota
	// RuleHex claims the whole hex for any connection visited on it,
	// face crossings included.
	RuleHex
)

// coarseness ranks rules from coarse (high) to fine (low).
func (r ConflictRule) coarseness() int {
	if r == RuleHex {
		return 1
	}

	return 0
}

// String renders the rule name.
func (r ConflictRule) String() string {
	if r == RuleHex {
		return "hex"
	}

	return "trackOrCity"
}

// Criteria configures one search: whose token drives it, how long paths may
// run, and at which granularity resources are claimed within one path
// (PathRule) and across the two halves of a through-route (RouteRule).
// RouteRule must be no stricter than PathRule.
type Criteria struct {
	Token     hexmap.Token
	Limit     PathLimit
	PathRule  ConflictRule
	RouteRule ConflictRule
}

// DefaultCriteria returns criteria for tok with no path limit, track/city
// granularity within a path, and hex granularity across route halves.
func DefaultCriteria(tok hexmap.Token) Criteria {
	return Criteria{
		Token:     tok,
		Limit:     Unlimited(),
		PathRule:  RuleTrackOrCity,
		RouteRule: RuleHex,
	}
}

// validate enforces the limit-count and rule-coarsening invariants.
func (c Criteria) validate() error {
	if err := c.Limit.validate(); err != nil {
		return err
	}
	if c.RouteRule.coarseness() < c.PathRule.coarseness() {
		return fmt.Errorf("path=%s route=%s: %w", c.PathRule, c.RouteRule, ErrRuleMismatch)
	}

	return nil
}

// Query asks for every path starting at one city or dit of one hex.
type Query struct {
	// Addr is the hex holding the starting stop.
	Addr hexmap.HexAddress

	// From is the starting connection; it must be a city or dit.
	From tile.Connection

	// Criteria configures the traversal.
	Criteria Criteria
}
