// Package search implements conflict-aware depth-first route enumeration for
// hex-rail maps: given a starting city or dit and search criteria, it finds
// every legal single-ended path, and joins pairs of them into through-routes.
//
// Key features:
//   - PathsFrom(m, q): all single-ended paths from one stop
//   - PathsThrough(m, q): single-ended paths plus pairwise through-routes
//   - PathsForToken(m, crit): drives PathsThrough from every placement of a token
//   - Path limits: Cities(n), CitiesAndTowns(n), Hexes(n), Unlimited()
//   - Conflict rules: RuleTrackOrCity (within a path) and RuleHex (across
//     route halves); the cross-route rule must be no stricter than the
//     within-route rule
//
// Traversal semantics:
//   - A path never visits two equivalent connections on one hex; this also
//     breaks cycles, so unlimited searches terminate on any finite map.
//   - Crossing a hex border records both sides of the edge in the trail, so
//     two runs sharing only a border still conflict under RuleHex.
//   - Every city or dit reached emits one independent Path snapshot; results
//     always join at least two stops.
//   - Runs never continue past tiles of a terminal colour, nor past a city
//     whose token spaces are all filled by other companies.
//   - When the querying token sits in several cities, a run between two of
//     them is enumerated only from the canonically smaller (address, city)
//     start; PathsForToken recovers the joined run via through-routes.
//
// Concurrency: a search mutates only its own context; distinct searches over
// the same Map may run concurrently as long as nothing mutates the map.
//
// Errors:
//
//   - ErrNilMap        if the map is nil.
//   - ErrNoTile        if the query addresses an empty hex.
//   - ErrQueryStart    if the starting connection is not a city or dit.
//   - ErrRuleMismatch  if the route rule is stricter than the path rule.
//   - ErrLimitCount    if a bounded limit has a count below one.
//
// Complexity: exponential in the worst case (path enumeration), bounded in
// practice by the path limit and by tile fan-out; combination is O(n²) over
// the single-ended paths of one origin.
package search
