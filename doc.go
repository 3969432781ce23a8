// Package railhex is an in-memory route-search engine for rail-network board
// games played on hexagonal tiles: place tiles, drop company tokens, and
// enumerate every legal run with its revenue.
//
// 🚂 What is railhex?
//
//	A pure-Go library that brings together:
//		• Tile model: track segments, cities, dits, token spaces, colours
//		• Connectivity: per-tile O(1) adjacency, built once at tile load
//		• Hex map: odd-q flat-top grid, tile rotation, cross-hex face resolution
//		• Search: conflict-aware depth-first enumeration of all legal paths
//		• Through-routes: pairwise combination of single-ended paths
//
// ✨ Why choose railhex?
//
//   - Deterministic – stable connection and result ordering, test-friendly
//   - Rock-solid guarantees – sentinel errors, eager precondition checks
//   - Pure Go – no cgo, no hidden deps
//   - Tolerant – malformed tile geometry loads best-effort with diagnostics
//
// Under the hood, everything is organized under four subpackages:
//
//	tile/     : Connection sum type, segments, cities, dits, connectivity graph
//	hexmap/   : HexAddress, placed tiles, tokens, AdjacentFace resolution
//	search/   : criteria, conflict rules, path limits, PathsFrom/Through/ForToken
//	catalogue/: deterministic reference tiles for fixtures and quick starts
//
// A run is a sequence of stops joined by track: cities (tokenable, e.g. 20
// revenue), dits (small towns, e.g. 10), and red off-board areas where every
// run ends. Paths never reuse a track segment, and two halves of a
// through-route never share more than their common origin.
//
// Rendering, persistence, and train-assignment optimization live outside this
// module; railhex owns only the map model and the route search.
//
//	go get github.com/katalvlaran/railhex
package railhex
