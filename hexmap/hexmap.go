// Package hexmap places tiles on a flat-top hexagonal grid and resolves
// cross-hex adjacency: given a hex address and a tile-relative face, which
// neighbouring hex is on the other side of that edge, and which face of the
// neighbour's own tile now touches it.
//
// The grid uses odd-q offset coordinates: columns alternate a half-hex
// vertical offset by column parity, odd columns shifted toward higher rows.
// A Map is mutable while being set up (PlaceTile, PlaceToken) and is treated
// as read-only by searches; it performs no locking of its own.
package hexmap

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/railhex/tile"
)

// hexState is the per-hex placement record.
type hexState struct {
	tile     *tile.Tile
	rotation int
	tokens   map[TokenSpace]Token
}

// Map is a sparse grid of placed tiles keyed by HexAddress.
type Map struct {
	hexes map[HexAddress]*hexState
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{hexes: make(map[HexAddress]*hexState)}
}

// PlaceTile places t at addr with the given clockwise rotation in sixth-turns.
// Placing over an occupied hex replaces the tile and clears its tokens
// (editor semantics). Returns ErrNilTile or ErrRotationRange on bad input.
func (m *Map) PlaceTile(addr HexAddress, t *tile.Tile, rotation int) error {
	if t == nil {
		return fmt.Errorf("hexmap: place at %s: %w", addr, ErrNilTile)
	}
	if rotation < 0 || rotation >= tile.NumFaces {
		return fmt.Errorf("hexmap: place at %s: rotation %d: %w", addr, rotation, ErrRotationRange)
	}
	m.hexes[addr] = &hexState{tile: t, rotation: rotation, tokens: make(map[TokenSpace]Token)}

	return nil
}

// PlaceToken puts tok into the given token space of the tile at addr.
// Returns ErrNoTile for an empty hex, ErrNoSuchSpace when the tile's city has
// no such slot, and ErrSpaceOccupied when another token already sits there.
func (m *Map) PlaceToken(addr HexAddress, space TokenSpace, tok Token) error {
	h, ok := m.hexes[addr]
	if !ok {
		return fmt.Errorf("hexmap: token at %s: %w", addr, ErrNoTile)
	}
	spaces, err := h.tile.CityTokenSpaces(space.City)
	if err != nil {
		return fmt.Errorf("hexmap: token at %s: %w", addr, err)
	}
	if space.Space < 0 || space.Space >= spaces {
		return fmt.Errorf("hexmap: token at %s city %d space %d: %w", addr, space.City, space.Space, ErrNoSuchSpace)
	}
	if _, taken := h.tokens[space]; taken {
		return fmt.Errorf("hexmap: token at %s city %d space %d: %w", addr, space.City, space.Space, ErrSpaceOccupied)
	}
	h.tokens[space] = tok

	return nil
}

// TileAt returns the tile and rotation placed at addr, or ok=false for an
// empty hex.
func (m *Map) TileAt(addr HexAddress) (t *tile.Tile, rotation int, ok bool) {
	h, found := m.hexes[addr]
	if !found {
		return nil, 0, false
	}

	return h.tile, h.rotation, true
}

// Tokens returns a copy of the token placements on the hex at addr.
// An empty hex yields an empty map.
func (m *Map) Tokens(addr HexAddress) map[TokenSpace]Token {
	out := make(map[TokenSpace]Token)
	if h, ok := m.hexes[addr]; ok {
		for sp, tok := range h.tokens {
			out[sp] = tok
		}
	}

	return out
}

// FindPlacedTokens returns every location holding tok, sorted by address,
// then city, then space, so callers iterate deterministically.
func (m *Map) FindPlacedTokens(tok Token) []PlacedToken {
	var out []PlacedToken
	for addr, h := range m.hexes {
		for sp, owner := range h.tokens {
			if owner == tok {
				out = append(out, PlacedToken{Addr: addr, Space: sp})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Addr.Compare(out[j].Addr); c != 0 {
			return c < 0
		}
		if out[i].Space.City != out[j].Space.City {
			return out[i].Space.City < out[j].Space.City
		}

		return out[i].Space.Space < out[j].Space.Space
	})

	return out
}

// Neighbour is the result of a successful AdjacentFace resolution.
type Neighbour struct {
	// Addr is the neighbouring hex address.
	Addr HexAddress

	// Face is the shared edge expressed in the neighbour tile's own rotation frame.
	Face tile.Face

	// Tile is the neighbour's placed tile.
	Tile *tile.Tile
}

// AdjacentFace resolves a tile-relative face at addr into the hex on the
// other side of that edge. It rotates the face into the map frame, applies
// the odd-q grid topology, and converts the opposite edge back into the
// neighbour tile's rotation frame. ok is false when addr is empty, the
// neighbour is outside the placed map, or the neighbour hex holds no tile.
// Pure read; no state is touched.
func (m *Map) AdjacentFace(addr HexAddress, f tile.Face) (Neighbour, bool) {
	h, found := m.hexes[addr]
	if !found {
		return Neighbour{}, false
	}

	// 1. Tile-relative -> map-relative face.
	mapFace := f.Rotate(h.rotation)

	// 2. Map-relative face -> neighbour address (odd-q offset rules).
	naddr := neighbourAddress(addr, mapFace)

	// 3. Neighbour must hold a tile.
	nh, found := m.hexes[naddr]
	if !found {
		return Neighbour{}, false
	}

	// 4. Opposite map-relative edge -> neighbour tile's own frame.
	nFace := mapFace.Opposite().Rotate(-nh.rotation)

	return Neighbour{Addr: naddr, Face: nFace, Tile: nh.tile}, true
}

// neighbourAddress applies the odd-q offset deltas for a map-relative face.
// Odd columns sit half a hex lower, so the diagonal faces pick their row
// delta by column parity.
func neighbourAddress(addr HexAddress, mapFace tile.Face) HexAddress {
	odd := addr.Column&1 != 0
	diagRow := func(southward bool) int {
		// North-leaning diagonals step a row up only from even columns;
		// south-leaning diagonals step a row down only from odd columns.
		if southward {
			if odd {
				return addr.Row + 1
			}

			return addr.Row
		}
		if odd {
			return addr.Row
		}

		return addr.Row - 1
	}

	switch mapFace {
	case tile.FaceN:
		return HexAddress{Column: addr.Column, Row: addr.Row - 1}
	case tile.FaceS:
		return HexAddress{Column: addr.Column, Row: addr.Row + 1}
	case tile.FaceNE:
		return HexAddress{Column: addr.Column + 1, Row: diagRow(false)}
	case tile.FaceSE:
		return HexAddress{Column: addr.Column + 1, Row: diagRow(true)}
	case tile.FaceSW:
		return HexAddress{Column: addr.Column - 1, Row: diagRow(true)}
	case tile.FaceNW:
		return HexAddress{Column: addr.Column - 1, Row: diagRow(false)}
	}

	return addr
}
