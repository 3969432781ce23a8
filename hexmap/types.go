// types.go: addresses, tokens, and the sentinel errors of map operations.

package hexmap

import (
	"errors"
	"fmt"
)

// Sentinel errors for map operations.
var (
	// ErrNilTile indicates PlaceTile was given a nil tile.
	ErrNilTile = errors.New("hexmap: tile is nil")

	// ErrRotationRange indicates a tile rotation outside 0..5 sixth-turns.
	ErrRotationRange = errors.New("hexmap: rotation must be in 0..5")

	// ErrNoTile indicates the addressed hex holds no tile.
	ErrNoTile = errors.New("hexmap: no tile at address")

	// ErrNoSuchSpace indicates a token space that the addressed city does not have.
	ErrNoSuchSpace = errors.New("hexmap: token space out of range")

	// ErrSpaceOccupied indicates a token space already holding a token.
	ErrSpaceOccupied = errors.New("hexmap: token space already occupied")
)

// HexAddress is a grid coordinate in odd-q offset form: flat-top hexes,
// columns run west to east, rows run north to south, odd columns shifted
// south by half a hex.
type HexAddress struct {
	Column, Row int
}

// Compare imposes the total order used everywhere an address tie-break is
// needed: column first, then row, both ascending. Returns -1, 0, or +1.
func (a HexAddress) Compare(b HexAddress) int {
	switch {
	case a.Column != b.Column && a.Column < b.Column:
		return -1
	case a.Column != b.Column:
		return 1
	case a.Row < b.Row:
		return -1
	case a.Row > b.Row:
		return 1
	}

	return 0
}

// Less reports whether a sorts before b under Compare.
func (a HexAddress) Less(b HexAddress) bool {
	return a.Compare(b) < 0
}

// String formats the address as "column,row".
func (a HexAddress) String() string {
	return fmt.Sprintf("%d,%d", a.Column, a.Row)
}

// Token identifies the company that owns a placed marker.
type Token string

// TokenSpace addresses one slot of one city on a tile.
type TokenSpace struct {
	// City is the city index on the tile.
	City int

	// Space is the slot index within the city, 0-based.
	Space int
}

// PlacedToken is one location where a token sits on the map.
type PlacedToken struct {
	Addr  HexAddress
	Space TokenSpace
}
