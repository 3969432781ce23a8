// SPDX-License-Identifier: MIT
// Package: railhex/catalogue
//
// catalogue.go: the reference tile set.
//
// Canonical model:
//   • Deterministic constructors only: the same name always yields the same
//     geometry, so connectivity assertions in tests stay stable.
//   • Plain track ("7", "8", "9") is a single segment between face midpoints.
//   • Cities sit on the tile centre; their exits are face-to-centre segments
//     whose inner ends fall inside the city footprint.
//   • The town ("58") is three face-to-centre segments meeting at a central
//     dit; the branches connect through the dit, never directly.
//   • Off-board tiles ("R10", "R30") are red: runs end there.
//
// Contract:
//   • Tile(name) returns ErrUnknownTile for names outside the set.
//   • Every catalogue tile builds with zero diagnostics (asserted in tests).
package catalogue

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/railhex/tile"
)

// ErrUnknownTile indicates a requested tile name outside the catalogue.
var ErrUnknownTile = errors.New("catalogue: unknown tile name")

// File-local constants: revenues and token-space counts (no magic literals).
const (
	cityRevenueYellow = 20
	cityRevenueBrown  = 40
	townRevenue       = 10
	offboardLow       = 10
	offboardHigh      = 30

	singleSpace = 1
	doubleSpace = 2
	noSpaces    = 0
)

// Sharp returns tile "7": plain yellow track joining faces N and NE.
func Sharp() (*tile.Tile, error) {
	return tile.NewTile("7", tile.Yellow,
		[]tile.Segment{tile.FaceToFace(tile.FaceN, tile.FaceNE)}, nil)
}

// Gentle returns tile "8": plain yellow track joining faces N and SE.
func Gentle() (*tile.Tile, error) {
	return tile.NewTile("8", tile.Yellow,
		[]tile.Segment{tile.FaceToFace(tile.FaceN, tile.FaceSE)}, nil)
}

// Straight returns tile "9": plain yellow track joining faces N and S.
func Straight() (*tile.Tile, error) {
	return tile.NewTile("9", tile.Yellow,
		[]tile.Segment{tile.FaceToFace(tile.FaceN, tile.FaceS)}, nil)
}

// SharpCity returns tile "5": a yellow 20-revenue city with one token space
// and exits on faces N and NE.
func SharpCity() (*tile.Tile, error) {
	return tile.NewTile("5", tile.Yellow,
		[]tile.Segment{
			tile.FaceToCentre(tile.FaceN),
			tile.FaceToCentre(tile.FaceNE),
		},
		[]tile.City{tile.CentralCity(cityRevenueYellow, singleSpace)})
}

// SharpCityCCW returns tile "6": the counter-clockwise twin of "5", a yellow
// 20-revenue city with one token space and exits on faces NW and N.
func SharpCityCCW() (*tile.Tile, error) {
	return tile.NewTile("6", tile.Yellow,
		[]tile.Segment{
			tile.FaceToCentre(tile.FaceNW),
			tile.FaceToCentre(tile.FaceN),
		},
		[]tile.City{tile.CentralCity(cityRevenueYellow, singleSpace)})
}

// StraightCity returns tile "57": a yellow 20-revenue city with one token
// space and exits on faces N and S.
func StraightCity() (*tile.Tile, error) {
	return tile.NewTile("57", tile.Yellow,
		[]tile.Segment{
			tile.FaceToCentre(tile.FaceN),
			tile.FaceToCentre(tile.FaceS),
		},
		[]tile.City{tile.CentralCity(cityRevenueYellow, singleSpace)})
}

// ThreeWayTown returns tile "58": a yellow 10-revenue town joining faces N,
// NE, and SE through a central dit.
func ThreeWayTown() (*tile.Tile, error) {
	return tile.NewTile("58", tile.Yellow,
		[]tile.Segment{
			tile.FaceToCentre(tile.FaceN).WithDit(tile.EndB, townRevenue),
			tile.FaceToCentre(tile.FaceNE),
			tile.FaceToCentre(tile.FaceSE),
		}, nil)
}

// SixWayCity returns tile "63": a brown 40-revenue city with two token
// spaces and exits on all six faces.
func SixWayCity() (*tile.Tile, error) {
	segments := make([]tile.Segment, 0, tile.NumFaces)
	for f := tile.Face(0); f < tile.NumFaces; f++ {
		segments = append(segments, tile.FaceToCentre(f))
	}

	return tile.NewTile("63", tile.Brown, segments,
		[]tile.City{tile.CentralCity(cityRevenueBrown, doubleSpace)})
}

// OffboardLow returns tile "R10": a red off-board area worth 10 with a single
// entry on face N. Runs end here.
func OffboardLow() (*tile.Tile, error) {
	return tile.NewTile("R10", tile.Red,
		[]tile.Segment{tile.FaceToCentre(tile.FaceN)},
		[]tile.City{tile.CentralCity(offboardLow, noSpaces)})
}

// OffboardHigh returns tile "R30": a red off-board area worth 30 spanning
// faces N and S. Track passes its city geometrically, but runs end here.
func OffboardHigh() (*tile.Tile, error) {
	return tile.NewTile("R30", tile.Red,
		[]tile.Segment{
			tile.FaceToCentre(tile.FaceN),
			tile.FaceToCentre(tile.FaceS),
		},
		[]tile.City{tile.CentralCity(offboardHigh, noSpaces)})
}

// constructors maps catalogue names onto their builders, in name order.
var constructors = map[string]func() (*tile.Tile, error){
	"5":   SharpCity,
	"6":   SharpCityCCW,
	"7":   Sharp,
	"8":   Gentle,
	"9":   Straight,
	"57":  StraightCity,
	"58":  ThreeWayTown,
	"63":  SixWayCity,
	"R10": OffboardLow,
	"R30": OffboardHigh,
}

// Tile builds the named catalogue tile. Returns ErrUnknownTile for names
// outside the set.
func Tile(name string) (*tile.Tile, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownTile)
	}

	return ctor()
}

// Names returns the catalogue tile names. The slice is freshly allocated.
func Names() []string {
	return []string{"5", "6", "7", "8", "9", "57", "58", "63", "R10", "R30"}
}
