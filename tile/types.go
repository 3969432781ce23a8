// types.go: faces, track segments, cities, dits (towns), the Connection
// tagged union, and the sentinel errors of tile construction.

package tile

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for tile operations.
var (
	// ErrEmptyTile indicates a tile was built with no track segments and no cities.
	ErrEmptyTile = errors.New("tile: tile must have at least one segment or city")

	// ErrCityTokenSpaces indicates a city was declared with a negative token-space count.
	ErrCityTokenSpaces = errors.New("tile: city token-space count must be non-negative")

	// ErrCityFootprint indicates a city was declared with a non-positive footprint radius.
	ErrCityFootprint = errors.New("tile: city footprint radius must be positive")

	// ErrNotTrack indicates OtherEnd was called on a non-track connection.
	ErrNotTrack = errors.New("tile: connection is not a track end")

	// ErrCityIndex indicates a requested city index is out of range.
	ErrCityIndex = errors.New("tile: city index out of range")
)

// NumFaces is the number of edges of a hexagonal tile.
const NumFaces = 6

// Face identifies one of the six edges of a flat-top hexagonal tile,
// numbered clockwise from north.
type Face int

const (
	FaceN  Face = iota // FaceN is the northern (top) edge.
	FaceNE             // FaceNE is the north-eastern edge.
	FaceSE             // FaceSE is the south-eastern edge.
	FaceS              // FaceS is the southern (bottom) edge.
	FaceSW             // FaceSW is the south-western edge.
	FaceNW             // FaceNW is the north-western edge.
)

// faceNames holds the printable face labels in index order.
var faceNames = [NumFaces]string{"N", "NE", "SE", "S", "SW", "NW"}

// Opposite returns the face sharing the same edge from the neighbouring hex.
func (f Face) Opposite() Face {
	return f.Rotate(NumFaces / 2)
}

// Rotate returns the face reached by rotating f clockwise by the given number
// of sixth-turns. Negative turns rotate counter-clockwise.
func (f Face) Rotate(turns int) Face {
	return Face(((int(f)+turns)%NumFaces + NumFaces) % NumFaces)
}

// String returns the compass label of the face ("N", "NE", ...).
func (f Face) String() string {
	if f < 0 || f >= NumFaces {
		return fmt.Sprintf("Face(%d)", int(f))
	}

	return faceNames[f]
}

// SegmentEnd selects one of the two physical ends of a track segment.
type SegmentEnd int

const (
	// EndA is the first end of a segment (Segment.A).
	EndA SegmentEnd = iota
	// EndB is the second end of a segment (Segment.B).
	EndB
)

// Flip returns the opposite segment end.
func (e SegmentEnd) Flip() SegmentEnd {
	if e == EndA {
		return EndB
	}

	return EndA
}

// String returns "A" or "B".
func (e SegmentEnd) String() string {
	if e == EndA {
		return "A"
	}

	return "B"
}

// ConnKind tags the variants of the Connection sum type. The set is closed;
// every switch over ConnKind in this module is exhaustive.
type ConnKind int

const (
	// KindTrack identifies one end of a track segment.
	KindTrack ConnKind = iota
	// KindDit identifies a dit (revenue town without token spaces).
	KindDit
	// KindCity identifies a city (revenue stop with token spaces).
	KindCity
	// KindFace identifies one of the six hex edges.
	KindFace
)

// Connection identifies any point inside a tile's track network: a track
// segment end, a dit, a city, or a hex face. It is a comparable tagged union;
// use the TrackConn/DitConn/CityConn/FaceConn constructors.
type Connection struct {
	// Kind selects the active variant.
	Kind ConnKind

	// Index is the segment, dit, or city index. Unused for faces.
	Index int

	// End selects the segment end. Meaningful only for KindTrack.
	End SegmentEnd

	// Face is the hex edge. Meaningful only for KindFace.
	Face Face
}

// TrackConn returns the Connection for end `end` of segment `seg`.
func TrackConn(seg int, end SegmentEnd) Connection {
	return Connection{Kind: KindTrack, Index: seg, End: end}
}

// DitConn returns the Connection for dit index `dit`.
func DitConn(dit int) Connection {
	return Connection{Kind: KindDit, Index: dit}
}

// CityConn returns the Connection for city index `city`.
func CityConn(city int) Connection {
	return Connection{Kind: KindCity, Index: city}
}

// FaceConn returns the Connection for hex face `f`.
func FaceConn(f Face) Connection {
	return Connection{Kind: KindFace, Face: f}
}

// Equivalent reports whether two connections refer to the same network
// element, ignoring which segment end was used to reach it. The two ends of
// one segment are equivalent but not equal; this distinguishes "arrived via
// end A" from "arrived via end B" while still treating the segment as a
// single reusable resource.
func (c Connection) Equivalent(o Connection) bool {
	if c.Kind != o.Kind {
		return false
	}
	if c.Kind == KindFace {
		return c.Face == o.Face
	}

	return c.Index == o.Index
}

// OtherEnd returns the track connection for the opposite end of the same
// segment. Returns ErrNotTrack for non-track connections.
func (c Connection) OtherEnd() (Connection, error) {
	if c.Kind != KindTrack {
		return Connection{}, ErrNotTrack
	}

	return TrackConn(c.Index, c.End.Flip()), nil
}

// IsStop reports whether the connection is a revenue stop (city or dit).
func (c Connection) IsStop() bool {
	return c.Kind == KindCity || c.Kind == KindDit
}

// String renders the connection for diagnostics and test failures.
func (c Connection) String() string {
	switch c.Kind {
	case KindTrack:
		return fmt.Sprintf("track(%d,%s)", c.Index, c.End)
	case KindDit:
		return fmt.Sprintf("dit(%d)", c.Index)
	case KindCity:
		return fmt.Sprintf("city(%d)", c.Index)
	case KindFace:
		return fmt.Sprintf("face(%s)", c.Face)
	}

	return fmt.Sprintf("conn(kind=%d)", int(c.Kind))
}

// Point is a position in tile-local coordinates. The tile is a unit hexagon
// centred on the origin; face midpoints lie on the unit circle.
type Point struct {
	X, Y float64
}

// coincidentEps is the tolerance below which two points are the same anchor.
const coincidentEps = 1e-6

// Coincident reports whether two points occupy the same geometric anchor.
func Coincident(p, q Point) bool {
	return math.Hypot(p.X-q.X, p.Y-q.Y) < coincidentEps
}

// faceMidpoints holds the anchor position of each face, precomputed once.
// Face f sits at angle 90°−60°·f on the unit circle (north up, clockwise).
var faceMidpoints = func() [NumFaces]Point {
	var mids [NumFaces]Point
	for f := 0; f < NumFaces; f++ {
		angle := (math.Pi / 2) - (math.Pi/3)*float64(f)
		mids[f] = Point{X: math.Cos(angle), Y: math.Sin(angle)}
	}

	return mids
}()

// Centre returns the tile-local origin.
func Centre() Point {
	return Point{}
}

// FaceMidpoint returns the geometric anchor of face f.
func FaceMidpoint(f Face) Point {
	return faceMidpoints[f]
}

// Segment is one piece of track between two geometric anchors. A segment end
// anchored on a face midpoint connects across the hex border; an end inside
// the tile connects to whatever dit or city footprint it lands on.
type Segment struct {
	// A and B are the two physical ends of the segment.
	A, B Point

	// HasDit marks a town drawn on this segment.
	HasDit bool

	// DitEnd selects which end carries the town.
	DitEnd SegmentEnd

	// DitRevenue is the town's revenue when visited.
	DitRevenue int
}

// End returns the anchor of the requested segment end.
func (s Segment) End(e SegmentEnd) Point {
	if e == EndA {
		return s.A
	}

	return s.B
}

// FaceToFace returns a plain segment joining two face midpoints.
func FaceToFace(a, b Face) Segment {
	return Segment{A: FaceMidpoint(a), B: FaceMidpoint(b)}
}

// FaceToCentre returns a segment from a face midpoint to the tile centre.
func FaceToCentre(f Face) Segment {
	return Segment{A: FaceMidpoint(f), B: Centre()}
}

// WithDit returns a copy of s carrying a town of the given revenue at end e.
func (s Segment) WithDit(e SegmentEnd, revenue int) Segment {
	s.HasDit = true
	s.DitEnd = e
	s.DitRevenue = revenue

	return s
}

// City is a revenue stop with zero or more token spaces. Track connects to a
// city when a segment end lies within the city's circular footprint.
type City struct {
	// Centre is the footprint centre in tile-local coordinates.
	Centre Point

	// Radius is the footprint radius; segment ends within it join the city.
	Radius float64

	// Revenue is earned each time a path visits the city.
	Revenue int

	// TokenSpaces is the number of company token slots (0 for open cities).
	TokenSpaces int
}

// defaultCityRadius is the footprint radius used by CentralCity.
const defaultCityRadius = 0.25

// CentralCity returns a city of the given revenue and token-space count
// centred on the tile.
func CentralCity(revenue, tokenSpaces int) City {
	return City{Centre: Centre(), Radius: defaultCityRadius, Revenue: revenue, TokenSpaces: tokenSpaces}
}

// Dit is a derived entity allocated during connectivity construction: a town
// sitting on one end of its owning segment.
type Dit struct {
	// Segment is the owning segment index.
	Segment int

	// End is the owning segment's end the dit sits on.
	End SegmentEnd

	// Revenue is earned each time a path visits the dit.
	Revenue int
}

// Colour is the paint colour of a tile, which doubles as its upgrade phase.
type Colour int

const (
	Yellow Colour = iota
	Green
	Brown
	Grey
	// Red marks off-board areas; trains may end a run there but never continue.
	Red
	// Blue marks off-board water/port areas, terminal like Red.
	Blue
)

// colourNames holds printable colour labels in declaration order.
var colourNames = [...]string{"yellow", "green", "brown", "grey", "red", "blue"}

// Terminal reports whether trains must stop on tiles of this colour.
func (c Colour) Terminal() bool {
	return c == Red || c == Blue
}

// String returns the lowercase colour name.
func (c Colour) String() string {
	if c < 0 || int(c) >= len(colourNames) {
		return fmt.Sprintf("Colour(%d)", int(c))
	}

	return colourNames[c]
}
