package wall

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/perfwall/pkg/errors"
)

// ShapeKind identifies the outline of a perforation.
type ShapeKind int

const (
	Square  ShapeKind = iota // axis-aligned square, side = cell size
	Circle                   // 32-segment circle, diameter = cell size
	Polygon                  // regular N-gon inscribed in a circle of diameter = cell size
)

// CircleSegments is the number of vertices used to approximate a circle.
const CircleSegments = 32

// MinPolygonSides is the smallest accepted polygon side count.
const MinPolygonSides = 3

var kindNames = map[ShapeKind]string{
	Square:  "square",
	Circle:  "circle",
	Polygon: "polygon",
}

// String returns the lower-case name used in config files and JSON.
func (k ShapeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "shape(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (k ShapeKind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "unknown cell shape %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Both names ("square",
// "circle", "polygon") and the numeric codes 0, 1, 2 are accepted.
func (k *ShapeKind) UnmarshalText(text []byte) error {
	kind, err := ParseShapeKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseShapeKind parses a shape name or numeric code.
func ParseShapeKind(s string) (ShapeKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if s == name {
			return k, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		if _, ok := kindNames[ShapeKind(n)]; ok {
			return ShapeKind(n), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidParameter, "unknown cell shape %q (want square, circle or polygon)", s)
}

// Shape is the perforation outline. Sides is only meaningful for Polygon.
type Shape struct {
	Kind  ShapeKind `json:"kind" yaml:"kind" toml:"kind"`
	Sides int       `json:"sides,omitempty" yaml:"sides,omitempty" toml:"sides,omitempty"`
}

// SquareShape, CircleShape and PolygonShape build the three variants.
func SquareShape() Shape { return Shape{Kind: Square} }

func CircleShape() Shape { return Shape{Kind: Circle} }

func PolygonShape(sides int) Shape { return Shape{Kind: Polygon, Sides: sides} }

// Validate checks the variant and, for polygons, the side count.
func (s Shape) Validate() error {
	if _, ok := kindNames[s.Kind]; !ok {
		return errors.New(errors.ErrCodeInvalidParameter, "unknown cell shape %d", int(s.Kind))
	}
	if s.Kind == Polygon && s.Sides < MinPolygonSides {
		return errors.New(errors.ErrCodeInvalidParameter, "polygon needs at least %d sides, got %d", MinPolygonSides, s.Sides)
	}
	return nil
}

// Name is the human-readable label shown in order summaries.
func (s Shape) Name() string {
	switch s.Kind {
	case Square:
		return "Square"
	case Circle:
		return "Circle"
	case Polygon:
		return "Polygon"
	}
	return s.Kind.String()
}

// String includes the side count for polygons.
func (s Shape) String() string {
	if s.Kind == Polygon {
		return fmt.Sprintf("polygon(%d)", s.Sides)
	}
	return s.Kind.String()
}

// Point is a 2D coordinate in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline returns the closed outline of one perforation of the given size,
// centered on the origin and rotated counter-clockwise by rotation degrees.
// The first vertex is not repeated at the end.
//
// Square has side = size. Circle and Polygon are inscribed in a circle of
// diameter = size, with the first vertex on the +X axis before rotation.
func (s Shape) Outline(size, rotation float64) []Point {
	var pts []Point
	switch s.Kind {
	case Square:
		h := size / 2
		pts = []Point{{-h, -h}, {h, -h}, {h, h}, {-h, h}}
	case Circle:
		pts = regular(CircleSegments, size/2)
	case Polygon:
		pts = regular(max(s.Sides, MinPolygonSides), size/2)
	}
	if rotation != 0 {
		rad := rotation * math.Pi / 180
		sin, cos := math.Sincos(rad)
		for i, p := range pts {
			pts[i] = Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
		}
	}
	return pts
}

func regular(n int, r float64) []Point {
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return pts
}
