package geoarrow

import "fmt"

// Dimension describes which axes each coordinate carries.
type Dimension uint8

const (
	// XY is a two-dimensional coordinate.
	XY Dimension = iota
	// XYZ carries an additional elevation axis.
	XYZ
	// XYM carries an additional measure axis.
	XYM
	// XYZM carries elevation and measure axes.
	XYZM
)

// Size returns the number of float64 values per coordinate.
func (d Dimension) Size() int {
	switch d {
	case XYZ, XYM:
		return 3
	case XYZM:
		return 4
	default:
		return 2
	}
}

// HasZ reports whether the dimension includes an elevation axis.
func (d Dimension) HasZ() bool { return d == XYZ || d == XYZM }

// HasM reports whether the dimension includes a measure axis.
func (d Dimension) HasM() bool { return d == XYM || d == XYZM }

// Axes returns the axis names in storage order.
func (d Dimension) Axes() []string {
	switch d {
	case XYZ:
		return []string{"x", "y", "z"}
	case XYM:
		return []string{"x", "y", "m"}
	case XYZM:
		return []string{"x", "y", "z", "m"}
	default:
		return []string{"x", "y"}
	}
}

func (d Dimension) String() string {
	switch d {
	case XY:
		return "xy"
	case XYZ:
		return "xyz"
	case XYM:
		return "xym"
	case XYZM:
		return "xyzm"
	default:
		return fmt.Sprintf("Dimension(%d)", uint8(d))
	}
}

// Valid reports whether d is one of the four defined dimensions.
func (d Dimension) Valid() bool { return d <= XYZM }

// DimensionOf returns the dimension with the given optional axes.
func DimensionOf(hasZ, hasM bool) Dimension {
	switch {
	case hasZ && hasM:
		return XYZM
	case hasZ:
		return XYZ
	case hasM:
		return XYM
	default:
		return XY
	}
}

// CoordType selects the physical layout of a coordinate buffer.
type CoordType uint8

const (
	// Interleaved stores all axes of a coordinate next to each other
	// (x0 y0 x1 y1 ...). Favors per-point locality.
	Interleaved CoordType = iota
	// Separated stores one buffer per axis (x0 x1 ..., y0 y1 ...).
	// Favors per-axis vectorized compute.
	Separated
)

func (c CoordType) String() string {
	switch c {
	case Interleaved:
		return "interleaved"
	case Separated:
		return "separated"
	default:
		return fmt.Sprintf("CoordType(%d)", uint8(c))
	}
}
