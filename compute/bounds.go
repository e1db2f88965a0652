package compute

import (
	"math"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
	"github.com/hupe1980/geoarrow/model"
	"github.com/hupe1980/geoarrow/traits"
)

// Bounds is a 2D extent. The zero value is not empty; use NewBounds.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBounds returns an empty extent.
func NewBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// Empty reports whether b holds no coordinate.
func (b Bounds) Empty() bool {
	return b.MaxX < b.MinX || b.MaxY < b.MinY
}

// ExtendCoord grows b to include c. NaN axes are ignored.
func (b *Bounds) ExtendCoord(c traits.Coord) {
	x, y := c.X(), c.Y()
	if !math.IsNaN(x) {
		b.MinX = math.Min(b.MinX, x)
		b.MaxX = math.Max(b.MaxX, x)
	}
	if !math.IsNaN(y) {
		b.MinY = math.Min(b.MinY, y)
		b.MaxY = math.Max(b.MaxY, y)
	}
}

// Extend grows b to include o.
func (b *Bounds) Extend(o Bounds) {
	if o.Empty() {
		return
	}
	b.MinX = math.Min(b.MinX, o.MinX)
	b.MinY = math.Min(b.MinY, o.MinY)
	b.MaxX = math.Max(b.MaxX, o.MaxX)
	b.MaxY = math.Max(b.MaxY, o.MaxY)
}

// Rect returns b as an XY rectangle.
func (b Bounds) Rect() model.Rect {
	return model.NewRect(model.XY(b.MinX, b.MinY), model.XY(b.MaxX, b.MaxY))
}

// GeometryBounds returns the extent of g's coordinates.
func GeometryBounds(g traits.Geometry) Bounds {
	b := NewBounds()
	traits.WalkCoords(g, func(c traits.Coord) bool {
		b.ExtendCoord(c)
		return true
	})
	return b
}

// TotalBounds returns the extent of every valid slot of arr. Null slots
// are skipped by their validity bit, never by coordinate values.
func TotalBounds(arr array.Array) Bounds {
	b := NewBounds()
	for i := range arr.Len() {
		if arr.IsNull(i) {
			continue
		}
		traits.WalkCoords(arr.Geometry(i), func(c traits.Coord) bool {
			b.ExtendCoord(c)
			return true
		})
	}
	return b
}

// BoundsArray returns one XY box per slot of arr, null where arr is null.
// Empty geometries get the inverted infinite box of NewBounds.
func BoundsArray(arr array.Array) *array.RectArray {
	rb := array.NewRectBuilder(geoarrow.XY, array.WithCapacity(arr.Len()), array.WithMetadata(arr.Metadata()))
	for i := range arr.Len() {
		if arr.IsNull(i) {
			rb.PushNull()
			continue
		}
		rb.PushRect(GeometryBounds(arr.Geometry(i)).Rect())
	}
	return rb.Finish()
}
