package geoarrow

// Edges describes how edges between consecutive vertices are interpreted.
type Edges uint8

const (
	// EdgesPlanar interprets edges as straight lines in the coordinate space.
	EdgesPlanar Edges = iota
	// EdgesSpherical interprets edges as great-circle arcs.
	EdgesSpherical
)

func (e Edges) String() string {
	if e == EdgesSpherical {
		return "spherical"
	}
	return "planar"
}

// Metadata is the array-level metadata carried by every geometry array.
type Metadata struct {
	// CRS is the coordinate reference system, typically PROJJSON or an
	// authority string such as "EPSG:4326". Empty means unspecified.
	CRS string
	// Edges is the edge interpretation.
	Edges Edges
}

// IsZero reports whether m carries no information.
func (m Metadata) IsZero() bool { return m.CRS == "" && m.Edges == EdgesPlanar }
