package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/geoarrow"
)

// extensionMetadata is the wire form of geoarrow.Metadata.
//
// CRS is kept raw: producers emit either a PROJJSON object or a plain string.
type extensionMetadata struct {
	CRS   json.RawMessage `json:"crs,omitempty"`
	Edges string          `json:"edges,omitempty"`
}

// EncodeMetadata serializes m into the GeoArrow extension metadata string.
// Zero metadata encodes as "".
func EncodeMetadata(c Codec, m geoarrow.Metadata) (string, error) {
	if m.IsZero() {
		return "", nil
	}
	if c == nil {
		c = Default
	}

	var wire extensionMetadata
	if m.CRS != "" {
		crs := []byte(m.CRS)
		if !isJSONObject(crs) {
			quoted, err := c.Marshal(m.CRS)
			if err != nil {
				return "", err
			}
			crs = quoted
		}
		wire.CRS = crs
	}
	if m.Edges == geoarrow.EdgesSpherical {
		wire.Edges = m.Edges.String()
	}

	b, err := c.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("codec %s: encode metadata: %w", c.Name(), err)
	}
	return string(b), nil
}

// DecodeMetadata parses a GeoArrow extension metadata string.
// Both "" and "{}" decode to zero metadata.
func DecodeMetadata(c Codec, s string) (geoarrow.Metadata, error) {
	var m geoarrow.Metadata
	if s == "" {
		return m, nil
	}
	if c == nil {
		c = Default
	}

	var wire extensionMetadata
	if err := c.Unmarshal([]byte(s), &wire); err != nil {
		return m, fmt.Errorf("codec %s: decode metadata: %w", c.Name(), err)
	}

	switch wire.Edges {
	case "", "planar":
	case "spherical":
		m.Edges = geoarrow.EdgesSpherical
	default:
		return m, fmt.Errorf("codec %s: decode metadata: unknown edges %q", c.Name(), wire.Edges)
	}

	crs := bytes.TrimSpace(wire.CRS)
	switch {
	case len(crs) == 0 || bytes.Equal(crs, []byte("null")):
	case isJSONObject(crs):
		m.CRS = string(crs)
	default:
		var str string
		if err := c.Unmarshal(crs, &str); err != nil {
			return m, fmt.Errorf("codec %s: decode metadata crs: %w", c.Name(), err)
		}
		m.CRS = str
	}

	return m, nil
}

func isJSONObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}
