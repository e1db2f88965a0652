// Package codec centralizes extension metadata encoding.
//
// GeoArrow extension types carry their metadata ({"crs": ..., "edges": ...})
// as a JSON string. The codec used to produce it is pluggable; every codec
// must produce output readable by every other.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}
