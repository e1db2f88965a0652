package array

import (
	"fmt"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/codec"
)

// ExtensionType is the GeoArrow extension type of a native geometry array.
// Its metadata is serialized as {"crs": ..., "edges": ...}.
type ExtensionType struct {
	arrow.ExtensionBase
	kind      geoarrow.Kind
	dim       geoarrow.Dimension
	coordType geoarrow.CoordType
	meta      geoarrow.Metadata
}

var _ arrow.ExtensionType = (*ExtensionType)(nil)

// NewExtensionType returns the extension type of an array of kind.
func NewExtensionType(kind geoarrow.Kind, dim geoarrow.Dimension, ct geoarrow.CoordType, meta geoarrow.Metadata) *ExtensionType {
	if kind == geoarrow.KindRect {
		ct = geoarrow.Separated
	}
	return &ExtensionType{
		ExtensionBase: arrow.ExtensionBase{Storage: StorageType(kind, dim, ct)},
		kind:          kind,
		dim:           dim,
		coordType:     ct,
		meta:          meta,
	}
}

func (t *ExtensionType) Kind() geoarrow.Kind           { return t.kind }
func (t *ExtensionType) Dim() geoarrow.Dimension       { return t.dim }
func (t *ExtensionType) CoordType() geoarrow.CoordType { return t.coordType }
func (t *ExtensionType) Metadata() geoarrow.Metadata   { return t.meta }

// ExtensionName returns the GeoArrow name, for example "geoarrow.polygon".
func (t *ExtensionType) ExtensionName() string { return t.kind.ExtensionName() }

func (t *ExtensionType) String() string {
	return fmt.Sprintf("extension<%s[%s, %s]>", t.ExtensionName(), t.dim, t.coordType)
}

// Serialize returns the extension metadata JSON.
func (t *ExtensionType) Serialize() string {
	s, err := codec.EncodeMetadata(codec.Default, t.meta)
	if err != nil {
		return ""
	}
	return s
}

// Deserialize rebuilds the type from a storage type and metadata string.
func (t *ExtensionType) Deserialize(storage arrow.DataType, data string) (arrow.ExtensionType, error) {
	meta, err := codec.DecodeMetadata(codec.Default, data)
	if err != nil {
		return nil, err
	}
	dim, ct, err := inspectStorage(t.kind, storage)
	if err != nil {
		return nil, err
	}
	return &ExtensionType{
		ExtensionBase: arrow.ExtensionBase{Storage: storage},
		kind:          t.kind,
		dim:           dim,
		coordType:     ct,
		meta:          meta,
	}, nil
}

// ExtensionEquals compares kind, dimension, layout and metadata.
func (t *ExtensionType) ExtensionEquals(other arrow.ExtensionType) bool {
	o, ok := other.(*ExtensionType)
	if !ok {
		return false
	}
	return t.kind == o.kind && t.dim == o.dim && t.coordType == o.coordType && t.meta == o.meta
}

// ArrayType returns the Go type of arrays of this extension.
func (t *ExtensionType) ArrayType() reflect.Type { return reflect.TypeOf(ExtensionArray{}) }

// ExtensionArray is the Arrow array type of every native GeoArrow extension.
// Convert it back with FromArrow.
type ExtensionArray struct {
	array.ExtensionArrayBase
}

// registeredKinds are the kinds with a registered extension type.
var registeredKinds = [...]geoarrow.Kind{
	geoarrow.KindPoint,
	geoarrow.KindLineString,
	geoarrow.KindPolygon,
	geoarrow.KindMultiPoint,
	geoarrow.KindMultiLineString,
	geoarrow.KindMultiPolygon,
	geoarrow.KindGeometryCollection,
	geoarrow.KindRect,
	geoarrow.KindGeometry,
}

func init() {
	for _, kind := range registeredKinds {
		// fails only when the name is already registered
		_ = arrow.RegisterExtensionType(NewExtensionType(kind, geoarrow.XY, geoarrow.Interleaved, geoarrow.Metadata{}))
	}
}
