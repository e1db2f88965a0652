package wkb

import (
	"math"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	arrowarray "github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
	"github.com/hupe1980/geoarrow/codec"
	"github.com/hupe1980/geoarrow/internal/conv"
	"github.com/hupe1980/geoarrow/internal/mem"
)

// ExtensionName is the Arrow extension name of WKB columns.
const ExtensionName = "geoarrow.wkb"

// ExtensionType is the geoarrow.wkb extension over Binary or LargeBinary.
type ExtensionType struct {
	arrow.ExtensionBase
	meta geoarrow.Metadata
}

var _ arrow.ExtensionType = (*ExtensionType)(nil)

// NewExtensionType returns the extension type over Binary storage, or
// LargeBinary when large is set.
func NewExtensionType(large bool, meta geoarrow.Metadata) *ExtensionType {
	var storage arrow.DataType = arrow.BinaryTypes.Binary
	if large {
		storage = arrow.BinaryTypes.LargeBinary
	}
	return &ExtensionType{ExtensionBase: arrow.ExtensionBase{Storage: storage}, meta: meta}
}

// Metadata returns the CRS and edge metadata.
func (t *ExtensionType) Metadata() geoarrow.Metadata { return t.meta }

func (t *ExtensionType) ExtensionName() string { return ExtensionName }

func (t *ExtensionType) String() string {
	return "extension<" + ExtensionName + "[" + t.Storage.String() + "]>"
}

func (t *ExtensionType) Serialize() string {
	s, err := codec.EncodeMetadata(codec.Default, t.meta)
	if err != nil {
		return ""
	}
	return s
}

func (t *ExtensionType) Deserialize(storage arrow.DataType, data string) (arrow.ExtensionType, error) {
	switch storage.ID() {
	case arrow.BINARY, arrow.LARGE_BINARY:
	default:
		return nil, geoarrow.IncorrectType("%s storage must be binary, got %s", ExtensionName, storage)
	}
	meta, err := codec.DecodeMetadata(codec.Default, data)
	if err != nil {
		return nil, err
	}
	return &ExtensionType{ExtensionBase: arrow.ExtensionBase{Storage: storage}, meta: meta}, nil
}

func (t *ExtensionType) ExtensionEquals(other arrow.ExtensionType) bool {
	o, ok := other.(*ExtensionType)
	return ok && arrow.TypeEqual(t.Storage, o.Storage) && t.meta == o.meta
}

func (t *ExtensionType) ArrayType() reflect.Type { return reflect.TypeOf(ExtensionArray{}) }

// ExtensionArray is the Arrow array type of geoarrow.wkb columns.
type ExtensionArray struct {
	arrowarray.ExtensionArrayBase
}

func init() {
	// fails only when the name is already registered
	_ = arrow.RegisterExtensionType(NewExtensionType(false, geoarrow.Metadata{}))
}

func isLarge[O array.OffsetType]() bool { return conv.MaxOffset[O]() > math.MaxInt32 }

// ExtensionType returns the column's extension type.
func (a *Array[O]) ExtensionType() *ExtensionType { return NewExtensionType(isLarge[O](), a.meta) }

// ToArrow exports the column as a geoarrow.wkb extension array without
// copying offsets or values.
func (a *Array[O]) ToArrow() arrow.Array {
	typ := a.ExtensionType()

	var nullBuf *memory.Buffer
	nulls := a.NullN()
	if nulls > 0 {
		nullBuf = memory.NewBufferBytes(a.validity.Bytes())
	}
	bufs := []*memory.Buffer{
		nullBuf,
		memory.NewBufferBytes(mem.Bytes(a.offsets.Values())),
		memory.NewBufferBytes(a.values),
	}
	data := arrowarray.NewData(typ.StorageType(), a.Len(), bufs, nil, nulls, 0)
	defer data.Release()
	storage := arrowarray.MakeFromData(data)
	defer storage.Release()
	return arrowarray.NewExtensionArrayWithStorage(typ, storage)
}

// FromArrow imports a geoarrow.wkb extension array without copying. The
// storage width must match O: Binary for int32, LargeBinary for int64.
func FromArrow[O array.OffsetType](arr arrow.Array) (*Array[O], error) {
	ext, ok := arr.(arrowarray.ExtensionArray)
	if !ok {
		return nil, geoarrow.IncorrectType("%s is not an extension array", arr.DataType())
	}
	typ, ok := ext.ExtensionType().(*ExtensionType)
	if !ok {
		return nil, geoarrow.IncorrectType("extension %s is not %s", ext.ExtensionType().ExtensionName(), ExtensionName)
	}
	return FromStorage[O](ext.Storage(), typ.meta)
}

// FromStorage imports a plain Binary or LargeBinary array.
func FromStorage[O array.OffsetType](storage arrow.Array, meta geoarrow.Metadata) (*Array[O], error) {
	want := arrow.BINARY
	if isLarge[O]() {
		want = arrow.LARGE_BINARY
	}
	if storage.DataType().ID() != want {
		return nil, geoarrow.IncorrectType("expected %s storage, got %s", want, storage.DataType())
	}

	data := storage.Data()
	bufs := data.Buffers()
	raw := []O{0}
	if len(bufs) > 1 && bufs[1] != nil {
		raw = mem.FromBytes[O](bufs[1].Bytes())
	}
	start, end := data.Offset(), data.Offset()+data.Len()+1
	if end > len(raw) {
		if data.Len() > 0 {
			return nil, geoarrow.NewMalformed(0, "offset buffer holds %d values, need %d", len(raw), end)
		}
		raw, start, end = []O{0}, 0, 1
	}
	offsets, err := array.NewOffsets(raw[start:end:end])
	if err != nil {
		return nil, err
	}

	var values []byte
	if len(bufs) > 2 && bufs[2] != nil {
		values = bufs[2].Bytes()
	}

	var validity *array.Validity
	if storage.NullN() > 0 {
		validity = array.NewValidity(storage.NullBitmapBytes(), data.Offset(), data.Len())
	}
	return NewArray(offsets, values, validity, meta)
}
