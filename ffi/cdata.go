//go:build cgo

package ffi

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	arrowarray "github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/cdata"
	"github.com/apache/arrow-go/v18/arrow/ipc"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
)

// Exported is a C ArrowArray/ArrowSchema pair allocated in C memory.
// Hand Array and Schema to the consumer, or call Release when the export
// is abandoned.
type Exported struct {
	Array  *cdata.CArrowArray
	Schema *cdata.CArrowSchema
}

func newExported() *Exported {
	return &Exported{
		Array:  newCArray(),
		Schema: (*cdata.CArrowSchema)(C.calloc(1, C.size_t(unsafe.Sizeof(cdata.CArrowSchema{})))),
	}
}

func newCArray() *cdata.CArrowArray {
	return (*cdata.CArrowArray)(C.calloc(1, C.size_t(unsafe.Sizeof(cdata.CArrowArray{}))))
}

// Export exports a native array. arr stays valid; the handle holds its
// own reference to the exported buffers.
func Export(arr array.Array) *Exported {
	a := arr.ToArrow()
	defer a.Release()
	return ExportArrow(a)
}

// ExportArrow exports arr without consuming the caller's reference.
//
// Extension arrays are exported as their storage array; the schema
// carries the extension name and metadata.
func ExportArrow(arr arrow.Array) *Exported {
	e := newExported()
	ext, ok := arr.(arrowarray.ExtensionArray)
	if !ok {
		cdata.ExportArrowArray(arr, e.Array, e.Schema)
		return e
	}

	// The array half of this export is discarded: only the schema, which
	// records the extension type, is kept.
	scratch := newCArray()
	cdata.ExportArrowArray(arr, scratch, e.Schema)
	cdata.ReleaseCArrowArray(scratch)
	C.free(unsafe.Pointer(scratch))

	cdata.ExportArrowArray(ext.Storage(), e.Array, nil)
	return e
}

// ExportArrowOwned exports arr and releases the caller's reference, so
// the handle becomes the only owner.
func ExportArrowOwned(arr arrow.Array) *Exported {
	e := ExportArrow(arr)
	arr.Release()
	return e
}

// Release runs the release callbacks that are still pending and frees
// the C structs. It is safe to call more than once.
func (e *Exported) Release() {
	if e.Array != nil {
		cdata.ReleaseCArrowArray(e.Array)
		C.free(unsafe.Pointer(e.Array))
		e.Array = nil
	}
	if e.Schema != nil {
		cdata.ReleaseCArrowSchema(e.Schema)
		C.free(unsafe.Pointer(e.Schema))
		e.Schema = nil
	}
}

// Import consumes e and returns a native array. Buffers are copied into
// Go memory before the C side is released, so the result does not depend
// on the producer. e must not be used afterwards.
func Import(e *Exported) (array.Array, error) {
	defer e.Release()
	return ImportC(e.Array, e.Schema)
}

// ImportC imports a C array moved in from a producer. The array struct is
// consumed; the schema stays owned by the caller.
func ImportC(carr *cdata.CArrowArray, cschema *cdata.CArrowSchema) (array.Array, error) {
	if carr == nil || cschema == nil {
		return nil, geoarrow.IncorrectType("nil C array or schema")
	}
	field, storage, err := cdata.ImportCArray(carr, cschema)
	if err != nil {
		return nil, err
	}
	defer storage.Release()

	imported, err := withExtension(field, storage)
	if err != nil {
		return nil, err
	}
	defer imported.Release()

	native, err := array.FromArrow(imported)
	if err != nil {
		return nil, err
	}
	return native.OwnedSlice(0, native.Len()), nil
}

// withExtension rewraps an imported storage array in the extension type
// named by the field metadata.
func withExtension(field arrow.Field, storage arrow.Array) (arrow.Array, error) {
	name, ok := field.Metadata.GetValue(ipc.ExtensionTypeKeyName)
	if !ok {
		return nil, geoarrow.IncorrectType("%s carries no extension type", field.Type)
	}
	typ := arrow.GetExtensionType(name)
	if typ == nil {
		return nil, geoarrow.IncorrectType("extension %s is not registered", name)
	}
	serialized, _ := field.Metadata.GetValue(ipc.ExtensionMetadataKeyName)
	dt, err := typ.Deserialize(storage.DataType(), serialized)
	if err != nil {
		return nil, err
	}
	return arrowarray.NewExtensionArrayWithStorage(dt, storage), nil
}
