package ffi

import (
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
)

// Role is the purpose of a buffer within its array node.
type Role uint8

const (
	RoleValidity Role = iota
	RoleTypeIDs
	RoleOffsets
	RoleValues
)

func (r Role) String() string {
	switch r {
	case RoleValidity:
		return "validity"
	case RoleTypeIDs:
		return "type_ids"
	case RoleOffsets:
		return "offsets"
	case RoleValues:
		return "values"
	default:
		return "unknown"
	}
}

// BufferInfo is one buffer of an array tree.
type BufferInfo struct {
	// Path names the node, dot separated from the root ("" for the root),
	// using the storage field names: "vertices.xy", "polygons.rings".
	Path string
	Role Role
	// Type is the storage type of the node owning the buffer.
	Type arrow.DataType
	// ByteWidth is the element width for fixed-width buffers, 0 otherwise.
	ByteWidth int
	// Ptr is the address of the first byte; 0 for absent buffers.
	Ptr uintptr
	Len int
}

// Buffers lists every buffer of arr in depth-first order, the order the C
// data interface exports them in. Absent buffers, such as the validity
// bitmap of an array without nulls, are listed with Ptr 0. The pointers
// stay valid only while arr is retained.
func Buffers(arr arrow.Array) []BufferInfo {
	var out []BufferInfo
	walk(arr.Data(), "", &out)
	return out
}

func walk(data arrow.ArrayData, path string, out *[]BufferInfo) {
	dt := data.DataType()
	if ext, ok := dt.(arrow.ExtensionType); ok {
		dt = ext.StorageType()
	}

	specs := dt.Layout().Buffers
	bufs := data.Buffers()
	if isUnion(dt) && len(bufs) > 0 {
		// unions keep an unused validity slot that their layout omits
		bufs = bufs[1:]
	}
	for i, spec := range specs {
		info := BufferInfo{Path: path, Type: dt, Role: roleOf(dt, i, spec)}
		if spec.Kind == arrow.KindFixedWidth {
			info.ByteWidth = spec.ByteWidth
		}
		if i < len(bufs) && bufs[i] != nil && bufs[i].Len() > 0 {
			b := bufs[i].Bytes()
			info.Ptr = uintptr(unsafe.Pointer(unsafe.SliceData(b)))
			info.Len = len(b)
		}
		*out = append(*out, info)
	}

	nested, ok := dt.(arrow.NestedType)
	if !ok {
		return
	}
	fields := nested.Fields()
	for i, child := range data.Children() {
		name := "?"
		if i < len(fields) {
			name = fields[i].Name
		}
		if path != "" {
			name = path + "." + name
		}
		walk(child, name, out)
	}
}

func roleOf(dt arrow.DataType, i int, spec arrow.BufferSpec) Role {
	switch {
	case isUnion(dt):
		if i == 0 {
			return RoleTypeIDs
		}
		return RoleOffsets
	case i == 0:
		return RoleValidity
	case i == 1 && spec.Kind == arrow.KindFixedWidth && isOffsetType(dt):
		return RoleOffsets
	default:
		return RoleValues
	}
}

func isUnion(dt arrow.DataType) bool {
	return dt.ID() == arrow.DENSE_UNION || dt.ID() == arrow.SPARSE_UNION
}

func isOffsetType(dt arrow.DataType) bool {
	switch dt.ID() {
	case arrow.LIST, arrow.LARGE_LIST, arrow.BINARY, arrow.LARGE_BINARY, arrow.STRING, arrow.LARGE_STRING:
		return true
	default:
		return false
	}
}
