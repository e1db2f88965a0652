package wkb

import (
	"encoding/binary"

	"github.com/hupe1980/geoarrow"
)

// ByteOrder is the byte order marker that opens every WKB geometry.
type ByteOrder uint8

const (
	// XDR is big endian.
	XDR ByteOrder = 0
	// NDR is little endian.
	NDR ByteOrder = 1
)

func (o ByteOrder) String() string {
	switch o {
	case XDR:
		return "XDR"
	case NDR:
		return "NDR"
	default:
		return "unknown"
	}
}

// byteOrder reads and appends in one byte order.
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func (o ByteOrder) binary() byteOrder {
	if o == XDR {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

const (
	headerSize = 5 // order byte + uint32 type code
	countSize  = 4

	// maxDepth bounds collection nesting while reading.
	maxDepth = 32

	ewkbZ    = 0x80000000
	ewkbM    = 0x40000000
	ewkbSRID = 0x20000000
)

// typeCode returns the ISO type code of kind at dim.
func typeCode(kind geoarrow.Kind, dim geoarrow.Dimension) uint32 {
	return uint32(kind) + 1000*uint32(dim)
}

// splitCode decodes an ISO or EWKB type code.
func splitCode(code uint32) (kind geoarrow.Kind, dim geoarrow.Dimension, srid bool, ok bool) {
	hasZ := code&ewkbZ != 0
	hasM := code&ewkbM != 0
	srid = code&ewkbSRID != 0
	base := code &^ (ewkbZ | ewkbM | ewkbSRID)

	switch base / 1000 {
	case 0:
	case 1:
		hasZ = true
	case 2:
		hasM = true
	case 3:
		hasZ, hasM = true, true
	default:
		return 0, 0, false, false
	}
	kind = geoarrow.Kind(base % 1000)
	if kind < geoarrow.KindPoint || kind > geoarrow.KindGeometryCollection {
		return 0, 0, false, false
	}
	return kind, geoarrow.DimensionOf(hasZ, hasM), srid, true
}
