package preprocessor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ComponentType is the OpenGL enumerant describing the scalar type of a
// vertex attribute component.
type ComponentType uint32

const (
	Byte         ComponentType = 0x1400 // GL_BYTE
	UnsignedByte ComponentType = 0x1401 // GL_UNSIGNED_BYTE
	Short        ComponentType = 0x1402 // GL_SHORT
	Float        ComponentType = 0x1406 // GL_FLOAT
)

func (t ComponentType) String() string {
	switch t {
	case Byte:
		return "BYTE"
	case UnsignedByte:
		return "UNSIGNED_BYTE"
	case Short:
		return "SHORT"
	case Float:
		return "FLOAT"
	}
	return fmt.Sprintf("ComponentType(0x%04x)", uint32(t))
}

// ByteSize returns the size in bytes of one component.
func (t ComponentType) ByteSize() int {
	switch t {
	case Byte, UnsignedByte:
		return 1
	case Short:
		return 2
	case Float:
		return 4
	}
	return 0
}

// Topology is the OpenGL primitive topology enumerant.
type Topology uint32

const (
	Lines     Topology = 0x0001 // GL_LINES
	Triangles Topology = 0x0004 // GL_TRIANGLES
)

func (t Topology) String() string {
	switch t {
	case Lines:
		return "LINES"
	case Triangles:
		return "TRIANGLES"
	}
	return fmt.Sprintf("Topology(0x%04x)", uint32(t))
}

var topologies = map[string]Topology{
	"triangle": Triangles,
	"line":     Lines,
}

// VertexAttribute describes one attribute of the vertex input layout.
type VertexAttribute struct {
	Type           ComponentType
	Size           int // component count, 1 to 4
	Normalized     bool
	Slot           uint32
	RelativeOffset uint32
}

// ByteSize returns the number of bytes the attribute occupies in its buffer.
func (a VertexAttribute) ByteSize() int {
	return a.Type.ByteSize() * a.Size
}

type attribFormat struct {
	typ        ComponentType
	size       int
	normalized bool
}

var attribFormats = map[string]attribFormat{
	"rgba32f":      {Float, 4, false},
	"rgb32f":       {Float, 3, false},
	"rg32f":        {Float, 2, false},
	"r32f":         {Float, 1, false},
	"rgba16_snorm": {Short, 4, true},
	"rgb16_snorm":  {Short, 3, true},
	"rg16_snorm":   {Short, 2, true},
	"r16_snorm":    {Short, 1, true},
	"rgba8_unorm":  {UnsignedByte, 4, true},
	"rgba8_snorm":  {Byte, 4, true},
}

var errInputLayout = errors.New("error parsing input_layout directive")

// parseInputLayout parses the comma separated (format, slot, offset) triples
// of an input_layout pragma. Any bad entry rejects the whole list.
func parseInputLayout(entries string) ([]VertexAttribute, error) {
	fields := strings.Split(entries, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var layout []VertexAttribute
	for len(fields) > 0 {
		if len(fields) < 3 {
			return nil, errInputLayout
		}
		format, slotStr, offsetStr := fields[0], fields[1], fields[2]
		fields = fields[3:]

		slot, err := strconv.ParseUint(slotStr, 10, 32)
		if err != nil {
			return nil, errInputLayout
		}
		offset, err := strconv.ParseUint(offsetStr, 10, 32)
		if err != nil {
			return nil, errInputLayout
		}
		f, ok := attribFormats[format]
		if !ok {
			return nil, fmt.Errorf("%w (unsupported format %q)", errInputLayout, format)
		}
		layout = append(layout, VertexAttribute{
			Type:           f.typ,
			Size:           f.size,
			Normalized:     f.normalized,
			Slot:           uint32(slot),
			RelativeOffset: uint32(offset),
		})
	}
	return layout, nil
}
