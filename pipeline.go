/*
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package glsl_pp

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/gputypes"
)

var (
	ErrUnsupportedFormat   = errors.New("vertex format has no WebGPU equivalent")
	ErrUnsupportedTopology = errors.New("primitive topology has no WebGPU equivalent")
)

type formatKey struct {
	typ        ComponentType
	size       int
	normalized bool
}

var vertexFormats = map[formatKey]gputypes.VertexFormat{
	{Float, 1, false}:       gputypes.VertexFormatFloat32,
	{Float, 2, false}:       gputypes.VertexFormatFloat32x2,
	{Float, 3, false}:       gputypes.VertexFormatFloat32x3,
	{Float, 4, false}:       gputypes.VertexFormatFloat32x4,
	{Short, 2, true}:        gputypes.VertexFormatSnorm16x2,
	{Short, 4, true}:        gputypes.VertexFormatSnorm16x4,
	{UnsignedByte, 4, true}: gputypes.VertexFormatUnorm8x4,
	{Byte, 4, true}:         gputypes.VertexFormatSnorm8x4,
}

// VertexFormat returns the WebGPU format of a.
func VertexFormat(a VertexAttribute) (gputypes.VertexFormat, error) {
	f, ok := vertexFormats[formatKey{a.Type, a.Size, a.Normalized}]
	if !ok {
		return f, fmt.Errorf("%w: %d x %v (normalized=%v)", ErrUnsupportedFormat, a.Size, a.Type, a.Normalized)
	}
	return f, nil
}

// VertexBufferLayouts turns an input layout into WebGPU vertex buffer
// layouts, one per slot in ascending slot order. Shader locations follow the
// order of the attributes in layout, and the stride of each buffer is the end
// of its furthest attribute.
func VertexBufferLayouts(layout []VertexAttribute) ([]gputypes.VertexBufferLayout, error) {
	bySlot := make(map[uint32]*gputypes.VertexBufferLayout)
	for loc, a := range layout {
		format, err := VertexFormat(a)
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", loc, err)
		}
		buf, ok := bySlot[a.Slot]
		if !ok {
			buf = &gputypes.VertexBufferLayout{StepMode: gputypes.VertexStepModeVertex}
			bySlot[a.Slot] = buf
		}
		buf.Attributes = append(buf.Attributes, gputypes.VertexAttribute{
			Format:         format,
			Offset:         uint64(a.RelativeOffset),
			ShaderLocation: uint32(loc),
		})
		if end := uint64(a.RelativeOffset) + uint64(a.ByteSize()); end > buf.ArrayStride {
			buf.ArrayStride = end
		}
	}

	out := make([]gputypes.VertexBufferLayout, 0, len(bySlot))
	for _, slot := range slices.Sorted(maps.Keys(bySlot)) {
		out = append(out, *bySlot[slot])
	}
	return out, nil
}

// PrimitiveState returns the WebGPU primitive state for t, without culling.
func PrimitiveState(t Topology) (gputypes.PrimitiveState, error) {
	var topo gputypes.PrimitiveTopology
	switch t {
	case Triangles:
		topo = gputypes.PrimitiveTopologyTriangleList
	case Lines:
		topo = gputypes.PrimitiveTopologyLineList
	default:
		return gputypes.PrimitiveState{}, fmt.Errorf("%w: %v", ErrUnsupportedTopology, t)
	}
	return gputypes.PrimitiveState{
		Topology: topo,
		CullMode: gputypes.CullModeNone,
	}, nil
}

// ShaderStages returns the WebGPU visibility for the stages in s. Geometry
// and tessellation stages do not exist in WebGPU and are dropped.
func ShaderStages(s PipelineStages) gputypes.ShaderStage {
	var vis gputypes.ShaderStage
	if s.Has(StageVertex) {
		vis |= gputypes.ShaderStageVertex
	}
	if s.Has(StageFragment) {
		vis |= gputypes.ShaderStageFragment
	}
	if s.Has(StageCompute) {
		vis |= gputypes.ShaderStageCompute
	}
	return vis
}
