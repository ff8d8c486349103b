package preprocessor

import (
	"math/bits"
	"strings"
)

// PipelineStages is a set of shader pipeline stages.
type PipelineStages uint8

const (
	StageVertex PipelineStages = 1 << iota
	StageFragment
	StageGeometry
	StageTessControl
	StageTessEval
	StageCompute

	StageNone PipelineStages = 0
)

// AllStages lists every stage in variant order.
var AllStages = [...]PipelineStages{
	StageVertex,
	StageFragment,
	StageGeometry,
	StageTessControl,
	StageTessEval,
	StageCompute,
}

type stageInfo struct {
	tag    string // name used in #pragma stages(...)
	define string // token defined at the top of the variant
	ext    string
}

var stageInfos = map[PipelineStages]stageInfo{
	StageVertex:      {"vertex", "_VERTEX_", "vert"},
	StageFragment:    {"fragment", "_FRAGMENT_", "frag"},
	StageGeometry:    {"geometry", "_GEOMETRY_", "geom"},
	StageTessControl: {"tess_control", "_TESS_CONTROL_", "tesc"},
	StageTessEval:    {"tess_eval", "_TESS_EVAL_", "tese"},
	StageCompute:     {"compute", "_COMPUTE_", "comp"},
}

// StageFromTag maps a #pragma stages tag to its stage.
func StageFromTag(tag string) (PipelineStages, bool) {
	for _, s := range AllStages {
		if stageInfos[s].tag == tag {
			return s, true
		}
	}
	return StageNone, false
}

// Has reports whether every stage in o is present in s.
func (s PipelineStages) Has(o PipelineStages) bool {
	return o != StageNone && s&o == o
}

// Count returns the number of stages in the set.
func (s PipelineStages) Count() int {
	return bits.OnesCount8(uint8(s))
}

// Stages returns the members of s in variant order.
func (s PipelineStages) Stages() []PipelineStages {
	var out []PipelineStages
	for _, st := range AllStages {
		if s.Has(st) {
			out = append(out, st)
		}
	}
	return out
}

// Tag returns the pragma tag of a single stage, or "" for a set.
func (s PipelineStages) Tag() string { return stageInfos[s].tag }

// Define returns the stage selector token, e.g. _VERTEX_.
func (s PipelineStages) Define() string { return stageInfos[s].define }

// Ext returns the conventional file extension of a single stage, e.g. "vert".
func (s PipelineStages) Ext() string { return stageInfos[s].ext }

func (s PipelineStages) String() string {
	if s == StageNone {
		return "none"
	}
	var tags []string
	for _, st := range s.Stages() {
		tags = append(tags, st.Tag())
	}
	return strings.Join(tags, "|")
}
