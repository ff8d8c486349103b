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
	"log/slog"

	"github.com/fwessels/glsl-pp/internal/preprocessor"
)

type (
	PipelineStages      = preprocessor.PipelineStages
	PreprocessedShaders = preprocessor.PreprocessedShaders
	Preprocessor        = preprocessor.Preprocessor
	VertexAttribute     = preprocessor.VertexAttribute
	ComponentType       = preprocessor.ComponentType
	Topology            = preprocessor.Topology
	Version             = preprocessor.Version
	SourceMap           = preprocessor.SourceMap
	SourceMapEntry      = preprocessor.SourceMapEntry
	Diagnostic          = preprocessor.Diagnostic
	Diagnostics         = preprocessor.Diagnostics
	Severity            = preprocessor.Severity
	MacroError          = preprocessor.MacroError
)

const (
	StageNone        = preprocessor.StageNone
	StageVertex      = preprocessor.StageVertex
	StageFragment    = preprocessor.StageFragment
	StageGeometry    = preprocessor.StageGeometry
	StageTessControl = preprocessor.StageTessControl
	StageTessEval    = preprocessor.StageTessEval
	StageCompute     = preprocessor.StageCompute

	Byte         = preprocessor.Byte
	UnsignedByte = preprocessor.UnsignedByte
	Short        = preprocessor.Short
	Float        = preprocessor.Float

	Lines     = preprocessor.Lines
	Triangles = preprocessor.Triangles

	SeverityError   = preprocessor.SeverityError
	SeverityWarning = preprocessor.SeverityWarning

	DefaultVersion = preprocessor.DefaultVersion
)

var (
	AllStages         = preprocessor.AllStages
	ErrMalformedMacro = preprocessor.ErrMalformedMacro
)

// PreprocessCombined splits a combined GLSL source into per-stage sources.
//
// path is where source was read from; includes are resolved relative to its
// directory first and then against includePaths in order. macros are NAME or
// NAME=VALUE definitions prepended to every stage. The returned error is
// non-nil only for a malformed macro; problems inside the source end up in
// the Diagnostics of the result.
func PreprocessCombined(source, path string, macros, includePaths []string) (PipelineStages, *PreprocessedShaders, error) {
	return preprocessor.PreprocessCombined(source, path, macros, includePaths)
}

// PreprocessFile is like PreprocessCombined but reads the source from path.
func PreprocessFile(path string, macros, includePaths []string) (PipelineStages, *PreprocessedShaders, error) {
	p := preprocessor.NewPreprocessor()
	p.Macros = macros
	p.IncludeDirs = includePaths
	return p.ProcessFile(path)
}

// NewPreprocessor returns a Preprocessor with default options.
func NewPreprocessor() *Preprocessor {
	return preprocessor.NewPreprocessor()
}

// SetLogger sets the logger receiving diagnostics. nil disables logging,
// which is the default.
func SetLogger(l *slog.Logger) {
	preprocessor.SetLogger(l)
}
