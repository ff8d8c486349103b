// Package preprocessor expands combined GLSL sources: one file holding the
// code of several pipeline stages, split apart by per-stage defines.
//
// Besides #include and #version, the following pragmas are understood:
//
//	#pragma stages(vertex, fragment)
//	#pragma input_layout(rgba32f, 0, 0, rg16_snorm, 1, 16)
//	#pragma primitive_topology(triangle)
//
// The result holds one source per enabled stage, each starting with
//
//	#version <N>
//	#define <caller macros>
//	#define _<STAGE>_
//	#line 0 0
//
// followed by the expanded body. #line directives are inserted wherever
// lines were removed so that driver messages can be mapped back through the
// source map.
package preprocessor

import (
	"log/slog"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultVersion is used when the source has no #version directive.
const DefaultVersion = 330

// PreprocessedShaders is the result of preprocessing one combined source.
// A stage field is empty when the stage is not enabled.
type PreprocessedShaders struct {
	Vertex      string
	Fragment    string
	Geometry    string
	TessControl string
	TessEval    string
	Compute     string

	InputLayout       []VertexAttribute // nil without an input_layout pragma
	PrimitiveTopology *Topology         // nil without a primitive_topology pragma

	Version     Version
	SourceMap   SourceMap
	Diagnostics Diagnostics
}

// Variant returns the source for stage and whether it was generated.
func (p *PreprocessedShaders) Variant(stage PipelineStages) (string, bool) {
	s := *p.slot(stage)
	return s, s != ""
}

func (p *PreprocessedShaders) slot(stage PipelineStages) *string {
	switch stage {
	case StageVertex:
		return &p.Vertex
	case StageFragment:
		return &p.Fragment
	case StageGeometry:
		return &p.Geometry
	case StageTessControl:
		return &p.TessControl
	case StageTessEval:
		return &p.TessEval
	case StageCompute:
		return &p.Compute
	}
	panic("preprocessor: not a single stage: " + stage.String())
}

// Preprocessor holds the options for preprocessing combined sources. The
// zero value is usable; NewPreprocessor fills in the defaults explicitly.
// A Preprocessor may be used from several goroutines at once as long as its
// fields are not modified.
type Preprocessor struct {
	// IncludeDirs are searched in order when an include is not found next
	// to the including file.
	IncludeDirs []string

	// Macros are NAME or NAME=VALUE definitions added to every variant.
	Macros []string

	// DefaultVersion replaces a missing #version. 0 means DefaultVersion.
	DefaultVersion int

	// Logger receives diagnostics. nil means the package logger.
	Logger *slog.Logger

	// ReadFile reads include files. nil means os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		DefaultVersion: DefaultVersion,
		ReadFile:       os.ReadFile,
	}
}

// PreprocessCombined preprocesses source, whose file is at path, with the
// given caller macros and include directories.
func PreprocessCombined(source, path string, macros, includePaths []string) (PipelineStages, *PreprocessedShaders, error) {
	p := NewPreprocessor()
	p.Macros = macros
	p.IncludeDirs = includePaths
	return p.Process(source, path)
}

// ProcessFile reads path and preprocesses it.
func (p *Preprocessor) ProcessFile(path string) (PipelineStages, *PreprocessedShaders, error) {
	data, err := p.readFile()(path)
	if err != nil {
		return StageNone, nil, err
	}
	return p.Process(string(data), path)
}

// Process preprocesses source, whose file is at path. Problems in the source
// are reported through the Diagnostics of the result and the logger; the
// only error returned is a *MacroError for a malformed caller macro, in
// which case no result is produced.
func (p *Preprocessor) Process(source, path string) (PipelineStages, *PreprocessedShaders, error) {
	ctx := &preprocessContext{
		includeDirs: p.IncludeDirs,
		readFile:    p.readFile(),
		log:         p.logger(),
	}

	root := ctx.enter(path, nil, 0)
	text, _, err := transform.String(unicode.UTF8BOM.NewDecoder(), source)
	if err != nil {
		ctx.errorf(root, 0, "could not decode source: %v", err)
		text = source
	}
	ctx.scan(root, text)

	ctx.log.Debug("enabled stages", "stages", ctx.stages)
	ctx.log.Debug("preprocessing done", "errors", ctx.diags.Errors(), "warnings", ctx.diags.Warnings())

	if ctx.version == nil {
		v := Version{Number: p.defaultVersion()}
		ctx.warnf(root, 0, "no #version directive found while preprocessing; defaulting to version %v", v)
		ctx.version = &v
	}
	ctx.log.Debug("glsl version", "version", ctx.version.String())
	for _, e := range ctx.sourceMap {
		ctx.log.Debug("source map", "id", e.Index, "path", e.Path)
	}

	header, err := prologue(*ctx.version, p.Macros)
	if err != nil {
		return StageNone, nil, err
	}

	body := ctx.body.String()
	out := &PreprocessedShaders{
		InputLayout:       ctx.inputLayout,
		PrimitiveTopology: ctx.topology,
		Version:           *ctx.version,
		SourceMap:         ctx.sourceMap,
		Diagnostics:       ctx.diags,
	}
	for _, st := range ctx.stages.Stages() {
		*out.slot(st) = variant(header, st, body)
	}
	return ctx.stages, out, nil
}

func (p *Preprocessor) defaultVersion() int {
	if p.DefaultVersion == 0 {
		return DefaultVersion
	}
	return p.DefaultVersion
}

func (p *Preprocessor) logger() *slog.Logger {
	if p.Logger == nil {
		return Logger()
	}
	return p.Logger
}

func (p *Preprocessor) readFile() func(string) ([]byte, error) {
	if p.ReadFile == nil {
		return os.ReadFile
	}
	return p.ReadFile
}
