package preprocessor

import (
	"fmt"
	"log/slog"
	"strings"
)

// Version is the GLSL version taken from a #version directive.
type Version struct {
	Number  int
	Profile string // "", "core", "compatibility" or "es"
}

func (v Version) String() string {
	if v.Profile == "" {
		return fmt.Sprint(v.Number)
	}
	return fmt.Sprintf("%d %s", v.Number, v.Profile)
}

// preprocessContext holds everything one call accumulates while walking the
// root file and its includes.
type preprocessContext struct {
	body        strings.Builder
	version     *Version
	stages      PipelineStages
	inputLayout []VertexAttribute
	topology    *Topology
	sourceMap   SourceMap
	diags       Diagnostics

	includeDirs []string
	readFile    func(string) ([]byte, error)
	log         *slog.Logger
}

// enter registers path in the source map and returns its frame.
func (ctx *preprocessContext) enter(path string, parent *IncludeFrame, line int) *IncludeFrame {
	return &IncludeFrame{
		Path:   path,
		ID:     ctx.sourceMap.push(path),
		Line:   line,
		Parent: parent,
	}
}

func (ctx *preprocessContext) errorf(frame *IncludeFrame, line int, format string, args ...any) {
	ctx.report(SeverityError, frame, line, nil, fmt.Sprintf(format, args...))
}

// fail reports an error caused by err; the message should already mention it.
func (ctx *preprocessContext) fail(frame *IncludeFrame, line int, err error, format string, args ...any) {
	ctx.report(SeverityError, frame, line, err, fmt.Sprintf(format, args...))
}

func (ctx *preprocessContext) warnf(frame *IncludeFrame, line int, format string, args ...any) {
	ctx.report(SeverityWarning, frame, line, nil, fmt.Sprintf(format, args...))
}

func (ctx *preprocessContext) report(sev Severity, frame *IncludeFrame, line int, err error, msg string) {
	d := Diagnostic{Severity: sev, Line: line, Message: msg, Err: err}
	if frame != nil {
		d.File = frame.Path
		d.Chain = frame.Chain()
	}
	ctx.diags = append(ctx.diags, d)

	attrs := []any{"file", d.File}
	if line > 0 {
		attrs = append(attrs, "line", line)
	}
	if len(d.Chain) > 0 {
		attrs = append(attrs, "included_from", strings.Join(d.Chain, " <- "))
	}
	if sev == SeverityError {
		ctx.log.Error(msg, attrs...)
	} else {
		ctx.log.Warn(msg, attrs...)
	}
}
