package preprocessor

import (
	"regexp"
	"strings"
)

var (
	includeRe = regexp.MustCompile(`^\s*#include\s+"(.*)"\s*$`)
	versionRe = regexp.MustCompile(`^\s*#version\s+([0-9]*)(?:\s+(core|compatibility|es))?\s*$`)
	pragmaRe  = regexp.MustCompile(`^\s*#pragma\s+(.*)\s*$`)

	stagesPragmaRe      = regexp.MustCompile(`^stages\s*\(\s*(\w+(?:\s*,\s*\w+)*)\s*\)\s*$`)
	inputLayoutPragmaRe = regexp.MustCompile(`^input_layout\s*\(\s*(\w+(?:\s*,\s*\w+)*)\s*\)\s*$`)
	topologyPragmaRe    = regexp.MustCompile(`^primitive_topology\s*\(\s*(\w+)\s*\)\s*$`)
)

// pragma dispatches the payload of a #pragma line to the matching handler.
func (ctx *preprocessContext) pragma(frame *IncludeFrame, line int, payload string) {
	if m := stagesPragmaRe.FindStringSubmatch(payload); m != nil {
		ctx.stagesPragma(frame, line, m[1])
	} else if m := inputLayoutPragmaRe.FindStringSubmatch(payload); m != nil {
		ctx.inputLayoutPragma(frame, line, m[1])
	} else if m := topologyPragmaRe.FindStringSubmatch(payload); m != nil {
		ctx.topologyPragma(frame, line, m[1])
	} else {
		ctx.errorf(frame, line, "malformed #pragma directive: %q", payload)
	}
}

func (ctx *preprocessContext) stagesPragma(frame *IncludeFrame, line int, list string) {
	for _, tag := range strings.Split(list, ",") {
		tag = strings.TrimSpace(tag)
		st, ok := StageFromTag(tag)
		if !ok {
			ctx.errorf(frame, line, "unknown shader stage %q in #pragma stages directive; expected vertex, fragment, geometry, tess_control, tess_eval or compute", tag)
			continue
		}
		ctx.stages |= st
	}
}

func (ctx *preprocessContext) inputLayoutPragma(frame *IncludeFrame, line int, list string) {
	if ctx.inputLayout != nil {
		ctx.errorf(frame, line, "duplicate input_layout directive")
		return
	}
	layout, err := parseInputLayout(list)
	if err != nil {
		ctx.errorf(frame, line, "%v", err)
		return
	}
	ctx.inputLayout = layout
}

func (ctx *preprocessContext) topologyPragma(frame *IncludeFrame, line int, tok string) {
	if ctx.topology != nil {
		ctx.errorf(frame, line, "duplicate primitive_topology directive")
		return
	}
	t, ok := topologies[tok]
	if !ok {
		ctx.errorf(frame, line, "unsupported primitive topology: %q", tok)
		return
	}
	ctx.topology = &t
}
